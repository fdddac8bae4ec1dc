package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes the standard envelope. Controllers never call c.JSON
// directly so the API keeps one consistent shape.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, Envelope{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
		Timestamp:  time.Now().UTC(),
	})
}
