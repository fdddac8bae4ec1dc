package middleware

import (
	"errors"
	"net/http"
	"strings"

	"cinebook/internal/shared/config"
	"cinebook/internal/shared/utils/response"
	"cinebook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var (
	errInvalidToken     = errors.New("invalid or expired token")
	errInvalidTokenType = errors.New("invalid token type")
)

// JWTAuth rejects any request without a valid access token
func JWTAuth() gin.HandlerFunc {
	return JWTAuthWithConfig(config.Load())
}

// JWTAuthWithConfig is JWTAuth with an injected config, used by tests
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, errMsg := bearerToken(c)
		if errMsg != "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, errMsg, nil, nil)
			c.Abort()
			return
		}

		claims, err := parseAccessToken(raw, cfg.JWT.Secret)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
			c.Abort()
			return
		}

		setUserContext(c, claims)
		c.Next()
	}
}

// OptionalAuth validates a JWT token if present but never rejects the request.
// Guest checkout rides on this: an anonymous booking simply has no user_id in context.
func OptionalAuth() gin.HandlerFunc {
	return OptionalAuthWithConfig(config.Load())
}

func OptionalAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, errMsg := bearerToken(c); errMsg == "" {
			if claims, err := parseAccessToken(raw, cfg.JWT.Secret); err == nil {
				setUserContext(c, claims)
			}
		}
		c.Next()
	}
}

// bearerToken pulls the raw token out of the Authorization header,
// returning a user-facing message when the header is missing or malformed
func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", "Authorization header is required"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "authorization header format must be Bearer {token}"
	}
	return parts[1], ""
}

func parseAccessToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}

	// Refresh tokens are not valid for API access
	if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
		return nil, errInvalidTokenType
	}

	return claims, nil
}

func setUserContext(c *gin.Context, claims jwt.MapClaims) {
	c.Set("user_id", claims["user_id"])
	c.Set("user_email", claims["email"])
	c.Set("user_role", claims["role"])
}

// RequireRole gates a route group on the authenticated user's role.
// Must run after JWTAuth.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user role not found in context", nil, nil)
			c.Abort()
			return
		}

		if userRole.(string) != requiredRole {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(string(users.RoleAdmin))
}
