package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger is the application-wide structured logger. It embeds slog so the
// plain Info/Warn/Error calls stay available next to the domain helpers.
type Logger struct {
	*slog.Logger
}

// New builds a logger from the LOG_LEVEL environment variable. Debug mode
// gets human-readable text output; everything else emits JSON.
func New() *Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogHTTPRequest records one access-log line per handled request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Domain helpers. Controllers and services call these instead of assembling
// the same attribute lists at every site.

func (l *Logger) LogBookingCreated(ctx context.Context, bookingRef, showtimeID, userID string) {
	l.InfoContext(ctx,
		"Booking Created",
		slog.String("booking_ref", bookingRef),
		slog.String("showtime_id", showtimeID),
		slog.String("user_id", userID),
	)
}

func (l *Logger) LogBookingCancelled(ctx context.Context, bookingRef, userID string) {
	l.InfoContext(ctx,
		"Booking Cancelled",
		slog.String("booking_ref", bookingRef),
		slog.String("user_id", userID),
	)
}

func (l *Logger) LogSeatStatusChanged(ctx context.Context, showtimeID, seatID, status string) {
	l.InfoContext(ctx,
		"Seat Status Changed",
		slog.String("showtime_id", showtimeID),
		slog.String("seat_id", seatID),
		slog.String("status", status),
	)
}

// LogCatalogFallback records a degraded catalog read served from the
// bundled dataset
func (l *Logger) LogCatalogFallback(ctx context.Context, err error) {
	l.WarnContext(ctx,
		"Catalog Read Failed, Serving Fallback Dataset",
		slog.String("error", err.Error()),
	)
}

func (l *Logger) LogAuthSuccess(ctx context.Context, userID, method string) {
	l.InfoContext(ctx,
		"Authentication Success",
		slog.String("user_id", userID),
		slog.String("method", method),
	)
}

func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

var defaultLogger = New()

// GetDefault returns the shared process-wide logger
func GetDefault() *Logger {
	return defaultLogger
}
