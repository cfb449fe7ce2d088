package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Setup installs the JSON handler used by every entry point below.
func Setup(level string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func write(level slog.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	attrs := []slog.Attr{slog.String("kind", kind), slog.String("action", action)}
	if c != nil {
		attrs = append(attrs,
			slog.String("ip", c.IP()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			attrs = append(attrs, slog.String("req_id", rid))
		}
		if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
			attrs = append(attrs, slog.String("user_id", uid))
		}
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
	}
	if len(fields) > 0 {
		args := make([]any, 0, len(fields))
		for k, v := range fields {
			args = append(args, slog.Any(k, v))
		}
		attrs = append(attrs, slog.Group("fields", args...))
	}
	logger.LogAttrs(context.Background(), level, action, attrs...)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(slog.LevelInfo, "info", c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(slog.LevelInfo, "audit", c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(slog.LevelWarn, "security", c, action, nil, fields)
}

// Warn records a non-fatal failure the user is not told about.
func Warn(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(slog.LevelWarn, "warn", c, action, err, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(slog.LevelError, "error", c, action, err, fields)
}
