package http

import (
	"time"

	"resume-builder/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const localUserID = "userID"

// RequestLogger writes one structured entry per request.
func RequestLogger(l *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("X-Request-Id", reqID)

		err := c.Next()

		entry := l.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
		})
		if uid, ok := c.Locals(localUserID).(string); ok && uid != "" {
			entry = entry.WithField("user_id", uid)
		}

		status := c.Response().StatusCode()
		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
		return err
	}
}

// OptionalAuth records the requester identity when a valid token is present
// but lets anonymous requests through; public preview and download rely on it.
func OptionalAuth(id auth.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, ok := id.UserFromRequest(c); ok {
			c.Locals(localUserID, uid)
		}
		return c.Next()
	}
}

// RequireAuth rejects requests without a valid identity.
func RequireAuth(id auth.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, ok := id.UserFromRequest(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		c.Locals(localUserID, uid)
		return c.Next()
	}
}

func requesterID(c *fiber.Ctx) string {
	if uid, ok := c.Locals(localUserID).(string); ok {
		return uid
	}
	return ""
}
