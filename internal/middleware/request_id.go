package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bricks_backend/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	loggerLocal     = "logger"
)

// RequestLogger her isteğe bir id verir ve o id ile etiketli bir logrus
// entry'sini Locals'a koyar
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		entry := logger.Log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
		})
		c.Locals(loggerLocal, entry)

		start := time.Now()
		err := c.Next()
		entry.WithFields(logrus.Fields{
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
		}).Debug("Request handled")
		return err
	}
}

// Log isteğe ait logger'ı döner, middleware yoksa genel logger kullanılır
func Log(c *fiber.Ctx) *logrus.Entry {
	if entry, ok := c.Locals(loggerLocal).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logger.Log)
}
