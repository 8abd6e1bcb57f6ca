package api

import (
	"load-route-service/internal/platform/obs"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestID reuses the caller's X-Request-ID or assigns a new one, and puts
// it on the request context so obs.Time can log it.
func requestID(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}

	c.Locals(string(obs.RequestIDKey), id)
	c.SetUserContext(obs.WithRequestID(c.UserContext(), id))
	c.Set(requestIDHeader, id)

	return c.Next()
}

// accessLog logs end-to-end request duration and response size. Errors are
// rendered here first so the logged status is the one the client receives.
func accessLog(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	log.Printf(
		"method=%s path=%s status=%d bytes=%d dur=%dms",
		c.Method(), c.OriginalURL(), c.Response().StatusCode(), len(c.Response().Body()), time.Since(start).Milliseconds(),
	)
	return nil
}

// errorHandler renders errors that escape handlers, including fiber's own
// 404 and 405 responses, in the same shape as handler errors.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	} else {
		log.Printf("unhandled error: method=%s path=%s err=%v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}
