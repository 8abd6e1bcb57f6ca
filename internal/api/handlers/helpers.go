package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

func writeJSON(c *fiber.Ctx, status int, v any) error {
	if err := c.Status(status).JSON(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", c.Method(), c.Path(), err)
		return err
	}
	return nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return writeJSON(c, status, fiber.Map{"error": msg})
}
