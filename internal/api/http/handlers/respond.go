package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// envelope writes the uniform {code, message, data} body. The code string
// always matches the HTTP status numerically.
func envelope(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"code":    strconv.Itoa(status),
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func ok(c *fiber.Ctx, message string, data any) error {
	return envelope(c, http.StatusOK, message, data)
}

func created(c *fiber.Ctx, message string, data any) error {
	return envelope(c, http.StatusCreated, message, data)
}
