package server

import (
	"io"

	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// parsePostID extracts the :id route parameter. A non-numeric or non-positive
// id returns 0, which no post can have, so it flows through the same
// not-found handling as an unknown id.
func parsePostID(c *fiber.Ctx) uint {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0
	}
	return uint(id)
}

// readImageUpload extracts the multipart "image" file, or nil when the field
// is absent or unreadable. Callers treat nil as "no image supplied"; for
// create that surfaces as the image-required validation error.
func readImageUpload(c *fiber.Ctx) *service.ImageUpload {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}

	src, err := file.Open()
	if err != nil {
		return nil
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil
	}

	return &service.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	}
}

// respondAuthValidation renders field errors in the auth endpoints' envelope.
func respondAuthValidation(c *fiber.Ctx, fields map[string][]string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"validationError": true,
		"message":         validation.Errors(fields),
	})
}

// respondPostValidation renders field errors in the post endpoints' envelope.
func respondPostValidation(c *fiber.Ctx, fields map[string][]string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error":   true,
		"message": validation.Errors(fields),
	})
}

// respondPostNotFound renders the not-found payload. The status differs per
// endpoint: show responds 200, update and destroy respond 404.
func respondPostNotFound(c *fiber.Ctx, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"type":    "danger",
		"message": "Post not found",
	})
}

func respondUnauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthenticated.",
	})
}
