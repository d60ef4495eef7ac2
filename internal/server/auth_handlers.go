package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /auth/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	// A malformed body leaves the fields empty and surfaces as
	// required-field validation errors.
	_ = c.BodyParser(&req)

	user, token, err := s.authService.Register(c.Context(), req)
	if err != nil {
		if models.IsCode(err, models.CodeValidation) {
			return respondAuthValidation(c, models.FieldsOf(err))
		}
		return models.RespondInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error":   false,
		"message": "User registered successfully",
		"data": fiber.Map{
			"user":  user,
			"token": token,
		},
	})
}

// Login handles POST /auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	_ = c.BodyParser(&req)

	user, token, err := s.authService.Login(c.Context(), req)
	if err != nil {
		switch {
		case models.IsCode(err, models.CodeValidation):
			return respondAuthValidation(c, models.FieldsOf(err))
		case models.IsCode(err, models.CodeCredentials):
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"credError": true,
				"message":   "Invalid credentials",
			})
		default:
			return models.RespondInternalError(c, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error":   false,
		"message": "User loggedIn successfully",
		"data": fiber.Map{
			"user":  user,
			"token": token,
		},
	})
}

// Profile handles GET /profile.
func (s *Server) Profile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.authService.Profile(c.Context(), userID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			// The token outlived its user record.
			return respondUnauthenticated(c)
		}
		return models.RespondInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error":   false,
		"message": "User profile",
		"user":    user,
	})
}

// Logout handles POST /logout. It revokes every outstanding token of the
// authenticated user, not just the presented one.
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.authService.Logout(c.Context(), userID); err != nil {
		return models.RespondInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error":   false,
		"message": "User loggedOut successfully",
	})
}
