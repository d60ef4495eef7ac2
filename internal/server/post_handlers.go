package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /posts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.Context())
	if err != nil {
		return models.RespondInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error": false,
		"posts": posts,
	})
}

// CreatePost handles POST /posts. The body is multipart form data with the
// image as a file field.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	in := postInputFromForm(c)
	upload := readImageUpload(c)

	if _, err := s.postService.Create(c.Context(), in, upload); err != nil {
		if models.IsCode(err, models.CodeValidation) {
			return respondPostValidation(c, models.FieldsOf(err))
		}
		return models.RespondInternalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"error":   false,
		"type":    "success",
		"message": "Post created successfully",
	})
}

// GetPost handles GET /posts/:id. An unknown id responds with the structured
// not-found payload at HTTP 200, unlike update and destroy.
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.Get(c.Context(), parsePostID(c))
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return respondPostNotFound(c, fiber.StatusOK)
		}
		return models.RespondInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error": false,
		"post":  post,
	})
}

// UpdatePost handles PUT and PATCH /posts/:id. The image file is optional;
// without it only the text fields change.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	in := postInputFromForm(c)
	upload := readImageUpload(c)

	if _, err := s.postService.Update(c.Context(), parsePostID(c), in, upload); err != nil {
		switch {
		case models.IsCode(err, models.CodeValidation):
			return respondPostValidation(c, models.FieldsOf(err))
		case models.IsCode(err, models.CodeNotFound):
			return respondPostNotFound(c, fiber.StatusNotFound)
		default:
			return models.RespondInternalError(c, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error":   false,
		"type":    "success",
		"message": "Post updated successfully",
	})
}

// DeletePost handles DELETE /posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.postService.Delete(c.Context(), parsePostID(c)); err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return respondPostNotFound(c, fiber.StatusNotFound)
		}
		return models.RespondInternalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error":   false,
		"type":    "success",
		"message": "Post deleted successfully",
	})
}

func postInputFromForm(c *fiber.Ctx) service.PostInput {
	return service.PostInput{
		Title:    c.FormValue("title"),
		Category: c.FormValue("category"),
		Content:  c.FormValue("content"),
	}
}
