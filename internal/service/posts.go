package service

import (
	"context"
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostService validates and persists posts and manages each post's image file.
type PostService struct {
	posts  repository.PostRepository
	images *ImageStore
}

// NewPostService creates a PostService over the given repository and image store.
func NewPostService(posts repository.PostRepository, images *ImageStore) *PostService {
	return &PostService{posts: posts, images: images}
}

// PostInput carries the writable post fields.
type PostInput struct {
	Title    string
	Category string
	Content  string
}

// List returns all posts.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

// Get returns the post with the given id or a not-found error.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Create validates the fields and the required image, stores the image under a
// fresh filename and persists the record. If the record insert fails after the
// file was written, the file is removed again so no orphan is left behind.
func (s *PostService) Create(ctx context.Context, in PostInput, upload *ImageUpload) (*models.Post, error) {
	errs := validation.PostFields(in.Title, in.Category, in.Content)
	if msg := s.images.Validate(upload); msg != "" {
		errs.Add("image", msg)
	}
	if errs.Any() {
		return nil, models.NewValidationError(errs)
	}

	filename, err := s.images.Save(upload)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	post := &models.Post{
		Title:    in.Title,
		Category: in.Category,
		Content:  in.Content,
		Image:    filename,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if removeErr := s.images.Remove(filename); removeErr != nil {
			middleware.Logger.WarnContext(ctx, "orphaned image after failed post create",
				slog.String("image", filename), slog.String("error", removeErr.Error()))
		}
		return nil, err
	}

	return post, nil
}

// Update validates the fields, resolves the post and applies the changes.
// A new image is written before the old file is deleted; if storing the new
// image fails, the update proceeds with the prior image reference intact.
// Without an upload only the text fields change.
func (s *PostService) Update(ctx context.Context, id uint, in PostInput, upload *ImageUpload) (*models.Post, error) {
	errs := validation.PostFields(in.Title, in.Category, in.Content)
	if upload != nil {
		if msg := s.images.Validate(upload); msg != "" {
			errs.Add("image", msg)
		}
	}
	if errs.Any() {
		return nil, models.NewValidationError(errs)
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := ""
	if upload != nil {
		filename, saveErr := s.images.Save(upload)
		if saveErr != nil {
			middleware.Logger.WarnContext(ctx, "image store failed during post update, keeping previous image",
				slog.Uint64("post_id", uint64(id)), slog.String("error", saveErr.Error()))
		} else {
			oldImage = post.Image
			post.Image = filename
		}
	}

	post.Title = in.Title
	post.Category = in.Category
	post.Content = in.Content

	if err := s.posts.Update(ctx, post); err != nil {
		if oldImage != "" {
			// The record still references the old file; drop the new one.
			if removeErr := s.images.Remove(post.Image); removeErr != nil {
				middleware.Logger.WarnContext(ctx, "orphaned image after failed post update",
					slog.String("image", post.Image), slog.String("error", removeErr.Error()))
			}
		}
		return nil, err
	}

	if oldImage != "" {
		if removeErr := s.images.Remove(oldImage); removeErr != nil {
			middleware.Logger.WarnContext(ctx, "failed to delete replaced image",
				slog.String("image", oldImage), slog.String("error", removeErr.Error()))
		}
	}

	return post, nil
}

// Delete removes the post's image file (best-effort) and its record.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if removeErr := s.images.Remove(post.Image); removeErr != nil {
		middleware.Logger.WarnContext(ctx, "failed to delete post image",
			slog.String("image", post.Image), slog.String("error", removeErr.Error()))
	}

	return s.posts.Delete(ctx, id)
}
