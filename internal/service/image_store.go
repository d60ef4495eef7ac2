// Package service implements the application's business logic.
package service

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/middleware"

	"github.com/google/uuid"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Validation messages for the image field.
const (
	msgImageRequired = "Image is required"
	msgImageTooLarge = "Image is too large"
	msgImageInvalid  = "File must be an image (jpeg, png, bmp, gif, or svg)"
)

// ImageUpload carries the raw bytes and metadata of an uploaded file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ImageStore validates uploads and manages image files in the public directory.
// Filenames are random UUIDs plus the detected extension, so concurrent
// uploads cannot collide.
type ImageStore struct {
	dir      string
	maxBytes int64
}

// NewImageStore creates an image store rooted at dir with the given upload cap.
func NewImageStore(dir string, maxKB int) *ImageStore {
	return &ImageStore{
		dir:      dir,
		maxBytes: int64(maxKB) * 1024,
	}
}

// Dir returns the public directory the store writes to.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Validate checks the upload against the size cap and the accepted formats.
// It returns an empty string when the upload is acceptable, otherwise the
// human-readable validation message for the image field.
func (s *ImageStore) Validate(up *ImageUpload) string {
	if up == nil || len(up.Content) == 0 {
		return msgImageRequired
	}
	if int64(len(up.Content)) > s.maxBytes {
		return msgImageTooLarge
	}
	if s.detectExtension(up) == "" {
		return msgImageInvalid
	}
	return ""
}

// Save writes the upload under a fresh collision-resistant filename and
// returns that filename. Callers must Validate first.
func (s *ImageStore) Save(up *ImageUpload) (string, error) {
	ext := s.detectExtension(up)
	if ext == "" {
		return "", fmt.Errorf("unsupported image content")
	}

	filename := uuid.New().String() + "." + ext
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		middleware.ImageStoreOps.WithLabelValues("save", "error").Inc()
		return "", fmt.Errorf("create image directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, filename), up.Content, 0o644); err != nil {
		middleware.ImageStoreOps.WithLabelValues("save", "error").Inc()
		return "", fmt.Errorf("write image file: %w", err)
	}

	middleware.ImageStoreOps.WithLabelValues("save", "ok").Inc()
	return filename, nil
}

// Remove deletes a stored file by name. The name must be a bare filename;
// anything resembling a path is rejected to prevent traversal.
func (s *ImageStore) Remove(filename string) error {
	if filename == "" || filename != filepath.Base(filename) {
		return fmt.Errorf("invalid image filename %q", filename)
	}
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		middleware.ImageStoreOps.WithLabelValues("remove", "error").Inc()
		return err
	}
	middleware.ImageStoreOps.WithLabelValues("remove", "ok").Inc()
	return nil
}

// Exists reports whether the named file is present in the store.
func (s *ImageStore) Exists(filename string) bool {
	if filename == "" || filename != filepath.Base(filename) {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, filename))
	return err == nil
}

// detectExtension sniffs the upload content and returns the canonical file
// extension for it, or "" when the content is not an accepted image format.
// Raster formats must actually decode; SVG is recognized by its markup since
// image.Decode has no vector support.
func (s *ImageStore) detectExtension(up *ImageUpload) string {
	detected := http.DetectContentType(up.Content)
	switch detected {
	case "image/jpeg", "image/png", "image/gif", "image/bmp", "image/webp":
		_, format, err := image.Decode(bytes.NewReader(up.Content))
		if err != nil {
			return ""
		}
		switch format {
		case "jpeg":
			return "jpg"
		case "png", "gif", "bmp", "webp":
			return format
		}
		return ""
	}

	if isSVG(up.Content) {
		return "svg"
	}
	return ""
}

// isSVG reports whether the content looks like an SVG document: XML text whose
// first element is <svg>.
func isSVG(content []byte) bool {
	head := content
	if len(head) > 1024 {
		head = head[:1024]
	}
	text := strings.ToLower(string(head))
	if !strings.Contains(text, "<svg") {
		return false
	}
	trimmed := strings.TrimLeft(text, " \t\r\n")
	return strings.HasPrefix(trimmed, "<?xml") ||
		strings.HasPrefix(trimmed, "<!doctype svg") ||
		strings.HasPrefix(trimmed, "<svg")
}
