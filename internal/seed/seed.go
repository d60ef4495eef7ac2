// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categories = []string{
	"Technology", "Travel", "Food", "Music", "Gaming",
	"Fitness", "Books", "Movies", "Science", "Programming",
}

// Run populates the database with fake users and posts. Post images are
// generated as small PNG files and stored through the image store so the
// seeded data is fully servable.
func Run(db *gorm.DB, images *service.ImageStore, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := createPosts(db, images, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// Always include a known login for manual testing
	if count >= 1 {
		user := models.User{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: string(hashedPassword),
		}
		if err := db.Create(&user).Error; err != nil {
			return users, err
		}
		users = append(users, user)
	}

	for i := len(users); i < count; i++ {
		name := gofakeit.Name()
		user := models.User{
			Name: name,
			// Suffix keeps emails unique across runs without cleaning
			Email:    fmt.Sprintf("%s%d@example.com", gofakeit.Username(), i),
			Password: string(hashedPassword),
		}
		if err := db.Create(&user).Error; err != nil {
			return users, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, images *service.ImageStore, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < count; i++ {
		filename, err := images.Save(&service.ImageUpload{
			Filename:    "seed.png",
			ContentType: "image/png",
			Content:     placeholderPNG(r),
		})
		if err != nil {
			return posts, fmt.Errorf("failed to store seed image: %w", err)
		}

		post := models.Post{
			Title:    gofakeit.Sentence(5),
			Category: categories[r.Intn(len(categories))],
			Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
			Image:    filename,
		}
		daysBack := r.Intn(90)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

		if err := db.Create(&post).Error; err != nil {
			return posts, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// placeholderPNG renders a small solid-color PNG.
func placeholderPNG(r *rand.Rand) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill := color.RGBA{R: uint8(r.Intn(256)), G: uint8(r.Intn(256)), B: uint8(r.Intn(256)), A: 255}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
