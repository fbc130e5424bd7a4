package models

import (
	"time"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Principal is the authenticated caller resolved from the session credential.
type Principal struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

type Tag struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Post struct {
	ID            int64      `json:"id" db:"id"`
	UserID        int64      `json:"userId" db:"user_id"`
	UserEmail     string     `json:"userEmail" db:"user_email"`
	Title         string     `json:"title" db:"title"`
	Slug          string     `json:"slug" db:"slug"`
	Excerpt       *string    `json:"excerpt" db:"excerpt"`
	Content       Document   `json:"content" db:"content"`
	FeaturedImage *string    `json:"featuredImage" db:"featured_image"`
	Status        PostStatus `json:"status" db:"status"`
	PublishedAt   *time.Time `json:"publishedAt" db:"published_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	Tags          []Tag      `json:"tags" db:"-"`
}

type CreatePostInput struct {
	Title         string     `json:"title" validate:"required,max=256"`
	Slug          string     `json:"slug" validate:"required,max=256"`
	Excerpt       *string    `json:"excerpt"`
	Content       Document   `json:"content"`
	FeaturedImage *string    `json:"featuredImage" validate:"omitempty,max=512"`
	Status        PostStatus `json:"status" validate:"required,oneof=draft published"`
	TagIDs        []int64    `json:"tagIds" validate:"dive,gt=0"`
}

// PostUpdate carries a partial update. Nil pointers and unset Optionals leave the
// column untouched; TagIDs == nil leaves the tag links untouched while an empty
// non-nil slice clears them.
type PostUpdate struct {
	Title         *string          `json:"title" validate:"omitempty,min=1,max=256"`
	Slug          *string          `json:"slug" validate:"omitempty,min=1,max=256"`
	Excerpt       Optional[string] `json:"excerpt"`
	Content       Document         `json:"content"`
	FeaturedImage Optional[string] `json:"featuredImage"`
	Status        *PostStatus      `json:"status" validate:"omitempty,oneof=draft published"`
	TagIDs        []int64          `json:"tagIds" validate:"omitempty,dive,gt=0"`
}

type PostQuery struct {
	UserID int64
	Page   int
	Limit  int
	Search string
	TagID  *int64
}

func (q PostQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type PostPage struct {
	Items      []Post `json:"items"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Credentials is the signup/login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
