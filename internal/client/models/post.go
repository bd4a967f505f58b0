package models

import "time"

// Post is a forum question/thread.
type Post struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Author        User      `json:"author"`
	Category      int64     `json:"category"`
	CategoryName  string    `json:"category_name"`
	Image         string    `json:"image"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	ViewsCount    int       `json:"views_count"`
	IsPinned      bool      `json:"is_pinned"`
	IsClosed      bool      `json:"is_closed"`
	IsSolved      bool      `json:"is_solved"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PostDraft is the payload for creating or updating a post.
type PostDraft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category int64  `json:"category"`
}
