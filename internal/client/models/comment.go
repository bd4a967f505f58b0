package models

import "time"

// Comment is a reply to a post, or to another comment when Parent is set.
type Comment struct {
	ID           int64     `json:"id"`
	Post         int64     `json:"post"`
	Author       User      `json:"author"`
	Content      string    `json:"content"`
	Parent       *int64    `json:"parent"`
	LikesCount   int       `json:"likes_count"`
	RepliesCount int       `json:"replies_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CommentDraft is the payload for creating a comment. Parent is nil for
// top-level comments.
type CommentDraft struct {
	Post    int64  `json:"post"`
	Content string `json:"content"`
	Parent  *int64 `json:"parent,omitempty"`
}
