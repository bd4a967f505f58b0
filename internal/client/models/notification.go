package models

import "time"

// Notification informs a user of activity on their content.
type Notification struct {
	ID        int64     `json:"id"`
	Sender    User      `json:"sender"`
	Type      string    `json:"notification_type"`
	Message   string    `json:"message"`
	Post      *int64    `json:"post"`
	Comment   *int64    `json:"comment"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
