// Package models defines the data structures exchanged with the ForKa API
// and cached locally by the client.
package models

import "time"

// Role is the forum role assigned to a user account.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// User is the account record as served by the API. Fields beyond the basic
// profile (PostsCount, CommentsCount, PhoneNumber) are only present on
// detail-style responses and stay zero elsewhere.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	Bio            string    `json:"bio"`
	PhoneNumber    string    `json:"phone_number"`
	ProfilePicture string    `json:"profile_picture"`
	DateJoined     time.Time `json:"date_joined"`
	PostsCount     int       `json:"posts_count"`
	CommentsCount  int       `json:"comments_count"`
}

// IsModerator reports whether the user may pin or close posts.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// UserPatch carries a shallow profile update. Nil fields are left untouched.
type UserPatch struct {
	Bio            *string
	PhoneNumber    *string
	ProfilePicture *string
}

// Apply merges the non-nil fields of the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = *p.ProfilePicture
	}
}
