package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/forkahq/forka-cli/internal/client/models"
)

// Me fetches the canonical record of the authenticated user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/users/me/", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches another user's public profile.
func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/", id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers lists all users. Intended for moderator/admin screens.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// MyPosts lists the authenticated user's posts.
func (c *Client) MyPosts(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	if err := c.do(ctx, http.MethodGet, "/users/my_posts/", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ProfileUpdate is a partial profile edit. Nil fields are omitted from the
// form entirely, matching the backend's partial-update contract.
type ProfileUpdate struct {
	Bio         *string
	PhoneNumber *string

	// ProfilePicture streams a new avatar when non-nil; PictureName is its
	// form filename.
	ProfilePicture io.Reader
	PictureName    string
}

// UpdateProfile PATCHes the profile as a multipart form, the only endpoint
// that accepts file content.
func (c *Client) UpdateProfile(ctx context.Context, up ProfileUpdate) (*models.User, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if up.Bio != nil {
		if err := w.WriteField("bio", *up.Bio); err != nil {
			return nil, err
		}
	}
	if up.PhoneNumber != nil {
		if err := w.WriteField("phone_number", *up.PhoneNumber); err != nil {
			return nil, err
		}
	}
	if up.ProfilePicture != nil {
		name := up.PictureName
		if name == "" {
			name = "profile.jpg"
		}
		part, err := w.CreateFormFile("profile_picture", name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, up.ProfilePicture); err != nil {
			return nil, fmt.Errorf("reading profile picture: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/users/update_profile/", bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	if err := c.send(req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ChangePassword rotates the password of the authenticated user.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword, newPassword2 string) error {
	in := map[string]string{
		"old_password":  oldPassword,
		"new_password":  newPassword,
		"new_password2": newPassword2,
	}
	return c.do(ctx, http.MethodPost, "/users/change_password/", in, nil, http.StatusOK)
}
