package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forkahq/forka-cli/internal/client/api"
	"github.com/forkahq/forka-cli/internal/client/flows"
	"github.com/forkahq/forka-cli/internal/client/models"
)

// Profile prints the authenticated user's profile.
func (a *App) Profile(ctx context.Context) error {
	return a.Whoami(ctx)
}

// EditProfile interactively updates bio, phone number, and avatar. Empty
// answers leave a field unchanged; only the answered fields travel to the
// server.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first.")
		return nil
	}

	var up api.ProfileUpdate

	bio, err := getSimpleText(a.reader, "Bio (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if bio != "" {
		up.Bio = &bio
	}

	phone, err := getSimpleText(a.reader, "Phone number (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if phone != "" {
		up.PhoneNumber = &phone
	}

	picture, err := getSimpleText(a.reader, "Profile picture path (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if picture != "" {
		f, err := os.Open(picture)
		if err != nil {
			return fmt.Errorf("opening picture: %w", err)
		}
		defer f.Close()
		up.ProfilePicture = f
		up.PictureName = filepath.Base(picture)
	}

	if up.Bio == nil && up.PhoneNumber == nil && up.ProfilePicture == nil {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	user, err := a.api.UpdateProfile(ctx, up)
	if err != nil {
		return err
	}

	patch := models.UserPatch{
		Bio:            &user.Bio,
		PhoneNumber:    &user.PhoneNumber,
		ProfilePicture: &user.ProfilePicture,
	}
	if err := a.store.UpdateUser(ctx, patch); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// ChangePassword rotates the password of the logged-in user. The new
// password has to clear the same strength gate the reset flow uses.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first.")
		return nil
	}

	oldPassword, err := getPassword(a.out, "Current password: ")
	if err != nil {
		return err
	}
	defer wipe(oldPassword)

	newPassword, err := getPassword(a.out, "New password: ")
	if err != nil {
		return err
	}
	defer wipe(newPassword)

	if score := flows.Score(string(newPassword)); score < flows.MinResetScore {
		fmt.Fprintf(a.out, "Password too weak (%s). Use 8+ characters with mixed case, digits or symbols.\n",
			flows.Label(score))
		return nil
	}

	confirm, err := getPassword(a.out, "Confirm new password: ")
	if err != nil {
		return err
	}
	defer wipe(confirm)

	if err := a.api.ChangePassword(ctx, string(oldPassword), string(newPassword), string(confirm)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}
