package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/khonsu303/estudio/internal/client/api"
	"github.com/khonsu303/estudio/internal/client/calendar"
	"github.com/khonsu303/estudio/internal/netx"
	"github.com/khonsu303/estudio/internal/shared"
)

// Register prompts for a name, email and password and creates the account.
// The new account is signed in right away. The password is wiped before
// returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.client.Register(ctx, name, email, string(password))
	if err != nil {
		return err
	}
	return a.signedIn(ctx, user)
}

// Login prompts for credentials and signs in. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	return a.signedIn(ctx, user)
}

func (a *App) signedIn(ctx context.Context, user *api.User) error {
	a.repo.Reset()
	a.shownNotes = nil
	a.user = user

	if err := a.session.Save(a.client.Token(), user.Email, user.Name); err != nil {
		fmt.Fprintf(a.out, "Warning: session not saved: %v\n", err)
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	a.remindUpcoming(ctx)
	return nil
}

// remindUpcoming mentions events due today or tomorrow. Failures are
// ignored; the reminder is a courtesy.
func (a *App) remindUpcoming(ctx context.Context) {
	events, err := a.repo.Events(ctx)
	if err != nil {
		return
	}
	if calendar.HasUpcoming(events, a.now()) {
		fmt.Fprintln(a.out, "You have events today or tomorrow, see 'events'")
	}
}

// Logout revokes the token on the server and forgets the local session.
// The local session is dropped even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	a.forget()
	if err != nil && !errors.Is(err, api.ErrUnavailable) {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	user, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	a.user = user

	fmt.Fprintf(a.out, "Name:    %s\n", user.Name)
	fmt.Fprintf(a.out, "Email:   %s\n", user.Email)
	fmt.Fprintf(a.out, "Avatar:  %s\n", user.Avatar)
	fmt.Fprintf(a.out, "Since:   %s\n", user.CreatedAt.Local().Format(dateLayout))
	return nil
}

// Profile edits the display name and email. Blank answers keep the
// current values.
func (a *App) Profile(ctx context.Context) error {
	name, err := a.edit("Name", a.user.Name)
	if err != nil {
		return err
	}
	email, err := a.edit("Email", a.user.Email)
	if err != nil {
		return err
	}
	if name == nil && email == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	user, err := a.client.UpdateProfile(ctx, name, email)
	if err != nil {
		return err
	}
	a.user = user
	if err := a.session.Save(a.client.Token(), user.Email, user.Name); err != nil {
		fmt.Fprintf(a.out, "Warning: session not saved: %v\n", err)
	}
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

// Avatar uploads an image file as the user's avatar through a presigned
// URL issued by the server.
func (a *App) Avatar(ctx context.Context, args []string) error {
	path, err := a.ref(args, "Enter path to an image file")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	contentType := mimetype.Detect(data).String()

	up, err := a.client.RequestAvatarUpload(ctx, contentType)
	if err != nil {
		return err
	}
	if err := netx.UploadToPresignedURL(ctx, a.uploads, up.UploadURL, contentType, data); err != nil {
		return err
	}

	a.user.Avatar = up.PublicURL
	fmt.Fprintf(a.out, "Avatar uploaded: %s\n", up.PublicURL)
	return nil
}
