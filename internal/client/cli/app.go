package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/khonsu303/estudio/internal/client/api"
	"github.com/khonsu303/estudio/internal/client/config"
	"github.com/khonsu303/estudio/internal/client/session"
	"github.com/khonsu303/estudio/internal/client/store"
)

// authClient is the account side of *api.Client.
type authClient interface {
	Register(ctx context.Context, name, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	Me(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, name, email *string) (*api.User, error)
	Logout(ctx context.Context) error
	RequestAvatarUpload(ctx context.Context, contentType string) (*api.AvatarUpload, error)
	SetToken(token string)
	Token() string
}

type sessionStore interface {
	Get(key string) (string, error)
	Save(token, email, name string) error
	Clear() error
	Close() error
}

type App struct {
	config  *config.Config
	client  authClient
	repo    *store.Repository
	session sessionStore
	uploads *http.Client

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	user *api.User

	// IDs in the order the last "notes" listing printed them, so numbers
	// typed afterwards refer to what the user saw.
	shownNotes []string

	calYear  int
	calMonth time.Month
}

// NewApp opens the session store and builds an App talking to c.ServerURL.
func NewApp(c *config.Config) (*App, error) {
	sess, err := session.Open(c.SessionDir)
	if err != nil {
		return nil, err
	}

	client := api.New(c.ServerURL, c.RequestTimeout)
	a := newApp(c, client, store.New(client), sess, os.Stdin, os.Stdout)
	a.uploads = &http.Client{Timeout: 2 * c.RequestTimeout}
	return a, nil
}

func newApp(c *config.Config, client authClient, repo *store.Repository, sess sessionStore, in io.Reader, out io.Writer) *App {
	return &App{
		config:  c,
		client:  client,
		repo:    repo,
		session: sess,
		reader:  bufio.NewReader(in),
		out:     out,
		now:     time.Now,
	}
}

// Run restores a saved session, if any, and serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.session.Close()

	fmt.Fprintln(a.out, "Welcome to Estudio (type 'help' for commands)")
	a.resume(ctx)

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return "guest"
	}
	return a.user.Name
}

// resume picks up the token saved by an earlier run. An expired token is
// dropped; an unreachable server keeps it for the next command.
func (a *App) resume(ctx context.Context) {
	token, err := a.session.Get(session.KeyToken)
	if err != nil || token == "" {
		return
	}
	a.client.SetToken(token)

	user, err := a.client.Me(ctx)
	switch {
	case err == nil:
		a.user = user
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", user.Name, user.Email)
		a.remindUpcoming(ctx)
	case errors.Is(err, api.ErrUnavailable):
		name, _ := a.session.Get(session.KeyName)
		email, _ := a.session.Get(session.KeyEmail)
		a.user = &api.User{Name: name, Email: email}
		fmt.Fprintln(a.out, "Server unavailable, continuing with the saved session")
	default:
		a.forget()
		fmt.Fprintln(a.out, "Saved session has expired, please login")
	}
}

// forget drops everything tied to the signed-in user.
func (a *App) forget() {
	a.client.SetToken("")
	_ = a.session.Clear()
	a.repo.Reset()
	a.user = nil
	a.shownNotes = nil
}

// report prints a command failure. A rejected token signs the user out.
func (a *App) report(err error) {
	if a.isLoggedIn() && api.IsStatus(err, http.StatusUnauthorized) {
		a.forget()
		printlnFn("Session expired, please login again")
		return
	}
	printlnFn("Error:", describe(err))
}
