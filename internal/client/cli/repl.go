package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	report(err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error

	Subjects(ctx context.Context) error
	AddSubject(ctx context.Context) error
	EditSubject(ctx context.Context, args []string) error
	DeleteSubject(ctx context.Context, args []string) error

	Notes(ctx context.Context, args []string) error
	ShowNote(ctx context.Context, args []string) error
	AddNote(ctx context.Context, args []string) error
	EditNote(ctx context.Context, args []string) error
	DeleteNote(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error

	Events(ctx context.Context) error
	AddEvent(ctx context.Context) error
	EditEvent(ctx context.Context, args []string) error
	DeleteEvent(ctx context.Context, args []string) error
	Complete(ctx context.Context, args []string) error
	Calendar(ctx context.Context, args []string) error
}

const (
	guestHelp = "Available commands: register, login, help, exit"
	userHelp  = `Available commands:
  me, profile, avatar <file>, logout
  subjects, addsubject, editsubject <n>, delsubject <n>
  notes [subject], note <n>, addnote [subject], editnote <n>, delnote <n>, fav <n>
  events, addevent, editevent <n>, delevent <n>, done <n>
  calendar [next|prev|today|YYYY-MM]
  help, exit
Items are picked by their number in the last listing or by id.`
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands other than help, register, login and exit need a signed-in user.
// Handler errors are passed to a.report and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("estudio (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if run := dispatch(ctx, a, cmd, args); run != nil {
			if err := run(); err != nil {
				a.report(err)
			}
		}
	}
}

// dispatch resolves cmd to a closure, or prints why it cannot run.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) func() error {
	switch cmd {
	case "register":
		return func() error { return a.Register(ctx) }
	case "login":
		return func() error { return a.Login(ctx) }
	}

	var run func() error
	switch cmd {
	case "logout":
		run = func() error { return a.Logout(ctx) }
	case "me":
		run = func() error { return a.Me(ctx) }
	case "profile":
		run = func() error { return a.Profile(ctx) }
	case "avatar":
		run = func() error { return a.Avatar(ctx, args) }

	case "subjects", "s":
		run = func() error { return a.Subjects(ctx) }
	case "addsubject":
		run = func() error { return a.AddSubject(ctx) }
	case "editsubject":
		run = func() error { return a.EditSubject(ctx, args) }
	case "delsubject":
		run = func() error { return a.DeleteSubject(ctx, args) }

	case "notes", "n":
		run = func() error { return a.Notes(ctx, args) }
	case "note":
		run = func() error { return a.ShowNote(ctx, args) }
	case "addnote":
		run = func() error { return a.AddNote(ctx, args) }
	case "editnote":
		run = func() error { return a.EditNote(ctx, args) }
	case "delnote":
		run = func() error { return a.DeleteNote(ctx, args) }
	case "fav":
		run = func() error { return a.Favorite(ctx, args) }

	case "events", "e":
		run = func() error { return a.Events(ctx) }
	case "addevent":
		run = func() error { return a.AddEvent(ctx) }
	case "editevent":
		run = func() error { return a.EditEvent(ctx, args) }
	case "delevent":
		run = func() error { return a.DeleteEvent(ctx, args) }
	case "done":
		run = func() error { return a.Complete(ctx, args) }
	case "calendar", "cal":
		run = func() error { return a.Calendar(ctx, args) }

	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}

	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	return run
}
