// Package cli implements the interactive command interpreter: a
// single-threaded read/dispatch loop over an explicit command table.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tartampluch/go-assistant/internal/book"
	"github.com/tartampluch/go-assistant/internal/config"
	"github.com/tartampluch/go-assistant/internal/messages"
	"github.com/tartampluch/go-assistant/internal/storage"
)

// errExit is the sentinel returned by the terminal commands to stop the
// loop; it is never shown to the user.
var errExit = errors.New("exit requested")

// Options tunes the interpreter. Zero values fall back to defaults.
type Options struct {
	In  io.Reader
	Out io.Writer

	Clock book.Clock

	// LookaheadDays is the default window for the birthdays command.
	LookaheadDays int

	// AutoHelpThreshold is the number of consecutive soft failures
	// (empty, unparsable, or unknown input) before the command catalog
	// is shown automatically.
	AutoHelpThreshold int
}

// App is the interpreter session: one address book, one store, one
// input stream. All mutation is synchronous; there is exactly one
// logical thread of control.
type App struct {
	book    *book.AddressBook
	store   *storage.Store
	catalog *messages.Catalog
	clock   book.Clock

	lookahead int
	autoHelp  int

	in  *bufio.Scanner
	out io.Writer

	commands map[string]*Command
	order    []string

	failures int
}

// New builds a session over the given book/store pair. The command
// table is constructed here and stays immutable for the session.
func New(b *book.AddressBook, store *storage.Store, catalog *messages.Catalog, opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = book.RealClock{}
	}
	if opts.LookaheadDays <= 0 {
		opts.LookaheadDays = config.DefaultLookaheadDays
	}
	if opts.AutoHelpThreshold <= 0 {
		opts.AutoHelpThreshold = config.AutoHelpThreshold
	}

	a := &App{
		book:      b,
		store:     store,
		catalog:   catalog,
		clock:     opts.Clock,
		lookahead: opts.LookaheadDays,
		autoHelp:  opts.AutoHelpThreshold,
		in:        bufio.NewScanner(opts.In),
		out:       opts.Out,
	}
	a.commands, a.order = commandTable()
	return a
}

// Run drives the interpreter until a terminal command, end of input, or
// context cancellation. Handler failures are always recoverable.
func (a *App) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompCLI)

	a.println(a.catalog.Get(config.TKeyGreeting))
	a.println(a.catalog.Get(config.TKeyHowHelp))

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgCtxCancel)
			a.println(a.catalog.Get(config.TKeyGoodbye))
			return nil
		default:
		}

		a.print(config.Prompt)
		line, ok := a.readLine()
		if !ok {
			log.Info(config.MsgSessionEnd)
			a.println(a.catalog.Get(config.TKeyGoodbye))
			return nil
		}

		if err := a.dispatch(ctx, line); errors.Is(err, errExit) {
			a.println(a.catalog.Get(config.TKeyGoodbye))
			return nil
		}
	}
}

// dispatch handles exactly one input line. It returns errExit for the
// terminal commands and nil otherwise; every other failure is consumed
// here.
func (a *App) dispatch(ctx context.Context, line string) error {
	name, args, err := parseLine(line)
	if err != nil || name == "" {
		a.softFailure()
		return nil
	}

	cmd, ok := a.commands[name]
	if !ok {
		a.println(a.catalog.Get(config.TKeyUnknownCmd))
		a.softFailure()
		return nil
	}
	a.failures = 0

	if len(args) < cmd.MinArgs {
		a.println(a.catalog.Getf(config.TKeyMissingArgs, map[string]any{"Usage": cmd.Usage}))
		return nil
	}

	out, err := cmd.Run(ctx, a, args)
	switch {
	case errors.Is(err, errExit):
		return errExit
	case err != nil:
		slog.Warn(config.MsgHandlerFailed,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyCommand, name,
			config.LogKeyError, err,
		)
		a.println(err.Error())
	case out != "":
		a.println(out)
	}
	return nil
}

// softFailure counts empty, unparsable, and unknown input; at the
// threshold the catalog is shown and the counter resets.
func (a *App) softFailure() {
	a.failures++
	if a.failures >= a.autoHelp {
		a.failures = 0
		a.println(a.catalog.Get(config.TKeyNeedHelpHint))
		a.println(a.renderHelp())
	}
}

func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return a.in.Text(), true
}

func (a *App) print(s string) {
	_, _ = fmt.Fprint(a.out, s)
}

func (a *App) println(s string) {
	_, _ = fmt.Fprintln(a.out, s)
}
