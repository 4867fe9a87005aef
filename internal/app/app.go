// Package app runs the interactive menu loop.
package app

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/conorfennell/flashdeck/internal/menu"
	"github.com/conorfennell/flashdeck/internal/navigation"
	"github.com/conorfennell/flashdeck/internal/prompt"
	"github.com/conorfennell/flashdeck/internal/storage"
)

// Resolver makes one menu decision. *menu.Dispatcher is the implementation.
type Resolver interface {
	Resolve(ctx context.Context, state menu.State, store menu.Store) (menu.State, bool, error)
}

// App owns the outer loop: one unit of work per menu decision.
type App struct {
	db          *storage.DB
	resolver    Resolver
	nav         *navigation.History[menu.State]
	io          prompt.IO
	clearScreen bool
	logger      *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithClearScreen clears the terminal whenever the menu changes.
func WithClearScreen(clear bool) Option {
	return func(a *App) { a.clearScreen = clear }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// New creates an App that reads decisions through resolver and moves
// through nav, starting a unit of work on db for each one.
func New(db *storage.DB, io prompt.IO, nav *navigation.History[menu.State], resolver Resolver, opts ...Option) *App {
	a := &App{
		db:       db,
		resolver: resolver,
		nav:      nav,
		io:       io,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run loops until the user quits or input ends. Each decision runs in its
// own unit of work, which is committed when the decision succeeds, Quit
// included, and rolled back when it fails. A failed decision is reported and
// the user stays where they were. Failing to start a unit of work ends the
// loop with an error.
func (a *App) Run(ctx context.Context) error {
	var shown *menu.State
	for {
		state := a.nav.Current()
		if a.clearScreen && (shown == nil || *shown != state) {
			prompt.Clear(a.io)
		}
		shown = &state

		tx, err := a.db.Begin(ctx)
		if err != nil {
			return errors.Wrap(err, "start unit of work")
		}

		next, cont, err := a.resolver.Resolve(ctx, state, tx)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				a.logger.Error("rollback failed", "state", state, "err", rbErr)
			}
			if errors.Is(err, prompt.ErrInputClosed) {
				a.logger.Debug("input closed", "state", state)
				a.io.WriteLine("")
				a.io.WriteLine("Goodbye.")
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			a.logger.Error("menu action failed", "state", state, "err", err)
			a.io.WriteLine("Something went wrong, nothing was saved: " + err.Error())
			continue
		}

		a.nav.Navigate(next)
		if err := tx.Commit(); err != nil {
			return errors.Wrap(err, "commit unit of work")
		}
		a.logger.Debug("decision committed", "from", state, "to", next, "continue", cont)

		if !cont {
			a.io.WriteLine("Goodbye.")
			return nil
		}
	}
}
