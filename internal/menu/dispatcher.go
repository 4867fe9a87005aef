package menu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/importer"
	"github.com/conorfennell/flashdeck/internal/navigation"
	"github.com/conorfennell/flashdeck/internal/prompt"
	"github.com/conorfennell/flashdeck/internal/review"
	"github.com/conorfennell/flashdeck/internal/storage"
	"github.com/conorfennell/flashdeck/internal/validate"
)

// Store is every persistence operation the menus use. *storage.Tx
// satisfies it.
type Store interface {
	review.Store
	importer.Store

	ListCards(ctx context.Context) ([]domain.Card, error)
	CardExists(ctx context.Context, id int64) (bool, error)
	UpdateCard(ctx context.Context, id int64, front, back *string) (int64, error)
	DeleteCard(ctx context.Context, id int64) (int64, error)

	CreateDeck(ctx context.Context, name, description string) (int64, error)
	ListDecks(ctx context.Context) ([]domain.Deck, error)
	UpdateDeck(ctx context.Context, id int64, name, description string) (int64, error)
	DeleteDeck(ctx context.Context, id int64) (int64, error)
	DeckExists(ctx context.Context, id int64) (bool, error)
	DeckInfo(ctx context.Context, id int64, now time.Time) (*storage.DeckInfo, error)
	DeckReport(ctx context.Context, deckID int64) ([]domain.AnswerRow, error)
}

// Reviewer runs a review session.
type Reviewer interface {
	Run(ctx context.Context, store review.Store, deckID int64) (review.Tally, error)
}

// Importer brings cards from a directory or repository into a deck.
type Importer interface {
	Import(ctx context.Context, store importer.Store, source string, deckID int64) (importer.Result, error)
}

// Dispatcher shows the menu for a state, reads the user's choice and
// performs it. It holds the navigation history so that "Go back" resolves
// against where the user actually came from.
type Dispatcher struct {
	io       prompt.IO
	nav      *navigation.History[State]
	reviewer Reviewer
	importer Importer
	validate *validate.Validator
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithReviewer replaces the default review engine.
func WithReviewer(r Reviewer) Option {
	return func(d *Dispatcher) { d.reviewer = r }
}

// WithImporter sets the card importer. Without one, importing is refused.
func WithImporter(im Importer) Option {
	return func(d *Dispatcher) { d.importer = im }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher creates a Dispatcher that talks through io and moves through
// nav.
func NewDispatcher(io prompt.IO, nav *navigation.History[State], opts ...Option) *Dispatcher {
	d := &Dispatcher{
		io:       io,
		nav:      nav,
		validate: validate.New(),
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.reviewer == nil {
		d.reviewer = review.New(io, review.WithLogger(d.logger))
	}
	return d
}

// Resolve shows the menu of state, waits for a valid choice and processes
// it. It returns the state to move to and whether the tool should keep
// running.
func (d *Dispatcher) Resolve(ctx context.Context, state State, store Store) (State, bool, error) {
	switch state.Kind {
	case MainMenu:
		opt, err := MainOptions.Choose(d.io, state.Title())
		if err != nil {
			return state, false, err
		}
		return d.processMain(opt)
	case DeckMenu:
		opt, err := DeckOptions.Choose(d.io, state.Title())
		if err != nil {
			return state, false, err
		}
		return d.processDeck(ctx, opt, store)
	case DeckDetailMenu:
		opt, err := DeckDetailOptions.Choose(d.io, state.Title())
		if err != nil {
			return state, false, err
		}
		return d.processDeckDetail(ctx, opt.bind(state.DeckID), store)
	case CardMenu:
		opt, err := CardOptions.Choose(d.io, state.Title())
		if err != nil {
			return state, false, err
		}
		return d.processCard(ctx, opt, store)
	case CardSubMenu:
		opt, err := CardSubOptions.Choose(d.io, state.Title())
		if err != nil {
			return state, false, err
		}
		return d.processCardSub(ctx, opt, store)
	}
	return state, false, errors.Errorf("no menu for state %s", state)
}

func (d *Dispatcher) processMain(opt MainOption) (State, bool, error) {
	switch opt {
	case MainDecks:
		return Decks(), true, nil
	case MainCards:
		return Cards(), true, nil
	case MainQuit:
		return Main(), false, nil
	}
	return Main(), true, errors.Errorf("unhandled main menu option %s", opt)
}

func (d *Dispatcher) goBack() (State, bool, error) {
	return d.nav.Back(), true, nil
}

func (d *Dispatcher) printf(format string, args ...any) {
	d.io.WriteLine(fmt.Sprintf(format, args...))
}

// table writes rows as aligned columns under header.
func (d *Dispatcher) table(header []string, rows [][]string) {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	d.io.WriteLine(strings.TrimRight(b.String(), "\n"))
}

// oneLine keeps multi-line card text on a single table row.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " / ")
}
