// Package review runs self-graded quiz sessions over the cards of a deck.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/fsrs"
	"github.com/conorfennell/flashdeck/internal/prompt"
)

// Store is the persistence the engine needs, normally a storage unit of work.
type Store interface {
	ListCardsForDeck(ctx context.Context, deckID int64) ([]domain.Card, error)
	CreateReviewSession(ctx context.Context, startedAt time.Time) (int64, error)
	RecordAnswer(ctx context.Context, a domain.Answer) error
	CardSchedule(ctx context.Context, cardID int64) (*domain.Schedule, error)
	SaveCardSchedule(ctx context.Context, s domain.Schedule) error
}

// Tally is the outcome of a session. Incorrect counts attempts, not cards, so
// it can exceed the number of cards in the deck.
type Tally struct {
	SessionID int64
	Correct   int
	Incorrect int
}

func (t Tally) String() string {
	return fmt.Sprintf("%d correct, %d incorrect", t.Correct, t.Incorrect)
}

// Engine quizzes the user on a deck.
type Engine struct {
	io      prompt.IO
	params  *fsrs.Params
	shuffle func([]domain.Card)
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithShuffle replaces the random ordering of a deck's cards.
func WithShuffle(shuffle func([]domain.Card)) Option {
	return func(e *Engine) { e.shuffle = shuffle }
}

// InOrder keeps cards in the order the store returned them.
func InOrder([]domain.Card) {}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithParams replaces the default scheduling parameters.
func WithParams(p *fsrs.Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an Engine that talks to the user through io.
func New(io prompt.IO, opts ...Option) *Engine {
	e := &Engine{
		io:     io,
		params: fsrs.DefaultParams(),
		shuffle: func(cards []domain.Card) {
			rand.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
		},
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run reviews every card of the deck until each has been answered correctly
// once. Cards are taken from the back of the queue; a missed card is put at
// the front so it comes up again after the rest. Every attempt is recorded.
//
// A storage failure aborts the session. It cannot be resumed; the caller's
// unit of work decides whether the answers recorded so far are kept.
func (e *Engine) Run(ctx context.Context, store Store, deckID int64) (Tally, error) {
	logger := e.logger.With("deck_id", deckID)

	queue, err := store.ListCardsForDeck(ctx, deckID)
	if err != nil {
		return Tally{}, errors.Wrapf(err, "load cards for deck %d", deckID)
	}
	e.shuffle(queue)

	sessionID, err := store.CreateReviewSession(ctx, e.now())
	if err != nil {
		return Tally{}, errors.Wrap(err, "start review session")
	}
	tally := Tally{SessionID: sessionID}
	logger = logger.With("session_id", sessionID)
	logger.Info("review session started", "cards", len(queue))

	if len(queue) == 0 {
		e.io.WriteLine("This deck has no cards.")
		return tally, nil
	}

	missed := make(map[int64]bool)
	for len(queue) > 0 {
		card := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		e.io.WriteLine("")
		e.io.WriteLine(fmt.Sprintf("Q: %s", card.Front))
		line, err := e.io.ReadLine("A: ")
		if err != nil {
			return tally, err
		}
		submitted := strings.TrimSpace(line)

		if err := store.RecordAnswer(ctx, domain.Answer{
			SessionID:  sessionID,
			CardID:     card.ID,
			DeckID:     deckID,
			Submitted:  submitted,
			Correct:    card.Back,
			AnsweredAt: e.now(),
		}); err != nil {
			return tally, errors.Wrapf(err, "record answer for card %d", card.ID)
		}

		if submitted != card.Back {
			tally.Incorrect++
			missed[card.ID] = true
			e.io.WriteLine(fmt.Sprintf("Incorrect. The answer is: %s", card.Back))
			queue = append([]domain.Card{card}, queue...)
			continue
		}

		tally.Correct++
		e.io.WriteLine("Correct!")
		if err := e.reschedule(ctx, store, card.ID, missed[card.ID]); err != nil {
			return tally, err
		}
	}

	logger.Info("review session finished", "correct", tally.Correct, "incorrect", tally.Incorrect)
	return tally, nil
}

// reschedule updates the FSRS state of a card once it has been answered
// correctly. A card missed earlier in the session counts as forgotten.
func (e *Engine) reschedule(ctx context.Context, store Store, cardID int64, wasMissed bool) error {
	now := e.now()
	current, err := store.CardSchedule(ctx, cardID)
	if err != nil {
		return errors.Wrapf(err, "load schedule for card %d", cardID)
	}
	if current == nil {
		initial := fsrs.Initial(cardID, now)
		current = &initial
	}

	rating := fsrs.Good
	if wasMissed {
		rating = fsrs.Again
	}
	next := e.params.Next(*current, rating, now)
	if err := store.SaveCardSchedule(ctx, next); err != nil {
		return errors.Wrapf(err, "save schedule for card %d", cardID)
	}
	return nil
}
