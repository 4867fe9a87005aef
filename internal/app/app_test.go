package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/menu"
	"github.com/conorfennell/flashdeck/internal/navigation"
	"github.com/conorfennell/flashdeck/internal/prompt"
	"github.com/conorfennell/flashdeck/internal/review"
	"github.com/conorfennell/flashdeck/internal/storage"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func openDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func run(t *testing.T, db *storage.DB, input string) (string, *navigation.History[menu.State], error) {
	t.Helper()
	var out bytes.Buffer
	stream := prompt.NewStream(strings.NewReader(input), &out)
	nav := navigation.New(menu.Main())
	d := menu.NewDispatcher(stream, nav,
		menu.WithReviewer(review.New(stream, review.WithShuffle(review.InOrder), review.WithLogger(discard))),
		menu.WithLogger(discard),
	)
	err := New(db, stream, nav, d, WithLogger(discard)).Run(context.Background())
	return out.String(), nav, err
}

func TestQuitCommits(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	out, _, err := run(t, db, "1\n1\nCapitals\nEuropean\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Created deck 1.")
	assert.True(t, strings.HasSuffix(out, "Goodbye.\n"))

	require.NoError(t, db.WithTx(ctx, func(tx *storage.Tx) error {
		decks, err := tx.ListDecks(ctx)
		require.NoError(t, err)
		require.Len(t, decks, 1)
		assert.Equal(t, "Capitals", decks[0].Name)
		return nil
	}))
}

func TestNavigationThroughMenus(t *testing.T) {
	db := openDB(t)

	// Decks, Go back, Cards, Edit a single field, Card menu, Go back, Quit.
	// Going back from the card menu returns to the field menu it came from.
	out, nav, err := run(t, db, "1\n4\n2\n5\n3\n7\n4\n")
	require.NoError(t, err)
	assert.Equal(t, menu.CardFields(), nav.Current())
	assert.Contains(t, out, "== Edit a card ==")
}

func TestInputClosedRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	require.NoError(t, db.WithTx(ctx, func(tx *storage.Tx) error {
		deckID, err := tx.CreateDeck(ctx, "Capitals", "")
		require.NoError(t, err)
		cardID, err := tx.CreateCard(ctx, domain.Card{Front: "France", Back: "Paris"})
		require.NoError(t, err)
		_, err = tx.AddCardToDeck(ctx, cardID, deckID)
		return err
	}))

	// Decks, Choose deck 1, Review, answer, then input ends at "Review again?".
	out, _, err := run(t, db, "1\n3\n1\n5\nParis\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Session finished: 1 correct, 0 incorrect.")
	assert.Contains(t, out, "Goodbye.")

	require.NoError(t, db.WithTx(ctx, func(tx *storage.Tx) error {
		answers, err := tx.DeckReport(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, answers, "the interrupted review is rolled back")
		return nil
	}))
}

type scriptedResolver struct {
	steps []func(menu.State, menu.Store) (menu.State, bool, error)
	calls int
}

func (r *scriptedResolver) Resolve(_ context.Context, state menu.State, store menu.Store) (menu.State, bool, error) {
	step := r.steps[r.calls]
	r.calls++
	return step(state, store)
}

func TestFailedDecisionRollsBackAndContinues(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	var out bytes.Buffer
	stream := prompt.NewStream(strings.NewReader(""), &out)
	nav := navigation.New(menu.Main())

	resolver := &scriptedResolver{steps: []func(menu.State, menu.Store) (menu.State, bool, error){
		func(_ menu.State, store menu.Store) (menu.State, bool, error) {
			_, err := store.CreateDeck(ctx, "doomed", "")
			require.NoError(t, err)
			return menu.Decks(), true, errors.New("disk on fire")
		},
		func(state menu.State, _ menu.Store) (menu.State, bool, error) {
			assert.Equal(t, menu.Main(), state, "a failed decision does not move the user")
			return state, false, nil
		},
	}}

	err := New(db, stream, nav, resolver, WithLogger(discard)).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, resolver.calls)
	assert.Contains(t, out.String(), "disk on fire")

	require.NoError(t, db.WithTx(ctx, func(tx *storage.Tx) error {
		decks, err := tx.ListDecks(ctx)
		require.NoError(t, err)
		assert.Empty(t, decks)
		return nil
	}))
}

func TestBeginFailureIsFatal(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.Close())

	_, _, err := run(t, db, "3\n")
	assert.Error(t, err)
}
