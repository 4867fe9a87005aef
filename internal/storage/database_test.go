package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/flashdeck/internal/domain"
)

func newTestTx(t *testing.T) (*Tx, context.Context) {
	t.Helper()
	ctx := context.Background()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { tx.Rollback() })
	return tx, ctx
}

func strPtr(s string) *string { return &s }

func TestCards(t *testing.T) {
	tx, ctx := newTestTx(t)

	id, err := tx.CreateCard(ctx, domain.Card{Front: "front", Back: "back"})
	require.NoError(t, err)
	_, err = tx.CreateCard(ctx, domain.Card{Front: "front2", Back: "back2"})
	require.NoError(t, err)

	cards, err := tx.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, domain.Card{ID: id, Front: "front", Back: "back"}, cards[0])

	t.Run("partial update keeps the other side", func(t *testing.T) {
		n, err := tx.UpdateCard(ctx, id, strPtr("new front"), nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		cards, err := tx.ListCards(ctx)
		require.NoError(t, err)
		assert.Equal(t, "new front", cards[0].Front)
		assert.Equal(t, "back", cards[0].Back)
	})

	t.Run("update of a missing card affects nothing", func(t *testing.T) {
		n, err := tx.UpdateCard(ctx, 999, strPtr("x"), strPtr("y"))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("delete of a missing card is not an error", func(t *testing.T) {
		n, err := tx.DeleteCard(ctx, 999)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("delete removes the card", func(t *testing.T) {
		n, err := tx.DeleteCard(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		cards, err := tx.ListCards(ctx)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.NotEqual(t, id, cards[0].ID)

		exists, err := tx.CardExists(ctx, id)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestCardHash(t *testing.T) {
	tx, ctx := newTestTx(t)

	found, err := tx.FindCardByHash(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, found)

	id, err := tx.CreateCard(ctx, domain.Card{Front: "Q", Back: "A", Hash: "abc"})
	require.NoError(t, err)

	found, err = tx.FindCardByHash(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)

	_, err = tx.CreateCard(ctx, domain.Card{Front: "Q", Back: "A", Hash: "abc"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	// Hand-made cards have no hash and never collide.
	_, err = tx.CreateCard(ctx, domain.Card{Front: "Q", Back: "A"})
	require.NoError(t, err)
	_, err = tx.CreateCard(ctx, domain.Card{Front: "Q", Back: "A"})
	require.NoError(t, err)
}

func TestDecks(t *testing.T) {
	tx, ctx := newTestTx(t)

	id, err := tx.CreateDeck(ctx, "spanish", "verbs")
	require.NoError(t, err)

	_, err = tx.CreateDeck(ctx, "spanish", "again")
	assert.True(t, errors.Is(err, ErrDuplicate))

	exists, err := tx.DeckExists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = tx.DeckExists(ctx, id+1)
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := tx.UpdateDeck(ctx, id, "español", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	decks, err := tx.ListDecks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Deck{{ID: id, Name: "español"}}, decks)

	n, err = tx.DeleteDeck(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeckCards(t *testing.T) {
	tx, ctx := newTestTx(t)

	deckID, err := tx.CreateDeck(ctx, "capitals", "")
	require.NoError(t, err)
	cardID, err := tx.CreateCard(ctx, domain.Card{Front: "France", Back: "Paris"})
	require.NoError(t, err)
	_, err = tx.CreateCard(ctx, domain.Card{Front: "Spain", Back: "Madrid"})
	require.NoError(t, err)

	added, err := tx.AddCardToDeck(ctx, cardID, deckID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = tx.AddCardToDeck(ctx, cardID, deckID)
	require.NoError(t, err)
	assert.False(t, added)

	cards, err := tx.ListCardsForDeck(ctx, deckID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Paris", cards[0].Back)

	now := time.Now()
	info, err := tx.DeckInfo(ctx, deckID, now)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 1, info.CardCount)
	assert.Equal(t, 1, info.DueCount)
	assert.Contains(t, info.String(), "capitals")

	require.NoError(t, tx.SaveCardSchedule(ctx, domain.Schedule{
		CardID:     cardID,
		Stability:  3,
		Difficulty: 5,
		DueAt:      now.Add(72 * time.Hour),
		LastReview: now,
	}))
	info, err = tx.DeckInfo(ctx, deckID, now)
	require.NoError(t, err)
	assert.Equal(t, 0, info.DueCount)

	// Deleting the deck drops the association but keeps the card.
	n, err := tx.DeleteDeck(ctx, deckID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := tx.ListCards(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	info, err = tx.DeckInfo(ctx, deckID, now)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestAddCardToDeckRequiresBothSides(t *testing.T) {
	tx, ctx := newTestTx(t)

	deckID, err := tx.CreateDeck(ctx, "empty", "")
	require.NoError(t, err)

	_, err = tx.AddCardToDeck(ctx, 404, deckID)
	assert.Error(t, err)
}

func TestReviewHistory(t *testing.T) {
	tx, ctx := newTestTx(t)

	deckID, err := tx.CreateDeck(ctx, "math", "")
	require.NoError(t, err)
	cardID, err := tx.CreateCard(ctx, domain.Card{Front: "1+1", Back: "2"})
	require.NoError(t, err)

	sessionID, err := tx.CreateReviewSession(ctx, time.Now())
	require.NoError(t, err)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, submitted := range []string{"3", "2"} {
		require.NoError(t, tx.RecordAnswer(ctx, domain.Answer{
			SessionID:  sessionID,
			CardID:     cardID,
			DeckID:     deckID,
			Submitted:  submitted,
			Correct:    "2",
			AnsweredAt: at,
		}))
	}

	report, err := tx.DeckReport(ctx, deckID)
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.False(t, report[0].IsCorrect())
	assert.True(t, report[1].IsCorrect())
	assert.Equal(t, "1+1", report[0].Front)
	assert.True(t, at.Equal(report[0].AnsweredAt))

	// History survives the card.
	_, err = tx.DeleteCard(ctx, cardID)
	require.NoError(t, err)
	report, err = tx.DeckReport(ctx, deckID)
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Empty(t, report[0].Front)
}

func TestCardSchedule(t *testing.T) {
	tx, ctx := newTestTx(t)

	cardID, err := tx.CreateCard(ctx, domain.Card{Front: "a", Back: "b"})
	require.NoError(t, err)

	s, err := tx.CardSchedule(ctx, cardID)
	require.NoError(t, err)
	assert.Nil(t, s)

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, stability := range []float64{1, 4.5} {
		require.NoError(t, tx.SaveCardSchedule(ctx, domain.Schedule{
			CardID:     cardID,
			Stability:  stability,
			Difficulty: 5,
			DueAt:      due,
			LastReview: due.Add(-24 * time.Hour),
		}))
	}

	s, err = tx.CardSchedule(ctx, cardID)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 4.5, s.Stability)
	assert.True(t, due.Equal(s.DueAt))
}

func TestUsers(t *testing.T) {
	tx, ctx := newTestTx(t)

	u, err := tx.FindUserByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Nil(t, u)

	id, err := tx.CreateUser(ctx, "ada", "hash")
	require.NoError(t, err)

	_, err = tx.CreateUser(ctx, "ada", "other")
	assert.True(t, errors.Is(err, ErrDuplicate))

	u, err = tx.FindUserByUsername(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	err = db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.CreateDeck(ctx, "doomed", ""); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "boom", "a clean rollback adds nothing to the error")

	require.NoError(t, db.WithTx(ctx, func(tx *Tx) error {
		decks, err := tx.ListDecks(ctx)
		require.NoError(t, err)
		assert.Empty(t, decks)
		return nil
	}))
}
