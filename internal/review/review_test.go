package review

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/fsrs"
	"github.com/conorfennell/flashdeck/internal/prompt"
	"github.com/conorfennell/flashdeck/internal/storage"
)

type fakeStore struct {
	cards      []domain.Card
	sessions   int
	answers    []domain.Answer
	schedules  map[int64]domain.Schedule
	failRecord error
}

func (f *fakeStore) ListCardsForDeck(_ context.Context, _ int64) ([]domain.Card, error) {
	return append([]domain.Card(nil), f.cards...), nil
}

func (f *fakeStore) CreateReviewSession(_ context.Context, _ time.Time) (int64, error) {
	f.sessions++
	return int64(f.sessions), nil
}

func (f *fakeStore) RecordAnswer(_ context.Context, a domain.Answer) error {
	if f.failRecord != nil {
		return f.failRecord
	}
	f.answers = append(f.answers, a)
	return nil
}

func (f *fakeStore) CardSchedule(_ context.Context, cardID int64) (*domain.Schedule, error) {
	s, ok := f.schedules[cardID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStore) SaveCardSchedule(_ context.Context, s domain.Schedule) error {
	if f.schedules == nil {
		f.schedules = make(map[int64]domain.Schedule)
	}
	f.schedules[s.CardID] = s
	return nil
}

var fixedNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func newEngine(input string) (*Engine, *bytes.Buffer) {
	var out bytes.Buffer
	io := prompt.NewStream(strings.NewReader(input), &out)
	return New(io, WithShuffle(InOrder), WithClock(func() time.Time { return fixedNow })), &out
}

func TestRunRetriesMissedCards(t *testing.T) {
	store := &fakeStore{cards: []domain.Card{
		{ID: 1, Front: "X?", Back: "x"},
		{ID: 2, Front: "Y?", Back: "y"},
	}}
	// Cards come off the back of the queue: Y first, then X, then X again.
	engine, out := newEngine("y\nwrong\n  x  \n")

	tally, err := engine.Run(context.Background(), store, 7)
	require.NoError(t, err)

	assert.Equal(t, 2, tally.Correct)
	assert.Equal(t, 1, tally.Incorrect)
	assert.Equal(t, int64(1), tally.SessionID)
	assert.Equal(t, 1, store.sessions)

	require.Len(t, store.answers, 3)
	assert.Equal(t, int64(2), store.answers[0].CardID)
	assert.Equal(t, "wrong", store.answers[1].Submitted)
	assert.Equal(t, "x", store.answers[1].Correct)
	assert.Equal(t, "x", store.answers[2].Submitted)
	for _, a := range store.answers {
		assert.Equal(t, int64(7), a.DeckID)
		assert.Equal(t, int64(1), a.SessionID)
		assert.Equal(t, fixedNow, a.AnsweredAt)
	}

	assert.Contains(t, out.String(), "Incorrect. The answer is: x")

	// The missed card is rescheduled as forgotten, the other as remembered.
	require.Len(t, store.schedules, 2)
	assert.Equal(t, 1.0, store.schedules[1].Stability)
	assert.Greater(t, store.schedules[2].Stability, fsrs.InitialStability)
}

func TestRunIsCaseSensitive(t *testing.T) {
	store := &fakeStore{cards: []domain.Card{{ID: 1, Front: "Capital of France", Back: "Paris"}}}
	engine, _ := newEngine("paris\nParis\n")

	tally, err := engine.Run(context.Background(), store, 1)
	require.NoError(t, err)
	assert.Equal(t, Tally{SessionID: 1, Correct: 1, Incorrect: 1}, tally)
}

func TestRunEmptyDeck(t *testing.T) {
	store := &fakeStore{}
	engine, out := newEngine("")

	tally, err := engine.Run(context.Background(), store, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, tally.Correct)
	assert.Equal(t, 0, tally.Incorrect)
	assert.Equal(t, 1, store.sessions)
	assert.Empty(t, store.answers)
	assert.Contains(t, out.String(), "no cards")
}

func TestRunAbortsOnStorageFailure(t *testing.T) {
	boom := errors.New("disk full")
	store := &fakeStore{
		cards:      []domain.Card{{ID: 1, Front: "a", Back: "b"}},
		failRecord: boom,
	}
	engine, _ := newEngine("b\n")

	_, err := engine.Run(context.Background(), store, 1)
	assert.True(t, errors.Is(err, boom))
}

func TestRunStopsWhenInputCloses(t *testing.T) {
	store := &fakeStore{cards: []domain.Card{{ID: 1, Front: "a", Back: "b"}}}
	engine, _ := newEngine("nope\n")

	tally, err := engine.Run(context.Background(), store, 1)
	assert.True(t, errors.Is(err, prompt.ErrInputClosed))
	assert.Equal(t, 1, tally.Incorrect)
	assert.Len(t, store.answers, 1)
}

func TestRunAgainstStorage(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	deckID, err := tx.CreateDeck(ctx, "greek", "")
	require.NoError(t, err)
	for _, c := range []domain.Card{{Front: "alpha", Back: "a"}, {Front: "beta", Back: "b"}} {
		id, err := tx.CreateCard(ctx, c)
		require.NoError(t, err)
		_, err = tx.AddCardToDeck(ctx, id, deckID)
		require.NoError(t, err)
	}

	engine, _ := newEngine("b\nx\na\n")
	tally, err := engine.Run(ctx, tx, deckID)
	require.NoError(t, err)
	assert.Equal(t, 2, tally.Correct)
	assert.Equal(t, 1, tally.Incorrect)

	report, err := tx.DeckReport(ctx, deckID)
	require.NoError(t, err)
	assert.Len(t, report, 3)

	info, err := tx.DeckInfo(ctx, deckID, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 0, info.DueCount)
}
