package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// CreateReviewSession starts a new review session and returns its ID.
func (t *Tx) CreateReviewSession(ctx context.Context, startedAt time.Time) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO session (started_at)
		VALUES (?)
	`, startedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert review session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for review session: %w", err)
	}
	return id, nil
}

// RecordAnswer appends one attempt to the review history.
func (t *Tx) RecordAnswer(ctx context.Context, a domain.Answer) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO answer (session_id, card_id, deck_id, submitted_answer, correct_answer, time)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		a.SessionID,
		a.CardID,
		a.DeckID,
		a.Submitted,
		a.Correct,
		a.AnsweredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record answer for card %d in session %d: %w", a.CardID, a.SessionID, err)
	}
	return nil
}

// DeckReport retrieves every recorded answer for a deck, oldest first.
func (t *Tx) DeckReport(ctx context.Context, deckID int64) ([]domain.AnswerRow, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT a.id, a.session_id, a.card_id, c.front, a.submitted_answer, a.correct_answer, a.time
		FROM answer a
		LEFT JOIN card c ON c.id = a.card_id
		WHERE a.deck_id = ?
		ORDER BY a.id
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report for deck %d: %w", deckID, err)
	}
	defer rows.Close()

	var report []domain.AnswerRow
	for rows.Next() {
		var r domain.AnswerRow
		var front sql.NullString
		if err := rows.Scan(
			&r.AnswerID,
			&r.SessionID,
			&r.CardID,
			&front,
			&r.Submitted,
			&r.Correct,
			&r.AnsweredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan answer row for deck %d: %w", deckID, err)
		}
		r.Front = front.String
		report = append(report, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answer rows for deck %d: %w", deckID, err)
	}
	return report, nil
}

// CardSchedule retrieves the FSRS state of a card. It returns nil when the
// card has never been reviewed.
func (t *Tx) CardSchedule(ctx context.Context, cardID int64) (*domain.Schedule, error) {
	var s domain.Schedule
	err := t.tx.QueryRowContext(ctx, `
		SELECT card_id, stability, difficulty, due_date, last_review
		FROM schedule WHERE card_id = ?
	`, cardID).Scan(&s.CardID, &s.Stability, &s.Difficulty, &s.DueAt, &s.LastReview)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Never reviewed
		}
		return nil, fmt.Errorf("failed to find schedule for card %d: %w", cardID, err)
	}
	return &s, nil
}

// SaveCardSchedule inserts or replaces the FSRS state of a card.
func (t *Tx) SaveCardSchedule(ctx context.Context, s domain.Schedule) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO schedule (card_id, stability, difficulty, due_date, last_review)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(card_id) DO UPDATE SET
			stability = excluded.stability,
			difficulty = excluded.difficulty,
			due_date = excluded.due_date,
			last_review = excluded.last_review
	`,
		s.CardID,
		s.Stability,
		s.Difficulty,
		s.DueAt.UTC(),
		s.LastReview.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save schedule for card %d: %w", s.CardID, err)
	}
	return nil
}
