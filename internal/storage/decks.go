package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// CreateDeck inserts a new deck and returns its ID. An empty description is
// stored as NULL. A name that is already taken yields ErrDuplicate.
func (t *Tx) CreateDeck(ctx context.Context, name, description string) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO deck (name, description)
		VALUES (?, ?)
	`, name, nullString(description))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("deck %q: %w", name, ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert deck %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for deck %s: %w", name, err)
	}
	return id, nil
}

// ListDecks retrieves all decks ordered by ID.
func (t *Tx) ListDecks(ctx context.Context) ([]domain.Deck, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, name, description
		FROM deck ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		var description sql.NullString
		if err := rows.Scan(&d.ID, &d.Name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		d.Description = description.String
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deck rows: %w", err)
	}
	return decks, nil
}

// UpdateDeck renames a deck and replaces its description. It returns the
// number of affected rows.
func (t *Tx) UpdateDeck(ctx context.Context, id int64, name, description string) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE deck
		SET name = ?, description = ?
		WHERE id = ?
	`, name, nullString(description), id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("deck %q: %w", name, ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to update deck %d: %w", id, err)
	}
	return rowsAffected(res, "deck", id)
}

// DeleteDeck removes a deck and its card associations. The cards themselves
// are kept. It returns the number of affected rows.
func (t *Tx) DeleteDeck(ctx context.Context, id int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		DELETE FROM deck
		WHERE id = ?
	`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete deck %d: %w", id, err)
	}
	return rowsAffected(res, "deck", id)
}

// DeckExists reports whether a deck with the given ID exists.
func (t *Tx) DeckExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM deck WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check deck %d: %w", id, err)
	}
	return exists, nil
}

// DeckInfo summarizes a deck for display.
type DeckInfo struct {
	Deck      domain.Deck
	CardCount int
	DueCount  int
}

func (i DeckInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s", i.Deck.ID, i.Deck.Name)
	if i.Deck.Description != "" {
		fmt.Fprintf(&b, " (%s)", i.Deck.Description)
	}
	fmt.Fprintf(&b, "\n%d cards, %d due", i.CardCount, i.DueCount)
	return b.String()
}

// DeckInfo retrieves a deck with its card count and the number of cards due
// for review at now. Cards that were never reviewed count as due. It returns
// nil when the deck does not exist.
func (t *Tx) DeckInfo(ctx context.Context, id int64, now time.Time) (*DeckInfo, error) {
	var info DeckInfo
	var description sql.NullString
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, name, description
		FROM deck WHERE id = ?
	`, id).Scan(&info.Deck.ID, &info.Deck.Name, &description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Deck not found
		}
		return nil, fmt.Errorf("failed to find deck %d: %w", id, err)
	}
	info.Deck.Description = description.String

	rows, err := t.tx.QueryContext(ctx, `
		SELECT s.due_date
		FROM deck_card dc
		LEFT JOIN schedule s ON s.card_id = dc.card_id
		WHERE dc.deck_id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules for deck %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var due sql.NullTime
		if err := rows.Scan(&due); err != nil {
			return nil, fmt.Errorf("failed to scan schedule row for deck %d: %w", id, err)
		}
		info.CardCount++
		if !due.Valid || !due.Time.After(now) {
			info.DueCount++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule rows for deck %d: %w", id, err)
	}
	return &info, nil
}

// AddCardToDeck associates a card with a deck. It reports false when the card
// was already in the deck.
func (t *Tx) AddCardToDeck(ctx context.Context, cardID, deckID int64) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO deck_card (deck_id, card_id)
		VALUES (?, ?)
	`, deckID, cardID)
	if err != nil {
		return false, fmt.Errorf("failed to add card %d to deck %d: %w", cardID, deckID, err)
	}
	n, err := rowsAffected(res, "deck", deckID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
