package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// CreateCard inserts a new card and returns its ID. The hash is stored only
// when set.
func (t *Tx) CreateCard(ctx context.Context, card domain.Card) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO card (front, back, hash)
		VALUES (?, ?, ?)
	`, card.Front, card.Back, nullString(card.Hash))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("card with hash %s: %w", card.Hash, ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for card: %w", err)
	}
	return id, nil
}

// ListCards retrieves every card ordered by ID.
func (t *Tx) ListCards(ctx context.Context) ([]domain.Card, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, front, back, hash
		FROM card ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return scanCards(rows)
}

// ListCardsForDeck retrieves the cards associated with a deck ordered by ID.
func (t *Tx) ListCardsForDeck(ctx context.Context, deckID int64) ([]domain.Card, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT c.id, c.front, c.back, c.hash
		FROM card c
		JOIN deck_card dc ON dc.card_id = c.id
		WHERE dc.deck_id = ?
		ORDER BY c.id
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards for deck %d: %w", deckID, err)
	}
	return scanCards(rows)
}

func scanCards(rows *sql.Rows) ([]domain.Card, error) {
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		var hash sql.NullString
		if err := rows.Scan(&c.ID, &c.Front, &c.Back, &hash); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		c.Hash = hash.String
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card rows: %w", err)
	}
	return cards, nil
}

// FindCardByHash retrieves an imported card by its content hash.
// It returns nil when no card has that hash.
func (t *Tx) FindCardByHash(ctx context.Context, hash string) (*domain.Card, error) {
	var c domain.Card
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, front, back, hash
		FROM card WHERE hash = ?
	`, hash).Scan(&c.ID, &c.Front, &c.Back, &c.Hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Card not found
		}
		return nil, fmt.Errorf("failed to find card by hash %s: %w", hash, err)
	}
	return &c, nil
}

// CardExists reports whether a card with the given ID exists.
func (t *Tx) CardExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM card WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check card %d: %w", id, err)
	}
	return exists, nil
}

// UpdateCard overwrites the sides that are non-nil and leaves the others
// untouched. It returns the number of affected rows, zero when no card has
// the given ID.
func (t *Tx) UpdateCard(ctx context.Context, id int64, front, back *string) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE card
		SET front = COALESCE(?, front), back = COALESCE(?, back)
		WHERE id = ?
	`, front, back, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update card %d: %w", id, err)
	}
	return rowsAffected(res, "card", id)
}

// DeleteCard removes a card by its ID and returns the number of affected
// rows. A missing ID is not an error.
func (t *Tx) DeleteCard(ctx context.Context, id int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		DELETE FROM card
		WHERE id = ?
	`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	return rowsAffected(res, "card", id)
}

func rowsAffected(res sql.Result, table string, id int64) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows for %s %d: %w", table, id, err)
	}
	return n, nil
}
