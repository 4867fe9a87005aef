package domain

import "time"

// Card represents a single front/back flashcard.
type Card struct {
	ID    int64
	Front string
	Back  string
	// Hash is set only for cards brought in by an import. It is empty for
	// cards created by hand.
	Hash string
}

// Deck is a named collection of cards. A card may belong to any number of decks.
type Deck struct {
	ID          int64
	Name        string
	Description string
}

// ReviewSession correlates the answers given during one review run.
type ReviewSession struct {
	ID        int64
	StartedAt time.Time
}

// Answer records a single attempt at a card during a review session.
// Answers are append-only.
type Answer struct {
	SessionID  int64
	CardID     int64
	DeckID     int64
	Submitted  string
	Correct    string
	AnsweredAt time.Time
}

// AnswerRow is one line of a deck report.
type AnswerRow struct {
	AnswerID   int64
	SessionID  int64
	CardID     int64
	Front      string
	Submitted  string
	Correct    string
	AnsweredAt time.Time
}

// IsCorrect reports whether the submitted text matched the card's back.
func (r AnswerRow) IsCorrect() bool {
	return r.Submitted == r.Correct
}

// Schedule holds the FSRS memory state of a card.
type Schedule struct {
	CardID     int64
	Stability  float64
	Difficulty float64
	DueAt      time.Time
	LastReview time.Time
}

// User is the person operating the terminal.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Guest is the user assumed when authentication is disabled or fails.
func Guest() User {
	return User{Username: "guest"}
}

// IsGuest reports whether u is the unauthenticated guest user.
func (u User) IsGuest() bool {
	return u.ID == 0
}
