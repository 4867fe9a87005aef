// Package fsrs implements a simplified Free Spaced Repetition Scheduler used to
// decide when a reviewed card is due again.
package fsrs

import (
	"math"
	"time"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// Rating is the outcome of reviewing a card.
type Rating int

const (
	Again Rating = 1
	Hard  Rating = 2
	Good  Rating = 3
	Easy  Rating = 4
)

// Initial memory state of a card that has never been reviewed.
const (
	InitialStability  = 1.0
	InitialDifficulty = 5.0
	maxDifficulty     = 10.0
)

// Params holds the parameters for the FSRS algorithm.
type Params struct {
	A                float64 // scales the overall memory increase
	B                float64 // difficulty exponent
	C                float64 // stability exponent
	D                float64 // retention effect scaler
	DesiredRetention float64 // desired retention rate (e.g., 0.9 for 90%)
}

// DefaultParams provides a set of sensible default parameters to start with.
func DefaultParams() *Params {
	return &Params{
		A:                0.2,
		B:                0.5,
		C:                0.1,
		D:                4.0,
		DesiredRetention: 0.9,
	}
}

// Initial returns the schedule of a card that has never been reviewed. It is
// due immediately.
func Initial(cardID int64, now time.Time) domain.Schedule {
	return domain.Schedule{
		CardID:     cardID,
		Stability:  InitialStability,
		Difficulty: InitialDifficulty,
		DueAt:      now,
	}
}

// Next computes the schedule that follows a review of the card with the given
// rating at now.
func (p *Params) Next(s domain.Schedule, rating Rating, now time.Time) domain.Schedule {
	next := domain.Schedule{CardID: s.CardID, LastReview: now}

	switch rating {
	case Again:
		// Forgotten: stability resets to a day and the card gets harder.
		next.Stability = 1
		next.Difficulty = math.Min(maxDifficulty, s.Difficulty+0.5)
	case Hard:
		next.Stability = p.calculateNewStability(s.Stability, s.Difficulty)
		next.Difficulty = math.Min(maxDifficulty, s.Difficulty+0.1)
	case Easy:
		next.Stability = p.calculateNewStability(s.Stability, s.Difficulty)
		next.Difficulty = math.Max(1, s.Difficulty-0.1)
	default:
		next.Stability = p.calculateNewStability(s.Stability, s.Difficulty)
		next.Difficulty = s.Difficulty
	}

	next.DueAt = NextDueDate(next.Stability, now)
	return next
}

// calculateNewStability applies the core FSRS formula for a successful review.
func (p *Params) calculateNewStability(stability, difficulty float64) float64 {
	// Formula: S' = S * (1 + a * D^(-b) * S^c * (e^(d * (1-R)) - 1))
	if stability < 1 {
		stability = 1
	}
	if difficulty < 1 {
		difficulty = 1
	}

	factor := p.A * math.Pow(difficulty, -p.B) * math.Pow(stability, p.C)
	exponent := p.D * (1 - p.DesiredRetention)
	multiplier := math.Exp(exponent) - 1

	return stability * (1 + factor*multiplier)
}

// NextDueDate schedules the next review stability days after now, rounded to
// whole days.
func NextDueDate(stability float64, now time.Time) time.Time {
	days := time.Duration(math.Round(stability))
	return now.Add(days * 24 * time.Hour)
}
