// Package cardhash fingerprints card content so that re-importing the same
// source does not create duplicate cards.
package cardhash

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/flashdeck/internal/domain"
)

// Normalize joins the card's sides after trimming whitespace, lowercasing and
// normalizing line endings in each.
func Normalize(card domain.Card) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return strings.TrimSpace(p)
	}

	// The newline keeps "ab"+"c" and "a"+"bc" apart.
	return normalizePart(card.Front) + "\n" + normalizePart(card.Back)
}

// Hash returns the hex SHA-256 of the normalized card.
func Hash(card domain.Card) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(Normalize(card))))
}
