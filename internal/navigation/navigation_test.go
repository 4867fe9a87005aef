package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type screen string

func TestNavigateIgnoresRepeat(t *testing.T) {
	h := New(screen("main"))

	h.Navigate("decks")
	h.Navigate("decks")

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, screen("decks"), h.Current())
}

func TestBackLandsOnPreviousMenu(t *testing.T) {
	h := New(screen("main"))
	h.Navigate("a")
	h.Navigate("b")

	assert.Equal(t, screen("a"), h.Back())
	assert.Equal(t, screen("a"), h.Current())
	assert.Equal(t, 2, h.Len())

	// Navigating to the menu Back already landed on must not push it again.
	h.Navigate("a")
	assert.Equal(t, 2, h.Len())
}

func TestBackNeverUnderflows(t *testing.T) {
	h := New(screen("main"))
	h.Navigate("a")

	assert.Equal(t, screen("main"), h.Back())
	assert.Equal(t, screen("main"), h.Back())
	assert.Equal(t, screen("main"), h.Back())
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, screen("main"), h.Initial())
}

func TestRevisitPushesAgain(t *testing.T) {
	h := New(screen("main"))
	h.Navigate("cards")
	h.Navigate("main")

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, screen("cards"), h.Back())
}
