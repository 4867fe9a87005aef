// Package menu renders the menus of the interactive tool, reads the user's
// choice and carries it out against a unit of work.
package menu

import "fmt"

// Kind identifies a menu context.
type Kind int

const (
	MainMenu Kind = iota
	DeckMenu
	DeckDetailMenu
	CardMenu
	CardSubMenu
)

func (k Kind) String() string {
	switch k {
	case MainMenu:
		return "MainMenu"
	case DeckMenu:
		return "DeckMenu"
	case DeckDetailMenu:
		return "DeckDetailMenu"
	case CardMenu:
		return "CardMenu"
	case CardSubMenu:
		return "CardSubMenu"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// State is a place in the menu tree. DeckID is set only for DeckDetailMenu.
type State struct {
	Kind   Kind
	DeckID int64
}

// Main is the state the tool starts in.
func Main() State { return State{Kind: MainMenu} }

// Decks is the deck management menu.
func Decks() State { return State{Kind: DeckMenu} }

// DeckDetail is the menu for a single deck.
func DeckDetail(deckID int64) State { return State{Kind: DeckDetailMenu, DeckID: deckID} }

// Cards is the card management menu.
func Cards() State { return State{Kind: CardMenu} }

// CardFields is the menu for editing one side of a card.
func CardFields() State { return State{Kind: CardSubMenu} }

func (s State) String() string {
	if s.Kind == DeckDetailMenu {
		return fmt.Sprintf("%s(%d)", s.Kind, s.DeckID)
	}
	return s.Kind.String()
}

// Title is the heading shown above the menu.
func (s State) Title() string {
	switch s.Kind {
	case MainMenu:
		return "Main menu"
	case DeckMenu:
		return "Decks"
	case DeckDetailMenu:
		return fmt.Sprintf("Deck %d", s.DeckID)
	case CardMenu:
		return "Cards"
	case CardSubMenu:
		return "Edit a card"
	}
	return s.String()
}
