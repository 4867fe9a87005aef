package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/conorfennell/flashdeck/internal/prompt"
)

// OptionSet is the ordered list of choices of one menu context. The user
// picks an option by its 1-based position.
type OptionSet[O any] struct {
	options []O
	label   func(O) string
}

func newOptionSet[O any](label func(O) string, options ...O) OptionSet[O] {
	return OptionSet[O]{options: options, label: label}
}

// Len returns the number of options.
func (s OptionSet[O]) Len() int { return len(s.options) }

// Options returns the options in display order.
func (s OptionSet[O]) Options() []O {
	return append([]O(nil), s.options...)
}

// Render prints the numbered options.
func (s OptionSet[O]) Render(io prompt.IO) {
	io.WriteLine("What would you like to do?")
	for i, o := range s.options {
		io.WriteLine(fmt.Sprintf("%d. %s", i+1, s.label(o)))
	}
}

// Parse maps input to the option at that position. Anything that is not an
// integer in [1, Len()] is no match.
func (s OptionSet[O]) Parse(input string) (O, bool) {
	var zero O
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(s.options) {
		return zero, false
	}
	return s.options[n-1], true
}

// Choose renders the options and reads a choice, asking again until the
// input matches an option.
func (s OptionSet[O]) Choose(io prompt.IO, title string) (O, error) {
	for {
		io.WriteLine("")
		io.WriteLine(fmt.Sprintf("== %s ==", title))
		s.Render(io)

		line, err := io.ReadLine("> ")
		if err != nil {
			var zero O
			return zero, err
		}
		if o, ok := s.Parse(line); ok {
			return o, nil
		}
		io.WriteLine(fmt.Sprintf("Invalid choice %q, enter a number from 1 to %d.", strings.TrimSpace(line), len(s.options)))
	}
}

// MainOption is a choice in the main menu.
type MainOption int

const (
	MainDecks MainOption = iota
	MainCards
	MainQuit
)

func (o MainOption) String() string {
	switch o {
	case MainDecks:
		return "Decks"
	case MainCards:
		return "Cards"
	case MainQuit:
		return "Quit"
	}
	return fmt.Sprintf("MainOption(%d)", int(o))
}

// MainOptions is the main menu.
var MainOptions = newOptionSet(MainOption.String, MainDecks, MainCards, MainQuit)

// DeckOption is a choice in the deck menu.
type DeckOption int

const (
	DeckCreate DeckOption = iota
	DeckList
	DeckChoose
	DeckGoBack
	DeckQuit
)

func (o DeckOption) String() string {
	switch o {
	case DeckCreate:
		return "Create deck"
	case DeckList:
		return "List decks"
	case DeckChoose:
		return "Choose deck"
	case DeckGoBack:
		return "Go back"
	case DeckQuit:
		return "Quit"
	}
	return fmt.Sprintf("DeckOption(%d)", int(o))
}

// DeckOptions is the deck menu.
var DeckOptions = newOptionSet(DeckOption.String, DeckCreate, DeckList, DeckChoose, DeckGoBack, DeckQuit)

// DeckDetailAction is what a deck detail option does.
type DeckDetailAction int

const (
	DeckView DeckDetailAction = iota
	DeckListCards
	DeckAddCard
	DeckCreateCard
	DeckReview
	DeckReport
	DeckImport
	DeckUpdate
	DeckDelete
	DeckDetailGoBack
	DeckDetailQuit
)

func (a DeckDetailAction) String() string {
	switch a {
	case DeckView:
		return "View"
	case DeckListCards:
		return "List cards"
	case DeckAddCard:
		return "Add existing card"
	case DeckCreateCard:
		return "Create card"
	case DeckReview:
		return "Review"
	case DeckReport:
		return "Report"
	case DeckImport:
		return "Import cards"
	case DeckUpdate:
		return "Update deck"
	case DeckDelete:
		return "Delete deck"
	case DeckDetailGoBack:
		return "Go back"
	case DeckDetailQuit:
		return "Quit"
	}
	return fmt.Sprintf("DeckDetailAction(%d)", int(a))
}

// acts reports whether the action works on a deck and so needs its id.
func (a DeckDetailAction) acts() bool {
	switch a {
	case DeckView, DeckListCards, DeckAddCard, DeckCreateCard, DeckReview,
		DeckReport, DeckImport, DeckUpdate, DeckDelete:
		return true
	case DeckDetailGoBack, DeckDetailQuit:
		return false
	}
	panic(fmt.Sprintf("menu: unknown deck detail action %d", int(a)))
}

// DeckDetailOption is a choice in a deck's menu. Parsed options carry a
// placeholder DeckID of zero until bound to the deck being shown.
type DeckDetailOption struct {
	Action DeckDetailAction
	DeckID int64
}

func (o DeckDetailOption) String() string { return o.Action.String() }

// bind stamps deckID onto every option that acts on a deck.
func (o DeckDetailOption) bind(deckID int64) DeckDetailOption {
	if o.Action.acts() {
		o.DeckID = deckID
	}
	return o
}

// DeckDetailOptions is the menu of a single deck.
var DeckDetailOptions = newOptionSet(DeckDetailOption.String,
	DeckDetailOption{Action: DeckView},
	DeckDetailOption{Action: DeckListCards},
	DeckDetailOption{Action: DeckAddCard},
	DeckDetailOption{Action: DeckCreateCard},
	DeckDetailOption{Action: DeckReview},
	DeckDetailOption{Action: DeckReport},
	DeckDetailOption{Action: DeckImport},
	DeckDetailOption{Action: DeckUpdate},
	DeckDetailOption{Action: DeckDelete},
	DeckDetailOption{Action: DeckDetailGoBack},
	DeckDetailOption{Action: DeckDetailQuit},
)

// CardOption is a choice in the card menu.
type CardOption int

const (
	CardCreate CardOption = iota
	CardList
	CardUpdate
	CardDelete
	CardEditField
	CardMainMenu
	CardGoBack
	CardQuit
)

func (o CardOption) String() string {
	switch o {
	case CardCreate:
		return "Create"
	case CardList:
		return "List"
	case CardUpdate:
		return "Update"
	case CardDelete:
		return "Delete"
	case CardEditField:
		return "Edit a single field"
	case CardMainMenu:
		return "Main menu"
	case CardGoBack:
		return "Go back"
	case CardQuit:
		return "Quit"
	}
	return fmt.Sprintf("CardOption(%d)", int(o))
}

// CardOptions is the card menu.
var CardOptions = newOptionSet(CardOption.String,
	CardCreate, CardList, CardUpdate, CardDelete, CardEditField, CardMainMenu, CardGoBack, CardQuit)

// CardSubOption is a choice in the card field menu.
type CardSubOption int

const (
	CardEditFront CardSubOption = iota
	CardEditBack
	CardSubCardMenu
	CardSubQuit
)

func (o CardSubOption) String() string {
	switch o {
	case CardEditFront:
		return "Edit front"
	case CardEditBack:
		return "Edit back"
	case CardSubCardMenu:
		return "Card menu"
	case CardSubQuit:
		return "Quit"
	}
	return fmt.Sprintf("CardSubOption(%d)", int(o))
}

// CardSubOptions is the card field menu.
var CardSubOptions = newOptionSet(CardSubOption.String, CardEditFront, CardEditBack, CardSubCardMenu, CardSubQuit)
