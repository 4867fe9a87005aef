package menu

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/conorfennell/flashdeck/internal/prompt"
	"github.com/conorfennell/flashdeck/internal/storage"
)

type deckInput struct {
	Name        string `label:"name" validate:"required,max=100"`
	Description string `label:"description" validate:"max=500"`
}

func (d *Dispatcher) processDeck(ctx context.Context, opt DeckOption, store Store) (State, bool, error) {
	switch opt {
	case DeckCreate:
		return Decks(), true, d.createDeck(ctx, store)
	case DeckList:
		return Decks(), true, d.listDecks(ctx, store)
	case DeckChoose:
		return d.chooseDeck(ctx, store)
	case DeckGoBack:
		return d.goBack()
	case DeckQuit:
		return Decks(), false, nil
	}
	return Decks(), true, errors.Errorf("unhandled deck menu option %s", opt)
}

func (d *Dispatcher) promptDeck() (deckInput, bool, error) {
	var in deckInput
	var err error
	if in.Name, err = prompt.Text(d.io, "Name: "); err != nil {
		return in, false, err
	}
	if in.Description, err = prompt.Text(d.io, "Description: "); err != nil {
		return in, false, err
	}
	if err := d.validate.Struct(in); err != nil {
		d.io.WriteLine(err.Error())
		return in, false, nil
	}
	return in, true, nil
}

func (d *Dispatcher) createDeck(ctx context.Context, store Store) error {
	in, ok, err := d.promptDeck()
	if err != nil || !ok {
		return err
	}
	id, err := store.CreateDeck(ctx, in.Name, in.Description)
	if errors.Is(err, storage.ErrDuplicate) {
		d.printf("A deck named %q already exists.", in.Name)
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "create deck")
	}
	d.logger.Debug("deck created", "deck_id", id)
	d.printf("Created deck %d.", id)
	return nil
}

func (d *Dispatcher) listDecks(ctx context.Context, store Store) error {
	decks, err := store.ListDecks(ctx)
	if err != nil {
		return errors.Wrap(err, "list decks")
	}
	if len(decks) == 0 {
		d.io.WriteLine("No decks yet.")
		return nil
	}
	rows := make([][]string, 0, len(decks))
	for _, deck := range decks {
		rows = append(rows, []string{strconv.FormatInt(deck.ID, 10), deck.Name, deck.Description})
	}
	d.table([]string{"ID", "NAME", "DESCRIPTION"}, rows)
	return nil
}

func (d *Dispatcher) chooseDeck(ctx context.Context, store Store) (State, bool, error) {
	id, err := prompt.Int64(d.io, "Deck id: ")
	if err != nil {
		return Decks(), true, err
	}
	exists, err := store.DeckExists(ctx, id)
	if err != nil {
		return Decks(), true, errors.Wrap(err, "choose deck")
	}
	if !exists {
		d.printf("Deck %d does not exist.", id)
		return Decks(), true, nil
	}
	return DeckDetail(id), true, nil
}

func (d *Dispatcher) processDeckDetail(ctx context.Context, opt DeckDetailOption, store Store) (State, bool, error) {
	here := DeckDetail(opt.DeckID)
	switch opt.Action {
	case DeckView:
		return here, true, d.viewDeck(ctx, opt.DeckID, store)
	case DeckListCards:
		return here, true, d.listDeckCards(ctx, opt.DeckID, store)
	case DeckAddCard:
		return here, true, d.addCard(ctx, opt.DeckID, store)
	case DeckCreateCard:
		return here, true, d.createCardInDeck(ctx, opt.DeckID, store)
	case DeckReview:
		return here, true, d.reviewDeck(ctx, opt.DeckID, store)
	case DeckReport:
		return here, true, d.report(ctx, opt.DeckID, store)
	case DeckImport:
		return here, true, d.importCards(ctx, opt.DeckID, store)
	case DeckUpdate:
		return here, true, d.updateDeck(ctx, opt.DeckID, store)
	case DeckDelete:
		return d.deleteDeck(ctx, opt.DeckID, store)
	case DeckDetailGoBack:
		return d.goBack()
	case DeckDetailQuit:
		return d.nav.Current(), false, nil
	}
	return d.nav.Current(), true, errors.Errorf("unhandled deck detail option %s", opt)
}

func (d *Dispatcher) viewDeck(ctx context.Context, deckID int64, store Store) error {
	info, err := store.DeckInfo(ctx, deckID, d.now())
	if err != nil {
		return errors.Wrapf(err, "view deck %d", deckID)
	}
	if info == nil {
		d.printf("Deck %d does not exist.", deckID)
		return nil
	}
	d.io.WriteLine(info.String())
	return nil
}

func (d *Dispatcher) listDeckCards(ctx context.Context, deckID int64, store Store) error {
	cards, err := store.ListCardsForDeck(ctx, deckID)
	if err != nil {
		return errors.Wrapf(err, "list cards of deck %d", deckID)
	}
	d.cardTable(cards)
	return nil
}

func (d *Dispatcher) addCard(ctx context.Context, deckID int64, store Store) error {
	cardID, err := prompt.Int64(d.io, "Card id: ")
	if err != nil {
		return err
	}
	exists, err := store.CardExists(ctx, cardID)
	if err != nil {
		return errors.Wrap(err, "add card")
	}
	if !exists {
		d.printf("Card %d does not exist.", cardID)
		return nil
	}
	added, err := store.AddCardToDeck(ctx, cardID, deckID)
	if err != nil {
		return errors.Wrapf(err, "add card %d to deck %d", cardID, deckID)
	}
	if !added {
		d.printf("Card %d is already in deck %d.", cardID, deckID)
		return nil
	}
	d.printf("Added card %d to deck %d.", cardID, deckID)
	return nil
}

func (d *Dispatcher) createCardInDeck(ctx context.Context, deckID int64, store Store) error {
	cardID, ok, err := d.createCard(ctx, store)
	if err != nil || !ok {
		return err
	}
	if _, err := store.AddCardToDeck(ctx, cardID, deckID); err != nil {
		return errors.Wrapf(err, "add card %d to deck %d", cardID, deckID)
	}
	d.printf("Added card %d to deck %d.", cardID, deckID)
	return nil
}

func (d *Dispatcher) reviewDeck(ctx context.Context, deckID int64, store Store) error {
	for {
		tally, err := d.reviewer.Run(ctx, store, deckID)
		if err != nil {
			return errors.Wrapf(err, "review deck %d", deckID)
		}
		d.printf("Session finished: %s.", tally)

		again, err := prompt.Confirm(d.io, "Review again? (y/n) ")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (d *Dispatcher) report(ctx context.Context, deckID int64, store Store) error {
	answers, err := store.DeckReport(ctx, deckID)
	if err != nil {
		return errors.Wrapf(err, "report for deck %d", deckID)
	}
	if len(answers) == 0 {
		d.io.WriteLine("No answers recorded for this deck yet.")
		return nil
	}

	correct := 0
	rows := make([][]string, 0, len(answers))
	for _, a := range answers {
		result := "wrong"
		if a.IsCorrect() {
			result = "right"
			correct++
		}
		front := a.Front
		if front == "" {
			front = "(deleted card)"
		}
		rows = append(rows, []string{
			strconv.FormatInt(a.SessionID, 10),
			a.AnsweredAt.Local().Format("2006-01-02 15:04"),
			oneLine(front),
			a.Submitted,
			result,
		})
	}
	d.table([]string{"SESSION", "WHEN", "QUESTION", "ANSWER", "RESULT"}, rows)
	d.printf("%d of %d answers correct.", correct, len(answers))
	return nil
}

func (d *Dispatcher) importCards(ctx context.Context, deckID int64, store Store) error {
	if d.importer == nil {
		d.io.WriteLine("Importing is not available.")
		return nil
	}
	source, err := prompt.Text(d.io, "Directory or git URL: ")
	if err != nil {
		return err
	}
	if source == "" {
		d.io.WriteLine("Nothing to import.")
		return nil
	}

	result, err := d.importer.Import(ctx, store, source, deckID)
	if err != nil {
		return errors.Wrapf(err, "import into deck %d", deckID)
	}
	d.printf("Read %d files: %d new cards, %d already known, %d added to the deck.",
		result.Files, result.Created, result.Existing, result.Linked)
	for _, e := range result.Errors {
		d.printf("Skipped: %v", e)
	}
	return nil
}

func (d *Dispatcher) updateDeck(ctx context.Context, deckID int64, store Store) error {
	in, ok, err := d.promptDeck()
	if err != nil || !ok {
		return err
	}
	n, err := store.UpdateDeck(ctx, deckID, in.Name, in.Description)
	if errors.Is(err, storage.ErrDuplicate) {
		d.printf("A deck named %q already exists.", in.Name)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "update deck %d", deckID)
	}
	if n == 0 {
		d.printf("Deck %d does not exist.", deckID)
		return nil
	}
	d.printf("Updated deck %d.", deckID)
	return nil
}

// deleteDeck leaves the deck's menu on success, since it no longer refers to
// a deck.
func (d *Dispatcher) deleteDeck(ctx context.Context, deckID int64, store Store) (State, bool, error) {
	here := DeckDetail(deckID)
	sure, err := prompt.Confirm(d.io, "Delete this deck? (y/n) ")
	if err != nil || !sure {
		return here, true, err
	}
	n, err := store.DeleteDeck(ctx, deckID)
	if err != nil {
		return here, true, errors.Wrapf(err, "delete deck %d", deckID)
	}
	if n == 0 {
		d.printf("Deck %d does not exist.", deckID)
	} else {
		d.printf("Deleted deck %d.", deckID)
	}
	return d.goBack()
}
