package menu

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/prompt"
)

func (d *Dispatcher) processCard(ctx context.Context, opt CardOption, store Store) (State, bool, error) {
	switch opt {
	case CardCreate:
		_, _, err := d.createCard(ctx, store)
		return Cards(), true, err
	case CardList:
		return Cards(), true, d.listCards(ctx, store)
	case CardUpdate:
		return Cards(), true, d.updateCard(ctx, store)
	case CardDelete:
		return Cards(), true, d.deleteCard(ctx, store)
	case CardEditField:
		return CardFields(), true, nil
	case CardMainMenu:
		return Main(), true, nil
	case CardGoBack:
		return d.goBack()
	case CardQuit:
		return Cards(), false, nil
	}
	return Cards(), true, errors.Errorf("unhandled card menu option %s", opt)
}

func (d *Dispatcher) processCardSub(ctx context.Context, opt CardSubOption, store Store) (State, bool, error) {
	switch opt {
	case CardEditFront:
		return CardFields(), true, d.editField(ctx, store, true)
	case CardEditBack:
		return CardFields(), true, d.editField(ctx, store, false)
	case CardSubCardMenu:
		return Cards(), true, nil
	case CardSubQuit:
		return CardFields(), false, nil
	}
	return CardFields(), true, errors.Errorf("unhandled card field option %s", opt)
}

// createCard asks for both sides and stores the card. ok is false when the
// input was rejected.
func (d *Dispatcher) createCard(ctx context.Context, store Store) (id int64, ok bool, err error) {
	front, err := prompt.Text(d.io, "Front: ")
	if err != nil {
		return 0, false, err
	}
	back, err := prompt.Text(d.io, "Back: ")
	if err != nil {
		return 0, false, err
	}
	in := domain.NewCardInput(front, back)
	if err := d.validate.Struct(in); err != nil {
		d.io.WriteLine(err.Error())
		return 0, false, nil
	}

	id, err = store.CreateCard(ctx, in.Card())
	if err != nil {
		return 0, false, errors.Wrap(err, "create card")
	}
	d.printf("Created card %d.", id)
	return id, true, nil
}

func (d *Dispatcher) listCards(ctx context.Context, store Store) error {
	cards, err := store.ListCards(ctx)
	if err != nil {
		return errors.Wrap(err, "list cards")
	}
	d.cardTable(cards)
	return nil
}

func (d *Dispatcher) cardTable(cards []domain.Card) {
	if len(cards) == 0 {
		d.io.WriteLine("No cards.")
		return
	}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{strconv.FormatInt(c.ID, 10), oneLine(c.Front), oneLine(c.Back)})
	}
	d.table([]string{"ID", "FRONT", "BACK"}, rows)
}

func (d *Dispatcher) updateCard(ctx context.Context, store Store) error {
	id, err := prompt.Int64(d.io, "Card id: ")
	if err != nil {
		return err
	}
	front, err := prompt.OptionalText(d.io, "Front (blank keeps it): ")
	if err != nil {
		return err
	}
	back, err := prompt.OptionalText(d.io, "Back (blank keeps it): ")
	if err != nil {
		return err
	}
	if front == nil && back == nil {
		d.io.WriteLine("Nothing to change.")
		return nil
	}
	return d.applyUpdate(ctx, store, id, front, back)
}

func (d *Dispatcher) editField(ctx context.Context, store Store, front bool) error {
	id, err := prompt.Int64(d.io, "Card id: ")
	if err != nil {
		return err
	}
	label := "New back: "
	if front {
		label = "New front: "
	}
	value, err := prompt.OptionalText(d.io, label)
	if err != nil {
		return err
	}
	if value == nil {
		d.io.WriteLine("A card side cannot be empty.")
		return nil
	}
	if front {
		return d.applyUpdate(ctx, store, id, value, nil)
	}
	return d.applyUpdate(ctx, store, id, nil, value)
}

func (d *Dispatcher) applyUpdate(ctx context.Context, store Store, id int64, front, back *string) error {
	n, err := store.UpdateCard(ctx, id, front, back)
	if err != nil {
		return errors.Wrapf(err, "update card %d", id)
	}
	if n == 0 {
		d.printf("Card %d does not exist.", id)
		return nil
	}
	d.printf("Updated card %d.", id)
	return nil
}

func (d *Dispatcher) deleteCard(ctx context.Context, store Store) error {
	id, err := prompt.Int64(d.io, "Card id: ")
	if err != nil {
		return err
	}
	n, err := store.DeleteCard(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "delete card %d", id)
	}
	if n == 0 {
		d.printf("Card %d does not exist.", id)
		return nil
	}
	d.printf("Deleted card %d.", id)
	return nil
}
