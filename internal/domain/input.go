package domain

import "strings"

// CardInput is a new card as entered by the user. Both sides are trimmed,
// since answers are compared after trimming.
type CardInput struct {
	Front string `label:"front" validate:"required"`
	Back  string `label:"back" validate:"required"`
}

func NewCardInput(front, back string) CardInput {
	return CardInput{Front: strings.TrimSpace(front), Back: strings.TrimSpace(back)}
}

func (in CardInput) Card() Card {
	return Card{Front: in.Front, Back: in.Back}
}

// CardEdit holds replacement sides of a card. A nil side is left unchanged;
// a given side must not be blank.
type CardEdit struct {
	Front *string `label:"front" validate:"omitnil,min=1"`
	Back  *string `label:"back" validate:"omitnil,min=1"`
}

func NewCardEdit(front, back *string) CardEdit {
	return CardEdit{Front: trimmed(front), Back: trimmed(back)}
}

// Empty reports whether the edit changes nothing.
func (e CardEdit) Empty() bool {
	return e.Front == nil && e.Back == nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
