package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/battleline/cards"
)

// Move places Card into the mover's slot number Slot (0-based).
type Move struct {
	Slot int
	Card cards.Card
}

// String prints the move the way ParseMove reads it, with a 1-based slot.
func (m Move) String() string {
	return fmt.Sprintf("%d %s", m.Slot+1, m.Card)
}

// ParseMove reads "<slot> <card>" with slot in 1..9, e.g. "3 7r". The order
// may be swapped and a colon or comma may separate the two parts.
func ParseMove(s string) (Move, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ',' || r == ':'
	})
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("%w: want \"<slot> <card>\", got %q", cards.ErrParse, s)
	}
	slotText, cardText := fields[0], fields[1]
	if _, err := strconv.Atoi(slotText); err != nil {
		slotText, cardText = cardText, slotText
	}
	n, err := strconv.Atoi(slotText)
	if err != nil {
		return Move{}, fmt.Errorf("%w: slot %q", cards.ErrParse, fields[0])
	}
	if err := validSlot(n - 1); err != nil {
		return Move{}, err
	}
	card, err := cards.ParseCard(cardText)
	if err != nil {
		return Move{}, err
	}
	return Move{Slot: n - 1, Card: card}, nil
}
