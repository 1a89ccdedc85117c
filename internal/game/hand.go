package game

import (
	"fmt"

	"github.com/lox/battleline/cards"
)

// HandSize is the number of cards a player holds while the deck lasts.
const HandSize = 6

// Hand is the set of cards a player holds. The zero value is empty.
type Hand struct {
	set cards.CardSet
}

// NewHand returns a hand holding cs.
func NewHand(cs ...cards.Card) Hand {
	return Hand{set: cards.NewCardSet(cs...)}
}

func (h *Hand) Add(c cards.Card) {
	h.set.Add(c)
}

// Remove takes c out of the hand.
func (h *Hand) Remove(c cards.Card) error {
	if !h.set.Contains(c) {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, c)
	}
	h.set.Remove(c)
	return nil
}

func (h Hand) Contains(c cards.Card) bool {
	return h.set.Contains(c)
}

func (h Hand) Len() int {
	return h.set.Len()
}

func (h Hand) Empty() bool {
	return h.set == 0
}

// Cards returns the held cards in card order.
func (h Hand) Cards() []cards.Card {
	return h.set.Cards()
}

func (h Hand) Set() cards.CardSet {
	return h.set
}

func (h Hand) String() string {
	return cards.FormatCards(h.Cards())
}
