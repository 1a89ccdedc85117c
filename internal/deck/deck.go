// Package deck holds the face-down draw pile.
package deck

import (
	rand "math/rand/v2"
	"slices"

	"github.com/lox/battleline/cards"
)

// Deck is an ordered pile of cards drawn from the top. Only its size and
// Draw are meant to be visible to players.
type Deck struct {
	cards []cards.Card
}

// New returns the full 54-card deck shuffled with rng.
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: cards.All()}
	d.Shuffle(rng)
	return d
}

// FromCards builds a deck whose first element is drawn first. It is used to
// replay fixed positions.
func FromCards(cs []cards.Card) *Deck {
	return &Deck{cards: slices.Clone(cs)}
}

// Shuffle randomizes the order of the remaining cards.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (cards.Card, bool) {
	if len(d.cards) == 0 {
		return 0, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// DrawN draws up to n cards.
func (d *Deck) DrawN(n int) []cards.Card {
	n = min(n, len(d.cards))
	out := slices.Clone(d.cards[:n])
	d.cards = d.cards[n:]
	return out
}

// Size returns the number of cards left.
func (d *Deck) Size() int {
	return len(d.cards)
}

// Empty reports whether the deck is exhausted.
func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}

// Set returns the remaining cards as a set.
func (d *Deck) Set() cards.CardSet {
	return cards.NewCardSet(d.cards...)
}

// Cards returns the remaining cards, top first.
func (d *Deck) Cards() []cards.Card {
	return slices.Clone(d.cards)
}

// Clone returns an independent copy of the deck.
func (d *Deck) Clone() *Deck {
	return &Deck{cards: slices.Clone(d.cards)}
}
