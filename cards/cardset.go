package cards

import "math/bits"

// CardSet is a set of cards stored as a bitset, one bit per card index.
type CardSet uint64

// NewCardSet creates a CardSet from a slice of cards.
func NewCardSet(cs ...Card) CardSet {
	var s CardSet
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

// Add adds a card to the set.
func (s *CardSet) Add(c Card) {
	*s |= 1 << c
}

// Remove removes a card from the set.
func (s *CardSet) Remove(c Card) {
	*s &^= 1 << c
}

// Contains checks if a card is in the set.
func (s CardSet) Contains(c Card) bool {
	return s&(1<<c) != 0
}

// Union returns the cards present in either set.
func (s CardSet) Union(other CardSet) CardSet {
	return s | other
}

// Intersects reports whether the sets share at least one card.
func (s CardSet) Intersects(other CardSet) bool {
	return s&other != 0
}

// Len returns the number of cards in the set.
func (s CardSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Cards returns the members in card order.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		out = append(out, Card(bits.TrailingZeros64(v)))
	}
	return out
}

func (s CardSet) String() string {
	return FormatCards(s.Cards())
}
