package game

import (
	"fmt"
	"strings"

	"github.com/lox/battleline/cards"
)

// SlotCapacity is the number of cards that complete a slot.
const SlotCapacity = 3

// Slot keeps up to three distinct cards in the order they were placed. The
// zero value is an empty slot. Cards cannot be removed.
type Slot struct {
	cards [SlotCapacity]cards.Card
	n     uint8
}

// NewSlot returns a slot holding cs, placed in order.
func NewSlot(cs ...cards.Card) (Slot, error) {
	var s Slot
	for _, c := range cs {
		if err := s.Add(c); err != nil {
			return Slot{}, err
		}
	}
	return s, nil
}

// MustSlot is NewSlot for literals in tests.
func MustSlot(cs ...cards.Card) Slot {
	s, err := NewSlot(cs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add places c in the slot.
func (s *Slot) Add(c cards.Card) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", cards.ErrInvalidNumber, c)
	}
	if s.Contains(c) {
		return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
	}
	if s.Full() {
		return fmt.Errorf("%w: cannot add %s", ErrSlotFull, c)
	}
	s.cards[s.n] = c
	s.n++
	return nil
}

// Len returns the number of cards placed.
func (s Slot) Len() int {
	return int(s.n)
}

func (s Slot) Empty() bool {
	return s.n == 0
}

func (s Slot) Full() bool {
	return s.n == SlotCapacity
}

// Cards returns the placed cards in placement order.
func (s Slot) Cards() []cards.Card {
	out := make([]cards.Card, s.n)
	copy(out, s.cards[:s.n])
	return out
}

func (s Slot) Contains(c cards.Card) bool {
	for _, have := range s.cards[:s.n] {
		if have == c {
			return true
		}
	}
	return false
}

// Set returns the placed cards as a set.
func (s Slot) Set() cards.CardSet {
	return cards.NewCardSet(s.cards[:s.n]...)
}

// Combination returns the completed combination, or false while the slot is
// still open.
func (s Slot) Combination() (cards.Combination, bool) {
	if !s.Full() {
		return cards.Combination{}, false
	}
	return cards.MustCombination(s.cards[0], s.cards[1], s.cards[2]), true
}

func (s Slot) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(cards.FormatCards(s.cards[:s.n]))
	b.WriteByte(']')
	return b.String()
}

// NumSlots is the number of slots in each player's grid.
const NumSlots = 9

// Grid is one player's row of slots.
type Grid [NumSlots]Slot

// Set returns every card placed anywhere in the grid.
func (g *Grid) Set() cards.CardSet {
	var set cards.CardSet
	for i := range g {
		set = set.Union(g[i].Set())
	}
	return set
}

// Full reports whether every slot is complete.
func (g *Grid) Full() bool {
	return g.Completed() == NumSlots
}

// Completed counts the full slots.
func (g *Grid) Completed() int {
	n := 0
	for i := range g {
		if g[i].Full() {
			n++
		}
	}
	return n
}

// Placed counts the cards in the grid.
func (g *Grid) Placed() int {
	n := 0
	for i := range g {
		n += g[i].Len()
	}
	return n
}

// Open returns the indexes of slots that still take a card.
func (g *Grid) Open() []int {
	out := make([]int, 0, NumSlots)
	for i := range g {
		if !g[i].Full() {
			out = append(out, i)
		}
	}
	return out
}

func validSlot(i int) error {
	if i < 0 || i >= NumSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, i)
	}
	return nil
}
