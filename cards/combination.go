package cards

import (
	"errors"
	"fmt"
	"slices"
)

// Category is the strength tier of a combination, weakest first.
type Category uint8

const (
	CategorySum Category = iota
	CategorySuite
	CategoryColor
	CategorySet
	CategoryColorSuite
)

// NumCategories is the number of combination categories.
const NumCategories = 5

// ErrDuplicateCard is returned when a combination repeats a card.
var ErrDuplicateCard = errors.New("duplicate card in combination")

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySum:
		return "Sum"
	case CategorySuite:
		return "Suite"
	case CategoryColor:
		return "Color"
	case CategorySet:
		return "Set"
	case CategoryColorSuite:
		return "Color-Suite"
	default:
		return "Unknown"
	}
}

// Combination is a canonical set of three distinct cards. The cards are kept
// sorted so equal combinations compare equal with == and can be used as map
// keys. Category and value are computed once at construction.
type Combination struct {
	cards    [3]Card
	category Category
	value    uint8
}

// NewCombination builds the combination of three distinct cards given in any
// order.
func NewCombination(c1, c2, c3 Card) (Combination, error) {
	for _, c := range [...]Card{c1, c2, c3} {
		if !c.Valid() {
			return Combination{}, fmt.Errorf("%w: %d", ErrInvalidNumber, c)
		}
	}
	if c1 == c2 || c1 == c3 || c2 == c3 {
		return Combination{}, fmt.Errorf("%w: %s %s %s", ErrDuplicateCard, c1, c2, c3)
	}
	return newSorted(c1, c2, c3), nil
}

// MustCombination is like NewCombination but panics on invalid input.
func MustCombination(c1, c2, c3 Card) Combination {
	comb, err := NewCombination(c1, c2, c3)
	if err != nil {
		panic(err)
	}
	return comb
}

// ParseCombination parses three cards such as "1b 2b 3b".
func ParseCombination(s string) (Combination, error) {
	cs, err := ParseCards(s)
	if err != nil {
		return Combination{}, err
	}
	if len(cs) != 3 {
		return Combination{}, fmt.Errorf("%w %q: combination needs 3 cards, got %d", ErrParse, s, len(cs))
	}
	return NewCombination(cs[0], cs[1], cs[2])
}

// MustParseCombination is like ParseCombination but panics on invalid input.
func MustParseCombination(s string) Combination {
	comb, err := ParseCombination(s)
	if err != nil {
		panic(err)
	}
	return comb
}

// newSorted skips validation; callers guarantee three distinct valid cards.
func newSorted(c1, c2, c3 Card) Combination {
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	if c2 > c3 {
		c2, c3 = c3, c2
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	comb := Combination{cards: [3]Card{c1, c2, c3}}
	comb.category, comb.value = classify(comb.cards)
	return comb
}

// FromSortedUnchecked builds a combination from three distinct cards already
// in ascending order. It is meant for enumerators that produce canonical
// triples and would otherwise pay for re-validation.
func FromSortedUnchecked(c1, c2, c3 Card) Combination {
	comb := Combination{cards: [3]Card{c1, c2, c3}}
	comb.category, comb.value = classify(comb.cards)
	return comb
}

// classify evaluates single color first, then consecutive numbers, then
// equal numbers.
func classify(cs [3]Card) (Category, uint8) {
	n0, n1, n2 := cs[0].Number(), cs[1].Number(), cs[2].Number()
	sameColor := cs[0].Color() == cs[1].Color() && cs[1].Color() == cs[2].Color()
	consecutive := n1 == n0+1 && n2 == n1+1
	sum := uint8(n0 + n1 + n2)

	switch {
	case sameColor && consecutive:
		return CategoryColorSuite, uint8(n0)
	case sameColor:
		return CategoryColor, sum
	case consecutive:
		return CategorySuite, uint8(n0)
	case n0 == n1 && n1 == n2:
		return CategorySet, uint8(n0)
	default:
		return CategorySum, sum
	}
}

// Cards returns the three cards in ascending order.
func (c Combination) Cards() [3]Card {
	return c.cards
}

// Category returns the strength tier.
func (c Combination) Category() Category {
	return c.category
}

// Value ranks combinations within a category.
func (c Combination) Value() int {
	return int(c.value)
}

// Contains reports whether card is one of the three cards.
func (c Combination) Contains(card Card) bool {
	return c.cards[0] == card || c.cards[1] == card || c.cards[2] == card
}

// Set returns the cards as a CardSet.
func (c Combination) Set() CardSet {
	return NewCardSet(c.cards[:]...)
}

// IsZero reports whether c is the zero Combination rather than a real one.
func (c Combination) IsZero() bool {
	return c == Combination{}
}

// Compare orders combinations by category and then value. Distinct
// combinations with the same category and value compare equal.
func (c Combination) Compare(other Combination) int {
	if c.category != other.category {
		if c.category < other.category {
			return -1
		}
		return 1
	}
	switch {
	case c.value < other.value:
		return -1
	case c.value > other.value:
		return 1
	default:
		return 0
	}
}

// CompareCards is a total order on combinations by their sorted cards. It is
// used wherever a deterministic ordering of distinct combinations is needed.
func (c Combination) CompareCards(other Combination) int {
	return slices.Compare(c.cards[:], other.cards[:])
}

// String returns e.g. "Color-Suite(1b 2b 3b)".
func (c Combination) String() string {
	return fmt.Sprintf("%s(%s)", c.category, FormatCards(c.cards[:]))
}
