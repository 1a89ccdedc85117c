// Package cards defines the cards of the slot game and the three-card
// combinations built from them.
package cards

import (
	"errors"
	"fmt"
	"strings"
)

// Color is one of the six card colors. Colors are declared in name order so
// that comparing two colors numerically matches comparing their names.
type Color uint8

const (
	Blue Color = iota
	Brown
	Green
	Purple
	Red
	Yellow
)

// NumColors is the number of distinct colors.
const NumColors = 6

// Card numbers run from MinNumber to MaxNumber inclusive.
const (
	MinNumber = 1
	MaxNumber = 9
)

// NumCards is the size of the card universe (6 colors x 9 numbers).
const NumCards = NumColors * MaxNumber

var (
	ErrInvalidColor  = errors.New("invalid card color")
	ErrInvalidNumber = errors.New("invalid card number")
	ErrParse         = errors.New("cannot parse card")
)

const colorLetters = "bngpry"

var colorNames = [NumColors]string{"blue", "brown", "green", "purple", "red", "yellow"}

// Colors lists every color in order.
var Colors = [NumColors]Color{Blue, Brown, Green, Purple, Red, Yellow}

// Valid reports whether c is one of the six colors.
func (c Color) Valid() bool {
	return c < NumColors
}

// String returns the color name.
func (c Color) String() string {
	if !c.Valid() {
		return "?"
	}
	return colorNames[c]
}

// Letter returns the single-letter form used in card notation.
func (c Color) Letter() byte {
	if !c.Valid() {
		return '?'
	}
	return colorLetters[c]
}

// ParseColor accepts either the color name or its letter.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 {
		if i := strings.IndexByte(colorLetters, s[0]); i >= 0 {
			return Color(i), nil
		}
	}
	for i, name := range colorNames {
		if s == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Card is a compact card encoding. The underlying value is the card index
// (number-1)*6 + color, so ordering cards by value orders them by number
// first and color second.
type Card uint8

// NewCard creates a card, rejecting colors and numbers outside the universe.
func NewCard(color Color, number int) (Card, error) {
	if !color.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidColor, color)
	}
	if number < MinNumber || number > MaxNumber {
		return 0, fmt.Errorf("%w: %d", ErrInvalidNumber, number)
	}
	return Card((number-1)*NumColors + int(color)), nil
}

// MustCard is like NewCard but panics on invalid input.
func MustCard(color Color, number int) Card {
	c, err := NewCard(color, number)
	if err != nil {
		panic(err)
	}
	return c
}

// FromIndex returns the card with the given index in 0..NumCards-1.
func FromIndex(i int) (Card, bool) {
	if i < 0 || i >= NumCards {
		return 0, false
	}
	return Card(i), true
}

// Index returns the card index in 0..NumCards-1.
func (c Card) Index() int {
	return int(c)
}

// Color returns the card color.
func (c Card) Color() Color {
	return Color(uint8(c) % NumColors)
}

// Number returns the card number in 1..9.
func (c Card) Number() int {
	return int(c)/NumColors + 1
}

// Valid reports whether the card lies inside the universe.
func (c Card) Valid() bool {
	return c < NumCards
}

// Compare orders cards by number, then color.
func (c Card) Compare(other Card) int {
	switch {
	case c < other:
		return -1
	case c > other:
		return 1
	default:
		return 0
	}
}

// String returns the card in notation form, e.g. "7r" for the red seven.
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{byte('0' + c.Number()), c.Color().Letter()})
}

// All returns the 54 cards in card order.
func All() []Card {
	out := make([]Card, NumCards)
	for i := range out {
		out[i] = Card(i)
	}
	return out
}

// ParseCard parses a card like "7r" or "1B".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return 0, fmt.Errorf("%w %q: want number followed by color letter", ErrParse, s)
	}
	if s[0] < '0'+MinNumber || s[0] > '0'+MaxNumber {
		return 0, fmt.Errorf("%w %q: %w", ErrParse, s, ErrInvalidNumber)
	}
	color, err := ParseColor(s[1:])
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrParse, s, err)
	}
	return NewCard(color, int(s[0]-'0'))
}

// ParseCards parses a list of cards separated by spaces or commas. Cards may
// also be written back to back ("1b2b3b").
func ParseCards(s string) ([]Card, error) {
	compact := strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s)
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("%w %q: odd number of characters", ErrParse, s)
	}
	out := make([]Card, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		c, err := ParseCard(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustParseCards is like ParseCards but panics on invalid input.
func MustParseCards(s string) []Card {
	out, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return out
}

// FormatCards joins cards with single spaces.
func FormatCards(cs []Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
