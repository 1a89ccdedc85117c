package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	c, err := NewCard(Red, 7)
	require.NoError(t, err)
	assert.Equal(t, Red, c.Color())
	assert.Equal(t, 7, c.Number())
	assert.Equal(t, "7r", c.String())

	_, err = NewCard(Color(6), 1)
	assert.ErrorIs(t, err, ErrInvalidColor)
	_, err = NewCard(Red, 0)
	assert.ErrorIs(t, err, ErrInvalidNumber)
	_, err = NewCard(Blue, 10)
	assert.ErrorIs(t, err, ErrInvalidNumber)

	assert.Panics(t, func() { MustCard(Green, 12) })
}

func TestCardOrdering(t *testing.T) {
	t.Parallel()

	red1 := MustCard(Red, 1)
	green1 := MustCard(Green, 1)
	red3 := MustCard(Red, 3)
	blue5 := MustCard(Blue, 5)

	// number first, then color name order
	assert.Equal(t, -1, green1.Compare(red1))
	assert.Equal(t, -1, red1.Compare(red3))
	assert.Equal(t, -1, red3.Compare(blue5))
	assert.Equal(t, 0, red1.Compare(MustCard(Red, 1)))

	all := All()
	require.Len(t, all, NumCards)
	seen := make(map[Card]bool)
	for i, c := range all {
		assert.Equal(t, i, c.Index())
		seen[c] = true
		if i > 0 {
			assert.Equal(t, 1, c.Compare(all[i-1]))
		}
	}
	assert.Len(t, seen, 54)
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr error
	}{
		{name: "blue one", input: "1b", want: MustCard(Blue, 1)},
		{name: "brown nine", input: "9n", want: MustCard(Brown, 9)},
		{name: "upper case", input: "5P", want: MustCard(Purple, 5)},
		{name: "surrounding space", input: " 4y ", want: MustCard(Yellow, 4)},
		{name: "zero", input: "0r", wantErr: ErrInvalidNumber},
		{name: "bad color", input: "3x", wantErr: ErrInvalidColor},
		{name: "too long", input: "10r", wantErr: ErrParse},
		{name: "empty", input: "", wantErr: ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCardRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range All() {
		got, err := ParseCard(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	got, err := ParseCards("1b, 2b 3b")
	require.NoError(t, err)
	assert.Equal(t, []Card{MustCard(Blue, 1), MustCard(Blue, 2), MustCard(Blue, 3)}, got)

	got, err = ParseCards("7r8r")
	require.NoError(t, err)
	assert.Equal(t, "7r 8r", FormatCards(got))

	got, err = ParseCards("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseCards("1b2")
	assert.ErrorIs(t, err, ErrParse)

	assert.Panics(t, func() { MustParseCards("zz") })
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	for _, c := range Colors {
		byName, err := ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, byName)

		byLetter, err := ParseColor(string(c.Letter()))
		require.NoError(t, err)
		assert.Equal(t, c, byLetter)
	}

	_, err := ParseColor("grellow")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestCardSet(t *testing.T) {
	t.Parallel()

	s := NewCardSet(MustParseCards("9y 1b 5g")...)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(MustCard(Green, 5)))
	assert.False(t, s.Contains(MustCard(Green, 6)))
	assert.Equal(t, "1b 5g 9y", s.String())

	s.Remove(MustCard(Blue, 1))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains(MustCard(Blue, 1)))

	other := NewCardSet(MustCard(Yellow, 9), MustCard(Red, 2))
	assert.True(t, s.Intersects(other))
	assert.Equal(t, 3, s.Union(other).Len())
	assert.False(t, NewCardSet(MustCard(Blue, 1)).Intersects(other))

	full := NewCardSet(All()...)
	assert.Equal(t, NumCards, full.Len())
	assert.Equal(t, All(), full.Cards())
}
