// Package combos enumerates the three-card combinations of the 54-card
// universe and answers the subset queries the probability engine needs.
package combos

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/lox/battleline/cards"
)

// Universe sizes.
const (
	// TotalCombinations is C(54, 3).
	TotalCombinations = cards.NumCards * (cards.NumCards - 1) * (cards.NumCards - 2) / 6
	// PerCard is C(53, 2), the number of combinations containing a given card.
	PerCard = (cards.NumCards - 1) * (cards.NumCards - 2) / 2
	// PerPair is the number of combinations extending a pair of cards.
	PerPair = cards.NumCards - 2
)

var ErrSamePair = errors.New("pair needs two distinct cards")

// Generator owns the combination universe. The universe is built on first use
// and never modified afterwards, so a single Generator may be shared by
// concurrent readers.
type Generator struct {
	once   sync.Once
	built  atomic.Bool
	all    []cards.Combination
	index  map[cards.Combination]int
	byCard [cards.NumCards][]int32
}

// NewGenerator returns a Generator whose universe is built lazily.
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) build() {
	g.once.Do(func() {
		g.all = make([]cards.Combination, 0, TotalCombinations)
		g.index = make(map[cards.Combination]int, TotalCombinations)
		for i := range g.byCard {
			g.byCard[i] = make([]int32, 0, PerCard)
		}
		for a := 0; a < cards.NumCards; a++ {
			for b := a + 1; b < cards.NumCards; b++ {
				for c := b + 1; c < cards.NumCards; c++ {
					comb := cards.FromSortedUnchecked(cards.Card(a), cards.Card(b), cards.Card(c))
					idx := len(g.all)
					g.all = append(g.all, comb)
					g.index[comb] = idx
					g.byCard[a] = append(g.byCard[a], int32(idx))
					g.byCard[b] = append(g.byCard[b], int32(idx))
					g.byCard[c] = append(g.byCard[c], int32(idx))
				}
			}
		}
		g.built.Store(true)
	})
}

// Built reports whether the universe has been populated.
func (g *Generator) Built() bool {
	return g.built.Load()
}

// All returns every combination in canonical order. The returned slice is a
// copy; the cached universe stays untouched.
func (g *Generator) All() []cards.Combination {
	g.build()
	return slices.Clone(g.all)
}

// Len returns the universe size without copying it.
func (g *Generator) Len() int {
	g.build()
	return len(g.all)
}

// At returns the combination with the given dense index.
func (g *Generator) At(i int) cards.Combination {
	g.build()
	return g.all[i]
}

// Index returns the dense index of comb in All() order.
func (g *Generator) Index(comb cards.Combination) (int, bool) {
	g.build()
	i, ok := g.index[comb]
	return i, ok
}

// Containing returns every combination that includes card.
func (g *Generator) Containing(card cards.Card) []cards.Combination {
	g.build()
	if !card.Valid() {
		return nil
	}
	idxs := g.byCard[card]
	out := make([]cards.Combination, len(idxs))
	for i, idx := range idxs {
		out[i] = g.all[idx]
	}
	return out
}

// ContainingPair returns the combinations completing the pair with any third
// card.
func (g *Generator) ContainingPair(c1, c2 cards.Card) ([]cards.Combination, error) {
	if c1 == c2 {
		return nil, fmt.Errorf("%w: %s", ErrSamePair, c1)
	}
	if !c1.Valid() || !c2.Valid() {
		return nil, fmt.Errorf("%w: %d %d", cards.ErrInvalidNumber, c1, c2)
	}
	out := make([]cards.Combination, 0, PerPair)
	for third := range cards.Card(cards.NumCards) {
		if third == c1 || third == c2 {
			continue
		}
		comb, err := cards.NewCombination(c1, c2, third)
		if err != nil {
			return nil, err
		}
		out = append(out, comb)
	}
	return out, nil
}

// Excluding returns every combination drawn only from cards outside
// forbidden.
func (g *Generator) Excluding(forbidden cards.CardSet) []cards.Combination {
	g.build()
	allowed := cards.NumCards - forbidden.Len()
	size := 0
	if allowed >= 3 {
		size = allowed * (allowed - 1) * (allowed - 2) / 6
	}
	out := make([]cards.Combination, 0, size)
	for _, comb := range g.all {
		if !comb.Set().Intersects(forbidden) {
			out = append(out, comb)
		}
	}
	return out
}

// Union returns the combinations containing at least one of the given cards,
// each once, in canonical order.
func (g *Generator) Union(cs ...cards.Card) []cards.Combination {
	g.build()
	want := cards.NewCardSet(cs...)
	if want == 0 {
		return nil
	}
	out := make([]cards.Combination, 0, want.Len()*PerCard)
	for _, comb := range g.all {
		if comb.Set().Intersects(want) {
			out = append(out, comb)
		}
	}
	return out
}
