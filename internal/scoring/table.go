package scoring

import (
	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/combos"
)

// Scorer assigns a comparable strength to a combination.
type Scorer interface {
	Score(comb cards.Combination) float64
}

// Table holds the score of every combination in the generator's universe,
// computed once per scheme.
type Table struct {
	gen    *combos.Generator
	scheme *Scheme
	scores []float64
}

// NewTable scores the whole universe with scheme.
func NewTable(gen *combos.Generator, scheme *Scheme) *Table {
	n := gen.Len()
	scores := make([]float64, n)
	for i := range n {
		scores[i] = scheme.Score(gen.At(i))
	}
	return &Table{gen: gen, scheme: scheme, scores: scores}
}

// Score looks comb up in the table.
func (t *Table) Score(comb cards.Combination) float64 {
	if i, ok := t.gen.Index(comb); ok {
		return t.scores[i]
	}
	return t.scheme.Score(comb)
}

// Len returns the number of scored combinations.
func (t *Table) Len() int {
	return len(t.scores)
}

// Scheme returns the scheme the table was built from.
func (t *Table) Scheme() *Scheme {
	return t.scheme
}
