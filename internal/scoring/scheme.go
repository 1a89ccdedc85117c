// Package scoring turns a combination's category and value into a single
// comparable score.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/lox/battleline/cards"
)

// Base scores form one contiguous integer range at unit weights. Each band
// starts one above the previous band's maximum.
const (
	minSumValue        = 1 + 1 + 2
	maxSumValue        = 9 + 9 + 8
	minColorValue      = 1 + 2 + 4
	maxColorValue      = 9 + 8 + 6
	minRunValue        = 1
	maxRunValue        = 7
	minSetValue        = 1
	maxSetValue        = 9
	sumBandCount       = maxSumValue - minSumValue + 1
	suiteBandCount     = maxRunValue - minRunValue + 1
	colorBandCount     = maxColorValue - minColorValue + 1
	setBandCount       = maxSetValue - minSetValue + 1
	colorSuiteBandSize = maxRunValue - minRunValue + 1
)

const (
	baseSum        = 0
	baseSuite      = baseSum + sumBandCount
	baseColor      = baseSuite + suiteBandCount
	baseSet        = baseColor + colorBandCount
	baseColorSuite = baseSet + setBandCount

	// MinBase and MaxBase bound BaseScore over the whole universe.
	MinBase = baseSum
	MaxBase = baseColorSuite + colorSuiteBandSize - 1
)

// ErrInvalidWeights is returned for weights that would break the ordering of
// the base score bands.
var ErrInvalidWeights = errors.New("invalid category weights")

// Weights holds one multiplier per category, indexed by cards.Category.
type Weights [cards.NumCategories]float64

// UnitWeights keeps the base score ordering untouched.
var UnitWeights = Weights{1, 1, 1, 1, 1}

// Scheme scores combinations as BaseScore times the category weight.
type Scheme struct {
	weights Weights
}

// NewScheme validates weights: the first must be positive and none may
// decrease from one category to the next.
func NewScheme(weights Weights) (*Scheme, error) {
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrInvalidWeights, i, w)
		}
	}
	if weights[0] <= 0 {
		return nil, fmt.Errorf("%w: weights must be > 0, got %v for %s", ErrInvalidWeights, weights[0], cards.CategorySum)
	}
	for i := 1; i < len(weights); i++ {
		if weights[i] < weights[i-1] {
			return nil, fmt.Errorf("%w: weights must be non-decreasing, %s=%v < %s=%v",
				ErrInvalidWeights, cards.Category(i), weights[i], cards.Category(i-1), weights[i-1])
		}
	}
	return &Scheme{weights: weights}, nil
}

// FromSlice is NewScheme for weights read from configuration.
func FromSlice(ws []float64) (*Scheme, error) {
	if len(ws) != cards.NumCategories {
		return nil, fmt.Errorf("%w: need %d weights, got %d", ErrInvalidWeights, cards.NumCategories, len(ws))
	}
	var weights Weights
	copy(weights[:], ws)
	return NewScheme(weights)
}

// Default returns the unit-weight scheme.
func Default() *Scheme {
	s, _ := NewScheme(UnitWeights)
	return s
}

// Weights returns a copy of the category weights.
func (s *Scheme) Weights() Weights {
	return s.weights
}

// Score returns the weighted score of comb.
func (s *Scheme) Score(comb cards.Combination) float64 {
	return float64(BaseScore(comb)) * s.weights[comb.Category()]
}

// BaseScore places comb inside its category band.
func BaseScore(comb cards.Combination) int {
	v := comb.Value()
	switch comb.Category() {
	case cards.CategorySum:
		return baseSum + v - minSumValue
	case cards.CategorySuite:
		return baseSuite + v - minRunValue
	case cards.CategoryColor:
		return baseColor + v - minColorValue
	case cards.CategorySet:
		return baseSet + v - minSetValue
	case cards.CategoryColorSuite:
		return baseColorSuite + v - minRunValue
	default:
		return 0
	}
}

// Band returns the inclusive base score range of a category.
func Band(c cards.Category) (lo, hi int) {
	switch c {
	case cards.CategorySum:
		return baseSum, baseSuite - 1
	case cards.CategorySuite:
		return baseSuite, baseColor - 1
	case cards.CategoryColor:
		return baseColor, baseSet - 1
	case cards.CategorySet:
		return baseSet, baseColorSuite - 1
	case cards.CategoryColorSuite:
		return baseColorSuite, MaxBase
	default:
		return 0, -1
	}
}
