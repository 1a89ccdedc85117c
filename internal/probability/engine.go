// Package probability estimates, from one player's point of view, how likely
// each three-card combination is to end up in a given slot.
//
// Every card of a combination contributes an independent factor and the
// factors are multiplied. This ignores the joint distribution of the unseen
// cards over the deck and the opponent's hand; it is a heuristic, not an
// exact probability.
package probability

import (
	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/game"
)

// Distribution maps reachable combinations to their probability. Only
// non-zero entries are stored.
type Distribution map[cards.Combination]float64

// Engine computes slot distributions over the universe of a Generator.
type Engine struct {
	gen          *combos.Generator
	handCapacity int
}

// Option configures an Engine.
type Option func(*Engine)

// WithHandCapacity sets the number of cards a full hand holds. It defaults
// to game.HandSize.
func WithHandCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.handCapacity = n
		}
	}
}

// New returns an Engine reading combinations from gen.
func New(gen *combos.Generator, opts ...Option) *Engine {
	e := &Engine{gen: gen, handCapacity: game.HandSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandCapacity returns the configured hand capacity.
func (e *Engine) HandCapacity() int {
	return e.handCapacity
}

// DeckFactor is the chance that I end up holding an unseen card: it has to
// be in the deck rather than the opponent's hand, and then be the one I
// draw. It is 0 once the deck is empty.
func (e *Engine) DeckFactor(deckSize int) float64 {
	if deckSize <= 0 {
		return 0
	}
	return 1 / float64(deckSize+e.handCapacity)
}

// DeckOrHandFactor is the chance that the opponent holds or will draw an
// unseen card. It is 1 once the deck is empty since every unseen card is
// then in their hand.
func (e *Engine) DeckOrHandFactor(deckSize int) float64 {
	if deckSize <= 0 {
		return 1
	}
	return float64(e.handCapacity+1) / float64(deckSize+e.handCapacity)
}

// SlotProbabilities returns the distribution of combinations for slot of
// the viewer's grid, or of the opponent's grid when forOpponent is set.
//
// A completed slot yields its combination at probability 1 for the
// opponent and an empty distribution for the viewer, who has nothing left
// to decide there.
func (e *Engine) SlotProbabilities(v game.View, slot int, forOpponent bool) Distribution {
	if slot < 0 || slot >= game.NumSlots {
		return Distribution{}
	}
	target := v.Side(forOpponent)[slot]
	placed := target.Cards()

	var universe []cards.Combination
	switch len(placed) {
	case 0:
		universe = e.emptySlotUniverse(v, forOpponent)
	case 1:
		universe = e.gen.Containing(placed[0])
	case 2:
		universe, _ = e.gen.ContainingPair(placed[0], placed[1])
	default:
		if !forOpponent {
			return Distribution{}
		}
		comb, _ := target.Combination()
		return Distribution{comb: 1}
	}
	return e.weigh(v, slot, forOpponent, universe)
}

// GridProbabilities computes the distributions of all nine slots of one
// side. Empty slots share a single distribution, computed once; callers
// must treat the maps as read-only.
func (e *Engine) GridProbabilities(v game.View, forOpponent bool) [game.NumSlots]Distribution {
	var out [game.NumSlots]Distribution
	var empty Distribution
	side := v.Side(forOpponent)
	for i := range game.NumSlots {
		if side[i].Empty() {
			if empty == nil {
				empty = e.SlotProbabilities(v, i, forOpponent)
			}
			out[i] = empty
			continue
		}
		out[i] = e.SlotProbabilities(v, i, forOpponent)
	}
	return out
}

// emptySlotUniverse is asymmetric on purpose: I only consider combinations
// I can start with a card in hand, while the opponent may build anything
// from cards I cannot see.
func (e *Engine) emptySlotUniverse(v game.View, forOpponent bool) []cards.Combination {
	if forOpponent {
		return e.gen.Excluding(v.Hand.Set().Union(v.Mine.Set()))
	}
	return e.gen.Union(v.Hand.Cards()...)
}

func (e *Engine) weigh(v game.View, slot int, forOpponent bool, universe []cards.Combination) Distribution {
	side := v.Side(forOpponent)
	inSlot := side[slot].Set()
	elsewhere := v.Placed() &^ inSlot
	hand := v.Hand.Set()

	unseen := e.DeckFactor(v.DeckSize)
	if forOpponent {
		unseen = e.DeckOrHandFactor(v.DeckSize)
	}

	dist := make(Distribution)
	for _, comb := range universe {
		if comb.Set().Intersects(elsewhere) {
			continue
		}
		p := 1.0
		for _, c := range comb.Cards() {
			switch {
			case inSlot.Contains(c):
			case hand.Contains(c):
				if forOpponent {
					p = 0
				}
			default:
				p *= unseen
			}
			if p == 0 {
				break
			}
		}
		if p != 0 {
			dist[comb] = p
		}
	}
	return dist
}
