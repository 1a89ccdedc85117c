package bot

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/game"
)

// Candidate is one of my reachable combinations for a slot, with its net
// chance of winning that slot against the opponent's likely combinations.
type Candidate struct {
	Slot        int
	Combination cards.Combination
	Estimate    float64
	// Playable is set when at least one card of the combination is in hand.
	Playable bool
}

func (c Candidate) String() string {
	return fmt.Sprintf("slot %d %s %.4f playable=%t", c.Slot+1, c.Combination, c.Estimate, c.Playable)
}

// SortCandidates orders cs by descending estimate, keeping the relative
// order of equal estimates.
func SortCandidates(cs []Candidate) {
	slices.SortStableFunc(cs, func(a, b Candidate) int {
		return cmp.Compare(b.Estimate, a.Estimate)
	})
}

// NonLockingPlayable filters a sorted candidate list. The first candidate
// seen for a slot decides it: a non-playable one locks the slot and drops
// all of its candidates, a playable one opens it and its later candidates
// are kept while they stay playable. Output keeps input order.
func NonLockingPlayable(sorted []Candidate) []Candidate {
	const (
		undecided = iota
		open
		locked
	)
	var state [game.NumSlots]int
	var out []Candidate
	for _, c := range sorted {
		switch state[c.Slot] {
		case undecided:
			if !c.Playable {
				state[c.Slot] = locked
				continue
			}
			state[c.Slot] = open
			out = append(out, c)
		case open:
			if c.Playable {
				out = append(out, c)
			}
		}
	}
	return out
}

// Playable returns every playable candidate, in order.
func Playable(cs []Candidate) []Candidate {
	var out []Candidate
	for _, c := range cs {
		if c.Playable {
			out = append(out, c)
		}
	}
	return out
}
