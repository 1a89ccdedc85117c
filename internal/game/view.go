package game

import "github.com/lox/battleline/cards"

// View is what one player may see of the game. It is a value: grids and hand
// are copied out of the State.
type View struct {
	Seat             Seat
	Mine             Grid
	Theirs           Grid
	Hand             Hand
	OpponentHandSize int
	DeckSize         int
}

// Side returns the opponent's grid when opponent is set, otherwise the
// viewer's own.
func (v *View) Side(opponent bool) *Grid {
	if opponent {
		return &v.Theirs
	}
	return &v.Mine
}

// Placed returns every card visible on the table.
func (v *View) Placed() cards.CardSet {
	return v.Mine.Set().Union(v.Theirs.Set())
}

// Unseen returns the number of cards the viewer cannot see: the deck plus
// the opponent's hand.
func (v *View) Unseen() int {
	return v.DeckSize + v.OpponentHandSize
}

// LegalMoves lists every card in hand against every open slot, cards first.
func (v *View) LegalMoves() []Move {
	open := v.Mine.Open()
	hand := v.Hand.Cards()
	out := make([]Move, 0, len(open)*len(hand))
	for _, c := range hand {
		for _, slot := range open {
			out = append(out, Move{Slot: slot, Card: c})
		}
	}
	return out
}
