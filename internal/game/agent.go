package game

import (
	"context"
	"fmt"
)

// Agent chooses moves. Agents receive a View and return a decision; they
// never mutate game state.
type Agent interface {
	Move(ctx context.Context, v View) (Move, error)
}

// AgentFunc adapts a function to Agent.
type AgentFunc func(ctx context.Context, v View) (Move, error)

func (f AgentFunc) Move(ctx context.Context, v View) (Move, error) {
	return f(ctx, v)
}

// FirstLegal plays the lowest card in hand into the first open slot. The
// engine uses it when an agent fails to produce a playable move.
var FirstLegal Agent = AgentFunc(func(_ context.Context, v View) (Move, error) {
	moves := v.LegalMoves()
	if len(moves) == 0 {
		return Move{}, fmt.Errorf("%s has no legal move", v.Seat)
	}
	return moves[0], nil
})
