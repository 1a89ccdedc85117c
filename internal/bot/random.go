package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/battleline/internal/game"
)

// RandomAgent plays a uniformly random legal move. It is the baseline
// opponent for simulations.
type RandomAgent struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewRandomAgent(rng *rand.Rand, logger *log.Logger) *RandomAgent {
	return &RandomAgent{rng: rng, logger: logger.WithPrefix("random")}
}

func (r *RandomAgent) Move(_ context.Context, v game.View) (game.Move, error) {
	moves := v.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, ErrNoLegalMove
	}
	m := moves[r.rng.IntN(len(moves))]
	r.logger.Debug("Random move", "seat", v.Seat, "slot", m.Slot+1, "card", m.Card)
	return m, nil
}
