package bot

import (
	rand "math/rand/v2"

	"github.com/lox/battleline/internal/game"
)

// Chooser breaks ties between moves the engine values equally. Choose
// receives at least two moves, sorted by card then slot, and returns the
// index of the one to play.
type Chooser interface {
	Choose(moves []game.Move) int
}

// FirstChooser always takes the first move, which makes decisions fully
// reproducible.
type FirstChooser struct{}

func (FirstChooser) Choose([]game.Move) int {
	return 0
}

// RandomChooser picks uniformly with its own generator. It is not safe for
// concurrent use.
type RandomChooser struct {
	rng *rand.Rand
}

func NewRandomChooser(rng *rand.Rand) *RandomChooser {
	return &RandomChooser{rng: rng}
}

func (r *RandomChooser) Choose(moves []game.Move) int {
	return r.rng.IntN(len(moves))
}
