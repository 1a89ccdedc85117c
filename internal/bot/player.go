// Package bot chooses a move for the current turn from probability-weighted
// slot estimates.
package bot

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/game"
	"github.com/lox/battleline/internal/probability"
	"github.com/lox/battleline/internal/scoring"
)

// DefaultDepth is the number of combinations kept per slot and side.
const DefaultDepth = 10

var (
	ErrEmptyHand    = errors.New("hand is empty")
	ErrInvalidDepth = errors.New("search depth must be at least 1")
	ErrNoLegalMove  = errors.New("no legal move found")
)

// Player picks moves for one seat. A Player holds a tie-break Chooser that
// may carry its own random state, so give each concurrent game its own
// Player; the Generator can be shared.
type Player struct {
	gen          *combos.Generator
	scheme       *scoring.Scheme
	scores       *scoring.Table
	probs        *probability.Engine
	chooser      Chooser
	tolerance    float64
	handCapacity int
	logger       *log.Logger
}

// Option configures a Player.
type Option func(*Player)

func WithLogger(logger *log.Logger) Option {
	return func(p *Player) {
		p.logger = logger.WithPrefix("bot")
	}
}

// WithScheme sets the scoring weights. The default is unit weights.
func WithScheme(s *scoring.Scheme) Option {
	return func(p *Player) {
		p.scheme = s
	}
}

// WithChooser sets the tie-break between equally valued moves.
func WithChooser(c Chooser) Option {
	return func(p *Player) {
		p.chooser = c
	}
}

// WithTolerance treats estimates within eps of each other as equal. The
// default of 0 compares estimates exactly.
func WithTolerance(eps float64) Option {
	return func(p *Player) {
		p.tolerance = math.Abs(eps)
	}
}

// WithHandCapacity passes the hand size on to the probability engine.
func WithHandCapacity(n int) Option {
	return func(p *Player) {
		p.handCapacity = n
	}
}

// New returns a Player drawing combinations from gen.
func New(gen *combos.Generator, opts ...Option) *Player {
	p := &Player{
		gen:          gen,
		scheme:       scoring.Default(),
		chooser:      FirstChooser{},
		handCapacity: game.HandSize,
		logger:       log.Default().WithPrefix("bot"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.scores = scoring.NewTable(gen, p.scheme)
	p.probs = probability.New(gen, probability.WithHandCapacity(p.handCapacity))
	return p
}

// Agent adapts the player to the game loop, searching depth combinations
// per slot.
func (p *Player) Agent(depth int) game.Agent {
	return game.AgentFunc(func(ctx context.Context, v game.View) (game.Move, error) {
		if err := ctx.Err(); err != nil {
			return game.Move{}, err
		}
		return p.MakeMove(v, depth)
	})
}

// MakeMove returns the card to play and the slot to play it in.
func (p *Player) MakeMove(v game.View, depth int) (game.Move, error) {
	if v.Hand.Empty() {
		return game.Move{}, ErrEmptyHand
	}
	if depth < 1 {
		return game.Move{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}

	all := p.Candidates(v, depth)
	best := NonLockingPlayable(all)
	if len(best) == 0 {
		p.logger.Debug("Every slot is locked, considering all playable candidates", "candidates", len(all))
		best = Playable(all)
	}
	if len(best) == 0 {
		return game.Move{}, fmt.Errorf("%w: %d candidates, none playable", ErrNoLegalMove, len(all))
	}

	m, err := p.Resolve(v.Hand, best, all)
	if err != nil {
		return game.Move{}, err
	}
	if v.Mine[m.Slot].Full() {
		return game.Move{}, fmt.Errorf("resolved slot %d: %w", m.Slot+1, game.ErrSlotFull)
	}

	p.logger.Debug("Move selected",
		"seat", v.Seat,
		"slot", m.Slot+1,
		"card", m.Card,
		"estimate", best[0].Estimate,
		"combination", best[0].Combination,
		"deck", v.DeckSize)
	return m, nil
}

// Candidates scores my retained combinations in every slot and returns them
// sorted by descending estimate.
func (p *Player) Candidates(v game.View, depth int) []Candidate {
	mine := p.probs.GridProbabilities(v, false)
	theirs := p.probs.GridProbabilities(v, true)

	// empty slots share one distribution per side, so they share its top
	// entries as well
	var emptyMine, emptyTheirs []weighted
	keep := func(d probability.Distribution, empty bool, cache *[]weighted) []weighted {
		if !empty {
			return p.truncate(d, depth)
		}
		if *cache == nil {
			*cache = p.truncate(d, depth)
		}
		return *cache
	}

	hand := v.Hand.Set()
	var out []Candidate
	for slot := range game.NumSlots {
		ms := keep(mine[slot], v.Mine[slot].Empty(), &emptyMine)
		os := keep(theirs[slot], v.Theirs[slot].Empty(), &emptyTheirs)
		theirsDone := v.Theirs[slot].Full()

		for _, m := range ms {
			est := 0.0
			for _, o := range os {
				switch {
				case m.score > o.score:
					est += m.p * o.p
				case m.score < o.score:
					est -= m.p * o.p
				case theirsDone:
					// they completed first and win ties
					est -= m.p * o.p
				}
			}
			out = append(out, Candidate{
				Slot:        slot,
				Combination: m.comb,
				Estimate:    est,
				Playable:    m.comb.Set().Intersects(hand),
			})
		}
	}
	SortCandidates(out)
	return out
}

type weighted struct {
	comb  cards.Combination
	p     float64
	score float64
}

func (w weighted) expectation() float64 {
	return w.p * w.score
}

// truncate keeps the depth combinations of d with the highest expected score,
// highest first. Equal expectations fall back to card order.
func (p *Player) truncate(d probability.Distribution, depth int) []weighted {
	out := make([]weighted, 0, len(d))
	for comb, prob := range d {
		out = append(out, weighted{comb: comb, p: prob, score: p.scores.Score(comb)})
	}
	slices.SortFunc(out, func(a, b weighted) int {
		if c := cmp.Compare(b.expectation(), a.expectation()); c != 0 {
			return c
		}
		return a.comb.CompareCards(b.comb)
	})
	if len(out) > depth {
		out = out[:depth]
	}
	return out
}

// Resolve turns the filtered candidates into a single move.
//
// Among the candidates tied on the best estimate, every hand card they use
// is counted once per use; the least used cards are kept and paired with
// the slots they appear in. A single pair is played directly. Otherwise
// each pair is valued by the best estimate left in its slot once the card
// is gone (negative infinity when nothing is left) and the lowest value is
// played. Remaining ties go to the Chooser.
func (p *Player) Resolve(hand game.Hand, best, all []Candidate) (game.Move, error) {
	if len(best) == 0 {
		return game.Move{}, ErrNoLegalMove
	}
	top := best[0].Estimate

	usage := make(map[cards.Card][]int)
	for _, c := range best {
		if !p.tied(c.Estimate, top) {
			break
		}
		for _, card := range c.Combination.Cards() {
			if hand.Contains(card) {
				usage[card] = append(usage[card], c.Slot)
			}
		}
	}
	if len(usage) == 0 {
		return game.Move{}, fmt.Errorf("%w: best candidates use no card in hand", ErrNoLegalMove)
	}

	fewest := math.MaxInt
	for _, slots := range usage {
		fewest = min(fewest, len(slots))
	}
	var moves []game.Move
	for card, slots := range usage {
		if len(slots) != fewest {
			continue
		}
		for _, slot := range slots {
			m := game.Move{Slot: slot, Card: card}
			if !slices.Contains(moves, m) {
				moves = append(moves, m)
			}
		}
	}
	slices.SortFunc(moves, compareMoves)
	if len(moves) == 1 {
		return moves[0], nil
	}

	values := make([]float64, len(moves))
	lowest := math.Inf(1)
	for i, m := range moves {
		values[i] = replacement(all, m)
		lowest = min(lowest, values[i])
	}
	var tied []game.Move
	for i, m := range moves {
		if values[i] == lowest || p.tied(values[i], lowest) {
			tied = append(tied, m)
		}
	}
	if len(tied) == 1 {
		return tied[0], nil
	}
	p.logger.Debug("Breaking tie", "moves", len(tied), "value", lowest)
	return tied[p.chooser.Choose(tied)], nil
}

// tied reports whether a is close enough to b to count as equal.
func (p *Player) tied(a, b float64) bool {
	return math.Abs(a-b) <= p.tolerance
}

// replacement is the best estimate in m's slot among candidates that do
// not need m's card.
func replacement(sorted []Candidate, m game.Move) float64 {
	for _, c := range sorted {
		if c.Slot == m.Slot && !c.Combination.Contains(m.Card) {
			return c.Estimate
		}
	}
	return math.Inf(-1)
}

func compareMoves(a, b game.Move) int {
	if c := a.Card.Compare(b.Card); c != 0 {
		return c
	}
	return cmp.Compare(a.Slot, b.Slot)
}
