package game

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/battleline/internal/gameid"
)

// Engine runs games between two agents. It can be shared between interactive
// play and simulation.
type Engine struct {
	logger   *log.Logger
	clock    quartz.Clock
	fallback Agent
	ids      *gameid.Generator
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.WithPrefix("game")
	}
}

// WithClock sets the clock used to time games.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithFallback sets an agent consulted when the seated agent returns an
// error or an illegal move. Without one those turns end the game with an
// error.
func WithFallback(agent Agent) Option {
	return func(e *Engine) {
		e.fallback = agent
	}
}

// WithIDs sets the generator for record IDs. The default draws from
// crypto/rand.
func WithIDs(ids *gameid.Generator) Option {
	return func(e *Engine) {
		e.ids = ids
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: log.Default().WithPrefix("game"),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Turn is one placed card.
type Turn struct {
	Seat     Seat
	Move     Move
	Fallback bool
}

// Record is the result of a completed game.
type Record struct {
	ID        string
	Turns     []Turn
	Outcome   Outcome
	Fallbacks [NumSeats]int
	Duration  time.Duration
}

// Play runs st to completion. agents[seat] is asked for a move whenever seat
// is on move. On error the partial record is returned alongside it.
func (e *Engine) Play(ctx context.Context, st *State, agents [NumSeats]Agent) (*Record, error) {
	start := e.clock.Now()
	rec := &Record{ID: e.ids.Next()}
	logger := e.logger.With("game", rec.ID)
	logger.Debug("Starting game", "deck", st.DeckSize(), "first", st.ToMove())

	for !st.Over() {
		if err := ctx.Err(); err != nil {
			return rec, err
		}
		turn, err := e.playTurn(ctx, logger, st, agents)
		if err != nil {
			rec.Duration = e.clock.Since(start)
			return rec, err
		}
		if turn.Fallback {
			rec.Fallbacks[turn.Seat]++
		}
		rec.Turns = append(rec.Turns, turn)
	}

	if err := st.Validate(); err != nil {
		logger.Error("Card conservation violation detected", "error", err)
		return rec, err
	}
	out, err := st.Outcome()
	if err != nil {
		return rec, err
	}
	rec.Outcome = out
	rec.Duration = e.clock.Since(start)

	logger.Debug("Game complete",
		"winner", out.Winner,
		"p1", out.SlotsWon[PlayerOne],
		"p2", out.SlotsWon[PlayerTwo],
		"turns", len(rec.Turns),
		"duration", rec.Duration)
	return rec, nil
}

func (e *Engine) playTurn(ctx context.Context, logger *log.Logger, st *State, agents [NumSeats]Agent) (Turn, error) {
	seat := st.ToMove()
	v := st.View(seat)

	m, err := agents[seat].Move(ctx, v)
	if err == nil {
		err = st.Apply(m)
	}
	if err == nil {
		logger.Debug("Card placed", "seat", seat, "slot", m.Slot+1, "card", m.Card, "deck", st.DeckSize())
		return Turn{Seat: seat, Move: m}, nil
	}
	if e.fallback == nil || ctx.Err() != nil {
		return Turn{}, fmt.Errorf("turn %d (%s): %w", st.Turn()+1, seat, err)
	}

	logger.Warn("Agent move rejected, using fallback", "seat", seat, "error", err)
	m, err = e.fallback.Move(ctx, v)
	if err == nil {
		err = st.Apply(m)
	}
	if err != nil {
		logger.Error("Fallback move also failed", "seat", seat, "error", err)
		return Turn{}, fmt.Errorf("turn %d (%s) fallback: %w", st.Turn()+1, seat, err)
	}
	logger.Debug("Card placed", "seat", seat, "slot", m.Slot+1, "card", m.Card, "deck", st.DeckSize(), "fallback", true)
	return Turn{Seat: seat, Move: m, Fallback: true}, nil
}
