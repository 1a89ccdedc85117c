// Package simulator plays batches of engine games concurrently and collects
// statistics for the engine's seat.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/battleline/internal/bot"
	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/deck"
	"github.com/lox/battleline/internal/game"
	"github.com/lox/battleline/internal/randutil"
	"github.com/lox/battleline/internal/scoring"
	"github.com/lox/battleline/internal/statistics"
)

// Opponent kinds.
const (
	OpponentEngine = "engine"
	OpponentRandom = "random"
	OpponentFirst  = "first"
)

var ErrUnknownOpponent = errors.New("unknown opponent")

// Random stream offsets within one deal.
const (
	streamDeck = iota
	streamEngine
	streamOpponent
	streamsPerDeal
)

// Config holds configuration for running simulations.
type Config struct {
	Deals         int   // each deal is played once from each seat
	Workers       int   // concurrent deals
	Seed          int64 // base seed; deal i uses its own derived streams
	Depth         int
	Opponent      string
	OpponentDepth int
	Scheme        *scoring.Scheme
	Tolerance     float64
	RandomChooser bool          // break engine ties randomly instead of taking the first move
	HandCapacity  int           // passed to the probability engine; 0 keeps the default
	Timeout       time.Duration // per game; 0 disables
	Logger        *log.Logger
	Clock         quartz.Clock
}

// Report is the outcome of a simulation run.
type Report struct {
	Stats    *statistics.Statistics
	Opponent string
	Seed     int64
	Deals    int
	Elapsed  time.Duration
}

// Simulator runs engine games.
type Simulator struct {
	config Config
	gen    *combos.Generator
	engine *game.Engine
	logger *log.Logger
}

// New creates a simulator. The generator is shared by every game.
func New(config Config, gen *combos.Generator) (*Simulator, error) {
	if config.Deals < 1 {
		return nil, fmt.Errorf("simulation needs at least one deal, got %d", config.Deals)
	}
	if config.Depth < 1 {
		return nil, fmt.Errorf("%w: got %d", bot.ErrInvalidDepth, config.Depth)
	}
	switch config.Opponent {
	case OpponentEngine:
		if config.OpponentDepth < 1 {
			config.OpponentDepth = config.Depth
		}
	case OpponentRandom, OpponentFirst:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOpponent, config.Opponent)
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Scheme == nil {
		config.Scheme = scoring.Default()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}

	logger := config.Logger.WithPrefix("simulator")
	return &Simulator{
		config: config,
		gen:    gen,
		logger: logger,
		engine: game.NewEngine(
			game.WithLogger(config.Logger),
			game.WithClock(config.Clock),
			game.WithFallback(game.FirstLegal),
		),
	}, nil
}

// Run plays every deal from both seats and aggregates the engine's results.
// Results are added in deal order, so a run is reproducible from its seed
// whatever the number of workers. Cancelling ctx stops scheduling new deals
// and returns the context's error.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	start := s.config.Clock.Now()
	// prebuild so workers do not queue on the first lookup
	s.gen.All()

	results := make([][game.NumSeats]statistics.GameResult, s.config.Deals)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	s.logger.Info("Starting simulation",
		"deals", s.config.Deals,
		"workers", s.config.Workers,
		"opponent", s.config.Opponent,
		"seed", s.config.Seed)

schedule:
	for deal := range s.config.Deals {
		select {
		case <-gctx.Done():
			break schedule
		default:
		}
		g.Go(func() error {
			for seat := range game.Seat(game.NumSeats) {
				r, err := s.PlayDeal(gctx, deal, seat)
				if err != nil {
					return fmt.Errorf("deal %d as %s: %w", deal, seat, err)
				}
				results[deal][seat] = r
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, pair := range results {
		for _, r := range pair {
			stats.Add(r)
		}
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report := &Report{
		Stats:    stats,
		Opponent: s.config.Opponent,
		Seed:     s.config.Seed,
		Deals:    s.config.Deals,
		Elapsed:  s.config.Clock.Since(start),
	}
	s.logger.Info("Simulation complete",
		"games", stats.Games,
		"win_rate", fmt.Sprintf("%.3f", stats.WinRate()),
		"mean_margin", fmt.Sprintf("%.3f", stats.Mean()),
		"elapsed", report.Elapsed)
	return report, nil
}

// PlayDeal plays deal with the engine in seat. The deck and both agents'
// random streams depend only on the seed and the deal, so both seatings of
// a deal see the same cards.
func (s *Simulator) PlayDeal(ctx context.Context, deal int, seat game.Seat) (statistics.GameResult, error) {
	if !seat.Valid() {
		return statistics.GameResult{}, fmt.Errorf("invalid seat %d", seat)
	}
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	base := uint64(deal) * streamsPerDeal
	st, err := game.NewState(deck.New(randutil.Derive(s.config.Seed, base+streamDeck)))
	if err != nil {
		return statistics.GameResult{}, err
	}

	var agents [game.NumSeats]game.Agent
	agents[seat] = s.enginePlayer(base+streamEngine, s.config.Depth)
	opp, err := s.opponent(base + streamOpponent)
	if err != nil {
		return statistics.GameResult{}, err
	}
	agents[seat.Other()] = opp

	rec, err := s.engine.Play(ctx, st, agents)
	if err != nil {
		return statistics.GameResult{}, err
	}

	won := rec.Outcome.SlotsWon[seat]
	lost := rec.Outcome.SlotsWon[seat.Other()]
	s.logger.Debug("Game finished",
		"deal", deal,
		"seat", seat,
		"won", won,
		"lost", lost,
		"fallbacks", rec.Fallbacks[seat])

	return statistics.GameResult{
		Deal:      deal,
		Seat:      seat,
		SlotsWon:  won,
		Margin:    won - lost,
		Won:       rec.Outcome.Winner == seat,
		Fallbacks: rec.Fallbacks[seat],
		Turns:     len(rec.Turns),
		Duration:  rec.Duration,
	}, nil
}

func (s *Simulator) enginePlayer(stream uint64, depth int) game.Agent {
	var chooser bot.Chooser = bot.FirstChooser{}
	if s.config.RandomChooser {
		chooser = bot.NewRandomChooser(randutil.Derive(s.config.Seed, stream))
	}
	opts := []bot.Option{
		bot.WithLogger(s.config.Logger),
		bot.WithScheme(s.config.Scheme),
		bot.WithChooser(chooser),
		bot.WithTolerance(s.config.Tolerance),
	}
	if s.config.HandCapacity > 0 {
		opts = append(opts, bot.WithHandCapacity(s.config.HandCapacity))
	}
	return bot.New(s.gen, opts...).Agent(depth)
}

func (s *Simulator) opponent(stream uint64) (game.Agent, error) {
	switch s.config.Opponent {
	case OpponentEngine:
		return s.enginePlayer(stream, s.config.OpponentDepth), nil
	case OpponentRandom:
		return bot.NewRandomAgent(randutil.Derive(s.config.Seed, stream), s.config.Logger), nil
	case OpponentFirst:
		return game.FirstLegal, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOpponent, s.config.Opponent)
	}
}
