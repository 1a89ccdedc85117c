package main

import (
	"fmt"

	"github.com/lox/battleline/internal/bot"
	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/deck"
	"github.com/lox/battleline/internal/display"
	"github.com/lox/battleline/internal/fileutil"
	"github.com/lox/battleline/internal/game"
	"github.com/lox/battleline/internal/gameid"
	"github.com/lox/battleline/internal/randutil"
)

// Random streams derived from the game seed.
const (
	streamDeck = iota
	streamEngine
	streamOpponent
)

type PlayCmd struct {
	Depth    int    `help:"Combinations kept per slot, 0 uses the config"`
	Opponent string `default:"engine" enum:"engine,random,first" help:"Opponent in seat two (engine|random|first)"`
	Moves    bool   `help:"List every move"`
	Save     string `type:"path" help:"Write the game record as JSON to this file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	depth, err := depthOr(c.Depth, cfg.Engine.Depth)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	gen := combos.NewGenerator()
	p1, err := newPlayer(gen, cfg, logger, streamEngine)
	if err != nil {
		return err
	}
	var opponent game.Agent
	switch c.Opponent {
	case "engine":
		p2, err := newPlayer(gen, cfg, logger, streamOpponent)
		if err != nil {
			return err
		}
		opponent = p2.Agent(depth)
	case "random":
		opponent = bot.NewRandomAgent(randutil.Derive(cfg.Game.Seed, streamOpponent), logger)
	case "first":
		opponent = game.FirstLegal
	default:
		return fmt.Errorf("unknown opponent %q", c.Opponent)
	}

	st, err := game.NewState(deck.New(randutil.Derive(cfg.Game.Seed, streamDeck)))
	if err != nil {
		return err
	}
	engine := game.NewEngine(
		game.WithLogger(logger),
		game.WithFallback(game.FirstLegal),
		game.WithIDs(gameid.Seeded(cfg.Game.Seed)),
	)
	rec, err := engine.Play(ctx, st, [game.NumSeats]game.Agent{p1.Agent(depth), opponent})
	if err != nil {
		return err
	}

	names := [game.NumSeats]string{"engine", c.Opponent}
	if c.Opponent == "engine" {
		names = [game.NumSeats]string{"P1", "P2"}
	}
	w := g.stdout()
	if c.Moves {
		fmt.Fprintln(w, display.Moves(rec, names))
	}
	fmt.Fprint(w, display.Board(st, names))
	fmt.Fprintln(w)
	fmt.Fprintln(w, display.Outcome(rec.Outcome, names))
	fmt.Fprintln(w, display.InfoStyle.Render(fmt.Sprintf("game %s, seed %d, %d fallbacks, %v",
		rec.ID, cfg.Game.Seed, rec.Fallbacks[0]+rec.Fallbacks[1], rec.Duration)))

	if c.Save != "" {
		if err := fileutil.WriteJSON(c.Save, newGameDocument(rec, cfg.Game.Seed, names)); err != nil {
			return err
		}
		logger.Info("Saved game", "path", c.Save)
	}
	return nil
}
