package main

import (
	"fmt"

	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/deck"
	"github.com/lox/battleline/internal/display"
	"github.com/lox/battleline/internal/game"
	"github.com/lox/battleline/internal/randutil"
	"github.com/lox/battleline/internal/tui"
)

type HumanCmd struct {
	Second bool `help:"Let the engine move first"`
	Depth  int  `help:"Engine depth, 0 uses the config"`
}

func (c *HumanCmd) Run(g *Globals) error {
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

	p, err := newPlayer(combos.NewGenerator(), cfg, logger, streamEngine)
	if err != nil {
		return err
	}
	st, err := game.NewState(deck.New(randutil.Derive(cfg.Game.Seed, streamDeck)))
	if err != nil {
		return err
	}

	human := game.PlayerOne
	if c.Second {
		human = game.PlayerTwo
	}
	m := tui.New(ctx, st, human, p.Agent(depth), logger)
	if err := tui.Run(ctx, m); err != nil {
		return err
	}

	if out, ok := m.Outcome(); ok {
		var names [game.NumSeats]string
		names[human] = "you"
		names[human.Other()] = "engine"
		fmt.Fprint(g.stdout(), display.Board(st, names))
		fmt.Fprintln(g.stdout(), display.Outcome(out, names))
	}
	return nil
}
