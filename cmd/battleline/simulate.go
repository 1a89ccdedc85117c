package main

import (
	"time"

	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/config"
	"github.com/lox/battleline/internal/display"
	"github.com/lox/battleline/internal/fileutil"
	"github.com/lox/battleline/internal/simulator"
)

type SimulateCmd struct {
	Deals         int           `help:"Deals to play, each from both seats; 0 uses the config"`
	Workers       int           `help:"Concurrent deals, 0 uses the config"`
	Depth         int           `help:"Engine depth, 0 uses the config"`
	Opponent      string        `help:"Opponent (engine|random|first), empty uses the config"`
	OpponentDepth int           `help:"Depth of an engine opponent, 0 uses the config"`
	Timeout       time.Duration `default:"0s" help:"Per-game timeout, 0 disables"`
	Output        string        `type:"path" help:"Also write the report as JSON to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	scheme, err := cfg.Scheme()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	sim, err := simulator.New(simulator.Config{
		Deals:         cfg.Simulation.Games,
		Workers:       cfg.Simulation.Workers,
		Seed:          cfg.Game.Seed,
		Depth:         cfg.Engine.Depth,
		Opponent:      cfg.Simulation.Opponent,
		OpponentDepth: cfg.Simulation.OpponentDepth,
		Scheme:        scheme,
		Tolerance:     cfg.Engine.Tolerance,
		RandomChooser: cfg.Engine.Chooser == config.ChooserRandom,
		HandCapacity:  cfg.Game.HandCapacity,
		Timeout:       c.Timeout,
		Logger:        logger,
	}, combos.NewGenerator())
	if err != nil {
		return err
	}

	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	if err := display.Summary(g.stdout(), report); err != nil {
		return err
	}
	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, newReportDocument(report)); err != nil {
			return err
		}
		logger.Info("Saved report", "path", c.Output)
	}
	return nil
}

// apply copies the flags that were set over the configuration.
func (c *SimulateCmd) apply(cfg *config.Config) {
	if c.Deals != 0 {
		cfg.Simulation.Games = c.Deals
	}
	if c.Workers != 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Depth != 0 {
		cfg.Engine.Depth = c.Depth
	}
	if c.Opponent != "" {
		cfg.Simulation.Opponent = c.Opponent
	}
	if c.OpponentDepth != 0 {
		cfg.Simulation.OpponentDepth = c.OpponentDepth
	}
}
