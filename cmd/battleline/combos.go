package main

import (
	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/display"
)

type CombosCmd struct {
	Weights []float64 `help:"Category weights, weakest first (Sum,Suite,Color,Set,Color-Suite)"`
}

func (c *CombosCmd) Run(g *Globals) error {
	cfg, _, err := g.setup()
	if err != nil {
		return err
	}
	if len(c.Weights) > 0 {
		cfg.Engine.Weights = c.Weights
	}
	scheme, err := cfg.Scheme()
	if err != nil {
		return err
	}
	return display.Combos(g.stdout(), combos.NewGenerator(), scheme)
}
