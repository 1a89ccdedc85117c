package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/battleline/internal/bot"
	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/config"
	"github.com/lox/battleline/internal/display"
	"github.com/lox/battleline/internal/randutil"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"HCL configuration file" default:"battleline.hcl" env:"BATTLELINE_CONFIG" type:"path"`
	LogLevel string `help:"Log level (debug|info|warn|error), overrides the config file" env:"BATTLELINE_LOG_LEVEL"`
	NoColor  bool   `help:"Disable colored output"`
	Seed     int64  `help:"Random seed, 0 picks one" env:"BATTLELINE_SEED"`

	out io.Writer
}

func (g *Globals) stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (g *Globals) setup() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.Seed != 0 {
		cfg.Game.Seed = g.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = randutil.Seed()
	}

	display.SetColor(!g.NoColor)
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
	})
	return cfg, logger, nil
}

// newPlayer builds an engine player from the engine block of cfg. The
// random chooser draws from its own stream of the game seed.
func newPlayer(gen *combos.Generator, cfg *config.Config, logger *log.Logger, stream uint64) (*bot.Player, error) {
	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}
	var chooser bot.Chooser = bot.FirstChooser{}
	if cfg.Engine.Chooser == config.ChooserRandom {
		chooser = bot.NewRandomChooser(randutil.Derive(cfg.Game.Seed, stream))
	}
	return bot.New(gen,
		bot.WithLogger(logger),
		bot.WithScheme(scheme),
		bot.WithChooser(chooser),
		bot.WithTolerance(cfg.Engine.Tolerance),
		bot.WithHandCapacity(cfg.Game.HandCapacity),
	), nil
}

func depthOr(flag, fallback int) (int, error) {
	if flag == 0 {
		return fallback, nil
	}
	if flag < 0 {
		return 0, fmt.Errorf("%w: got %d", bot.ErrInvalidDepth, flag)
	}
	return flag, nil
}

// signalContext is cancelled on interrupt signals.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
