package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play one engine game and show the board"`
	Simulate SimulateCmd      `cmd:"" help:"Play many engine games concurrently and summarise them"`
	Move     MoveCmd          `cmd:"" help:"Compute the engine's move for a position"`
	Combos   CombosCmd        `cmd:"" help:"Show combination counts and score bands"`
	Human    HumanCmd         `cmd:"" help:"Play against the engine in the terminal"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("battleline"),
		kong.Description("Decision engine for a two-player, nine-slot card game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
