package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/game"
	"github.com/lox/battleline/internal/gameid"
)

func testGlobals(t *testing.T) (*Globals, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return &Globals{
		Config:   filepath.Join(t.TempDir(), "missing.hcl"),
		LogLevel: "error",
		NoColor:  true,
		Seed:     42,
		out:      &buf,
	}, &buf
}

func TestParseGrid(t *testing.T) {
	tests := []struct {
		name    string
		specs   []string
		wantErr bool
	}{
		{"empty", nil, false},
		{"compact", []string{"3=9r1r"}, false},
		{"spaced", []string{"3=9r 1r", "9=1b"}, false},
		{"split over flags", []string{"3=9r", "3=1r"}, false},
		{"missing equals", []string{"3 9r"}, true},
		{"slot zero", []string{"0=9r"}, true},
		{"slot ten", []string{"10=9r"}, true},
		{"bad card", []string{"1=9x"}, true},
		{"overfull", []string{"1=1b2b3b4b"}, true},
		{"duplicate in slot", []string{"1=1b1b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseGrid(tt.specs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	g, err := parseGrid([]string{"3=9r", "3=1r", "9=1b"})
	require.NoError(t, err)
	assert.Equal(t, "[9r 1r]", g[2].String())
	assert.Equal(t, 3, g.Placed())
}

func TestMoveView(t *testing.T) {
	c := MoveCmd{
		Hand:         "1b 2b 3b 4b 5b 6b",
		Mine:         []string{"1=9r8r"},
		Theirs:       []string{"1=9y"},
		Deck:         -1,
		OpponentHand: 6,
	}
	v, err := c.view()
	require.NoError(t, err)
	assert.Equal(t, game.PlayerOne, v.Seat)
	assert.Equal(t, 6, v.Hand.Len())
	assert.Equal(t, cards.NumCards-6-3-6, v.DeckSize)

	c.Deck = 5
	v, err = c.view()
	require.NoError(t, err)
	assert.Equal(t, 5, v.DeckSize)

	for _, bad := range []MoveCmd{
		{Hand: "1b 1b"},
		{Hand: "1b", Mine: []string{"1=1b"}},
		{Hand: "1b", Mine: []string{"1=2b"}, Theirs: []string{"4=2b"}},
		{Hand: "1z"},
	} {
		_, err := bad.view()
		assert.Error(t, err, "%+v", bad)
	}
}

func TestCommands(t *testing.T) {
	t.Run("combos", func(t *testing.T) {
		g, buf := testGlobals(t)
		require.NoError(t, (&CombosCmd{}).Run(g))
		assert.Contains(t, buf.String(), "24804 combinations")

		g, _ = testGlobals(t)
		assert.Error(t, (&CombosCmd{Weights: []float64{5, 4, 3, 2, 1}}).Run(g))
	})

	t.Run("move", func(t *testing.T) {
		g, buf := testGlobals(t)
		c := &MoveCmd{
			Hand:         "1b 2b 3b 7g 8g 9y",
			Mine:         []string{"1=4b"},
			Deck:         -1,
			OpponentHand: 6,
			Depth:        3,
			Candidates:   5,
		}
		require.NoError(t, c.Run(g))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		fields := strings.Fields(lines[0])
		require.Len(t, fields, 3)
		assert.Equal(t, "play", fields[0])
		card, err := cards.ParseCard(fields[2])
		require.NoError(t, err)
		assert.Contains(t, c.Hand, card.String())
		assert.Contains(t, buf.String(), "estimate")
	})

	t.Run("play", func(t *testing.T) {
		g, buf := testGlobals(t)
		require.NoError(t, (&PlayCmd{Depth: 2, Opponent: "first", Moves: true}).Run(g))
		out := buf.String()
		assert.Contains(t, out, "won by")
		assert.Contains(t, out, "slots to")
		assert.Contains(t, out, "seed 42")
	})

	t.Run("simulate", func(t *testing.T) {
		g, buf := testGlobals(t)
		c := &SimulateCmd{Deals: 1, Workers: 1, Depth: 2, Opponent: "random"}
		require.NoError(t, c.Run(g))
		assert.Contains(t, buf.String(), "engine vs random (seed 42)")
		assert.Contains(t, buf.String(), "win rate")
	})

	t.Run("play saves the record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "game.json")
		load := func() gameDocument {
			g, _ := testGlobals(t)
			require.NoError(t, (&PlayCmd{Depth: 2, Opponent: "random", Save: path}).Run(g))
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			var doc gameDocument
			require.NoError(t, json.Unmarshal(data, &doc))
			return doc
		}

		doc := load()
		assert.NoError(t, gameid.Validate(doc.ID))
		assert.Equal(t, int64(42), doc.Seed)
		assert.Equal(t, [game.NumSeats]string{"engine", "random"}, doc.Players)
		assert.Len(t, doc.Moves, cards.NumCards)
		assert.Equal(t, "engine", doc.Moves[0].Seat)
		assert.Equal(t, game.NumSlots, doc.SlotsWon[0]+doc.SlotsWon[1])
		assert.Contains(t, doc.Players, doc.Winner)

		again := load()
		assert.Equal(t, doc.ID, again.ID, "the seed fixes the game ID")
		assert.Equal(t, doc.Moves, again.Moves)
	})

	t.Run("simulate writes a report", func(t *testing.T) {
		g, _ := testGlobals(t)
		path := filepath.Join(t.TempDir(), "report.json")
		c := &SimulateCmd{Deals: 2, Workers: 2, Depth: 2, Opponent: "first", Output: path}
		require.NoError(t, c.Run(g))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc reportDocument
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "first", doc.Opponent)
		assert.Equal(t, 2, doc.Deals)
		assert.Equal(t, 4, doc.Games)
		assert.Equal(t, 2, doc.Seats[0].Games)
		assert.Equal(t, 2, doc.Seats[1].Games)
		assert.LessOrEqual(t, doc.WinRateCI[0], doc.WinRate)
		assert.GreaterOrEqual(t, doc.WinRateCI[1], doc.WinRate)
	})

	t.Run("simulate rejects unknown opponent", func(t *testing.T) {
		g, _ := testGlobals(t)
		assert.Error(t, (&SimulateCmd{Opponent: "shark"}).Run(g))
	})

	t.Run("bad depth", func(t *testing.T) {
		g, _ := testGlobals(t)
		assert.Error(t, (&PlayCmd{Depth: -1, Opponent: "first"}).Run(g))
	})
}

func TestKongParsing(t *testing.T) {
	t.Setenv("BATTLELINE_SEED", "7")
	t.Setenv("BATTLELINE_LOG_LEVEL", "debug")

	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"simulate", "--deals", "3", "--opponent", "first", "--timeout", "2s"})
	require.NoError(t, err)
	assert.Equal(t, "simulate", ctx.Command())
	assert.Equal(t, 3, cli.Simulate.Deals)
	assert.Equal(t, "first", cli.Simulate.Opponent)
	assert.Equal(t, "2s", cli.Simulate.Timeout.String())
	assert.Equal(t, int64(7), cli.Seed)
	assert.Equal(t, "debug", cli.LogLevel)
	assert.True(t, filepath.IsAbs(cli.Config))

	ctx, err = parser.Parse([]string{"move", "--hand", "1b 2b", "--mine", "3=9r1r", "--mine", "4=5g"})
	require.NoError(t, err)
	assert.Equal(t, "move", ctx.Command())
	assert.Equal(t, []string{"3=9r1r", "4=5g"}, cli.Move.Mine)

	_, err = parser.Parse([]string{"play", "--opponent", "shark"})
	assert.Error(t, err)
}
