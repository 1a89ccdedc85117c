package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/combos"
	"github.com/lox/battleline/internal/display"
	"github.com/lox/battleline/internal/game"
)

type MoveCmd struct {
	Hand         string   `required:"" help:"Cards in hand, e.g. '1b 5r 9y'"`
	Mine         []string `sep:"none" help:"One of my slots as slot=cards, e.g. 3=9r1r (repeatable)"`
	Theirs       []string `sep:"none" help:"One of the opponent's slots as slot=cards (repeatable)"`
	Deck         int      `default:"-1" help:"Cards left in the deck, -1 derives it from the unseen cards"`
	OpponentHand int      `default:"6" help:"Cards in the opponent's hand"`
	Depth        int      `help:"Combinations kept per slot, 0 uses the config"`
	Candidates   int      `help:"Also list this many of the best candidates"`
}

func (c *MoveCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	depth, err := depthOr(c.Depth, cfg.Engine.Depth)
	if err != nil {
		return err
	}
	v, err := c.view()
	if err != nil {
		return err
	}

	p, err := newPlayer(combos.NewGenerator(), cfg, logger, streamEngine)
	if err != nil {
		return err
	}
	m, err := p.MakeMove(v, depth)
	if err != nil {
		return err
	}

	w := g.stdout()
	fmt.Fprintf(w, "%s %d %s\n", display.TitleStyle.Render("play"), m.Slot+1, display.Card(m.Card))

	if c.Candidates > 0 {
		cs := p.Candidates(v, depth)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "\nslot\tcombination\testimate\tplayable\n")
		for _, cand := range cs[:min(c.Candidates, len(cs))] {
			fmt.Fprintf(tw, "%d\t%s\t%+.4f\t%t\n", cand.Slot+1, cand.Combination, cand.Estimate, cand.Playable)
		}
		return tw.Flush()
	}
	return nil
}

// view assembles the position from the flags and checks that no card
// appears twice.
func (c *MoveCmd) view() (game.View, error) {
	hand, err := cards.ParseCards(c.Hand)
	if err != nil {
		return game.View{}, fmt.Errorf("hand: %w", err)
	}
	mine, err := parseGrid(c.Mine)
	if err != nil {
		return game.View{}, fmt.Errorf("mine: %w", err)
	}
	theirs, err := parseGrid(c.Theirs)
	if err != nil {
		return game.View{}, fmt.Errorf("theirs: %w", err)
	}

	v := game.View{
		Seat:             game.PlayerOne,
		Mine:             mine,
		Theirs:           theirs,
		Hand:             game.NewHand(hand...),
		OpponentHandSize: c.OpponentHand,
	}
	if v.Hand.Len() != len(hand) {
		return game.View{}, fmt.Errorf("hand: %w", cards.ErrDuplicateCard)
	}
	placed := mine.Set().Union(theirs.Set())
	if placed.Len() != mine.Placed()+theirs.Placed() {
		return game.View{}, fmt.Errorf("a card is placed twice: %w", cards.ErrDuplicateCard)
	}
	if placed.Intersects(v.Hand.Set()) {
		return game.View{}, fmt.Errorf("a hand card is already placed: %w", cards.ErrDuplicateCard)
	}

	v.DeckSize = c.Deck
	if v.DeckSize < 0 {
		v.DeckSize = max(0, cards.NumCards-v.Hand.Len()-placed.Len()-c.OpponentHand)
	}
	return v, nil
}

// parseGrid reads slot=cards specs such as "3=9r1r" or "3=9r 1r".
func parseGrid(specs []string) (game.Grid, error) {
	var g game.Grid
	for _, spec := range specs {
		slotText, cardText, ok := strings.Cut(spec, "=")
		if !ok {
			return g, fmt.Errorf("%w: want slot=cards, got %q", cards.ErrParse, spec)
		}
		n, err := strconv.Atoi(strings.TrimSpace(slotText))
		if err != nil || n < 1 || n > game.NumSlots {
			return g, fmt.Errorf("%w: %q", game.ErrInvalidSlot, slotText)
		}
		cs, err := cards.ParseCards(cardText)
		if err != nil {
			return g, err
		}
		for _, card := range cs {
			if err := g[n-1].Add(card); err != nil {
				return g, fmt.Errorf("slot %d: %w", n, err)
			}
		}
	}
	return g, nil
}
