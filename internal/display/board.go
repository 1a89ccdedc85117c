package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/game"
)

const (
	emptyCard   = "··"
	slotWidth   = 12
	indexWidth  = 4
	winnerWidth = 8
)

// Card renders c in its color.
func Card(c cards.Card) string {
	if !c.Valid() {
		return c.String()
	}
	return colorStyles[c.Color()].Render(c.String())
}

// Cards renders cs separated by spaces.
func Cards(cs []cards.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = Card(c)
	}
	return strings.Join(parts, " ")
}

// Slot renders a slot with placeholders for the missing cards, for example
// "[9r 1r ··]".
func Slot(s game.Slot) string {
	parts := make([]string, 0, game.SlotCapacity)
	for _, c := range s.Cards() {
		parts = append(parts, Card(c))
	}
	for len(parts) < game.SlotCapacity {
		parts = append(parts, InfoStyle.Render(emptyCard))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Board renders both grids of st side by side with the decided slots.
func Board(st *game.State, names [game.NumSeats]string) string {
	one, two := st.Grid(game.PlayerOne), st.Grid(game.PlayerTwo)
	return board(&one, &two, names, func(i int) string {
		seat, ok := st.SlotWinner(i)
		if !ok {
			return ""
		}
		return names[seat]
	})
}

// ViewBoard renders what the seat in v can see: the opponent's grid, its
// own grid, its hand and the deck.
func ViewBoard(v game.View, names [game.NumSeats]string) string {
	var grids [game.NumSeats]*game.Grid
	grids[v.Seat] = &v.Mine
	grids[v.Seat.Other()] = &v.Theirs

	var b strings.Builder
	b.WriteString(board(grids[game.PlayerOne], grids[game.PlayerTwo], names, nil))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", TitleStyle.Render("Hand:"), Cards(v.Hand.Cards()))
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Deck: %d  Opponent hand: %d", v.DeckSize, v.OpponentHandSize)))
	b.WriteString("\n")
	return b.String()
}

func board(one, two *game.Grid, names [game.NumSeats]string, winner func(int) string) string {
	idx := lipgloss.NewStyle().Width(indexWidth)
	col := lipgloss.NewStyle().Width(slotWidth + 2)
	win := lipgloss.NewStyle().Width(winnerWidth)

	var b strings.Builder
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		idx.Render("#"),
		col.Render(SeatStyle.Render(names[game.PlayerOne])),
		col.Render(SeatStyle.Render(names[game.PlayerTwo])),
	)
	if winner != nil {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, win.Render(TitleStyle.Render("won by")))
	}
	b.WriteString(strings.TrimRight(header, " "))
	b.WriteString("\n")

	for i := range game.NumSlots {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			idx.Render(fmt.Sprintf("%d", i+1)),
			col.Render(Slot(one[i])),
			col.Render(Slot(two[i])),
		)
		if winner != nil {
			if w := winner(i); w != "" {
				row = lipgloss.JoinHorizontal(lipgloss.Top, row, win.Render(WinStyle.Render(w)))
			}
		}
		b.WriteString(strings.TrimRight(row, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// Outcome renders the final result line.
func Outcome(out game.Outcome, names [game.NumSeats]string) string {
	w, l := out.Winner, out.Winner.Other()
	return fmt.Sprintf("%s wins %d slots to %d",
		WinStyle.Render(names[w]), out.SlotsWon[w], out.SlotsWon[l])
}

// Moves renders the turns of rec one per line, marking replaced moves.
func Moves(rec *game.Record, names [game.NumSeats]string) string {
	var b strings.Builder
	for i, t := range rec.Turns {
		fmt.Fprintf(&b, "%3d. %-4s slot %d  %s", i+1, names[t.Seat], t.Move.Slot+1, Card(t.Move.Card))
		if t.Fallback {
			b.WriteString(" " + LossStyle.Render("(fallback)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
