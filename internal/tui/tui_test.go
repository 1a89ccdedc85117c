package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/battleline/cards"
	"github.com/lox/battleline/internal/deck"
	"github.com/lox/battleline/internal/display"
	"github.com/lox/battleline/internal/game"
)

func init() {
	display.SetColor(false)
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newModel(t *testing.T, human game.Seat, engine game.Agent) (*Model, *game.State) {
	t.Helper()
	st, err := game.NewState(deck.FromCards(cards.All()))
	require.NoError(t, err)
	return New(context.Background(), st, human, engine, quietLogger()), st
}

// run executes cmd and feeds its message back until nothing is left.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func typeLine(t *testing.T, m *Model, text string) {
	t.Helper()
	m.input.SetValue(text)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.input.Value())
	run(t, m, cmd)
}

func TestHumanMoveThenEngineReplies(t *testing.T) {
	t.Parallel()

	m, st := newModel(t, game.PlayerOne, game.FirstLegal)
	assert.Nil(t, m.engineTurn(), "engine waits for the human")
	assert.NotNil(t, m.Init())

	typeLine(t, m, "5 1b")
	assert.Empty(t, m.errMsg)
	assert.Equal(t, 2, st.Turn())
	assert.True(t, st.Grid(game.PlayerOne)[4].Contains(cards.MustCard(cards.Blue, 1)))
	// FirstLegal plays the lowest card into the first open slot
	assert.True(t, st.Grid(game.PlayerTwo)[0].Contains(cards.MustCard(cards.Brown, 1)))

	require.Len(t, m.Log(), 2)
	assert.Equal(t, "you played 1b in slot 5", m.Log()[0])
	assert.Equal(t, "engine played 1n in slot 1", m.Log()[1])

	view := m.View()
	assert.Contains(t, view, "Turn 3: your move")
	assert.Contains(t, view, "[1b ·· ··]")
}

func TestSwappedCardAndSlotOrder(t *testing.T) {
	t.Parallel()

	m, st := newModel(t, game.PlayerOne, game.FirstLegal)
	typeLine(t, m, "2r:9")
	assert.Empty(t, m.errMsg)
	assert.True(t, st.Grid(game.PlayerOne)[8].Contains(cards.MustCard(cards.Red, 2)))
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"10 1b", "slot"},
		{"5 9y", "not in hand"},
		{"five", "want"},
		{"5 1x", "color"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, st := newModel(t, game.PlayerOne, game.FirstLegal)
			typeLine(t, m, tt.input)
			assert.Contains(t, strings.ToLower(m.errMsg), tt.want)
			assert.Zero(t, st.Turn())
			assert.Contains(t, m.View(), m.errMsg)
		})
	}
}

func TestEngineMovesFirst(t *testing.T) {
	t.Parallel()

	m, st := newModel(t, game.PlayerTwo, game.FirstLegal)
	cmd := m.engineTurn()
	require.NotNil(t, cmd)
	assert.True(t, m.thinking)
	assert.Contains(t, m.View(), "Engine is thinking")

	// input is refused while the engine is on move
	assert.Nil(t, m.Submit("1 1n"))
	assert.Equal(t, "wait for the engine to move", m.errMsg)

	run(t, m, cmd)
	assert.False(t, m.thinking)
	assert.Equal(t, 1, st.Turn())
	assert.Equal(t, game.PlayerTwo, st.ToMove())
}

func TestEngineErrorFallsBack(t *testing.T) {
	t.Parallel()

	broken := game.AgentFunc(func(context.Context, game.View) (game.Move, error) {
		return game.Move{}, errors.New("boom")
	})
	m, st := newModel(t, game.PlayerOne, broken)
	typeLine(t, m, "1 1b")
	assert.Equal(t, 2, st.Turn())
	assert.Empty(t, m.errMsg)
}

func TestHint(t *testing.T) {
	t.Parallel()

	m, st := newModel(t, game.PlayerOne, game.FirstLegal)
	typeLine(t, m, "hint")
	assert.Zero(t, st.Turn(), "a hint does not play")
	require.Len(t, m.Log(), 1)
	assert.Equal(t, "hint: 1 1b", m.Log()[0])
}

func TestMoveWaitsForPendingHint(t *testing.T) {
	t.Parallel()

	m, st := newModel(t, game.PlayerOne, game.FirstLegal)
	hint := m.Submit("hint")
	require.NotNil(t, hint)
	assert.Contains(t, m.View(), "Working out a hint")

	assert.Nil(t, m.Submit("1 1b"))
	assert.Equal(t, "wait for the hint", m.errMsg)
	assert.Zero(t, st.Turn())
	assert.Nil(t, m.Submit("hint"), "one hint at a time")

	_, cmd := m.Update(hint())
	assert.Nil(t, cmd)
	assert.False(t, m.hinting)
	require.Len(t, m.Log(), 1)
	assert.Equal(t, "hint: 1 1b", m.Log()[0])

	typeLine(t, m, "1 1b")
	assert.Empty(t, m.errMsg)
	assert.Equal(t, 2, st.Turn())
}

func TestStaleHintIsDropped(t *testing.T) {
	t.Parallel()

	m, st := newModel(t, game.PlayerOne, game.FirstLegal)
	hint := m.Submit("hint")
	require.NotNil(t, hint)
	msg := hint()

	// the position moves on before the hint arrives
	m.hinting = false
	typeLine(t, m, "1 1b")
	require.Equal(t, 2, st.Turn())
	logged := len(m.Log())

	m.Update(msg)
	assert.Len(t, m.Log(), logged)
	assert.NotContains(t, strings.Join(m.Log(), "\n"), "hint:")
	assert.False(t, m.hinting)
}

func TestPlayToTheEnd(t *testing.T) {
	t.Parallel()

	m, st := newModel(t, game.PlayerOne, game.FirstLegal)
	for !st.Over() {
		v := st.View(game.PlayerOne)
		mv, err := game.FirstLegal.Move(context.Background(), v)
		require.NoError(t, err)
		typeLine(t, m, mv.String())
		require.Empty(t, m.errMsg)
	}

	out, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, game.NumSlots, out.SlotsWon[0]+out.SlotsWon[1])
	assert.Contains(t, m.Log()[len(m.Log())-1], "slots to")
	assert.LessOrEqual(t, len(m.Log()), maxLogLines)
	assert.Contains(t, m.View(), "Game over")
	assert.Contains(t, m.View(), "won by")

	typeLine(t, m, "1 1b")
	assert.Contains(t, m.errMsg, "game is over")
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t, game.PlayerOne, game.FirstLegal)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())

	m, _ = newModel(t, game.PlayerOne, game.FirstLegal)
	cmd = m.Submit("quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
