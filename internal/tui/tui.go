// Package tui is an interactive terminal game between a human and an engine
// agent.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/battleline/internal/display"
	"github.com/lox/battleline/internal/game"
)

const maxLogLines = 8

// engineMoveMsg carries the engine's decision back to Update.
type engineMoveMsg struct {
	move game.Move
	err  error
}

// hintMsg is a suggestion for the position at turn.
type hintMsg struct {
	turn int
	move game.Move
	err  error
}

// Model is the bubbletea model for one game.
type Model struct {
	ctx    context.Context
	st     *game.State
	human  game.Seat
	engine game.Agent
	names  [game.NumSeats]string
	logger *log.Logger

	input    textinput.Model
	gameLog  []string
	errMsg   string
	thinking bool
	hinting  bool
	quitting bool
}

// New seats the human at human and the engine agent opposite.
func New(ctx context.Context, st *game.State, human game.Seat, engine game.Agent, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "slot card, e.g. 3 7r  (hint, quit)"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = PromptStyle

	var names [game.NumSeats]string
	names[human] = "you"
	names[human.Other()] = "engine"

	return &Model{
		ctx:    ctx,
		st:     st,
		human:  human,
		engine: engine,
		names:  names,
		logger: logger.WithPrefix("tui"),
		input:  ti,
	}
}

// Run starts an interactive program on the terminal and blocks until the
// player quits.
func Run(ctx context.Context, m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Outcome returns the result once the game is over.
func (m *Model) Outcome() (game.Outcome, bool) {
	if !m.st.Over() {
		return game.Outcome{}, false
	}
	out, err := m.st.Outcome()
	return out, err == nil
}

// Log returns the recent game messages, oldest first.
func (m *Model) Log() []string {
	return m.gameLog
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.engineTurn())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engineMoveMsg:
		return m, m.applyEngineMove(msg)

	case hintMsg:
		m.hinting = false
		if msg.turn != m.st.Turn() {
			m.logger.Debug("Dropping stale hint", "turn", msg.turn, "now", m.st.Turn())
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("no hint: %v", msg.err)
		} else {
			m.addLog(InfoStyle.Render(fmt.Sprintf("hint: %s", msg.move)))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			return m, m.Submit(text)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Submit handles one line of player input.
func (m *Model) Submit(text string) tea.Cmd {
	m.errMsg = ""
	switch strings.ToLower(text) {
	case "":
		return nil
	case "q", "quit", "exit":
		m.quitting = true
		return tea.Quit
	case "hint":
		if m.st.Over() || m.st.ToMove() != m.human {
			m.errMsg = "it is not your turn"
			return nil
		}
		if m.hinting {
			m.errMsg = "a hint is already on its way"
			return nil
		}
		m.hinting = true
		ctx, v, engine, turn := m.ctx, m.st.View(m.human), m.engine, m.st.Turn()
		return func() tea.Msg {
			mv, err := engine.Move(ctx, v)
			return hintMsg{turn: turn, move: mv, err: err}
		}
	}

	if m.st.Over() {
		m.errMsg = "the game is over, type quit to leave"
		return nil
	}
	if m.thinking || m.st.ToMove() != m.human {
		m.errMsg = "wait for the engine to move"
		return nil
	}
	// the engine agent is not safe for concurrent calls
	if m.hinting {
		m.errMsg = "wait for the hint"
		return nil
	}
	mv, err := game.ParseMove(text)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if err := m.st.Apply(mv); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.logger.Debug("Human move", "slot", mv.Slot+1, "card", mv.Card)
	m.addLog(fmt.Sprintf("%s played %s in slot %d", m.names[m.human], display.Card(mv.Card), mv.Slot+1))
	m.checkOver()
	return m.engineTurn()
}

// engineTurn asks the engine for a move when it is on move. The view is
// taken here so the command never touches the state.
func (m *Model) engineTurn() tea.Cmd {
	if m.st.Over() || m.st.ToMove() == m.human {
		return nil
	}
	m.thinking = true
	ctx, v, engine := m.ctx, m.st.View(m.human.Other()), m.engine
	return func() tea.Msg {
		mv, err := engine.Move(ctx, v)
		return engineMoveMsg{move: mv, err: err}
	}
}

func (m *Model) applyEngineMove(msg engineMoveMsg) tea.Cmd {
	m.thinking = false
	seat := m.human.Other()
	mv, err := msg.move, msg.err
	if err == nil {
		err = m.st.Apply(mv)
	}
	if err != nil {
		m.logger.Warn("Engine move rejected, using fallback", "error", err)
		mv, err = game.FirstLegal.Move(m.ctx, m.st.View(seat))
		if err == nil {
			err = m.st.Apply(mv)
		}
		if err != nil {
			m.errMsg = fmt.Sprintf("engine failed: %v", err)
			return nil
		}
	}
	m.addLog(fmt.Sprintf("%s played %s in slot %d", m.names[seat], display.Card(mv.Card), mv.Slot+1))
	m.checkOver()
	// the engine moves again while the human has no card
	return m.engineTurn()
}

func (m *Model) checkOver() {
	if out, ok := m.Outcome(); ok {
		m.addLog(display.Outcome(out, m.names))
	}
}

func (m *Model) addLog(line string) {
	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var board string
	if m.st.Over() {
		board = display.Board(m.st, m.names)
	} else {
		board = display.ViewBoard(m.st.View(m.human), m.names)
	}

	var status string
	switch {
	case m.st.Over():
		status = SuccessStyle.Render("Game over. Type quit or press Esc to leave.")
	case m.thinking:
		status = WarningStyle.Render("Engine is thinking...")
	case m.hinting:
		status = WarningStyle.Render("Working out a hint...")
	default:
		status = SuccessStyle.Render(fmt.Sprintf("Turn %d: your move", m.st.Turn()+1))
	}

	parts := []string{
		HeaderStyle.Render("battleline"),
		boardStyle.Render(strings.TrimRight(board, "\n")),
		LogStyle.Render(strings.Join(m.gameLog, "\n")),
		status,
	}
	if m.errMsg != "" {
		parts = append(parts, ErrorStyle.Render(m.errMsg))
	}
	parts = append(parts, m.input.View(), InfoStyle.Render("Enter to submit • hint for a suggestion • Esc to quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
