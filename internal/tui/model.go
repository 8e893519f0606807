// Package tui is the terminal shell over a task list store.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"git.sr.ht/~jakintosh/tasklist/internal/domain"
	"git.sr.ht/~jakintosh/tasklist/internal/logging"
)

const (
	title        = "Todo List"
	placeholder  = "Add a new task"
	emptyMessage = "No tasks yet. Add your first task!"

	enterHighlight = 600 * time.Millisecond
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// clearEnteringMsg ends the highlight started by an addition.
type clearEnteringMsg struct {
	seq int
}

// Model is the Bubble Tea model for the task list.
type Model struct {
	store  domain.Store
	logger *log.Logger

	input  textinput.Model
	state  domain.State
	cursor int
	focus  focusArea

	entering    string // id of the task just added
	enteringSeq int

	err error
}

func New(store domain.Store, logger *log.Logger) (*Model, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	st, err := store.State()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "> "
	input.SetValue(st.Draft)
	input.Focus()

	return &Model{
		store:  store,
		logger: logger,
		input:  input,
		state:  st,
	}, nil
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, store domain.Store, logger *log.Logger) error {
	m, err := New(store, logger)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	return m.err
}

// State returns the last state seen by the model.
func (m *Model) State() domain.State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearEnteringMsg:
		if msg.seq == m.enteringSeq {
			m.entering = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.switchFocus()
			return m, nil
		case "ctrl+n":
			return m, m.cycleCategory(1)
		case "ctrl+p":
			return m, m.cycleCategory(-1)
		}
		if m.focus == focusList {
			return m, m.updateList(msg)
		}
		return m, m.updateInput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter {
		return m.dispatch(domain.Submit{})
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return tea.Batch(cmd, m.dispatch(domain.SetDraft{Text: after}))
	}
	return cmd
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
	case " ", "enter":
		if t, ok := m.selected(); ok {
			return m.dispatch(domain.Toggle{ID: t.ID})
		}
	case "d", "x", "delete", "backspace":
		if t, ok := m.selected(); ok {
			return m.dispatch(domain.Remove{ID: t.ID})
		}
	}
	return nil
}

func (m *Model) switchFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) cycleCategory(step int) tea.Cmd {
	cats := domain.Categories()
	idx := 0
	for i, c := range cats {
		if c == m.state.Category {
			idx = i
			break
		}
	}
	next := cats[(idx+step+len(cats))%len(cats)]
	return m.dispatch(domain.SelectCategory{Category: next})
}

func (m *Model) selected() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Tasks) {
		return domain.Task{}, false
	}
	return m.state.Tasks[m.cursor], true
}

// dispatch applies a through the store and reacts to the resulting events.
func (m *Model) dispatch(a domain.Action) tea.Cmd {
	tr, err := m.store.Dispatch(a)
	if err != nil {
		m.logger.Error("dispatch failed", "action", fmt.Sprintf("%T", a), "err", err)
		m.err = err
		return nil
	}
	m.state = tr.Next
	m.clampCursor()

	var cmd tea.Cmd
	for _, e := range tr.Events {
		switch e.Kind {
		case domain.TaskAdded:
			m.logger.Debug("task added", "id", e.TaskID)
			m.entering = e.TaskID
			m.enteringSeq++
			seq := m.enteringSeq
			cmd = tea.Tick(enterHighlight, func(time.Time) tea.Msg {
				return clearEnteringMsg{seq: seq}
			})
		case domain.TaskRemoved:
			m.logger.Debug("task removed", "id", e.TaskID)
		case domain.DraftChanged:
			if m.input.Value() != m.state.Draft {
				m.input.SetValue(m.state.Draft)
			}
		}
	}
	return cmd
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = len(m.state.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.categorySelector())
	b.WriteString("\n\n")

	for i, t := range m.state.Tasks {
		b.WriteString(m.renderTask(i, t))
		b.WriteString("\n")
	}
	if m.state.Empty() {
		b.WriteString(emptyStyle.Render(emptyMessage))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m *Model) categorySelector() string {
	cats := domain.Categories()
	parts := make([]string, len(cats))
	for i, c := range cats {
		if c == m.state.Category {
			parts[i] = selectorStyle.Render("[" + string(c) + "]")
		} else {
			parts[i] = " " + string(c) + " "
		}
	}
	return "Category: " + strings.Join(parts, " ")
}

func (m *Model) renderTask(i int, t domain.Task) string {
	marker := "  "
	if m.focus == focusList && i == m.cursor {
		marker = cursorStyle.Render("> ")
	}

	text := textStyle.Render(t.Text)
	switch {
	case t.ID == m.entering:
		text = enteringStyle.Render(t.Text)
	case t.Completed:
		text = completedStyle.Render(t.Text)
	}
	return marker + text + " " + categoryStyle.Render("["+string(t.Category)+"]")
}

func (m *Model) help() string {
	if m.focus == focusList {
		return "↑/↓ move • space toggle • d delete • ctrl+n/p category • tab input • esc quit"
	}
	return "enter add • ctrl+n/p category • tab list • esc quit"
}
