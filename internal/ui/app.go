package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/clicker/internal/counter"
	"github.com/five82/clicker/internal/store"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *store.Store[counter.State]
	ThemeName string
	Logger    *slog.Logger
}

// Props is the slice of state the counter view renders.
type Props struct {
	Clicks int
}

// SelectProps maps application state to the view's props.
func SelectProps(s counter.State) Props {
	return Props{Clicks: counter.SelectClicks(s)}
}

// Model is the root application state for Bubble Tea.
type Model struct {
	store  *store.Store[counter.State]
	logger *slog.Logger

	keys  keyMap
	help  help.Model
	theme Theme
	width int

	props Props
	err   error
}

// New creates a new Bubble Tea model reading its first props from the store.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	m := Model{
		store:  opts.Store,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		theme:  GetTheme(themeName),
	}
	if opts.Store != nil {
		m.props = SelectProps(opts.Store.GetState())
	}
	return m
}

// Props returns the props currently rendered.
func (m Model) Props() Props { return m.props }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	// Catch dispatches that landed between New and Connect.
	return fetchPropsCmd(m.store)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case propsMsg:
		m.props = Props(msg)
		m.err = nil
		return m, nil

	case dispatchErrMsg:
		m.err = msg.err
		m.logger.Warn("dispatch failed", slog.String("err", msg.err.Error()))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Click):
		return m, dispatchCmd(m.store, counter.IncreaseCount{})

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	styles := m.theme.Styles()

	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.Title.Render("CLICKER"),
		"",
		styles.Count.Render(strconv.Itoa(m.props.Clicks)),
		styles.Label.Render(pluralize(m.props.Clicks, "click", "clicks")),
	)

	var b strings.Builder
	b.WriteString(styles.Panel.Render(body))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("ERROR %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(styles.Footer.Render(m.help.View(m.keys)))

	out := b.String()
	if m.width > 0 {
		out = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, out,
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
	}
	return styles.Screen.Render(out)
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Messages

type propsMsg Props

type dispatchErrMsg struct {
	err error
}

// Commands

// dispatchCmd runs the dispatch off the event loop: listeners send into the
// program, and Send would block if Update were still running.
func dispatchCmd(s *store.Store[counter.State], action store.Action) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return dispatchErrMsg{err: errors.New("ui has no store")}
		}
		if _, err := s.Dispatch(action); err != nil {
			return dispatchErrMsg{err: err}
		}
		return nil
	}
}

func fetchPropsCmd(s *store.Store[counter.State]) tea.Cmd {
	return func() tea.Msg {
		return propsMsg(SelectProps(s.GetState()))
	}
}

// Run starts the Bubble Tea program connected to opts.Store and blocks until
// the user quits or the context is cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a store")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	disconnect := Connect(opts.Store, p.Send)
	defer disconnect()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
