package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fluxion/internal/cli/formatter"
	"github.com/alexanderramin/fluxion/internal/service"
	"github.com/alexanderramin/fluxion/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const watchTickInterval = time.Second

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(watchTickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type watchKeyMap struct {
	Pause    key.Binding
	Resume   key.Binding
	Extend   key.Binding
	Stop     key.Binding
	Complete key.Binding
	Quit     key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Resume, k.Extend, k.Stop, k.Complete, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newWatchKeyMap(extendMinutes int) watchKeyMap {
	return watchKeyMap{
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Extend:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", fmt.Sprintf("+%d min", extendMinutes))),
		Stop:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "stop & complete")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// watchModel re-renders the timer every tick. Actions call the focus
// service synchronously; the timer itself keeps running after quit.
type watchModel struct {
	ctx           context.Context
	focus         service.FocusService
	extendMinutes int

	keys watchKeyMap
	help help.Model

	snap    timer.Snapshot
	message string
	err     error
	width   int
}

func newWatchModel(ctx context.Context, focus service.FocusService, extendMinutes int) watchModel {
	if extendMinutes <= 0 {
		extendMinutes = 5
	}
	return watchModel{
		ctx:           ctx,
		focus:         focus,
		extendMinutes: extendMinutes,
		keys:          newWatchKeyMap(extendMinutes),
		help:          help.New(),
		snap:          focus.Timer(ctx),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tickCmd()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.snap = m.focus.Timer(m.ctx)
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m watchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.snap, err = m.focus.PauseTask(m.ctx)
		m.message = "Paused"
	case key.Matches(msg, m.keys.Resume):
		m.snap, err = m.focus.ResumeTask(m.ctx)
		m.message = "Resumed"
	case key.Matches(msg, m.keys.Extend):
		m.snap, err = m.focus.ExtendTask(m.ctx, m.extendMinutes)
		m.message = fmt.Sprintf("Extended by %d min", m.extendMinutes)
	case key.Matches(msg, m.keys.Stop), key.Matches(msg, m.keys.Complete):
		var res *service.StopResult
		res, err = m.focus.StopTask(m.ctx, key.Matches(msg, m.keys.Complete))
		if err == nil {
			m.message = formatter.FormatStopResult(res)
			m.snap = m.focus.Timer(m.ctx)
		}
	default:
		return m, nil
	}
	if err != nil {
		m.err = err
		m.message = ""
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.RenderBox("Focus", strings.TrimRight(formatter.FormatTimer(m.snap), "\n")))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(m.message)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
