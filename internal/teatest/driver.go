// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned Cmds are executed inline. Cmds
// that do not return promptly (tea.Tick, tea.Every) are dropped, so a
// model's refresh timer never fires during a test; send the tick message
// explicitly instead.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds Cmd chains so a model that keeps scheduling work cannot
// hang a test.
const maxDepth = 50

// cmdTimeout separates immediate Cmds (loads, message factories) from
// timer Cmds, which block for at least their interval.
const cmdTimeout = 250 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has been returned.
	Quitting bool

	// Skipped counts Cmds dropped for not returning within cmdTimeout.
	Skipped int
}

// Option configures the Driver during construction.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init Cmd to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg through Update and drains what it returns.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: Cmd chain deeper than %d, stopping", maxDepth)
		return
	}

	msg, ok := run(cmd)
	if !ok {
		d.Skipped++
		return
	}

	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.drain(next, depth+1)
	}
}

// run executes cmd, giving up after cmdTimeout.
func run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}
