package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"sustaindash/internal/services/dashboard"
)

// Store is the part of the dashboard provider the interactive view needs.
type Store interface {
	Snapshot() dashboard.Snapshot
	SetCurrentEntityID(id int64)
	Refresh()
	Subscribe() (<-chan struct{}, func())
}

type (
	changedMsg struct{}
	closedMsg  struct{}
)

// Model is the bubbletea model behind `dashboard watch`.
type Model struct {
	store       Store
	changes     <-chan struct{}
	unsubscribe func()

	snap    dashboard.Snapshot
	sortKey SortKey
	desc    bool
	spinner spinner.Model
}

func NewModel(store Store, key SortKey, desc bool) Model {
	changes, unsubscribe := store.Subscribe()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = mutedStyle
	return Model{
		store:       store,
		changes:     changes,
		unsubscribe: unsubscribe,
		snap:        store.Snapshot(),
		sortKey:     key,
		desc:        desc,
		spinner:     sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForChange(m.changes))
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return closedMsg{}
		}
		return changedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		m.snap = m.store.Snapshot()
		return m, waitForChange(m.changes)
	case closedMsg:
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.unsubscribe()
			return m, tea.Quit
		case "right", "l", "n":
			m.step(1)
		case "left", "h", "p":
			m.step(-1)
		case "s":
			m.sortKey = m.sortKey.Next()
		case "d":
			m.desc = !m.desc
		case "r":
			m.store.Refresh()
			m.snap = m.store.Snapshot()
		}
	}
	return m, nil
}

// step moves the selection through the entity list, wrapping at both ends.
func (m *Model) step(delta int) {
	ids := m.snap.EntityIDs
	if len(ids) == 0 {
		return
	}
	next := 0
	if id, ok := m.snap.Selected(); ok {
		if i := slices.Index(ids, id); i >= 0 {
			next = ((i+delta)%len(ids) + len(ids)) % len(ids)
		}
	}
	m.store.SetCurrentEntityID(ids[next])
	m.snap = m.store.Snapshot()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sustainability Dashboard"))
	if id, ok := m.snap.Selected(); ok {
		pos := slices.Index(m.snap.EntityIDs, id)
		if pos >= 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  entity %d of %d", pos+1, len(m.snap.EntityIDs))))
		}
	}
	if m.snap.Loading || m.snap.LoadingComparisons || !m.snap.EntityIDsLoaded {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString(Render(m.snap, m.sortKey, m.desc))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("←/→ entity • s sort • d direction • r refresh • q quit"))
	return b.String()
}
