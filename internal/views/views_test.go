package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustaindash/internal/domain"
	"sustaindash/internal/services/dashboard"
)

var (
	acme  = domain.CompanyRecord{EntityID: 101, CountryCode: "DE", CountryName: "Germany", OverallScore: 3.4, EnvironmentalScore: 3.2, SocialScore: 3.5, GovernanceScore: 3.6, Revenue: 450, TargetScope1: 12500, TargetScope2: 8200}
	peerA = domain.CompanyRecord{EntityID: 202, CountryCode: "US", OverallScore: 2.8, Revenue: 380, TargetScope1: 9800, TargetScope2: 6500}
	peerB = domain.CompanyRecord{EntityID: 303, CountryCode: "FR", OverallScore: 3.9, Revenue: 720, TargetScope1: 22100, TargetScope2: 14500}
)

func loadedSnapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		EntityIDs:         []int64{101, 202, 303},
		EntityIDsLoaded:   true,
		CurrentEntityID:   101,
		HasSelection:      true,
		CurrentRecord:     acme,
		ComparisonRecords: []domain.CompanyRecord{peerA, peerB},
	}
}

func TestScoreBand(t *testing.T) {
	assert.Equal(t, BandGood, ScoreBand(2.5))
	assert.Equal(t, BandFair, ScoreBand(3.4))
	assert.Equal(t, BandPoor, ScoreBand(3.9))
}

func TestPercentile(t *testing.T) {
	assert.Equal(t, 50, Percentile(acme, []domain.CompanyRecord{peerA, peerB}))
	assert.Equal(t, 0, Percentile(acme, nil))
	assert.Equal(t, 100, Percentile(peerA, []domain.CompanyRecord{acme, peerB, peerA}))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "██████████░░░░░░░░░░", Bar(2.5, 20))
	assert.Equal(t, strings.Repeat("░", 10), Bar(-1, 10))
	assert.Equal(t, strings.Repeat("█", 10), Bar(7, 10))
}

func TestSortRecords(t *testing.T) {
	recs := []domain.CompanyRecord{acme, peerA, peerB}

	ids := func(rs []domain.CompanyRecord) []int64 {
		out := make([]int64, len(rs))
		for i, r := range rs {
			out[i] = r.EntityID
		}
		return out
	}
	assert.Equal(t, []int64{202, 101, 303}, ids(SortRecords(recs, SortByScore, false)))
	assert.Equal(t, []int64{303, 101, 202}, ids(SortRecords(recs, SortByScope1, true)))
	assert.Equal(t, []int64{202, 101, 303}, ids(SortRecords(recs, SortByRevenue, false)))
	assert.Equal(t, []int64{101, 202, 303}, ids(recs), "input untouched")
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("Scope2")
	require.NoError(t, err)
	assert.Equal(t, SortByScope2, k)
	assert.Equal(t, SortByRevenue, k.Next())
	assert.Equal(t, SortByScore, SortByRevenue.Next())

	_, err = ParseSortKey("trend")
	assert.Error(t, err)
}

func TestTableRecordsSkipsDuplicateCurrent(t *testing.T) {
	snap := loadedSnapshot()
	snap.ComparisonRecords = append(snap.ComparisonRecords, acme)
	recs := TableRecords(snap)
	require.Len(t, recs, 3)
	assert.Equal(t, int64(101), recs[0].EntityID)
}

func TestRenderLoaded(t *testing.T) {
	out := Render(loadedSnapshot(), SortByScore, false)
	assert.Contains(t, out, "Client Score Card")
	assert.Contains(t, out, "Entity 101")
	assert.Contains(t, out, "3.4")
	assert.Contains(t, out, "12,500")
	assert.Contains(t, out, "Entity 202 (US)")
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "Better than 50%")
	assert.NotContains(t, out, "failed to load")
}

func TestRenderPlaceholders(t *testing.T) {
	out := Render(dashboard.Snapshot{}, SortByScore, false)
	assert.Contains(t, out, "No entity selected")

	snap := dashboard.Snapshot{CurrentEntityID: 7, HasSelection: true, Loading: true, LoadingComparisons: true}
	out = Render(snap, SortByScore, false)
	assert.Contains(t, out, "Loading entity 7")
	assert.Contains(t, out, "Loading comparisons")
}

func TestErrorBanner(t *testing.T) {
	assert.Empty(t, ErrorBanner(loadedSnapshot()))

	snap := loadedSnapshot()
	snap.RecordErr = assert.AnError
	assert.Contains(t, ErrorBanner(snap), "company record failed to load")
	assert.Contains(t, Render(snap, SortByScore, false), "showing last known data")
}

type fakeStore struct {
	snap      dashboard.Snapshot
	selected  []int64
	refreshes int
	ch        chan struct{}
}

func (f *fakeStore) Snapshot() dashboard.Snapshot { return f.snap }

func (f *fakeStore) SetCurrentEntityID(id int64) {
	f.selected = append(f.selected, id)
	f.snap.CurrentEntityID, f.snap.HasSelection = id, true
}

func (f *fakeStore) Refresh() { f.refreshes++ }

func (f *fakeStore) Subscribe() (<-chan struct{}, func()) {
	f.ch = make(chan struct{}, 1)
	return f.ch, func() {}
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestModelNavigation(t *testing.T) {
	store := &fakeStore{snap: loadedSnapshot()}
	var m tea.Model = NewModel(store, SortByScore, false)

	m = press(m, "right")
	m = press(m, "right")
	m = press(m, "right")
	m = press(m, "left")
	assert.Equal(t, []int64{202, 303, 101, 303}, store.selected)

	m = press(m, "s")
	m = press(m, "d")
	model := m.(Model)
	assert.Equal(t, SortByScope1, model.sortKey)
	assert.True(t, model.desc)

	press(m, "r")
	assert.Equal(t, 1, store.refreshes)
}

func TestModelPicksUpChanges(t *testing.T) {
	store := &fakeStore{snap: dashboard.Snapshot{}}
	var m tea.Model = NewModel(store, SortByScore, false)
	assert.Contains(t, m.View(), "No entity selected")

	store.snap = loadedSnapshot()
	m, cmd := m.Update(changedMsg{})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "entity 1 of 3")
}

func TestModelQuit(t *testing.T) {
	store := &fakeStore{snap: loadedSnapshot()}
	m := NewModel(store, SortByScore, false)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
