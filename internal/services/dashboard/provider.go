// Package dashboard holds the data store behind the dashboard panels. A
// Provider loads the known entity ids once, tracks the selected entity, and
// keeps the selected company record and its comparison peers up to date.
package dashboard

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"sustaindash/internal/domain"
	"sustaindash/internal/logging"
	"sustaindash/internal/ports"
)

// ErrClosed is returned by WaitSettled once the provider has been closed.
var ErrClosed = errors.New("dashboard: provider closed")

// Snapshot is a read-only copy of the provider state.
type Snapshot struct {
	EntityIDs       []int64
	EntityIDsLoaded bool

	CurrentEntityID int64
	HasSelection    bool

	CurrentRecord     domain.CompanyRecord
	ComparisonRecords []domain.CompanyRecord

	Loading            bool
	LoadingComparisons bool

	// Last failure of each fetch, cleared by the next success.
	EntityIDsErr   error
	RecordErr      error
	ComparisonsErr error
}

// Selected returns the current entity id and whether one is selected.
func (s Snapshot) Selected() (int64, bool) { return s.CurrentEntityID, s.HasSelection }

// Settled reports whether the id list has loaded and no fetch is in flight.
func (s Snapshot) Settled() bool {
	return s.EntityIDsLoaded && !s.Loading && !s.LoadingComparisons
}

// Err joins the recorded fetch errors. It is nil when none failed.
func (s Snapshot) Err() error {
	return errors.Join(s.EntityIDsErr, s.RecordErr, s.ComparisonsErr)
}

// Provider owns the dashboard state. Every selection change starts one record
// fetch and one comparison fetch tagged with a generation number; a fetch only
// commits while its generation is still the newest.
type Provider struct {
	src ports.DashboardSource
	log *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	start  sync.Once

	mu        sync.Mutex
	state     Snapshot
	gen       uint64
	cancelGen context.CancelFunc
	subs      map[int]chan struct{}
	nextSub   int
	closed    bool
}

func New(src ports.DashboardSource, log *zap.Logger) *Provider {
	ctx, cancel := context.WithCancel(context.Background())
	return &Provider{
		src:    src,
		log:    logging.OrNop(log),
		ctx:    ctx,
		cancel: cancel,
		subs:   make(map[int]chan struct{}),
	}
}

// Start requests the entity id list. Only the first call does anything.
func (p *Provider) Start() {
	p.start.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed {
			return
		}
		p.wg.Add(1)
		go p.fetchEntityIDs()
	})
}

// SetCurrentEntityID selects id and refetches its record and comparisons.
// Selecting the already selected id does nothing. The id is not checked
// against the loaded list; an unknown id fails at the fetch.
func (p *Provider) SetCurrentEntityID(id int64) {
	p.mu.Lock()
	if p.closed || (p.state.HasSelection && p.state.CurrentEntityID == id) {
		p.mu.Unlock()
		return
	}
	p.selectLocked(id)
	p.mu.Unlock()
	p.notify()
}

// Refresh refetches the record and comparisons of the current selection.
func (p *Provider) Refresh() {
	p.mu.Lock()
	if p.closed || !p.state.HasSelection {
		p.mu.Unlock()
		return
	}
	p.selectLocked(p.state.CurrentEntityID)
	p.mu.Unlock()
	p.notify()
}

// Snapshot returns a copy of the current state.
func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	s.EntityIDs = slices.Clone(p.state.EntityIDs)
	s.ComparisonRecords = slices.Clone(p.state.ComparisonRecords)
	return s
}

// Subscribe returns a channel that receives a value after every state change.
// Changes are coalesced; read Snapshot to see the latest state. The channel
// is closed by the returned cancel func or by Close.
func (p *Provider) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch
	p.mu.Unlock()

	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if c, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(c)
		}
	}
}

// WaitSettled blocks until the state is Settled, ctx ends or the provider closes.
func (p *Provider) WaitSettled(ctx context.Context) (Snapshot, error) {
	ch, unsubscribe := p.Subscribe()
	defer unsubscribe()
	for {
		snap := p.Snapshot()
		if snap.Settled() {
			return snap, nil
		}
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return p.Snapshot(), ErrClosed
			}
		}
	}
}

// Close cancels in-flight fetches, waits for them to return and closes all
// subscriptions. State stays readable.
func (p *Provider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for id, ch := range p.subs {
		delete(p.subs, id)
		close(ch)
	}
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

// selectLocked starts a new generation for id. Callers hold p.mu.
func (p *Provider) selectLocked(id int64) {
	if p.cancelGen != nil {
		p.cancelGen()
	}
	ctx, cancel := context.WithCancel(p.ctx)
	p.cancelGen = cancel
	p.gen++
	gen := p.gen

	p.state.CurrentEntityID = id
	p.state.HasSelection = true
	p.state.Loading = true
	p.state.LoadingComparisons = true

	p.wg.Add(2)
	go p.fetchRecord(ctx, gen, id)
	go p.fetchComparisons(ctx, gen, id)
}

func (p *Provider) fetchEntityIDs() {
	defer p.wg.Done()
	ids, err := p.src.EntityIDs(p.ctx)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.state.EntityIDsLoaded = true
	if err != nil {
		p.state.EntityIDsErr = err
		p.mu.Unlock()
		p.log.Error("fetch entity ids failed", zap.Error(err))
		p.notify()
		return
	}
	p.state.EntityIDs = slices.Clone(ids)
	p.state.EntityIDsErr = nil
	if !p.state.HasSelection && len(ids) > 0 {
		p.selectLocked(ids[0])
	}
	p.mu.Unlock()
	p.log.Debug("entity ids loaded", zap.Int("count", len(ids)))
	p.notify()
}

func (p *Provider) fetchRecord(ctx context.Context, gen uint64, id int64) {
	defer p.wg.Done()
	rec, err := p.src.Company(ctx, id)

	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		p.log.Debug("discarding stale record", zap.Int64("entity_id", id), zap.Uint64("generation", gen))
		return
	}
	p.state.Loading = false
	if err != nil {
		p.state.RecordErr = err
	} else {
		p.state.CurrentRecord = rec
		p.state.RecordErr = nil
	}
	p.mu.Unlock()

	if err != nil {
		p.log.Error("fetch company record failed", zap.Int64("entity_id", id), zap.Error(err))
	}
	p.notify()
}

func (p *Provider) fetchComparisons(ctx context.Context, gen uint64, id int64) {
	defer p.wg.Done()
	recs, err := p.src.Comparisons(ctx, id)

	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		p.log.Debug("discarding stale comparisons", zap.Int64("entity_id", id), zap.Uint64("generation", gen))
		return
	}
	p.state.LoadingComparisons = false
	if err != nil {
		p.state.ComparisonsErr = err
	} else {
		p.state.ComparisonRecords = slices.Clone(recs)
		p.state.ComparisonsErr = nil
	}
	p.mu.Unlock()

	if err != nil {
		p.log.Error("fetch comparisons failed", zap.Int64("entity_id", id), zap.Error(err))
	}
	p.notify()
}

func (p *Provider) notify() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
