package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync"

	"sustaindash/internal/domain"
)

// Repository serves company records loaded once from a CSV export. Reads never
// touch the file again.
type Repository struct {
	records []domain.CompanyRecord
	byID    map[int64]int

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Repository.
type Option func(*Repository)

// WithRand fixes the sampling source, for reproducible comparisons.
func WithRand(r *rand.Rand) Option {
	return func(repo *Repository) { repo.rng = r }
}

// Open loads the CSV file at path.
func Open(path string, opts ...Option) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	repo, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return repo, nil
}

// Read parses records from r. The first row is a header; columns are matched by
// name, unknown columns are ignored and entity_id is mandatory.
func Read(r io.Reader, opts ...Option) (*Repository, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	if _, ok := cols["entity_id"]; !ok {
		return nil, errors.New("missing entity_id column")
	}

	repo := &Repository{byID: make(map[int64]int)}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, dup := repo.byID[rec.EntityID]; dup {
			return nil, fmt.Errorf("line %d: duplicate entity_id %d", line, rec.EntityID)
		}
		repo.byID[rec.EntityID] = len(repo.records)
		repo.records = append(repo.records, rec)
	}

	for _, opt := range opts {
		opt(repo)
	}
	if repo.rng == nil {
		repo.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return repo, nil
}

func parseRow(cols map[string]int, row []string) (domain.CompanyRecord, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	var errs []error
	num := func(name string) float64 {
		v := field(name)
		if v == "" {
			return 0
		}
		f, err := strconv.ParseFloat(v, 64)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		case math.IsNaN(f) || math.IsInf(f, 0):
			errs = append(errs, fmt.Errorf("%s: non-finite value %q", name, v))
			return 0
		}
		return f
	}

	id, err := strconv.ParseInt(field("entity_id"), 10, 64)
	if err != nil {
		return domain.CompanyRecord{}, fmt.Errorf("entity_id: %w", err)
	}
	rec := domain.CompanyRecord{
		EntityID:           id,
		CountryCode:        field("country_code"),
		CountryName:        field("country_name"),
		RegionCode:         field("region_code"),
		RegionName:         field("region_name"),
		Revenue:            num("revenue"),
		OverallScore:       num("overall_score"),
		EnvironmentalScore: num("environmental_score"),
		SocialScore:        num("social_score"),
		GovernanceScore:    num("governance_score"),
		TargetScope1:       num("target_scope_1"),
		TargetScope2:       num("target_scope_2"),
	}
	return rec, errors.Join(errs...)
}

// Records returns a copy of every loaded record in file order.
func (r *Repository) Records() []domain.CompanyRecord {
	out := make([]domain.CompanyRecord, len(r.records))
	copy(out, r.records)
	return out
}

func (r *Repository) ListEntityIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, len(r.records))
	for i, rec := range r.records {
		ids[i] = rec.EntityID
	}
	return ids, nil
}

func (r *Repository) GetByEntityID(ctx context.Context, entityID int64) (domain.CompanyRecord, bool, error) {
	i, ok := r.byID[entityID]
	if !ok {
		return domain.CompanyRecord{}, false, nil
	}
	return r.records[i], true, nil
}

func (r *Repository) SampleExcluding(ctx context.Context, entityID int64, n int) ([]domain.CompanyRecord, error) {
	if n <= 0 {
		return []domain.CompanyRecord{}, nil
	}
	pool := make([]domain.CompanyRecord, 0, len(r.records))
	for _, rec := range r.records {
		if rec.EntityID != entityID {
			pool = append(pool, rec)
		}
	}
	r.mu.Lock()
	r.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	r.mu.Unlock()
	if n < len(pool) {
		pool = pool[:n]
	}
	return pool, nil
}
