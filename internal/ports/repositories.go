package ports

import (
	"context"

	"sustaindash/internal/domain"
)

// CompanyRepository reads company records by entity id.
type CompanyRepository interface {
	ListEntityIDs(ctx context.Context) ([]int64, error)
	GetByEntityID(ctx context.Context, entityID int64) (rec domain.CompanyRecord, exists bool, err error)
	// SampleExcluding returns up to n records chosen at random, never the given entity.
	SampleExcluding(ctx context.Context, entityID int64, n int) ([]domain.CompanyRecord, error)
}

// CompanyWriter bulk-loads records, used when seeding a database from CSV.
type CompanyWriter interface {
	UpsertRecords(ctx context.Context, records []domain.CompanyRecord) (int, error)
}
