package ports

import (
	"context"

	"sustaindash/internal/domain"
)

// Companies serves the dashboard read API.
type Companies interface {
	EntityIDs(ctx context.Context) ([]int64, error)
	Get(ctx context.Context, entityID int64) (domain.CompanyRecord, error)
	Comparisons(ctx context.Context, entityID int64, n int) ([]domain.CompanyRecord, error)
}

// DashboardSource is what the dashboard provider fetches from. The HTTP client
// implements it; tests substitute fakes.
type DashboardSource interface {
	EntityIDs(ctx context.Context) ([]int64, error)
	Company(ctx context.Context, entityID int64) (domain.CompanyRecord, error)
	Comparisons(ctx context.Context, entityID int64) ([]domain.CompanyRecord, error)
}
