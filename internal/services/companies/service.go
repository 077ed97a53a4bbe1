package companies

import (
	"context"
	"fmt"

	"sustaindash/internal/domain"
	"sustaindash/internal/ports"
)

const (
	DefaultComparisons = 5
	MaxComparisons     = 100
)

// Service answers the dashboard read API from a CompanyRepository.
type Service struct {
	repo ports.CompanyRepository
}

func New(repo ports.CompanyRepository) *Service { return &Service{repo: repo} }

func (s *Service) EntityIDs(ctx context.Context) ([]int64, error) {
	return s.repo.ListEntityIDs(ctx)
}

func (s *Service) Get(ctx context.Context, entityID int64) (domain.CompanyRecord, error) {
	rec, exists, err := s.repo.GetByEntityID(ctx, entityID)
	if err != nil {
		return domain.CompanyRecord{}, err
	}
	if !exists {
		return domain.CompanyRecord{}, ErrNotFound
	}
	return rec, nil
}

// Comparisons returns up to n random peers of entityID. A zero n means
// DefaultComparisons. The entity itself need not exist.
func (s *Service) Comparisons(ctx context.Context, entityID int64, n int) ([]domain.CompanyRecord, error) {
	if n == 0 {
		n = DefaultComparisons
	}
	if n < 1 || n > MaxComparisons {
		return nil, fmt.Errorf("%w: n must be between 1 and %d", ErrInvalidArgument, MaxComparisons)
	}
	return s.repo.SampleExcluding(ctx, entityID, n)
}

var (
	ErrNotFound        = errString("entity not found")
	ErrInvalidArgument = errString("invalid argument")
)

type errString string

func (e errString) Error() string { return string(e) }
