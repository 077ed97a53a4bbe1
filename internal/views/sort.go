package views

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"sustaindash/internal/domain"
)

// SortKey selects the comparison table column to order by.
type SortKey int

const (
	SortByScore SortKey = iota
	SortByScope1
	SortByScope2
	SortByRevenue
)

var sortKeyNames = []string{"score", "scope1", "scope2", "revenue"}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
	return sortKeyNames[k]
}

// Next cycles through the keys in column order.
func (k SortKey) Next() SortKey { return (k + 1) % SortKey(len(sortKeyNames)) }

func ParseSortKey(s string) (SortKey, error) {
	i := slices.Index(sortKeyNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return SortByScore, fmt.Errorf("unknown sort key %q (want one of %s)", s, strings.Join(sortKeyNames, ", "))
	}
	return SortKey(i), nil
}

func (k SortKey) value(r domain.CompanyRecord) float64 {
	switch k {
	case SortByScope1:
		return r.TargetScope1
	case SortByScope2:
		return r.TargetScope2
	case SortByRevenue:
		return r.Revenue
	default:
		return r.OverallScore
	}
}

// SortRecords returns a sorted copy of recs. Ties keep input order.
func SortRecords(recs []domain.CompanyRecord, key SortKey, desc bool) []domain.CompanyRecord {
	out := slices.Clone(recs)
	slices.SortStableFunc(out, func(a, b domain.CompanyRecord) int {
		c := cmp.Compare(key.value(a), key.value(b))
		if desc {
			return -c
		}
		return c
	})
	return out
}
