package domain

// Core domain models shared by the backend API and the dashboard client. The
// JSON shape is the wire format of /company/{id} and /comparisons/{id}.

// CompanyRecord is one entity's sustainability snapshot. Scores use a 1.0-5.0
// scale where lower is better.
type CompanyRecord struct {
	EntityID           int64   `json:"entity_id"`
	CountryCode        string  `json:"country_code"`
	CountryName        string  `json:"country_name"`
	RegionCode         string  `json:"region_code"`
	RegionName         string  `json:"region_name"`
	Revenue            float64 `json:"revenue"`
	OverallScore       float64 `json:"overall_score"`
	EnvironmentalScore float64 `json:"environmental_score"`
	SocialScore        float64 `json:"social_score"`
	GovernanceScore    float64 `json:"governance_score"`
	TargetScope1       float64 `json:"target_scope_1"`
	TargetScope2       float64 `json:"target_scope_2"`
}

// ZeroRecord is the placeholder shown before any record has loaded.
var ZeroRecord = CompanyRecord{}

// IsZero reports whether r is still the placeholder.
func (r CompanyRecord) IsZero() bool { return r == ZeroRecord }

const (
	MinScore = 1.0
	MaxScore = 5.0
)

// EntityIDsResponse is the body of GET /entity_ids.
type EntityIDsResponse struct {
	EntityIDs []int64 `json:"entity_ids"`
}

// ComparisonsResponse is the body of GET /comparisons/{id}.
type ComparisonsResponse struct {
	Comparisons []CompanyRecord `json:"comparisons"`
}
