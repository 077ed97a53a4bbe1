package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sustaindash/internal/adapters/csvfile"
	"sustaindash/internal/domain"
	companysvc "sustaindash/internal/services/companies"
)

const dataset = `entity_id,country_code,country_name,region_code,region_name,revenue,overall_score,environmental_score,social_score,governance_score,target_scope_1,target_scope_2
101,DE,Germany,WEU,Western Europe,450,3.4,3.1,2.9,2.2,12500,8200
202,US,United States,NAM,North America,380,2.8,2.5,3.0,2.0,9800,6500
303,FR,France,WEU,Western Europe,520,3.1,3.3,2.7,2.9,15200,9800
404,JP,Japan,EAS,East Asia,610,3.6,3.2,3.1,2.4,18500,11200
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo, err := csvfile.Read(strings.NewReader(dataset), csvfile.WithRand(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, err)
	srv := New(companysvc.New(repo), zap.NewNop(), []string{"http://localhost:3000"})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, out any) int {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func TestEntityIDs(t *testing.T) {
	ts := newTestServer(t)

	var body domain.EntityIDsResponse
	code := get(t, ts.URL+"/entity_ids", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int64{101, 202, 303, 404}, body.EntityIDs)
}

func TestCompany(t *testing.T) {
	ts := newTestServer(t)

	var rec domain.CompanyRecord
	code := get(t, ts.URL+"/company/101", &rec)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(101), rec.EntityID)
	assert.Equal(t, 3.4, rec.OverallScore)
	assert.Equal(t, "Western Europe", rec.RegionName)

	var errBody map[string]string
	code = get(t, ts.URL+"/company/999", &errBody)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "entity not found", errBody["error"])

	code = get(t, ts.URL+"/company/abc", &errBody)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestComparisons(t *testing.T) {
	ts := newTestServer(t)

	var body domain.ComparisonsResponse
	code := get(t, ts.URL+"/comparisons/101", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body.Comparisons, 3, "default of five clamps to the three peers")
	for _, rec := range body.Comparisons {
		assert.NotEqual(t, int64(101), rec.EntityID)
	}

	code = get(t, ts.URL+"/comparisons/101?n=2", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body.Comparisons, 2)

	for _, q := range []string{"n=0", "n=-3", "n=abc", "n=1000"} {
		code = get(t, ts.URL+"/comparisons/101?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, code, q)
	}
}

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/", &body))
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORSAllowsDashboardOrigin(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/entity_ids", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "http://localhost:3000", res.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.test")
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
}

func TestBadParamsAnswerJSON(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	assert.Equal(t, http.StatusBadRequest, get(t, ts.URL+"/company/abc", &body))
	assert.Equal(t, "entity_id must be an integer", body["error"])

	assert.Equal(t, http.StatusBadRequest, get(t, ts.URL+"/comparisons/101?n=abc", &body))
	assert.Equal(t, "invalid parameter n", body["error"])

	assert.Equal(t, http.StatusBadRequest, get(t, ts.URL+"/comparisons/101?n=0", &body))
	assert.Equal(t, "n must be positive", body["error"])
}

// nonFinite serves a record whose score json cannot encode.
type nonFinite struct{}

func (nonFinite) EntityIDs(context.Context) ([]int64, error) { return []int64{7}, nil }

func (nonFinite) Get(_ context.Context, id int64) (domain.CompanyRecord, error) {
	return domain.CompanyRecord{EntityID: id, OverallScore: math.NaN()}, nil
}

func (nonFinite) Comparisons(context.Context, int64, int) ([]domain.CompanyRecord, error) {
	return []domain.CompanyRecord{{EntityID: 8, TargetScope1: math.Inf(1)}}, nil
}

func TestUnencodableRecordIsServerError(t *testing.T) {
	ts := httptest.NewServer(New(nonFinite{}, zap.NewNop(), nil).Routes())
	t.Cleanup(ts.Close)

	for _, path := range []string{"/company/7", "/comparisons/7"} {
		res, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		raw, err := io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode, path)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"), path)
		assert.JSONEq(t, `{"error":"internal error"}`, string(raw), path)
	}
}

func TestWriteJSONFallsBackOnEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"x": math.NaN()})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
