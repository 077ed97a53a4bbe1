package csvfile

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `entity_id,region_code,region_name,country_code,country_name,revenue,overall_score,environmental_score,social_score,governance_score,scope1_ghg_emissions,target_scope_1,target_scope_2
101,WEU,Western Europe,DE,Germany,450000000,3.4,3.1,2.9,2.2,1200,12500,8200
202,NAM,North America,US,United States,380000000,2.8,2.5,3.0,2.0,900,9800,6500
303,WEU,Western Europe,FR,France,,3.9,,,,,22100,14500
`

func load(t *testing.T) *Repository {
	t.Helper()
	repo, err := Read(strings.NewReader(sample), WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	return repo
}

func TestReadMapsColumnsByName(t *testing.T) {
	repo := load(t)
	ctx := context.Background()

	ids, err := repo.ListEntityIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 202, 303}, ids)

	rec, ok, err := repo.GetByEntityID(ctx, 101)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "DE", rec.CountryCode)
	assert.Equal(t, "Western Europe", rec.RegionName)
	assert.Equal(t, 3.4, rec.OverallScore)
	assert.Equal(t, 12500.0, rec.TargetScope1)
	assert.Equal(t, 8200.0, rec.TargetScope2)

	rec, ok, err = repo.GetByEntityID(ctx, 303)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Zero(t, rec.Revenue, "empty numeric cells read as zero")
	assert.Zero(t, rec.SocialScore)
}

func TestGetUnknownEntity(t *testing.T) {
	_, ok, err := load(t).GetByEntityID(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSampleExcluding(t *testing.T) {
	repo := load(t)
	ctx := context.Background()

	got, err := repo.SampleExcluding(ctx, 202, 5)
	require.NoError(t, err)
	require.Len(t, got, 2, "clamped to the records that remain")
	for _, rec := range got {
		assert.NotEqual(t, int64(202), rec.EntityID)
	}

	got, err = repo.SampleExcluding(ctx, 101, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEqual(t, int64(101), got[0].EntityID)

	got, err = repo.SampleExcluding(ctx, 101, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadErrors(t *testing.T) {
	cases := map[string]string{
		"no entity column": "country_code\nDE\n",
		"bad id":           "entity_id\nabc\n",
		"bad score":        "entity_id,overall_score\n1,high\n",
		"duplicate id":     "entity_id\n1\n1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestReadRejectsNonFiniteNumbers(t *testing.T) {
	for _, cell := range []string{"NaN", "nan", "Inf", "-inf", "+Infinity"} {
		t.Run(cell, func(t *testing.T) {
			_, err := Read(strings.NewReader("entity_id,overall_score,target_scope_1\n101,3.4," + cell + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
			assert.Contains(t, err.Error(), "target_scope_1: non-finite value")
		})
	}
}
