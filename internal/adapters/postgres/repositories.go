package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sustaindash/internal/domain"
)

const recordColumns = `entity_id, country_code, country_name, region_code, region_name, revenue,
    overall_score, environmental_score, social_score, governance_score, target_scope_1, target_scope_2`

// CompanyRepository
func (db *DB) ListEntityIDs(ctx context.Context) ([]int64, error) {
	rows, err := db.Pool.Query(ctx, `SELECT entity_id FROM companies ORDER BY entity_id`)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (db *DB) GetByEntityID(ctx context.Context, entityID int64) (domain.CompanyRecord, bool, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+recordColumns+` FROM companies WHERE entity_id = $1`, entityID)
	if err != nil {
		return domain.CompanyRecord{}, false, err
	}
	rec, err := pgx.CollectExactlyOneRow(rows, scanRecord)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CompanyRecord{}, false, nil
	}
	if err != nil {
		return domain.CompanyRecord{}, false, err
	}
	return rec, true, nil
}

func (db *DB) SampleExcluding(ctx context.Context, entityID int64, n int) ([]domain.CompanyRecord, error) {
	if n <= 0 {
		return []domain.CompanyRecord{}, nil
	}
	rows, err := db.Pool.Query(ctx, `
        SELECT `+recordColumns+`
        FROM companies
        WHERE entity_id <> $1
        ORDER BY random()
        LIMIT $2
    `, entityID, n)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.CompanyRecord{}
	}
	return out, nil
}

// UpsertRecords writes records in one batch, replacing rows with the same entity_id.
func (db *DB) UpsertRecords(ctx context.Context, records []domain.CompanyRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
            INSERT INTO companies (`+recordColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
            ON CONFLICT (entity_id) DO UPDATE SET
                country_code = EXCLUDED.country_code,
                country_name = EXCLUDED.country_name,
                region_code = EXCLUDED.region_code,
                region_name = EXCLUDED.region_name,
                revenue = EXCLUDED.revenue,
                overall_score = EXCLUDED.overall_score,
                environmental_score = EXCLUDED.environmental_score,
                social_score = EXCLUDED.social_score,
                governance_score = EXCLUDED.governance_score,
                target_scope_1 = EXCLUDED.target_scope_1,
                target_scope_2 = EXCLUDED.target_scope_2,
                loaded_at = now()
        `, r.EntityID, r.CountryCode, r.CountryName, r.RegionCode, r.RegionName, r.Revenue,
			r.OverallScore, r.EnvironmentalScore, r.SocialScore, r.GovernanceScore, r.TargetScope1, r.TargetScope2)
	}

	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("upsert companies: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(records), nil
}

func scanRecord(row pgx.CollectableRow) (domain.CompanyRecord, error) {
	var r domain.CompanyRecord
	err := row.Scan(&r.EntityID, &r.CountryCode, &r.CountryName, &r.RegionCode, &r.RegionName, &r.Revenue,
		&r.OverallScore, &r.EnvironmentalScore, &r.SocialScore, &r.GovernanceScore, &r.TargetScope1, &r.TargetScope2)
	return r, err
}
