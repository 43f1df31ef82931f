package funds

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// VCProfile is a member firm entry from the KVIC VC directory.
// 공시 목록에 없는 운용사 메타데이터 (대표자, 설립년도 등).
type VCProfile struct {
	Name           string `json:"name"`
	Representative string `json:"representative"`
	FoundedYear    int    `json:"founded_year,omitempty"`
	Address        string `json:"address,omitempty"`
	Website        string `json:"website,omitempty"`
}

// UpsertProfiles inserts or updates directory profiles by company name
// in a single transaction
func (r *Repository) UpsertProfiles(ctx context.Context, profiles []VCProfile) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO vc_profiles (
			company_name, representative, founded_year, address, website, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (company_name) DO UPDATE SET
			representative = EXCLUDED.representative,
			founded_year = EXCLUDED.founded_year,
			address = EXCLUDED.address,
			website = EXCLUDED.website,
			updated_at = NOW()`

	for i := range profiles {
		p := &profiles[i]
		_, err := tx.Exec(ctx, query,
			p.Name, p.Representative, p.FoundedYear, p.Address, p.Website,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert profile %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(profiles), nil
}

// Profile returns the directory profile for a company, or nil when the
// company is not in the directory
func (r *Repository) Profile(ctx context.Context, companyName string) (*VCProfile, error) {
	query := `
		SELECT company_name, COALESCE(representative, ''), COALESCE(founded_year, 0),
			COALESCE(address, ''), COALESCE(website, '')
		FROM vc_profiles
		WHERE company_name = $1`

	var p VCProfile
	err := r.pool.QueryRow(ctx, query, companyName).Scan(
		&p.Name, &p.Representative, &p.FoundedYear, &p.Address, &p.Website,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query VC profile: %w", err)
	}
	return &p, nil
}
