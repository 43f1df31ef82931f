package funds

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles fund data persistence and queries
// ⭐ SSOT: vc_funds 테이블 접근은 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new fund repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// fundColumns is the shared select list; nullable 컬럼은 COALESCE로 평탄화
const fundColumns = `
	asct_id, company_name, fund_name, registered_date, maturity_date,
	COALESCE(fund_manager_name, ''), COALESCE(support_type, ''), COALESCE(account_type, ''),
	COALESCE(hurdle_rate, 0)::float8, COALESCE(total_amount, 0), COALESCE(amount_억, 0),
	COALESCE(sector_tags, '{}'), COALESCE(all_tags, '{}'),
	is_govt_matched, is_active, COALESCE(lifecycle, ''), has_sector`

func scanFund(row pgx.Row) (Fund, error) {
	var f Fund
	err := row.Scan(
		&f.AsctID, &f.CompanyName, &f.FundName, &f.RegisteredDate, &f.MaturityDate,
		&f.FundManagerName, &f.SupportType, &f.AccountType,
		&f.HurdleRate, &f.TotalAmount, &f.Amount,
		&f.SectorTags, &f.AllTags,
		&f.IsGovtMatched, &f.IsActive, &f.Lifecycle, &f.HasSector,
	)
	return f, err
}

func collectFunds(rows pgx.Rows) ([]Fund, error) {
	defer rows.Close()

	result := make([]Fund, 0)
	for rows.Next() {
		f, err := scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

// MatchPool returns the candidate pool for the matcher:
// has_sector (+is_active, +is_govt_matched), 결성액 내림차순.
// 매처는 이 풀을 재필터링하지 않는다.
func (r *Repository) MatchPool(ctx context.Context, activeOnly, govtOnly bool) ([]Fund, error) {
	query := `SELECT ` + fundColumns + `
		FROM vc_funds
		WHERE has_sector = TRUE`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	if govtOnly {
		query += ` AND is_govt_matched = TRUE`
	}
	query += ` ORDER BY amount_억 DESC NULLS LAST`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query match pool: %w", err)
	}
	return collectFunds(rows)
}

// ListParams holds fund list filters, sort and pagination
type ListParams struct {
	Sector    string
	Stage     string
	Company   string
	Lifecycle string
	Active    bool
	Govt      bool
	MinAmount int
	MaxAmount int
	Sort      string
	Page      int
	Limit     int
}

// Pagination describes a page of results
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// FundList is a page of funds with pagination metadata
type FundList struct {
	Funds      []Fund     `json:"funds"`
	Pagination Pagination `json:"pagination"`
}

// List returns a filtered, sorted, paginated fund list
func (r *Repository) List(ctx context.Context, params ListParams) (*FundList, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	where, args := buildFundFilter(params)

	// Count query
	var total int
	countQuery := `SELECT COUNT(*) FROM vc_funds` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count funds: %w", err)
	}

	// Data query
	dataQuery := fmt.Sprintf(
		`SELECT %s FROM vc_funds%s %s LIMIT $%d OFFSET $%d`,
		fundColumns, where, orderClause(params.Sort), len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query funds: %w", err)
	}
	result, err := collectFunds(rows)
	if err != nil {
		return nil, err
	}

	return &FundList{
		Funds: result,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// buildFundFilter assembles a WHERE clause from list params
func buildFundFilter(params ListParams) (string, []interface{}) {
	conds := make([]string, 0, 8)
	args := make([]interface{}, 0, 8)

	if params.Active {
		conds = append(conds, "is_active = TRUE")
	}
	if params.Govt {
		conds = append(conds, "is_govt_matched = TRUE")
	}
	if params.Sector != "" {
		args = append(args, params.Sector)
		conds = append(conds, fmt.Sprintf("$%d = ANY(sector_tags)", len(args)))
	}
	if params.Stage != "" {
		args = append(args, params.Stage)
		conds = append(conds, fmt.Sprintf("$%d = ANY(all_tags)", len(args)))
	}
	if params.Company != "" {
		args = append(args, "%"+params.Company+"%")
		conds = append(conds, fmt.Sprintf("company_name ILIKE $%d", len(args)))
	}
	if params.MinAmount > 0 {
		args = append(args, params.MinAmount)
		conds = append(conds, fmt.Sprintf("amount_억 >= $%d", len(args)))
	}
	if params.MaxAmount > 0 {
		args = append(args, params.MaxAmount)
		conds = append(conds, fmt.Sprintf("amount_억 <= $%d", len(args)))
	}
	if params.Lifecycle != "" {
		args = append(args, params.Lifecycle)
		conds = append(conds, fmt.Sprintf("lifecycle = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause returns the ORDER BY clause for a sort key.
// Legacy short names(amount/maturity/registered)는 _desc로 정규화.
func orderClause(sort string) string {
	switch sort {
	case "amount", "amount_desc", "":
		return "ORDER BY amount_억 DESC NULLS LAST"
	case "amount_asc":
		return "ORDER BY amount_억 ASC NULLS LAST"
	case "registered", "registered_desc":
		return "ORDER BY registered_date DESC NULLS LAST"
	case "registered_asc":
		return "ORDER BY registered_date ASC NULLS LAST"
	case "maturity", "maturity_desc":
		return "ORDER BY maturity_date DESC NULLS LAST"
	case "maturity_asc":
		return "ORDER BY maturity_date ASC NULLS LAST"
	case "company_asc":
		return "ORDER BY company_name ASC"
	case "company_desc":
		return "ORDER BY company_name DESC"
	case "fund_name_asc":
		return "ORDER BY fund_name ASC"
	case "fund_name_desc":
		return "ORDER BY fund_name DESC"
	case "govt_desc":
		return "ORDER BY is_govt_matched DESC"
	case "govt_asc":
		return "ORDER BY is_govt_matched ASC"
	default:
		return "ORDER BY amount_억 DESC NULLS LAST"
	}
}

// FundDetail is a fund plus other funds of the same company
type FundDetail struct {
	Fund         Fund   `json:"fund"`
	RelatedFunds []Fund `json:"relatedFunds"`
}

// Get returns a fund by asct_id with related funds, or pgx.ErrNoRows
func (r *Repository) Get(ctx context.Context, asctID string) (*FundDetail, error) {
	query := `SELECT ` + fundColumns + ` FROM vc_funds WHERE asct_id = $1`
	fund, err := scanFund(r.pool.QueryRow(ctx, query, asctID))
	if err != nil {
		return nil, err
	}

	relatedQuery := `SELECT ` + fundColumns + `
		FROM vc_funds
		WHERE company_name = $1 AND asct_id != $2
		ORDER BY registered_date DESC NULLS LAST
		LIMIT 10`
	rows, err := r.pool.Query(ctx, relatedQuery, fund.CompanyName, asctID)
	if err != nil {
		return nil, fmt.Errorf("failed to query related funds: %w", err)
	}
	related, err := collectFunds(rows)
	if err != nil {
		return nil, err
	}

	return &FundDetail{Fund: fund, RelatedFunds: related}, nil
}

// Overview holds dashboard summary counts
type Overview struct {
	TotalFunds  int   `json:"total_funds"`
	ActiveFunds int   `json:"active_funds"`
	TaggedFunds int   `json:"tagged_funds"`
	GovtFunds   int   `json:"govt_funds"`
	TotalVCs    int   `json:"total_vcs"`
	ActiveAUM   int64 `json:"active_aum"`
	HotFunds    int   `json:"hot_funds"`
}

// SectorCount is a sector with its fund count
type SectorCount struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

// VCAUMEntry is a VC company with fund counts and AUM
type VCAUMEntry struct {
	CompanyName string `json:"company_name"`
	Funds       int    `json:"funds"`
	Active      int    `json:"active"`
	AUM         int64  `json:"aum"`
}

// Stats holds dashboard statistics
type Stats struct {
	Overview Overview      `json:"overview"`
	Sectors  []SectorCount `json:"sectors"`
	TopVCs   []VCAUMEntry  `json:"topVCs"`
}

// Stats returns dashboard statistics
// Co-GP 펀드는 " / " 구분자로 쪼개 VC 단위 집계에 각각 반영
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	overviewQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE has_sector),
			COUNT(*) FILTER (WHERE is_govt_matched),
			(SELECT COUNT(DISTINCT TRIM(vc_name))
			 FROM vc_funds, LATERAL unnest(string_to_array(company_name, ' / ')) AS vc_name
			),
			COALESCE(SUM(total_amount) FILTER (WHERE is_active), 0),
			COUNT(*) FILTER (WHERE lifecycle = '적극투자기' AND is_active)
		FROM vc_funds`
	err := r.pool.QueryRow(ctx, overviewQuery).Scan(
		&stats.Overview.TotalFunds, &stats.Overview.ActiveFunds,
		&stats.Overview.TaggedFunds, &stats.Overview.GovtFunds,
		&stats.Overview.TotalVCs, &stats.Overview.ActiveAUM, &stats.Overview.HotFunds,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overview: %w", err)
	}

	sectorQuery := `
		SELECT unnest(sector_tags) AS sector, COUNT(*) AS count
		FROM vc_funds
		WHERE is_active = TRUE AND has_sector = TRUE
		GROUP BY sector
		ORDER BY count DESC
		LIMIT 20`
	rows, err := r.pool.Query(ctx, sectorQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query sector stats: %w", err)
	}
	stats.Sectors, err = collectSectorCounts(rows)
	if err != nil {
		return nil, err
	}

	topVCQuery := `
		SELECT TRIM(vc_name) AS company_name,
			COUNT(*) AS funds,
			COUNT(*) FILTER (WHERE is_active) AS active,
			COALESCE(SUM(total_amount), 0) AS aum
		FROM vc_funds,
			LATERAL unnest(string_to_array(company_name, ' / ')) AS vc_name
		GROUP BY TRIM(vc_name)
		ORDER BY aum DESC
		LIMIT 20`
	vcRows, err := r.pool.Query(ctx, topVCQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query top VCs: %w", err)
	}
	defer vcRows.Close()

	stats.TopVCs = make([]VCAUMEntry, 0, 20)
	for vcRows.Next() {
		var entry VCAUMEntry
		if err := vcRows.Scan(&entry.CompanyName, &entry.Funds, &entry.Active, &entry.AUM); err != nil {
			return nil, fmt.Errorf("failed to scan top VC: %w", err)
		}
		stats.TopVCs = append(stats.TopVCs, entry)
	}
	if err := vcRows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// Sectors returns the sector list for the filter UI (3건 미만 제외)
func (r *Repository) Sectors(ctx context.Context) ([]SectorCount, error) {
	query := `
		SELECT unnest(sector_tags) AS sector, COUNT(*) AS count
		FROM vc_funds
		WHERE is_active = TRUE
		GROUP BY sector
		HAVING COUNT(*) >= 3
		ORDER BY count DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sectors: %w", err)
	}
	return collectSectorCounts(rows)
}

func collectSectorCounts(rows pgx.Rows) ([]SectorCount, error) {
	defer rows.Close()

	result := make([]SectorCount, 0)
	for rows.Next() {
		var sc SectorCount
		if err := rows.Scan(&sc.Sector, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan sector count: %w", err)
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

// UpsertAll inserts or updates funds by asct_id in a single transaction
func (r *Repository) UpsertAll(ctx context.Context, items []Fund) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO vc_funds (
			asct_id, company_name, fund_name, registered_date, maturity_date,
			fund_manager_name, support_type, account_type, hurdle_rate,
			total_amount, amount_억, sector_tags, all_tags,
			is_govt_matched, is_active, lifecycle, has_sector, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
		ON CONFLICT (asct_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			fund_name = EXCLUDED.fund_name,
			registered_date = EXCLUDED.registered_date,
			maturity_date = EXCLUDED.maturity_date,
			fund_manager_name = EXCLUDED.fund_manager_name,
			support_type = EXCLUDED.support_type,
			account_type = EXCLUDED.account_type,
			hurdle_rate = EXCLUDED.hurdle_rate,
			total_amount = EXCLUDED.total_amount,
			amount_억 = EXCLUDED.amount_억,
			sector_tags = EXCLUDED.sector_tags,
			all_tags = EXCLUDED.all_tags,
			is_govt_matched = EXCLUDED.is_govt_matched,
			is_active = EXCLUDED.is_active,
			lifecycle = EXCLUDED.lifecycle,
			has_sector = EXCLUDED.has_sector,
			updated_at = NOW()`

	for i := range items {
		f := &items[i]
		_, err := tx.Exec(ctx, query,
			f.AsctID, f.CompanyName, f.FundName, f.RegisteredDate, f.MaturityDate,
			f.FundManagerName, f.SupportType, f.AccountType, f.HurdleRate,
			f.TotalAmount, f.Amount, f.SectorTags, f.AllTags,
			f.IsGovtMatched, f.IsActive, f.Lifecycle, f.HasSector,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert fund %s: %w", f.AsctID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(items), nil
}

// RefreshStatus recomputes lifecycle and is_active from dates.
// 야간 배치/refresh 커맨드에서 호출됨.
func (r *Repository) RefreshStatus(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE vc_funds SET
			lifecycle = CASE
				WHEN registered_date IS NULL THEN lifecycle
				WHEN registered_date >= $1::date - INTERVAL '2 years' THEN '적극투자기'
				WHEN registered_date >= $1::date - INTERVAL '4 years' THEN '중기'
				ELSE '회수기'
			END,
			is_active = (maturity_date IS NOT NULL AND maturity_date >= $1::date),
			updated_at = NOW()`

	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to refresh fund status: %w", err)
	}
	return tag.RowsAffected(), nil
}
