package funds

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// VCListParams holds VC list filters, sort and pagination
type VCListParams struct {
	Search     string
	Sort       string // total_aum | fund_count | active_count | name | hot_funds | avg_fund_size | latest_fund_date
	Order      string // asc | desc
	MinAUM     int
	MaxAUM     int
	MinFunds   int
	ActiveOnly bool
	Page       int
	Limit      int
}

// VCSummary is one VC company aggregated over its funds
type VCSummary struct {
	Name           string   `json:"name"`
	TotalFunds     int      `json:"total_funds"`
	ActiveFunds    int      `json:"active_funds"`
	TotalAUM       int64    `json:"total_aum"`
	AvgFundSize    int      `json:"avg_fund_size"`
	LatestFundDate string   `json:"latest_fund_date"`
	HotFunds       int      `json:"hot_funds"`
	Sectors        []string `json:"sectors"`
}

// VCList is a page of VC summaries
type VCList struct {
	VCs        []VCSummary `json:"vcs"`
	Pagination Pagination  `json:"pagination"`
}

// ListVCs returns aggregated VC companies.
// 집계는 SQL(LATERAL unnest로 Co-GP 분해), 필터/정렬/페이지는 애플리케이션.
// VC 수백 개 수준이라 전량 집계가 더 단순하다.
func (r *Repository) ListVCs(ctx context.Context, params VCListParams) (*VCList, error) {
	query := `
		WITH fund_agg AS (
			SELECT
				TRIM(vc_name) AS company_name,
				COUNT(*)::int AS total_funds,
				COUNT(*) FILTER (WHERE is_active)::int AS active_funds,
				COALESCE(SUM(amount_억), 0)::bigint AS total_aum,
				COALESCE(ROUND(AVG(amount_억)::numeric), 0)::int AS avg_fund_size,
				COALESCE(MAX(registered_date)::text, '') AS latest_fund_date,
				COUNT(*) FILTER (WHERE lifecycle = '적극투자기')::int AS hot_funds
			FROM vc_funds,
				LATERAL unnest(string_to_array(company_name, ' / ')) AS vc_name
			GROUP BY TRIM(vc_name)
		),
		sector_agg AS (
			SELECT TRIM(vc_name) AS company_name,
				array_agg(DISTINCT tag ORDER BY tag) AS sectors
			FROM vc_funds,
				LATERAL unnest(string_to_array(company_name, ' / ')) AS vc_name,
				LATERAL unnest(sector_tags) AS tag
			GROUP BY TRIM(vc_name)
		)
		SELECT f.company_name, f.total_funds, f.active_funds, f.total_aum,
			f.avg_fund_size, f.latest_fund_date, f.hot_funds,
			COALESCE(s.sectors, '{}')
		FROM fund_agg f
		LEFT JOIN sector_agg s ON s.company_name = f.company_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query VC aggregates: %w", err)
	}
	defer rows.Close()

	all := make([]VCSummary, 0)
	for rows.Next() {
		var vc VCSummary
		err := rows.Scan(
			&vc.Name, &vc.TotalFunds, &vc.ActiveFunds, &vc.TotalAUM,
			&vc.AvgFundSize, &vc.LatestFundDate, &vc.HotFunds, &vc.Sectors,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan VC aggregate: %w", err)
		}
		all = append(all, vc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return paginateVCs(filterVCs(all, params), params), nil
}

// filterVCs applies list filters in application code
func filterVCs(all []VCSummary, params VCListParams) []VCSummary {
	search := strings.ToLower(strings.TrimSpace(params.Search))

	filtered := make([]VCSummary, 0, len(all))
	for _, vc := range all {
		if search != "" && !strings.Contains(strings.ToLower(vc.Name), search) {
			continue
		}
		if params.MinAUM > 0 && vc.TotalAUM < int64(params.MinAUM) {
			continue
		}
		if params.MaxAUM > 0 && vc.TotalAUM > int64(params.MaxAUM) {
			continue
		}
		if params.MinFunds > 0 && vc.TotalFunds < params.MinFunds {
			continue
		}
		if params.ActiveOnly && vc.ActiveFunds == 0 {
			continue
		}
		filtered = append(filtered, vc)
	}
	return filtered
}

// paginateVCs sorts and slices the filtered list
func paginateVCs(filtered []VCSummary, params VCListParams) *VCList {
	asc := params.Order == "asc"

	sort.SliceStable(filtered, func(i, j int) bool {
		var less bool
		switch params.Sort {
		case "fund_count":
			less = filtered[i].TotalFunds < filtered[j].TotalFunds
		case "active_count":
			less = filtered[i].ActiveFunds < filtered[j].ActiveFunds
		case "name":
			less = filtered[i].Name < filtered[j].Name
		case "hot_funds":
			less = filtered[i].HotFunds < filtered[j].HotFunds
		case "avg_fund_size":
			less = filtered[i].AvgFundSize < filtered[j].AvgFundSize
		case "latest_fund_date":
			less = filtered[i].LatestFundDate < filtered[j].LatestFundDate
		default: // total_aum
			less = filtered[i].TotalAUM < filtered[j].TotalAUM
		}
		if asc {
			return less
		}
		return !less
	})

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	total := len(filtered)
	pages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &VCList{
		VCs: filtered[start:end],
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	}
}

// YearCount is a year bucket with a fund count
type YearCount struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// StageCount is a stage tag with a fund count
type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// LifecycleCount is a lifecycle phase with a fund count
type LifecycleCount struct {
	Lifecycle string `json:"lifecycle"`
	Count     int    `json:"count"`
}

// AccountTypeCount is a government account type with a fund count
type AccountTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// GovtMatchRatio relates govt-matched funds to the total
type GovtMatchRatio struct {
	Matched int `json:"matched"`
	Total   int `json:"total"`
}

// VCFundSummary is a compact fund view within a VC detail
type VCFundSummary struct {
	AsctID         string     `json:"asct_id"`
	CompanyName    string     `json:"company_name"`
	FundName       string     `json:"fund_name"`
	Amount         int        `json:"amount_억"`
	RegisteredDate *time.Time `json:"registered_date"`
	MaturityDate   *time.Time `json:"maturity_date"`
	Lifecycle      string     `json:"lifecycle"`
	SectorTags     []string   `json:"sector_tags"`
	IsCoGP         bool       `json:"is_co_gp"`
}

// VCDetail is the full aggregated profile of one VC company
type VCDetail struct {
	Company             string             `json:"company"`
	Profile             *VCProfile         `json:"profile,omitempty"`
	TotalAUM            int64              `json:"totalAUM"`
	ActiveAUM           int64              `json:"activeAUM"`
	TotalFunds          int                `json:"totalFunds"`
	ActiveFunds         int                `json:"activeFunds"`
	AvgFundSize         int                `json:"avgFundSize"`
	AvgHurdleRate       *float64           `json:"avgHurdleRate"`
	SectorFocus         []SectorCount      `json:"sectorFocus"`
	StageMix            []StageCount       `json:"stageMix"`
	LifecycleDist       []LifecycleCount   `json:"lifecycleDist"`
	GovtMatchRatio      GovtMatchRatio     `json:"govtMatchRatio"`
	AccountTypes        []AccountTypeCount `json:"accountTypes"`
	Managers            []string           `json:"managers"`
	RegistrationHistory []YearCount        `json:"registrationHistory"`
	MaturitySchedule    []YearCount        `json:"maturitySchedule"`
	CoGPPartners        []string           `json:"coGPPartners"`
	Funds               []VCFundSummary    `json:"funds"`
}

// VCDetail returns the aggregated profile for a company, or nil if the
// company manages no funds. Co-GP 펀드도 포함된다.
func (r *Repository) VCDetail(ctx context.Context, companyName string) (*VCDetail, error) {
	query := `SELECT ` + fundColumns + `
		FROM vc_funds
		WHERE $1 = ANY(string_to_array(company_name, ' / '))
		ORDER BY total_amount DESC NULLS LAST`

	rows, err := r.pool.Query(ctx, query, companyName)
	if err != nil {
		return nil, fmt.Errorf("failed to query VC funds: %w", err)
	}
	companyFunds, err := collectFunds(rows)
	if err != nil {
		return nil, err
	}
	if len(companyFunds) == 0 {
		return nil, nil
	}

	detail := AggregateVCDetail(companyName, companyFunds, time.Now())

	// 회원사 명부 프로필이 수집돼 있으면 같이 내려준다
	profile, err := r.Profile(ctx, companyName)
	if err != nil {
		return nil, err
	}
	detail.Profile = profile

	return detail, nil
}

// AggregateVCDetail builds the VC profile from its fund records.
// 순수 함수라 DB 없이 테스트 가능.
func AggregateVCDetail(companyName string, companyFunds []Fund, now time.Time) *VCDetail {
	var totalAUM, activeAUM int64
	activeCount := 0
	for i := range companyFunds {
		f := &companyFunds[i]
		totalAUM += int64(f.Amount)
		if f.IsActive {
			activeCount++
			activeAUM += int64(f.Amount)
		}
	}
	avgFundSize := int(float64(totalAUM)/float64(len(companyFunds)) + 0.5)

	// Hurdle rate 평균 (0/미기재 제외)
	var hurdleSum float64
	hurdleCount := 0
	for i := range companyFunds {
		if rate := companyFunds[i].HurdleRate; rate > 0 {
			hurdleSum += rate
			hurdleCount++
		}
	}
	var avgHurdleRate *float64
	if hurdleCount > 0 {
		avg := float64(int(hurdleSum/float64(hurdleCount)*100+0.5)) / 100
		avgHurdleRate = &avg
	}

	// Sector focus: sector_tags 빈도
	sectorCounts := make(map[string]int)
	for i := range companyFunds {
		for _, tag := range companyFunds[i].SectorTags {
			sectorCounts[tag]++
		}
	}
	sectorFocus := make([]SectorCount, 0, len(sectorCounts))
	for sector, count := range sectorCounts {
		sectorFocus = append(sectorFocus, SectorCount{Sector: sector, Count: count})
	}
	sort.SliceStable(sectorFocus, func(i, j int) bool {
		if sectorFocus[i].Count != sectorFocus[j].Count {
			return sectorFocus[i].Count > sectorFocus[j].Count
		}
		return sectorFocus[i].Sector < sectorFocus[j].Sector
	})

	// Stage mix: sector_tags/all_tags에서 스테이지 태그 추출
	stageKeywords := []string{StageEarly, StageGrowth, StageSecondary}
	stageCounts := make(map[string]int)
	for i := range companyFunds {
		f := &companyFunds[i]
		allTags := append(append([]string{}, f.SectorTags...), f.AllTags...)
		for _, kw := range stageKeywords {
			if containsString(allTags, kw) {
				stageCounts[kw]++
			}
		}
	}
	stageMix := make([]StageCount, 0, len(stageCounts))
	for _, kw := range stageKeywords {
		if count, ok := stageCounts[kw]; ok {
			stageMix = append(stageMix, StageCount{Stage: kw, Count: count})
		}
	}
	sort.SliceStable(stageMix, func(i, j int) bool {
		return stageMix[i].Count > stageMix[j].Count
	})

	// Lifecycle distribution
	lifecycleCounts := make(map[string]int)
	for i := range companyFunds {
		if lc := companyFunds[i].Lifecycle; lc != "" {
			lifecycleCounts[lc]++
		}
	}
	lifecycleDist := make([]LifecycleCount, 0, len(lifecycleCounts))
	for lc, count := range lifecycleCounts {
		lifecycleDist = append(lifecycleDist, LifecycleCount{Lifecycle: lc, Count: count})
	}
	sort.SliceStable(lifecycleDist, func(i, j int) bool {
		if lifecycleDist[i].Count != lifecycleDist[j].Count {
			return lifecycleDist[i].Count > lifecycleDist[j].Count
		}
		return lifecycleDist[i].Lifecycle < lifecycleDist[j].Lifecycle
	})

	// Government matching
	govtMatched := 0
	accountCounts := make(map[string]int)
	for i := range companyFunds {
		f := &companyFunds[i]
		if f.IsGovtMatched {
			govtMatched++
			if f.AccountType != "" {
				accountCounts[f.AccountType]++
			}
		}
	}
	accountTypes := make([]AccountTypeCount, 0, len(accountCounts))
	for accountType, count := range accountCounts {
		accountTypes = append(accountTypes, AccountTypeCount{Type: accountType, Count: count})
	}
	sort.SliceStable(accountTypes, func(i, j int) bool {
		if accountTypes[i].Count != accountTypes[j].Count {
			return accountTypes[i].Count > accountTypes[j].Count
		}
		return accountTypes[i].Type < accountTypes[j].Type
	})

	// 대표 펀드매니저: 괄호 앞 이름만, 중복 제거
	managerSeen := make(map[string]struct{})
	managers := make([]string, 0)
	for i := range companyFunds {
		raw := companyFunds[i].FundManagerName
		if raw == "" {
			continue
		}
		name := strings.TrimSpace(strings.SplitN(raw, "(", 2)[0])
		if name == "" {
			continue
		}
		if _, dup := managerSeen[name]; dup {
			continue
		}
		managerSeen[name] = struct{}{}
		managers = append(managers, name)
	}

	// 결성 연혁 / 만기 스케줄 (연도 버킷)
	regCounts := make(map[string]int)
	matCounts := make(map[string]int)
	for i := range companyFunds {
		f := &companyFunds[i]
		if f.RegisteredDate != nil {
			regCounts[f.RegisteredDate.Format("2006")]++
		}
		if f.MaturityDate != nil && f.MaturityDate.After(now) {
			matCounts[f.MaturityDate.Format("2006")]++
		}
	}

	// Co-GP 파트너 (본인 제외)
	partnerSeen := make(map[string]struct{})
	coGPPartners := make([]string, 0)
	for i := range companyFunds {
		f := &companyFunds[i]
		if !f.IsCoGP() {
			continue
		}
		for _, partner := range f.Companies() {
			if partner == companyName {
				continue
			}
			if _, dup := partnerSeen[partner]; dup {
				continue
			}
			partnerSeen[partner] = struct{}{}
			coGPPartners = append(coGPPartners, partner)
		}
	}

	fundSummaries := make([]VCFundSummary, 0, len(companyFunds))
	for i := range companyFunds {
		f := &companyFunds[i]
		fundSummaries = append(fundSummaries, VCFundSummary{
			AsctID:         f.AsctID,
			CompanyName:    f.CompanyName,
			FundName:       f.FundName,
			Amount:         f.Amount,
			RegisteredDate: f.RegisteredDate,
			MaturityDate:   f.MaturityDate,
			Lifecycle:      f.Lifecycle,
			SectorTags:     f.SectorTags,
			IsCoGP:         f.IsCoGP(),
		})
	}

	return &VCDetail{
		Company:             companyName,
		TotalAUM:            totalAUM,
		ActiveAUM:           activeAUM,
		TotalFunds:          len(companyFunds),
		ActiveFunds:         activeCount,
		AvgFundSize:         avgFundSize,
		AvgHurdleRate:       avgHurdleRate,
		SectorFocus:         sectorFocus,
		StageMix:            stageMix,
		LifecycleDist:       lifecycleDist,
		GovtMatchRatio:      GovtMatchRatio{Matched: govtMatched, Total: len(companyFunds)},
		AccountTypes:        accountTypes,
		Managers:            managers,
		RegistrationHistory: yearCounts(regCounts),
		MaturitySchedule:    yearCounts(matCounts),
		CoGPPartners:        coGPPartners,
		Funds:               fundSummaries,
	}
}

func yearCounts(counts map[string]int) []YearCount {
	result := make([]YearCount, 0, len(counts))
	for year, count := range counts {
		result = append(result, YearCount{Year: year, Count: count})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Year < result[j].Year
	})
	return result
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
