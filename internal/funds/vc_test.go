package funds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestAggregateVCDetail(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	companyFunds := []Fund{
		{
			AsctID:          "F100",
			CompanyName:     "알파벤처스",
			FundName:        "알파 AI 1호",
			Amount:          1000,
			RegisteredDate:  datePtr(2025, 3, 1),
			MaturityDate:    datePtr(2033, 3, 1),
			FundManagerName: "김철수 (대표)",
			SectorTags:      []string{"AI/SW", "딥테크"},
			AllTags:         []string{"초기투자"},
			Lifecycle:       "적극투자기",
			IsActive:        true,
			IsGovtMatched:   true,
			AccountType:     "과기정통계정",
			HurdleRate:      8,
		},
		{
			AsctID:          "F101",
			CompanyName:     "알파벤처스 / 베타파트너스",
			FundName:        "알파베타 세컨더리 1호",
			Amount:          500,
			RegisteredDate:  datePtr(2021, 5, 1),
			MaturityDate:    datePtr(2025, 5, 1), // 만기 경과
			FundManagerName: "김철수 (대표)",
			SectorTags:      []string{"세컨더리"},
			AllTags:         []string{"세컨더리"},
			Lifecycle:       "회수기",
			IsActive:        false,
			HurdleRate:      7,
		},
	}

	detail := AggregateVCDetail("알파벤처스", companyFunds, now)
	require.NotNil(t, detail)

	assert.Equal(t, "알파벤처스", detail.Company)
	assert.Equal(t, int64(1500), detail.TotalAUM)
	assert.Equal(t, int64(1000), detail.ActiveAUM)
	assert.Equal(t, 2, detail.TotalFunds)
	assert.Equal(t, 1, detail.ActiveFunds)
	assert.Equal(t, 750, detail.AvgFundSize)

	require.NotNil(t, detail.AvgHurdleRate)
	assert.InDelta(t, 7.5, *detail.AvgHurdleRate, 0.001)

	// 섹터 포커스는 빈도 내림차순
	require.NotEmpty(t, detail.SectorFocus)
	assert.Equal(t, 1, detail.SectorFocus[0].Count)

	// 스테이지 믹스: 초기투자 1, 세컨더리 1
	stageByName := make(map[string]int)
	for _, s := range detail.StageMix {
		stageByName[s.Stage] = s.Count
	}
	assert.Equal(t, 1, stageByName["초기투자"])
	assert.Equal(t, 1, stageByName["세컨더리"])

	assert.Equal(t, GovtMatchRatio{Matched: 1, Total: 2}, detail.GovtMatchRatio)
	assert.Equal(t, []AccountTypeCount{{Type: "과기정통계정", Count: 1}}, detail.AccountTypes)

	// 매니저 이름은 괄호 앞부분만, 중복 제거
	assert.Equal(t, []string{"김철수"}, detail.Managers)

	// 만기 스케줄은 미래 만기만 (2025년 만기는 제외)
	assert.Equal(t, []YearCount{{Year: "2033", Count: 1}}, detail.MaturitySchedule)
	assert.Equal(t, []YearCount{{Year: "2021", Count: 1}, {Year: "2025", Count: 1}}, detail.RegistrationHistory)

	// Co-GP 파트너는 본인 제외
	assert.Equal(t, []string{"베타파트너스"}, detail.CoGPPartners)

	require.Len(t, detail.Funds, 2)
	assert.False(t, detail.Funds[0].IsCoGP)
	assert.True(t, detail.Funds[1].IsCoGP)
}

func TestAggregateVCDetail_NoHurdleRates(t *testing.T) {
	companyFunds := []Fund{
		{AsctID: "F102", CompanyName: "감마인베스트", Amount: 300},
	}

	detail := AggregateVCDetail("감마인베스트", companyFunds, time.Now())
	assert.Nil(t, detail.AvgHurdleRate)
	assert.Empty(t, detail.CoGPPartners)
	assert.Equal(t, GovtMatchRatio{Matched: 0, Total: 1}, detail.GovtMatchRatio)
}

func TestFilterVCs(t *testing.T) {
	all := []VCSummary{
		{Name: "알파벤처스", TotalFunds: 5, ActiveFunds: 3, TotalAUM: 2000},
		{Name: "베타파트너스", TotalFunds: 2, ActiveFunds: 0, TotalAUM: 400},
		{Name: "감마인베스트", TotalFunds: 1, ActiveFunds: 1, TotalAUM: 100},
	}

	tests := []struct {
		name   string
		params VCListParams
		want   []string
	}{
		{
			name:   "search is case-insensitive substring",
			params: VCListParams{Search: "벤처"},
			want:   []string{"알파벤처스"},
		},
		{
			name:   "min aum",
			params: VCListParams{MinAUM: 500},
			want:   []string{"알파벤처스"},
		},
		{
			name:   "min funds",
			params: VCListParams{MinFunds: 2},
			want:   []string{"알파벤처스", "베타파트너스"},
		},
		{
			name:   "active only drops zero-active VCs",
			params: VCListParams{ActiveOnly: true},
			want:   []string{"알파벤처스", "감마인베스트"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterVCs(all, tt.params)
			names := make([]string, 0, len(got))
			for _, vc := range got {
				names = append(names, vc.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestPaginateVCs(t *testing.T) {
	vcs := []VCSummary{
		{Name: "A", TotalAUM: 100, TotalFunds: 3},
		{Name: "B", TotalAUM: 300, TotalFunds: 1},
		{Name: "C", TotalAUM: 200, TotalFunds: 2},
	}

	// 기본 정렬: total_aum 내림차순
	result := paginateVCs(append([]VCSummary{}, vcs...), VCListParams{})
	require.Len(t, result.VCs, 3)
	assert.Equal(t, "B", result.VCs[0].Name)
	assert.Equal(t, "C", result.VCs[1].Name)
	assert.Equal(t, "A", result.VCs[2].Name)

	// name 오름차순
	result = paginateVCs(append([]VCSummary{}, vcs...), VCListParams{Sort: "name", Order: "asc"})
	assert.Equal(t, "A", result.VCs[0].Name)

	// 페이지네이션
	result = paginateVCs(append([]VCSummary{}, vcs...), VCListParams{Limit: 2, Page: 2})
	require.Len(t, result.VCs, 1)
	assert.Equal(t, Pagination{Total: 3, Page: 2, Limit: 2, Pages: 2}, result.Pagination)

	// 범위 밖 페이지는 빈 결과
	result = paginateVCs(append([]VCSummary{}, vcs...), VCListParams{Limit: 2, Page: 9})
	assert.Empty(t, result.VCs)
}

func TestFund_Companies(t *testing.T) {
	single := Fund{CompanyName: "알파벤처스"}
	assert.False(t, single.IsCoGP())
	assert.Equal(t, []string{"알파벤처스"}, single.Companies())

	coGP := Fund{CompanyName: "알파벤처스 / 베타파트너스"}
	assert.True(t, coGP.IsCoGP())
	assert.Equal(t, []string{"알파벤처스", "베타파트너스"}, coGP.Companies())
}

func TestOrderClause(t *testing.T) {
	// Legacy 축약 키는 _desc로 정규화
	assert.Equal(t, orderClause("amount"), orderClause("amount_desc"))
	assert.Equal(t, orderClause("maturity"), orderClause("maturity_desc"))
	assert.Equal(t, orderClause("registered"), orderClause("registered_desc"))

	// 미등록 키/빈 키는 기본 정렬
	assert.Equal(t, "ORDER BY amount_억 DESC NULLS LAST", orderClause(""))
	assert.Equal(t, "ORDER BY amount_억 DESC NULLS LAST", orderClause("bogus"))
	assert.Equal(t, "ORDER BY company_name ASC", orderClause("company_asc"))
}

func TestBuildFundFilter(t *testing.T) {
	where, args := buildFundFilter(ListParams{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildFundFilter(ListParams{
		Active:    true,
		Govt:      true,
		Sector:    "AI/SW",
		Company:   "알파",
		MinAmount: 100,
	})
	assert.Contains(t, where, "is_active = TRUE")
	assert.Contains(t, where, "is_govt_matched = TRUE")
	assert.Contains(t, where, "$1 = ANY(sector_tags)")
	assert.Contains(t, where, "company_name ILIKE $2")
	assert.Contains(t, where, "amount_억 >= $3")
	assert.Equal(t, []interface{}{"AI/SW", "%알파%", 100}, args)
}
