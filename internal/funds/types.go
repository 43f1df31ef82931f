package funds

import (
	"strings"
	"time"
)

// coGPSeparator joins company names of jointly managed funds (Co-GP)
const coGPSeparator = " / "

// Canonical stage tags. 태깅과 매칭이 같은 문자열을 쓴다.
const (
	StageEarly     = "초기투자"
	StageGrowth    = "성장투자"
	StageSecondary = "세컨더리"
)

// TagAngel marks 엔젤 특화 펀드
const TagAngel = "엔젤"

// Lifecycle phases (결성 경과 기준)
const (
	LifecycleActive  = "적극투자기" // 결성 2년 이내
	LifecycleMid     = "중기"    // 결성 2~4년
	LifecycleHarvest = "회수기"
)

// Fund represents a single registered VC fund (벤처투자조합)
// DB 컬럼과 1:1. 저장/조회는 Repository가 담당
type Fund struct {
	AsctID          string     `json:"asct_id"`
	CompanyName     string     `json:"company_name"`
	FundName        string     `json:"fund_name"`
	RegisteredDate  *time.Time `json:"registered_date"`
	MaturityDate    *time.Time `json:"maturity_date"`
	FundManagerName string     `json:"fund_manager_name"`
	SupportType     string     `json:"support_type"`
	AccountType     string     `json:"account_type"`
	HurdleRate      float64    `json:"hurdle_rate"`
	TotalAmount     int64      `json:"total_amount"`
	Amount          int        `json:"amount_억"` // 결성 총액 (억원)
	SectorTags      []string   `json:"sector_tags"`
	AllTags         []string   `json:"all_tags"`
	IsGovtMatched   bool       `json:"is_govt_matched"`
	IsActive        bool       `json:"is_active"`
	Lifecycle       string     `json:"lifecycle"`
	HasSector       bool       `json:"has_sector"`
}

// IsCoGP reports whether the fund is jointly managed by multiple VCs
func (f *Fund) IsCoGP() bool {
	return strings.Contains(f.CompanyName, coGPSeparator)
}

// Companies returns the operating company names (Co-GP면 복수)
func (f *Fund) Companies() []string {
	parts := strings.Split(f.CompanyName, coGPSeparator)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// HasTag reports whether tag appears in sector_tags
func (f *Fund) HasTag(tag string) bool {
	for _, t := range f.SectorTags {
		if t == tag {
			return true
		}
	}
	return false
}
