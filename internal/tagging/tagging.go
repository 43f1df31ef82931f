// Package tagging derives sector/stage tags and status flags from raw
// fund disclosure records. 공시 원본에는 태그가 없어 수집/시드 단계에서
// 규칙 기반으로 부여한다.
package tagging

import (
	"strings"
	"time"

	"github.com/wonny/vcreview/backend/internal/funds"
)

// Record is a raw disclosure record before enrichment
type Record struct {
	AsctID          string     `json:"asct_id"`
	CompanyName     string     `json:"company_name"`
	FundName        string     `json:"fund_name"`
	RegisteredDate  *time.Time `json:"registered_date"`
	MaturityDate    *time.Time `json:"maturity_date"`
	FundManagerName string     `json:"fund_manager_name"`
	SupportType     string     `json:"support_type"`
	AccountType     string     `json:"account_type"`
	PurposeType     string     `json:"purpose_type"`
	SectorType      string     `json:"sector_type"`
	HurdleRate      float64    `json:"hurdle_rate"`
	TotalAmount     int64      `json:"total_amount"` // 원
}

// sectorTypeTags maps 공시 주목적 투자분야 values to canonical sector tags
var sectorTypeTags = map[string][]string{
	"ICT서비스":     {"AI/SW"},
	"ICT제조":      {"반도체"},
	"바이오/의료":     {"바이오"},
	"영상/공연/음반":   {"콘텐츠/엔터", "영화/영상"},
	"게임":         {"게임"},
	"화학/소재":      {"소부장"},
	"전기/기계/장비":   {"로봇/자동화"},
	"유통/서비스":     {"뷰티/패션"},
}

// nameKeywordTags assigns sector tags from fund name substrings.
// 순서 = 우선순위 (먼저 매칭된 태그가 앞에 온다)
var nameKeywordTags = []struct {
	Keyword string
	Tag     string
}{
	{"바이오", "바이오"},
	{"헬스케어", "바이오"},
	{"콘텐츠", "콘텐츠/엔터"},
	{"영화", "영화/영상"},
	{"게임", "게임"},
	{"AI", "AI/SW"},
	{"딥테크", "딥테크"},
	{"반도체", "반도체"},
	{"소부장", "소부장"},
	{"모빌리티", "모빌리티"},
	{"ESG", "친환경/ESG"},
	{"그린", "친환경/ESG"},
	{"기후", "친환경/ESG"},
	{"이차전지", "이차전지/배터리"},
	{"푸드", "푸드/농업"},
	{"농식품", "푸드/농업"},
	{"에듀", "에듀테크/교육"},
	{"교육", "에듀테크/교육"},
	{"관광", "관광/여행"},
	{"스포츠", "스포츠"},
	{"해양", "해양/수산"},
	{"우주", "우주/항공"},
	{"국방", "국방/안보"},
	{"핀테크", "핀테크/금융"},
}

// 일반계정 = 정부 모태펀드 비매칭
const generalAccount = "일반계정"

// Lifecycle 경계 (결성일 기준 경과 년수)
const (
	activeYears = 2
	midYears    = 4
)

// Enrich converts a raw record into a tagged Fund
func Enrich(rec Record, now time.Time) funds.Fund {
	sectorTags := DeriveSectorTags(rec.SectorType, rec.FundName)
	stageTags := DeriveStageTags(rec.SupportType, rec.PurposeType, rec.FundName)

	allTags := make([]string, 0, len(stageTags)+len(sectorTags))
	allTags = append(allTags, stageTags...)
	allTags = append(allTags, sectorTags...)

	return funds.Fund{
		AsctID:          rec.AsctID,
		CompanyName:     rec.CompanyName,
		FundName:        rec.FundName,
		RegisteredDate:  rec.RegisteredDate,
		MaturityDate:    rec.MaturityDate,
		FundManagerName: rec.FundManagerName,
		SupportType:     rec.SupportType,
		AccountType:     rec.AccountType,
		HurdleRate:      rec.HurdleRate,
		TotalAmount:     rec.TotalAmount,
		Amount:          int(rec.TotalAmount / 100_000_000), // 원 → 억
		SectorTags:      sectorTags,
		AllTags:         allTags,
		IsGovtMatched:   IsGovtMatched(rec.AccountType),
		IsActive:        rec.MaturityDate != nil && !rec.MaturityDate.Before(now),
		Lifecycle:       Lifecycle(rec.RegisteredDate, now),
		HasSector:       len(sectorTags) > 0,
	}
}

// DeriveSectorTags derives sector tags from 주목적 분야 + 펀드명 키워드
func DeriveSectorTags(sectorType, fundName string) []string {
	tags := make([]string, 0, 4)
	seen := make(map[string]struct{})

	appendTag := func(tag string) {
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, tag := range sectorTypeTags[strings.TrimSpace(sectorType)] {
		appendTag(tag)
	}
	for _, rule := range nameKeywordTags {
		if strings.Contains(fundName, rule.Keyword) {
			appendTag(rule.Tag)
		}
	}
	return tags
}

// DeriveStageTags derives stage tags from 지원분야/목적/펀드명
func DeriveStageTags(supportType, purposeType, fundName string) []string {
	tags := make([]string, 0, 2)
	combined := supportType + " " + purposeType + " " + fundName

	switch {
	case strings.Contains(combined, "세컨더리") || strings.Contains(combined, "LP지분"):
		tags = append(tags, funds.StageSecondary)
	case strings.Contains(combined, "초기") || strings.Contains(combined, "창업"):
		tags = append(tags, funds.StageEarly)
	case strings.Contains(combined, "성장") || strings.Contains(combined, "스케일업") || strings.Contains(combined, "M&A"):
		tags = append(tags, funds.StageGrowth)
	}

	if strings.Contains(combined, "엔젤") {
		tags = append(tags, funds.TagAngel)
	}
	return tags
}

// IsGovtMatched reports whether the account type is a government
// matching program (모태펀드 계정)
func IsGovtMatched(accountType string) bool {
	accountType = strings.TrimSpace(accountType)
	return accountType != "" && accountType != generalAccount
}

// Lifecycle buckets a fund by years since 결성일
func Lifecycle(registered *time.Time, now time.Time) string {
	if registered == nil {
		return ""
	}
	switch {
	case !registered.Before(now.AddDate(-activeYears, 0, 0)):
		return funds.LifecycleActive
	case !registered.Before(now.AddDate(-midYears, 0, 0)):
		return funds.LifecycleMid
	default:
		return funds.LifecycleHarvest
	}
}
