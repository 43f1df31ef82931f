package matching

import (
	"fmt"
	"math"
	"sort"

	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

// ReasonType classifies a match reason
type ReasonType string

const (
	ReasonSector    ReasonType = "sector"
	ReasonStage     ReasonType = "stage"
	ReasonAccount   ReasonType = "account"
	ReasonLifecycle ReasonType = "lifecycle"
	ReasonKeyword   ReasonType = "keyword"
	ReasonSize      ReasonType = "size"
)

// MatchReason records one scoring signal for audit/display
type MatchReason struct {
	Type        ReasonType `json:"type"`
	Description string     `json:"description"`
	Score       int        `json:"score"`
}

// MatchedFund is a scored match candidate returned to the caller
type MatchedFund struct {
	AsctID          string        `json:"asct_id"`
	CompanyName     string        `json:"company_name"`
	FundName        string        `json:"fund_name"`
	FundManagerName string        `json:"fund_manager_name"`
	Amount          int           `json:"amount_억"`
	MaturityDate    string        `json:"maturity_date"`
	Lifecycle       string        `json:"lifecycle"`
	MatchScore      int           `json:"match_score"`
	MatchReasons    []MatchReason `json:"match_reasons"`
	IsGovtMatched   bool          `json:"is_govt_matched"`
	AccountType     string        `json:"account_type"`
}

// Options controls pool selection and result size.
// ActiveOnly/GovtOnly는 풀 조회 단계에서 적용됨. 매처는 재필터링하지 않는다.
type Options struct {
	Limit      int
	ActiveOnly bool
	GovtOnly   bool
}

// DefaultOptions returns the default matching options
func DefaultOptions() Options {
	return Options{
		Limit:      10,
		ActiveOnly: true,
		GovtOnly:   false,
	}
}

// Weights defines category point values for match scoring
type Weights struct {
	SectorDirect    int // 섹터 직접 매칭
	SectorSynonym   int // 연관 섹터 매칭
	SectorAccount   int // 계정구분 매칭
	Stage           int // 스테이지 매칭
	StageAngel      int // 엔젤 계정 (초기투자 차선)
	LifecycleActive int // 적극투자기
	LifecycleMid    int // 중기
	SizeFit         int // 펀드 규모 적합성
	Threshold       int // 최소 raw 스코어
	MaxScore        int // 표시 점수 상한
}

// DefaultWeights returns the production weight table.
// 섹터 40 + 스테이지 25 + 라이프사이클 20 + 사이즈 15 = 100
func DefaultWeights() Weights {
	return Weights{
		SectorDirect:    40,
		SectorSynonym:   20,
		SectorAccount:   35,
		Stage:           25,
		StageAngel:      20,
		LifecycleActive: 20,
		LifecycleMid:    10,
		SizeFit:         15,
		Threshold:       25,
		MaxScore:        100,
	}
}

// Ticket range as fraction of fund size (통상 펀드의 1건 투자 적정 규모)
const (
	minTicketRatio = 0.03
	maxTicketRatio = 0.20
)

// Matcher scores and ranks funds against deal signals
// ⭐ SSOT: 매칭 스코어 계산은 여기서만
type Matcher struct {
	weights Weights
	logger  *logger.Logger
}

// New creates a new matcher
func New(weights Weights, log *logger.Logger) *Matcher {
	return &Matcher{
		weights: weights,
		logger:  log,
	}
}

// Match scores every fund in the pool, drops candidates below threshold,
// ranks by score and keeps the best fund per operating company.
//
// Pool contract: 호출측(Repository)에서 has_sector (+active/govt) 필터와
// 결성액 내림차순 정렬을 보장한다. 동점 시 풀 순서 유지 (stable sort).
func (m *Matcher) Match(deal DealSignals, pool []funds.Fund, opts Options) []MatchedFund {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultOptions().Limit
	}

	matches := make([]MatchedFund, 0, len(pool))
	for i := range pool {
		if match := m.scoreFund(deal, &pool[i]); match != nil {
			matches = append(matches, *match)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	// VC사 중복 제거: 같은 운용사는 최고 스코어 펀드 1개만
	seen := make(map[string]struct{})
	deduped := make([]MatchedFund, 0, limit)
	for _, match := range matches {
		if _, dup := seen[match.CompanyName]; !dup {
			seen[match.CompanyName] = struct{}{}
			deduped = append(deduped, match)
		}
		if len(deduped) >= limit {
			break
		}
	}

	if m.logger != nil {
		m.logger.WithFields(map[string]interface{}{
			"pool_size": len(pool),
			"scored":    len(matches),
			"returned":  len(deduped),
			"sectors":   deal.Sectors,
			"stage":     deal.Stage,
		}).Info("Fund matching completed")
	}

	return deduped
}

// scoreFund computes the match score for a single fund.
// Returns nil when the raw score is below threshold.
func (m *Matcher) scoreFund(deal DealSignals, fund *funds.Fund) *MatchedFund {
	reasons := make([]MatchReason, 0, 4)
	totalScore := 0

	fundTags := fund.SectorTags
	allTags := fund.AllTags

	// (A) 섹터 매칭: 카테고리 내 최대값만 반영, 합산하지 않음
	sectorScore := 0
	for _, dealSector := range deal.Sectors {
		expanded, ok := SectorSynonyms[dealSector]
		if !ok {
			expanded = []string{dealSector}
		}
		for _, tag := range expanded {
			if !containsTag(fundTags, tag) {
				continue
			}
			points := m.weights.SectorSynonym
			description := fmt.Sprintf("연관 섹터: %s → %s", dealSector, tag)
			if tag == dealSector {
				points = m.weights.SectorDirect
				description = fmt.Sprintf("섹터 직접 매칭: %s", tag)
			}
			if points > sectorScore {
				sectorScore = points
			}
			reasons = append(reasons, MatchReason{
				Type:        ReasonSector,
				Description: description,
				Score:       points,
			})
		}
	}
	// 계정구분으로 추가 섹터 매칭
	acctSectors := AccountSectorAffinity[fund.AccountType]
	for _, dealSector := range deal.Sectors {
		if !containsTag(acctSectors, dealSector) {
			continue
		}
		if m.weights.SectorAccount > sectorScore {
			sectorScore = m.weights.SectorAccount
		}
		reasons = append(reasons, MatchReason{
			Type:        ReasonAccount,
			Description: fmt.Sprintf("계정구분 매칭: %s → %s", fund.AccountType, dealSector),
			Score:       m.weights.SectorAccount,
		})
	}
	totalScore += sectorScore

	// (B) 스테이지 매칭: 정확 매칭 우선, 엔젤 차선 (상호 배타)
	if deal.Stage != "" && containsTag(allTags, deal.Stage) {
		totalScore += m.weights.Stage
		reasons = append(reasons, MatchReason{
			Type:        ReasonStage,
			Description: fmt.Sprintf("투자 스테이지 매칭: %s", deal.Stage),
			Score:       m.weights.Stage,
		})
	} else if deal.Stage == StageEarly && containsTag(allTags, angelTag) {
		totalScore += m.weights.StageAngel
		reasons = append(reasons, MatchReason{
			Type:        ReasonStage,
			Description: "엔젤 계정 (초기 투자 특화)",
			Score:       m.weights.StageAngel,
		})
	}

	// (C) 라이프사이클
	switch fund.Lifecycle {
	case LifecycleActive:
		totalScore += m.weights.LifecycleActive
		reasons = append(reasons, MatchReason{
			Type:        ReasonLifecycle,
			Description: "적극 투자 집행기 (결성 2년 이내)",
			Score:       m.weights.LifecycleActive,
		})
	case LifecycleMid:
		totalScore += m.weights.LifecycleMid
		reasons = append(reasons, MatchReason{
			Type:        ReasonLifecycle,
			Description: "중기 (결성 2~4년)",
			Score:       m.weights.LifecycleMid,
		})
	}

	// (D) 펀드 사이즈 적합성: 희망 금액이 있을 때만 평가
	if deal.AmountNeeded > 0 {
		fundSize := float64(fund.Amount)
		minTicket := fundSize * minTicketRatio
		maxTicket := fundSize * maxTicketRatio
		if deal.AmountNeeded >= minTicket && deal.AmountNeeded <= maxTicket {
			totalScore += m.weights.SizeFit
			reasons = append(reasons, MatchReason{
				Type:        ReasonSize,
				Description: fmt.Sprintf("펀드 규모 적합: %d억 (적정 티켓 %.0f~%.0f억)", fund.Amount, math.Round(minTicket), math.Round(maxTicket)),
				Score:       m.weights.SizeFit,
			})
		}
	}

	// 최소 threshold 판정은 클램프 전 raw 합계 기준.
	// 가중치 테이블이 100을 넘도록 바뀌어도 이 순서는 유지해야 한다.
	if totalScore < m.weights.Threshold {
		return nil
	}

	matchScore := totalScore
	if matchScore > m.weights.MaxScore {
		matchScore = m.weights.MaxScore
	}

	maturity := ""
	if fund.MaturityDate != nil {
		maturity = fund.MaturityDate.Format("2006-01-02")
	}

	return &MatchedFund{
		AsctID:          fund.AsctID,
		CompanyName:     fund.CompanyName,
		FundName:        fund.FundName,
		FundManagerName: fund.FundManagerName,
		Amount:          fund.Amount,
		MaturityDate:    maturity,
		Lifecycle:       fund.Lifecycle,
		MatchScore:      matchScore,
		MatchReasons:    reasons,
		IsGovtMatched:   fund.IsGovtMatched,
		AccountType:     fund.AccountType,
	}
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
