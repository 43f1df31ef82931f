package matching

import "strings"

// DealSignals is the canonical description of a startup deal used as
// matcher input: 섹터 태그 + 투자 스테이지 + 희망 투자 금액.
type DealSignals struct {
	Sectors       []string `json:"sectors"`        // ["AI/SW", "핀테크/금융"]
	Stage         string   `json:"stage"`          // 초기투자 | 성장투자 | 세컨더리
	BusinessModel string   `json:"business_model"` // SaaS, Marketplace, D2C 등
	Geo           []string `json:"geo"`            // ["해외", "동남아"]
	AmountNeeded  float64  `json:"amount_needed,omitempty"` // 투자 희망 금액 (억)
	Keywords      []string `json:"keywords,omitempty"`
}

// DealAnalysis is the loosely structured upstream output (Secretary Agent)
// before normalization. 모든 필드 선택적.
type DealAnalysis struct {
	Sectors       []string `json:"sectors"`
	Stage         string   `json:"stage"`
	BusinessModel string   `json:"business_model"`
	Geo           []string `json:"geo"`
	FundingAmount float64  `json:"funding_amount"`
	Keywords      []string `json:"keywords"`
}

// ExtractDealSignals normalizes a raw deal analysis into DealSignals.
// Pure function: never fails, always returns a fully-formed value.
//   - 섹터 키워드는 소문자 변환 후 테이블 조회, 미등록 키워드는 원형 유지
//   - 스테이지 미등록/누락 시 초기투자로 간주 (의도된 기본값)
func ExtractDealSignals(analysis DealAnalysis) DealSignals {
	sectors := make([]string, 0, len(analysis.Sectors))
	seen := make(map[string]struct{}, len(analysis.Sectors))

	for _, raw := range analysis.Sectors {
		if raw == "" {
			continue
		}
		sector := raw
		if mapped, ok := sectorKeywordMap[strings.ToLower(raw)]; ok {
			sector = mapped
		}
		if _, dup := seen[sector]; dup {
			continue
		}
		seen[sector] = struct{}{}
		sectors = append(sectors, sector)
	}

	stage := StageEarly
	if mapped, ok := stageKeywordMap[strings.ToLower(analysis.Stage)]; ok {
		stage = mapped
	}

	geo := analysis.Geo
	if geo == nil {
		geo = []string{}
	}
	keywords := analysis.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return DealSignals{
		Sectors:       sectors,
		Stage:         stage,
		BusinessModel: analysis.BusinessModel,
		Geo:           geo,
		AmountNeeded:  analysis.FundingAmount,
		Keywords:      keywords,
	}
}
