package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDealSignals_SectorMapping(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "known keywords map to canonical tags",
			input: []string{"fintech", "ai"},
			want:  []string{"핀테크/금융", "AI/SW"},
		},
		{
			name:  "lookup is case-insensitive",
			input: []string{"FinTech", "SAAS"},
			want:  []string{"핀테크/금융", "AI/SW"},
		},
		{
			name:  "unknown keywords pass through unchanged",
			input: []string{"unknown-kw"},
			want:  []string{"unknown-kw"},
		},
		{
			name:  "duplicates collapse preserving first position",
			input: []string{"ai", "saas", "healthcare"},
			want:  []string{"AI/SW", "바이오"},
		},
		{
			name:  "empty strings dropped",
			input: []string{"", "biotech"},
			want:  []string{"바이오"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := ExtractDealSignals(DealAnalysis{Sectors: tt.input})
			assert.Equal(t, tt.want, signals.Sectors)
		})
	}
}

func TestExtractDealSignals_StageMapping(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pre-seed", StageEarly},
		{"seed", StageEarly},
		{"series-a", StageEarly},
		{"series-b", StageGrowth},
		{"series-c", StageGrowth},
		{"growth", StageGrowth},
		{"late", StageGrowth},
		{"Series-A", StageEarly}, // case-insensitive
		{"unknown", StageEarly},  // 기본값
		{"", StageEarly},         // 누락 시 기본값
	}

	for _, tt := range tests {
		signals := ExtractDealSignals(DealAnalysis{Stage: tt.input})
		assert.Equal(t, tt.want, signals.Stage, "stage %q", tt.input)
	}
}

func TestExtractDealSignals_DefaultsAndPassthrough(t *testing.T) {
	// 빈 입력도 항상 완전한 DealSignals 반환
	signals := ExtractDealSignals(DealAnalysis{})
	assert.Empty(t, signals.Sectors)
	assert.Equal(t, StageEarly, signals.Stage)
	assert.NotNil(t, signals.Geo)
	assert.NotNil(t, signals.Keywords)
	assert.Zero(t, signals.AmountNeeded)

	// business_model/geo/keywords/funding_amount는 그대로 전달
	signals = ExtractDealSignals(DealAnalysis{
		Sectors:       []string{"unknown-kw"},
		BusinessModel: "SaaS",
		Geo:           []string{"해외"},
		FundingAmount: 30,
		Keywords:      []string{"b2b"},
	})
	assert.Equal(t, []string{"unknown-kw"}, signals.Sectors)
	assert.Equal(t, "SaaS", signals.BusinessModel)
	assert.Equal(t, []string{"해외"}, signals.Geo)
	assert.Equal(t, 30.0, signals.AmountNeeded)
	assert.Equal(t, []string{"b2b"}, signals.Keywords)
}
