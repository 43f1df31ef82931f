package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vcreview/backend/internal/matching"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

func newTestMatchHandler() *MatchHandler {
	return NewMatchHandler(nil, matching.New(matching.DefaultWeights(), nil), 10, logger.NewNop())
}

func TestMatchHandler_RejectsInvalidBody(t *testing.T) {
	h := newTestMatchHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/fund-match", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	h.Match(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchHandler_RequiresSignalsOrAnalysis(t *testing.T) {
	h := newTestMatchHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/fund-match", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Match(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "dealSignals or analysis")
}

func TestMatchHandler_RequiresSectors(t *testing.T) {
	h := newTestMatchHandler()

	body := `{"dealSignals": {"sectors": [], "stage": "초기투자"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/fund-match", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Match(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "sector")
}

func TestMatchRequest_AcceptsClientFieldNames(t *testing.T) {
	body := `{
		"dealSignals": {"sectors": ["AI/SW"], "stage": "초기투자"},
		"limit": 5,
		"govtOnly": true,
		"activeOnly": false
	}`

	var req MatchRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.DealSignals)
	assert.Equal(t, []string{"AI/SW"}, req.DealSignals.Sectors)
	assert.Equal(t, 5, req.Limit)
	assert.True(t, req.GovtOnly)
	require.NotNil(t, req.ActiveOnly)
	assert.False(t, *req.ActiveOnly)

	// activeOnly 생략 시 nil로 남아 기본값(활성 펀드만)이 적용된다
	var omitted MatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"analysis": {"sectors": ["AI"]}}`), &omitted))
	assert.Nil(t, omitted.ActiveOnly)
}

func TestMatchHandler_ExtractNormalizesAnalysis(t *testing.T) {
	h := newTestMatchHandler()

	body := `{"sectors": ["AI", "fintech"], "stage": "seed", "funding_amount": 30}`
	req := httptest.NewRequest(http.MethodPost, "/api/fund-match/extract", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Extract(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Signals matching.DealSignals `json:"signals"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"AI/SW", "핀테크/금융"}, resp.Data.Signals.Sectors)
	assert.Equal(t, "초기투자", resp.Data.Signals.Stage)
	assert.InDelta(t, 30, resp.Data.Signals.AmountNeeded, 0.001)
}
