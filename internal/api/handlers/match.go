package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/internal/matching"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

// MatchHandler handles deal-to-fund matching endpoints
// ⭐ SSOT: 매칭 API 핸들러는 이 구조체에서만
type MatchHandler struct {
	repo         *funds.Repository
	matcher      *matching.Matcher
	defaultLimit int
	logger       *logger.Logger
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(repo *funds.Repository, matcher *matching.Matcher, defaultLimit int, log *logger.Logger) *MatchHandler {
	return &MatchHandler{
		repo:         repo,
		matcher:      matcher,
		defaultLimit: defaultLimit,
		logger:       log,
	}
}

// MatchRequest accepts either normalized signals or a raw deal analysis.
// 둘 다 있으면 dealSignals 우선. activeOnly 생략 시 활성 펀드만 대상.
type MatchRequest struct {
	DealSignals *matching.DealSignals  `json:"dealSignals,omitempty"`
	Analysis    *matching.DealAnalysis `json:"analysis,omitempty"`
	Limit       int                    `json:"limit,omitempty"`
	GovtOnly    bool                   `json:"govtOnly,omitempty"`
	ActiveOnly  *bool                  `json:"activeOnly,omitempty"`
}

// Match runs the fund matcher against the active fund pool
// POST /api/fund-match
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var signals matching.DealSignals
	switch {
	case req.DealSignals != nil:
		signals = *req.DealSignals
	case req.Analysis != nil:
		signals = matching.ExtractDealSignals(*req.Analysis)
	default:
		respondError(w, http.StatusBadRequest, "Either dealSignals or analysis is required")
		return
	}

	if len(signals.Sectors) == 0 {
		respondError(w, http.StatusBadRequest, "At least one sector is required")
		return
	}

	opts := matching.DefaultOptions()
	opts.Limit = h.defaultLimit
	if req.Limit > 0 {
		opts.Limit = req.Limit
	}
	opts.GovtOnly = req.GovtOnly
	if req.ActiveOnly != nil {
		opts.ActiveOnly = *req.ActiveOnly
	}

	pool, err := h.repo.MatchPool(ctx, opts.ActiveOnly, opts.GovtOnly)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load match pool")
		respondError(w, http.StatusInternalServerError, "Failed to load fund pool")
		return
	}

	matches := h.matcher.Match(signals, pool, opts)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"signals": signals,
			"count":   len(matches),
			"matches": matches,
		},
	})
}

// Extract normalizes a raw deal analysis without running the matcher.
// POST /api/fund-match/extract
func (h *MatchHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var analysis matching.DealAnalysis
	if err := json.NewDecoder(r.Body).Decode(&analysis); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"signals": matching.ExtractDealSignals(analysis),
		},
	})
}
