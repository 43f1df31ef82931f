package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

// VCHandler handles VC firm endpoints
type VCHandler struct {
	repo   *funds.Repository
	logger *logger.Logger
}

// NewVCHandler creates a new VC handler
func NewVCHandler(repo *funds.Repository, log *logger.Logger) *VCHandler {
	return &VCHandler{
		repo:   repo,
		logger: log,
	}
}

// List returns VC firms aggregated from the fund catalog
// GET /api/vcs?search=&min_aum=&min_funds=&active=&sort=&order=&page=&limit=
func (h *VCHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	params := funds.VCListParams{
		Search:     q.Get("search"),
		MinAUM:     queryInt(q.Get("min_aum")),
		MaxAUM:     queryInt(q.Get("max_aum")),
		MinFunds:   queryInt(q.Get("min_funds")),
		ActiveOnly: q.Get("active") == "true",
		Sort:       q.Get("sort"),
		Order:      q.Get("order"),
		Page:       queryInt(q.Get("page")),
		Limit:      queryInt(q.Get("limit")),
	}

	list, err := h.repo.ListVCs(ctx, params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list VCs")
		respondError(w, http.StatusInternalServerError, "Failed to list VCs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    list,
	})
}

// Detail returns one VC firm's aggregated profile
// GET /api/vcs/{company}
func (h *VCHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	company := mux.Vars(r)["company"]

	detail, err := h.repo.VCDetail(ctx, company)
	if err != nil {
		h.logger.WithError(err).WithField("company", company).Error("Failed to get VC detail")
		respondError(w, http.StatusInternalServerError, "Failed to get VC detail")
		return
	}
	if detail == nil {
		respondError(w, http.StatusNotFound, "VC not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    detail,
	})
}
