package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/pkg/logger"
	"github.com/wonny/vcreview/backend/pkg/redis"
)

// FundHandler handles fund catalog endpoints
// ⭐ SSOT: 펀드 카탈로그 API 핸들러는 이 구조체에서만
type FundHandler struct {
	repo     *funds.Repository
	cache    *redis.Cache
	statsTTL time.Duration
	logger   *logger.Logger
}

// NewFundHandler creates a new fund handler
func NewFundHandler(repo *funds.Repository, cache *redis.Cache, statsTTL time.Duration, log *logger.Logger) *FundHandler {
	return &FundHandler{
		repo:     repo,
		cache:    cache,
		statsTTL: statsTTL,
		logger:   log,
	}
}

// List returns a filtered, paginated fund list
// GET /api/funds?sector=&stage=&company=&lifecycle=&active=&govt=&min_amount=&max_amount=&sort=&page=&limit=
func (h *FundHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	params := funds.ListParams{
		Sector:    q.Get("sector"),
		Stage:     q.Get("stage"),
		Company:   q.Get("company"),
		Lifecycle: q.Get("lifecycle"),
		Active:    q.Get("active") == "true",
		Govt:      q.Get("govt") == "true",
		MinAmount: queryInt(q.Get("min_amount")),
		MaxAmount: queryInt(q.Get("max_amount")),
		Sort:      q.Get("sort"),
		Page:      queryInt(q.Get("page")),
		Limit:     queryInt(q.Get("limit")),
	}

	list, err := h.repo.List(ctx, params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list funds")
		respondError(w, http.StatusInternalServerError, "Failed to list funds")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    list,
	})
}

// Get returns one fund with related funds from the same VC
// GET /api/funds/{asct_id}
func (h *FundHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	asctID := mux.Vars(r)["asct_id"]

	detail, err := h.repo.Get(ctx, asctID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Fund not found")
			return
		}
		h.logger.WithError(err).WithField("asct_id", asctID).Error("Failed to get fund")
		respondError(w, http.StatusInternalServerError, "Failed to get fund")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    detail,
	})
}

// statsCacheKey is shared with the refresh job for invalidation
const statsCacheKey = "funds:stats"

// Stats returns catalog-wide aggregates, cached in Redis when available
// GET /api/funds/stats
func (h *FundHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache != nil {
		var cached funds.Stats
		if hit, err := h.cache.Get(ctx, statsCacheKey, &cached); err != nil {
			h.logger.WithError(err).Warn("Stats cache read failed")
		} else if hit {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data":    cached,
				"cached":  true,
			})
			return
		}
	}

	stats, err := h.repo.Stats(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute fund stats")
		respondError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, statsCacheKey, stats, h.statsTTL); err != nil {
			h.logger.WithError(err).Warn("Stats cache write failed")
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stats,
	})
}

// Sectors returns sector tags with enough funds to filter by
// GET /api/funds/sectors
func (h *FundHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sectors, err := h.repo.Sectors(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list sectors")
		respondError(w, http.StatusInternalServerError, "Failed to list sectors")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"count":   len(sectors),
			"sectors": sectors,
		},
	})
}

// queryInt parses an int query param, zero on absence or garbage
func queryInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
