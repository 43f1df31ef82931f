// Package kvic fetches fund disclosure data from KVIC (한국벤처투자)
// public disclosure pages.
package kvic

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/vcreview/backend/internal/tagging"
	"github.com/wonny/vcreview/backend/pkg/config"
	"github.com/wonny/vcreview/backend/pkg/httputil"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

// Client handles communication with the KVIC disclosure service
// ⭐ SSOT: 공시 데이터 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a new KVIC client.
// 공시 서버 보호를 위해 요청 rate limit 적용.
func NewClient(cfg config.KVICConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RateBurst),
	}
}

// pageSize is the disclosure list page size
const pageSize = 100

// fundListResponse is the disclosure list API response
type fundListResponse struct {
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	List       []rawFundItem `json:"resultList"`
}

// rawFundItem mirrors the disclosure JSON field names
type rawFundItem struct {
	AsctID      string `json:"asctId"`
	CompanyName string `json:"operInstNm"`
	FundName    string `json:"asctNm"`
	RegDate     string `json:"regDt"`      // YYYY-MM-DD
	ExpDate     string `json:"expDt"`      // YYYY-MM-DD
	Manager     string `json:"asctMngr"`
	SupportType string `json:"suportFld"`
	AccountType string `json:"accntDiv"`
	PurposeType string `json:"invstPurps"`
	SectorType  string `json:"mainInvstFld"`
	HurdleRate  string `json:"benchRt"`
	TotalAmount int64  `json:"formTotamt"` // 원
}

// FetchFunds fetches one page of fund disclosures.
// Returns the records and whether more pages remain.
func (c *Client) FetchFunds(ctx context.Context, page int) ([]tagging.Record, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, fmt.Errorf("rate limit wait failed: %w", err)
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	fullURL := fmt.Sprintf("%s/api/disclosure/asct/list?%s", c.baseURL, params.Encode())

	var resp fundListResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, false, fmt.Errorf("failed to fetch fund list page %d: %w", page, err)
	}

	records := make([]tagging.Record, 0, len(resp.List))
	for _, item := range resp.List {
		records = append(records, item.toRecord())
	}

	hasMore := page*pageSize < resp.TotalCount
	return records, hasMore, nil
}

// FetchAllFunds pages through the full disclosure list
func (c *Client) FetchAllFunds(ctx context.Context) ([]tagging.Record, error) {
	all := make([]tagging.Record, 0)

	for page := 1; ; page++ {
		records, hasMore, err := c.FetchFunds(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)

		c.logger.WithFields(map[string]interface{}{
			"page":  page,
			"count": len(records),
			"total": len(all),
		}).Debug("Fetched disclosure page")

		if !hasMore || len(records) == 0 {
			break
		}
	}

	c.logger.WithField("total", len(all)).Info("Fetched all fund disclosures")
	return all, nil
}

// toRecord converts a raw item into a tagging.Record.
// 파싱 불가 필드는 zero value로 둔다. 수집은 레코드 단위로 계속된다.
func (item rawFundItem) toRecord() tagging.Record {
	rec := tagging.Record{
		AsctID:          item.AsctID,
		CompanyName:     item.CompanyName,
		FundName:        item.FundName,
		FundManagerName: item.Manager,
		SupportType:     item.SupportType,
		AccountType:     item.AccountType,
		PurposeType:     item.PurposeType,
		SectorType:      item.SectorType,
		TotalAmount:     item.TotalAmount,
	}

	if d, err := time.Parse("2006-01-02", item.RegDate); err == nil {
		rec.RegisteredDate = &d
	}
	if d, err := time.Parse("2006-01-02", item.ExpDate); err == nil {
		rec.MaturityDate = &d
	}
	if hurdle, err := strconv.ParseFloat(item.HurdleRate, 64); err == nil {
		rec.HurdleRate = hurdle
	}

	return rec
}
