package kvic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/pkg/config"
	"github.com/wonny/vcreview/backend/pkg/httputil"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

const sampleDirectoryHTML = `
<html><body>
<table class="member-list">
<thead><tr><th>회사명</th><th>대표자</th><th>설립년도</th><th>주소</th><th>홈페이지</th></tr></thead>
<tbody>
<tr>
  <td> 알파벤처스 </td>
  <td>김철수</td>
  <td>2015</td>
  <td>서울특별시 강남구
      테헤란로 123</td>
  <td><a href="https://alpha.vc"> 바로가기 </a></td>
</tr>
<tr>
  <td>베타파트너스</td>
  <td>이영희</td>
  <td>-</td>
</tr>
<tr>
  <td></td>
  <td>빈 행</td>
</tr>
</tbody>
</table>
</body></html>`

func TestParseDirectory(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleDirectoryHTML))
	require.NoError(t, err)

	profiles := parseDirectory(doc)
	require.Len(t, profiles, 2)

	assert.Equal(t, funds.VCProfile{
		Name:           "알파벤처스",
		Representative: "김철수",
		FoundedYear:    2015,
		Address:        "서울특별시 강남구 테헤란로 123",
		Website:        "https://alpha.vc",
	}, profiles[0])

	// 설립년도 파싱 실패는 zero value로 둔다
	assert.Equal(t, "베타파트너스", profiles[1].Name)
	assert.Equal(t, 0, profiles[1].FoundedYear)
}

func TestFetchDirectory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/member/vc/list", r.URL.Path)
		w.Write([]byte(sampleDirectoryHTML))
	}))
	defer server.Close()

	cfg := config.KVICConfig{
		BaseURL:    server.URL,
		RatePerSec: 100,
		RateBurst:  1,
	}
	client := NewClient(cfg, httputil.New(time.Second, logger.NewNop()), logger.NewNop())

	profiles, err := client.FetchDirectory(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "알파벤처스", profiles[0].Name)
	assert.Equal(t, "베타파트너스", profiles[1].Name)
}

func TestRawFundItem_ToRecord(t *testing.T) {
	item := rawFundItem{
		AsctID:      "20250001",
		CompanyName: "알파벤처스",
		FundName:    "알파 AI 1호",
		RegDate:     "2025-03-01",
		ExpDate:     "2033-03-01",
		HurdleRate:  "7.5",
		TotalAmount: 100_000_000_000,
	}

	rec := item.toRecord()
	require.NotNil(t, rec.RegisteredDate)
	require.NotNil(t, rec.MaturityDate)
	assert.Equal(t, "2025-03-01", rec.RegisteredDate.Format("2006-01-02"))
	assert.InDelta(t, 7.5, rec.HurdleRate, 0.001)

	// 날짜/숫자 파싱 실패는 nil/zero로 남는다
	bad := rawFundItem{AsctID: "X", RegDate: "미정", HurdleRate: ""}
	rec = bad.toRecord()
	assert.Nil(t, rec.RegisteredDate)
	assert.Zero(t, rec.HurdleRate)
}
