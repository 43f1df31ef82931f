package kvic

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/vcreview/backend/internal/funds"
)

// FetchDirectory fetches and parses the VC member directory page.
// 운용사 프로필은 공시 목록에 없어 회원사 명부 HTML에서 가져온다.
func (c *Client) FetchDirectory(ctx context.Context) ([]funds.VCProfile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	fullURL := fmt.Sprintf("%s/member/vc/list", c.baseURL)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch VC directory: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse VC directory HTML: %w", err)
	}

	profiles := parseDirectory(doc)
	c.logger.WithField("count", len(profiles)).Info("Fetched VC directory")
	return profiles, nil
}

// parseDirectory extracts member rows from the directory table.
// 셀 순서: 회사명, 대표자, 설립년도, 주소, 홈페이지
func parseDirectory(doc *goquery.Document) []funds.VCProfile {
	profiles := make([]funds.VCProfile, 0)

	doc.Find("table.member-list tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		profile := funds.VCProfile{
			Name:           cleanCell(cells.Eq(0).Text()),
			Representative: cleanCell(cells.Eq(1).Text()),
		}
		if profile.Name == "" {
			return
		}

		if cells.Length() > 2 {
			if year, err := strconv.Atoi(cleanCell(cells.Eq(2).Text())); err == nil {
				profile.FoundedYear = year
			}
		}
		if cells.Length() > 3 {
			profile.Address = cleanCell(cells.Eq(3).Text())
		}
		if cells.Length() > 4 {
			if href, ok := cells.Eq(4).Find("a").Attr("href"); ok {
				profile.Website = strings.TrimSpace(href)
			}
		}

		profiles = append(profiles, profile)
	})

	return profiles
}

func cleanCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
