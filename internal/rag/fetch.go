package rag

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves the readable text of a web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

const (
	fetchUserAgent  = "GenMentor/1.0 (Learning Content Fetcher)"
	maxFetchedChars = 15000
)

type httpFetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a 30s timeout and a 10-redirect cap.
func NewFetcher() Fetcher {
	return &httpFetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}

	text, err := htmlToText(string(body))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}
	return text, nil
}

// htmlToText strips noise elements and extracts readable content as
// markdown-ish text.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, footer, header, aside, iframe").Remove()

	var content strings.Builder

	if title := strings.TrimSpace(doc.Find("title").Text()); title != "" {
		content.WriteString("# " + title + "\n\n")
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			level := int(s.Get(0).Data[1] - '0')
			content.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
		}
	})

	doc.Find("p, article, section").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); len(text) > 30 {
			content.WriteString(text + "\n\n")
		}
	})

	doc.Find("ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				content.WriteString("- " + text + "\n")
			}
		})
		content.WriteString("\n")
	})

	result := content.String()
	if len(result) > maxFetchedChars {
		result = result[:maxFetchedChars] + "\n\n[content truncated]"
	}
	return result, nil
}
