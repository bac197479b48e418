// Package content downloads article pages and extracts their readable text
// for summarization.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	truncationMarker = "\n\n[article truncated]"
	maxDownloadBytes = 2 << 20
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(` {2,}`)

	// boilerplate lines common on sports sites
	boilerplate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Share this article.*\n?`),
		regexp.MustCompile(`(?i)Follow .* on Twitter.*\n?`),
		regexp.MustCompile(`(?i)ESPN\+.*subscribe.*\n?`),
		regexp.MustCompile(`(?i)Advertisement\n?`),
	}
)

// Fetcher retrieves article pages and reduces them to cleaned plain text.
type Fetcher struct {
	httpClient *http.Client
	maxLength  int
}

// NewFetcher wires an HTTP client; maxLength bounds the returned text.
func NewFetcher(client *http.Client, maxLength int) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if maxLength <= 0 {
		maxLength = 5000
	}
	return &Fetcher{httpClient: client, maxLength: maxLength}
}

// FetchBody downloads the article and returns its cleaned, truncated text.
func (f *Fetcher) FetchBody(ctx context.Context, articleURL string) (string, error) {
	parsed, err := url.Parse(articleURL)
	if err != nil {
		return "", fmt.Errorf("invalid article url %s: %w", articleURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article returned %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return "", fmt.Errorf("read article: %w", err)
	}

	text := extractText(raw, parsed)
	if text == "" {
		return "", fmt.Errorf("no readable content in %s", articleURL)
	}

	text = cleanText(text)
	if len(text) > f.maxLength {
		text = text[:f.maxLength] + truncationMarker
	}
	return text, nil
}

// extractText prefers readability extraction and falls back to collecting
// paragraph nodes when readability finds nothing usable.
func extractText(raw []byte, pageURL *url.URL) string {
	if article, err := readability.FromReader(bytes.NewReader(raw), pageURL); err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return ""
	}

	var paragraphs []string
	doc.Find("article p, p").Each(func(i int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

func cleanText(text string) string {
	text = multiNewline.ReplaceAllString(text, "\n\n")
	for _, pattern := range boilerplate {
		text = pattern.ReplaceAllString(text, "")
	}
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
