// Package scrape provides the orchestration layer: the single-page scrape
// operation and the batch full-content operation over search results. Each
// invocation is synchronous and self-contained; batch processing is strictly
// sequential, and one slow or failing URL delays but never aborts the rest.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/akarpinski/metascrape"
)

// timestampFormat matches the human-readable stamp in rendered output.
const timestampFormat = "Monday, January 2, 2006 3:04:05 PM"

// minMeaningfulContent is the trimmed length below which scraped output
// carries a minimal-results note.
const minMeaningfulContent = 100

// Page is the outcome of a scrape operation.
type Page struct {
	URL        string // normalized URL that was fetched
	Title      string
	Content    string // extracted markdown, or the AI summary
	Summarized bool
}

// Scraper coordinates fetching, extraction and optional summarization.
type Scraper struct {
	Fetcher    metascrape.Fetcher
	Extractor  metascrape.Extractor
	Summarizer metascrape.Summarizer // optional; nil disables summarization
	Limiter    *DomainLimiter        // optional; paces batch fetches
	Logger     *slog.Logger          // optional; defaults to slog.Default()
	Now        func() time.Time      // optional; defaults to time.Now
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Scrape fetches rawURL, extracts its main content and, when requested and a
// Summarizer is configured, replaces the content with an AI summary. An
// empty URL is a validation error; no fetch is attempted. A missing scheme
// defaults to https.
func (s *Scraper) Scrape(ctx context.Context, rawURL string, summarize bool) (*Page, error) {
	if rawURL == "" {
		return nil, metascrape.Errorf(metascrape.EINVALID, "no URL provided")
	}
	target := normalizeScheme(rawURL)

	s.logger().Info("scraping webpage", "url", target, "summarize", summarize)

	html, err := s.Fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	res, err := s.Extractor.Extract(metascrape.Document{URL: target, Body: html})
	if err != nil {
		return nil, err
	}

	page := &Page{URL: target, Title: res.Title, Content: res.Markdown}

	if summarize && s.Summarizer != nil {
		summary, err := s.Summarizer.Summarize(ctx, res.Markdown, res.Title, target)
		if err != nil {
			return nil, err
		}
		page.Content = summary
		page.Summarized = true
	}

	return page, nil
}

// FillContent replaces each result's snippet with the extracted page text
// (or its AI summary). Results beyond max are dropped. Per-result failures
// become an inline error note on that result only; processing always
// continues to the next result.
func (s *Scraper) FillContent(ctx context.Context, results []metascrape.SearchResult, max int, summarize bool) []metascrape.SearchResult {
	if max <= 0 || max > metascrape.MaxResults {
		max = metascrape.MaxResults
	}
	if len(results) > max {
		results = results[:max]
	}

	filled := make([]metascrape.SearchResult, len(results))
	for i, result := range results {
		filled[i] = result
		filled[i].Content = s.fetchResultContent(ctx, result, summarize)
	}
	return filled
}

// fetchResultContent retrieves one result's page content, funneling every
// failure into an inline note.
func (s *Scraper) fetchResultContent(ctx context.Context, result metascrape.SearchResult, summarize bool) string {
	if result.URL == "" {
		return "**Error:** result has no URL\n\nUnable to retrieve full content for this result."
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, domainOf(result.URL)); err != nil {
			return errorNote(err)
		}
	}

	s.logger().Info("retrieving full content", "url", result.URL)

	html, err := s.Fetcher.Fetch(ctx, result.URL)
	if err != nil {
		s.logger().Error("full content fetch failed", "url", result.URL, "err", err)
		return errorNote(err)
	}

	res, err := s.Extractor.Extract(metascrape.Document{URL: result.URL, Body: html})
	if err != nil {
		s.logger().Error("content extraction failed", "url", result.URL, "err", err)
		return errorNote(err)
	}

	if summarize && s.Summarizer != nil {
		summary, err := s.Summarizer.Summarize(ctx, res.Markdown, res.Title, result.URL)
		if err != nil {
			s.logger().Error("summarization failed", "url", result.URL, "err", err)
			return errorNote(err)
		}
		return summary
	}

	return res.Markdown
}

// errorNote renders a per-result failure as an inline markdown note.
func errorNote(err error) string {
	return fmt.Sprintf("**Error retrieving full content:** %s\n\nUnable to retrieve full content for this result.", metascrape.ErrorMessage(err))
}

// FormatPage renders a scraped page as a markdown document with a source
// line and timestamp, flagging minimal extraction results.
func (s *Scraper) FormatPage(p *Page) string {
	var b strings.Builder

	if p.Summarized {
		fmt.Fprintf(&b, "# AI-Generated Summary of %s\n\n", p.Title)
		fmt.Fprintf(&b, "**Original URL:** %s\n\n", p.URL)
		fmt.Fprintf(&b, "**Summarized on:** %s\n\n", s.now().Format(timestampFormat))
		b.WriteString("---\n\n")
		b.WriteString(p.Content)
		b.WriteString("\n\n---\n\n*Summary generated using AI. Information should be verified from original sources.*\n")
		return b.String()
	}

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Source URL:** %s\n\n", p.URL)
	fmt.Fprintf(&b, "**Scraped on:** %s\n\n", s.now().Format(timestampFormat))
	b.WriteString("---\n\n")

	if len(strings.TrimSpace(p.Content)) < minMeaningfulContent {
		b.WriteString("**Note: Content extraction yielded minimal results.**\n\n")
	}

	b.WriteString(p.Content)
	return b.String()
}

// FormatFullContent renders filled results as a sectioned markdown document.
// Pass the output of FillContent; content fields may already carry inline
// error notes.
func FormatFullContent(results []metascrape.SearchResult, summarized bool) string {
	var b strings.Builder
	if summarized {
		b.WriteString("# AI-Summarized Search Results\n\n")
	} else {
		b.WriteString("# Full Content Results\n\n")
	}

	for i, result := range results {
		title := result.Title
		if title == "" {
			title = metascrape.NoTitle
		}
		fmt.Fprintf(&b, "## Result %d: %s\n\n", i+1, title)
		if result.URL != "" {
			fmt.Fprintf(&b, "**Source URL:** [%s](%s)\n\n", result.URL, result.URL)
		}
		b.WriteString("---\n\n")
		b.WriteString(result.Content)
		b.WriteString("\n\n***\n\n")
		b.WriteString(strings.Repeat("=", 80))
		b.WriteString("\n\n")
	}

	return b.String()
}

// normalizeScheme prepends https:// when the URL has no scheme.
func normalizeScheme(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// domainOf extracts the host for rate limiting; malformed URLs share the
// empty-domain bucket.
func domainOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
