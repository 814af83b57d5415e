package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/akarpinski/metascrape"
	mshttp "github.com/akarpinski/metascrape/http"
	"github.com/akarpinski/metascrape/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	SearxngURL string
	Search     metascrape.SearchService
	// Scraper serves the scrape command (longer per-page timeout).
	Scraper *scrape.Scraper
	// BatchScraper serves full-content search modes (shorter per-page
	// timeout, rate-limited).
	BatchScraper  *scrape.Scraper
	HasSummarizer bool
}

// CLI defines the command-line interface structure for Kong. Connection
// settings come from the environment and can be overridden per invocation.
type CLI struct {
	SearxngURL  string `env:"SEARXNG_URL" default:"http://localhost:8080" help:"SearxNG instance URL"`
	OpenAIURL   string `name:"openai-url" env:"OPENAI_API_URL" default:"https://api.openai.com/v1" help:"OpenAI-compatible API base URL"`
	OpenAIToken string `name:"openai-token" env:"OPENAI_API_TOKEN" help:"API token; enables AI summaries"`
	OpenAIModel string `name:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" help:"Model used for AI summaries"`
	Extractor   string `default:"heuristic" enum:"heuristic,readability,trafilatura" help:"Content extraction strategy"`
	Images      bool   `help:"Keep images in extracted markdown"`
	Tables      bool   `default:"true" negatable:"" help:"Preserve table structure in extracted markdown"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`

	Search   SearchCmd   `cmd:"" help:"Search the web through the SearxNG backend"`
	Scrape   ScrapeCmd   `cmd:"" help:"Fetch a webpage and extract its main content"`
	Diagnose DiagnoseCmd `cmd:"" help:"Test the connection to the SearxNG instance"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query      string `arg:"" help:"Search query"`
	Engine     string `default:"google" help:"Search engine to use (${engines})"`
	Format     string `default:"summary" enum:"summary,full,full_with_ai_summary" help:"summary for snippets, full for extracted page content, full_with_ai_summary for AI summaries only"`
	TimeRange  string `name:"time-range" default:"" enum:",day,week,month,year" help:"Limit results to a time period"`
	Language   string `default:"all" help:"Filter results by language"`
	SafeSearch string `name:"safesearch" default:"off" enum:"off,moderate,strict" help:"Filter explicit content"`
	MaxResults int    `name:"max-results" short:"n" default:"${default_results}" help:"Maximum number of results"`
}

func (c *SearchCmd) Run(deps *Dependencies) error {
	req := metascrape.SearchRequest{
		Query:      c.Query,
		Engine:     c.Engine,
		Language:   c.Language,
		TimeRange:  c.TimeRange,
		SafeSearch: safeSearchLevel(c.SafeSearch),
	}

	results, err := deps.Search.Search(deps.Ctx, req)
	if err != nil {
		fmt.Fprint(deps.Stdout, metascrape.FormatError(err))
		return nil
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found for your query.")
		return nil
	}

	switch c.Format {
	case "full":
		filled := deps.BatchScraper.FillContent(deps.Ctx, results, c.MaxResults, false)
		fmt.Fprint(deps.Stdout, scrape.FormatFullContent(filled, false))
	case "full_with_ai_summary":
		if !deps.HasSummarizer {
			fmt.Fprint(deps.Stdout, missingTokenNote)
			filled := deps.BatchScraper.FillContent(deps.Ctx, results, c.MaxResults, false)
			fmt.Fprint(deps.Stdout, scrape.FormatFullContent(filled, false))
			return nil
		}
		filled := deps.BatchScraper.FillContent(deps.Ctx, results, c.MaxResults, true)
		fmt.Fprint(deps.Stdout, scrape.FormatFullContent(filled, true))
	default:
		fmt.Fprint(deps.Stdout, metascrape.FormatSummary(results, c.MaxResults))
	}

	return nil
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL       string `arg:"" help:"Webpage URL to scrape"`
	Summarize bool   `help:"Summarize content using AI"`
}

func (c *ScrapeCmd) Run(deps *Dependencies) error {
	page, err := deps.Scraper.Scrape(deps.Ctx, c.URL, c.Summarize)
	if err != nil {
		fmt.Fprint(deps.Stdout, metascrape.FormatError(err))
		return nil
	}

	if c.Summarize && !deps.HasSummarizer {
		fmt.Fprint(deps.Stdout, missingTokenNote)
	}
	fmt.Fprintln(deps.Stdout, deps.Scraper.FormatPage(page))
	return nil
}

// DiagnoseCmd is the "diagnose" subcommand.
type DiagnoseCmd struct {
	URL     string        `arg:"" optional:"" help:"SearxNG URL to test (defaults to the configured instance)"`
	Timeout time.Duration `default:"5s" help:"Per-probe timeout"`
}

func (c *DiagnoseCmd) Run(deps *Dependencies) error {
	target := c.URL
	if target == "" {
		target = deps.SearxngURL
	}
	normalized, err := mshttp.NormalizeInstanceURL(target)
	if err != nil {
		fmt.Fprint(deps.Stdout, metascrape.FormatError(err))
		return nil
	}

	client := mshttp.NewSearxNG(normalized, mshttp.WithSearchTimeout(c.Timeout))
	d := client.Diagnose(deps.Ctx)

	var b strings.Builder
	fmt.Fprintf(&b, "# SearxNG Connection Diagnostics\n\n")
	fmt.Fprintf(&b, "**Testing URL**: %s\n\n## Test Results\n\n", d.BaseURL)

	if d.RootReachable {
		b.WriteString("- Basic connection: OK, server is reachable\n")
	} else {
		fmt.Fprintf(&b, "- Basic connection: FAILED (%s)\n", d.RootError)
	}
	if d.GetSearchOK {
		b.WriteString("- GET search: OK\n")
		if d.ValidJSON {
			b.WriteString("- JSON format: valid SearxNG response structure\n")
		} else {
			b.WriteString("- JSON format: unexpected response structure (missing 'results' key)\n")
		}
	} else {
		fmt.Fprintf(&b, "- GET search: FAILED (%s)\n", d.GetSearchError)
	}
	if d.PostSearchOK {
		b.WriteString("- POST search: OK\n")
	} else {
		fmt.Fprintf(&b, "- POST search: FAILED (%s)\n", d.PostSearchErr)
	}

	b.WriteString("\n## Troubleshooting Tips\n\n")
	b.WriteString("1. Docker users: ensure both containers are running and networked correctly\n")
	b.WriteString("2. Docker users: the URL should be http://searxng:8080 inside the compose network\n")
	b.WriteString("3. Local setup: the URL should be http://localhost:8080\n")
	b.WriteString("4. SearxNG must have the JSON format enabled in its settings\n")

	fmt.Fprint(deps.Stdout, b.String())
	return nil
}

const missingTokenNote = "**Note: Content summarization was requested, but no OpenAI/OpenRouter API token is configured.**\n\nSet OPENAI_API_TOKEN in your environment to enable summarization.\n\n"

func safeSearchLevel(name string) int {
	switch name {
	case "moderate":
		return metascrape.SafeSearchModerate
	case "strict":
		return metascrape.SafeSearchStrict
	default:
		return metascrape.SafeSearchOff
	}
}
