package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/akarpinski/metascrape"
	msgoquery "github.com/akarpinski/metascrape/goquery"
	"github.com/akarpinski/metascrape/htmltomarkdown"
	mshttp "github.com/akarpinski/metascrape/http"
	"github.com/akarpinski/metascrape/openai"
	"github.com/akarpinski/metascrape/readability"
	"github.com/akarpinski/metascrape/scrape"
	msslog "github.com/akarpinski/metascrape/slog"
	"github.com/akarpinski/metascrape/trafilatura"
)

// Per-page fetch timeouts. The single-page scrape path waits longer than the
// batch path, where one slow host would stall the whole result list.
const (
	scrapeFetchTimeout = 15 * time.Second
	batchFetchTimeout  = 10 * time.Second
)

// batchFetchRPS paces batch page fetches per domain.
const batchFetchRPS = 1.0

func main() {
	ctx := context.Background()

	if err := Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Run executes the CLI with the given arguments.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("metascrape"),
		kong.Description("Search the web through a SearxNG backend and scrape webpages as clean markdown, with optional AI summaries."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"engines":         strings.Join(metascrape.Engines, ", "),
			"default_results": strconv.Itoa(metascrape.DefaultResults),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'metascrape --help' to see available commands")
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	converter := htmltomarkdown.NewConverter(
		htmltomarkdown.WithImages(cli.Images),
		htmltomarkdown.WithTables(cli.Tables),
	)

	var extractor metascrape.Extractor
	switch cli.Extractor {
	case "readability":
		extractor = readability.NewExtractor(converter)
	case "trafilatura":
		extractor = trafilatura.NewExtractor(converter)
	default:
		extractor = msgoquery.NewExtractor(converter, msgoquery.WithLogger(logger))
	}

	var summarizer metascrape.Summarizer
	if cli.OpenAIToken != "" {
		summarizer = openai.NewSummarizer(cli.OpenAIURL, cli.OpenAIToken, cli.OpenAIModel)
		deps.HasSummarizer = true
	}

	deps.SearxngURL = cli.SearxngURL
	deps.Search = msslog.NewLoggingSearchService(mshttp.NewSearxNG(cli.SearxngURL), logger)

	deps.Scraper = &scrape.Scraper{
		Fetcher:    msslog.NewLoggingFetcher(mshttp.NewFetcher(mshttp.WithTimeout(scrapeFetchTimeout)), logger),
		Extractor:  extractor,
		Summarizer: summarizer,
		Logger:     logger,
	}
	deps.BatchScraper = &scrape.Scraper{
		Fetcher:    msslog.NewLoggingFetcher(mshttp.NewFetcher(mshttp.WithTimeout(batchFetchTimeout)), logger),
		Extractor:  extractor,
		Summarizer: summarizer,
		Limiter:    scrape.NewDomainLimiter(batchFetchRPS),
		Logger:     logger,
	}

	return kongCtx.Run(deps)
}
