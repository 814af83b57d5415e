// Package goquery implements the heuristic content extractor: profile-aware
// noise stripping, candidate scoring by visible-text length, and a
// three-attempt quality gate that retries with progressively gentler
// stripping when the result looks over-filtered.
package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akarpinski/metascrape"
)

// Quality-gate thresholds. One policy set, applied everywhere: a full-pass
// body render under FullPassGate chars escalates to a minimal-stripping
// retry, and a minimal-pass render under MinimalPassGate trimmed chars
// escalates to the last resort.
const (
	FullPassGate    = 500
	MinimalPassGate = 100
)

// attempt names the quality-gate states. Transitions are one-way and
// strictly escalating; attemptLastResort always accepts its output.
type attempt int

const (
	attemptFull attempt = iota
	attemptMinimal
	attemptLastResort
)

// Ensure Extractor implements metascrape.Extractor at compile time.
var _ metascrape.Extractor = (*Extractor)(nil)

// Extractor reduces a fetched page to its main content as markdown.
type Extractor struct {
	converter metascrape.Converter
	logger    *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for quality-gate warnings.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor that renders selected subtrees with conv.
func NewExtractor(conv metascrape.Converter, opts ...Option) *Extractor {
	e := &Extractor{
		converter: conv,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the extraction pipeline on doc. The profile is classified
// once from the URL and never changes. Each attempt reparses the original
// document, so an over-aggressive strip in one attempt cannot leak into the
// next. Extract never fails for lack of content: the last resort returns
// whatever text remains, however short, logging a warning.
func (e *Extractor) Extract(doc metascrape.Document) (*metascrape.ExtractResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	profile := metascrape.ClassifyURL(doc.URL)

	for state := attemptFull; ; state++ {
		tree, err := parse(doc.Body)
		if err != nil {
			// The parser is tolerant, so this is practically unreachable.
			return nil, metascrape.Errorf(metascrape.EINTERNAL, "parse HTML from %s: %v", doc.URL, err)
		}
		title := pageTitle(tree)

		var markdown string
		var accepted bool
		switch state {
		case attemptFull:
			markdown, accepted = e.fullPass(tree, profile, doc.URL)
		case attemptMinimal:
			markdown = e.minimalPass(tree, profile)
			accepted = len(strings.TrimSpace(markdown)) >= MinimalPassGate
		case attemptLastResort:
			markdown = e.minimalPass(tree, profile)
			accepted = true
			e.logger.Warn("content extraction produced little text",
				"url", doc.URL,
				"profile", string(profile),
				"chars", len(strings.TrimSpace(markdown)),
			)
		}

		if accepted {
			return &metascrape.ExtractResult{Title: title, Markdown: markdown}, nil
		}
	}
}

// fullPass strips with the profile's complete selector lists and renders the
// best content candidate. A candidate that cleared the minimum length is
// accepted outright; otherwise the whole body is rendered and accepted only
// when it reaches FullPassGate chars.
func (e *Extractor) fullPass(tree *goquery.Document, profile metascrape.Profile, url string) (string, bool) {
	StripNoise(tree, profile, StripFull)

	if candidate, ok := SelectContent(tree, profile, url); ok {
		if markdown, err := e.render(candidate.Selection); err == nil {
			return markdown, true
		}
	}

	markdown, err := e.renderBody(tree)
	if err != nil {
		return "", false
	}
	return markdown, len(markdown) >= FullPassGate
}

// minimalPass strips scripts and styles only. Encyclopedia pages still try
// their known content container first; everything else renders the body.
func (e *Extractor) minimalPass(tree *goquery.Document, profile metascrape.Profile) string {
	StripNoise(tree, profile, StripMinimal)

	if profile == metascrape.ProfileEncyclopedia {
		if sel := tree.Find(encyclopediaContentSelector).First(); sel.Length() > 0 {
			if markdown, err := e.render(sel); err == nil {
				return markdown
			}
		}
	}

	markdown, err := e.renderBody(tree)
	if err != nil {
		return ""
	}
	return markdown
}

func (e *Extractor) render(sel *goquery.Selection) (string, error) {
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", err
	}
	return e.converter.Convert(html)
}

// renderBody renders the page body, or the whole document when the body
// selection is empty.
func (e *Extractor) renderBody(tree *goquery.Document) (string, error) {
	if body := tree.Find("body").First(); body.Length() > 0 {
		return e.render(body)
	}
	html, err := tree.Html()
	if err != nil {
		return "", err
	}
	return e.converter.Convert(html)
}

func parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// pageTitle reads the tree's title node, independent of content selection.
func pageTitle(tree *goquery.Document) string {
	title := strings.TrimSpace(tree.Find("title").First().Text())
	if title == "" {
		return metascrape.NoTitle
	}
	return title
}
