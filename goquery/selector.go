package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/akarpinski/metascrape"
)

// MinCandidateLength is the visible-text length a content candidate must
// exceed for selection to succeed. Shorter candidates force the caller onto
// the full-body fallback.
const MinCandidateLength = 200

// encyclopediaContentSelector is the single known main-content container on
// MediaWiki pages. When present it is the candidate unconditionally; no
// competing candidates are scored.
const encyclopediaContentSelector = "#mw-content-text"

// labArticleSelectors is the ordered candidate list for the one lab domain
// with a known article layout.
var labArticleSelectors = []string{
	"article", "main", ".content", ".post", ".post-content",
	".article", ".article-content", ".blog-post", ".page-content",
}

// genericContentSelectors is the ordered candidate list for everything else.
var genericContentSelectors = []string{
	"#content", "#main", "#article", "#post", ".content", ".main", ".article", ".post",
	"article", "main", "section.content", "div.content", "div.main", "div.article",
}

// labArticleDomain selects labArticleSelectors over the generic list for
// technical-blog pages on this domain.
const labArticleDomain = "anthropic.com"

// Candidate is a subtree considered as the page's main content, scored by
// visible-text length. Candidates are ephemeral: computed fresh per
// extraction attempt, never cached.
type Candidate struct {
	Selection *goquery.Selection
	TextLen   int
}

// SelectContent scans the profile's candidate containers and returns the one
// with the longest visible text, plus whether it cleared MinCandidateLength.
// Ties go to the first candidate encountered in selector-list order. Returns
// (nil, false) when no selector matches.
func SelectContent(doc *goquery.Document, profile metascrape.Profile, url string) (*Candidate, bool) {
	if profile == metascrape.ProfileEncyclopedia {
		sel := doc.Find(encyclopediaContentSelector).First()
		if sel.Length() == 0 {
			return nil, false
		}
		c := &Candidate{Selection: sel, TextLen: visibleTextLen(sel)}
		return c, c.TextLen > MinCandidateLength
	}

	selectors := genericContentSelectors
	if profile == metascrape.ProfileTechnicalBlog && strings.Contains(url, labArticleDomain) {
		selectors = labArticleSelectors
	}

	var best *Candidate
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			length := visibleTextLen(sel)
			// Strictly greater keeps the first-encountered candidate on ties.
			if best == nil || length > best.TextLen {
				best = &Candidate{Selection: sel, TextLen: length}
			}
		})
	}

	if best == nil {
		return nil, false
	}
	return best, best.TextLen > MinCandidateLength
}

// visibleTextLen measures a node's visible text with runs of whitespace
// condensed to single spaces.
func visibleTextLen(sel *goquery.Selection) int {
	return len(strings.Join(strings.Fields(sel.Text()), " "))
}
