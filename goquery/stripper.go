package goquery

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/akarpinski/metascrape"
)

// Aggressiveness controls how much markup the stripper removes.
type Aggressiveness int

const (
	// StripFull applies the selected profile's complete noise-selector lists.
	StripFull Aggressiveness = iota

	// StripMinimal removes only script and style elements. Used on the
	// quality-gate retry path, where the full pass proved too aggressive.
	StripMinimal
)

// baseNoiseTags are removed by every full-strength pass regardless of profile.
var baseNoiseTags = []string{"script", "style", "noscript", "iframe"}

// wikiNoiseSelectors target known MediaWiki navigation and chrome elements.
// Broad navigation/sidebar classes are deliberately absent: article content
// frequently reuses those class names.
var wikiNoiseSelectors = []string{
	"#mw-navigation",
	"#mw-panel",
	"#mw-head",
	".mw-jump-link",
	".mw-editsection",
	"#mw-page-base",
	".mw-indicators",
	"#catlinks",
	".printfooter",
	".noprint",
	"#footer",
}

// wikiNoiseClasses is the conservative class list applied on encyclopedia
// pages: obvious non-content areas only.
var wikiNoiseClasses = []string{
	".navigation",
	".ads", ".ad", ".banner", ".cookie", ".popup",
	".share", ".comments", ".gdpr", ".promo",
}

// techBlogNoiseSelectors is the minimal removal set for technical blogs.
// These sites place real content inside elements that would match generic
// noise class heuristics, so only unambiguous chrome goes.
var techBlogNoiseSelectors = []string{
	"nav:not(.article-nav)",
	"footer",
	".cookie-banner",
	".newsletter-signup",
	".subscribe-form",
	".gdpr-notice",
	".popup-overlay",
}

// genericNoiseTags are whole tags removed on generic pages.
var genericNoiseTags = []string{"nav", "header", "footer"}

// genericNoiseClasses is the broad class list for generic pages.
var genericNoiseClasses = []string{
	".menu", ".navbar", ".sidebar", ".footer", ".header", ".navigation",
	".ads", ".ad", ".banner", ".cookie", ".popup", ".social",
	".share", ".related", ".comments", ".gdpr", ".promo", ".toolbar",
}

// genericPartialClassTokens match any element whose class attribute contains
// the token as a substring. Applied only on generic pages.
var genericPartialClassTokens = []string{"menu", "nav", "sidebar", "footer", "header", "ad"}

// StripNoise removes non-content markup from the tree in place, according to
// the profile and aggressiveness level. Selectors that match nothing are
// no-ops; within one pass nodes are only removed, never re-added. Undoing an
// over-aggressive pass requires a fresh reparse of the original document.
func StripNoise(doc *goquery.Document, profile metascrape.Profile, level Aggressiveness) {
	if level == StripMinimal {
		removeAll(doc, "script", "style")
		return
	}

	removeAll(doc, baseNoiseTags...)

	switch profile {
	case metascrape.ProfileEncyclopedia:
		removeAll(doc, wikiNoiseSelectors...)
		removeAll(doc, wikiNoiseClasses...)
	case metascrape.ProfileTechnicalBlog:
		removeAll(doc, techBlogNoiseSelectors...)
	default:
		removeAll(doc, genericNoiseTags...)
		removeAll(doc, genericNoiseClasses...)
		for _, token := range genericPartialClassTokens {
			removeAll(doc, fmt.Sprintf("[class*='%s']", token))
		}
	}
}

func removeAll(doc *goquery.Document, selectors ...string) {
	for _, selector := range selectors {
		doc.Find(selector).Remove()
	}
}
