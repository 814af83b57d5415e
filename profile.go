package metascrape

import "strings"

// Profile classifies a target page's layout template. It is chosen once per
// document, from the URL alone, and controls which cleanup and
// content-selection rules apply during extraction.
type Profile string

// Supported site profiles.
const (
	// ProfileEncyclopedia covers MediaWiki-style pages with a single known
	// main-content container.
	ProfileEncyclopedia Profile = "encyclopedia"

	// ProfileTechnicalBlog covers AI-lab and tech-company blogs that place
	// real content inside elements matching generic noise heuristics, so
	// cleanup must be conservative.
	ProfileTechnicalBlog Profile = "technical_blog"

	// ProfileGeneric covers everything else and permits aggressive cleanup.
	ProfileGeneric Profile = "generic"
)

// technicalBlogDomains are URL substrings that select ProfileTechnicalBlog.
var technicalBlogDomains = []string{
	"anthropic.com",
	"openai.com",
	"ai.meta.com",
	"ai.google",
	"research.google",
	"github.blog",
	"microsoft.com/en-us/research",
	"deepmind.com",
}

// ClassifyURL returns the profile for a target URL. It is a pure function of
// the URL string: no network access, no HTML inspection, and no error cases.
// Unmatched input always yields ProfileGeneric.
func ClassifyURL(url string) Profile {
	if strings.Contains(url, "wikipedia.org") {
		return ProfileEncyclopedia
	}
	for _, domain := range technicalBlogDomains {
		if strings.Contains(url, domain) {
			return ProfileTechnicalBlog
		}
	}
	return ProfileGeneric
}
