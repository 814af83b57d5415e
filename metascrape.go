// Package metascrape exposes a metasearch backend and generic webpage
// scraping through a CLI, with optional LLM-based summarization. Pages are
// fetched over HTTP, reduced to their main content by a profile-aware
// extraction heuristic, and rendered as markdown.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmltomarkdown/, openai/).
package metascrape
