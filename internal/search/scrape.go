package search

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/andrehq/vidnotes/internal/fetch"
)

// DefaultScrapeBaseURL is the HTML (non-JavaScript) results endpoint used
// when no Custom Search credentials are configured.
const DefaultScrapeBaseURL = "https://html.duckduckgo.com/html/"

// ScrapeOracle answers queries by fetching a search results page and parsing
// its snippets with goquery. It needs no API key but is noisier than the
// Custom Search API.
type ScrapeOracle struct {
	BaseURL    string
	UseBrowser bool // render the results page in a headless browser first
	Verbose    bool
	Options    *fetch.Options
}

// NewScrapeOracle creates a scraper against the default results endpoint.
func NewScrapeOracle(useBrowser bool) *ScrapeOracle {
	return &ScrapeOracle{
		BaseURL:    DefaultScrapeBaseURL,
		UseBrowser: useBrowser,
	}
}

// Search fetches the results page for the query and extracts hits.
func (o *ScrapeOracle) Search(ctx context.Context, query string) ([]Hit, error) {
	queryURL := o.BaseURL + "?q=" + url.QueryEscape(query)

	html, err := o.fetchPage(ctx, queryURL)
	if err != nil {
		return nil, &Error{Query: query, Message: "results page fetch failed", Cause: err}
	}

	hits, err := parseResultsPage(html)
	if err != nil {
		return nil, &Error{Query: query, Message: "results page parse failed", Cause: err}
	}
	return hits, nil
}

func (o *ScrapeOracle) fetchPage(ctx context.Context, queryURL string) (string, error) {
	result, err := fetch.URL(ctx, queryURL, o.Options)
	if err == nil {
		text, textErr := fetch.VisibleText(result.HTML())
		if textErr == nil && !fetch.ShouldUseBrowser(text) {
			return result.HTML(), nil
		}
	}

	// Thin or failed response: optionally retry with a rendered page.
	if o.UseBrowser {
		return fetch.WithBrowser(ctx, queryURL, 30*time.Second, o.Verbose)
	}
	if err != nil {
		return "", err
	}
	return result.HTML(), nil
}

// parseResultsPage extracts result snippets from a search results page.
func parseResultsPage(html string) ([]Hit, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var hits []Hit
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		anchor := s.Find("a.result__a").First()
		title := strings.TrimSpace(anchor.Text())
		link, _ := anchor.Attr("href")
		snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text())

		if title == "" && snippet == "" {
			return true
		}
		hits = append(hits, Hit{Title: title, Link: link, Snippet: snippet})
		return len(hits) < MaxHits
	})

	return hits, nil
}
