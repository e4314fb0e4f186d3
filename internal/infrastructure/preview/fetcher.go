// Package preview fetches page metadata for printed link URLs.
package preview

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"contextwatch/internal/domain"
	"contextwatch/internal/ports"
)

// Fetcher downloads a linked page and extracts its title and description.
type Fetcher struct {
	client *http.Client
}

var _ ports.PreviewFetcher = (*Fetcher)(nil)

// NewFetcher wires an HTTP client; a nil client gets a 10 second timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{client: client}
}

// Fetch loads the page behind linkURL and pulls out preview metadata.
func (f *Fetcher) Fetch(ctx context.Context, linkURL string) (domain.Preview, error) {
	if linkURL == "" {
		return domain.Preview{}, fmt.Errorf("empty link url")
	}

	doc, err := f.fetchDocument(ctx, linkURL)
	if err != nil {
		return domain.Preview{}, fmt.Errorf("fetch %s: %w", linkURL, err)
	}

	preview := domain.Preview{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if preview.Title == "" {
		if title, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
			preview.Title = strings.TrimSpace(title)
		}
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		preview.Description = strings.TrimSpace(desc)
	}
	if preview.Description == "" {
		if desc, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
			preview.Description = strings.TrimSpace(desc)
		}
	}

	return preview, nil
}

func (f *Fetcher) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "contextwatch/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}
