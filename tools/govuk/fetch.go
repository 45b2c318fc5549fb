package govuk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

const userAgent = "reagent/1.0 (+https://github.com/rickchristie/reagent)"

// get performs a GET request and fails on any non-200 status.
func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	return resp, nil
}

// StatusError is returned for non-200 responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

// PageFetcher downloads pages and extracts the text of their <main> element.
type PageFetcher struct {
	client      *http.Client
	concurrency int
	logger      *slog.Logger
}

// NewPageFetcher creates a fetcher running at most concurrency requests at
// once. A concurrency below 1 means 1.
func NewPageFetcher(client *http.Client, concurrency int) *PageFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &PageFetcher{client: client, concurrency: concurrency, logger: slog.Default()}
}

// WithLogger sets the logger that records pages FetchAll had to skip.
func (f *PageFetcher) WithLogger(logger *slog.Logger) *PageFetcher {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// Fetch returns the <main> text of the page at url.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := get(ctx, f.client, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return MainText(resp.Body)
}

// FetchAll fetches every url concurrently and returns the text keyed by url.
// A page that fails to load, or has no <main>, maps to "" and the failure is
// logged at warn level.
func (f *PageFetcher) FetchAll(ctx context.Context, urls []string) map[string]string {
	out := make(map[string]string, len(urls))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for _, u := range urls {
		g.Go(func() error {
			text, err := f.Fetch(ctx, u)
			if err != nil {
				f.logger.WarnContext(ctx, "page fetch failed",
					slog.String("url", u), slog.Any("error", err))
				text = ""
			}
			mu.Lock()
			out[u] = text
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// ErrNoMain is returned by [MainText] for documents without a <main> element.
var ErrNoMain = errors.New("main content not found")

// MainText parses an HTML document and returns the text of its first <main>
// element: every non-blank text node, trimmed and joined by single spaces.
// Script and style content is skipped.
func MainText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	main := doc.Find("main").First()
	if main.Length() == 0 {
		return "", ErrNoMain
	}
	var parts []string
	collectText(main, &parts)
	return strings.Join(parts, " "), nil
}

func collectText(s *goquery.Selection, parts *[]string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			if t := strings.TrimSpace(c.Text()); t != "" {
				*parts = append(*parts, t)
			}
		case "script", "style", "#comment":
		default:
			collectText(c, parts)
		}
	})
}
