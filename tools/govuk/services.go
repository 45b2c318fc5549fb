package govuk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rickchristie/reagent/config"
)

// ServicesToolName is the action name of [ServicesTool].
const ServicesToolName = "search_govuk_services"

// DefaultTopServices is how many services are listed per search.
const DefaultTopServices = 5

// Service is one entry of the GOV.UK services finder.
type Service struct {
	Title       string
	Description string
	Link        string
	SubPages    []Service
}

// ServicesTool searches the GOV.UK services finder, e.g. "renew passport".
type ServicesTool struct {
	client  *http.Client
	baseURL string
	topN    int
}

// NewServicesTool creates the services tool.
func NewServicesTool(cfg config.SearchConfig, client *http.Client) *ServicesTool {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &ServicesTool{
		client:  client,
		baseURL: strings.TrimRight(cfg.GovUKURL, "/"),
		topN:    DefaultTopServices,
	}
}

// WithTopN sets the number of services listed.
func (t *ServicesTool) WithTopN(n int) *ServicesTool {
	t.topN = n
	return t
}

func (t *ServicesTool) Name() string { return ServicesToolName }

func (t *ServicesTool) Description() string {
	return "Finds GOV.UK online services (applying, registering, renewing, paying). " +
		"Action Input is a few keywords."
}

// Call searches the first page of results.
func (t *ServicesTool) Call(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("search query is empty")
	}
	services, err := t.Search(ctx, query, 1)
	if err != nil {
		return "", err
	}
	if len(services) == 0 {
		return NoResults, nil
	}
	return FormatServices(query, services), nil
}

// Search returns up to topN services from the given results page.
func (t *ServicesTool) Search(ctx context.Context, query string, page int) ([]Service, error) {
	params := url.Values{}
	params.Set("keywords", query)
	params.Set("order", "relevance")
	params.Set("page", fmt.Sprint(page))

	resp, err := get(ctx, t.client, t.baseURL+"/search/services?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search services: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse services page: %w", err)
	}

	var services []Service
	doc.Find("li.gem-c-document-list__item").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if len(services) >= t.topN {
			return false
		}
		svc := Service{Title: "No title", Description: "No description"}
		if a := item.Find("a.govuk-link").First(); a.Length() > 0 {
			svc.Title = strings.TrimSpace(a.Text())
			svc.Link = t.absolute(a.AttrOr("href", ""))
		}
		if p := item.Find("p.gem-c-document-list__item-description").First(); p.Length() > 0 {
			svc.Description = strings.TrimSpace(p.Text())
		}
		item.Find("li.gem-c-document-list-child").Each(func(_ int, sub *goquery.Selection) {
			a, p := sub.Find("a").First(), sub.Find("p").First()
			if a.Length() == 0 || p.Length() == 0 {
				return
			}
			svc.SubPages = append(svc.SubPages, Service{
				Title:       strings.TrimSpace(a.Text()),
				Description: strings.TrimSpace(p.Text()),
				Link:        t.absolute(a.AttrOr("href", "")),
			})
		})
		services = append(services, svc)
		return true
	})
	return services, nil
}

func (t *ServicesTool) absolute(href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return t.baseURL + href
}

// FormatServices renders services as a numbered list with indented sub-pages.
func FormatServices(query string, services []Service) string {
	lines := []string{fmt.Sprintf("Search results for '%s':\n", query)}
	for i, svc := range services {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, svc.Title),
			"   "+svc.Description,
		)
		if svc.Link != "" {
			lines = append(lines, "   "+svc.Link)
		}
		if len(svc.SubPages) > 0 {
			lines = append(lines, "\n   Sub-pages:")
			for _, sub := range svc.SubPages {
				lines = append(lines,
					"   - "+sub.Title,
					"     "+sub.Description,
					"     "+sub.Link+"\n",
				)
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
