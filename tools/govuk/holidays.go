package govuk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/config"
	"github.com/rickchristie/reagent/schema"
	"github.com/rickchristie/reagent/toolchain"
	"gopkg.in/yaml.v3"
)

// BankHolidaysToolName is the action name of the bank holidays tool.
const BankHolidaysToolName = "uk_bank_holidays"

// HolidayQuery is the Action Input of the bank holidays tool. Zero values
// mean no filter.
type HolidayQuery struct {
	Region   string `json:"region"`
	Year     int    `json:"year"`
	Upcoming bool   `json:"upcoming"`
}

// Holiday is one bank holiday.
type Holiday struct {
	Title string
	Date  time.Time
}

type feedEvent struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type feedDivision struct {
	Events []feedEvent `json:"events"`
}

// BankHolidays reads the GOV.UK bank holiday feed.
type BankHolidays struct {
	client *http.Client
	url    string
	clock  reagent.Clock
}

// NewBankHolidays creates a feed reader. A nil clock means the system clock.
func NewBankHolidays(cfg config.SearchConfig, client *http.Client, clock reagent.Clock) *BankHolidays {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	if clock == nil {
		clock = reagent.SystemClock{}
	}
	return &BankHolidays{
		client: client,
		url:    strings.TrimRight(cfg.GovUKURL, "/") + "/bank-holidays.json",
		clock:  clock,
	}
}

// Fetch returns every holiday keyed by region, in feed order.
func (b *BankHolidays) Fetch(ctx context.Context) (map[string][]Holiday, error) {
	resp, err := get(ctx, b.client, b.url)
	if err != nil {
		return nil, fmt.Errorf("fetch bank holidays: %w", err)
	}
	defer resp.Body.Close()

	var feed map[string]feedDivision
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode bank holidays: %w", err)
	}

	out := make(map[string][]Holiday, len(feed))
	for region, div := range feed {
		for _, ev := range div.Events {
			date, err := time.Parse(time.DateOnly, ev.Date)
			if err != nil {
				return nil, fmt.Errorf("bank holiday %q: %w", ev.Title, err)
			}
			out[region] = append(out[region], Holiday{Title: ev.Title, Date: date})
		}
	}
	return out, nil
}

type yearEntry struct {
	Year     string         `yaml:"year"`
	Holidays []holidayEntry `yaml:"holidays"`
}

type holidayEntry struct {
	Date  string `yaml:"date"`
	Title string `yaml:"title"`
	When  string `yaml:"when,omitempty"`
}

// Lookup fetches the feed and renders the holidays matching q as YAML,
// grouped by region and then year. Nothing matching yields "".
func (b *BankHolidays) Lookup(ctx context.Context, q HolidayQuery) (string, error) {
	all, err := b.Fetch(ctx)
	if err != nil {
		return "", err
	}

	now := b.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	grouped := make(map[string][]yearEntry)
	for region, holidays := range all {
		if q.Region != "" && region != q.Region {
			continue
		}
		byYear := make(map[string][]holidayEntry)
		for _, h := range holidays {
			if q.Year != 0 && h.Date.Year() != q.Year {
				continue
			}
			if q.Upcoming && h.Date.Before(today) {
				continue
			}
			entry := holidayEntry{Date: h.Date.Format(time.DateOnly), Title: h.Title}
			if q.Upcoming {
				entry.When = b.clock.RelativeDate(h.Date)
			}
			year := fmt.Sprint(h.Date.Year())
			byYear[year] = append(byYear[year], entry)
		}
		if len(byYear) == 0 {
			continue
		}
		years := make([]yearEntry, 0, len(byYear))
		for year, entries := range byYear {
			years = append(years, yearEntry{Year: year, Holidays: entries})
		}
		sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })
		grouped[region] = years
	}
	if len(grouped) == 0 {
		return "", nil
	}

	out, err := yaml.Marshal(grouped)
	if err != nil {
		return "", fmt.Errorf("render bank holidays: %w", err)
	}
	return string(out), nil
}

var holidaySchema = schema.Object(map[string]*schema.Property{
	"region":   schema.String("Only this region").Enum("england-and-wales", "scotland", "northern-ireland"),
	"year":     schema.Integer("Only this calendar year").Min(1900),
	"upcoming": schema.Boolean("Only holidays from today onwards"),
})

// NewBankHolidaysTool wraps b as the uk_bank_holidays tool.
func NewBankHolidaysTool(b *BankHolidays) *toolchain.StructuredTool[HolidayQuery] {
	return toolchain.NewStructuredTool(
		BankHolidaysToolName,
		"Lists official UK bank holidays by region and year.",
		holidaySchema,
		b.Lookup,
	)
}
