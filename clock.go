package reagent

import (
	"fmt"
	"time"
)

// Clock supplies the current date to prompts and date-aware tools.
//
// Prompt templates reach it through the .Time field:
//
//	Today is {{.Time.Today}} ({{.Time.Weekday}}).
type Clock interface {
	Now() time.Time

	// Today returns today's date as YYYY-MM-DD.
	Today() string

	// Weekday returns the day name, e.g. "Monday".
	Weekday() string

	// RelativeDate describes t relative to today: "today", "tomorrow",
	// "in 3 days", "2 days ago".
	RelativeDate(t time.Time) string
}

// SystemClock reads the system time.
type SystemClock struct{}

func (SystemClock) Now() time.Time                    { return time.Now() }
func (c SystemClock) Today() string                   { return c.Now().Format(time.DateOnly) }
func (c SystemClock) Weekday() string                 { return c.Now().Weekday().String() }
func (c SystemClock) RelativeDate(t time.Time) string { return relativeDate(c.Now(), t) }

// FixedClock always reports the same instant. Used in tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time                  { return c.T }
func (c FixedClock) Today() string                   { return c.T.Format(time.DateOnly) }
func (c FixedClock) Weekday() string                 { return c.T.Weekday().String() }
func (c FixedClock) RelativeDate(t time.Time) string { return relativeDate(c.T, t) }

var (
	_ Clock = SystemClock{}
	_ Clock = FixedClock{}
)

func relativeDate(now, t time.Time) string {
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tDate := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	days := int(tDate.Sub(nowDate).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}
