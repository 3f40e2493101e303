package metrics

import (
	"fmt"
	"strings"
	"time"
)

// Period is a trailing reporting window.
type Period string

const (
	PeriodAll     Period = "all"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
)

// ParsePeriod accepts the period names and their day counts ("7", "30", "90").
// An empty string means PeriodAll.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return PeriodAll, nil
	case "week", "7":
		return PeriodWeek, nil
	case "month", "30":
		return PeriodMonth, nil
	case "quarter", "90":
		return PeriodQuarter, nil
	}
	return "", fmt.Errorf("unknown period %q (want all, week, month or quarter)", s)
}

// Days returns the window length, or 0 for PeriodAll.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodQuarter:
		return 90
	}
	return 0
}

// Filter keeps the records whose date lies at most Days() days before now.
// Records with an unparseable date are only kept for PeriodAll.
func Filter(records []Record, p Period, now time.Time) []Record {
	days := p.Days()
	out := make([]Record, 0, len(records))
	if days == 0 {
		return append(out, records...)
	}

	limit := time.Duration(days) * 24 * time.Hour
	for _, r := range records {
		t, ok := ParseDate(r.Fecha)
		if !ok {
			continue
		}
		if now.Sub(t) <= limit {
			out = append(out, r)
		}
	}
	return out
}
