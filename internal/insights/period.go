package insights

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Period is a backward-looking reporting window ending at "today".
type Period int

const (
	PeriodWeek Period = iota
	PeriodMonth
	PeriodThreeMonths
	PeriodYear
)

// DefaultPeriod is used when a caller does not pick one.
const DefaultPeriod = PeriodMonth

type periodInfo struct {
	name      string
	label     string
	fullLabel string
	days      int
}

var periods = map[Period]periodInfo{
	PeriodWeek:        {"week", "7D", "Past 7 Days", 7},
	PeriodMonth:       {"month", "30D", "Past 30 Days", 30},
	PeriodThreeMonths: {"three_months", "90D", "Past 90 Days", 90},
	PeriodYear:        {"year", "1Y", "Past Year", 365},
}

// Days is the number of calendar days covered by the window, today included.
func (p Period) Days() int { return periods[p].days }

func (p Period) Label() string { return periods[p].label }

func (p Period) FullLabel() string { return periods[p].fullLabel }

func (p Period) String() string { return periods[p].name }

// ParsePeriod accepts either the short label ("30D") or the name ("month").
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	for p, info := range periods {
		if strings.EqualFold(s, info.label) || strings.EqualFold(s, info.name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown period %q", s)
}

func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"label":      p.Label(),
		"full_label": p.FullLabel(),
		"days":       p.Days(),
	})
}
