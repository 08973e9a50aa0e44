package stats

import (
	"sort"
	"strings"

	"github.com/araddon/dateparse"
)

func yearRange(values []string) (YearRange, []string) {
	var (
		r        YearRange
		unparsed []string
	)
	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		year, ok := parseYear(v)
		if !ok {
			unparsed = append(unparsed, raw)
			continue
		}
		if !r.Valid || year < r.Begin {
			r.Begin = year
		}
		if !r.Valid || year > r.End {
			r.End = year
		}
		r.Valid = true
	}
	sort.Strings(unparsed)
	return r, unparsed
}

// parseYear accepts exactly four ASCII digits. Year 0 is a placeholder
// timestamp, not a real date.
func parseYear(v string) (int, bool) {
	if len(v) != 4 {
		return 0, false
	}
	year := 0
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		year = year*10 + int(c-'0')
	}
	return year, year > 0
}

// dateRange parses each value instead of comparing strings so mixed
// timestamp layouts still order chronologically.
func dateRange(values []string) (DateRange, []string) {
	var (
		r        DateRange
		unparsed []string
	)
	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		ts, err := dateparse.ParseAny(v)
		if err != nil {
			unparsed = append(unparsed, raw)
			continue
		}
		if !r.Valid || ts.Before(r.Earliest) {
			r.Earliest, r.EarliestRaw = ts, raw
		}
		if !r.Valid || ts.After(r.Latest) {
			r.Latest, r.LatestRaw = ts, raw
		}
		r.Valid = true
	}
	sort.Strings(unparsed)
	return r, unparsed
}
