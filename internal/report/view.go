package report

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"brunnhilde/internal/stats"
)

const notAvailable = "n/a"

var counts = message.NewPrinter(language.English)

// Provenance records where a report came from and how it was produced.
type Provenance struct {
	Source            string
	Identifier        string
	RunID             string
	Started           time.Time
	BrunnhildeVersion string
	SiegfriedVersion  string
	Command           string
}

// StartedText formats the scan start time for display.
func (p Provenance) StartedText() string {
	if p.Started.IsZero() {
		return notAvailable
	}
	return p.Started.Format("2006-01-02 15:04:05 MST")
}

// SummaryView is the display form of a stats.Summary.
type SummaryView struct {
	TotalFiles               string
	TotalSize                string
	Years                    string
	Earliest                 string
	Latest                   string
	DistinctFiles            string
	DistinctDuplicatedHashes string
	DuplicateCopies          string
	EmptyFiles               string
	FormatCount              string
	UnidentifiedFiles        string
	Warnings                 string
	Errors                   string
	UnparsedYears            []string
	UnparsedDates            []string
}

// NewSummaryView formats s for display. A negative totalBytes leaves the
// size blank.
func NewSummaryView(s *stats.Summary, totalBytes int64) SummaryView {
	v := SummaryView{
		TotalFiles:               formatCount(s.TotalFiles),
		Years:                    notAvailable,
		Earliest:                 notAvailable,
		Latest:                   notAvailable,
		DistinctFiles:            formatCount(s.DistinctFiles),
		DistinctDuplicatedHashes: formatCount(s.DistinctDuplicatedHashes),
		DuplicateCopies:          formatCount(s.DuplicateCopies),
		EmptyFiles:               formatCount(s.EmptyFiles),
		FormatCount:              formatCount(s.FormatCount),
		UnidentifiedFiles:        formatCount(s.UnidentifiedFiles),
		Warnings:                 formatCount(s.Warnings),
		Errors:                   formatCount(s.Errors),
		UnparsedYears:            s.UnparsedYears,
		UnparsedDates:            s.UnparsedDates,
	}
	if totalBytes >= 0 {
		v.TotalSize = humanize.Bytes(uint64(totalBytes))
	}
	if s.Years.Valid {
		v.Years = fmt.Sprintf("%d - %d", s.Years.Begin, s.Years.End)
	}
	if s.Dates.Valid {
		v.Earliest = s.Dates.EarliestRaw
		v.Latest = s.Dates.LatestRaw
	}
	return v
}

func formatCount(n int) string {
	return counts.Sprintf("%d", n)
}
