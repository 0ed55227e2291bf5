package core

import "time"

// Row is one data record from an uploaded CSV, reduced to the columns the
// analyzer cares about.
type Row struct {
	Line      int    // 1-based line where the record starts (header is line 1)
	Region    string // Exact text of the region field
	HasRegion bool   // False when the record is too short to contain the region field
}

// RegionSummary is the aggregate for one distinct region.
type RegionSummary struct {
	Region   string   `json:"region"`
	Count    int      `json:"count"`
	Severity Severity `json:"severity"`
	AvgScore float64  `json:"avgScore"` // Always 0; scoring is not computed yet
}

// SeverityBreakdown counts regions per severity tier.
type SeverityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Analysis is the result of one completed analysis run.
type Analysis struct {
	ID        string
	FileName  string
	Regions   []RegionSummary
	Breakdown SeverityBreakdown
	Rows      int   // Data rows read (excluding the header)
	Unkeyed   int   // Rows without a region field; not counted in any region
	Bytes     int64 // Raw input bytes consumed
	Duration  time.Duration
}

// Report is the JSON document returned for an analysis. RegionalData is
// never nil so it always encodes as an array.
type Report struct {
	RegionalData      []RegionSummary   `json:"regionalData"`
	SeverityBreakdown SeverityBreakdown `json:"severityBreakdown"`
	TotalRows         int               `json:"totalRows"`
}

// Report converts the analysis to its response document.
func (a *Analysis) Report() Report {
	return newReport(a.Regions, a.Rows)
}

// Report converts the tally to a response document.
func (t *RegionTally) Report() Report {
	return newReport(t.Summaries(), t.Rows)
}

func newReport(regions []RegionSummary, rows int) Report {
	if regions == nil {
		regions = []RegionSummary{}
	}
	return Report{
		RegionalData:      regions,
		SeverityBreakdown: BreakdownOf(regions),
		TotalRows:         rows,
	}
}
