package core

// summarize.go is the region aggregation pass: rows are streamed once,
// tallied per exact region text, and emitted as severity-classified
// summaries sorted by region. Memory grows with the number of distinct
// regions, not with the number of rows.

import (
	"bytes"
	"context"
	"io"
	"sort"
)

// ContextCheckInterval is how often (in rows) cancellation is checked.
var ContextCheckInterval = 1000

// RegionTally accumulates per-region row counts.
type RegionTally struct {
	counts  map[string]int
	Rows    int // Data rows seen
	Unkeyed int // Rows with no region field; excluded from counts
}

// NewRegionTally returns an empty tally.
func NewRegionTally() *RegionTally {
	return &RegionTally{counts: make(map[string]int)}
}

// Add records one row. Rows without a region field only bump Unkeyed;
// an empty region string is a key like any other.
func (t *RegionTally) Add(row Row) {
	t.Rows++
	if !row.HasRegion {
		t.Unkeyed++
		return
	}
	t.counts[row.Region]++
}

// Len returns the number of distinct regions seen.
func (t *RegionTally) Len() int {
	return len(t.counts)
}

// Summaries returns one summary per distinct region, sorted by region.
// The result is never nil.
func (t *RegionTally) Summaries() []RegionSummary {
	out := make([]RegionSummary, 0, len(t.counts))
	for region, count := range t.counts {
		out = append(out, RegionSummary{
			Region:   region,
			Count:    count,
			Severity: ClassifySeverity(count),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}

// Breakdown counts regions per severity tier.
func (t *RegionTally) Breakdown() SeverityBreakdown {
	return BreakdownOf(t.Summaries())
}

// BreakdownOf counts the given summaries per severity tier.
func BreakdownOf(summaries []RegionSummary) SeverityBreakdown {
	var b SeverityBreakdown
	for _, s := range summaries {
		switch s.Severity {
		case SeverityHigh:
			b.High++
		case SeverityMedium:
			b.Medium++
		default:
			b.Low++
		}
	}
	return b
}

// CountRegions streams r through NewInputReader and tallies every row.
// On failure it returns a nil tally: a *ParseError for bad input, or
// ctx.Err() when cancelled.
func CountRegions(ctx context.Context, r io.Reader) (*RegionTally, error) {
	return countRegions(ctx, NewInputReader(r))
}

// countRegions tallies rows from input that has already been cleaned.
func countRegions(ctx context.Context, in io.Reader) (*RegionTally, error) {
	rows, err := NewRowReader(in)
	if err != nil {
		return nil, err
	}

	tally := NewRegionTally()
	for {
		if tally.Rows%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := rows.Next()
		if err == io.EOF {
			return tally, nil
		}
		if err != nil {
			return nil, err
		}
		tally.Add(row)
	}
}

// SummarizeReader aggregates the CSV read from r by region.
func SummarizeReader(ctx context.Context, r io.Reader) ([]RegionSummary, error) {
	tally, err := CountRegions(ctx, r)
	if err != nil {
		return nil, err
	}
	return tally.Summaries(), nil
}

// Summarize aggregates CSV bytes by region. It fails with a *ParseError when
// data is not valid CSV or has no region column.
func Summarize(data []byte) ([]RegionSummary, error) {
	return SummarizeReader(context.Background(), bytes.NewReader(data))
}
