// Package core provides the region analysis logic, independent of any
// transport. It can be used by the HTTP server, the CLI or tests without
// modification.
//
// # Summarizing
//
// [Summarize] and [SummarizeReader] read a CSV with a header row, group the
// data rows by the exact text of their "region" column and return one
// [RegionSummary] per distinct region, sorted by region:
//
//	summaries, err := core.Summarize([]byte("region\nEU\nEU\nUS\n"))
//	// [{EU 2 Low 0} {US 1 Low 0}]
//
// Rows are streamed, so memory grows with the number of distinct regions
// rather than the file size. A row too short to hold the region field is
// left out of every count; a present but empty field counts under "".
//
// # Severity
//
// Each region's count is classified by [ClassifySeverity]:
//
//   - High: more than 1000 rows
//   - Medium: more than 500 rows
//   - Low: everything else
//
// # Errors
//
// Input that cannot be parsed, is not UTF-8, has no header, or lacks a region
// column fails with a [*ParseError]; no partial result is returned. [MapError] turns any
// error into a [UserMessage] with a support code (VAL004, FILE002, ...).
//
// # Service
//
// [Service] wraps the summarizer for servers: it bounds concurrent analyses
// with an [AnalysisLimiter], applies a timeout, tags each run with an ID and
// logs the outcome.
package core
