package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// RegionColumn is the header name the analyzer groups by.
const RegionColumn = "region"

// RowReader streams Rows from CSV input. The header is consumed by
// NewRowReader; each Next call decodes one record.
//
// Records may be wider or narrower than the header. Quoting is strict: a bare
// or unterminated quote fails the read.
type RowReader struct {
	r         *csv.Reader
	regionIdx int
}

// NewRowReader reads the header from r and locates the region column.
// It fails with a *ParseError when r is empty, malformed or lacks the column.
func NewRowReader(r io.Reader) (*RowReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: ErrEmptyInput}
	}
	if err != nil {
		return nil, wrapReadError(err)
	}

	idx := regionIndex(header)
	if idx < 0 {
		return nil, &ParseError{Line: 1, Err: ErrMissingRegionColumn}
	}

	return &RowReader{r: cr, regionIdx: idx}, nil
}

// Next returns the next data row, or io.EOF when the input is exhausted.
func (rr *RowReader) Next() (Row, error) {
	record, err := rr.r.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, wrapReadError(err)
	}

	line, _ := rr.r.FieldPos(0)
	row := Row{Line: line}
	if rr.regionIdx < len(record) {
		row.Region = record[rr.regionIdx]
		row.HasRegion = true
	}
	return row, nil
}

// regionIndex returns the position of the first header cell exactly equal to
// RegionColumn, or -1. Padded names such as " region " do not match.
func regionIndex(header []string) int {
	for i, h := range header {
		if h == RegionColumn {
			return i
		}
	}
	return -1
}

// wrapReadError turns CSV syntax errors into a *ParseError and passes through
// ParseErrors raised by NewInputReader. Failures of the underlying reader (a
// dropped connection, an oversized body) are not parse errors and keep their
// identity for errors.Is/As.
func wrapReadError(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: err}
	}
	return fmt.Errorf("read csv: %w", err)
}
