package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"testing"
)

// ============================================================================
// Summarize Benchmarks
// ============================================================================

// BenchmarkSummarize benchmarks the full pass over a small upload.
func BenchmarkSummarize(b *testing.B) {
	data := generateTestCSV(100, 5)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Summarize(data)
	}
}

// BenchmarkSummarize_Large benchmarks a larger upload with many regions.
func BenchmarkSummarize_Large(b *testing.B) {
	data := generateTestCSV(50000, 200)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Summarize(data)
	}
}

// BenchmarkSummarize_RegionCardinality shows how distinct regions affect cost.
func BenchmarkSummarize_RegionCardinality(b *testing.B) {
	for _, regions := range []int{1, 100, 10000} {
		data := generateTestCSV(20000, regions)
		b.Run(fmt.Sprintf("regions_%d", regions), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Summarize(data)
			}
		})
	}
}

// BenchmarkCountRegionsParallel benchmarks concurrent analyses.
func BenchmarkCountRegionsParallel(b *testing.B) {
	data := generateTestCSV(1000, 20)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			CountRegions(context.Background(), bytes.NewReader(data))
		}
	})
}

// ============================================================================
// Input Cleaning Benchmarks
// ============================================================================

// BenchmarkInputReader_LargeFile benchmarks BOM and UTF-8 cleaning alone.
func BenchmarkInputReader_LargeFile(b *testing.B) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, bytes.Repeat([]byte("Zürich,data line\n"), 5000)...)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		io.Copy(io.Discard, NewInputReader(bytes.NewReader(data)))
	}
}

// BenchmarkCSVParsing_Comparison compares raw csv reads with the row reader.
func BenchmarkCSVParsing_Comparison(b *testing.B) {
	data := generateTestCSV(500, 10)

	b.Run("ReadAll", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			csv.NewReader(bytes.NewReader(data)).ReadAll()
		}
	})

	b.Run("RowReader", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			rows, err := NewRowReader(bytes.NewReader(data))
			if err != nil {
				b.Fatal(err)
			}
			for {
				if _, err := rows.Next(); err != nil {
					break
				}
			}
		}
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

// generateTestCSV generates CSV data with the given number of rows spread
// round-robin over distinct regions.
func generateTestCSV(rows, regions int) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"timestamp", "user", "region", "ip"})

	for i := 0; i < rows; i++ {
		w.Write([]string{
			"2024-01-15T10:00:00Z",
			"user@example.com",
			fmt.Sprintf("region-%d", i%regions),
			"10.0.0.1",
		})
	}
	w.Flush()

	return buf.Bytes()
}
