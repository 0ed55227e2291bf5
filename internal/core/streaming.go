package core

// streaming.go prepares raw upload bytes for the CSV parser without buffering
// the whole file:
//
//   - a leading UTF-8 BOM (0xEF 0xBB 0xBF, common in Excel exports) is dropped
//   - input must be valid UTF-8; the first invalid byte fails the read with a
//     *ParseError wrapping ErrInvalidEncoding, so region keys are never altered
//   - raw bytes consumed are counted for logging
//
// Memory use is one fixed read buffer regardless of input size.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

// inputBufferSize is the read-ahead buffer used between the upload and the parser.
const inputBufferSize = 64 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// InputReader is an io.Reader that validates CSV input on the fly.
type InputReader struct {
	src     *bufio.Reader
	counter *countingReader
	bomDone bool
	line    int    // 1-based line of the next byte handed out
	pending []byte // Encoded rune bytes that did not fit in the caller's buffer
	err     error  // Deferred read error, returned once pending data is drained
}

// NewInputReader wraps r with BOM stripping, UTF-8 validation and byte counting.
func NewInputReader(r io.Reader) *InputReader {
	counter := &countingReader{r: r}
	return &InputReader{
		src:     bufio.NewReaderSize(counter, inputBufferSize),
		counter: counter,
		line:    1,
	}
}

// BytesRead returns the number of raw bytes pulled from the underlying reader.
func (in *InputReader) BytesRead() int64 {
	return in.counter.n
}

// Read implements io.Reader. Valid input passes through unchanged.
func (in *InputReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if !in.bomDone {
		in.bomDone = true
		if head, err := in.src.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = in.src.Discard(len(utf8BOM))
		}
	}

	n := copy(p, in.pending)
	in.pending = in.pending[n:]
	if n == 0 && in.err != nil {
		return 0, in.err
	}

	for n < len(p) && in.err == nil {
		r, size, err := in.src.ReadRune()
		if err != nil {
			in.err = err
			break
		}

		if r == utf8.RuneError && size == 1 {
			in.err = &ParseError{Line: in.line, Err: ErrInvalidEncoding}
			break
		}
		if r == '\n' {
			in.line++
		}

		var buf [utf8.UTFMax]byte
		w := utf8.EncodeRune(buf[:], r)
		c := copy(p[n:], buf[:w])
		n += c
		if c < w {
			in.pending = append(in.pending[:0], buf[c:w]...)
		}

		// Hand back what we have once the buffered input is used up, rather
		// than blocking on the network for more.
		if in.src.Buffered() == 0 {
			break
		}
	}

	if n == 0 && in.err != nil {
		return 0, in.err
	}
	return n, nil
}

// countingReader tracks raw bytes read from the wrapped reader.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
