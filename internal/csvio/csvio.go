// Package csvio reads CSV input into rows of text and writes rendered output.
//
// It sits outside the grid: grid.Parse takes the [][]string produced here,
// and the text produced by grid rendering is written back with WriteFile.
//
// Input handling mirrors what spreadsheet exports tend to contain:
//
//   - a UTF-8 byte order mark from Windows tools is dropped
//   - invalid UTF-8 bytes are replaced with '?'
//   - quoted fields, CRLF line endings and embedded newlines are accepted
//   - rows of different lengths are returned as-is so the grid can reject them
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	// ErrFileTooLarge is returned by ReadFile when the input exceeds maxSize.
	ErrFileTooLarge = errors.New("file too large")
	// ErrEmptyFile is returned when the input holds no records.
	ErrEmptyFile = errors.New("empty file")
	// ErrInvalidCSV wraps parse failures from encoding/csv.
	ErrInvalidCSV = errors.New("invalid csv")
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Read parses CSV from r.
func Read(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(skipBOM(r))
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return parse(data)
}

// ReadFile parses the CSV file at path. Files larger than maxSize bytes are
// rejected before parsing; maxSize <= 0 disables the check.
func ReadFile(path string, maxSize int64) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if maxSize > 0 {
		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		if info.Size() > maxSize {
			return nil, fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrFileTooLarge, info.Size(), maxSize)
		}
	}

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// LimitReader returns a reader that fails with ErrFileTooLarge once more than
// maxSize bytes have been read.
func LimitReader(r io.Reader, maxSize int64) io.Reader {
	return &limitedReader{r: r, remaining: maxSize}
}

type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, ErrFileTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, ErrFileTooLarge
	}
	return n, err
}

func parse(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(sanitizeUTF8(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		_, _ = br.Discard(len(bom))
	}
	return br
}

// sanitizeUTF8 replaces each invalid byte with '?'. Valid input is returned
// unchanged.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			out = append(out, '?')
		} else {
			out = append(out, data[:size]...)
		}
		data = data[size:]
	}
	return out
}

// Encode writes rows as RFC 4180 CSV, quoting fields where needed, with a
// trailing newline.
//
// Read returns the same rows for valid UTF-8 cells with one exception:
// encoding/csv folds a "\r\n" inside a quoted field to "\n".
func Encode(rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for i, row := range rows {
		// encoding/csv writes a lone empty field as a blank line, which
		// readers skip. A leading BOM would be stripped by Read unless the
		// field is quoted.
		if (len(row) == 1 && row[0] == "") || (i == 0 && len(row) > 0 && bytes.HasPrefix([]byte(row[0]), bom)) {
			w.Flush()
			writeQuoted(&buf, row)
			continue
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("encoding csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("encoding csv: %w", err)
	}
	return buf.String(), nil
}

// writeQuoted writes row with every field quoted.
func writeQuoted(buf *bytes.Buffer, row []string) {
	for i, field := range row {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}

// WriteFile writes text to path, creating or truncating it.
func WriteFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
