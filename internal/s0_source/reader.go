package s0_source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is one decoded CSV file. Column lookup is case-insensitive.
type Table struct {
	Path     string
	Encoding string
	Header   []string
	Rows     [][]string

	index map[string]int
}

// candidate encodings, tried in order
var encodings = []struct {
	name    string
	decoder func() *encoding.Decoder
	strict  bool // only accepted when the decoded bytes are valid UTF-8
}{
	{"utf-8-sig", func() *encoding.Decoder { return unicode.UTF8BOM.NewDecoder() }, true},
	{"utf-8", func() *encoding.Decoder { return unicode.UTF8.NewDecoder() }, true},
	{"latin1", func() *encoding.Decoder { return charmap.ISO8859_1.NewDecoder() }, false},
}

// ReadTable reads a CSV file trying utf-8 (with or without BOM) before latin1
func ReadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeTable(path, raw)
}

// DecodeTable decodes raw CSV bytes with the encoding fallback chain
func DecodeTable(path string, raw []byte) (*Table, error) {
	var lastErr error
	for _, enc := range encodings {
		if enc.strict && !utf8.Valid(raw) {
			lastErr = fmt.Errorf("%s: invalid utf-8", enc.name)
			continue
		}
		if enc.name == "utf-8-sig" && !bytes.HasPrefix(raw, []byte("\xef\xbb\xbf")) {
			continue
		}

		decoded, _, err := transform.Bytes(enc.decoder(), raw)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", enc.name, err)
			continue
		}

		table, err := parseCSV(decoded)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", enc.name, err)
			continue
		}
		table.Path = path
		table.Encoding = enc.name
		return table, nil
	}
	return nil, fmt.Errorf("decode %s: %w", path, lastErr)
}

func parseCSV(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // 열 개수가 다른 행 허용
	r.TrimLeadingSpace = true
	r.LazyQuotes = true // 필드 중간의 따옴표 (Shaquille "Shaq" O'Neal) 허용

	header, err := r.Read()
	if err == io.EOF {
		return &Table{index: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	t := &Table{Header: make([]string, len(header)), index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.ReplaceAll(h, "\u00a0", " "))
		t.Header[i] = h
		key := strings.ToLower(h)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse row: %w", err)
		}
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Has reports whether any of the named columns exists
func (t *Table) Has(names ...string) bool {
	_, ok := t.column(names...)
	return ok
}

// Value returns the first present column among names, or "" when none exists
func (t *Table) Value(row []string, names ...string) string {
	idx, ok := t.column(names...)
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func (t *Table) column(names ...string) (int, bool) {
	for _, n := range names {
		if idx, ok := t.index[strings.ToLower(n)]; ok {
			return idx, true
		}
	}
	return 0, false
}
