// Package ingest turns heterogeneous spreadsheet and delimited-text exports
// into canonical transactions. Nothing here assumes a schema: the header row,
// column order, and the presence of optional fields all vary per source, so
// detection is keyword-driven and parsing is best-effort — a messy export
// degrades row by row instead of failing the whole import.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ParseError reports a file that could not be decoded as tabular data at all.
// Ambiguous layouts are not parse errors; they degrade to positional mapping.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Grid is a lazily-typed grid of raw cell values as read from one file.
// Rows may have uneven lengths.
type Grid struct {
	Source string
	Rows   [][]string
}

// ReadGrid decodes a spreadsheet or delimited-text file into a Grid. The
// format is chosen by file extension: .xlsx/.xlsm through excelize (first
// sheet, raw cell values so dates surface as serial numbers), everything else
// as delimited text with a sniffed delimiter.
func ReadGrid(name string, r io.Reader) (*Grid, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(name, r)
	default:
		return readDelimited(name, r)
	}
}

func readWorkbook(name string, r io.Reader) (*Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{File: name, Err: fmt.Errorf("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{File: name, Err: fmt.Errorf("sheet %q is empty", sheets[0])}
	}
	return &Grid{Source: name, Rows: rows}, nil
}

func readDelimited(name string, r io.Reader) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{File: name, Err: fmt.Errorf("file is empty")}
	}
	if !utf8.Valid(data) || bytes.ContainsRune(data, 0) {
		return nil, &ParseError{File: name, Err: fmt.Errorf("not a text file")}
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{File: name, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{File: name, Err: fmt.Errorf("no rows decoded")}
	}
	return &Grid{Source: name, Rows: rows}, nil
}

// sniffDelimiter picks the candidate delimiter that occurs most often in the
// first few non-blank lines. Comma wins ties, matching the most common export
// format.
func sniffDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	counts := make(map[rune]int, len(candidates))

	lines := bytes.Split(data, []byte{'\n'})
	sampled := 0
	for _, line := range lines {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		for _, c := range candidates {
			counts[c] += bytes.Count(line, []byte(string(c)))
		}
		sampled++
		if sampled == 10 {
			break
		}
	}

	best := ','
	for _, c := range candidates[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}
