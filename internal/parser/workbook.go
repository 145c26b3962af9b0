package parser

import (
	"fmt"
	"io"

	"github.com/halebuild/takeoff-engine/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Row is one data row of a spreadsheet: header name to raw cell text.
// Missing trailing cells are absent from the map; callers coerce values
// through the coerce package. Index is the 1-based spreadsheet row number.
type Row struct {
	Index  int
	Values map[string]string
}

// Get returns the raw cell value under the given header, or "" when absent
func (r Row) Get(header string) string {
	return r.Values[header]
}

// Workbook is a parsed spreadsheet: the header row plus all data rows of the
// first sheet. Loaded eagerly; takeoff exports are at most a few thousand rows.
type Workbook struct {
	Headers []string
	rows    []Row
}

// OpenWorkbook reads an xlsx stream and parses its first sheet. The first row
// is the header; unrecognized headers are carried through and ignored
// downstream. Returns ErrEmptyWorkbook when there are no data rows.
func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyWorkbook
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(raw) < 2 {
		return nil, domain.ErrEmptyWorkbook
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		if h == "" {
			h = fmt.Sprintf("Col%d", i+1)
		}
		headers[i] = h
	}

	wb := &Workbook{Headers: headers}
	for i, cells := range raw[1:] {
		row := Row{
			// +2: 1-based numbering plus the header row
			Index:  i + 2,
			Values: make(map[string]string, len(cells)),
		}
		empty := true
		for col, val := range cells {
			if col >= len(headers) {
				break
			}
			if val != "" {
				empty = false
			}
			row.Values[headers[col]] = val
		}
		if empty {
			continue
		}
		wb.rows = append(wb.rows, row)
	}

	if len(wb.rows) == 0 {
		return nil, domain.ErrEmptyWorkbook
	}
	return wb, nil
}

// Rows returns all data rows in sheet order
func (w *Workbook) Rows() []Row {
	return w.rows
}
