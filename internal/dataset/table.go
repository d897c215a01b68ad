// Package dataset loads the static tables behind the recommendation engine:
// the exercise catalog and the exercise video links. Both are read through a
// storage.ObjectStore and cached in explicit cache objects.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a parsed tabular file with a header row.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

func newTable(records [][]string) *Table {
	t := &Table{index: make(map[string]int)}
	if len(records) == 0 {
		return t
	}
	t.Header = make([]string, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.Header[i] = name
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	t.Rows = records[1:]
	return t
}

// HasColumn reports whether the header contains name (after trimming).
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the cell of row under column name, or "" when the row is
// short or the column does not exist.
func (t *Table) Value(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// ReadTable parses r according to the extension of key: ".xlsx" is read as a
// workbook (first sheet), everything else as CSV.
func ReadTable(r io.Reader, key string) (*Table, error) {
	if strings.EqualFold(path.Ext(key), ".xlsx") {
		return readWorkbook(r)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", key, err)
	}
	return newTable(records), nil
}

func readWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return newTable(nil), nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return newTable(records), nil
}
