package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Table is the assembled extraction output: one row per spatial index,
// one named column per computed feature vector, in declaration order.
// A Table is built once by Extract and not mutated afterwards.
type Table struct {
	rows    int
	columns []Column
	index   map[string]int
}

// NewTable creates an empty table with a fixed row count.
func NewTable(rows int) *Table {
	return &Table{rows: rows, index: make(map[string]int)}
}

// AddColumn appends a column. Name collisions (two declarations that
// resolve to identical parameters) are disambiguated with an ordinal
// suffix, so the second "mean_b3_t0.24" becomes "mean_b3_t0.24_2".
func (t *Table) AddColumn(name string, values []float64) error {
	if len(values) != t.rows {
		return fmt.Errorf("column %s has %d values, table has %d rows", name, len(values), t.rows)
	}
	unique := name
	for n := 2; ; n++ {
		if _, taken := t.index[unique]; !taken {
			break
		}
		unique = fmt.Sprintf("%s_%d", name, n)
	}
	t.index[unique] = len(t.columns)
	t.columns = append(t.columns, Column{Name: unique, Values: values})
	return nil
}

// NumRows returns the number of spatial indices.
func (t *Table) NumRows() int { return t.rows }

// NumColumns returns the number of feature columns.
func (t *Table) NumColumns() int { return len(t.columns) }

// ColumnNames returns the column names in insertion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i].Values, true
}

// Columns returns all columns in insertion order.
func (t *Table) Columns() []Column { return t.columns }

// WriteCSV writes the table with a leading spatial_index column.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"spatial_index"}, t.ColumnNames()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(header))
	for row := 0; row < t.rows; row++ {
		record[0] = strconv.Itoa(row)
		for i, c := range t.columns {
			record[i+1] = strconv.FormatFloat(c.Values[row], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", row, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
