// Package tabular reads delimited text files into header-addressed row
// sets and writes the final curated table. It is deliberately thin: all
// interpretation of cell contents belongs to the source loaders.
package tabular

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/openvax/mhccurate/pkg/errors"
)

// Table is an in-memory delimited file with columns addressed by header name.
type Table struct {
	name    string
	columns map[string]int
	rows    [][]string
}

// ReadFile reads the delimited file at path into a Table.
func ReadFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only descriptor

	return Read(f, path, opts...)
}

// Read reads delimited data from r. The name is used in error messages only.
func Read(r io.Reader, name string, opts ...Option) (*Table, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	// Source files are ragged in places; column presence is checked
	// against the header, not per row.
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.WrapParse(o.format(), name, err)
	}

	if len(records) <= o.skipLines {
		return nil, errors.NewSchemaError(name, "", "no header row")
	}
	records = records[o.skipLines:]

	header := records[0]
	columns := make(map[string]int, len(header))
	for i, col := range header {
		if _, dup := columns[col]; !dup {
			columns[col] = i
		}
	}

	return &Table{
		name:    name,
		columns: columns,
		rows:    records[1:],
	}, nil
}

// Name returns the file name the table was read from.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Require returns a SchemaError if any of the named columns is absent.
func (t *Table) Require(cols ...string) error {
	for _, col := range cols {
		if _, ok := t.columns[col]; !ok {
			return errors.NewSchemaError(t.name, col, "not present in header")
		}
	}
	return nil
}

// Field returns the value of the named column in the given row, or the
// empty string when the row is too short. The column must exist; call
// Require first.
func (t *Table) Field(row int, col string) string {
	i := t.columns[col]
	r := t.rows[row]
	if i >= len(r) {
		return ""
	}
	return r[i]
}
