// Package dataset loads point sets from delimited text files.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Options controls how CSV records become points.
type Options struct {
	// SkipHeader drops the first record.
	SkipHeader bool
	// Columns selects the zero-based columns to read, in order.
	// Nil means every column.
	Columns []int
}

// ReadCSV parses r into one float64 row per record.
func ReadCSV(r io.Reader, o Options) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "dataset: read csv")
	}
	if o.SkipHeader && len(records) > 0 {
		records = records[1:]
	}

	data := make([][]float64, 0, len(records))
	for i, record := range records {
		fields := record
		if o.Columns != nil {
			fields = make([]string, len(o.Columns))
			for j, col := range o.Columns {
				if col < 0 || col >= len(record) {
					return nil, errors.Errorf("dataset: record %d has no column %d", i, col)
				}
				fields[j] = record[col]
			}
		}

		row := make([]float64, len(fields))
		for j, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset: record %d field %d", i, j)
			}
			row[j] = v
		}
		data = append(data, row)
	}
	return data, nil
}

// LoadCSV opens path and parses it with ReadCSV.
func LoadCSV(path string, o Options) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	data, err := ReadCSV(f, o)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: load %s", path)
	}
	return data, nil
}

// ParseColumns parses a comma-separated list of column indices such as
// "0,1,3". An empty string yields nil.
func ParseColumns(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	cols := make([]int, len(parts))
	for i, p := range parts {
		c, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: column %q", p)
		}
		cols[i] = c
	}
	return cols, nil
}
