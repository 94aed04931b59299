package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-gg/table"

	"github.com/matzehuels/tabplot/pkg/errors"
)

// ReadCSV reads comma-separated records from r. The first record names the
// columns. Numeric columns are coerced; everything else stays text and is
// typed when a plot extracts it.
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse csv")
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv has no header row")
	}
	header := rows[0]
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if name == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "csv header has an empty column name")
		}
		if seen[name] {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "csv header repeats column %q", name)
		}
		seen[name] = true
	}
	return table.TableFromStrings(header, rows[1:], true), nil
}

// LoadCSV reads the CSV file at path.
func LoadCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
