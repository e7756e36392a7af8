package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNegativeBalance is returned by CheckBalance when the settled ledger
// sums to less than zero. The organization never shows an invented
// negative cash balance in the plain summation report.
var ErrNegativeBalance = errors.New("settled ledger balance is negative")

// ignoreFiles are directory entries that are not ledger files.
var ignoreFiles = map[string]bool{
	"membershipfees": true,
}

// LoadDir loads every ledger file in dir into a new collection. Each file
// name encodes the direction as the prefix before the first "-"; each
// line is a tab-separated (amount, date, comment) record. Multi-month
// rows are split at load. Any malformed file name, amount, date or
// comment aborts the load; no partial ledger is produced.
func LoadDir(dir string) (*RowSet, error) {
	return loadDir(dir, false)
}

// LoadDirs loads the main ledger directory and, when futureDir is
// non-empty and exists, the forecast directory, whose every row is marked
// as a forecast. The two are merged into one collection.
func LoadDirs(dir, futureDir string) (*RowSet, error) {
	rs, err := loadDir(dir, false)
	if err != nil {
		return nil, err
	}

	if futureDir != "" {
		future, err := loadDir(futureDir, true)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return rs, nil
			}
			return nil, err
		}
		rs.Merge(future)
	}
	return rs, nil
}

func loadDir(dir string, forecast bool) (*RowSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger directory: %w", err)
	}

	rs := NewRowSet()
	for _, entry := range entries {
		if entry.IsDir() || ignoreFiles[entry.Name()] {
			continue
		}

		direction, _, found := strings.Cut(entry.Name(), "-")
		if !found {
			return nil, fmt.Errorf("ledger file %q has no direction prefix", entry.Name())
		}

		if err := loadFile(rs, filepath.Join(dir, entry.Name()), direction, forecast); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

func loadFile(rs *RowSet, path, direction string, forecast bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = 3
	reader.LazyQuotes = true

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}

		row, err := NewRow(record[0], record[1], record[2], direction)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
		row.IsForecast = forecast

		parts, err := row.Split()
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
		rs.Append(parts...)
	}
}

// CheckBalance verifies that the settled (non-forecast) members of the
// collection do not sum below zero.
func CheckBalance(rs *RowSet) error {
	sum := decimal.Zero
	for _, r := range rs.Rows() {
		if r.IsForecast {
			continue
		}
		sum = sum.Add(r.Value)
	}
	if sum.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeBalance, sum)
	}
	return nil
}
