// Package nameday looks up Slovak name-day celebrants from a static JSON
// table keyed by "MM-DD". The table is loaded once; a missing or broken
// file yields an empty table with a warning, and every lookup then returns
// no celebrants.
package nameday

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Table maps "MM-DD" keys to the names celebrating on that day.
type Table struct {
	days map[string][]string
}

// Load reads the name-day table from a JSON file of the form
// {"01-02": ["Alexandra", "Karina"], ...}.
func Load(path string) *Table {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("name-day file not readable",
			slog.String("path", path),
			slog.Any("error", err))
		return &Table{days: map[string][]string{}}
	}

	var days map[string][]string
	if err := json.Unmarshal(data, &days); err != nil {
		slog.Warn("name-day file not parseable",
			slog.String("path", path),
			slog.Any("error", err))
		return &Table{days: map[string][]string{}}
	}

	return &Table{days: days}
}

// NewTable wraps an in-memory table, mainly for tests.
func NewTable(days map[string][]string) *Table {
	if days == nil {
		days = map[string][]string{}
	}
	return &Table{days: days}
}

// Lookup returns the names celebrating on the given date. Unknown dates
// return an empty slice.
func (t *Table) Lookup(d time.Time) []string {
	return t.days[keyOf(d)]
}

// FindNameDay returns this year's celebration date for the given name,
// compared case-insensitively. The second return is false when the name is
// not in the table.
func (t *Table) FindNameDay(name string, year int) (time.Time, bool) {
	target := strings.ToLower(name)

	for key, names := range t.days {
		for _, n := range names {
			if strings.ToLower(n) != target {
				continue
			}
			var month, day int
			if _, err := fmt.Sscanf(key, "%d-%d", &month, &day); err != nil {
				slog.Warn("malformed name-day key", slog.String("key", key))
				continue
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

func keyOf(d time.Time) string {
	return fmt.Sprintf("%02d-%02d", int(d.Month()), d.Day())
}
