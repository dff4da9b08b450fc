package movies

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ParseTitles splits comma- or newline-separated input into trimmed titles.
// Empty entries are dropped.
func ParseTitles(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	titles := make([]string, 0, len(fields))
	for _, field := range fields {
		if title := strings.TrimSpace(field); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

// CapTitles keeps at most limit titles. A non-positive limit keeps all.
func CapTitles(titles []string, limit int) []string {
	if limit <= 0 || len(titles) <= limit {
		return titles
	}
	return titles[:limit]
}

// ReadTitles reads titles from a file body. Files named *.csv must have a
// "Title" header column; anything else is treated as one title per line
// (commas also separate).
func ReadTitles(r io.Reader, name string) ([]string, error) {
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read titles: %w", err)
		}
		return ParseTitles(string(data)), nil
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	column := -1
	for i, heading := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(heading, "\ufeff")), "Title") {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, errors.New("csv file has no Title column")
	}

	var titles []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if column >= len(row) {
			continue
		}
		if title := strings.TrimSpace(row[column]); title != "" {
			titles = append(titles, title)
		}
	}
	return titles, nil
}
