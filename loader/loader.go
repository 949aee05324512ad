// Package loader reads job lists from CSV files.
//
// Each row is id,burst,arrival[,priority]. A first row whose burst column is
// not a number is treated as a header and skipped. An empty id becomes P<n>,
// n being the 1-based row position among jobs.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cookiefied/processscheduler/job"
)

var ErrMalformed = errors.New("malformed job file")

// LoadFile opens path and parses it with Load.
func LoadFile(path string) ([]job.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening job file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses CSV rows from r into jobs.
func Load(r io.Reader) ([]job.Job, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}

	jobs := make([]job.Job, 0, len(rows))
	for i, row := range rows {
		j, err := parseRow(row, len(jobs)+1)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, i+1, err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func isHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[1]))
	return err != nil
}

func parseRow(row []string, n int) (job.Job, error) {
	if len(row) < 3 || len(row) > 4 {
		return job.Job{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(row))
	}

	var (
		j   job.Job
		err error
	)
	j.ID = strings.TrimSpace(row[0])
	if j.ID == "" {
		j.ID = "P" + strconv.Itoa(n)
	}
	if j.Service, err = parseInt("burst", row[1]); err != nil {
		return job.Job{}, err
	}
	if j.Arrival, err = parseInt("arrival", row[2]); err != nil {
		return job.Job{}, err
	}
	if len(row) == 4 && strings.TrimSpace(row[3]) != "" {
		p, err := parseInt("priority", row[3])
		if err != nil {
			return job.Job{}, err
		}
		j.Priority = job.PriorityOf(p)
	}
	return j, nil
}

func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, s, err)
	}
	return v, nil
}
