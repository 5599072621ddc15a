package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"house-price-predictor/models"
)

// KindFunc maps an error to its category tag.
type KindFunc func(error) string

// CSVWriter writes scored batch rows to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
	kindOf KindFunc
}

var outputHeader = append(append([]string(nil), inputHeader...),
	"price", "log_price", "artifact_version", "error_kind", "error")

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
// kindOf tags failed rows in the error_kind column.
func NewCSVWriter(path string, kindOf KindFunc) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(outputHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w, kindOf: kindOf}, nil
}

// Write appends one line per row. Prices are written at full precision.
func (c *CSVWriter) Write(rows []*models.BatchRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range rows {
		line := inputRecord(r.Input)
		if r.Err != nil {
			kind := ""
			if c.kindOf != nil {
				kind = c.kindOf(r.Err)
			}
			line = append(line, "", "", "", kind, r.Err.Error())
		} else {
			line = append(line,
				strconv.FormatFloat(r.Result.Price, 'f', -1, 64),
				strconv.FormatFloat(r.Result.LogPrice, 'f', -1, 64),
				r.Result.ArtifactVersion, "", "")
		}
		if err := c.writer.Write(line); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func inputRecord(in models.RawInput) []string {
	return []string{
		strconv.Itoa(in.BHK),
		strconv.Itoa(in.Bathroom),
		strconv.Itoa(in.Balcony),
		strconv.FormatFloat(in.TotalSqft, 'f', -1, 64),
		in.Transaction,
		in.Furnishing,
		in.Location,
		in.Ownership,
	}
}
