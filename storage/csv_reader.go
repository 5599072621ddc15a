package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"house-price-predictor/models"
)

var inputHeader = []string{
	"bhk", "bathroom", "balcony", "total_sqft", "transaction", "furnishing", "location", "ownership",
}

// CSVReader reads property descriptions from a CSV file with a header row.
// Columns are matched by header name, so their order is free.
type CSVReader struct {
	r io.Reader
}

// NewCSVReader reads from r.
func NewCSVReader(r io.Reader) *CSVReader {
	return &CSVReader{r: r}
}

// OpenCSVReader opens path for reading. The returned closer releases the file.
func OpenCSVReader(path string) (*CSVReader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	return NewCSVReader(f), f, nil
}

// ReadAll parses every data row.
func (c *CSVReader) ReadAll() ([]models.RawInput, error) {
	cr := csv.NewReader(c.r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range inputHeader {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("csv: missing column %q", h)
		}
	}

	var inputs []models.RawInput
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}

		in, err := parseRecord(rec, col)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func parseRecord(rec []string, col map[string]int) (models.RawInput, error) {
	field := func(name string) string { return strings.TrimSpace(rec[col[name]]) }
	atoi := func(name string) (int, error) {
		n, err := strconv.Atoi(field(name))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return n, nil
	}

	var (
		in  models.RawInput
		err error
	)
	if in.BHK, err = atoi("bhk"); err != nil {
		return in, err
	}
	if in.Bathroom, err = atoi("bathroom"); err != nil {
		return in, err
	}
	if in.Balcony, err = atoi("balcony"); err != nil {
		return in, err
	}
	if in.TotalSqft, err = strconv.ParseFloat(field("total_sqft"), 64); err != nil {
		return in, fmt.Errorf("total_sqft: %w", err)
	}
	in.Transaction = field("transaction")
	in.Furnishing = field("furnishing")
	in.Location = field("location")
	in.Ownership = field("ownership")
	return in, nil
}
