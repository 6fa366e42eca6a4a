package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"rental-radar/models"
)

// CSVWriter appends per-collection listing snapshots to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"collection", "source", "title", "url", "price", "neighborhood",
		"bedrooms", "sqft", "price_per_sqft", "deal_score", "discount_pct",
		"posted_date", "latitude", "longitude",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteSnapshot appends one row per listing under the collection id.
func (c *CSVWriter) WriteSnapshot(collectionID string, listings []*models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range listings {
		row := []string{
			collectionID,
			l.Source,
			l.Title,
			l.URL,
			strconv.Itoa(l.Price),
			l.Neighborhood,
			intPtrField(l.Bedrooms),
			intPtrField(l.Sqft),
			floatPtrField(l.PricePerSqft),
			intPtrField(l.DealScore),
			floatPtrField(l.DiscountPct),
			l.PostedDate,
			floatPtrField(l.Latitude),
			floatPtrField(l.Longitude),
		}
		if err := c.writer.Write(row); err != nil {
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

func intPtrField(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatPtrField(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
