// Package catalog loads catalog snapshots from CSV feeds. Feeds may
// live on disk or behind an HTTP endpoint; headers are normalized
// through the mapper alias table so the upstream export format can
// drift without code changes.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"bazaarchat-be/internal/mapper"
	"bazaarchat-be/pkg/store"
)

const defaultFetchTimeout = 30 * time.Second

type CSVLoader struct {
	client *http.Client
}

func NewCSVLoader() *CSVLoader {
	return &CSVLoader{
		client: &http.Client{Timeout: defaultFetchTimeout},
	}
}

// LoadCategories reads a gallery feed from a URL or file path.
func (l *CSVLoader) LoadCategories(ctx context.Context, source string) ([]store.CategoryRecord, error) {
	rows, err := l.loadRows(ctx, source)
	if err != nil {
		return nil, err
	}
	records := make([]store.CategoryRecord, 0, len(rows))
	for _, row := range rows {
		rec := mapper.CategoryFromFields(row)
		if rec.ID == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadSellers reads a seller feed from a URL or file path.
func (l *CSVLoader) LoadSellers(ctx context.Context, source string) ([]store.SellerRecord, error) {
	rows, err := l.loadRows(ctx, source)
	if err != nil {
		return nil, err
	}
	records := make([]store.SellerRecord, 0, len(rows))
	for _, row := range rows {
		rec := mapper.SellerFromFields(row)
		if rec.ID == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadProducts reads a product feed from a URL or file path. Rows with
// unparseable prices are kept with a nil price.
func (l *CSVLoader) LoadProducts(ctx context.Context, source string) ([]store.ProductRecord, error) {
	rows, err := l.loadRows(ctx, source)
	if err != nil {
		return nil, err
	}
	records := make([]store.ProductRecord, 0, len(rows))
	for _, row := range rows {
		rec := mapper.ProductFromFields(row)
		if rec.ID == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// loadRows fetches and parses one feed into canonical field maps.
// Unknown columns are dropped; short rows are skipped, not fatal.
func (l *CSVLoader) loadRows(ctx context.Context, source string) ([]map[string]string, error) {
	reader, closer, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer closer()

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header from %s: %w", source, err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = mapper.ResolveColumn(h)
	}

	var rows []map[string]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row from %s: %w", source, err)
		}
		fields := make(map[string]string, len(columns))
		for i, value := range record {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			fields[columns[i]] = strings.TrimSpace(value)
		}
		if len(fields) > 0 {
			rows = append(rows, fields)
		}
	}
	return rows, nil
}

func (l *CSVLoader) open(ctx context.Context, source string) (io.Reader, func(), error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch catalog feed %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("fetch catalog feed %s: status %d", source, resp.StatusCode)
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog feed %s: %w", source, err)
	}
	return f, func() { f.Close() }, nil
}
