package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"macro-dashboard/models"
)

var (
	// ErrDateColumn is returned when the publication date column is absent
	// or holds a value that is not a calendar date.
	ErrDateColumn = errors.New("loader: publication date column missing or unparseable")
	// ErrUnsupportedFormat is returned for payloads that are neither CSV
	// text nor an xlsx workbook.
	ErrUnsupportedFormat = errors.New("loader: unsupported dataset format")
	// ErrEmpty is returned when the source has no header row.
	ErrEmpty = errors.New("loader: dataset is empty")
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// dateLayouts are tried in order for every publication date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"01/02/2006 15:04",
}

// naTokens are the cell values read as missing, matching pandas' default
// NA markers.
var naTokens = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// number parses a numeric cell. Non-finite values count as missing.
func number(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Loader fetches and parses the dataset.
type Loader struct {
	client *http.Client
	log    logrus.FieldLogger
}

// New returns a Loader whose HTTP fetches time out after timeout.
func New(timeout time.Duration, log logrus.FieldLogger) *Loader {
	return &Loader{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Load fetches source (URL or local path) and parses it into a Dataset
// sorted by publication date.
func (l *Loader) Load(ctx context.Context, source string) (*models.Dataset, error) {
	start := time.Now()
	raw, err := l.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	ds, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	ds.Source = source

	l.log.WithFields(logrus.Fields{
		"source":  source,
		"records": ds.Len(),
		"columns": len(ds.Headers),
		"took_ms": time.Since(start).Milliseconds(),
	}).Info("dataset loaded")
	return ds, nil
}

// Fetch reads the raw bytes of source.
func (l *Loader) Fetch(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		raw, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("loader: read %q: %w", source, err)
		}
		return raw, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loader: fetch %q: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("loader: fetch %q: status %d: %s", source, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("loader: read body: %w", err)
	}
	return raw, nil
}

// Parse decodes a CSV or xlsx payload.
func Parse(raw []byte) (*models.Dataset, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmpty
	}

	mt := mimetype.Detect(raw)
	switch {
	case mt.Is(xlsxMIME):
		rows, err := readXLSX(raw)
		if err != nil {
			return nil, err
		}
		return fromRows(rows)
	case isText(mt), mt.Is("application/octet-stream"):
		// Text with stray non-UTF-8 bytes sniffs as octet-stream.
		rows, err := readCSV(raw)
		if err != nil {
			return nil, err
		}
		return fromRows(rows)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
	}
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func readCSV(raw []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loader: parse csv: %w", err)
	}
	return rows, nil
}

func readXLSX(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("loader: open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("loader: read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func fromRows(rows [][]string) (*models.Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	headers := make([]string, len(rows[0]))
	dateIdx := -1
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		headers[i] = h
		if h == models.ColPublicationDate {
			dateIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: no %q header", ErrDateColumn, models.ColPublicationDate)
	}

	records := make([]models.Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec := models.Record{
			Fields: make(map[string]string, len(headers)),
			Values: make(map[string]float64),
		}
		for i, h := range headers {
			if i >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[i])
			if i != dateIdx && naTokens[cell] {
				cell = ""
			}
			rec.Fields[h] = cell
			if i == dateIdx || cell == "" {
				continue
			}
			if v, ok := number(cell); ok {
				rec.Values[h] = v
			}
		}

		var cell string
		if dateIdx < len(row) {
			cell = strings.TrimSpace(row[dateIdx])
		}
		date, err := parseDate(cell)
		if err != nil {
			// n is zero-based over data rows; line numbers count the header.
			return nil, fmt.Errorf("%w: line %d: %q", ErrDateColumn, n+2, cell)
		}
		rec.Date = date
		rec.Sentiment = strings.ToLower(rec.Text(models.ColNewsSentiment))
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return &models.Dataset{Headers: headers, Records: records}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
