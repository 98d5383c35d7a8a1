package workload

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/dreamxist/RMLSA-STATIC/rmlsa"
)

// csvHeader is the demand file column layout.
var csvHeader = []string{"id", "source", "destination", "bandwidth"}

// SaveCSV writes a demand batch to path with an id,source,destination,
// bandwidth header row.
func SaveCSV(path string, demands []rmlsa.Demand) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating demand file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing demand header: %w", err)
	}
	for _, d := range demands {
		record := []string{
			strconv.Itoa(d.ID),
			strconv.Itoa(d.Source),
			strconv.Itoa(d.Destination),
			strconv.FormatFloat(d.BandwidthGbps, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing demand %d: %w", d.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing demand file: %w", err)
	}
	return f.Close()
}

// LoadCSV reads a demand batch from a file written by SaveCSV (or by hand
// with the same header). Malformed rows are config errors, not blocked
// demands.
func LoadCSV(path string) ([]rmlsa.Demand, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening demand file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading demand file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("demand file %s is empty", path)
	}
	if !equalHeader(records[0]) {
		return nil, fmt.Errorf("demand file %s: expected header %v, got %v", path, csvHeader, records[0])
	}

	demands := make([]rmlsa.Demand, 0, len(records)-1)
	seen := make(map[int]bool, len(records)-1)
	for i, record := range records[1:] {
		row := i + 2 // 1-based, after header
		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("demand file row %d: bad id %q: %w", row, record[0], err)
		}
		if seen[id] {
			return nil, fmt.Errorf("demand file row %d: duplicate id %d", row, id)
		}
		seen[id] = true
		src, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("demand file row %d: bad source %q: %w", row, record[1], err)
		}
		dst, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("demand file row %d: bad destination %q: %w", row, record[2], err)
		}
		bandwidth, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("demand file row %d: bad bandwidth %q: %w", row, record[3], err)
		}
		demands = append(demands, rmlsa.Demand{
			ID:            id,
			Source:        src,
			Destination:   dst,
			BandwidthGbps: bandwidth,
		})
	}
	return demands, nil
}

func equalHeader(record []string) bool {
	if len(record) != len(csvHeader) {
		return false
	}
	for i, col := range csvHeader {
		if record[i] != col {
			return false
		}
	}
	return true
}
