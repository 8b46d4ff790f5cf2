package pipeline

import (
	"sort"
	"strings"

	"marketdash/internal/domain"
)

// Dataset is the full, read-only collection of records for a session.
// It is rebuilt wholesale on every load and never mutated afterwards.
type Dataset struct {
	records []*domain.Record
	dropped int
	schema  domain.Schema
}

// BuildDataset assembles a Dataset from raw text lines. Blank lines are ignored and
// the first non-blank line is the header.
func BuildDataset(lines []string, schema domain.Schema) *Dataset {
	return BuildDatasetFromRows(SplitRows(lines), schema)
}

// SplitRows tokenizes every non-blank line after the header.
func SplitRows(lines []string) [][]string {
	rows := make([][]string, 0, len(lines))
	headerSeen := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		rows = append(rows, ParseLine(line))
	}
	return rows
}

// BuildDatasetFromRows normalizes already tokenized data rows (no header), drops the
// rows without a symbol and applies the schema's date ordering.
func BuildDatasetFromRows(rows [][]string, schema domain.Schema) *Dataset {
	ds := &Dataset{
		records: make([]*domain.Record, 0, len(rows)),
		schema:  schema,
	}
	for _, fields := range rows {
		rec, ok := Normalize(fields, schema)
		if !ok {
			ds.dropped++
			continue
		}
		ds.records = append(ds.records, rec)
	}
	SortByDate(ds.records, schema.Sort)
	return ds
}

// SortByDate stable-sorts records by reference date in place. Records whose date
// could not be parsed go after every dated record in either direction.
func SortByDate(records []*domain.Record, order domain.SortOrder) {
	if order == domain.SortNone {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.HasDate != b.HasDate {
			return a.HasDate
		}
		if !a.HasDate {
			return false
		}
		if order == domain.SortDescending {
			return a.Date.After(b.Date)
		}
		return a.Date.Before(b.Date)
	})
}

// EmptyDataset returns a Dataset with no records, the state before any successful load.
func EmptyDataset(schema domain.Schema) *Dataset {
	return &Dataset{records: []*domain.Record{}, schema: schema}
}

// Records returns the records in dataset order. Callers must not modify the slice.
func (d *Dataset) Records() []*domain.Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of retained records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Dropped returns how many rows were discarded for an empty symbol.
func (d *Dataset) Dropped() int {
	if d == nil {
		return 0
	}
	return d.dropped
}

// Schema returns the schema the dataset was built with.
func (d *Dataset) Schema() domain.Schema {
	return d.schema
}

// Symbols returns the distinct asset symbols sorted ascending, used to populate the asset selector.
func (d *Dataset) Symbols() []string {
	seen := make(map[string]struct{})
	symbols := make([]string, 0)
	for _, r := range d.Records() {
		if _, ok := seen[r.AssetSymbol]; ok {
			continue
		}
		seen[r.AssetSymbol] = struct{}{}
		symbols = append(symbols, r.AssetSymbol)
	}
	sort.Strings(symbols)
	return symbols
}
