package sheets

import (
	"encoding/json"
	"fmt"
)

// Dataset is the result of one range preview. It is replaced wholesale on
// every fetch and never patched.
type Dataset struct {
	Headers []string
	Rows    []Row
	Count   int
	Sample  []Row

	// rowsPresent records whether the backend sent a rows array at all,
	// which decides between Rows and Sample in Records.
	rowsPresent bool
}

type datasetJSON struct {
	Headers []string        `json:"headers"`
	Rows    json.RawMessage `json:"rows"`
	Count   int             `json:"count"`
	Sample  json.RawMessage `json:"sample"`
}

// UnmarshalJSON decodes the backend preview response.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var raw datasetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rows, err := DecodeRows(raw.Rows)
	if err != nil {
		return fmt.Errorf("decoding rows: %w", err)
	}
	sample, err := DecodeRows(raw.Sample)
	if err != nil {
		return fmt.Errorf("decoding sample: %w", err)
	}
	*d = Dataset{
		Headers:     raw.Headers,
		Rows:        rows,
		Count:       raw.Count,
		Sample:      sample,
		rowsPresent: isJSONArray(raw.Rows),
	}
	return nil
}

// MarshalJSON mirrors the backend shape so datasets can be printed by the CLI.
func (d Dataset) MarshalJSON() ([]byte, error) {
	out := struct {
		Headers []string `json:"headers"`
		Rows    []Row    `json:"rows"`
		Count   int      `json:"count"`
		Sample  []Row    `json:"sample"`
	}{d.Headers, d.Rows, d.Count, d.Sample}
	if out.Headers == nil {
		out.Headers = []string{}
	}
	return json.Marshal(out)
}

// NewDataset builds a dataset whose rows are authoritative.
func NewDataset(headers []string, rows []Row) *Dataset {
	return &Dataset{
		Headers:     headers,
		Rows:        rows,
		Count:       len(rows),
		Sample:      sampleOf(rows, 5),
		rowsPresent: true,
	}
}

// Records returns the rows to iterate: Rows when the backend sent them,
// otherwise Sample.
func (d *Dataset) Records() []Row {
	if d == nil {
		return nil
	}
	if d.rowsPresent || len(d.Rows) > 0 {
		return d.Rows
	}
	return d.Sample
}

// DefaultNameColumn prefers "full_name" and otherwise the first header.
func (d *Dataset) DefaultNameColumn(current string) string {
	if d == nil || len(d.Headers) == 0 {
		return current
	}
	for _, h := range d.Headers {
		if h == "full_name" {
			return h
		}
	}
	return d.Headers[0]
}

func sampleOf(rows []Row, n int) []Row {
	if len(rows) < n {
		n = len(rows)
	}
	out := make([]Row, n)
	copy(out, rows[:n])
	return out
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
