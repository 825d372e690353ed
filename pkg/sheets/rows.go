package sheets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Row is one record returned by a range preview. Rows arrive either as a
// positional list of cells or as an object keyed by header.
type Row interface {
	isRow()
}

// IndexedRow is a positional row; cell i belongs to header i.
type IndexedRow []string

// KeyedRow is an object row. Keys keeps the order the backend sent them in.
type KeyedRow struct {
	Keys   []string
	Values map[string]string
}

// ScalarRow wraps anything that is neither a list nor an object.
type ScalarRow string

func (IndexedRow) isRow() {}
func (KeyedRow) isRow()   {}
func (ScalarRow) isRow()  {}

// NewKeyedRow builds a KeyedRow from alternating key/value pairs.
func NewKeyedRow(pairs ...string) KeyedRow {
	row := KeyedRow{Values: make(map[string]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		if _, dup := row.Values[pairs[i]]; !dup {
			row.Keys = append(row.Keys, pairs[i])
		}
		row.Values[pairs[i]] = pairs[i+1]
	}
	return row
}

// Get returns the value stored under key.
func (r KeyedRow) Get(key string) (string, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// MarshalJSON writes the row back out as an ordered object.
func (r KeyedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.Values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ResolveName picks the display name for row using the chosen name column.
// It never fails: unknown columns fall back to the first cell or key.
func ResolveName(row Row, ds *Dataset, column string) string {
	switch r := row.(type) {
	case nil:
		return ""
	case IndexedRow:
		idx := -1
		if ds != nil {
			for i, h := range ds.Headers {
				if h == column {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			idx = 0
		}
		if idx < len(r) {
			return r[idx]
		}
		return ""
	case KeyedRow:
		if v, ok := r.Values[column]; ok {
			return v
		}
		if len(r.Keys) > 0 {
			return r.Values[r.Keys[0]]
		}
		return ""
	case ScalarRow:
		return string(r)
	default:
		return fmt.Sprint(r)
	}
}

// DecodeRows decodes a JSON array of rows into their variants.
func DecodeRows(raw json.RawMessage) ([]Row, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("rows must be an array: %w", err)
	}
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		row, err := decodeRow(item)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRow(raw json.RawMessage) (Row, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ScalarRow(""), nil
	}
	switch raw[0] {
	case '[':
		var cells []json.RawMessage
		if err := json.Unmarshal(raw, &cells); err != nil {
			return nil, err
		}
		row := make(IndexedRow, len(cells))
		for i, c := range cells {
			row[i] = cellString(c)
		}
		return row, nil
	case '{':
		return decodeKeyedRow(raw)
	default:
		return ScalarRow(cellString(raw)), nil
	}
}

// decodeKeyedRow walks the object token by token so key order survives.
func decodeKeyedRow(raw json.RawMessage) (Row, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	row := KeyedRow{Values: make(map[string]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if _, dup := row.Values[key]; !dup {
			row.Keys = append(row.Keys, key)
		}
		row.Values[key] = cellString(value)
	}
	return row, nil
}

// cellString renders a JSON cell the way a spreadsheet would show it.
func cellString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case 't', 'f':
		if b, err := strconv.ParseBool(string(raw)); err == nil {
			return strconv.FormatBool(b)
		}
	}
	return string(raw)
}
