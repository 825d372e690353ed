package sheets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveName(t *testing.T) {
	ds := &Dataset{Headers: []string{"id", "full_name", "email"}}

	tests := []struct {
		name   string
		row    Row
		ds     *Dataset
		column string
		want   string
	}{
		{"indexed row by header", IndexedRow{"7", "Ada Lovelace", "ada@example.com"}, ds, "full_name", "Ada Lovelace"},
		{"indexed row unknown column uses first cell", IndexedRow{"7", "Ada"}, ds, "nickname", "7"},
		{"indexed row short", IndexedRow{"7"}, ds, "email", ""},
		{"indexed row nil dataset", IndexedRow{"first", "second"}, nil, "full_name", "first"},
		{"empty indexed row", IndexedRow{}, ds, "full_name", ""},
		{"keyed row direct", NewKeyedRow("full_name", "สมชาย ใจดี"), ds, "full_name", "สมชาย ใจดี"},
		{"keyed row falls back to first key", NewKeyedRow("name", "Grace", "age", "85"), ds, "full_name", "Grace"},
		{"empty keyed row", KeyedRow{}, ds, "full_name", ""},
		{"scalar row", ScalarRow("Linus"), ds, "full_name", "Linus"},
		{"nil row", nil, ds, "full_name", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveName(tt.row, tt.ds, tt.column))
		})
	}
}

func TestDecodeRows(t *testing.T) {
	raw := json.RawMessage(`[
		["1", "Ada", 36, true, null],
		{"zeta": "z", "alpha": 1.5, "full_name": "Grace"},
		"just text",
		42
	]`)

	rows, err := DecodeRows(raw)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, IndexedRow{"1", "Ada", "36", "true", ""}, rows[0])

	keyed, ok := rows[1].(KeyedRow)
	require.True(t, ok, "second row should be keyed")
	assert.Equal(t, []string{"zeta", "alpha", "full_name"}, keyed.Keys)
	assert.Equal(t, "1.5", keyed.Values["alpha"])

	assert.Equal(t, ScalarRow("just text"), rows[2])
	assert.Equal(t, ScalarRow("42"), rows[3])
}

func TestDecodeRowsRejectsObjects(t *testing.T) {
	_, err := DecodeRows(json.RawMessage(`{"not": "an array"}`))
	assert.Error(t, err)

	rows, err := DecodeRows(json.RawMessage(`null`))
	assert.NoError(t, err)
	assert.Nil(t, rows)
}

func TestDatasetUnmarshal(t *testing.T) {
	body := `{"headers":["full_name","email"],"rows":[{"full_name":"Ada","email":"a@x"}],"count":1,"sample":[]}`
	var ds Dataset
	require.NoError(t, json.Unmarshal([]byte(body), &ds))

	assert.Equal(t, 1, ds.Count)
	require.Len(t, ds.Records(), 1)
	assert.Equal(t, "Ada", ResolveName(ds.Records()[0], &ds, "full_name"))
	assert.Equal(t, "full_name", ds.DefaultNameColumn("whatever"))
}

func TestDatasetRecordsFallsBackToSample(t *testing.T) {
	body := `{"headers":["name"],"count":2,"sample":[["Ada"],["Grace"]]}`
	var ds Dataset
	require.NoError(t, json.Unmarshal([]byte(body), &ds))

	records := ds.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Grace", ResolveName(records[1], &ds, "name"))
	assert.Equal(t, "name", ds.DefaultNameColumn("full_name"))
}

func TestDatasetMarshalKeepsKeyOrder(t *testing.T) {
	ds := NewDataset([]string{"b", "a"}, []Row{NewKeyedRow("b", "2", "a", "1"), IndexedRow{"x"}})
	out, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Contains(t, string(out), `{"b":"2","a":"1"}`)
	assert.Contains(t, string(out), `["x"]`)
}
