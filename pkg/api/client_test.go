package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/certadmin/pkg/placement"
	"github.com/pluqqy/certadmin/pkg/request"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrNoBaseURL)

	_, err = New("localhost:8080")
	assert.Error(t, err)

	c, err := New(" http://localhost:8080/// ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}

func TestTabs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathTabs, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch body["sheetId"] {
		case "tabs":
			w.Write([]byte(`{"tabs":["Roster","Archive"]}`))
		case "sheets":
			w.Write([]byte(`{"sheets":[{"title":"A"},{"title":""},{"title":"B"}]}`))
		case "empty":
			w.Write([]byte(`{"tabs":[]}`))
		default:
			http.Error(w, "spreadsheet not shared with service account", http.StatusForbidden)
		}
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	tabs, err := c.Tabs(ctx, "tabs")
	require.NoError(t, err)
	assert.Equal(t, []string{"Roster", "Archive"}, tabs)

	tabs, err = c.Tabs(ctx, "sheets")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, tabs)

	_, err = c.Tabs(ctx, "empty")
	assert.True(t, IsCode(err, "no_tabs"))

	_, err = c.Tabs(ctx, "private")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "spreadsheet not shared with service account", apiErr.Message)
}

func TestPreview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Data!A1:C10", body["range"])
		w.Write([]byte(`{"headers":["id","full_name"],"rows":[["1","Ada"],{"full_name":"Grace","id":"2"}],"count":2,"sample":[]}`))
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	ds, err := c.Preview(context.Background(), "sheet", "Data!A1:C10")
	require.NoError(t, err)
	require.Len(t, ds.Records(), 2)
	assert.Equal(t, "Ada", sheets.ResolveName(ds.Records()[0], ds, "full_name"))
	assert.Equal(t, "Grace", sheets.ResolveName(ds.Records()[1], ds, "full_name"))
}

func TestGenerateEndpoints(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "0.5", r.FormValue("xRel"))
		if r.URL.Path == PathGeneratePreview {
			assert.Equal(t, "png", r.FormValue("preview"))
		}
		io.WriteString(w, "bytes:"+r.URL.Path)
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	ctx := context.Background()
	p := request.Params{
		Template:  &request.Template{Name: "t.png", MediaType: "image/png", Data: []byte("x")},
		SheetID:   "sheet",
		Placement: placement.Center,
	}

	zip, err := c.Generate(ctx, request.ForBatch(p))
	require.NoError(t, err)
	assert.Equal(t, "bytes:"+PathGenerate, string(zip))

	one, err := c.GenerateOne(ctx, request.ForSingle(p, 1))
	require.NoError(t, err)
	assert.Equal(t, "bytes:"+PathGenerateOne, string(one))

	png, err := c.GeneratePreview(ctx, request.ForPreview(p, 1))
	require.NoError(t, err)
	assert.Equal(t, "bytes:"+PathGeneratePreview, string(png))

	assert.Equal(t, []string{PathGenerate, PathGenerateOne, PathGeneratePreview}, seen)
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := New(url)
	require.NoError(t, err)
	_, err = c.Tabs(context.Background(), "x")
	assert.True(t, IsCode(err, "network_failure"))
}
