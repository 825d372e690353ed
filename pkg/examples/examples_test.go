package examples

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/certadmin/pkg/render"
	"github.com/pluqqy/certadmin/pkg/sheets"
)

func TestGetExamples(t *testing.T) {
	assert.Len(t, GetExamples("thai"), 1)
	assert.Len(t, GetExamples("latin"), 1)
	assert.Len(t, GetExamples("all"), 2)
	assert.Empty(t, GetExamples("nope"))

	for _, set := range GetExamples("all") {
		assert.NotEmpty(t, set.Category)
		assert.NotEmpty(t, set.Roster.Rows, set.Name)
		for _, row := range set.Roster.Rows {
			assert.Len(t, row, len(set.Roster.Headers), set.Name)
		}
	}
}

func TestInstallRosterLoadsBack(t *testing.T) {
	dir := t.TempDir()
	set := GetExamples("thai")[0]

	path, err := InstallRoster(dir, set.Roster, false)
	require.NoError(t, err)

	tabs, err := sheets.WorkbookTabs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Participants"}, tabs)

	ds, err := sheets.LoadWorkbook(path, "Participants!A1:C100")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "full_name", "email"}, ds.Headers)
	assert.Len(t, ds.Records(), 4)
	assert.Equal(t, "สมชาย ใจดี", sheets.DisplayName(ds, 0, "full_name"))

	_, err = InstallRoster(dir, set.Roster, false)
	assert.True(t, errors.Is(err, ErrExists))

	_, err = InstallRoster(dir, set.Roster, true)
	assert.NoError(t, err)
}

func TestInstallTemplateSize(t *testing.T) {
	dir := t.TempDir()
	set := GetExamples("latin")[0]

	path, err := InstallTemplate(dir, set.Template, false)
	require.NoError(t, err)

	w, h, err := render.NativeSize(path)
	require.NoError(t, err)
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1131, h)

	_, err = InstallTemplate(dir, set.Template, false)
	assert.ErrorIs(t, err, ErrExists)
}
