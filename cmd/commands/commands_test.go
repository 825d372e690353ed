package commands

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pluqqy/certadmin/internal/cli"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRangeCommand(t *testing.T) {
	out, err := execute(t, NewRangeCommand(), "--sheet", "Data", "--cols", "E,a,C", "--rows", "5:2")
	require.NoError(t, err)
	assert.Equal(t, "Data!A5:E5\n", out)

	out, err = execute(t, NewRangeCommand(), "--rows", "all")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A:Z\n", out)

	_, err = execute(t, NewRangeCommand(), "--cols", "AA")
	assert.Error(t, err)
	_, err = execute(t, NewRangeCommand(), "--rows", "ten")
	assert.Error(t, err)
}

func TestRangeCommandJSON(t *testing.T) {
	cli.SetGlobalFlags(true, true, true, "json")
	defer cli.SetGlobalFlags(false, false, false, "text")

	out, err := execute(t, NewRangeCommand())
	require.NoError(t, err)
	var res RangeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Sheet1!A1:Z1000", res.Range)
}

func TestIDCommand(t *testing.T) {
	out, err := execute(t, NewIDCommand(), "https://docs.google.com/spreadsheets/d/1AbCdEfGhIjKlMnOpQrStUv/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbCdEfGhIjKlMnOpQrStUv\n", out)

	_, err = execute(t, NewIDCommand(), "not a link")
	assert.Error(t, err)
}

func TestPreviewCommandFromWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"id", "full_name"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "Ann Lee"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{2, "Bo / Chan"}))
	require.NoError(t, f.SaveAs(path))

	cli.SetGlobalFlags(true, true, true, "json")
	defer cli.SetGlobalFlags(false, false, false, "text")

	out, err := execute(t, NewPreviewCommand(), "--xlsx", path, "--rows", "all")
	require.NoError(t, err)
	var res PreviewResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "full_name", res.NameColumn)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "CERT_Ann Lee.pdf", res.Rows[0].Filename)
	assert.Equal(t, "CERT_Bo - Chan.pdf", res.Rows[1].Filename)
}

func TestPreviewCommandNeedsSource(t *testing.T) {
	_, err := execute(t, NewPreviewCommand())
	assert.Error(t, err)
}

func TestComposeCommand(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "bg.png")
	fh, err := os.Create(tpl)
	require.NoError(t, err)
	require.NoError(t, png.Encode(fh, image.NewRGBA(image.Rect(0, 0, 400, 300))))
	require.NoError(t, fh.Close())

	out := filepath.Join(dir, "quick.png")
	cli.SetGlobalFlags(true, true, true, "text")
	defer cli.SetGlobalFlags(false, false, false, "text")

	_, err = execute(t, NewComposeCommand(), tpl, "--name", "Ann", "--max-width", "200", "--out", out)
	require.NoError(t, err)

	rf, err := os.Open(out)
	require.NoError(t, err)
	defer rf.Close()
	cfg, err := png.DecodeConfig(rf)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 150, cfg.Height)

	_, err = execute(t, NewComposeCommand(), tpl, "--color", "blue")
	assert.True(t, err != nil && strings.Contains(err.Error(), "invalid color"))
}

// withConfig attaches cmd to a parent carrying the persistent --config flag.
func withConfig(cmd *cobra.Command, path string) *cobra.Command {
	root := &cobra.Command{Use: "certadmin"}
	root.PersistentFlags().String("config", path, "")
	root.AddCommand(cmd)
	return root
}

func TestSetAndShowCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "certadmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  url: http://localhost:8000\n"), 0644))

	_, err := execute(t, withConfig(NewSetCommand(), path), "set", "output.format", "png")
	require.NoError(t, err)
	_, err = execute(t, withConfig(NewSetCommand(), path), "set", "output.format", "tiff")
	assert.Error(t, err)

	out, err := execute(t, withConfig(NewShowCommand(), path), "show", "output")
	require.NoError(t, err)
	assert.Contains(t, out, "output.format")
	assert.Contains(t, out, "png")
	assert.NotContains(t, out, "api.url")

	cli.SetGlobalFlags(true, true, true, "json")
	defer cli.SetGlobalFlags(false, false, false, "text")
	out, err = execute(t, withConfig(NewShowCommand(), path), "show", "api.url")
	require.NoError(t, err)
	var res []SettingResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 1)
	assert.Equal(t, "http://localhost:8000", res[0].Value)

	_, err = execute(t, withConfig(NewShowCommand(), path), "show", "nothing")
	assert.Error(t, err)
}
