package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamplesCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		contains []string
		excludes []string
		files    []string
	}{
		{
			name:     "list all by default",
			args:     []string{"--list"},
			contains: []string{"[thai] Thai workshop", "[latin] Conference speakers", "example-thai-roster.xlsx (4 rows, sheet Participants)"},
		},
		{
			name:     "list one category",
			args:     []string{"latin", "--list"},
			contains: []string{"Conference speakers", "1600x1131"},
			excludes: []string{"[thai]"},
		},
		{
			name:     "install default category",
			contains: []string{"Installing Thai workshop", "✓ Installed"},
			files:    []string{"example-thai-roster.xlsx", "example-thai-template.png"},
		},
		{
			name:  "install all",
			args:  []string{"all"},
			files: []string{"example-thai-roster.xlsx", "example-latin-roster.xlsx", "example-latin-template.png"},
		},
		{
			name:    "invalid category",
			args:    []string{"web"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append([]string{"--dir", dir}, tt.args...)
			out, err := execute(t, NewExamplesCommand(), args...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
			for _, name := range tt.files {
				assert.FileExists(t, filepath.Join(dir, name))
			}
		})
	}
}

func TestExamplesCommandSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, NewExamplesCommand(), "--dir", dir)
	require.NoError(t, err)

	roster := filepath.Join(dir, "example-thai-roster.xlsx")
	require.NoError(t, os.WriteFile(roster, []byte("mine"), 0644))

	out, err := execute(t, NewExamplesCommand(), "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped")
	data, err := os.ReadFile(roster)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))

	_, err = execute(t, NewExamplesCommand(), "--dir", dir, "--force")
	require.NoError(t, err)
	data, err = os.ReadFile(roster)
	require.NoError(t, err)
	assert.NotEqual(t, "mine", string(data))
}
