package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 400, s.Preview.DebounceMs)
	assert.Equal(t, "server", s.Preview.DefaultView)
	assert.Equal(t, "CERT_", s.Output.FilenamePrefix)
	assert.Equal(t, "pdf", s.Output.Format)
	assert.Equal(t, 48.0, s.Text.FontSize)
	assert.Equal(t, 700, s.Text.FontWeight)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"missing url", func(s *Settings) {}, true},
		{"relative url", func(s *Settings) { s.API.URL = "/api" }, true},
		{"valid", func(s *Settings) { s.API.URL = "http://localhost:8080" }, false},
		{"bad format", func(s *Settings) { s.API.URL = "http://x"; s.Output.Format = "gif" }, true},
		{"bad view", func(s *Settings) { s.API.URL = "http://x"; s.Preview.DefaultView = "both" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMissingURLIsSentinel(t *testing.T) {
	assert.ErrorIs(t, DefaultSettings().Validate(), ErrMissingAPIURL)

	// Other problems are reported even while the URL is unset.
	s := DefaultSettings()
	s.Output.Format = "gif"
	err := s.Validate()
	assert.ErrorContains(t, err, "output.format")
	assert.NotErrorIs(t, err, ErrMissingAPIURL)

	s = DefaultSettings()
	s.Preview.DefaultView = "both"
	assert.NotErrorIs(t, s.Validate(), ErrMissingAPIURL)
}
