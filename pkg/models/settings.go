package models

import (
	"errors"
	"fmt"
	"net/url"
)

// Settings represents the application configuration
type Settings struct {
	API     APISettings     `yaml:"api" mapstructure:"api"`
	Preview PreviewSettings `yaml:"preview" mapstructure:"preview"`
	Output  OutputSettings  `yaml:"output" mapstructure:"output"`
	Text    TextSettings    `yaml:"text" mapstructure:"text"`
	Log     LogSettings     `yaml:"log" mapstructure:"log"`
	UI      UISettings      `yaml:"ui" mapstructure:"ui"`
}

// APISettings points at the certificate backend
type APISettings struct {
	URL            string `yaml:"url" mapstructure:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// PreviewSettings controls the server preview
type PreviewSettings struct {
	DebounceMs  int    `yaml:"debounce_ms" mapstructure:"debounce_ms"`
	DefaultView string `yaml:"default_view" mapstructure:"default_view"` // "server" or "client"
}

// OutputSettings controls generated files
type OutputSettings struct {
	DownloadDir    string `yaml:"download_dir" mapstructure:"download_dir"`
	FilenamePrefix string `yaml:"filename_prefix" mapstructure:"filename_prefix"`
	Format         string `yaml:"format" mapstructure:"format"` // "pdf" or "png"
	NameColumn     string `yaml:"name_column" mapstructure:"name_column"`
}

// TextSettings are the initial text style values
type TextSettings struct {
	FontPreset    string            `yaml:"font_preset" mapstructure:"font_preset"`
	FontSize      float64           `yaml:"font_size" mapstructure:"font_size"`
	FontWeight    int               `yaml:"font_weight" mapstructure:"font_weight"`
	LetterSpacing float64           `yaml:"letter_spacing" mapstructure:"letter_spacing"`
	Color         string            `yaml:"color" mapstructure:"color"`
	FontFaces     map[string]string `yaml:"font_faces,omitempty" mapstructure:"font_faces"` // preset key -> .ttf for quick previews
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowGuides bool `yaml:"show_guides" mapstructure:"show_guides"`
	MouseDrag  bool `yaml:"mouse_drag" mapstructure:"mouse_drag"`
}

// ErrMissingAPIURL is returned by Validate when no backend is configured.
var ErrMissingAPIURL = errors.New("api.url is required (set it in certadmin.yaml or CERTADMIN_API_URL)")

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		API: APISettings{
			URL:            "",
			TimeoutSeconds: 120,
		},
		Preview: PreviewSettings{
			DebounceMs:  400,
			DefaultView: "server",
		},
		Output: OutputSettings{
			DownloadDir:    "./certificates",
			FilenamePrefix: "CERT_",
			Format:         "pdf",
			NameColumn:     "full_name",
		},
		Text: TextSettings{
			FontPreset:    "Sarabun",
			FontSize:      48,
			FontWeight:    700,
			LetterSpacing: 0,
			Color:         "#000000",
		},
		Log: LogSettings{
			Level: "info",
			File:  "certadmin.log",
		},
		UI: UISettings{
			ShowGuides: true,
			MouseDrag:  true,
		},
	}
}

// Validate checks the settings that must be right before startup.
// ErrMissingAPIURL is only returned when everything else is valid.
func (s *Settings) Validate() error {
	switch s.Output.Format {
	case "pdf", "png":
	default:
		return fmt.Errorf("output.format must be pdf or png, got %q", s.Output.Format)
	}
	switch s.Preview.DefaultView {
	case "server", "client":
	default:
		return fmt.Errorf("preview.default_view must be server or client, got %q", s.Preview.DefaultView)
	}
	if s.API.URL == "" {
		return ErrMissingAPIURL
	}
	u, err := url.Parse(s.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.url %q must be an absolute http(s) URL", s.API.URL)
	}
	return nil
}
