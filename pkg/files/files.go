package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluqqy/certadmin/pkg/models"
)

const (
	ConfigFile        = "certadmin.yaml"
	DefaultOutputFile = "certificate"
)

// InitProjectStructure writes a default config into dir and creates the
// download directory it names. An existing config is left untouched
// unless force is set.
func InitProjectStructure(dir string, force bool) (string, error) {
	configPath := filepath.Join(dir, ConfigFile)
	settings := models.DefaultSettings()

	if _, err := os.Stat(configPath); err == nil && !force {
		return configPath, fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if err := WriteSettings(configPath, settings); err != nil {
		return "", err
	}

	downloads := settings.Output.DownloadDir
	if !filepath.IsAbs(downloads) {
		downloads = filepath.Join(dir, downloads)
	}
	if err := os.MkdirAll(downloads, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", downloads, err)
	}

	return configPath, nil
}

// WriteDownload saves a generated file into dir, creating it if needed.
// The name is reduced to its base so a server-supplied name cannot
// escape dir.
func WriteDownload(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		name = DefaultOutputFile
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return path, nil
}

// ReadTemplate reads a template or font file given on the command line.
func ReadTemplate(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return data, nil
}
