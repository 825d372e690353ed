package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pluqqy/certadmin/pkg/fonts"
	"github.com/pluqqy/certadmin/pkg/request"
)

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	if Contains([]string{"text", "json", "yaml"}, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateRenderFormat validates the certificate file format
func ValidateRenderFormat(format string) error {
	if Contains([]string{"pdf", "png"}, format) {
		return nil
	}
	return fmt.Errorf("invalid certificate format: %s (must be: pdf or png)", format)
}

// ValidateMode validates the template mode
func ValidateMode(mode string) error {
	if Contains([]string{request.ModeAuto, request.ModeImage, request.ModePDF}, mode) {
		return nil
	}
	return fmt.Errorf("invalid mode: %s (must be: auto, image, or pdf)", mode)
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a #rgb or #rrggbb colour
func ValidateColor(color string) error {
	if hexColor.MatchString(color) {
		return nil
	}
	return fmt.Errorf("invalid color: %s (expected #rrggbb)", color)
}

// ValidateFontPreset validates a font preset key
func ValidateFontPreset(key string) error {
	if Contains(fonts.Keys(), key) {
		return nil
	}
	return fmt.Errorf("unknown font preset: %s (one of: %s)", key, strings.Join(fonts.Keys(), ", "))
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
