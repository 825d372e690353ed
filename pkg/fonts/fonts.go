// Package fonts holds the selectable font presets and a registry of
// user-supplied font files. Nothing here touches process-wide state; the
// renderers ask the registry for what they need.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CustomKey selects a user-uploaded font file.
const CustomKey = "Custom"

// FallbackFamily is used when the custom preset has no file yet.
const FallbackFamily = "sans-serif"

// Preset is one entry in the font picker.
type Preset struct {
	Key         string
	Label       string
	Family      string // CSS family string sent to the backend
	GoogleFonts string // Google Fonts spec, empty for system fonts
}

// Presets lists the fonts offered in the console, Thai-capable first.
var Presets = []Preset{
	{Key: "Sarabun", Label: "Sarabun (TH)", Family: "'Sarabun', sans-serif", GoogleFonts: "Sarabun:wght@100..900"},
	{Key: "Kanit", Label: "Kanit (TH)", Family: "'Kanit', sans-serif", GoogleFonts: "Kanit:wght@100..900"},
	{Key: "Prompt", Label: "Prompt (TH)", Family: "'Prompt', sans-serif", GoogleFonts: "Prompt:wght@100..900"},
	{Key: "NotoSansThai", Label: "Noto Sans Thai", Family: "'Noto Sans Thai', sans-serif", GoogleFonts: "Noto+Sans+Thai:wght@100..900"},
	{Key: "Mitr", Label: "Mitr (TH)", Family: "'Mitr', sans-serif", GoogleFonts: "Mitr:wght@200..900"},
	{Key: "Sriracha", Label: "Sriracha", Family: "'Sriracha', cursive", GoogleFonts: "Sriracha"},
	{Key: "Inter", Label: "Inter", Family: "'Inter', system-ui, sans-serif", GoogleFonts: "Inter:wght@100..900"},
	{Key: "Times", Label: "Times New Roman", Family: "'Times New Roman', serif"},
	{Key: CustomKey, Label: "Custom (.ttf/.otf)"},
}

// FindPreset returns the preset for key, or the first preset if unknown.
func FindPreset(key string) Preset {
	for _, p := range Presets {
		if p.Key == key {
			return p
		}
	}
	return Presets[0]
}

// Keys lists preset keys in picker order.
func Keys() []string {
	keys := make([]string, len(Presets))
	for i, p := range Presets {
		keys[i] = p.Key
	}
	return keys
}

// GoogleFontsURL is the stylesheet a browser-based preview would load.
func (p Preset) GoogleFontsURL() string {
	if p.GoogleFonts == "" {
		return ""
	}
	return fmt.Sprintf("https://fonts.googleapis.com/css2?family=%s&display=swap", p.GoogleFonts)
}

// Asset is a registered font file.
type Asset struct {
	ID       string
	Family   string
	Filename string
	Path     string
	Data     []byte
}

// Registry maps font ids to assets. The zero value is not usable; call
// NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	assets map[string]*Asset
	faces  map[string]string // preset key -> local face file for quick previews
	custom string
	next   int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		assets: make(map[string]*Asset),
		faces:  make(map[string]string),
	}
}

var fontExtensions = map[string]bool{".ttf": true, ".otf": true, ".woff": true, ".woff2": true}

// RegisterCustom loads a font file and makes it the active custom font.
func (r *Registry) RegisterCustom(path string) (*Asset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !fontExtensions[ext] {
		return nil, fmt.Errorf("unsupported font file %s (expected .ttf, .otf, .woff or .woff2)", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	asset := &Asset{
		ID:       fmt.Sprintf("custom-%d", r.next),
		Family:   fmt.Sprintf("UserFont_%d", r.next),
		Filename: filepath.Base(path),
		Path:     path,
		Data:     data,
	}
	r.assets[asset.ID] = asset
	r.custom = asset.ID
	return asset, nil
}

// ClearCustom forgets the active custom font.
func (r *Registry) ClearCustom() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.custom != "" {
		delete(r.assets, r.custom)
	}
	r.custom = ""
}

// Custom returns the active custom font, if any.
func (r *Registry) Custom() *Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets[r.custom]
}

// Resolve returns the family string for a preset and, for the custom
// preset, the asset that must travel with generation requests.
func (r *Registry) Resolve(key string) (string, *Asset) {
	p := FindPreset(key)
	if p.Key != CustomKey {
		return p.Family, nil
	}
	if a := r.Custom(); a != nil {
		return a.Family, a
	}
	return FallbackFamily, nil
}

// SetFace records a local font file used to draw a preset in quick previews.
func (r *Registry) SetFace(key, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces[key] = path
}

// FacePath returns the local font file for key, or "" when the renderer
// should use its built-in face.
func (r *Registry) FacePath(key string) string {
	if key == CustomKey {
		if a := r.Custom(); a != nil && isTrueType(a.Path) {
			return a.Path
		}
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.faces[key]
}

func isTrueType(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".ttf" || ext == ".otf"
}

// LoadFaces records local face files keyed by preset. Keys match presets
// case-insensitively because config loaders lower-case map keys.
func (r *Registry) LoadFaces(faces map[string]string) {
	for key, path := range faces {
		for _, p := range Presets {
			if strings.EqualFold(p.Key, key) {
				r.SetFace(p.Key, path)
				break
			}
		}
	}
}
