package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/certadmin/pkg/models"
)

// EnvPrefix prefixes environment overrides, e.g. CERTADMIN_API_URL.
const EnvPrefix = "CERTADMIN"

// ReadSettings loads settings from path, or from certadmin.yaml in the
// working directory or ~/.config/certadmin when path is empty. Missing
// search-path files fall back to defaults; an explicit path must exist.
// Environment variables override file values.
func ReadSettings(path string) (*models.Settings, error) {
	v, err := load(path)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// EffectiveSettings returns every setting key with the value in effect
// after defaults, the config file and the environment are merged.
func EffectiveSettings(path string) (map[string]interface{}, error) {
	v, err := load(path)
	if err != nil {
		return nil, err
	}
	out := make(map[string]interface{})
	for _, key := range v.AllKeys() {
		out[key] = v.Get(key)
	}
	return out, nil
}

// SettingKeys lists the dotted keys UpdateSetting accepts, sorted.
func SettingKeys() []string {
	v := viper.New()
	setDefaults(v, models.DefaultSettings())
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys
}

func knownKey(key string) bool {
	if strings.HasPrefix(key, fontFacesKey+".") {
		return true
	}
	for _, k := range SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// UpdateSetting changes one key in the config file at path and writes it
// back. Values are converted to the key's type; the result must validate,
// except that the backend URL may still be unset.
func UpdateSetting(path, key, value string) (*models.Settings, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !knownKey(key) {
		return nil, fmt.Errorf("unknown setting %q (one of: %s)", key, strings.Join(SettingKeys(), ", "))
	}

	v := viper.New()
	setDefaults(v, models.DefaultSettings())
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	v.Set(key, value)

	settings, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil && !errors.Is(err, models.ErrMissingAPIURL) {
		return nil, err
	}
	if err := WriteSettings(path, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func load(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v, models.DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(ConfigFile, filepath.Ext(ConfigFile)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "certadmin"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

func decode(v *viper.Viper) (*models.Settings, error) {
	settings := &models.Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return settings, nil
}

const fontFacesKey = "text.font_faces"

func setDefaults(v *viper.Viper, s *models.Settings) {
	v.SetDefault("api.url", s.API.URL)
	v.SetDefault("api.timeout_seconds", s.API.TimeoutSeconds)
	v.SetDefault("preview.debounce_ms", s.Preview.DebounceMs)
	v.SetDefault("preview.default_view", s.Preview.DefaultView)
	v.SetDefault("output.download_dir", s.Output.DownloadDir)
	v.SetDefault("output.filename_prefix", s.Output.FilenamePrefix)
	v.SetDefault("output.format", s.Output.Format)
	v.SetDefault("output.name_column", s.Output.NameColumn)
	v.SetDefault("text.font_preset", s.Text.FontPreset)
	v.SetDefault("text.font_size", s.Text.FontSize)
	v.SetDefault("text.font_weight", s.Text.FontWeight)
	v.SetDefault("text.letter_spacing", s.Text.LetterSpacing)
	v.SetDefault("text.color", s.Text.Color)
	v.SetDefault("log.level", s.Log.Level)
	v.SetDefault("log.file", s.Log.File)
	v.SetDefault("ui.show_guides", s.UI.ShowGuides)
	v.SetDefault("ui.mouse_drag", s.UI.MouseDrag)
}

// WriteSettings saves settings as YAML.
func WriteSettings(path string, settings *models.Settings) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for config: %w", err)
		}
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
