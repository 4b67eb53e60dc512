// Package config provides the layered settings registry and the localized
// message catalog used by both publishing pipelines.
package config

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

// ValidationMode controls how schema violations during source loading are
// reported.
type ValidationMode string

const (
	ValidationStrict   ValidationMode = "strict"
	ValidationWarning  ValidationMode = "warning"
	ValidationDisabled ValidationMode = "disabled"
)

// Schema is the validated shape of the settings tree.
type Schema struct {
	Languages struct {
		Available []string `yaml:"available" validate:"required,min=1"`
		Default   string   `yaml:"default" validate:"required"`
	} `yaml:"languages"`
	BaseURL string `yaml:"base_url"`
	Paths   struct {
		Guidelines string `yaml:"guidelines" validate:"required"`
		FAQ        string `yaml:"faq" validate:"required"`
	} `yaml:"paths"`
}

// Settings is a hierarchical key/value store with dotted-key access and
// layered defaults. Precedence, highest first: programmatic overrides,
// profile file, default-profile file, library config file, embedded
// defaults, hard-coded fallback.
type Settings struct {
	values  map[string]any
	profile string
	frozen  bool

	validate *validator.Validate
}

// NewSettings creates a settings store for the given profile, loading the
// layered defaults and validating the result.
func NewSettings(profile string) (*Settings, error) {
	if profile == "" {
		profile = "default"
	}
	s := &Settings{
		values:   map[string]any{},
		profile:  profile,
		validate: validator.New(),
	}
	s.loadDefaults()
	s.loadProfileFiles()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// newSettingsFromDefaults builds a settings store from the embedded
// defaults only, skipping any on-disk profiles.
func newSettingsFromDefaults() (*Settings, error) {
	s := &Settings{
		values:   map[string]any{},
		profile:  "default",
		validate: validator.New(),
	}
	s.loadDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) loadDefaults() {
	var data map[string]any
	if err := yaml.Unmarshal(embeddedDefaults, &data); err == nil && len(data) > 0 {
		s.values = data
		return
	}
	s.values = minimalDefaults()
}

func minimalDefaults() map[string]any {
	return map[string]any{
		"languages": map[string]any{
			"available": []any{"ja", "en"},
			"default":   "ja",
		},
		"base_url": "https://a11y-guidelines.freee.co.jp",
		"paths": map[string]any{
			"guidelines": "/categories/",
			"faq":        "/faq/articles/",
		},
	}
}

func (s *Settings) configBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "a11ygl")
}

// profileFilePaths returns candidate config files in order of precedence.
func (s *Settings) profileFilePaths() []string {
	base := s.configBaseDir()
	if base == "" {
		return nil
	}
	var paths []string
	if s.profile != "default" {
		paths = append(paths, filepath.Join(base, "profiles", s.profile+".yaml"))
	}
	paths = append(paths,
		filepath.Join(base, "profiles", "default.yaml"),
		filepath.Join(base, "lib", "config.yaml"),
	)
	return paths
}

func (s *Settings) loadProfileFiles() {
	for _, path := range s.profileFilePaths() {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var data map[string]any
		if err := yaml.Unmarshal(raw, &data); err != nil {
			continue
		}
		if len(data) > 0 {
			deepMerge(s.values, data)
			return
		}
	}
}

// Get returns the value at a dotted key, or def when the key is absent.
func (s *Settings) Get(key string, def any) any {
	current := any(s.values)
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return def
		}
		current, ok = m[part]
		if !ok {
			return def
		}
	}
	return current
}

// GetString returns the string value at a dotted key.
func (s *Settings) GetString(key, def string) string {
	if v, ok := s.Get(key, def).(string); ok {
		return v
	}
	return def
}

// GetStrings returns the string-slice value at a dotted key.
func (s *Settings) GetStrings(key string) []string {
	switch v := s.Get(key, nil).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Set updates a single dotted key and revalidates.
func (s *Settings) Set(key string, value any) error {
	if s.frozen {
		return fmt.Errorf("settings are frozen")
	}
	parts := strings.Split(key, ".")
	current := s.values
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return s.Validate()
}

// Update deep-merges the supplied values into the settings and revalidates.
func (s *Settings) Update(values map[string]any) error {
	if s.frozen {
		return fmt.Errorf("settings are frozen")
	}
	if len(values) == 0 {
		return nil
	}
	deepMerge(s.values, values)
	return s.Validate()
}

func deepMerge(base, update map[string]any) {
	for key, value := range update {
		if sub, ok := value.(map[string]any); ok {
			if existing, ok := base[key].(map[string]any); ok {
				deepMerge(existing, sub)
				continue
			}
		}
		base[key] = value
	}
}

// Freeze prohibits further mutation. Used once initialization completes.
func (s *Settings) Freeze() { s.frozen = true }

// Validate checks the settings tree against the schema: languages.available
// non-empty, languages.default among the available languages, paths that
// begin and end with a slash, and a well-formed base_url when non-empty.
func (s *Settings) Validate() error {
	raw, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("settings are not serializable: %w", err)
	}
	var schema Schema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return fmt.Errorf("invalid settings shape: %w", err)
	}
	if err := s.validate.Struct(&schema); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	found := false
	for _, lang := range schema.Languages.Available {
		if lang == schema.Languages.Default {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("languages.default %q is not among languages.available", schema.Languages.Default)
	}
	for key, p := range map[string]string{
		"paths.guidelines": schema.Paths.Guidelines,
		"paths.faq":        schema.Paths.FAQ,
	} {
		if !strings.HasPrefix(p, "/") || !strings.HasSuffix(p, "/") {
			return fmt.Errorf("%s must begin and end with /: %q", key, p)
		}
	}
	if schema.BaseURL != "" {
		u, err := url.Parse(schema.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base_url is not a valid URL: %q", schema.BaseURL)
		}
	}
	return nil
}

// ValidationMode returns the configured YAML validation mode.
func (s *Settings) ValidationMode() ValidationMode {
	switch ValidationMode(s.GetString("validation.yaml", string(ValidationStrict))) {
	case ValidationWarning:
		return ValidationWarning
	case ValidationDisabled:
		return ValidationDisabled
	default:
		return ValidationStrict
	}
}
