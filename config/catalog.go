package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var embeddedMessages []byte

// LocalizedText holds per-language renderings of a single phrase,
// keyed by language code.
type LocalizedText map[string]string

// Text returns the phrase in the requested language, falling back to
// Japanese when the language is not present.
func (t LocalizedText) Text(lang string) string {
	if s, ok := t[lang]; ok {
		return s
	}
	return t["ja"]
}

// MessageCatalog is the set of localized phrases used across generated
// documents and checklists. Lookups never fail: an unknown key is
// returned verbatim so a missing translation shows up in output rather
// than aborting a build.
type MessageCatalog struct {
	SeverityTags          map[string]LocalizedText `yaml:"severity_tags"`
	CheckTargets          map[string]LocalizedText `yaml:"check_targets"`
	CheckTools            map[string]LocalizedText `yaml:"check_tools"`
	PlatformNames         map[string]LocalizedText `yaml:"platform_names"`
	ImplementationTargets map[string]LocalizedText `yaml:"implementation_targets"`
	Separators            map[string]LocalizedText `yaml:"separators"`
	Conjunctions          map[string]LocalizedText `yaml:"conjunctions"`
	PassTexts             map[string]LocalizedText `yaml:"pass_texts"`
	DateFormats           map[string]LocalizedText `yaml:"date_formats"`
	CheckResults          map[string]LocalizedText `yaml:"check_results"`
	FinalResults          map[string]LocalizedText `yaml:"final_results"`
	TargetNames           map[string]LocalizedText `yaml:"target_names"`
}

// LoadMessageCatalog parses the embedded catalog. It is called once
// during initialization; user configuration cannot override messages.
func LoadMessageCatalog() (*MessageCatalog, error) {
	var c MessageCatalog
	if err := yaml.Unmarshal(embeddedMessages, &c); err != nil {
		return nil, fmt.Errorf("parsing message catalog: %w", err)
	}
	return &c, nil
}

func lookup(m map[string]LocalizedText, key, lang string) string {
	if t, ok := m[key]; ok {
		return t.Text(lang)
	}
	return key
}

// SeverityTag returns the display tag for a severity level.
func (c *MessageCatalog) SeverityTag(severity, lang string) string {
	return lookup(c.SeverityTags, severity, lang)
}

// CheckTargetName returns the display name for a check target.
func (c *MessageCatalog) CheckTargetName(target, lang string) string {
	return lookup(c.CheckTargets, target, lang)
}

// CheckToolName returns the display name for a check tool.
func (c *MessageCatalog) CheckToolName(tool, lang string) string {
	return lookup(c.CheckTools, tool, lang)
}

// PlatformName returns the display name for a platform.
func (c *MessageCatalog) PlatformName(platform, lang string) string {
	return lookup(c.PlatformNames, platform, lang)
}

// ImplementationTargetName returns the display name for an
// implementation target.
func (c *MessageCatalog) ImplementationTargetName(target, lang string) string {
	return lookup(c.ImplementationTargets, target, lang)
}

// Separator returns the separator string of the given kind
// ("text", "list", "and", "or").
func (c *MessageCatalog) Separator(kind, lang string) string {
	return lookup(c.Separators, kind, lang)
}

// Conjunction returns the clause connector of the given kind
// ("and", "or").
func (c *MessageCatalog) Conjunction(kind, lang string) string {
	return lookup(c.Conjunctions, kind, lang)
}

// PassText returns the condition pass phrase, singular or plural.
func (c *MessageCatalog) PassText(form, lang string) string {
	return lookup(c.PassTexts, form, lang)
}

// DateFormat returns the reference-time layout used when rendering
// dates for the given language.
func (c *MessageCatalog) DateFormat(lang string) string {
	return lookup(c.DateFormats, "default", lang)
}

// CheckResult returns the per-check result phrase for one of
// "unchecked", "pass", "fail".
func (c *MessageCatalog) CheckResult(state, lang string) string {
	return lookup(c.CheckResults, state, lang)
}

// FinalResult returns the aggregated result phrase for one of
// "unchecked", "pass", "fail".
func (c *MessageCatalog) FinalResult(state, lang string) string {
	return lookup(c.FinalResults, state, lang)
}

// TargetName returns the localized sheet title for a checklist target.
func (c *MessageCatalog) TargetName(target, lang string) string {
	return lookup(c.TargetNames, target, lang)
}
