package config

import "strings"

// Package-level accessors over the global settings and message catalog.
// Generators and model code read configuration exclusively through these.

// AvailableLanguages returns the configured language codes.
func AvailableLanguages() []string {
	langs := Global().GetStrings("languages.available")
	if len(langs) == 0 {
		return []string{"ja", "en"}
	}
	return langs
}

// DefaultLanguage returns the configured default language code.
func DefaultLanguage() string {
	return Global().GetString("languages.default", "ja")
}

// BaseURL returns the site root for the given language. Japanese content
// is served from the root, other languages from a per-language prefix.
func BaseURL(lang string) string {
	base := strings.TrimSuffix(Global().GetString("base_url", ""), "/")
	if lang == "" || lang == "ja" {
		return base
	}
	return base + "/" + lang
}

// GuidelinesPath returns the site path under which category pages live.
func GuidelinesPath() string {
	return Global().GetString("paths.guidelines", "/categories/")
}

// FAQPath returns the site path under which FAQ articles live.
func FAQPath() string {
	return Global().GetString("paths.faq", "/faq/articles/")
}

// ExamplesURL returns the page listing check implementation examples.
func ExamplesURL(lang string) string {
	return BaseURL(lang) + "/checks/examples/"
}

// PlatformName returns the localized display name for a platform.
func PlatformName(platform, lang string) string {
	return Messages().PlatformName(platform, lang)
}

// SeverityTag returns the localized display tag for a severity level.
func SeverityTag(severity, lang string) string {
	return Messages().SeverityTag(severity, lang)
}

// CheckTargetName returns the localized display name for a check target.
func CheckTargetName(target, lang string) string {
	return Messages().CheckTargetName(target, lang)
}

// CheckToolName returns the localized display name for a check tool.
func CheckToolName(tool, lang string) string {
	return Messages().CheckToolName(tool, lang)
}

// ImplementationTargetName returns the localized display name for an
// implementation target.
func ImplementationTargetName(target, lang string) string {
	return Messages().ImplementationTargetName(target, lang)
}

// Separator returns the localized separator of the given kind.
func Separator(kind, lang string) string {
	return Messages().Separator(kind, lang)
}

// Conjunction returns the localized clause connector of the given kind.
func Conjunction(kind, lang string) string {
	return Messages().Conjunction(kind, lang)
}

// PassSingular returns the condition pass phrase for a single condition.
func PassSingular(lang string) string {
	return Messages().PassText("singular", lang)
}

// PassPlural returns the condition pass phrase for multiple conditions.
func PassPlural(lang string) string {
	return Messages().PassText("plural", lang)
}

// DateFormat returns the reference-time date layout for a language.
func DateFormat(lang string) string {
	return Messages().DateFormat(lang)
}

// CheckResult returns the per-row verdict phrase for a state
// ("unchecked", "pass", "fail").
func CheckResult(state, lang string) string {
	return Messages().CheckResult(state, lang)
}

// FinalResult returns the final verdict phrase for a state
// ("unchecked", "pass", "fail").
func FinalResult(state, lang string) string {
	return Messages().FinalResult(state, lang)
}

// TargetName returns the display name of a target-platform sheet.
func TargetName(target, lang string) string {
	return Messages().TargetName(target, lang)
}
