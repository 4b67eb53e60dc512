// Package model holds the typed entity graph built from the corpus
// sources: categories, guidelines, checks with their condition trees,
// FAQ articles and tags, WCAG success criteria, information references
// and vendor rules, plus the relationship index connecting them.
package model

import "sort"

// Kind identifies an entity type within the relationship index.
type Kind string

const (
	KindCategory   Kind = "category"
	KindGuideline  Kind = "guideline"
	KindCheck      Kind = "check"
	KindCheckTool  Kind = "check_tool"
	KindFaq        Kind = "faq"
	KindFaqTag     Kind = "faq_tag"
	KindWcagSc     Kind = "wcag_sc"
	KindInfoRef    Kind = "info_ref"
	KindVendorRule Kind = "vendor_rule"
)

// Entity is anything that participates in the relationship index.
type Entity interface {
	Kind() Kind
	ID() string
}

// sortKeyed is implemented by entities carrying a numeric sort key.
type sortKeyed interface {
	SortKey() int
}

// LangText holds per-language renderings of one field, keyed by
// language code ("ja", "en").
type LangText map[string]string

// Text returns the field in the requested language, falling back to
// Japanese when the language is not present.
func (t LangText) Text(lang string) string {
	if s, ok := t[lang]; ok {
		return s
	}
	return t["ja"]
}

// Languages returns the language codes present, sorted.
func (t LangText) Languages() []string {
	langs := make([]string, 0, len(t))
	for lang := range t {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// sortByID orders entities by id in place and returns the slice.
func sortByID[T Entity](items []T) []T {
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID() < items[j].ID() })
	return items
}

// LinkData is a localized hyperlink: anchor text and URL per language.
type LinkData struct {
	Text LangText `json:"text" yaml:"text"`
	URL  LangText `json:"url" yaml:"url"`
}
