package model

import "github.com/a11ygl/a11ygl/config"

// Category groups guidelines. Categories come from a static JSON map
// and are referenced by id from guideline sources.
type Category struct {
	id    string
	names LangText
}

// NewCategory registers a category under the given id.
func NewCategory(id string, names LangText) (*Category, error) {
	c := &Category{id: id, names: names}
	if err := categories.add(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) Kind() Kind { return KindCategory }
func (c *Category) ID() string { return c.id }

// Name returns the localized category name.
func (c *Category) Name(lang string) string { return c.names.Text(lang) }

// Guidelines returns the member guidelines ordered by sort key.
func (c *Category) Guidelines() []*Guideline {
	return relatedAs[*Guideline](Relationships(), c, KindGuideline, true)
}

// Dependencies returns the source files whose change invalidates this
// category's page: every member guideline plus the checks and FAQs
// those guidelines reference. Order-preserving, de-duplicated.
func (c *Category) Dependencies() []string {
	rel := Relationships()
	var deps []string
	for _, gl := range c.Guidelines() {
		deps = append(deps, gl.SrcPath)
		for _, check := range relatedAs[*Check](rel, gl, KindCheck, false) {
			deps = append(deps, check.SrcPath)
		}
		for _, faq := range relatedAs[*Faq](rel, gl, KindFaq, false) {
			deps = append(deps, faq.SrcPath)
		}
	}
	return uniq(deps)
}

// GetCategory looks up a category by id.
func GetCategory(id string) (*Category, bool) { return categories.get(id) }

// AllCategories returns all categories in load order.
func AllCategories() []*Category { return categories.all() }

// joinPlatformItems renders a platform list as one localized string.
func joinPlatformItems(items []string, lang string) string {
	sep := config.Separator("list", lang)
	out := ""
	for i, item := range items {
		if i > 0 {
			out += sep
		}
		out += config.PlatformName(item, lang)
	}
	return out
}

// uniq removes duplicates while preserving first-occurrence order.
func uniq(items []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
