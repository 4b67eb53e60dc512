package model

import (
	"github.com/a11ygl/a11ygl/config"
)

// GuidelineSource is the YAML shape of one guideline file.
type GuidelineSource struct {
	ID        string   `yaml:"id"`
	SortKey   int      `yaml:"sortKey"`
	Category  string   `yaml:"category"`
	Title     LangText `yaml:"title"`
	Platform  []string `yaml:"platform"`
	Guideline LangText `yaml:"guideline"`
	Intent    LangText `yaml:"intent"`
	Checks    []string `yaml:"checks"`
	SC        []string `yaml:"sc"`
	Info      []string `yaml:"info"`
	SrcPath   string   `yaml:"-"`
}

// Guideline is one editorial accessibility rule. It belongs to exactly
// one category, groups one or more checks and references WCAG success
// criteria and supplementary information.
type Guideline struct {
	id       string
	sortKey  int
	Title    LangText
	Platform []string
	Body     LangText
	Intent   LangText
	SrcPath  string
}

// NewGuideline constructs a guideline, registers it and records its
// relationships. The referenced category, checks and success criteria
// must already be loaded.
func NewGuideline(src GuidelineSource) (*Guideline, error) {
	for _, existing := range guidelines.all() {
		if existing.sortKey == src.SortKey {
			return nil, &DuplicateError{
				Kind: KindGuideline, Field: "sortKey", Value: src.SortKey,
				Paths: []string{existing.SrcPath, src.SrcPath},
			}
		}
	}
	g := &Guideline{
		id:       src.ID,
		sortKey:  src.SortKey,
		Title:    src.Title,
		Platform: src.Platform,
		Body:     src.Guideline,
		Intent:   src.Intent,
		SrcPath:  src.SrcPath,
	}
	if err := guidelines.add(g); err != nil {
		return nil, &DuplicateError{
			Kind: KindGuideline, Field: "id", Value: src.ID,
			Paths: []string{guidelines.byID[src.ID].SrcPath, src.SrcPath},
		}
	}

	rel := Relationships()
	category, ok := GetCategory(src.Category)
	if !ok {
		return nil, &MissingReferenceError{Kind: KindCategory, ID: src.Category, ReferencedFrom: src.SrcPath}
	}
	rel.Associate(g, category)

	for _, checkID := range src.Checks {
		check, ok := GetCheck(checkID)
		if !ok {
			return nil, &MissingReferenceError{Kind: KindCheck, ID: checkID, ReferencedFrom: src.SrcPath}
		}
		rel.Associate(g, check)
	}
	for _, scID := range src.SC {
		sc, ok := GetWcagSc(scID)
		if !ok {
			return nil, &MissingReferenceError{Kind: KindWcagSc, ID: scID, ReferencedFrom: src.SrcPath}
		}
		rel.Associate(g, sc)
	}
	// Every check attached to the guideline inherits the guideline's
	// info references.
	for _, ref := range src.Info {
		info := InternInfoRef(ref, nil)
		rel.Associate(g, info)
		for _, check := range relatedAs[*Check](rel, g, KindCheck, false) {
			rel.Associate(check, info)
		}
	}
	return g, nil
}

func (g *Guideline) Kind() Kind   { return KindGuideline }
func (g *Guideline) ID() string   { return g.id }
func (g *Guideline) SortKey() int { return g.sortKey }

// Category returns the owning category.
func (g *Guideline) Category() *Category {
	cats := relatedAs[*Category](Relationships(), g, KindCategory, false)
	if len(cats) == 0 {
		return nil
	}
	return cats[0]
}

// Checks returns the member checks ordered by id.
func (g *Guideline) Checks() []*Check {
	checks := relatedAs[*Check](Relationships(), g, KindCheck, false)
	return sortByID(checks)
}

// CategoryAndID returns the localized category name paired with the
// guideline id, as used by check pages to point back at guidelines.
func (g *Guideline) CategoryAndID(lang string) map[string]string {
	return map[string]string{
		"category":  g.Category().Name(lang),
		"guideline": g.id,
	}
}

// LinkData returns the localized hyperlink pointing at this guideline's
// anchor on its category page.
func (g *Guideline) LinkData(baseURL string) LinkData {
	category := g.Category()
	data := LinkData{Text: LangText{}, URL: LangText{}}
	for _, lang := range g.Title.Languages() {
		sep := config.Separator("text", lang)
		prefix := ""
		if lang != "ja" {
			prefix = "/" + lang
		}
		data.Text[lang] = category.Name(lang) + sep + g.Title[lang]
		data.URL[lang] = baseURL + prefix + config.GuidelinesPath() + category.ID() + ".html#" + g.id
	}
	return data
}

// TemplateData renders the guideline for the category-page template.
func (g *Guideline) TemplateData(lang string) map[string]any {
	rel := Relationships()
	data := map[string]any{
		"id":        g.id,
		"title":     g.Title.Text(lang),
		"platform":  joinPlatformItems(g.Platform, lang),
		"guideline": g.Body.Text(lang),
		"intent":    g.Intent.Text(lang),
		"category":  g.Category().Name(lang),
	}

	checkData := []map[string]any{}
	for _, check := range g.Checks() {
		checkData = append(checkData, check.TemplateData(lang, g.Platform))
	}
	data["checks"] = checkData

	scData := []map[string]any{}
	for _, sc := range relatedAs[*WcagSc](rel, g, KindWcagSc, true) {
		scData = append(scData, sc.TemplateData())
	}
	data["scs"] = scData

	if faqs := relatedAs[*Faq](rel, g, KindFaq, true); len(faqs) > 0 {
		ids := make([]string, 0, len(faqs))
		for _, faq := range faqs {
			ids = append(ids, faq.ID())
		}
		data["faqs"] = ids
	}
	if info := relatedAs[*InfoRef](rel, g, KindInfoRef, false); len(info) > 0 {
		refs := make([]string, 0, len(info))
		for _, ref := range info {
			refs = append(refs, ref.RefString())
		}
		data["info"] = refs
	}
	return data
}

// GetGuideline looks up a guideline by id.
func GetGuideline(id string) (*Guideline, bool) { return guidelines.get(id) }

// AllGuidelines returns all guidelines in load order.
func AllGuidelines() []*Guideline { return guidelines.all() }

// GuidelineSrcPaths returns every guideline source path in load order.
func GuidelineSrcPaths() []string {
	paths := make([]string, 0, guidelines.len())
	for _, g := range guidelines.all() {
		paths = append(paths, g.SrcPath)
	}
	return paths
}
