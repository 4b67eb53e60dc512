package model

import (
	"sort"
	"time"

	"github.com/a11ygl/a11ygl/config"
)

// FaqSource is the YAML shape of one FAQ article file.
type FaqSource struct {
	ID          string   `yaml:"id"`
	SortKey     int      `yaml:"sortKey"`
	Updated     string   `yaml:"updated"`
	Title       LangText `yaml:"title"`
	Problem     LangText `yaml:"problem"`
	Solution    LangText `yaml:"solution"`
	Explanation LangText `yaml:"explanation"`
	Tags        []string `yaml:"tags"`
	Guidelines  []string `yaml:"guidelines"`
	Checks      []string `yaml:"checks"`
	Info        []string `yaml:"info"`
	Faqs        []string `yaml:"faqs"`
	SrcPath     string   `yaml:"-"`
}

// Faq is one dated FAQ article with problem/solution/explanation text
// and cross-references into the rest of the corpus.
type Faq struct {
	id          string
	sortKey     int
	Updated     time.Time
	Title       LangText
	Problem     LangText
	Solution    LangText
	Explanation LangText
	SrcPath     string
}

// NewFaq constructs an article, registers it and records relationships.
// FAQ-to-FAQ references are staged for deferred resolution because
// forward references are allowed.
func NewFaq(src FaqSource) (*Faq, error) {
	for _, existing := range faqs.all() {
		if existing.sortKey == src.SortKey {
			return nil, &DuplicateError{
				Kind: KindFaq, Field: "sortKey", Value: src.SortKey,
				Paths: []string{existing.SrcPath, src.SrcPath},
			}
		}
	}
	updated, err := time.Parse(time.RFC3339, src.Updated)
	if err != nil {
		// Date-only form is also accepted.
		updated, err = time.Parse("2006-01-02", src.Updated)
		if err != nil {
			return nil, err
		}
	}
	f := &Faq{
		id:          src.ID,
		sortKey:     src.SortKey,
		Updated:     updated,
		Title:       src.Title,
		Problem:     src.Problem,
		Solution:    src.Solution,
		Explanation: src.Explanation,
		SrcPath:     src.SrcPath,
	}
	if err := faqs.add(f); err != nil {
		return nil, &DuplicateError{
			Kind: KindFaq, Field: "id", Value: src.ID,
			Paths: []string{faqs.byID[src.ID].SrcPath, src.SrcPath},
		}
	}

	rel := Relationships()
	for _, tagID := range src.Tags {
		tag, ok := GetFaqTag(tagID)
		if !ok {
			return nil, &MissingReferenceError{Kind: KindFaqTag, ID: tagID, ReferencedFrom: src.SrcPath}
		}
		rel.Associate(f, tag)
	}
	for _, glID := range src.Guidelines {
		gl, ok := GetGuideline(glID)
		if !ok {
			return nil, &MissingReferenceError{Kind: KindGuideline, ID: glID, ReferencedFrom: src.SrcPath}
		}
		rel.Associate(f, gl)
	}
	for _, checkID := range src.Checks {
		check, ok := GetCheck(checkID)
		if !ok {
			return nil, &MissingReferenceError{Kind: KindCheck, ID: checkID, ReferencedFrom: src.SrcPath}
		}
		rel.Associate(f, check)
	}
	for _, ref := range src.Info {
		rel.Associate(f, InternInfoRef(ref, nil))
	}
	for _, faqID := range src.Faqs {
		rel.DeferFaqLink(f.id, faqID)
	}
	return f, nil
}

func (f *Faq) Kind() Kind   { return KindFaq }
func (f *Faq) ID() string   { return f.id }
func (f *Faq) SortKey() int { return f.sortKey }

// Tags returns the article's tags ordered by id.
func (f *Faq) Tags() []*FaqTag {
	return sortByID(relatedAs[*FaqTag](Relationships(), f, KindFaqTag, false))
}

// Dependencies returns the source files whose change invalidates this
// article's page.
func (f *Faq) Dependencies() []string {
	rel := Relationships()
	deps := []string{f.SrcPath}
	for _, gl := range relatedAs[*Guideline](rel, f, KindGuideline, false) {
		deps = append(deps, gl.SrcPath)
	}
	for _, check := range relatedAs[*Check](rel, f, KindCheck, false) {
		deps = append(deps, check.SrcPath)
	}
	return uniq(deps)
}

// LinkData returns the localized hyperlink to this article's page.
func (f *Faq) LinkData(baseURL string) LinkData {
	data := LinkData{Text: LangText{}, URL: LangText{}}
	for _, lang := range f.Title.Languages() {
		prefix := ""
		if lang != "ja" {
			prefix = "/" + lang
		}
		data.Text[lang] = f.Title[lang]
		data.URL[lang] = baseURL + prefix + config.FAQPath() + f.id + ".html"
	}
	return data
}

// TemplateData renders the article for templates.
func (f *Faq) TemplateData(lang string) map[string]any {
	rel := Relationships()
	tagIDs := []string{}
	for _, tag := range f.Tags() {
		tagIDs = append(tagIDs, tag.ID())
	}
	data := map[string]any{
		"id":          f.id,
		"title":       f.Title.Text(lang),
		"problem":     f.Problem.Text(lang),
		"solution":    f.Solution.Text(lang),
		"explanation": f.Explanation.Text(lang),
		"updated_str": f.Updated.Format(config.DateFormat(lang)),
		"tags":        tagIDs,
	}
	if guidelines := relatedAs[*Guideline](rel, f, KindGuideline, true); len(guidelines) > 0 {
		glData := make([]map[string]string, 0, len(guidelines))
		for _, gl := range guidelines {
			glData = append(glData, gl.CategoryAndID(lang))
		}
		data["guidelines"] = glData
	}
	if checks := sortByID(relatedAs[*Check](rel, f, KindCheck, false)); len(checks) > 0 {
		checkData := make([]map[string]any, 0, len(checks))
		for _, check := range checks {
			checkData = append(checkData, check.TemplateData(lang, nil))
		}
		data["checks"] = checkData
	}
	if related := relatedAs[*Faq](rel, f, KindFaq, true); len(related) > 0 {
		ids := make([]string, 0, len(related))
		for _, other := range related {
			ids = append(ids, other.ID())
		}
		data["related_faqs"] = ids
	}
	if info := relatedAs[*InfoRef](rel, f, KindInfoRef, false); len(info) > 0 {
		refs := make([]string, 0, len(info))
		for _, ref := range info {
			refs = append(refs, ref.RefString())
		}
		data["info"] = refs
	}
	return data
}

// GetFaq looks up an article by id.
func GetFaq(id string) (*Faq, bool) { return faqs.get(id) }

// AllFaqs returns all articles ordered by sort key.
func AllFaqs() []*Faq {
	out := faqs.all()
	sort.SliceStable(out, func(i, j int) bool { return out[i].sortKey < out[j].sortKey })
	return out
}

// AllFaqsByDate returns all articles ordered by update date, newest
// first.
func AllFaqsByDate() []*Faq {
	out := faqs.all()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Updated.After(out[j].Updated) })
	return out
}

// FaqSrcPaths returns every FAQ source path in load order.
func FaqSrcPaths() []string {
	paths := make([]string, 0, faqs.len())
	for _, f := range faqs.all() {
		paths = append(paths, f.SrcPath)
	}
	return paths
}

// FaqTag labels FAQ articles. Only tags carrying at least one article
// are published.
type FaqTag struct {
	id    string
	names LangText
}

// NewFaqTag registers a tag under the given id.
func NewFaqTag(id string, names LangText) (*FaqTag, error) {
	t := &FaqTag{id: id, names: names}
	if err := faqTags.add(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *FaqTag) Kind() Kind { return KindFaqTag }
func (t *FaqTag) ID() string { return t.id }

// Name returns the localized tag label.
func (t *FaqTag) Name(lang string) string { return t.names.Text(lang) }

// Articles returns the tagged articles ordered by sort key.
func (t *FaqTag) Articles() []*Faq {
	return relatedAs[*Faq](Relationships(), t, KindFaq, true)
}

// TemplateData renders the tag for index templates, or nil for a tag
// with no published articles.
func (t *FaqTag) TemplateData(lang string) map[string]any {
	articles := t.Articles()
	if len(articles) == 0 {
		return nil
	}
	ids := make([]string, 0, len(articles))
	for _, faq := range articles {
		ids = append(ids, faq.ID())
	}
	return map[string]any{
		"tag":      t.id,
		"label":    t.Name(lang),
		"articles": ids,
	}
}

// GetFaqTag looks up a tag by id.
func GetFaqTag(id string) (*FaqTag, bool) { return faqTags.get(id) }

// AllFaqTags returns all tags ordered by id.
func AllFaqTags() []*FaqTag { return sortByID(faqTags.all()) }
