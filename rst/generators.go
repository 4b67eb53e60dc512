package rst

import (
	"sort"

	"github.com/a11ygl/a11ygl/model"
)

// Generator produces the records for one template. List generators
// emit one record per entity, each carrying a "filename"; single-file
// generators emit exactly one record bound to a fixed output path.
type Generator struct {
	Name       string
	Template   string
	OutputPath string
	SingleFile bool
	Spec       FieldSpec
	Records    func(lang string) ([]Record, error)
}

// Generators returns the full generator set for one language wired to
// the given output layout. The makefile generator is separate because
// it needs the target lists the others produce.
func Generators(dirs DestDirs, files StaticFiles) []Generator {
	return []Generator{
		{
			Name:       "category_page",
			Template:   "category_page",
			OutputPath: dirs.Guidelines,
			Spec:       FieldSpec{Required: []string{"filename", "guidelines"}, Lists: []string{"guidelines"}, Strings: []string{"filename"}},
			Records:    categoryRecords,
		},
		{
			Name:       "allchecks",
			Template:   "allchecks_text",
			OutputPath: files.AllChecks,
			SingleFile: true,
			Spec:       FieldSpec{Required: []string{"allchecks"}, Lists: []string{"allchecks"}},
			Records:    allChecksRecords,
		},
		{
			Name:       "check_example",
			Template:   "tool_example",
			OutputPath: dirs.Checks,
			Spec:       FieldSpec{Required: []string{"filename", "examples"}, Lists: []string{"examples"}, Strings: []string{"filename"}},
			Records:    checkExampleRecords,
		},
		{
			Name:       "faq_article",
			Template:   "faq_article",
			OutputPath: dirs.FaqArticles,
			Spec:       FieldSpec{Required: []string{"filename", "title"}, Strings: []string{"filename", "title"}},
			Records:    faqArticleRecords,
		},
		{
			Name:       "faq_tagpage",
			Template:   "faq_tagpage",
			OutputPath: dirs.FaqTags,
			Spec:       FieldSpec{Required: []string{"filename", "tag", "label", "articles"}, Lists: []string{"articles"}, Strings: []string{"filename", "tag", "label"}},
			Records:    faqTagPageRecords,
		},
		{
			Name:       "faq_index",
			Template:   "faq_index",
			OutputPath: files.FaqIndex,
			SingleFile: true,
			Spec:       FieldSpec{Required: []string{"tags", "articles"}, Lists: []string{"tags", "articles"}},
			Records:    faqIndexRecords,
		},
		{
			Name:       "faq_tag_index",
			Template:   "faq_tag_index",
			OutputPath: files.FaqTagIndex,
			SingleFile: true,
			Spec:       FieldSpec{Required: []string{"tags"}, Lists: []string{"tags"}},
			Records:    faqTagIndexRecords,
		},
		{
			Name:       "faq_article_index",
			Template:   "faq_article_index",
			OutputPath: files.FaqArticleIndex,
			SingleFile: true,
			Spec:       FieldSpec{Required: []string{"articles"}, Lists: []string{"articles"}},
			Records:    faqArticleIndexRecords,
		},
		{
			Name:       "info_to_gl",
			Template:   "info_to_gl",
			OutputPath: dirs.Info2Gl,
			Spec:       FieldSpec{Required: []string{"filename", "guidelines"}, Lists: []string{"guidelines"}, Strings: []string{"filename"}},
			Records:    infoToGuidelinesRecords,
		},
		{
			Name:       "info_to_faq",
			Template:   "info_to_faq",
			OutputPath: dirs.Info2Faq,
			Spec:       FieldSpec{Required: []string{"filename", "faqs"}, Lists: []string{"faqs"}, Strings: []string{"filename"}},
			Records:    infoToFaqsRecords,
		},
		{
			Name:       "wcag_mapping",
			Template:   "wcag21mapping",
			OutputPath: files.WcagMapping,
			SingleFile: true,
			Spec:       FieldSpec{Required: []string{"mapping"}, Lists: []string{"mapping"}},
			Records:    wcagMappingRecords,
		},
		{
			Name:       "priority_diff",
			Template:   "priority_diff",
			OutputPath: files.PriorityDiff,
			SingleFile: true,
			Spec:       FieldSpec{Required: []string{"diffs"}, Lists: []string{"diffs"}},
			Records:    priorityDiffRecords,
		},
		{
			Name:       "miscdefs",
			Template:   "miscdefs",
			OutputPath: files.MiscDefs,
			SingleFile: true,
			Spec:       FieldSpec{Required: []string{"links"}, Lists: []string{"links"}},
			Records:    miscDefsRecords,
		},
		{
			Name:       "axe_rules",
			Template:   "axe_rules",
			OutputPath: files.VendorRules,
			SingleFile: true,
			Spec:       FieldSpec{Required: []string{"version", "rules"}, Lists: []string{"rules"}, Strings: []string{"version"}},
			Records:    vendorRuleRecords,
		},
	}
}

func categoryRecords(lang string) ([]Record, error) {
	var out []Record
	for _, cat := range model.AllCategories() {
		guidelines := cat.Guidelines()
		data := make([]map[string]any, 0, len(guidelines))
		for _, gl := range guidelines {
			data = append(data, gl.TemplateData(lang))
		}
		out = append(out, Record{"filename": cat.ID(), "guidelines": data})
	}
	return out, nil
}

func allChecksRecords(lang string) ([]Record, error) {
	checks := model.AllChecks()
	data := make([]map[string]any, 0, len(checks))
	for _, check := range checks {
		data = append(data, check.TemplateData(lang, nil))
	}
	return []Record{{"allchecks": data}}, nil
}

func checkExampleRecords(lang string) ([]Record, error) {
	var out []Record
	for _, tool := range model.AllCheckTools() {
		examples := tool.ExampleTemplateData(lang)
		if len(examples) == 0 {
			continue
		}
		out = append(out, Record{
			"filename": "examples-" + tool.ID(),
			"examples": examples,
		})
	}
	return out, nil
}

func faqArticleRecords(lang string) ([]Record, error) {
	var out []Record
	for _, faq := range model.AllFaqs() {
		rec := Record(faq.TemplateData(lang))
		rec["filename"] = faq.ID()
		out = append(out, rec)
	}
	return out, nil
}

func faqTagPageRecords(lang string) ([]Record, error) {
	var out []Record
	for _, tag := range model.AllFaqTags() {
		data := tag.TemplateData(lang)
		if data == nil {
			continue
		}
		rec := Record(data)
		rec["filename"] = tag.ID()
		out = append(out, rec)
	}
	return out, nil
}

// publishedTagData returns the template data of every tag with at
// least one article, ordered by localized tag label.
func publishedTagData(lang string) []map[string]any {
	tags := model.AllFaqTags()
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Name(lang) < tags[j].Name(lang) })
	out := []map[string]any{}
	for _, tag := range tags {
		if data := tag.TemplateData(lang); data != nil {
			out = append(out, data)
		}
	}
	return out
}

func faqIndexRecords(lang string) ([]Record, error) {
	faqs := model.AllFaqsByDate()
	articles := make([]map[string]any, 0, len(faqs))
	for _, faq := range faqs {
		articles = append(articles, faq.TemplateData(lang))
	}
	return []Record{{"tags": publishedTagData(lang), "articles": articles}}, nil
}

func faqTagIndexRecords(lang string) ([]Record, error) {
	return []Record{{"tags": publishedTagData(lang)}}, nil
}

func faqArticleIndexRecords(lang string) ([]Record, error) {
	faqs := model.AllFaqsByDate()
	articles := make([]map[string]any, 0, len(faqs))
	for _, faq := range faqs {
		articles = append(articles, faq.TemplateData(lang))
	}
	return []Record{{"articles": articles}}, nil
}

func infoToGuidelinesRecords(lang string) ([]Record, error) {
	var out []Record
	for _, ref := range model.InfoRefsWithGuidelines() {
		if !ref.Internal {
			continue
		}
		guidelines := ref.Guidelines()
		data := make([]map[string]string, 0, len(guidelines))
		for _, gl := range guidelines {
			data = append(data, gl.CategoryAndID(lang))
		}
		out = append(out, Record{"filename": ref.Ref, "guidelines": data})
	}
	return out, nil
}

func infoToFaqsRecords(lang string) ([]Record, error) {
	var out []Record
	for _, ref := range model.InfoRefsWithFaqs() {
		if !ref.Internal {
			continue
		}
		faqs := ref.Faqs()
		ids := make([]string, 0, len(faqs))
		for _, faq := range faqs {
			ids = append(ids, faq.ID())
		}
		out = append(out, Record{"filename": ref.Ref, "faqs": ids})
	}
	return out, nil
}

func wcagMappingRecords(lang string) ([]Record, error) {
	scs := model.AllWcagScs()
	mapping := make([]map[string]any, 0, len(scs))
	for _, sc := range scs {
		data := sc.TemplateData()
		if guidelines := sc.Guidelines(); len(guidelines) > 0 {
			glData := make([]map[string]string, 0, len(guidelines))
			for _, gl := range guidelines {
				glData = append(glData, gl.CategoryAndID(lang))
			}
			data["guidelines"] = glData
		}
		mapping = append(mapping, data)
	}
	return []Record{{"mapping": mapping}}, nil
}

func priorityDiffRecords(string) ([]Record, error) {
	scs := model.PriorityDiffScs()
	diffs := make([]map[string]any, 0, len(scs))
	for _, sc := range scs {
		diffs = append(diffs, sc.TemplateData())
	}
	return []Record{{"diffs": diffs}}, nil
}

func miscDefsRecords(lang string) ([]Record, error) {
	links := []map[string]string{}
	for _, ref := range model.AllExternalInfoRefs() {
		data := ref.LinkData()
		if data == nil {
			continue
		}
		links = append(links, map[string]string{
			"label": ref.RefString(),
			"text":  data.Text.Text(lang),
			"url":   data.URL.Text(lang),
		})
	}
	return []Record{{"links": links}}, nil
}

func vendorRuleRecords(lang string) ([]Record, error) {
	meta := model.VendorRuleSetMetadata()
	rules := model.AllVendorRules()
	ruleData := make([]map[string]any, 0, len(rules))
	for _, rule := range rules {
		ruleData = append(ruleData, rule.TemplateData(lang))
	}
	return []Record{{
		"version":       meta.Version,
		"major_version": meta.MajorVersion,
		"deque_url":     meta.VendorURL,
		"timestamp":     meta.Timestamp,
		"rules":         ruleData,
	}}, nil
}
