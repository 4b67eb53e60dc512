package rst

import (
	"path/filepath"
	"strings"

	"github.com/a11ygl/a11ygl/loader"
	"github.com/a11ygl/a11ygl/model"
)

// MakefileGenerator emits the dependency fragment included by the site
// build. It walks the relationship graph so that every generated page
// is rebuilt when any source file it draws from changes.
func MakefileGenerator(dirs DestDirs, files StaticFiles, src loader.SrcPaths) Generator {
	return Generator{
		Name:       "makefile",
		Template:   "makefile",
		OutputPath: files.Makefile,
		SingleFile: true,
		Spec:       FieldSpec{Required: []string{"depends"}, Lists: []string{"depends"}},
		Records: func(string) ([]Record, error) {
			return []Record{makefileRecord(dirs, files, src)}, nil
		},
	}
}

func makefileRecord(dirs DestDirs, files StaticFiles, src loader.SrcPaths) Record {
	rec := Record{
		"gl_yaml":    strings.Join(model.GuidelineSrcPaths(), " "),
		"check_yaml": strings.Join(model.CheckSrcPaths(), " "),
		"faq_yaml":   strings.Join(model.FaqSrcPaths(), " "),
		"wcag_sc":    src.WcagSc,
		"info_src":   src.Info,

		"all_checks_target": files.AllChecks,
		"faq_index_target": strings.Join([]string{
			files.FaqIndex, files.FaqTagIndex, files.FaqArticleIndex,
		}, " "),
		"wcag_mapping_target":  files.WcagMapping,
		"priority_diff_target": files.PriorityDiff,
		"miscdefs_target":      files.MiscDefs,
		"axe_rules_target":     files.VendorRules,
	}

	// Each entry is one makefile rule: the generated file and the
	// space-joined source files whose modification must rebuild it.
	depends := []map[string]string{}
	addEntry := func(targets *[]string, target string, deps []string) {
		*targets = append(*targets, target)
		depends = append(depends, map[string]string{
			"target":  target,
			"depends": strings.Join(deps, " "),
		})
	}

	var categoryTargets []string
	for _, cat := range model.AllCategories() {
		target := filepath.Join(dirs.Guidelines, cat.ID()+".rst")
		addEntry(&categoryTargets, target, cat.Dependencies())
	}

	var toolTargets []string
	for _, tool := range model.AllCheckTools() {
		deps := tool.Dependencies()
		if len(deps) == 0 {
			continue
		}
		target := filepath.Join(dirs.Checks, "examples-"+tool.ID()+".rst")
		addEntry(&toolTargets, target, deps)
	}

	var articleTargets []string
	for _, faq := range model.AllFaqs() {
		target := filepath.Join(dirs.FaqArticles, faq.ID()+".rst")
		addEntry(&articleTargets, target, faq.Dependencies())
	}

	var tagTargets []string
	for _, tag := range model.AllFaqTags() {
		articles := tag.Articles()
		if len(articles) == 0 {
			continue
		}
		var deps []string
		for _, faq := range articles {
			deps = append(deps, faq.Dependencies()...)
		}
		target := filepath.Join(dirs.FaqTags, tag.ID()+".rst")
		addEntry(&tagTargets, target, deps)
	}

	var info2glTargets []string
	for _, ref := range model.InfoRefsWithGuidelines() {
		if !ref.Internal {
			continue
		}
		var deps []string
		for _, gl := range ref.Guidelines() {
			deps = append(deps, gl.SrcPath)
		}
		target := filepath.Join(dirs.Info2Gl, ref.Ref+".rst")
		addEntry(&info2glTargets, target, deps)
	}

	var info2faqTargets []string
	for _, ref := range model.InfoRefsWithFaqs() {
		if !ref.Internal {
			continue
		}
		var deps []string
		for _, faq := range ref.Faqs() {
			deps = append(deps, faq.SrcPath)
		}
		target := filepath.Join(dirs.Info2Faq, ref.Ref+".rst")
		addEntry(&info2faqTargets, target, deps)
	}

	rec["guideline_category_target"] = strings.Join(categoryTargets, " ")
	rec["check_example_target"] = strings.Join(toolTargets, " ")
	rec["faq_article_target"] = strings.Join(articleTargets, " ")
	rec["faq_tagpage_target"] = strings.Join(tagTargets, " ")
	rec["info_to_gl_target"] = strings.Join(info2glTargets, " ")
	rec["info_to_faq_target"] = strings.Join(info2faqTargets, " ")
	rec["depends"] = depends
	return rec
}
