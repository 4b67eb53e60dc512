// Package rst renders the loaded corpus into the reStructuredText
// source tree consumed by the site build: category pages, check
// example pages, FAQ pages and indexes, cross-reference pages, the
// reference appendices, and the makefile fragment that tracks which
// sources each page depends on.
package rst

import "path/filepath"

// Static output filenames within the destination tree.
const (
	makefileName     = "incfiles.mk"
	faqIndexName     = "index.rst"
	allChecksName    = "allchecks.rst"
	wcagMappingName  = "wcag21-mapping.rst"
	priorityDiffName = "priority-diff.rst"
	miscDefsName     = "defs.txt"
	vendorRulesName  = "axe-rules.rst"
)

// DestDirs locates the per-language output directories. With a single
// published language the language level is elided and everything sits
// directly under the base directory.
type DestDirs struct {
	Base        string
	Guidelines  string
	Checks      string
	Misc        string
	Info2Gl     string
	Info2Faq    string
	FaqBase     string
	FaqArticles string
	FaqTags     string
}

// NewDestDirs derives the output layout for one language.
func NewDestDirs(basedir, lang string, langCount int) DestDirs {
	langdir := filepath.Join(basedir, lang)
	if langCount == 1 {
		langdir = basedir
	}
	incDir := filepath.Join(langdir, "source", "inc")
	faqDir := filepath.Join(langdir, "source", "faq")
	return DestDirs{
		Base:        langdir,
		Guidelines:  filepath.Join(incDir, "gl"),
		Checks:      filepath.Join(incDir, "checks"),
		Misc:        filepath.Join(incDir, "misc"),
		Info2Gl:     filepath.Join(incDir, "info2gl"),
		Info2Faq:    filepath.Join(incDir, "info2faq"),
		FaqBase:     faqDir,
		FaqArticles: filepath.Join(faqDir, "articles"),
		FaqTags:     filepath.Join(faqDir, "tags"),
	}
}

// All returns every directory in the layout, for creation before a
// build.
func (d DestDirs) All() []string {
	return []string{
		d.Base, d.Guidelines, d.Checks, d.Misc, d.Info2Gl, d.Info2Faq,
		d.FaqBase, d.FaqArticles, d.FaqTags,
	}
}

// StaticFiles locates the single-file outputs within a destination
// layout.
type StaticFiles struct {
	AllChecks       string
	WcagMapping     string
	PriorityDiff    string
	MiscDefs        string
	VendorRules     string
	FaqIndex        string
	FaqArticleIndex string
	FaqTagIndex     string
	Makefile        string
}

// NewStaticFiles derives the single-file output paths from the
// directory layout.
func NewStaticFiles(dirs DestDirs) StaticFiles {
	return StaticFiles{
		AllChecks:       filepath.Join(dirs.Checks, allChecksName),
		WcagMapping:     filepath.Join(dirs.Misc, wcagMappingName),
		PriorityDiff:    filepath.Join(dirs.Misc, priorityDiffName),
		MiscDefs:        filepath.Join(dirs.Misc, miscDefsName),
		VendorRules:     filepath.Join(dirs.Misc, vendorRulesName),
		FaqIndex:        filepath.Join(dirs.FaqBase, faqIndexName),
		FaqArticleIndex: filepath.Join(dirs.FaqArticles, faqIndexName),
		FaqTagIndex:     filepath.Join(dirs.FaqTags, faqIndexName),
		Makefile:        filepath.Join(dirs.Base, makefileName),
	}
}
