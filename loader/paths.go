// Package loader discovers the corpus source files under a base
// directory, validates them against their JSON schemas, and
// instantiates the entity graph in a fixed order.
package loader

import "path/filepath"

// SrcPaths locates the corpus source locations under a base directory.
type SrcPaths struct {
	Guidelines string
	Checks     string
	Faq        string
	WcagSc     string
	Categories string
	FaqTags    string
	Info       string
	Schemas    string
}

// NewSrcPaths derives the standard corpus layout from the base
// directory.
func NewSrcPaths(basedir string) SrcPaths {
	yamlDir := filepath.Join(basedir, "data", "yaml")
	jsonDir := filepath.Join(basedir, "data", "json")
	return SrcPaths{
		Guidelines: filepath.Join(yamlDir, "gl"),
		Checks:     filepath.Join(yamlDir, "checks"),
		Faq:        filepath.Join(yamlDir, "faq"),
		WcagSc:     filepath.Join(jsonDir, "wcag-sc.json"),
		Categories: filepath.Join(jsonDir, "guideline-categories.json"),
		FaqTags:    filepath.Join(jsonDir, "faq-tags.json"),
		Info:       filepath.Join(jsonDir, "info.json"),
		Schemas:    filepath.Join(jsonDir, "schemas"),
	}
}
