package rst

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/width"
)

//go:embed templates
var builtinTemplates embed.FS

// Logical template names mapped to their file names within a template
// directory. Custom directories override individual files; any file
// not overridden falls back to the built-in copy.
var templateFiles = map[string]string{
	"category_page":     "gl-category.rst",
	"allchecks_text":    "checks/allchecks.rst",
	"tool_example":      "checks/examples-tool.rst",
	"faq_article":       "faq/article.rst",
	"faq_tagpage":       "faq/tagpage.rst",
	"faq_index":         "faq/index.rst",
	"faq_tag_index":     "faq/tag-index.rst",
	"faq_article_index": "faq/article-index.rst",
	"info_to_gl":        "info_to_gl.rst",
	"info_to_faq":       "info_to_faq.rst",
	"wcag21mapping":     "wcag21-mapping.rst",
	"priority_diff":     "priority-diff.rst",
	"miscdefs":          "misc-defs.txt",
	"axe_rules":         "axe-rules.rst",
	"makefile":          "incfiles.mk",
}

// Environment variables honored by the template resolver.
const (
	envTemplateDir       = "YAML2RST_USER_TEMPLATE_DIR"
	envFallbackToBuiltin = "YAML2RST_FALLBACK_TO_BUILTIN"
)

// templateFuncs are the helpers available inside templates.
var templateFuncs = template.FuncMap{
	"heading": heading,
	"join":    joinAny,
	"indent":  indentLines,
}

// heading renders an RST section heading: the text followed by an
// underline at least as wide as its display width. East Asian wide and
// fullwidth runes count as two columns.
func heading(text, char string) string {
	cols := 0
	for _, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth, width.EastAsianAmbiguous:
			cols += 2
		default:
			cols++
		}
	}
	if cols == 0 {
		cols = 1
	}
	return text + "\n" + strings.Repeat(char, cols)
}

// joinAny joins a slice of strings or of any stringable values.
func joinAny(sep string, items any) string {
	switch v := items.(type) {
	case []string:
		return strings.Join(v, sep)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, sep)
	default:
		return fmt.Sprint(items)
	}
}

// indentLines prefixes every non-empty line with n spaces.
func indentLines(n int, text string) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// TemplateSet holds the parsed templates for one run, resolved from
// the custom directory, the user directory, and the built-in copies,
// in that order.
type TemplateSet struct {
	templates map[string]*template.Template
}

// LoadTemplates resolves and parses every known template. customDir is
// the --template-dir override and may be empty. When fallback to the
// built-in copies is disabled via the environment, a file missing from
// the override directories is an error.
func LoadTemplates(customDir string) (*TemplateSet, error) {
	searchDirs := []string{}
	if customDir != "" {
		searchDirs = append(searchDirs, customDir)
	}
	if userDir := os.Getenv(envTemplateDir); userDir != "" {
		searchDirs = append(searchDirs, userDir)
	}
	fallback := true
	if v := os.Getenv(envFallbackToBuiltin); v == "false" || v == "0" {
		fallback = false
	}

	set := &TemplateSet{templates: make(map[string]*template.Template, len(templateFiles))}
	for name, file := range templateFiles {
		text, err := resolveTemplate(file, searchDirs, fallback)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		tmpl, err := template.New(name).Funcs(templateFuncs).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		set.templates[name] = tmpl
	}
	return set, nil
}

func resolveTemplate(file string, searchDirs []string, fallback bool) (string, error) {
	for _, dir := range searchDirs {
		path := filepath.Join(dir, filepath.FromSlash(file))
		if raw, err := os.ReadFile(path); err == nil {
			return string(raw), nil
		}
	}
	if !fallback && len(searchDirs) > 0 {
		return "", fmt.Errorf("not found in %s", strings.Join(searchDirs, ", "))
	}
	raw, err := builtinTemplates.ReadFile("templates/" + file)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Render executes the named template over the record.
func (s *TemplateSet) Render(name string, rec Record) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(rec)); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
