// Package version reads the corpus version descriptor and the label
// table produced by the site build, turning the latter into the
// info-link map that hydrates internal information references.
package version

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/a11ygl/a11ygl/model"
)

// Info is the corpus version descriptor.
type Info struct {
	ChecksheetVersion string `yaml:"checksheet_version"`
	ChecksheetDate    string `yaml:"checksheet_date"`

	GuidelinesVersion string `yaml:"guidelines_version"`
	GuidelinesDate    string `yaml:"guidelines_date"`
}

// legacyAssignment matches one `key = "value"` line of the legacy
// descriptor format.
var legacyAssignment = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*["']([^"']*)["']\s*$`)

// Load reads the version descriptor from the base directory, trying
// `version.yaml` first and the legacy `version.py` assignment format
// second. A missing descriptor is fatal for both pipelines.
func Load(basedir string) (*Info, error) {
	yamlPath := filepath.Join(basedir, "version.yaml")
	if raw, err := os.ReadFile(yamlPath); err == nil {
		var info Info
		if err := yaml.Unmarshal(raw, &info); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", yamlPath, err)
		}
		return validate(&info, yamlPath)
	}

	legacyPath := filepath.Join(basedir, "version.py")
	raw, err := os.ReadFile(legacyPath)
	if err != nil {
		return nil, fmt.Errorf("version descriptor not found in %s: %w", basedir, err)
	}
	values := map[string]string{}
	for _, line := range strings.Split(string(raw), "\n") {
		if m := legacyAssignment.FindStringSubmatch(line); m != nil {
			values[m[1]] = m[2]
		}
	}
	info := &Info{
		ChecksheetVersion: values["checksheet_version"],
		ChecksheetDate:    values["checksheet_date"],
		GuidelinesVersion: values["guidelines_version"],
		GuidelinesDate:    values["guidelines_date"],
	}
	return validate(info, legacyPath)
}

func validate(info *Info, path string) (*Info, error) {
	if info.ChecksheetVersion == "" || info.ChecksheetDate == "" {
		return nil, fmt.Errorf("%s: checksheet_version and checksheet_date are required", path)
	}
	return info, nil
}

// labelTableFile is the per-language label dump written next to the
// site build's doctrees.
const labelTableFile = "build/doctrees/labels.json"

// langPathPrefix returns the site path prefix for a language.
func langPathPrefix(lang string) string {
	if lang == "ja" {
		return ""
	}
	return lang + "/"
}

// InfoLinks reads the per-language label tables under basedir and
// produces the label-to-link map. Each table maps a label to the
// triple [docname, anchor, text]; labels with any empty component are
// skipped.
func InfoLinks(basedir, baseURL string, langs []string) (map[string]model.LinkData, error) {
	info := map[string]model.LinkData{}
	for _, lang := range langs {
		path := filepath.Join(basedir, lang, labelTableFile)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading label table %s: %w", path, err)
		}
		var labels map[string][3]string
		if err := json.Unmarshal(raw, &labels); err != nil {
			return nil, fmt.Errorf("parsing label table %s: %w", path, err)
		}
		for label, parts := range labels {
			docname, anchor, text := parts[0], parts[1], parts[2]
			if docname == "" || anchor == "" || text == "" {
				continue
			}
			entry, ok := info[label]
			if !ok {
				entry = model.LinkData{Text: model.LangText{}, URL: model.LangText{}}
			}
			entry.Text[lang] = text
			entry.URL[lang] = fmt.Sprintf("%s/%s%s.html#%s", baseURL, langPathPrefix(lang), docname, anchor)
			info[label] = entry
		}
	}
	return info, nil
}

// HydrateInfoRefs attaches link data to every loaded internal
// reference that appears in the label map.
func HydrateInfoRefs(links map[string]model.LinkData) {
	for _, ref := range model.AllInternalInfoRefs() {
		if data, ok := links[ref.Ref]; ok {
			ref.SetLink(data)
		}
	}
}

// RefTexts projects the label map down to label → lang → text, the
// shape consumed by the RST-markup normalizer.
func RefTexts(links map[string]model.LinkData) map[string]map[string]string {
	out := make(map[string]map[string]string, len(links))
	for label, data := range links {
		out[label] = map[string]string(data.Text)
	}
	return out
}
