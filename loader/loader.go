package loader

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/model"
)

// Loader reads the corpus from disk and instantiates the entity
// graph. Construction order is fixed: check tools, then the static
// maps, then checks, guidelines and FAQs, then vendor rules, and
// finally deferred FAQ link resolution.
type Loader struct {
	basedir   string
	paths     SrcPaths
	validator *SchemaValidator
	logger    *slog.Logger
}

// New prepares a loader for the corpus rooted at basedir.
func New(basedir string, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths := NewSrcPaths(basedir)
	validator, err := NewSchemaValidator(paths.Schemas, config.Global().ValidationMode(), logger)
	if err != nil {
		return nil, err
	}
	return &Loader{
		basedir:   basedir,
		paths:     paths,
		validator: validator,
		logger:    logger,
	}, nil
}

// Load populates the model registries from the corpus.
func (l *Loader) Load() error {
	l.loadCheckTools()

	if err := loadStaticMap(l.paths.Categories, func(id string, names model.LangText) error {
		_, err := model.NewCategory(id, names)
		return err
	}); err != nil {
		return err
	}
	if err := loadStaticMap(l.paths.WcagSc, func(id string, src model.WcagScSource) error {
		_, err := model.NewWcagSc(id, src)
		return err
	}); err != nil {
		return err
	}
	if err := loadStaticMap(l.paths.FaqTags, func(id string, names model.LangText) error {
		_, err := model.NewFaqTag(id, names)
		return err
	}); err != nil {
		return err
	}
	if err := loadStaticMap(l.paths.Info, func(ref string, data model.LinkData) error {
		model.InternInfoRef(ref, &data)
		return nil
	}); err != nil {
		return err
	}

	if err := loadEntityDir(l, l.paths.Checks, "check", func(src model.CheckSource) error {
		_, err := model.NewCheck(src)
		return err
	}, func(src *model.CheckSource, path string) { src.SrcPath = path }); err != nil {
		return err
	}
	if err := loadEntityDir(l, l.paths.Guidelines, "guideline", func(src model.GuidelineSource) error {
		_, err := model.NewGuideline(src)
		return err
	}, func(src *model.GuidelineSource, path string) { src.SrcPath = path }); err != nil {
		return err
	}
	if err := loadEntityDir(l, l.paths.Faq, "faq", func(src model.FaqSource) error {
		_, err := model.NewFaq(src)
		return err
	}, func(src *model.FaqSource, path string) { src.SrcPath = path }); err != nil {
		return err
	}

	if err := l.loadVendorRules(); err != nil {
		return err
	}

	if err := model.Relationships().ResolveFaqLinks(); err != nil {
		return err
	}
	l.logger.Info("corpus loaded",
		"checks", len(model.AllChecks()),
		"guidelines", len(model.AllGuidelines()),
		"faqs", len(model.AllFaqs()),
	)
	return nil
}

// loadCheckTools registers every tool named in the message catalog,
// in id order so registration is deterministic.
func (l *Loader) loadCheckTools() {
	tools := config.Messages().CheckTools
	ids := make([]string, 0, len(tools))
	for id := range tools {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, err := model.NewCheckTool(id, model.LangText(tools[id])); err != nil {
			l.logger.Warn("duplicate check tool ignored", "tool", id)
		}
	}
}

// loadStaticMap reads a JSON file shaped as a map from entity id to
// its payload and constructs one entity per key, in key order.
func loadStaticMap[T any](path string, construct func(id string, data T) error) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var entries map[string]T
	if err := json.Unmarshal(content, &entries); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := construct(id, entries[id]); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// loadEntityDir discovers every YAML file under dir, validates each
// against the named schema and constructs the entity. Paths are
// processed in sorted order so duplicate detection is deterministic.
func loadEntityDir[T any](l *Loader, dir, schemaName string, construct func(src T) error, setPath func(src *T, path string)) error {
	files, err := discoverYaml(dir)
	if err != nil {
		return err
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		var generic any
		if err := yaml.Unmarshal(content, &generic); err != nil {
			return fmt.Errorf("parsing %s: %w", file, err)
		}
		if err := l.validator.Validate(generic, schemaName, file); err != nil {
			return err
		}
		var src T
		if err := yaml.Unmarshal(content, &src); err != nil {
			return fmt.Errorf("parsing %s: %w", file, err)
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			abs = file
		}
		setPath(&src, abs)
		if err := construct(src); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

// discoverYaml lists every .yaml file under dir recursively, sorted.
func discoverYaml(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("source directory %s: %w", dir, err)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.yaml", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(matches)
	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return files, nil
}
