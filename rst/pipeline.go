package rst

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/a11ygl/a11ygl/loader"
)

// Pipeline renders the full RST tree for one language from the loaded
// corpus.
type Pipeline struct {
	lang      string
	dirs      DestDirs
	files     StaticFiles
	src       loader.SrcPaths
	templates *TemplateSet
	logger    *slog.Logger

	// Strict aborts the run on the first generator failure instead of
	// continuing with the remaining generators.
	Strict bool
}

// NewPipeline wires a pipeline for one language. basedir is the corpus
// root, destdir the root of the generated tree, langCount the number
// of published languages.
func NewPipeline(lang, basedir, destdir string, langCount int, templates *TemplateSet, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	dirs := NewDestDirs(destdir, lang, langCount)
	return &Pipeline{
		lang:      lang,
		dirs:      dirs,
		files:     NewStaticFiles(dirs),
		src:       loader.NewSrcPaths(basedir),
		templates: templates,
		logger:    logger.With("lang", lang),
	}
}

// Makefile returns the path of the generated dependency fragment.
func (p *Pipeline) Makefile() string { return p.files.Makefile }

// Run generates every output file. When targets is non-empty only
// files whose path, or whose containing directory for list
// generators, appears in targets are written. One failing generator
// does not stop the others unless Strict is set; the error reports how
// many failed.
func (p *Pipeline) Run(targets []string) error {
	generators := append(Generators(p.dirs, p.files), MakefileGenerator(p.dirs, p.files, p.src))
	failed := 0
	for _, gen := range generators {
		if err := p.runGenerator(gen, targets); err != nil {
			if p.Strict {
				return fmt.Errorf("generator %s: %w", gen.Name, err)
			}
			p.logger.Error("generator failed", "generator", gen.Name, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d generators failed", failed, len(generators))
	}
	return nil
}

func (p *Pipeline) runGenerator(gen Generator, targets []string) error {
	records, err := gen.Records(p.lang)
	if err != nil {
		return err
	}
	for _, rec := range records {
		dest := gen.OutputPath
		if !gen.SingleFile {
			dest = filepath.Join(gen.OutputPath, rec.Filename()+".rst")
		}
		if !shouldGenerate(gen, dest, targets) {
			p.logger.Debug("skipping", "generator", gen.Name, "dest", dest)
			continue
		}
		if err := gen.Spec.Validate(rec); err != nil {
			return fmt.Errorf("record for %s: %w", dest, err)
		}
		rec["lang"] = p.lang
		content, err := p.templates.Render(gen.Template, rec)
		if err != nil {
			return err
		}
		if err := writeFileAtomic(dest, content); err != nil {
			return err
		}
		p.logger.Debug("generated", "generator", gen.Name, "dest", dest)
	}
	return nil
}

// shouldGenerate applies the target filter: an empty filter builds
// everything; otherwise the destination itself, or for list
// generators its directory, must be named.
func shouldGenerate(gen Generator, dest string, targets []string) bool {
	if len(targets) == 0 {
		return true
	}
	for _, target := range targets {
		if target == dest {
			return true
		}
		if !gen.SingleFile && target == filepath.Dir(dest) {
			return true
		}
	}
	return false
}
