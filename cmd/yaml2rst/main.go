// Command yaml2rst renders the accessibility guidelines corpus into
// the reStructuredText tree consumed by the site build.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/loader"
	"github.com/a11ygl/a11ygl/model"
	"github.com/a11ygl/a11ygl/rst"
	"github.com/a11ygl/a11ygl/version"
)

// envConfigFile points at an optional settings overlay file.
const envConfigFile = "YAML2RST_CONFIG_FILE"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		lang        string
		basedir     string
		templateDir string
		watch       bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "yaml2rst [targets...]",
		Short: "Generate guideline RST sources from the YAML corpus",
		Long: `yaml2rst loads the guidelines corpus (YAML source files plus the
static JSON maps), resolves all cross-references, and renders the RST
include tree for one language: category pages, checklist pages, FAQ
pages and indexes, reference appendices, and the makefile fragment
that records which sources each generated file depends on.

With positional targets only the named output files (or, for per-entity
generators, output directories) are regenerated.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(lang, basedir, templateDir, args, watch, verbose)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Output language (default: configured default language)")
	cmd.Flags().StringVar(&basedir, "basedir", ".", "Corpus base directory (also the output root)")
	cmd.Flags().StringVar(&templateDir, "template-dir", "", "Directory with template overrides")
	cmd.Flags().BoolVar(&watch, "watch", false, "Watch source files and regenerate on change")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	return cmd
}

func run(lang, basedir, templateDir string, targets []string, watch, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := initSettings(); err != nil {
		return err
	}
	if lang == "" {
		lang = config.DefaultLanguage()
	}
	if !validLanguage(lang) {
		return fmt.Errorf("unsupported language %q (available: %v)", lang, config.AvailableLanguages())
	}
	basedir, err := filepath.Abs(basedir)
	if err != nil {
		return err
	}

	templates, err := rst.LoadTemplates(templateDir)
	if err != nil {
		return err
	}
	pipeline := rst.NewPipeline(lang, basedir, basedir, len(config.AvailableLanguages()), templates, logger)
	pipeline.Strict = config.Global().ValidationMode() == config.ValidationStrict

	rebuild := func() error {
		model.ResetAll()
		if err := loadCorpus(basedir, logger); err != nil {
			return err
		}
		return pipeline.Run(targets)
	}
	if err := rebuild(); err != nil {
		return err
	}
	logger.Info("generation completed", "lang", lang, "makefile", pipeline.Makefile())

	if !watch {
		return nil
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rst.Watch(ctx, basedir, logger, rebuild); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// initSettings loads the yaml2rst settings profile and applies the
// overlay file named by the environment, if any.
func initSettings() error {
	settings, err := config.NewSettings("yaml2rst")
	if err != nil {
		return err
	}
	if path := os.Getenv(envConfigFile); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		var overlay map[string]any
		if err := yaml.Unmarshal(raw, &overlay); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := settings.Update(overlay); err != nil {
			return err
		}
	}
	config.InitGlobal(settings)
	return nil
}

func validLanguage(lang string) bool {
	for _, available := range config.AvailableLanguages() {
		if available == lang {
			return true
		}
	}
	return false
}

// loadCorpus loads the YAML/JSON sources and resolves the internal
// info references against the label table of the last site build. The
// label table is required here: cross-reference pages cannot be
// rendered without it.
func loadCorpus(basedir string, logger *slog.Logger) error {
	corpus, err := loader.New(basedir, logger)
	if err != nil {
		return err
	}
	if err := corpus.Load(); err != nil {
		return err
	}
	links, err := version.InfoLinks(basedir, config.BaseURL(""), config.AvailableLanguages())
	if err != nil {
		return err
	}
	version.HydrateInfoRefs(links)
	return nil
}
