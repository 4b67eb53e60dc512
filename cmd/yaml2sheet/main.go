// Command yaml2sheet builds the accessibility checklist spreadsheet
// from the YAML corpus through the Google Sheets API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/loader"
	"github.com/a11ygl/a11ygl/sheet"
	"github.com/a11ygl/a11ygl/version"
)

// appConfig is the yaml2sheet configuration file.
type appConfig struct {
	Development environment `yaml:"development"`
	Production  environment `yaml:"production"`

	// TokenFile holds the OAuth token obtained out of band.
	TokenFile   string `yaml:"token_file"`
	EditorEmail string `yaml:"editor_email"`
	BaseURL     string `yaml:"base_url"`
	VersionCell string `yaml:"version_cell"`
}

type environment struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
}

const configTemplate = `# yaml2sheet configuration
development:
  spreadsheet_id: ""
production:
  spreadsheet_id: ""
token_file: token.json
editor_email: ""
# base_url: https://a11y-guidelines.freee.co.jp
# version_cell: A27
`

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath   string
		initialize   bool
		production   bool
		development  bool
		basedir      string
		baseURL      string
		verbose      bool
		createConfig bool
	)

	cmd := &cobra.Command{
		Use:   "yaml2sheet",
		Short: "Build the checklist spreadsheet from the YAML corpus",
		Long: `yaml2sheet loads the guidelines corpus, flattens every check into
checklist rows per target platform and language, and synthesizes the
spreadsheet through the Google Sheets batch-update API: sheet creation,
cell data with formulas and dropdowns, formatting, protection, and the
version cell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if production && development {
				return fmt.Errorf("--production and --development are mutually exclusive")
			}
			if createConfig {
				return writeConfigTemplate(configPath)
			}
			return run(configPath, basedir, baseURL, production, initialize, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ~/.config/a11ygl/yaml2sheet.yaml)")
	cmd.Flags().BoolVar(&initialize, "init", false, "Delete all sheets after the first before generating")
	cmd.Flags().BoolVar(&production, "production", false, "Target the production spreadsheet")
	cmd.Flags().BoolVar(&development, "development", false, "Target the development spreadsheet (default)")
	cmd.Flags().StringVar(&basedir, "basedir", ".", "Corpus base directory")
	cmd.Flags().StringVar(&baseURL, "url", "", "Base URL override for generated links")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	cmd.Flags().BoolVar(&createConfig, "create-config", false, "Write a starter config file and exit")
	return cmd
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "a11ygl", "yaml2sheet.yaml"), nil
}

func writeConfigTemplate(path string) error {
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func loadAppConfig(path string) (*appConfig, error) {
	if path == "" {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return nil, err
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg appConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func run(configPath, basedir, baseURL string, production, initialize, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}
	env := cfg.Development
	if production {
		env = cfg.Production
	}
	if env.SpreadsheetID == "" {
		return fmt.Errorf("no spreadsheet id configured for the selected environment")
	}

	settings, err := config.NewSettings("yaml2sheet")
	if err != nil {
		return err
	}
	overrides := map[string]any{}
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}
	if baseURL != "" {
		overrides["base_url"] = baseURL
	}
	if cfg.VersionCell != "" {
		overrides["sheet"] = map[string]any{"version_cell": cfg.VersionCell}
	}
	if len(overrides) > 0 {
		if err := settings.Update(overrides); err != nil {
			return err
		}
	}
	config.InitGlobal(settings)

	basedir, err = filepath.Abs(basedir)
	if err != nil {
		return err
	}
	corpus, err := loader.New(basedir, logger)
	if err != nil {
		return err
	}
	if err := corpus.Load(); err != nil {
		return err
	}
	info, err := version.Load(basedir)
	if err != nil {
		return err
	}
	// The label table only exists after a site build; checklist links
	// that need it are simply omitted when it is absent.
	if links, err := version.InfoLinks(basedir, config.BaseURL(""), config.AvailableLanguages()); err == nil {
		version.HydrateInfoRefs(links)
	} else {
		logger.Warn("label table unavailable, skipping info links", "error", err)
	}

	tokenSource, err := tokenSourceFromFile(cfg.TokenFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := sheet.NewClient(ctx, env.SpreadsheetID, tokenSource)
	if err != nil {
		return err
	}

	items := sheet.BuildSource(config.BaseURL(""))
	generator := sheet.NewGenerator(client, cfg.EditorEmail, logger)
	date := formatChecksheetDate(info.ChecksheetDate)
	return generator.Generate(ctx, items, info.ChecksheetVersion, date, initialize)
}

// tokenSourceFromFile reads a stored OAuth token. Obtaining and
// refreshing the token is handled outside this tool; a missing or
// unreadable token aborts the run.
func tokenSourceFromFile(path string) (oauth2.TokenSource, error) {
	if path == "" {
		return nil, fmt.Errorf("no token file configured")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading token %s: %w", path, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("parsing token %s: %w", path, err)
	}
	return oauth2.StaticTokenSource(&token), nil
}

// formatChecksheetDate renders the descriptor date in the Japanese
// display form used by the version cell. A date that does not parse is
// passed through as-is.
func formatChecksheetDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format(config.DateFormat("ja"))
}
