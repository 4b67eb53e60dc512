package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/model"
)

// vendorLocale is the shape of the vendor's Japanese locale blob.
type vendorLocale struct {
	Rules map[string]model.VendorRuleTranslation `json:"rules"`
}

// vendorPackage carries the rule-set version from the vendor's
// package manifest.
type vendorPackage struct {
	Version string `json:"version"`
}

var majorVersionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.\d+`)

// loadVendorRules reads the vendor rule set from its on-disk checkout
// under the corpus base directory. A missing checkout is reported and
// skipped; a present but unreadable one is fatal.
func (l *Loader) loadVendorRules() error {
	cfg := config.Global()
	vendorDir := filepath.Join(l.basedir, cfg.GetString("vendor_rules.base_dir", "vendor/axe-core"))
	if _, err := os.Stat(vendorDir); err != nil {
		l.logger.Warn("vendor rule checkout not found, skipping vendor rules", "dir", vendorDir)
		return nil
	}

	pkgPath := filepath.Join(vendorDir, cfg.GetString("vendor_rules.pkg_file", "package.json"))
	pkgContent, err := os.ReadFile(pkgPath)
	if err != nil {
		return fmt.Errorf("reading vendor package manifest: %w", err)
	}
	var pkg vendorPackage
	if err := json.Unmarshal(pkgContent, &pkg); err != nil {
		return fmt.Errorf("parsing %s: %w", pkgPath, err)
	}
	pkgInfo, err := os.Stat(pkgPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", pkgPath, err)
	}

	localePath := filepath.Join(vendorDir, cfg.GetString("vendor_rules.locale_file", "locales/ja.json"))
	localeContent, err := os.ReadFile(localePath)
	if err != nil {
		return fmt.Errorf("reading vendor locale: %w", err)
	}
	var locale vendorLocale
	if err := json.Unmarshal(localeContent, &locale); err != nil {
		return fmt.Errorf("parsing %s: %w", localePath, err)
	}

	rulesDir := filepath.Join(vendorDir, cfg.GetString("vendor_rules.rules_dir", "lib/rules"))
	ruleFiles, err := listJSONFiles(rulesDir)
	if err != nil {
		return fmt.Errorf("scanning vendor rules: %w", err)
	}
	for _, file := range ruleFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		var src model.VendorRuleSource
		if err := json.Unmarshal(content, &src); err != nil {
			return fmt.Errorf("parsing %s: %w", file, err)
		}
		if _, err := model.NewVendorRule(src, locale.Rules); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}

	major := pkg.Version
	if m := majorVersionPattern.FindStringSubmatch(pkg.Version); m != nil {
		major = m[1] + "." + m[2]
	}
	model.SetVendorRuleSetMeta(model.VendorRuleSetMeta{
		Version:      pkg.Version,
		MajorVersion: major,
		VendorURL:    cfg.GetString("vendor_rules.vendor_url", ""),
		Timestamp:    pkgInfo.ModTime().Format("2006-01-02 15:04:05-0700"),
	})
	return nil
}

func listJSONFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
