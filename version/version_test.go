package version

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ygl/a11ygl/model"
)

func TestLoadYamlDescriptor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version.yaml"), []byte(
		"checksheet_version: \"5.2.1\"\nchecksheet_date: \"2025-06-01\"\n"), 0o644))

	info, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "5.2.1", info.ChecksheetVersion)
	assert.Equal(t, "2025-06-01", info.ChecksheetDate)
}

func TestLoadLegacyDescriptor(t *testing.T) {
	dir := t.TempDir()
	content := "guidelines_version = \"202506.0\"\nchecksheet_version = \"5.2.1\"\nchecksheet_date = '2025-06-01'\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version.py"), []byte(content), 0o644))

	info, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "5.2.1", info.ChecksheetVersion)
	assert.Equal(t, "2025-06-01", info.ChecksheetDate)
	assert.Equal(t, "202506.0", info.GuidelinesVersion)
}

func TestLoadMissingDescriptorFails(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoadRejectsIncompleteDescriptor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version.yaml"), []byte(
		"checksheet_version: \"5.2.1\"\n"), 0o644))
	_, err := Load(dir)
	assert.Error(t, err)
}

func writeLabelTable(t *testing.T, dir, lang, content string) {
	t.Helper()
	path := filepath.Join(dir, lang, "build", "doctrees")
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "labels.json"), []byte(content), 0o644))
}

func TestInfoLinks(t *testing.T) {
	dir := t.TempDir()
	writeLabelTable(t, dir, "ja", `{
		"exp-label": ["explanation/label", "exp-label", "参考情報"],
		"incomplete": ["doc", "", "text"]
	}`)
	writeLabelTable(t, dir, "en", `{
		"exp-label": ["explanation/label", "exp-label", "Reference"]
	}`)

	links, err := InfoLinks(dir, "https://example.test", []string{"ja", "en"})
	require.NoError(t, err)
	require.Contains(t, links, "exp-label")
	assert.NotContains(t, links, "incomplete")

	entry := links["exp-label"]
	assert.Equal(t, "参考情報", entry.Text["ja"])
	assert.Equal(t, "https://example.test/explanation/label.html#exp-label", entry.URL["ja"])
	assert.Equal(t, "https://example.test/en/explanation/label.html#exp-label", entry.URL["en"])
}

func TestInfoLinksMissingTableFails(t *testing.T) {
	_, err := InfoLinks(t.TempDir(), "https://example.test", []string{"ja"})
	assert.Error(t, err)
}

func TestHydrateInfoRefs(t *testing.T) {
	model.ResetAll()
	t.Cleanup(model.ResetAll)

	ref := model.InternInfoRef("exp-label", nil)
	HydrateInfoRefs(map[string]model.LinkData{
		"exp-label": {
			Text: model.LangText{"ja": "参考情報"},
			URL:  model.LangText{"ja": "https://example.test/explanation/label.html#exp-label"},
		},
	})
	require.NotNil(t, ref.LinkData())
	assert.Equal(t, "参考情報", ref.Text["ja"])
}
