package rst

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDestDirsPerLanguage(t *testing.T) {
	dirs := NewDestDirs("/dest", "en", 2)
	assert.Equal(t, "/dest/en", dirs.Base)
	assert.Equal(t, "/dest/en/source/inc/gl", dirs.Guidelines)
	assert.Equal(t, "/dest/en/source/faq/articles", dirs.FaqArticles)

	files := NewStaticFiles(dirs)
	assert.Equal(t, "/dest/en/source/inc/checks/allchecks.rst", files.AllChecks)
	assert.Equal(t, "/dest/en/source/inc/misc/defs.txt", files.MiscDefs)
	assert.Equal(t, "/dest/en/incfiles.mk", files.Makefile)
}

func TestDestDirsSingleLanguageElidesLangLevel(t *testing.T) {
	dirs := NewDestDirs("/dest", "ja", 1)
	assert.Equal(t, "/dest", dirs.Base)
	assert.Equal(t, "/dest/source/inc/gl", dirs.Guidelines)
}

func TestPipelineWritesFullTree(t *testing.T) {
	setupCorpus(t)
	dest := t.TempDir()

	templates, err := LoadTemplates("")
	require.NoError(t, err)

	pipeline := NewPipeline("ja", "/corpus", dest, 2, templates, quietLogger())
	require.NoError(t, pipeline.Run(nil))

	category, err := os.ReadFile(filepath.Join(dest, "ja", "source", "inc", "gl", "form.rst"))
	require.NoError(t, err)
	content := string(category)
	assert.NotContains(t, content, "\r\n")
	// Guidelines appear in sort-key order.
	first := strings.Index(content, "gl-form-2")
	second := strings.Index(content, "gl-form-1")
	assert.Greater(t, first, -1)
	assert.Greater(t, second, first)

	for _, path := range []string{
		filepath.Join(dest, "ja", "source", "inc", "checks", "allchecks.rst"),
		filepath.Join(dest, "ja", "source", "inc", "checks", "examples-axe.rst"),
		filepath.Join(dest, "ja", "source", "faq", "articles", "p0001.rst"),
		filepath.Join(dest, "ja", "source", "faq", "tags", "axe.rst"),
		filepath.Join(dest, "ja", "source", "faq", "index.rst"),
		filepath.Join(dest, "ja", "source", "inc", "info2gl", "exp-form-keyboard.rst"),
		filepath.Join(dest, "ja", "source", "inc", "misc", "wcag21-mapping.rst"),
		filepath.Join(dest, "ja", "source", "inc", "misc", "defs.txt"),
		filepath.Join(dest, "ja", "incfiles.mk"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	mk, err := os.ReadFile(filepath.Join(dest, "ja", "incfiles.mk"))
	require.NoError(t, err)
	assert.Contains(t, string(mk), "gl_yaml = data/yaml/gl/form/gl-form-1.yaml data/yaml/gl/form/gl-form-2.yaml")
	assert.Contains(t, string(mk), filepath.Join(dest, "ja", "source", "inc", "gl", "form.rst")+": ")
}

func TestPipelineTargetFilter(t *testing.T) {
	setupCorpus(t)
	dest := t.TempDir()

	templates, err := LoadTemplates("")
	require.NoError(t, err)

	pipeline := NewPipeline("ja", "/corpus", dest, 2, templates, quietLogger())
	target := filepath.Join(dest, "ja", "source", "faq", "tags")
	require.NoError(t, pipeline.Run([]string{target}))

	_, err = os.Stat(filepath.Join(target, "axe.rst"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dest, "ja", "source", "inc", "gl", "form.rst"))
	assert.True(t, os.IsNotExist(err))
}

func TestPipelineIsolatesGeneratorFailures(t *testing.T) {
	setupCorpus(t)
	templates, err := LoadTemplates("")
	require.NoError(t, err)

	pipeline := NewPipeline("ja", "/corpus", t.TempDir(), 2, templates, quietLogger())

	bad := Generator{
		Name:       "bad",
		Template:   "info_to_faq",
		OutputPath: filepath.Join(pipeline.dirs.Misc, "bad.rst"),
		SingleFile: true,
		Spec:       FieldSpec{Required: []string{"faqs"}},
		Records: func(string) ([]Record, error) {
			return []Record{{}}, nil
		},
	}
	err = pipeline.runGenerator(bad, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"faqs"`)

	// A failing generator does not prevent the rest from running.
	require.NoError(t, pipeline.Run(nil))
}

func TestShouldGenerate(t *testing.T) {
	list := Generator{OutputPath: "/out/gl"}
	single := Generator{OutputPath: "/out/allchecks.rst", SingleFile: true}

	assert.True(t, shouldGenerate(list, "/out/gl/form.rst", nil))
	assert.True(t, shouldGenerate(list, "/out/gl/form.rst", []string{"/out/gl"}))
	assert.True(t, shouldGenerate(list, "/out/gl/form.rst", []string{"/out/gl/form.rst"}))
	assert.False(t, shouldGenerate(list, "/out/gl/form.rst", []string{"/out/other"}))
	assert.True(t, shouldGenerate(single, "/out/allchecks.rst", []string{"/out/allchecks.rst"}))
	assert.False(t, shouldGenerate(single, "/out/allchecks.rst", []string{"/out"}))
}
