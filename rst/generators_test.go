package rst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/loader"
	"github.com/a11ygl/a11ygl/model"
)

func resetCorpus(t *testing.T) {
	t.Helper()
	config.ResetGlobal()
	model.ResetAll()
	t.Cleanup(func() {
		config.ResetGlobal()
		model.ResetAll()
	})
	for _, tool := range []struct{ id, ja, en string }{
		{"axe", "axe DevTools", "axe DevTools"},
		{"misc", "その他のツール", "Other tools"},
	} {
		_, err := model.NewCheckTool(tool.id, model.LangText{"ja": tool.ja, "en": tool.en})
		require.NoError(t, err)
	}
}

// setupCorpus registers a small but fully cross-referenced corpus: one
// category with two guidelines (out of sort order), one check with a
// procedure, one tagged FAQ article, and internal and external info
// references.
func setupCorpus(t *testing.T) {
	t.Helper()
	resetCorpus(t)

	model.SetVendorRuleSetMeta(model.VendorRuleSetMeta{
		Version:      "4.9.1",
		MajorVersion: "4",
		VendorURL:    "https://dequeuniversity.com/rules/axe/",
		Timestamp:    "2026-08-01",
	})

	_, err := model.NewCategory("form", model.LangText{"ja": "フォーム", "en": "Forms"})
	require.NoError(t, err)
	_, err = model.NewFaqTag("axe", model.LangText{"ja": "axe", "en": "axe"})
	require.NoError(t, err)
	_, err = model.NewFaqTag("unused", model.LangText{"ja": "未使用", "en": "Unused"})
	require.NoError(t, err)
	_, err = model.NewWcagSc("1.3.1", model.WcagScSource{
		ID: "1.3.1", SortKey: 131, Level: "A", LocalPriority: "A",
	})
	require.NoError(t, err)

	_, err = model.NewCheck(model.CheckSource{
		ID: "0171", SortKey: 171,
		Check:    model.LangText{"ja": "ラベルが付与されている。", "en": "A label is provided."},
		Severity: model.SeverityNormal, Target: model.TargetProduct,
		Platform: []string{"web"},
		Conditions: []model.ConditionSource{{
			Type: model.ConditionSimple, Platform: "web",
			ID: "0171-web-01", Tool: "axe",
			Procedure: model.LangText{"ja": "axeでチェックする。", "en": "Check with axe."},
		}},
		SrcPath: "data/yaml/checks/0171.yaml",
	})
	require.NoError(t, err)

	_, err = model.NewGuideline(model.GuidelineSource{
		ID: "gl-form-1", SortKey: 10, Category: "form",
		Title:     model.LangText{"ja": "ラベル付け", "en": "Labeling"},
		Platform:  []string{"web"},
		Guideline: model.LangText{"ja": "本文1", "en": "Body 1"},
		Intent:    model.LangText{"ja": "意図1", "en": "Intent 1"},
		Checks:    []string{"0171"},
		SC:        []string{"1.3.1"},
		Info:      []string{"exp-form-keyboard"},
		SrcPath:   "data/yaml/gl/form/gl-form-1.yaml",
	})
	require.NoError(t, err)
	_, err = model.NewGuideline(model.GuidelineSource{
		ID: "gl-form-2", SortKey: 5, Category: "form",
		Title:     model.LangText{"ja": "操作順序", "en": "Operation order"},
		Platform:  []string{"web"},
		Guideline: model.LangText{"ja": "本文2", "en": "Body 2"},
		Intent:    model.LangText{"ja": "意図2", "en": "Intent 2"},
		Checks:    []string{"0171"},
		SrcPath:   "data/yaml/gl/form/gl-form-2.yaml",
	})
	require.NoError(t, err)

	model.InternInfoRef("|jis|", &model.LinkData{
		Text: model.LangText{"ja": "JIS X 8341-3:2016", "en": "JIS X 8341-3:2016"},
		URL:  model.LangText{"ja": "https://example.com/jis", "en": "https://example.com/jis/en"},
	})

	_, err = model.NewFaq(model.FaqSource{
		ID: "p0001", SortKey: 1, Updated: "2024-06-01",
		Title:    model.LangText{"ja": "ラベルがないとどうなるか", "en": "What happens without labels"},
		Problem:  model.LangText{"ja": "問題", "en": "Problem"},
		Solution: model.LangText{"ja": "対策", "en": "Solution"},
		Tags:     []string{"axe"},
		Guidelines: []string{"gl-form-1"},
		Checks:     []string{"0171"},
		SrcPath:    "data/yaml/faq/p0001.yaml",
	})
	require.NoError(t, err)
	require.NoError(t, model.Relationships().ResolveFaqLinks())
}

func TestCategoryRecordsOrderedBySortKey(t *testing.T) {
	setupCorpus(t)

	records, err := categoryRecords("ja")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "form", rec.Filename())
	guidelines := rec["guidelines"].([]map[string]any)
	require.Len(t, guidelines, 2)
	assert.Equal(t, "gl-form-2", guidelines[0]["id"])
	assert.Equal(t, "gl-form-1", guidelines[1]["id"])
}

func TestFaqTagPagesSkipTagsWithoutArticles(t *testing.T) {
	setupCorpus(t)

	records, err := faqTagPageRecords("ja")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "axe", records[0]["tag"])
	assert.Equal(t, []string{"p0001"}, records[0]["articles"])
}

func TestFaqTagIndexFiltersEmptyTags(t *testing.T) {
	setupCorpus(t)

	records, err := faqTagIndexRecords("ja")
	require.NoError(t, err)
	require.Len(t, records, 1)

	tags := records[0]["tags"].([]map[string]any)
	require.Len(t, tags, 1)
	assert.Equal(t, "axe", tags[0]["tag"])
}

func TestFaqIndexListsArticlesByDate(t *testing.T) {
	setupCorpus(t)
	_, err := model.NewFaq(model.FaqSource{
		ID: "p0002", SortKey: 2, Updated: "2025-01-15",
		Title:    model.LangText{"ja": "新しい記事", "en": "Newer article"},
		Problem:  model.LangText{"ja": "問題", "en": "Problem"},
		Solution: model.LangText{"ja": "対策", "en": "Solution"},
		Tags:     []string{"axe"},
		SrcPath:  "data/yaml/faq/p0002.yaml",
	})
	require.NoError(t, err)

	records, err := faqIndexRecords("ja")
	require.NoError(t, err)
	articles := records[0]["articles"].([]map[string]any)
	require.Len(t, articles, 2)
	assert.Equal(t, "p0002", articles[0]["id"])
	assert.Equal(t, "p0001", articles[1]["id"])
}

func TestInfoToGuidelineRecords(t *testing.T) {
	setupCorpus(t)

	records, err := infoToGuidelinesRecords("en")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "exp-form-keyboard", records[0].Filename())

	guidelines := records[0]["guidelines"].([]map[string]string)
	require.Len(t, guidelines, 1)
	assert.Equal(t, "gl-form-1", guidelines[0]["guideline"])
	assert.Equal(t, "Forms", guidelines[0]["category"])
}

func TestMiscDefsRecordsListExternalRefsOnly(t *testing.T) {
	setupCorpus(t)

	records, err := miscDefsRecords("ja")
	require.NoError(t, err)
	links := records[0]["links"].([]map[string]string)
	require.Len(t, links, 1)
	assert.Equal(t, "|jis|", links[0]["label"])
	assert.Equal(t, "JIS X 8341-3:2016", links[0]["text"])
	assert.Equal(t, "https://example.com/jis", links[0]["url"])
}

func TestCheckExampleRecords(t *testing.T) {
	setupCorpus(t)

	records, err := checkExampleRecords("en")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "examples-axe", records[0].Filename())

	examples := records[0]["examples"].([]map[string]any)
	require.Len(t, examples, 1)
	assert.Equal(t, "0171", examples[0]["check_id"])
}

func TestWcagMappingIncludesRelatedGuidelines(t *testing.T) {
	setupCorpus(t)

	records, err := wcagMappingRecords("en")
	require.NoError(t, err)
	mapping := records[0]["mapping"].([]map[string]any)
	require.Len(t, mapping, 1)
	assert.Equal(t, "1.3.1", mapping[0]["sc"])
	guidelines := mapping[0]["guidelines"].([]map[string]string)
	require.Len(t, guidelines, 1)
	assert.Equal(t, "gl-form-1", guidelines[0]["guideline"])
}

func TestMakefileRecordDependencies(t *testing.T) {
	setupCorpus(t)

	dirs := NewDestDirs("/dest", "ja", 2)
	files := NewStaticFiles(dirs)
	rec := makefileRecord(dirs, files, loader.NewSrcPaths("/src"))

	assert.Equal(t,
		"data/yaml/gl/form/gl-form-1.yaml data/yaml/gl/form/gl-form-2.yaml",
		rec["gl_yaml"])
	assert.Equal(t, files.AllChecks, rec["all_checks_target"])
	assert.Equal(t,
		files.FaqIndex+" "+files.FaqTagIndex+" "+files.FaqArticleIndex,
		rec["faq_index_target"])

	depends := rec["depends"].([]map[string]string)
	byTarget := map[string]string{}
	for _, entry := range depends {
		byTarget[entry["target"]] = entry["depends"]
	}

	// The category page is rebuilt when any member guideline, any
	// referenced check, or any FAQ tied to those guidelines changes.
	catDeps := byTarget["/dest/ja/source/inc/gl/form.rst"]
	assert.Equal(t,
		"data/yaml/gl/form/gl-form-2.yaml data/yaml/checks/0171.yaml "+
			"data/yaml/gl/form/gl-form-1.yaml data/yaml/faq/p0001.yaml",
		catDeps)

	faqDeps := byTarget["/dest/ja/source/faq/articles/p0001.rst"]
	assert.Equal(t,
		"data/yaml/faq/p0001.yaml data/yaml/gl/form/gl-form-1.yaml data/yaml/checks/0171.yaml",
		faqDeps)

	tagDeps := byTarget["/dest/ja/source/faq/tags/axe.rst"]
	assert.Equal(t, faqDeps, tagDeps)

	_, hasUnused := byTarget["/dest/ja/source/faq/tags/unused.rst"]
	assert.False(t, hasUnused)
}
