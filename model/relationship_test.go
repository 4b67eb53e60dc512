package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCategory(t *testing.T, id string, names LangText) *Category {
	t.Helper()
	c, err := NewCategory(id, names)
	require.NoError(t, err)
	return c
}

func mustCheck(t *testing.T, src CheckSource) *Check {
	t.Helper()
	c, err := NewCheck(src)
	require.NoError(t, err)
	return c
}

func mustGuideline(t *testing.T, src GuidelineSource) *Guideline {
	t.Helper()
	g, err := NewGuideline(src)
	require.NoError(t, err)
	return g
}

func setupTools(t *testing.T) {
	t.Helper()
	for _, id := range []string{"nvda", "axe", "keyboard", "misc"} {
		_, err := NewCheckTool(id, LangText{"ja": id, "en": id})
		require.NoError(t, err)
	}
}

func TestAssociateIsBidirectionalAndIdempotent(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)

	cat := mustCategory(t, "form", LangText{"ja": "フォーム", "en": "Forms"})
	gl := mustGuideline(t, GuidelineSource{
		ID: "gl-form-1", SortKey: 10, Category: "form",
		Title:     LangText{"ja": "タイトル"},
		Guideline: LangText{"ja": "本文"},
		Intent:    LangText{"ja": "意図"},
		Platform:  []string{"web"},
		SrcPath:   "/data/yaml/gl/form/gl-form-1.yaml",
	})

	rel := Relationships()
	rel.Associate(gl, cat)
	rel.Associate(gl, cat)

	glSide := rel.Related(gl, KindCategory)
	catSide := rel.Related(cat, KindGuideline)
	require.Len(t, glSide, 1)
	require.Len(t, catSide, 1)
	assert.Equal(t, cat.ID(), glSide[0].ID())
	assert.Equal(t, gl.ID(), catSide[0].ID())
}

func TestRelatedOnUnknownSourceIsEmptyNotNil(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)

	cat := mustCategory(t, "lonely", LangText{"ja": "x"})
	related := Relationships().Related(cat, KindGuideline)
	require.NotNil(t, related)
	assert.Empty(t, related)
}

func TestRelatedSortedBySortKey(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)

	cat := mustCategory(t, "form", LangText{"ja": "フォーム"})
	for _, g := range []struct {
		id   string
		sort int
	}{{"g1", 10}, {"g2", 5}, {"g3", 7}} {
		mustGuideline(t, GuidelineSource{
			ID: g.id, SortKey: g.sort, Category: cat.ID(),
			Title:     LangText{"ja": g.id},
			Guideline: LangText{"ja": "本文"},
			Intent:    LangText{"ja": "意図"},
			SrcPath:   "/gl/" + g.id + ".yaml",
		})
	}

	sorted := Relationships().RelatedSorted(cat, KindGuideline)
	ids := []string{}
	for _, e := range sorted {
		ids = append(ids, e.ID())
	}
	assert.Equal(t, []string{"g2", "g3", "g1"}, ids)
}

func TestDuplicateGuidelineSortKeyNamesBothPaths(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)

	mustCategory(t, "form", LangText{"ja": "フォーム"})
	mustGuideline(t, GuidelineSource{
		ID: "g1", SortKey: 7, Category: "form",
		Title:     LangText{"ja": "g1"},
		Guideline: LangText{"ja": "本文"},
		Intent:    LangText{"ja": "意図"},
		SrcPath:   "/gl/first.yaml",
	})
	_, err := NewGuideline(GuidelineSource{
		ID: "g2", SortKey: 7, Category: "form",
		Title:     LangText{"ja": "g2"},
		Guideline: LangText{"ja": "本文"},
		Intent:    LangText{"ja": "意図"},
		SrcPath:   "/gl/second.yaml",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/gl/first.yaml")
	assert.Contains(t, err.Error(), "/gl/second.yaml")
}

func TestGuidelineMissingCategoryIsFatal(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)

	_, err := NewGuideline(GuidelineSource{
		ID: "g1", SortKey: 1, Category: "nope",
		Title:     LangText{"ja": "g1"},
		Guideline: LangText{"ja": "本文"},
		Intent:    LangText{"ja": "意図"},
		SrcPath:   "/gl/g1.yaml",
	})
	var missing *MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, KindCategory, missing.Kind)
	assert.Equal(t, "nope", missing.ID)
}

func TestGuidelineInfoInheritedByChecks(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)
	setupTools(t)

	mustCategory(t, "form", LangText{"ja": "フォーム"})
	check := mustCheck(t, CheckSource{
		ID: "0001", SortKey: 1,
		Check:    LangText{"ja": "チェック"},
		Severity: SeverityNormal, Target: TargetDesign,
		Platform: []string{"web"},
		SrcPath:  "/checks/0001.yaml",
	})
	gl := mustGuideline(t, GuidelineSource{
		ID: "g1", SortKey: 1, Category: "form",
		Title:     LangText{"ja": "g1"},
		Guideline: LangText{"ja": "本文"},
		Intent:    LangText{"ja": "意図"},
		Checks:    []string{"0001"},
		Info:      []string{"exp-some-label", "https://example.com/external-doc"},
		SrcPath:   "/gl/g1.yaml",
	})

	rel := Relationships()
	info := relatedAs[*InfoRef](rel, gl, KindInfoRef, false)
	require.Len(t, info, 2)
	assert.True(t, info[0].Internal)
	assert.False(t, info[1].Internal)

	// Internal and external refs alike flow down to the checks.
	inherited := rel.Related(check, KindInfoRef)
	require.Len(t, inherited, 2)
	assert.Equal(t, info[0].ID(), inherited[0].ID())
	assert.Equal(t, info[1].ID(), inherited[1].ID())
}

func TestDeferredFaqResolution(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)

	_, err := NewFaqTag("markup", LangText{"ja": "マークアップ"})
	require.NoError(t, err)

	// f1 references f2 before f2 exists.
	f1, err := NewFaq(FaqSource{
		ID: "faq-1", SortKey: 1, Updated: "2024-05-01",
		Title: LangText{"ja": "t"}, Problem: LangText{"ja": "p"},
		Solution: LangText{"ja": "s"}, Explanation: LangText{"ja": "e"},
		Tags: []string{"markup"}, Faqs: []string{"faq-2"},
		SrcPath: "/faq/faq-1.yaml",
	})
	require.NoError(t, err)
	f2, err := NewFaq(FaqSource{
		ID: "faq-2", SortKey: 2, Updated: "2024-05-02",
		Title: LangText{"ja": "t"}, Problem: LangText{"ja": "p"},
		Solution: LangText{"ja": "s"}, Explanation: LangText{"ja": "e"},
		Tags:    []string{"markup"},
		SrcPath: "/faq/faq-2.yaml",
	})
	require.NoError(t, err)

	rel := Relationships()
	require.Empty(t, rel.Related(f1, KindFaq))
	require.NoError(t, rel.ResolveFaqLinks())
	assert.Len(t, rel.Related(f1, KindFaq), 1)
	assert.Len(t, rel.Related(f2, KindFaq), 1)
}

func TestResolveFaqLinksMissingTarget(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)

	_, err := NewFaqTag("markup", LangText{"ja": "マークアップ"})
	require.NoError(t, err)
	_, err = NewFaq(FaqSource{
		ID: "faq-1", SortKey: 1, Updated: "2024-05-01",
		Title: LangText{"ja": "t"}, Problem: LangText{"ja": "p"},
		Solution: LangText{"ja": "s"}, Explanation: LangText{"ja": "e"},
		Tags: []string{"markup"}, Faqs: []string{"faq-missing"},
		SrcPath: "/faq/faq-1.yaml",
	})
	require.NoError(t, err)

	err = Relationships().ResolveFaqLinks()
	var missing *MissingReferenceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "faq-missing", missing.ID)
}

func TestFaqTagWithoutArticlesIsNotPublished(t *testing.T) {
	ResetAll()
	t.Cleanup(ResetAll)

	tagged, err := NewFaqTag("t1", LangText{"ja": "t1"})
	require.NoError(t, err)
	empty, err := NewFaqTag("t2", LangText{"ja": "t2"})
	require.NoError(t, err)

	_, err = NewFaq(FaqSource{
		ID: "faq-1", SortKey: 1, Updated: "2024-05-01",
		Title: LangText{"ja": "t"}, Problem: LangText{"ja": "p"},
		Solution: LangText{"ja": "s"}, Explanation: LangText{"ja": "e"},
		Tags:    []string{"t1"},
		SrcPath: "/faq/faq-1.yaml",
	})
	require.NoError(t, err)

	assert.NotNil(t, tagged.TemplateData("ja"))
	assert.Nil(t, empty.TemplateData("ja"))
}
