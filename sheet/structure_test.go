package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/model"
)

func TestBuildStructureSimpleCheck(t *testing.T) {
	p := NewProcessor(quietLogger())
	item := withCondition(newItem("0001", 100, "product", "web"), "simple", "0001-proc-01")
	byTarget := p.Process([]*ChecklistItem{item})

	s, ok := BuildStructure("productWeb", "ja", byTarget["productWeb"], p)
	require.True(t, ok)

	assert.Equal(t, "プロダクト: Web", s.Name)
	assert.Equal(t, 2, s.IDToRow["0001"])
	assert.Equal(t, 2, s.IDToRow["0001-proc-01"])
	require.Len(t, s.Rows, 2)
	assert.False(t, s.HasSubcheckRows())

	row := s.Rows[1]
	assert.Equal(t, "0001", row[0].Plain)
	assert.Empty(t, row[1].Plain)
	assert.Equal(t, `=IF(D2="","未チェック",D2)`, row[2].Formula)
	assert.Equal(t,
		`=IF(COUNTIF($E$2:$E$2,"未チェック")=1,"",IF(TO_TEXT($E$2)="はい","OK","NG"))`,
		row[3].Formula)

	result := row[4]
	assert.Equal(t, "未チェック", result.Plain)
	require.NotNil(t, result.Validation)
	assert.Equal(t, "ONE_OF_LIST", result.Validation.Condition.Type)
	values := result.Validation.Condition.Values
	require.Len(t, values, 3)
	assert.Equal(t, "未チェック", values[0].UserEnteredValue)
	assert.Equal(t, "はい", values[1].UserEnteredValue)
	assert.Equal(t, "いいえ", values[2].UserEnteredValue)
}

func TestBuildStructureSubcheckRows(t *testing.T) {
	p := NewProcessor(quietLogger())
	item := withCondition(newItem("0005", 100, "product", "web"), "and", "0005-1", "0005-2")
	byTarget := p.Process([]*ChecklistItem{item})

	s, ok := BuildStructure("productWeb", "ja", byTarget["productWeb"], p)
	require.True(t, ok)

	assert.Equal(t, 2, s.IDToRow["0005"])
	assert.Equal(t, 3, s.IDToRow["0005-1"])
	assert.Equal(t, 4, s.IDToRow["0005-2"])
	require.Len(t, s.Rows, 4)
	assert.True(t, s.HasSubcheckRows())

	parent := s.Rows[1]
	assert.Equal(t, `=IF(D2="","未チェック",D2)`, parent[2].Formula)
	assert.Equal(t,
		`=IF(COUNTIF($E$3:$E$4,"未チェック")=2,"",IF(AND(TO_TEXT($E$3)="はい",TO_TEXT($E$4)="はい"),"OK","NG"))`,
		parent[3].Formula)

	// A parent with extracted subchecks takes no direct verdict: its
	// result cell is empty, protected, and greyed.
	result := parent[4]
	assert.Empty(t, result.Plain)
	assert.True(t, result.Protected)
	require.NotNil(t, result.Format)
	assert.Equal(t, greyFill, result.Format.BackgroundColor)
	assert.Nil(t, result.Validation)

	for i, sub := range s.Rows[2:] {
		assert.Empty(t, sub[0].Plain)
		assert.Equal(t, item.Subchecks["productWeb"].Items[i].ID, sub[1].Plain)
		assert.Empty(t, sub[2].Formula)
		assert.True(t, sub[2].Protected)
		assert.Equal(t, "=D2", sub[3].Formula)
		require.NotNil(t, sub[4].Validation)
	}
}

func TestBuildStructureNoConditions(t *testing.T) {
	p := NewProcessor(quietLogger())
	item := newItem("0010", 100, "product", "web")
	byTarget := p.Process([]*ChecklistItem{item})

	s, ok := BuildStructure("productWeb", "ja", byTarget["productWeb"], p)
	require.True(t, ok)

	row := s.Rows[1]
	assert.Equal(t, `=IF($D2="","未チェック",$D2)`, row[2].Formula)
	assert.Equal(t, `=IF($E2="未チェック", "", IF(TO_TEXT($E2)="はい", "OK", "NG"))`, row[3].Formula)
}

func TestBuildStructurePlainTargetDropdown(t *testing.T) {
	p := NewProcessor(quietLogger())
	item := newItem("0020", 100, "code", "web")
	byTarget := p.Process([]*ChecklistItem{item})

	s, ok := BuildStructure("codeWeb", "ja", byTarget["codeWeb"], p)
	require.True(t, ok)

	// Without generated columns the dropdown carries the final
	// verdict vocabulary directly.
	row := s.Rows[1]
	result := row[2]
	require.NotNil(t, result.Validation)
	values := result.Validation.Condition.Values
	require.Len(t, values, 3)
	assert.Equal(t, "未チェック", values[0].UserEnteredValue)
	assert.Equal(t, "OK", values[1].UserEnteredValue)
	assert.Equal(t, "NG", values[2].UserEnteredValue)
}

func TestBuildStructureHeaderRow(t *testing.T) {
	p := NewProcessor(quietLogger())
	s, ok := BuildStructure("productWeb", "ja", nil, p)
	require.True(t, ok)
	require.Len(t, s.Rows, 1)

	header := s.Rows[0]
	layout := testLayout(t, "productWeb")
	require.Len(t, header, len(layout.HeaderIDs()))
	assert.Equal(t, "ID", header[0].Plain)
	for _, cell := range header {
		require.NotNil(t, cell.Format)
		assert.True(t, cell.Format.TextFormat.Bold)
	}
}

func TestBuildStructureUnknownTarget(t *testing.T) {
	p := NewProcessor(quietLogger())
	_, ok := BuildStructure("designAndroid", "ja", nil, p)
	assert.False(t, ok)
}

func TestLinkCellResolvesRelativeURL(t *testing.T) {
	config.ResetGlobal()
	t.Cleanup(config.ResetGlobal)
	require.NoError(t, config.Global().Set("base_url", "https://example.test"))

	b := newRowBuilder(testLayout(t, "productWeb"), "ja", NewProcessor(quietLogger()))
	cell := b.linkCell([]model.LinkData{
		{
			Text: model.LangText{"ja": "ヘルプ"},
			URL:  model.LangText{"ja": "/help"},
		},
		{
			Text: model.LangText{"ja": "外部資料"},
			URL:  model.LangText{"ja": "https://example.org/doc"},
		},
	})

	require.NotNil(t, cell.RichText)
	assert.Equal(t, "ヘルプ\n外部資料", cell.RichText.Text)
	require.Len(t, cell.RichText.Runs, 2)

	first := cell.RichText.Runs[0]
	assert.Equal(t, int64(0), first.StartIndex)
	assert.Equal(t, "https://example.test/help", first.Format.Link.Uri)
	assert.True(t, first.Format.Underline)
	assert.Equal(t, linkColor, first.Format.ForegroundColor)

	// Start indexes count runes, not bytes.
	second := cell.RichText.Runs[1]
	assert.Equal(t, int64(4), second.StartIndex)
	assert.Equal(t, "https://example.org/doc", second.Format.Link.Uri)
}

func TestCellAPIKeepsFormatOnProtectedEmptyCell(t *testing.T) {
	cell := PlainCell("")
	cell.Protected = true
	cell.Format = &sheets.CellFormat{BackgroundColor: greyFill}

	data := cell.API()
	assert.Nil(t, data.UserEnteredValue)
	require.NotNil(t, data.UserEnteredFormat)
	assert.Equal(t, greyFill, data.UserEnteredFormat.BackgroundColor)

	plain := PlainCell("")
	assert.Nil(t, plain.API().UserEnteredValue)
	assert.Nil(t, plain.API().UserEnteredFormat)
}
