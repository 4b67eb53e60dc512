// Package sheet translates the loaded corpus into a batched sequence
// of spreadsheet mutations: one sheet per target-platform pair and
// language, with generated verdict formulas, dropdown validations,
// conditional formatting and protected ranges.
package sheet

import (
	"github.com/a11ygl/a11ygl/model"
)

// Target-platform sheet identifiers. Each receives one sheet per
// language.
var TargetIDs = []string{
	"designWeb",
	"designMobile",
	"codeWeb",
	"codeMobile",
	"productWeb",
	"productIos",
	"productAndroid",
}

// columnGroup is the per-target portion of the column layout.
type columnGroup struct {
	PlainData1    []string
	PlainData2    []string
	LinkData      []string
	GeneratedData []string
}

var (
	idColumns          = []string{"checkId", "subcheckId"}
	userEnteredColumns = []string{"result", "note"}

	commonColumns = columnGroup{
		PlainData1: []string{"check"},
		PlainData2: []string{"severity"},
		LinkData:   []string{"info", "guidelines"},
	}

	targetColumns = map[string]columnGroup{
		"designWeb": {
			PlainData1:    []string{"webConditionStatement"},
			GeneratedData: []string{"finalResult", "calculatedResult"},
		},
		"designMobile": {},
		"codeWeb": {
			PlainData1: []string{"implementation_web"},
		},
		"codeMobile": {
			PlainData1: []string{"implementation_ios", "implementation_android"},
		},
		"productWeb": {
			PlainData1:    []string{"webConditionStatement"},
			LinkData:      []string{"webTools"},
			GeneratedData: []string{"finalResult", "calculatedResult"},
		},
		"productIos": {
			PlainData1:    []string{"iosConditionStatement"},
			LinkData:      []string{"iosTools"},
			GeneratedData: []string{"finalResult", "calculatedResult"},
		},
		"productAndroid": {
			PlainData1:    []string{"androidConditionStatement"},
			LinkData:      []string{"androidTools"},
			GeneratedData: []string{"finalResult", "calculatedResult"},
		},
	}

	columnNames = map[string]model.LangText{
		"checkId":                   {"ja": "ID", "en": "ID"},
		"subcheckId":                {"ja": "ID", "en": "ID"},
		"finalResult":               {"ja": "最終結果", "en": "Final Result"},
		"calculatedResult":          {"ja": "判定結果（自動）", "en": "Final Result (Auto)"},
		"result":                    {"ja": "チェック結果を記入", "en": "Fill in the Check Result"},
		"note":                      {"ja": "チェック結果に関する補足", "en": "Note on Check Result"},
		"check":                     {"ja": "チェック内容", "en": "Check Details"},
		"severity":                  {"ja": "重篤度", "en": "Severity"},
		"implementation_web":        {"ja": "実装方法：Web", "en": "Implementation: Web"},
		"implementation_ios":        {"ja": "実装方法：iOS", "en": "Implementation: iOS"},
		"implementation_android":    {"ja": "実装方法：Android", "en": "Implementation: Android"},
		"webConditionStatement":     {"ja": "チェック手順", "en": "Check Procedure"},
		"iosConditionStatement":     {"ja": "チェック手順", "en": "Check Procedure"},
		"androidConditionStatement": {"ja": "チェック手順", "en": "Check Procedure"},
		"webTools":                  {"ja": "チェック・ツール", "en": "Check Tools"},
		"iosTools":                  {"ja": "チェック・ツール", "en": "Check Tools"},
		"androidTools":              {"ja": "チェック・ツール", "en": "Check Tools"},
		"info":                      {"ja": "参考情報", "en": "Supplemental Info"},
		"guidelines":                {"ja": "関連ガイドライン", "en": "Related Guidelines"},
	}

	columnWidths = map[string]int64{
		"checkId":                   43,
		"subcheckId":                170,
		"finalResult":               208,
		"calculatedResult":          140,
		"result":                    140,
		"note":                      306,
		"check":                     312,
		"severity":                  158,
		"implementation_web":        312,
		"implementation_ios":        312,
		"implementation_android":    312,
		"webConditionStatement":     312,
		"iosConditionStatement":     312,
		"androidConditionStatement": 312,
		"webTools":                  77,
		"iosTools":                  140,
		"androidTools":              140,
		"info":                      313,
		"guidelines":                628,
	}
)

// ColumnLayout resolves the column order for one target sheet.
type ColumnLayout struct {
	target string
	group  columnGroup
}

// LayoutFor returns the column layout for a target, and false when
// the target is not one of the seven sheet targets.
func LayoutFor(target string) (*ColumnLayout, bool) {
	group, ok := targetColumns[target]
	if !ok {
		return nil, false
	}
	return &ColumnLayout{target: target, group: group}, true
}

// HeaderIDs returns the column ids in sheet order.
func (l *ColumnLayout) HeaderIDs() []string {
	ids := make([]string, 0, 12)
	ids = append(ids, idColumns...)
	ids = append(ids, l.group.GeneratedData...)
	ids = append(ids, userEnteredColumns...)
	ids = append(ids, commonColumns.PlainData1...)
	ids = append(ids, l.group.PlainData1...)
	ids = append(ids, commonColumns.PlainData2...)
	ids = append(ids, l.group.PlainData2...)
	ids = append(ids, l.group.LinkData...)
	ids = append(ids, commonColumns.LinkData...)
	return ids
}

// HeaderNames returns the localized header labels in sheet order.
func (l *ColumnLayout) HeaderNames(lang string) []string {
	ids := l.HeaderIDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := columnNames[id]; ok {
			names[i] = name.Text(lang)
		} else {
			names[i] = id
		}
	}
	return names
}

// Widths returns the pixel width of each column in sheet order.
func (l *ColumnLayout) Widths() []int64 {
	ids := l.HeaderIDs()
	widths := make([]int64, len(ids))
	for i, id := range ids {
		if w, ok := columnWidths[id]; ok {
			widths[i] = w
		} else {
			widths[i] = 100
		}
	}
	return widths
}

// PlainDataIDs returns the plain-data column ids in sheet order.
func (l *ColumnLayout) PlainDataIDs() []string {
	ids := make([]string, 0, 4)
	ids = append(ids, commonColumns.PlainData1...)
	ids = append(ids, l.group.PlainData1...)
	ids = append(ids, commonColumns.PlainData2...)
	ids = append(ids, l.group.PlainData2...)
	return ids
}

// LinkDataIDs returns the link column ids in sheet order.
func (l *ColumnLayout) LinkDataIDs() []string {
	ids := make([]string, 0, 3)
	ids = append(ids, l.group.LinkData...)
	ids = append(ids, commonColumns.LinkData...)
	return ids
}

// HasGeneratedData reports whether the target carries verdict
// columns.
func (l *ColumnLayout) HasGeneratedData() bool {
	return len(l.group.GeneratedData) > 0
}

// GeneratedDataCount returns the number of verdict columns.
func (l *ColumnLayout) GeneratedDataCount() int {
	return len(l.group.GeneratedData)
}

// ResultColumnIndex returns the zero-based index of the user-entered
// result column.
func (l *ColumnLayout) ResultColumnIndex() int {
	return len(idColumns) + len(l.group.GeneratedData)
}

// CalculatedResultColumn returns the letter of the calculatedResult
// column.
func (l *ColumnLayout) CalculatedResultColumn() string {
	return columnLetter(len(idColumns) + 1)
}

// ResultColumnLetter returns the letter of the user-entered result
// column.
func (l *ColumnLayout) ResultColumnLetter() string {
	return columnLetter(l.ResultColumnIndex())
}

func columnLetter(index int) string {
	return string(rune('A' + index))
}
