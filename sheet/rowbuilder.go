package sheet

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/model"
)

// rowBuilder produces the cells of one data row for a target sheet.
type rowBuilder struct {
	layout    *ColumnLayout
	lang      string
	proc      *Processor
	formatter *ConditionFormatter
}

func newRowBuilder(layout *ColumnLayout, lang string, proc *Processor) *rowBuilder {
	return &rowBuilder{
		layout:    layout,
		lang:      lang,
		proc:      proc,
		formatter: NewConditionFormatter(layout),
	}
}

func (b *rowBuilder) buildRow(item *ChecklistItem, idToRow map[string]int) []Cell {
	row := make([]Cell, 0, len(b.layout.HeaderIDs()))
	row = append(row, b.idCells(item)...)
	if b.layout.HasGeneratedData() {
		row = append(row, b.generatedCells(item, idToRow)...)
	}
	row = append(row, b.userEntryCells(item)...)
	for _, header := range b.layout.PlainDataIDs() {
		row = append(row, PlainCell(item.plainValue(header, b.lang)))
	}
	for _, header := range b.layout.LinkDataIDs() {
		row = append(row, b.linkCell(item.linkValue(header)))
	}
	return row
}

// idCells renders the checkId and subcheckId columns with a
// fixed-width text pattern.
func (b *rowBuilder) idCells(item *ChecklistItem) []Cell {
	format := &sheets.CellFormat{
		NumberFormat: &sheets.NumberFormat{Type: "TEXT", Pattern: "0000"},
	}
	checkID := PlainCell(item.CheckID)
	checkID.Format = format
	subcheckID := PlainCell(item.SubcheckID)
	subcheckID.Format = format
	return []Cell{checkID, subcheckID}
}

// generatedCells renders the finalResult and calculatedResult
// columns. A subcheck mirrors its parent's verdict; a check without
// conditions maps the user entry straight to the final vocabulary.
func (b *rowBuilder) generatedCells(item *ChecklistItem, idToRow map[string]int) []Cell {
	calcCol := b.layout.CalculatedResultColumn()
	unchecked := config.CheckResult("unchecked", b.lang)

	if item.IsSubcheck {
		return b.subcheckCells(item, idToRow, calcCol)
	}

	for _, cond := range item.Conditions {
		if cond.Target != b.layout.target {
			continue
		}
		ref := fmt.Sprintf("%s%d", calcCol, idToRow[item.ID])
		final := FormulaCell(fmt.Sprintf(`=IF(%s="","%s",%s)`, ref, unchecked, ref))
		calc := FormulaCell(b.formatter.ConditionFormula(cond, idToRow, b.lang))
		return []Cell{final, calc}
	}

	// No conditions on this target: two-state mapping from the user
	// entry.
	resultCell := fmt.Sprintf("$%s%d", b.layout.ResultColumnLetter(), idToRow[item.ID])
	calcCell := fmt.Sprintf("$%s%d", calcCol, idToRow[item.ID])
	final := FormulaCell(fmt.Sprintf(`=IF(%s="","%s",%s)`, calcCell, unchecked, calcCell))
	calc := FormulaCell(fmt.Sprintf(`=IF(%s="%s", "", IF(TO_TEXT(%s)="%s", "%s", "%s"))`,
		resultCell, unchecked,
		resultCell, config.CheckResult("pass", b.lang),
		config.FinalResult("pass", b.lang),
		config.FinalResult("fail", b.lang),
	))
	return []Cell{final, calc}
}

func (b *rowBuilder) subcheckCells(item *ChecklistItem, idToRow map[string]int, calcCol string) []Cell {
	parentID := strings.SplitN(item.ID, "-", 2)[0]
	empty := PlainCell("")
	empty.Protected = true
	mirror := FormulaCell(fmt.Sprintf("=%s%d", calcCol, idToRow[parentID]))
	return []Cell{empty, mirror}
}

// userEntryCells renders the result dropdown and the free-form note
// column. A parent with extracted subchecks gets a greyed, protected
// result cell instead of a dropdown.
func (b *rowBuilder) userEntryCells(item *ChecklistItem) []Cell {
	vocabulary := config.FinalResult
	if b.layout.HasGeneratedData() {
		vocabulary = config.CheckResult
	}

	var result Cell
	if b.proc.ParentWithSubchecks(item.ID, b.layout.target) {
		result = PlainCell("")
		result.Protected = true
		result.Format = &sheets.CellFormat{BackgroundColor: greyFill}
	} else {
		values := make([]*sheets.ConditionValue, 0, 3)
		for _, state := range []string{"unchecked", "pass", "fail"} {
			values = append(values, &sheets.ConditionValue{UserEnteredValue: vocabulary(state, b.lang)})
		}
		result = PlainCell(vocabulary("unchecked", b.lang))
		result.Validation = &sheets.DataValidationRule{
			Condition:    &sheets.BooleanCondition{Type: "ONE_OF_LIST", Values: values},
			Strict:       true,
			ShowCustomUi: true,
		}
	}
	return []Cell{result, PlainCell("")}
}

// linkCell renders a rich-text cell from link data, prefixing
// relative URLs with the configured base URL.
func (b *rowBuilder) linkCell(links []model.LinkData) Cell {
	if len(links) == 0 {
		return PlainCell("")
	}
	base := strings.TrimRight(config.Global().GetString("base_url", ""), "/")
	runs := make([]linkRun, 0, len(links))
	for _, link := range links {
		url := link.URL.Text(b.lang)
		if strings.HasPrefix(url, "/") {
			url = base + url
		}
		runs = append(runs, linkRun{Text: link.Text.Text(b.lang), URL: url})
	}
	return RichTextCell(runs)
}
