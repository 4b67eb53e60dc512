package sheet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/model"
)

// ConditionFormatter renders condition trees into checklist formulas.
// Procedure leaves are referenced by the row their owning check or
// subcheck occupies.
type ConditionFormatter struct {
	resultColumn string
}

// NewConditionFormatter returns a formatter bound to a target's
// column layout.
func NewConditionFormatter(layout *ColumnLayout) *ConditionFormatter {
	return &ConditionFormatter{resultColumn: layout.ResultColumnLetter()}
}

// ConditionFormula builds the calculatedResult formula: empty while
// every referenced row is still unchecked, otherwise the localized
// final pass or fail phrase.
func (f *ConditionFormatter) ConditionFormula(cond *ConditionEntry, idToRow map[string]int, lang string) string {
	passFormula := f.analyze(cond, idToRow, config.CheckResult("pass", lang))
	guard := f.uncheckedGuard(cond, idToRow, lang)
	return fmt.Sprintf(`=IF(%s,IF(%s,"%s","%s"))`,
		guard,
		passFormula,
		config.FinalResult("pass", lang),
		config.FinalResult("fail", lang),
	)
}

func (f *ConditionFormatter) analyze(cond *ConditionEntry, idToRow map[string]int, passPhrase string) string {
	if cond.Type == model.ConditionSimple {
		return fmt.Sprintf(`TO_TEXT($%s$%d)="%s"`, f.resultColumn, idToRow[cond.Procedure.ID], passPhrase)
	}
	parts := make([]string, 0, len(cond.Children))
	for _, child := range cond.Children {
		if child.Type == model.ConditionSimple {
			parts = append(parts, f.analyze(child, idToRow, passPhrase))
		}
	}
	for _, child := range cond.Children {
		if child.Type != model.ConditionSimple {
			parts = append(parts, f.analyze(child, idToRow, passPhrase))
		}
	}
	fn := "OR"
	if cond.Type == model.ConditionAnd {
		fn = "AND"
	}
	return fn + "(" + strings.Join(parts, ",") + ")"
}

// uncheckedGuard yields `COUNTIF(range,"unchecked")=n,""` so the
// enclosing IF stays blank until at least one row is filled in.
func (f *ConditionFormatter) uncheckedGuard(cond *ConditionEntry, idToRow map[string]int, lang string) string {
	rows := f.relevantRows(cond, idToRow)
	return fmt.Sprintf(`COUNTIF($%s$%d:$%s$%d,"%s")=%d,""`,
		f.resultColumn, rows[0],
		f.resultColumn, rows[len(rows)-1],
		config.CheckResult("unchecked", lang),
		len(rows),
	)
}

// relevantRows collects the sorted, de-duplicated rows referenced by
// the condition's procedures.
func (f *ConditionFormatter) relevantRows(cond *ConditionEntry, idToRow map[string]int) []int {
	seen := map[int]bool{}
	var rows []int
	for _, proc := range cond.flatten() {
		row := idToRow[proc.ID]
		if !seen[row] {
			seen[row] = true
			rows = append(rows, row)
		}
	}
	sort.Ints(rows)
	return rows
}
