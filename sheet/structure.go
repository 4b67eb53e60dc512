package sheet

import (
	"google.golang.org/api/sheets/v4"

	"github.com/a11ygl/a11ygl/config"
	"github.com/a11ygl/a11ygl/model"
)

// Structure is one fully prepared sheet: header plus data rows.
type Structure struct {
	Name    string
	Target  string
	Lang    string
	Rows    [][]Cell
	IDToRow map[string]int
}

// ColumnCount returns the sheet's width in columns.
func (s *Structure) ColumnCount() int {
	if len(s.Rows) == 0 {
		return 0
	}
	return len(s.Rows[0])
}

// DataRowCount returns the number of rows including the header.
func (s *Structure) DataRowCount() int { return len(s.Rows) }

// HasSubcheckRows reports whether any data row carries a subcheck id.
func (s *Structure) HasSubcheckRows() bool {
	for _, row := range s.Rows[1:] {
		if len(row) > 1 && row[1].Plain != "" {
			return true
		}
	}
	return false
}

// BuildStructure prepares one sheet for a target and language.
func BuildStructure(target, lang string, items []*ChecklistItem, proc *Processor) (*Structure, bool) {
	layout, ok := LayoutFor(target)
	if !ok {
		return nil, false
	}
	s := &Structure{
		Name:   config.TargetName(target, lang),
		Target: target,
		Lang:   lang,
	}
	s.IDToRow = mapIDsToRows(items, target)

	header := make([]Cell, 0, len(layout.HeaderIDs()))
	for _, name := range layout.HeaderNames(lang) {
		cell := PlainCell(name)
		cell.Format = &sheets.CellFormat{TextFormat: &sheets.TextFormat{Bold: true}}
		header = append(header, cell)
	}
	s.Rows = append(s.Rows, header)

	builder := newRowBuilder(layout, lang, proc)
	for _, item := range items {
		s.Rows = append(s.Rows, builder.buildRow(item, s.IDToRow))
	}
	return s, true
}

// mapIDsToRows assigns a row to every non-subcheck item, then maps
// each procedure id to the row of the check or subcheck that owns it.
// Row numbers are 1-based and start below the header.
func mapIDsToRows(items []*ChecklistItem, target string) map[string]int {
	idToRow := map[string]int{}
	row := 2
	for _, item := range items {
		if item.IsSubcheck {
			continue
		}
		idToRow[item.ID] = row
		for _, cond := range item.Conditions {
			if cond.Target == target {
				mapProcedureRows(cond, idToRow, row)
			}
		}
		if group, ok := item.Subchecks[target]; ok && len(group.Items) > 0 {
			for i, sub := range group.Items {
				subRow := row + i + 1
				idToRow[sub.ID] = subRow
				for _, cond := range sub.Conditions {
					mapProcedureRows(cond, idToRow, subRow)
				}
			}
			row += len(group.Items)
		}
		row++
	}
	return idToRow
}

func mapProcedureRows(cond *ConditionEntry, idToRow map[string]int, row int) {
	if cond.Type == model.ConditionSimple {
		idToRow[cond.Procedure.ID] = row
		return
	}
	for _, child := range cond.Children {
		mapProcedureRows(child, idToRow, row)
	}
}

