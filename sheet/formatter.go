package sheet

import (
	"google.golang.org/api/sheets/v4"

	"github.com/a11ygl/a11ygl/config"
)

var (
	passFill = &sheets.Color{Red: 0.85, Green: 0.92, Blue: 0.83}
	failFill = &sheets.Color{Red: 0.96, Green: 0.80, Blue: 0.80}
)

// Formatter produces the formatting, protection and visibility
// requests for one target sheet.
type Formatter struct {
	layout      *ColumnLayout
	lang        string
	editorEmail string
}

// NewFormatter returns a formatter for one sheet's layout and
// language. editorEmail, when set, is the sole allowed editor of
// protected ranges.
func NewFormatter(layout *ColumnLayout, lang, editorEmail string) *Formatter {
	return &Formatter{layout: layout, lang: lang, editorEmail: editorEmail}
}

// BasicFormatting renders the header row and freezes it.
func (f *Formatter) BasicFormatting(sheetID int64) []*sheets.Request {
	return []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor:   greyFill,
						TextFormat:        &sheets.TextFormat{Bold: true},
						VerticalAlignment: "MIDDLE",
						WrapStrategy:      "WRAP",
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat,verticalAlignment,wrapStrategy)",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}
}

// ConditionalFormatting colors the user-entered result column green
// on pass and red on fail. On sheets with verdict columns, the same
// rules are applied to those columns with the final vocabulary.
func (f *Formatter) ConditionalFormatting(sheetID int64, dataLength int) []*sheets.Request {
	resultCol := int64(f.layout.ResultColumnIndex())
	requests := []*sheets.Request{
		f.colorRule(sheetID, dataLength, resultCol, resultCol+1, config.CheckResult("pass", f.lang), passFill),
		f.colorRule(sheetID, dataLength, resultCol, resultCol+1, config.CheckResult("fail", f.lang), failFill),
	}
	if f.layout.HasGeneratedData() {
		start := int64(len(idColumns))
		end := start + int64(f.layout.GeneratedDataCount())
		requests = append(requests,
			f.colorRule(sheetID, dataLength, start, end, config.FinalResult("pass", f.lang), passFill),
			f.colorRule(sheetID, dataLength, start, end, config.FinalResult("fail", f.lang), failFill),
		)
	}
	return requests
}

func (f *Formatter) colorRule(sheetID int64, dataLength int, startCol, endCol int64, phrase string, fill *sheets.Color) *sheets.Request {
	return &sheets.Request{
		AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
			Rule: &sheets.ConditionalFormatRule{
				Ranges: []*sheets.GridRange{{
					SheetId:          sheetID,
					StartRowIndex:    1,
					EndRowIndex:      int64(dataLength + 1),
					StartColumnIndex: startCol,
					EndColumnIndex:   endCol,
				}},
				BooleanRule: &sheets.BooleanRule{
					Condition: &sheets.BooleanCondition{
						Type:   "TEXT_EQ",
						Values: []*sheets.ConditionValue{{UserEnteredValue: phrase}},
					},
					Format: &sheets.CellFormat{BackgroundColor: fill},
				},
			},
		},
	}
}

// ProtectionRequests protects the verdict column block.
func (f *Formatter) ProtectionRequests(sheetID int64, dataLength int) []*sheets.Request {
	if !f.layout.HasGeneratedData() {
		return nil
	}
	start := int64(len(idColumns))
	return []*sheets.Request{{
		AddProtectedRange: &sheets.AddProtectedRangeRequest{
			ProtectedRange: &sheets.ProtectedRange{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    1,
					EndRowIndex:      int64(dataLength + 1),
					StartColumnIndex: start,
					EndColumnIndex:   start + int64(f.layout.GeneratedDataCount()),
				},
				Description: "Generated data protection",
				WarningOnly: false,
				Editors:     f.editors(),
			},
		},
	}}
}

// ParentCellProtection protects the result cell of one parent row.
func (f *Formatter) ParentCellProtection(sheetID int64, rowIndex int) *sheets.Request {
	resultCol := int64(f.layout.ResultColumnIndex())
	return &sheets.Request{
		AddProtectedRange: &sheets.AddProtectedRangeRequest{
			ProtectedRange: &sheets.ProtectedRange{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(rowIndex),
					EndRowIndex:      int64(rowIndex + 1),
					StartColumnIndex: resultCol,
					EndColumnIndex:   resultCol + 1,
				},
				Description: "Parent check cell protection",
				WarningOnly: false,
				Editors:     f.editors(),
			},
		},
	}
}

func (f *Formatter) editors() *sheets.Editors {
	editors := &sheets.Editors{DomainUsersCanEdit: false}
	if f.editorEmail != "" {
		editors.Users = []string{f.editorEmail}
	}
	return editors
}

// VisibilityRequests resets column visibility and hides the columns
// the target does not use: subcheckId alone on plain sheets, the
// subcheckId plus both verdict columns when no subcheck rows exist,
// and only subcheckId (with merged id headers) when they do.
func (f *Formatter) VisibilityRequests(sheetID int64, columnCount int, hasSubchecks bool) []*sheets.Request {
	requests := []*sheets.Request{
		dimensionVisibility(sheetID, 0, int64(columnCount), false),
	}
	if !f.layout.HasGeneratedData() {
		return append(requests, dimensionVisibility(sheetID, 1, 2, true))
	}
	if !hasSubchecks {
		return append(requests, dimensionVisibility(sheetID, 1, 4, true))
	}
	requests = append(requests, dimensionVisibility(sheetID, 1, 2, true))
	requests = append(requests, &sheets.Request{
		MergeCells: &sheets.MergeCellsRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    0,
				EndRowIndex:      1,
				StartColumnIndex: 0,
				EndColumnIndex:   2,
			},
			MergeType: "MERGE_ALL",
		},
	})
	return requests
}

func dimensionVisibility(sheetID, start, end int64, hidden bool) *sheets.Request {
	return &sheets.Request{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "COLUMNS",
				StartIndex: start,
				EndIndex:   end,
			},
			Properties: &sheets.DimensionProperties{HiddenByUser: hidden},
			Fields:     "hiddenByUser",
		},
	}
}
