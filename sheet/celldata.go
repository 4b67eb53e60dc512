package sheet

import (
	"strings"

	"google.golang.org/api/sheets/v4"
)

// linkColor is the foreground used on rich-text link runs.
var linkColor = &sheets.Color{Red: 0.06, Green: 0.47, Blue: 0.82}

// greyFill is shared by the header row and protected parent cells.
var greyFill = &sheets.Color{Red: 0.9, Green: 0.9, Blue: 0.9}

// Cell is one cell of a prepared sheet, carrying its value,
// formatting, validation and protection intent. An empty plain cell
// renders as a truly empty cell without format.
type Cell struct {
	Plain      string
	Formula    string
	RichText   *RichText
	Format     *sheets.CellFormat
	Validation *sheets.DataValidationRule
	Protected  bool
}

// RichText is a text value with styled link runs.
type RichText struct {
	Text string
	Runs []*sheets.TextFormatRun
}

// PlainCell returns a plain text cell.
func PlainCell(value string) Cell { return Cell{Plain: value} }

// FormulaCell returns a protected formula cell.
func FormulaCell(formula string) Cell {
	return Cell{Formula: formula, Protected: true}
}

func (c Cell) empty() bool {
	return c.Formula == "" && c.RichText == nil && strings.TrimSpace(c.Plain) == ""
}

// API converts the cell into its wire representation.
func (c Cell) API() *sheets.CellData {
	data := &sheets.CellData{}
	switch {
	case c.empty():
		// Leave userEnteredValue unset so the write clears the cell.
		// A protected placeholder keeps its background fill.
		if c.Protected && c.Format != nil {
			data.UserEnteredFormat = c.Format
		}
	case c.Formula != "":
		data.UserEnteredValue = &sheets.ExtendedValue{FormulaValue: &c.Formula}
		data.UserEnteredFormat = c.Format
	case c.RichText != nil:
		data.UserEnteredValue = &sheets.ExtendedValue{StringValue: &c.RichText.Text}
		data.TextFormatRuns = c.RichText.Runs
		data.UserEnteredFormat = c.Format
	default:
		data.UserEnteredValue = &sheets.ExtendedValue{StringValue: &c.Plain}
		data.UserEnteredFormat = c.Format
	}
	if c.Validation != nil {
		data.DataValidation = c.Validation
	}
	return data
}

// RichTextCell builds a cell whose links render as blue underlined
// runs separated by newlines. Relative URLs are prefixed with the
// base URL.
func RichTextCell(links []linkRun) Cell {
	var text strings.Builder
	var runs []*sheets.TextFormatRun
	for i, link := range links {
		if i > 0 {
			text.WriteString("\n")
		}
		start := int64(len([]rune(text.String())))
		text.WriteString(link.Text)
		runs = append(runs, &sheets.TextFormatRun{
			StartIndex: start,
			Format: &sheets.TextFormat{
				Link:            &sheets.Link{Uri: link.URL},
				ForegroundColor: linkColor,
				Underline:       true,
			},
		})
	}
	return Cell{RichText: &RichText{Text: text.String(), Runs: runs}}
}

// linkRun is one resolved link of a rich-text cell.
type linkRun struct {
	Text string
	URL  string
}
