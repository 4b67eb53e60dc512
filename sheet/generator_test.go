package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"

	"github.com/a11ygl/a11ygl/config"
)

// fakeClient applies addSheet and deleteSheet requests against an
// in-memory spreadsheet and records every batch it receives.
type fakeClient struct {
	spreadsheet *sheets.Spreadsheet
	batches     [][]*sheets.Request
	nextID      int64
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		spreadsheet: &sheets.Spreadsheet{
			Sheets: []*sheets.Sheet{{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					Title:   "Sheet1",
					Index:   0,
					GridProperties: &sheets.GridProperties{
						RowCount:    1000,
						ColumnCount: 26,
					},
				},
			}},
		},
	}
}

func (f *fakeClient) Spreadsheet(ctx context.Context) (*sheets.Spreadsheet, error) {
	return f.spreadsheet, nil
}

func (f *fakeClient) BatchUpdate(ctx context.Context, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	f.batches = append(f.batches, requests)
	response := &sheets.BatchUpdateSpreadsheetResponse{}
	for _, req := range requests {
		reply := &sheets.Response{}
		switch {
		case req.AddSheet != nil:
			f.nextID++
			props := &sheets.SheetProperties{
				SheetId:        f.nextID,
				Title:          req.AddSheet.Properties.Title,
				Index:          f.nextID,
				GridProperties: req.AddSheet.Properties.GridProperties,
			}
			f.spreadsheet.Sheets = append(f.spreadsheet.Sheets, &sheets.Sheet{Properties: props})
			reply.AddSheet = &sheets.AddSheetResponse{Properties: props}
		case req.DeleteSheet != nil:
			kept := f.spreadsheet.Sheets[:0]
			for _, s := range f.spreadsheet.Sheets {
				if s.Properties.SheetId != req.DeleteSheet.SheetId {
					kept = append(kept, s)
				}
			}
			f.spreadsheet.Sheets = kept
		}
		response.Replies = append(response.Replies, reply)
	}
	return response, nil
}

func (f *fakeClient) addSheetCount() int {
	count := 0
	for _, batch := range f.batches {
		for _, req := range batch {
			if req.AddSheet != nil {
				count++
			}
		}
	}
	return count
}

func (f *fakeClient) allRequests() []*sheets.Request {
	var requests []*sheets.Request
	for _, batch := range f.batches {
		requests = append(requests, batch...)
	}
	return requests
}

func TestGenerateCreatesAllTargetSheets(t *testing.T) {
	config.ResetGlobal()
	t.Cleanup(config.ResetGlobal)

	client := newFakeClient()
	gen := NewGenerator(client, "", quietLogger())
	items := []*ChecklistItem{
		withCondition(newItem("0001", 100, "product", "web"), "simple", "0001-proc-01"),
	}

	require.NoError(t, gen.Generate(context.Background(), items, "1.2.3", "2026-08-29", false))

	// One sheet per target per available language.
	want := len(TargetIDs) * len(config.AvailableLanguages())
	assert.Equal(t, want, client.addSheetCount())
	assert.Len(t, client.spreadsheet.Sheets, want+1)

	titles := map[string]bool{}
	for _, s := range client.spreadsheet.Sheets {
		titles[s.Properties.Title] = true
	}
	assert.True(t, titles["プロダクト: Web"])
	assert.True(t, titles["Product: Web"])
}

func TestGenerateSecondRunAddsNoSheets(t *testing.T) {
	config.ResetGlobal()
	t.Cleanup(config.ResetGlobal)

	client := newFakeClient()
	items := []*ChecklistItem{
		withCondition(newItem("0001", 100, "product", "web"), "simple", "0001-proc-01"),
	}

	first := NewGenerator(client, "", quietLogger())
	require.NoError(t, first.Generate(context.Background(), items, "1.2.3", "2026-08-29", false))
	created := client.addSheetCount()
	require.Positive(t, created)

	second := NewGenerator(client, "", quietLogger())
	require.NoError(t, second.Generate(context.Background(), items, "1.2.3", "2026-08-29", false))
	assert.Equal(t, created, client.addSheetCount())
}

func TestGenerateInitializeDeletesExtraSheets(t *testing.T) {
	config.ResetGlobal()
	t.Cleanup(config.ResetGlobal)

	client := newFakeClient()
	client.spreadsheet.Sheets = append(client.spreadsheet.Sheets, &sheets.Sheet{
		Properties: &sheets.SheetProperties{SheetId: 99, Title: "stale", Index: 1},
	})

	gen := NewGenerator(client, "", quietLogger())
	require.NoError(t, gen.Generate(context.Background(), nil, "1.2.3", "2026-08-29", true))

	for _, s := range client.spreadsheet.Sheets {
		assert.NotEqual(t, "stale", s.Properties.Title)
	}
}

func TestGenerateWritesVersionCell(t *testing.T) {
	config.ResetGlobal()
	t.Cleanup(config.ResetGlobal)

	client := newFakeClient()
	gen := NewGenerator(client, "", quietLogger())
	require.NoError(t, gen.Generate(context.Background(), nil, "4.9.0", "2026年8月29日", false))

	var found *sheets.UpdateCellsRequest
	for _, req := range client.allRequests() {
		if req.UpdateCells != nil && req.UpdateCells.Range.SheetId == 0 &&
			req.UpdateCells.Fields == "userEnteredValue" {
			found = req.UpdateCells
		}
	}
	require.NotNil(t, found)
	// Default version cell A27.
	assert.Equal(t, int64(26), found.Range.StartRowIndex)
	assert.Equal(t, int64(0), found.Range.StartColumnIndex)
	value := found.Rows[0].Values[0].UserEnteredValue.StringValue
	require.NotNil(t, value)
	assert.Equal(t, "チェックリスト・バージョン：4.9.0 (2026年8月29日)", *value)
}

func TestGenerateProtectsParentResultCell(t *testing.T) {
	config.ResetGlobal()
	t.Cleanup(config.ResetGlobal)

	client := newFakeClient()
	gen := NewGenerator(client, "editor@example.com", quietLogger())
	items := []*ChecklistItem{
		withCondition(newItem("0005", 100, "product", "web"), "and", "0005-1", "0005-2"),
	}
	require.NoError(t, gen.Generate(context.Background(), items, "1.2.3", "2026-08-29", false))

	singleCell := 0
	for _, req := range client.allRequests() {
		add := req.AddProtectedRange
		if add == nil {
			continue
		}
		r := add.ProtectedRange.Range
		if r.EndRowIndex-r.StartRowIndex == 1 && r.EndColumnIndex-r.StartColumnIndex == 1 {
			singleCell++
			require.NotNil(t, add.ProtectedRange.Editors)
			assert.Equal(t, []string{"editor@example.com"}, add.ProtectedRange.Editors.Users)
		}
	}
	// One parent result cell per language on the productWeb sheets.
	assert.Equal(t, 2, singleCell)
}

func TestParseCellRef(t *testing.T) {
	row, col, err := parseCellRef("A27")
	require.NoError(t, err)
	assert.Equal(t, int64(26), row)
	assert.Equal(t, int64(0), col)

	row, col, err = parseCellRef("AB3")
	require.NoError(t, err)
	assert.Equal(t, int64(2), row)
	assert.Equal(t, int64(27), col)

	_, _, err = parseCellRef("27A")
	assert.Error(t, err)
}
