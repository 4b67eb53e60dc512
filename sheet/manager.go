package sheet

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/sheets/v4"
)

// sheetInfo is the cached state of one existing sheet.
type sheetInfo struct {
	id              int64
	index           int64
	rowCount        int64
	columnCount     int64
	protectedRanges []int64
}

// Manager tracks the sheets and protected ranges already present in
// the target spreadsheet.
type Manager struct {
	client APIClient
	logger *slog.Logger

	sheets     map[string]*sheetInfo
	firstSheet string
	loaded     bool
}

// NewManager returns a manager for the spreadsheet behind client.
func NewManager(client APIClient, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{client: client, logger: logger, sheets: map[string]*sheetInfo{}}
}

// Load enumerates the spreadsheet's sheets, grid sizes and protected
// range ids.
func (m *Manager) Load(ctx context.Context) error {
	spreadsheet, err := m.client.Spreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("loading spreadsheet: %w", err)
	}
	m.sheets = map[string]*sheetInfo{}
	m.firstSheet = ""
	for _, s := range spreadsheet.Sheets {
		info := &sheetInfo{
			id:    s.Properties.SheetId,
			index: s.Properties.Index,
		}
		if grid := s.Properties.GridProperties; grid != nil {
			info.rowCount = grid.RowCount
			info.columnCount = grid.ColumnCount
		}
		for _, pr := range s.ProtectedRanges {
			info.protectedRanges = append(info.protectedRanges, pr.ProtectedRangeId)
		}
		m.sheets[s.Properties.Title] = info
		if m.firstSheet == "" || s.Properties.Index < m.sheets[m.firstSheet].index {
			m.firstSheet = s.Properties.Title
		}
	}
	m.loaded = true
	m.logger.Debug("loaded existing sheets", "count", len(m.sheets))
	return nil
}

// Initialize deletes every sheet after the first so generation starts
// from a clean slate.
func (m *Manager) Initialize(ctx context.Context) error {
	spreadsheet, err := m.client.Spreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("loading spreadsheet: %w", err)
	}
	var requests []*sheets.Request
	for _, s := range spreadsheet.Sheets[1:] {
		requests = append(requests, &sheets.Request{
			DeleteSheet: &sheets.DeleteSheetRequest{SheetId: s.Properties.SheetId},
		})
	}
	if len(requests) > 0 {
		if _, err := m.client.BatchUpdate(ctx, requests); err != nil {
			return fmt.Errorf("deleting existing sheets: %w", err)
		}
		m.logger.Info("deleted existing sheets except the first")
	}
	return m.Load(ctx)
}

// Exists reports whether a sheet with the given title is present.
func (m *Manager) Exists(title string) bool {
	_, ok := m.sheets[title]
	return ok
}

// SheetID returns the id of a sheet by title.
func (m *Manager) SheetID(title string) (int64, bool) {
	info, ok := m.sheets[title]
	if !ok {
		return 0, false
	}
	return info.id, true
}

// GridSize returns the current row and column counts of a sheet.
func (m *Manager) GridSize(title string) (rows, cols int64, ok bool) {
	info, found := m.sheets[title]
	if !found {
		return 0, 0, false
	}
	return info.rowCount, info.columnCount, true
}

// ProtectedRangeIDs returns the known protected range ids of a sheet.
func (m *Manager) ProtectedRangeIDs(title string) []int64 {
	info, ok := m.sheets[title]
	if !ok {
		return nil
	}
	return info.protectedRanges
}

// FirstSheetID returns the id of the spreadsheet's first sheet.
func (m *Manager) FirstSheetID() (int64, error) {
	info, ok := m.sheets[m.firstSheet]
	if !ok {
		return 0, fmt.Errorf("spreadsheet has no sheets")
	}
	return info.id, nil
}

// Bind records a newly created sheet's id.
func (m *Manager) Bind(title string, id int64) {
	m.sheets[title] = &sheetInfo{id: id}
	if m.firstSheet == "" {
		m.firstSheet = title
	}
}
