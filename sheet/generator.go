package sheet

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"google.golang.org/api/sheets/v4"

	"github.com/a11ygl/a11ygl/config"
)

const (
	// batchSize caps the number of requests per batch call to stay
	// clear of server-side timeouts.
	batchSize = 50
	// rowChunkSize caps the rows written per updateCells request.
	rowChunkSize = 100

	defaultVersionCell = "A27"
)

// Generator assembles the full mutation sequence for a checklist
// spreadsheet and drives it through the API in batches.
type Generator struct {
	client      APIClient
	manager     *Manager
	processor   *Processor
	logger      *slog.Logger
	editorEmail string
	versionCell string

	structures []*Structure
}

// NewGenerator returns a generator writing through the given client.
func NewGenerator(client APIClient, editorEmail string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	versionCell := config.Global().GetString("sheet.version_cell", defaultVersionCell)
	if versionCell == "" {
		versionCell = defaultVersionCell
	}
	return &Generator{
		client:      client,
		manager:     NewManager(client, logger),
		processor:   NewProcessor(logger),
		logger:      logger,
		editorEmail: editorEmail,
		versionCell: versionCell,
	}
}

// Generate builds all target sheets from the checklist items and
// applies them to the spreadsheet. With initialize set, every sheet
// after the first is deleted up front.
func (g *Generator) Generate(ctx context.Context, items []*ChecklistItem, version, date string, initialize bool) error {
	runID := uuid.NewString()
	logger := g.logger.With("run", runID)

	if initialize {
		logger.Info("initializing spreadsheet")
		if err := g.manager.Initialize(ctx); err != nil {
			return err
		}
	} else if err := g.manager.Load(ctx); err != nil {
		return err
	}

	byTarget := g.processor.Process(items)
	g.structures = g.structures[:0]
	for _, lang := range config.AvailableLanguages() {
		for _, target := range TargetIDs {
			structure, ok := BuildStructure(target, lang, byTarget[target], g.processor)
			if !ok {
				continue
			}
			g.structures = append(g.structures, structure)
		}
	}
	logger.Info("prepared sheets", "count", len(g.structures))

	if err := g.createMissingSheets(ctx, logger); err != nil {
		return err
	}

	requests := g.updateRequests()
	if versionRequest, err := g.versionInfoRequest(version, date); err == nil {
		requests = append(requests, versionRequest)
	} else {
		logger.Warn("skipping version cell write", "error", err)
	}
	g.flushBatches(ctx, logger, requests)
	logger.Info("checklist generation completed")
	return nil
}

// createMissingSheets issues every addSheet mutation as one batch and
// rebinds the returned sheet ids.
func (g *Generator) createMissingSheets(ctx context.Context, logger *slog.Logger) error {
	var requests []*sheets.Request
	for _, structure := range g.structures {
		if g.manager.Exists(structure.Name) {
			continue
		}
		rows := int64(structure.DataRowCount() + 1)
		if rows < 1000 {
			rows = 1000
		}
		cols := int64(structure.ColumnCount())
		if cols < 26 {
			cols = 26
		}
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title:          structure.Name,
					GridProperties: &sheets.GridProperties{RowCount: rows, ColumnCount: cols},
				},
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}
	logger.Info("creating sheets", "count", len(requests))
	response, err := g.client.BatchUpdate(ctx, requests)
	if err != nil {
		return fmt.Errorf("creating sheets: %w", err)
	}
	for _, reply := range response.Replies {
		if reply.AddSheet != nil {
			g.manager.Bind(reply.AddSheet.Properties.Title, reply.AddSheet.Properties.SheetId)
		}
	}
	return nil
}

// updateRequests assembles the per-sheet content, formatting,
// protection and visibility mutations.
func (g *Generator) updateRequests() []*sheets.Request {
	var requests []*sheets.Request
	for _, structure := range g.structures {
		sheetID, ok := g.manager.SheetID(structure.Name)
		if !ok {
			g.logger.Warn("sheet id missing after creation", "sheet", structure.Name)
			continue
		}
		requests = append(requests, g.sheetRequests(structure, sheetID)...)
	}
	return requests
}

func (g *Generator) sheetRequests(structure *Structure, sheetID int64) []*sheets.Request {
	layout, _ := LayoutFor(structure.Target)
	formatter := NewFormatter(layout, structure.Lang, g.editorEmail)
	dataLength := structure.DataRowCount()
	columnCount := structure.ColumnCount()

	var requests []*sheets.Request

	if rows, cols, ok := g.manager.GridSize(structure.Name); ok {
		requests = append(requests, adjustGridSize(sheetID, int64(dataLength), int64(columnCount), rows, cols)...)
	}

	for _, rangeID := range g.manager.ProtectedRangeIDs(structure.Name) {
		requests = append(requests, &sheets.Request{
			DeleteProtectedRange: &sheets.DeleteProtectedRangeRequest{ProtectedRangeId: rangeID},
		})
	}

	// Full wipe before rewriting.
	requests = append(requests, &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Range: &sheets.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    0,
				EndRowIndex:      int64(dataLength),
				StartColumnIndex: 0,
				EndColumnIndex:   int64(columnCount),
			},
			Fields: "*",
		},
	})

	requests = append(requests, dataChunkRequests(sheetID, structure.Rows)...)

	for i, width := range layout.Widths() {
		requests = append(requests, &sheets.Request{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: int64(i),
					EndIndex:   int64(i + 1),
				},
				Properties: &sheets.DimensionProperties{PixelSize: width},
				Fields:     "pixelSize",
			},
		})
	}

	requests = append(requests, formatter.BasicFormatting(sheetID)...)
	requests = append(requests, formatter.ProtectionRequests(sheetID, dataLength)...)
	for i, row := range structure.Rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if g.processor.ParentWithSubchecks(row[0].Plain, structure.Target) {
			requests = append(requests, formatter.ParentCellProtection(sheetID, i))
		}
	}
	requests = append(requests, formatter.ConditionalFormatting(sheetID, dataLength)...)
	requests = append(requests, formatter.VisibilityRequests(sheetID, columnCount, structure.HasSubcheckRows())...)
	return requests
}

// dataChunkRequests writes the prepared rows in chunks.
func dataChunkRequests(sheetID int64, rows [][]Cell) []*sheets.Request {
	var requests []*sheets.Request
	for start := 0; start < len(rows); start += rowChunkSize {
		end := start + rowChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := make([]*sheets.RowData, 0, end-start)
		for _, row := range rows[start:end] {
			values := make([]*sheets.CellData, len(row))
			for i, cell := range row {
				values[i] = cell.API()
			}
			chunk = append(chunk, &sheets.RowData{Values: values})
		}
		requests = append(requests, &sheets.Request{
			UpdateCells: &sheets.UpdateCellsRequest{
				Rows:   chunk,
				Fields: "userEnteredValue,userEnteredFormat,textFormatRuns,dataValidation",
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(start),
					StartColumnIndex: 0,
				},
			},
		})
	}
	return requests
}

// adjustGridSize grows or shrinks the sheet to the required
// dimensions.
func adjustGridSize(sheetID, requiredRows, requiredCols, currentRows, currentCols int64) []*sheets.Request {
	var requests []*sheets.Request
	switch {
	case currentRows < requiredRows:
		requests = append(requests, &sheets.Request{
			AppendDimension: &sheets.AppendDimensionRequest{
				SheetId:   sheetID,
				Dimension: "ROWS",
				Length:    requiredRows - currentRows,
			},
		})
	case currentRows > requiredRows:
		requests = append(requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: requiredRows,
					EndIndex:   currentRows,
				},
			},
		})
	}
	switch {
	case currentCols < requiredCols:
		requests = append(requests, &sheets.Request{
			AppendDimension: &sheets.AppendDimensionRequest{
				SheetId:   sheetID,
				Dimension: "COLUMNS",
				Length:    requiredCols - currentCols,
			},
		})
	case currentCols > requiredCols:
		requests = append(requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: requiredCols,
					EndIndex:   currentCols,
				},
			},
		})
	}
	return requests
}

var cellRefPattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

// versionInfoRequest writes the checklist version string into the
// configured cell of the first sheet.
func (g *Generator) versionInfoRequest(version, date string) (*sheets.Request, error) {
	sheetID, err := g.manager.FirstSheetID()
	if err != nil {
		return nil, err
	}
	row, col, err := parseCellRef(g.versionCell)
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf("チェックリスト・バージョン：%s (%s)", version, date)
	return &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Rows: []*sheets.RowData{{
				Values: []*sheets.CellData{{
					UserEnteredValue: &sheets.ExtendedValue{StringValue: &text},
				}},
			}},
			Fields: "userEnteredValue",
			Range: &sheets.GridRange{
				SheetId:          sheetID,
				StartRowIndex:    row,
				EndRowIndex:      row + 1,
				StartColumnIndex: col,
				EndColumnIndex:   col + 1,
			},
		},
	}, nil
}

func parseCellRef(ref string) (row, col int64, err error) {
	m := cellRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	for _, r := range m[1] {
		col = col*26 + int64(r-'A'+1)
	}
	col--
	n, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return n - 1, col, nil
}

// flushBatches applies the mutation queue in fixed-size batches. A
// failing batch is logged and the next batch proceeds.
func (g *Generator) flushBatches(ctx context.Context, logger *slog.Logger, requests []*sheets.Request) {
	total := len(requests)
	if total == 0 {
		return
	}
	logger.Info("applying updates", "requests", total)
	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}
		if _, err := g.client.BatchUpdate(ctx, requests[start:end]); err != nil {
			logger.Error("batch failed, continuing",
				"from", start+1, "to", end, "error", err)
			continue
		}
		logger.Debug("batch applied", "from", start+1, "to", end)
	}
}
