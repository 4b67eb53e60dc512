package sheet

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// APIClient is the boundary to the spreadsheet service. The real
// implementation wraps the Sheets v4 API; tests substitute a fake.
type APIClient interface {
	Spreadsheet(ctx context.Context) (*sheets.Spreadsheet, error)
	BatchUpdate(ctx context.Context, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error)
}

// sheetsClient is the production APIClient over the Sheets v4
// service.
type sheetsClient struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewClient builds an API client for one spreadsheet using the given
// OAuth token source.
func NewClient(ctx context.Context, spreadsheetID string, tokenSource oauth2.TokenSource) (APIClient, error) {
	service, err := sheets.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &sheetsClient{service: service, spreadsheetID: spreadsheetID}, nil
}

func (c *sheetsClient) Spreadsheet(ctx context.Context) (*sheets.Spreadsheet, error) {
	return c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
}

func (c *sheetsClient) BatchUpdate(ctx context.Context, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	return c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
}
