package sheetsclient

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/seat-arranger/internal/config"
	"github.com/jakechorley/seat-arranger/pkg/utils"
)

// Client wraps the Google Sheets API client
type Client struct {
	service *sheets.Service
	ctx     context.Context
}

// NewClient creates a new Sheets client using OAuth credentials and performs OAuth flow if needed
// Tokens are persisted to disk for the given environment
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	// Get token (will perform OAuth flow if needed, tokens are persisted to disk)
	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
	}, nil
}

// GetValues reads values from a spreadsheet range
func (c *Client) GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Context(c.ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}

	return resp.Values, nil
}

// ReplaceValues clears a range and writes rows starting at its top-left cell
func (c *Client) ReplaceValues(spreadsheetID, sheetRange string, values [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, sheetRange, &sheets.ClearValuesRequest{}).
		Context(c.ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear range: %w", err)
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err = c.service.Spreadsheets.Values.Update(spreadsheetID, sheetRange, valueRange).
		ValueInputOption("RAW").
		Context(c.ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update values: %w", err)
	}

	return nil
}
