package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/internal/config"
	"github.com/jakechorley/seat-arranger/pkg/clients/sheetsclient"
	"github.com/jakechorley/seat-arranger/pkg/core/services"
	"github.com/jakechorley/seat-arranger/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Env       string
	Store     db.SnapshotStore
	Workspace *services.Workspace
	Logger    *zap.Logger
	Ctx       context.Context

	sheetsClient *sheetsclient.Client
}

// SheetsClient authenticates against Google Sheets on first use and reuses the client afterwards,
// so commands that never touch a spreadsheet never need an OAuth client file
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.sheetsClient = client
	return client, nil
}
