package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// RosterSource reads a roster from a spreadsheet
type RosterSource interface {
	LoadRoster(spreadsheetID, sheetRange string) ([]model.Individual, error)
}

// ArrangementPublisher writes the groups to a spreadsheet
type ArrangementPublisher interface {
	SaveArrangement(spreadsheetID, sheetRange string, groups []model.Group) error
}

// PullRoster appends the roster held in a spreadsheet to the working roster
func (w *Workspace) PullRoster(ctx context.Context, source RosterSource, spreadsheetID, sheetRange string) ([]model.Individual, error) {
	w.logger.Debug("Pulling roster", zap.String("spreadsheet_id", spreadsheetID), zap.String("range", sheetRange))

	individuals, err := source.LoadRoster(spreadsheetID, sheetRange)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return w.AddIndividuals(ctx, individuals)
}

// PushArrangement writes the current groups to a spreadsheet
func (w *Workspace) PushArrangement(ctx context.Context, publisher ArrangementPublisher, spreadsheetID, sheetRange string) error {
	snapshot, err := w.Current(ctx)
	if err != nil {
		return err
	}

	if err := publisher.SaveArrangement(spreadsheetID, sheetRange, snapshot.Groups); err != nil {
		return fmt.Errorf("failed to save arrangement: %w", err)
	}

	w.logger.Info("Published arrangement",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.Int("groups", len(snapshot.Groups)),
		zap.Int("placed", snapshot.PlacedCount()))
	return nil
}
