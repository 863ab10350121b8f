package sheetsclient

import (
	"fmt"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

var arrangementHeader = []interface{}{"Group", "No", "Name", "Gender"}

// SaveArrangement replaces the contents of a spreadsheet range with one row per placed
// individual, grouped and numbered within each group. Empty groups keep a row of their own so
// every group stays visible.
func (c *Client) SaveArrangement(spreadsheetID, sheetRange string, groups []model.Group) error {
	if err := c.ReplaceValues(spreadsheetID, sheetRange, arrangementRows(groups)); err != nil {
		return fmt.Errorf("failed to write arrangement: %w", err)
	}
	return nil
}

func arrangementRows(groups []model.Group) [][]interface{} {
	rows := [][]interface{}{arrangementHeader}
	for _, group := range groups {
		if len(group.Members) == 0 {
			rows = append(rows, []interface{}{group.Name, "", "", ""})
			continue
		}
		for i, member := range group.Members {
			rows = append(rows, []interface{}{group.Name, i + 1, member.Name, string(member.Category)})
		}
	}
	return rows
}
