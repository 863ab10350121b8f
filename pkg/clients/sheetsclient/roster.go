package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// Accepted header labels, compared case-insensitively
var (
	nameHeaders   = []string{"name", "이름"}
	genderHeaders = []string{"gender", "sex/gender", "성별"}
)

// LoadRoster retrieves and parses the roster held in a spreadsheet range. The first row is a
// header with a Name column and, optionally, a Gender column.
func (c *Client) LoadRoster(spreadsheetID, sheetRange string) ([]model.Individual, error) {
	values, err := c.GetValues(spreadsheetID, sheetRange)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	individuals, err := parseRoster(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	return individuals, nil
}

// parseRoster converts raw spreadsheet data into individuals
func parseRoster(raw [][]interface{}) ([]model.Individual, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	headerRow := raw[0]
	nameCol := findColumn(headerRow, nameHeaders)
	if nameCol == -1 {
		return nil, fmt.Errorf("missing required field in header: Name")
	}
	genderCol := findColumn(headerRow, genderHeaders)

	getField := func(index int, row []interface{}) string {
		if index < 0 || index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return strings.TrimSpace(str)
		}
		return ""
	}

	individuals := make([]model.Individual, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		name := getField(nameCol, row)
		// Skip empty rows
		if name == "" {
			continue
		}

		individuals = append(individuals, model.NewIndividual(name, model.ParseCategory(getField(genderCol, row))))
	}

	return individuals, nil
}

// findColumn returns the index of the first header cell matching any label, or -1
func findColumn(header []interface{}, labels []string) int {
	for i, cell := range header {
		str, ok := cell.(string)
		if !ok {
			continue
		}
		for _, label := range labels {
			if strings.EqualFold(strings.TrimSpace(str), label) {
				return i
			}
		}
	}
	return -1
}
