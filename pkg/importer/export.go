package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// ExportCSV writes every group as a block: the group name, one numbered row per member, then a
// blank line. The output starts with a byte order mark so spreadsheet tools detect UTF-8.
func ExportCSV(w io.Writer, groups []model.Group) error {
	if _, err := io.WriteString(w, byteOrderMark); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	writer := csv.NewWriter(w)
	records := [][]string{{"No", "Name", "Gender"}}
	for _, group := range groups {
		records = append(records, []string{group.Name})
		for i, member := range group.Members {
			records = append(records, []string{strconv.Itoa(i + 1), member.Name, string(member.Category)})
		}
		records = append(records, []string{})
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// EncodeSnapshot writes the snapshot as indented JSON
func EncodeSnapshot(w io.Writer, snapshot *model.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot.Clone()); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot, or an export from the browser
// version of the arranger, and validates it
func DecodeSnapshot(r io.Reader) (*model.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	var snapshot *model.Snapshot
	if _, ok := keys["students"]; ok {
		snapshot, err = decodeBrowserExport(data)
	} else {
		var decoded model.Snapshot
		err = json.Unmarshal(data, &decoded)
		snapshot = decoded.Clone()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return snapshot, nil
}
