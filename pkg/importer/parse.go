// Package importer reads rosters from pasted text and CSV files, and writes arrangements back
// out as CSV or JSON
package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

const byteOrderMark = "\ufeff"

// bulkEntry matches "name", "name/남", "name 여", "name|female" and similar
var bulkEntry = regexp.MustCompile(`^([^/\s,|]+)[/\s|]*(\S*)`)

// ParseBulk parses free text with one or more entries per line. Entries are separated by newlines
// or commas; each is a name optionally followed by a gender token.
func ParseBulk(text string) []model.Individual {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ','
	})

	individuals := make([]model.Individual, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		name, gender := token, ""
		if m := bulkEntry.FindStringSubmatch(token); m != nil {
			name, gender = m[1], m[2]
		}
		individuals = append(individuals, model.NewIndividual(name, model.ParseCategory(gender)))
	}
	return individuals
}

// ParseCSV reads a roster from CSV. A leading byte order mark is ignored. If the first row's
// first cell is a name header ("name" or "이름"), columns are located by header; otherwise the
// first column is the name and the second the gender. Rows without a name are skipped.
func ParseCSV(r io.Reader) ([]model.Individual, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(byteOrderMark)); err == nil && string(head) == byteOrderMark {
		_, _ = br.Discard(len(byteOrderMark))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	nameCol, genderCol := 0, 1
	individuals := make([]model.Individual, 0)
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		if row == 0 && len(record) > 0 && isNameHeader(record[0]) {
			nameCol, genderCol = headerIndexes(record)
			continue
		}

		name := strings.TrimSpace(cell(record, nameCol))
		if name == "" {
			continue
		}
		individuals = append(individuals, model.NewIndividual(name, model.ParseCategory(cell(record, genderCol))))
	}
	return individuals, nil
}

func isNameHeader(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	return value == "name" || value == "이름"
}

func isGenderHeader(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	return value == "gender" || value == "성별"
}

// headerIndexes locates the name and gender columns, returning -1 for a missing gender column
func headerIndexes(header []string) (int, int) {
	nameCol, genderCol := 0, -1
	for i, value := range header {
		switch {
		case isNameHeader(value):
			nameCol = i
		case isGenderHeader(value) && genderCol < 0:
			genderCol = i
		}
	}
	return nameCol, genderCol
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
