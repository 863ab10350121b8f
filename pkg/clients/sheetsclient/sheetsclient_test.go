package sheetsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

func TestParseRoster(t *testing.T) {
	raw := [][]interface{}{
		{"No", "Name", "Sex/Gender"},
		{"1", "Kim", "M"},
		{"2", " Lee ", "여"},
		{"3", "", "F"},
		{"4", "Park"},
	}

	individuals, err := parseRoster(raw)
	require.NoError(t, err)
	require.Len(t, individuals, 3)

	assert.Equal(t, "Kim", individuals[0].Name)
	assert.Equal(t, model.CategoryMale, individuals[0].Category)
	assert.Equal(t, "Lee", individuals[1].Name)
	assert.Equal(t, model.CategoryFemale, individuals[1].Category)
	assert.Equal(t, "Park", individuals[2].Name)
	assert.Equal(t, model.CategoryUnspecified, individuals[2].Category)
	for _, individual := range individuals {
		assert.NotEmpty(t, individual.ID)
	}
}

func TestParseRoster_KoreanHeaderWithoutGender(t *testing.T) {
	individuals, err := parseRoster([][]interface{}{{"이름"}, {"Kim"}})
	require.NoError(t, err)
	require.Len(t, individuals, 1)
	assert.Equal(t, model.CategoryUnspecified, individuals[0].Category)
}

func TestParseRoster_MissingNameColumn(t *testing.T) {
	_, err := parseRoster([][]interface{}{{"Student", "Gender"}, {"Kim", "M"}})
	assert.ErrorContains(t, err, "missing required field in header: Name")

	_, err = parseRoster(nil)
	assert.Error(t, err)
}

func TestArrangementRows(t *testing.T) {
	groups := []model.Group{
		{Name: "Group 1", Members: []model.Individual{
			{ID: "a", Name: "Kim", Category: model.CategoryMale},
			{ID: "b", Name: "Lee", Category: model.CategoryFemale},
		}},
		{Name: "Group 2", Members: []model.Individual{}},
	}

	rows := arrangementRows(groups)

	expected := [][]interface{}{
		{"Group", "No", "Name", "Gender"},
		{"Group 1", 1, "Kim", "male"},
		{"Group 1", 2, "Lee", "female"},
		{"Group 2", "", "", ""},
	}
	assert.Equal(t, expected, rows)
}
