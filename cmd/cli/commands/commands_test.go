package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/internal/config"
	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/core/services"
	"github.com/jakechorley/seat-arranger/pkg/sqlite"
)

func newTestApp(t *testing.T) (*AppContext, *cobra.Command) {
	t.Helper()

	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "seats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{Defaults: config.DefaultsConfig{GroupCount: 2, MinPerGroup: 2, MaxPerGroup: 3}}
	app := &AppContext{
		Cfg:       cfg,
		Env:       "test",
		Store:     store,
		Workspace: services.NewWorkspace(store, zap.NewNop(), cfg.Settings()),
		Logger:    zap.NewNop(),
		Ctx:       context.Background(),
	}

	root := &cobra.Command{Use: "seat-arranger", SilenceUsage: true, SilenceErrors: true}
	Register(root, app)
	return app, root
}

func run(t *testing.T, root *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{name: "plain", line: "assign Kim 2", want: []string{"assign", "Kim", "2"}},
		{name: "double quotes", line: `add "Kim Min-ji/F" Lee`, want: []string{"add", "Kim Min-ji/F", "Lee"}},
		{name: "single quotes", line: "together 'Park Ji' Choi", want: []string{"together", "Park Ji", "Choi"}},
		{name: "extra whitespace", line: "  list   ", want: []string{"list"}},
		{name: "empty quotes", line: `save ""`, want: []string{"save", ""}},
		{name: "hangul", line: "add 김민지/여", want: []string{"add", "김민지/여"}},
		{name: "unclosed quote", line: `add "Kim`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddArrangeAndExport(t *testing.T) {
	app, root := newTestApp(t)

	out, err := run(t, root, "add", "Kim/M", "Lee/F", "Park/M", "Choi/F", "Jung/M")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 5 individual(s)")

	out, err = run(t, root, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Group 1: 3, Group 2: 2")

	out, err = run(t, root, "arrange", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Group 1")
	assert.Contains(t, out, "Group 2")

	snapshot, err := app.Workspace.Current(app.Ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, snapshot.PlacedCount())

	out, err = run(t, root, "export", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\ufeffNo,Name,Gender\n"))
	assert.Contains(t, out, "Group 2\n")

	path := filepath.Join(t.TempDir(), "class.json")
	_, err = run(t, root, "export", "--format", "json", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"roster"`)
}

func TestArrange_DryRunDoesNotSave(t *testing.T) {
	app, root := newTestApp(t)

	_, err := run(t, root, "add", "Kim/M", "Lee/F", "Park/M", "Choi/F")
	require.NoError(t, err)

	out, err := run(t, root, "arrange", "--dry-run", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "DRY RUN")

	snapshot, err := app.Workspace.Current(app.Ctx)
	require.NoError(t, err)
	assert.Zero(t, snapshot.PlacedCount())
}

func TestSettingsAndPairs(t *testing.T) {
	app, root := newTestApp(t)

	out, err := run(t, root, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "2 groups, 2-3 per group, balanced policy")

	out, err = run(t, root, "settings", "--groups", "3", "--policy", "separate")
	require.NoError(t, err)
	assert.Contains(t, out, "3 groups, 2-3 per group, separate policy")

	_, err = run(t, root, "settings", "--policy", "alphabetical")
	assert.Error(t, err)

	_, err = run(t, root, "add", "Kim/M", "Lee/F")
	require.NoError(t, err)

	_, err = run(t, root, "apart", "Kim", "Lee")
	require.NoError(t, err)
	_, err = run(t, root, "together", "Kim", "Lee")
	assert.Error(t, err)

	out, err = run(t, root, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Apart")
	assert.Contains(t, out, "Kim x Lee")

	_, err = run(t, root, "unpair", "kim", "lee")
	require.NoError(t, err)

	snapshot, err := app.Workspace.Current(app.Ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.GroupCount)
	assert.Equal(t, model.PolicySeparateByGender, snapshot.GenderPolicy)
	assert.Empty(t, snapshot.ApartPairs)
}

func TestAssignLockAndRemove(t *testing.T) {
	app, root := newTestApp(t)

	_, err := run(t, root, "add", "Kim/M", "Lee/F")
	require.NoError(t, err)

	out, err := run(t, root, "assign", "Kim", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Assigned Kim to Group 2")

	_, err = run(t, root, "assign", "Kim", "two")
	assert.ErrorContains(t, err, "invalid group number")

	out, err = run(t, root, "lock", "Kim")
	require.NoError(t, err)
	assert.Contains(t, out, "Kim is now locked")

	out, err = run(t, root, "unassign", "Kim")
	require.NoError(t, err)
	assert.Contains(t, out, "Kim is now unplaced")

	_, err = run(t, root, "remove", "Lee")
	require.NoError(t, err)

	snapshot, err := app.Workspace.Current(app.Ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Roster, 1)
	assert.False(t, snapshot.Roster[0].Locked)
}

func TestImportCSV(t *testing.T) {
	app, root := newTestApp(t)

	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,gender\nKim,M\nLee,F\n,F\n"), 0644))

	out, err := run(t, root, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 individual(s)")

	_, err = run(t, root, "import", "--format", "xml", path)
	assert.ErrorContains(t, err, "unknown import format")

	snapshot, err := app.Workspace.Current(app.Ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Roster, 2)
}

func TestSlots(t *testing.T) {
	_, root := newTestApp(t)

	out, err := run(t, root, "slots")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved slots")

	_, err = run(t, root, "add", "Kim/M")
	require.NoError(t, err)
	_, err = run(t, root, "save", "monday")
	require.NoError(t, err)

	out, err = run(t, root, "slots")
	require.NoError(t, err)
	assert.Contains(t, out, "monday")

	_, err = run(t, root, "load", "monday")
	require.NoError(t, err)
	_, err = run(t, root, "delete-slot", "monday")
	require.NoError(t, err)
	_, err = run(t, root, "load", "monday")
	assert.Error(t, err)
}

func TestSchedule(t *testing.T) {
	_, root := newTestApp(t)

	_, err := run(t, root, "schedule")
	assert.ErrorContains(t, err, "no rotation rule")

	out, err := run(t, root, "schedule", "--rrule", "FREQ=WEEKLY;BYDAY=MO", "--from", "2025-03-05", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Mon 2025-03-10")
	assert.Contains(t, out, "Mon 2025-03-17")
}

func TestSheetsCommands_RequireConfig(t *testing.T) {
	_, root := newTestApp(t)

	_, err := run(t, root, "sheets-pull")
	assert.True(t, errors.Is(err, errSheetsNotConfigured))

	_, err = run(t, root, "sheets-push")
	assert.True(t, errors.Is(err, errSheetsNotConfigured))
}

func TestInteractiveSession(t *testing.T) {
	app, root := newTestApp(t)

	var interactive *cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Name() == "interactive" {
			interactive = cmd
		}
	}
	require.NotNil(t, interactive)

	input := strings.NewReader("help\nadd Kim/M 'Lee F'\nbogus\nassign Kim\nlist\nexit\nlist\n")
	var out bytes.Buffer
	require.NoError(t, runSession(siblingCommands(interactive), input, &out))

	text := out.String()
	assert.Contains(t, text, "Available commands:")
	assert.Contains(t, text, "Added 2 individual(s)")
	assert.Contains(t, text, "Unknown command: bogus")
	assert.Contains(t, text, "❌ Error:")
	assert.Contains(t, text, "Roster: 2 individual(s)")
	assert.Contains(t, text, "Goodbye!")

	snapshot, err := app.Workspace.Current(app.Ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Roster, 2)
	assert.Equal(t, "Kim", snapshot.Roster[0].Name)
	assert.Equal(t, model.CategoryFemale, snapshot.Roster[1].Category)
}
