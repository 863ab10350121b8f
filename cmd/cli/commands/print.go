package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/seat-arranger/pkg/core/allocator"
	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/core/roster"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

var categorySymbols = map[model.Category]string{
	model.CategoryMale:        "M",
	model.CategoryFemale:      "F",
	model.CategoryUnspecified: "-",
}

func describeIndividual(individual model.Individual) string {
	lock := ""
	if individual.Locked {
		lock = " 🔒"
	}
	return fmt.Sprintf("%s [%s]%s", individual.Name, categorySymbols[individual.Category], lock)
}

func printSettings(w io.Writer, snapshot *model.Snapshot) {
	settings := snapshot.Settings()
	fmt.Fprintf(w, "%d groups, %d-%d per group, %s policy\n",
		settings.GroupCount, settings.MinPerGroup, settings.MaxPerGroup, settings.Policy)
}

// printGroups writes each group with its members followed by the unplaced pool
func printGroups(w io.Writer, snapshot *model.Snapshot) {
	for _, group := range snapshot.Groups {
		fmt.Fprintf(w, "\n%s%s%s (%d/%d, %dM %dF)\n", colorBold, group.Name, colorReset,
			len(group.Members), snapshot.MaxPerGroup,
			group.CategoryCount(model.CategoryMale), group.CategoryCount(model.CategoryFemale))
		for i, member := range group.Members {
			fmt.Fprintf(w, "  %d. %s\n", i+1, describeIndividual(member))
		}
	}

	unplaced := roster.Unplaced(snapshot)
	if len(unplaced) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%sUnplaced%s (%d)\n", colorBold, colorReset, len(unplaced))
	for _, individual := range unplaced {
		fmt.Fprintf(w, "  - %s\n", describeIndividual(individual))
	}
}

// printPairs lists the together and apart constraints by name
func printPairs(w io.Writer, snapshot *model.Snapshot) {
	names := make(map[string]string, len(snapshot.Roster))
	for _, individual := range snapshot.Roster {
		names[individual.ID] = individual.Name
	}
	printSet := func(label, joiner string, pairs []model.Pair) {
		if len(pairs) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s\n", label)
		for _, pair := range pairs {
			fmt.Fprintf(w, "  %s %s %s\n", names[pair.AID], joiner, names[pair.BID])
		}
	}
	printSet("Together", "+", snapshot.TogetherPairs)
	printSet("Apart", "x", snapshot.ApartPairs)
}

func printWarnings(w io.Writer, warnings []allocator.Warning) {
	if len(warnings) == 0 {
		fmt.Fprintf(w, "\n%s✓ All constraints satisfied%s\n", colorGreen, colorReset)
		return
	}
	fmt.Fprintf(w, "\n%s⚠ %d warning(s)%s\n", colorYellow, len(warnings), colorReset)
	for _, warning := range warnings {
		fmt.Fprintf(w, "  - [%s] %s\n", warning.Kind, warning.Description)
	}
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, size := range sizes {
		parts[i] = fmt.Sprintf("%s: %d", model.GroupLabel(i), size)
	}
	return strings.Join(parts, ", ")
}
