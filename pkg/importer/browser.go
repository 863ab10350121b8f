package importer

import (
	"encoding/json"
	"strings"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// browserExport is the JSON layout saved by the browser version of the arranger
type browserExport struct {
	Students    []browserStudent `json:"students"`
	Groups      []browserGroup   `json:"groups"`
	GroupCount  *int             `json:"groupCount"`
	MinPerGroup *int             `json:"minPerGroup"`
	MaxPerGroup *int             `json:"maxPerGroup"`
	Mode        string           `json:"mode"`
	FriendPairs []model.Pair     `json:"friendPairs"`
	AntiPairs   []model.Pair     `json:"antiPairs"`
}

type browserStudent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Locked bool   `json:"locked"`
}

type browserGroup struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Students []browserStudent `json:"students"`
}

// browserPolicy maps the browser's mode labels to policies
func browserPolicy(mode string) (model.GenderPolicy, bool) {
	switch strings.TrimSpace(mode) {
	case "성비균형":
		return model.PolicyBalanced, true
	case "완전랜덤":
		return model.PolicyFullyRandom, true
	case "남여섞기OFF":
		return model.PolicySeparateByGender, true
	}
	return "", false
}

// decodeBrowserExport converts a browser export. Its roster lists only unplaced students, so
// placed students are added to the roster here.
func decodeBrowserExport(data []byte) (*model.Snapshot, error) {
	var export browserExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, err
	}

	settings := model.DefaultSettings()
	if export.GroupCount != nil {
		settings.GroupCount = *export.GroupCount
	}
	if export.MinPerGroup != nil {
		settings.MinPerGroup = *export.MinPerGroup
	}
	if export.MaxPerGroup != nil {
		settings.MaxPerGroup = *export.MaxPerGroup
	}
	if policy, ok := browserPolicy(export.Mode); ok {
		settings.Policy = policy
	}

	snapshot := model.NewSnapshot(settings)
	snapshot.Groups = make([]model.Group, 0, len(export.Groups))
	for i, group := range export.Groups {
		converted := model.NewGroup(i)
		if group.ID != "" {
			converted.ID = group.ID
		}
		if group.Name != "" {
			converted.Name = group.Name
		}
		for _, student := range group.Students {
			individual := student.individual()
			converted.Members = append(converted.Members, individual)
			snapshot.Roster = append(snapshot.Roster, individual)
		}
		snapshot.Groups = append(snapshot.Groups, converted)
	}
	for _, student := range export.Students {
		individual := student.individual()
		individual.Locked = false
		snapshot.Roster = append(snapshot.Roster, individual)
	}

	if export.FriendPairs != nil {
		snapshot.TogetherPairs = export.FriendPairs
	}
	if export.AntiPairs != nil {
		snapshot.ApartPairs = export.AntiPairs
	}
	return snapshot.Clone(), nil
}

func (s browserStudent) individual() model.Individual {
	individual := model.NewIndividual(s.Name, model.ParseCategory(s.Gender))
	if s.ID != "" {
		individual.ID = s.ID
	}
	individual.Locked = s.Locked
	return individual
}
