package model

import (
	"fmt"
	"slices"
)

// Snapshot is the plain serializable state shared with the persistence layer
type Snapshot struct {
	Roster        []Individual `json:"roster"`
	Groups        []Group      `json:"groups"`
	GroupCount    int          `json:"groupCount"`
	MinPerGroup   int          `json:"minPerGroup"`
	MaxPerGroup   int          `json:"maxPerGroup"`
	GenderPolicy  GenderPolicy `json:"genderPolicy"`
	TogetherPairs []Pair       `json:"togetherPairs"`
	ApartPairs    []Pair       `json:"apartPairs"`
}

// NewSnapshot creates an empty snapshot with groups laid out for the settings
func NewSnapshot(settings Settings) *Snapshot {
	groups := make([]Group, settings.GroupCount)
	for i := range groups {
		groups[i] = NewGroup(i)
	}
	return &Snapshot{
		Roster:        []Individual{},
		Groups:        groups,
		GroupCount:    settings.GroupCount,
		MinPerGroup:   settings.MinPerGroup,
		MaxPerGroup:   settings.MaxPerGroup,
		GenderPolicy:  settings.Policy,
		TogetherPairs: []Pair{},
		ApartPairs:    []Pair{},
	}
}

// Settings returns the arrangement parameters stored in the snapshot
func (s *Snapshot) Settings() Settings {
	return Settings{
		GroupCount:  s.GroupCount,
		MinPerGroup: s.MinPerGroup,
		MaxPerGroup: s.MaxPerGroup,
		Policy:      s.GenderPolicy,
	}
}

// ApplySettings overwrites the stored arrangement parameters
func (s *Snapshot) ApplySettings(settings Settings) {
	s.GroupCount = settings.GroupCount
	s.MinPerGroup = settings.MinPerGroup
	s.MaxPerGroup = settings.MaxPerGroup
	s.GenderPolicy = settings.Policy
}

// Constraints returns the together and apart pairs
func (s *Snapshot) Constraints() Constraints {
	return Constraints{
		Together: s.TogetherPairs,
		Apart:    s.ApartPairs,
	}
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	clone := *s
	clone.Roster = slices.Clone(s.Roster)
	if clone.Roster == nil {
		clone.Roster = []Individual{}
	}
	clone.Groups = make([]Group, len(s.Groups))
	for i, group := range s.Groups {
		clone.Groups[i] = Group{
			ID:      group.ID,
			Name:    group.Name,
			Members: slices.Clone(group.Members),
		}
		if clone.Groups[i].Members == nil {
			clone.Groups[i].Members = []Individual{}
		}
	}
	clone.TogetherPairs = slices.Clone(s.TogetherPairs)
	clone.ApartPairs = slices.Clone(s.ApartPairs)
	if clone.TogetherPairs == nil {
		clone.TogetherPairs = []Pair{}
	}
	if clone.ApartPairs == nil {
		clone.ApartPairs = []Pair{}
	}
	return &clone
}

// RosterIndex returns the roster position of the individual, or -1
func (s *Snapshot) RosterIndex(id string) int {
	for i, individual := range s.Roster {
		if individual.ID == id {
			return i
		}
	}
	return -1
}

// GroupIndexOf returns the index of the group holding the individual, or -1 if unplaced
func (s *Snapshot) GroupIndexOf(id string) int {
	for i := range s.Groups {
		if s.Groups[i].Contains(id) {
			return i
		}
	}
	return -1
}

// FindIndividual looks the individual up in the roster first, then in the groups.
// Group copies carry the authoritative Locked flag.
func (s *Snapshot) FindIndividual(id string) (Individual, bool) {
	if groupIdx := s.GroupIndexOf(id); groupIdx >= 0 {
		group := &s.Groups[groupIdx]
		return group.Members[group.IndexOf(id)], true
	}
	if idx := s.RosterIndex(id); idx >= 0 {
		return s.Roster[idx], true
	}
	return Individual{}, false
}

// PlacedCount returns the number of individuals currently in any group
func (s *Snapshot) PlacedCount() int {
	count := 0
	for _, group := range s.Groups {
		count += len(group.Members)
	}
	return count
}

// Validate checks the structural invariants of a snapshot: valid settings, a group per configured
// slot, every group member on the roster, and no individual in more than one place.
func (s *Snapshot) Validate() error {
	if err := s.Settings().Validate(); err != nil {
		return err
	}
	if len(s.Groups) != s.GroupCount {
		return fmt.Errorf("%w: snapshot has %d groups but groupCount is %d", ErrInvalidConfiguration, len(s.Groups), s.GroupCount)
	}

	onRoster := make(map[string]bool, len(s.Roster))
	for _, individual := range s.Roster {
		if individual.ID == "" {
			return fmt.Errorf("%w: roster entry %q has no id", ErrInvalidConfiguration, individual.Name)
		}
		if onRoster[individual.ID] {
			return fmt.Errorf("%w: duplicate roster id %s", ErrInvalidConfiguration, individual.ID)
		}
		if !individual.Category.IsValid() {
			return fmt.Errorf("%w: individual %s has unknown category %q", ErrInvalidConfiguration, individual.ID, individual.Category)
		}
		onRoster[individual.ID] = true
	}

	seen := make(map[string]bool)
	for _, group := range s.Groups {
		for _, member := range group.Members {
			if !onRoster[member.ID] {
				return fmt.Errorf("%w: %s in %s is not on the roster", ErrInvalidConfiguration, member.ID, group.Name)
			}
			if seen[member.ID] {
				return fmt.Errorf("%w: %s is placed more than once", ErrInvalidConfiguration, member.ID)
			}
			seen[member.ID] = true
		}
	}
	return nil
}
