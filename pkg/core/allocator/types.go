package allocator

import (
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// Shuffler randomizes slice order. *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewRandomShuffler returns a shuffler seeded from a non-deterministic source
func NewRandomShuffler() Shuffler {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededShuffler returns a reproducible shuffler
func NewSeededShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Options configures an arrangement run
type Options struct {
	// Shuffler drives every random decision (a random one is used if nil)
	Shuffler Shuffler

	// Rules to apply (DefaultRules if nil)
	Rules []Rule

	Logger *zap.Logger
}

// Outcome represents the result of an arrangement run
type Outcome struct {
	// Snapshot is the new state: same roster, constraints and group identities,
	// rebuilt group membership
	Snapshot *model.Snapshot

	// Targets are the planned group sizes
	Targets []int

	// Unplaced individuals that no group could accept
	Unplaced []model.Individual

	// Warnings contains every soft constraint left unsatisfied
	Warnings []Warning

	// ReconcileChanges counts moves and swaps made by the constraint reconciler
	ReconcileChanges int

	// RebalanceMoves counts moves made by the minimum-occupancy rebalancer plus individuals
	// placed into seats left open after reconciliation
	RebalanceMoves int

	// Success indicates that no warnings were raised
	Success bool
}

// State is the mutable working copy threaded through every arrangement stage.
// It is never exposed to callers until finalized into an Outcome.
type State struct {
	settings    model.Settings
	groups      []model.Group
	limits      []int
	unplaced    []model.Individual
	constraints model.Constraints

	// location maps individual ID to group index for placed individuals
	location map[string]int
	names    map[string]string
	partners map[string][]string
	apart    map[[2]string]bool

	rules    []Rule
	shuffler Shuffler
	logger   *zap.Logger
}

// newState builds a working state over deep copies of the given groups
func newState(settings model.Settings, groups []model.Group, limits []int, constraints model.Constraints, rules []Rule, shuffler Shuffler, logger *zap.Logger) *State {
	state := &State{
		settings:    settings,
		groups:      make([]model.Group, len(groups)),
		limits:      slices.Clone(limits),
		constraints: constraints,
		location:    make(map[string]int),
		names:       make(map[string]string),
		partners:    make(map[string][]string),
		apart:       make(map[[2]string]bool),
		rules:       rules,
		shuffler:    shuffler,
		logger:      logger,
	}

	for i, group := range groups {
		state.groups[i] = model.Group{
			ID:      group.ID,
			Name:    group.Name,
			Members: slices.Clone(group.Members),
		}
		for _, member := range group.Members {
			state.location[member.ID] = i
			state.names[member.ID] = member.Name
		}
	}

	for _, pair := range constraints.Together {
		if pair.AID == pair.BID {
			continue
		}
		state.partners[pair.AID] = append(state.partners[pair.AID], pair.BID)
		state.partners[pair.BID] = append(state.partners[pair.BID], pair.AID)
	}
	for _, pair := range constraints.Apart {
		if pair.AID == pair.BID {
			continue
		}
		state.apart[pair.Key()] = true
	}

	return state
}

// NewManualState builds a state for checking manual moves, where each group may grow to MaxPerGroup
func NewManualState(snapshot *model.Snapshot, rules []Rule) *State {
	limits := make([]int, len(snapshot.Groups))
	for i := range limits {
		limits[i] = snapshot.MaxPerGroup
	}
	if rules == nil {
		rules = DefaultRules()
	}
	state := newState(snapshot.Settings(), snapshot.Groups, limits, snapshot.Constraints(), rules, nil, zap.NewNop())
	state.trackNames(snapshot.Roster)
	return state
}

func (s *State) trackNames(individuals []model.Individual) {
	for _, individual := range individuals {
		s.names[individual.ID] = individual.Name
	}
}

// Settings returns the arrangement settings of this state
func (s *State) Settings() model.Settings {
	return s.settings
}

// Size returns the number of members currently in the group
func (s *State) Size(groupIdx int) int {
	return len(s.groups[groupIdx].Members)
}

// Limit returns the maximum size the group may reach in this state
func (s *State) Limit(groupIdx int) int {
	return s.limits[groupIdx]
}

// Gap returns the number of seats left before the group reaches its limit
func (s *State) Gap(groupIdx int) int {
	return max(s.limits[groupIdx]-len(s.groups[groupIdx].Members), 0)
}

// CategoryCount returns how many members of the group belong to the category
func (s *State) CategoryCount(groupIdx int, category model.Category) int {
	return s.groups[groupIdx].CategoryCount(category)
}

// GroupOf returns the group index holding the individual, or -1 if unplaced
func (s *State) GroupOf(id string) int {
	if groupIdx, ok := s.location[id]; ok {
		return groupIdx
	}
	return -1
}

// IsApart returns true if the two individuals are Apart-paired
func (s *State) IsApart(a, b string) bool {
	return s.apart[model.Pair{AID: a, BID: b}.Key()]
}

// Partners returns the Together partners of the individual
func (s *State) Partners(id string) []string {
	return s.partners[id]
}

// Check runs every rule against a prospective placement and returns the reason of the
// first rule that vetoes it, or ReasonNone
func (s *State) Check(groupIdx int, candidate model.Individual, excludeID string) Reason {
	for _, rule := range s.rules {
		if !rule.Allows(s, groupIdx, candidate, excludeID) {
			return rule.Reason()
		}
	}
	return ReasonNone
}

// CanPlace returns true if the candidate may be inserted into the group
func (s *State) CanPlace(groupIdx int, candidate model.Individual) bool {
	return s.Check(groupIdx, candidate, "") == ReasonNone
}

// place appends the individual to the group
func (s *State) place(groupIdx int, individual model.Individual) {
	s.groups[groupIdx].Members = append(s.groups[groupIdx].Members, individual)
	s.location[individual.ID] = groupIdx
	s.names[individual.ID] = individual.Name
}

// remove takes the individual out of whichever group holds it
func (s *State) remove(id string) (model.Individual, bool) {
	groupIdx := s.GroupOf(id)
	if groupIdx < 0 {
		return model.Individual{}, false
	}
	group := &s.groups[groupIdx]
	memberIdx := group.IndexOf(id)
	member := group.Members[memberIdx]
	group.Members = slices.Delete(group.Members, memberIdx, memberIdx+1)
	delete(s.location, id)
	return member, true
}

// move relocates a placed individual into another group without checking rules
func (s *State) move(id string, toGroup int) {
	member, ok := s.remove(id)
	if !ok {
		return
	}
	s.place(toGroup, member)
}

// swap exchanges two placed individuals between their groups, keeping member positions
func (s *State) swap(a, b string) {
	groupA, groupB := s.GroupOf(a), s.GroupOf(b)
	if groupA < 0 || groupB < 0 || groupA == groupB {
		return
	}
	idxA := s.groups[groupA].IndexOf(a)
	idxB := s.groups[groupB].IndexOf(b)
	memberA := s.groups[groupA].Members[idxA]
	s.groups[groupA].Members[idxA] = s.groups[groupB].Members[idxB]
	s.groups[groupB].Members[idxB] = memberA
	s.location[a] = groupB
	s.location[b] = groupA
}

// member returns the placed copy of an individual
func (s *State) member(id string) (model.Individual, bool) {
	groupIdx := s.GroupOf(id)
	if groupIdx < 0 {
		return model.Individual{}, false
	}
	group := &s.groups[groupIdx]
	return group.Members[group.IndexOf(id)], true
}

// shuffledGroupOrder returns every group index in random order
func (s *State) shuffledGroupOrder() []int {
	order := make([]int, len(s.groups))
	for i := range order {
		order[i] = i
	}
	if s.shuffler != nil {
		s.shuffler.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	return order
}

// violations counts Together pairs split across groups plus Apart pairs sharing a group
func (s *State) violations() int {
	count := 0
	for _, pair := range s.constraints.Together {
		groupA := s.GroupOf(pair.AID)
		if groupA < 0 || groupA != s.GroupOf(pair.BID) {
			count++
		}
	}
	for _, pair := range s.constraints.Apart {
		groupA := s.GroupOf(pair.AID)
		if groupA >= 0 && groupA == s.GroupOf(pair.BID) {
			count++
		}
	}
	return count
}

func (s *State) nameOf(id string) string {
	if name, ok := s.names[id]; ok && name != "" {
		return name
	}
	return id
}

func (s *State) groupNameOf(groupIdx int) string {
	if groupIdx < 0 {
		return "unplaced"
	}
	return s.groups[groupIdx].Name
}
