package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category is the gender attribute used by the balance policies
type Category string

const (
	CategoryMale        Category = "male"
	CategoryFemale      Category = "female"
	CategoryUnspecified Category = "unspecified"
)

func (c Category) IsValid() bool {
	return c == CategoryMale || c == CategoryFemale || c == CategoryUnspecified
}

// Categories lists every category in a stable order
var Categories = []Category{CategoryMale, CategoryFemale, CategoryUnspecified}

var (
	maleTokens   = []string{"남", "남자", "m", "male", "boy"}
	femaleTokens = []string{"여", "여자", "f", "female", "girl"}
)

// ParseCategory maps a loosely written gender cell to a Category.
// Unrecognised or empty values map to CategoryUnspecified.
func ParseCategory(raw string) Category {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return CategoryUnspecified
	}
	if Category(value).IsValid() {
		return Category(value)
	}
	for _, token := range femaleTokens {
		if value == token {
			return CategoryFemale
		}
	}
	for _, token := range maleTokens {
		if value == token {
			return CategoryMale
		}
	}
	return CategoryUnspecified
}

// GenderPolicy controls how categories are mixed during automatic arrangement
type GenderPolicy string

const (
	PolicyBalanced         GenderPolicy = "balanced"
	PolicyFullyRandom      GenderPolicy = "random"
	PolicySeparateByGender GenderPolicy = "separate"
)

func (p GenderPolicy) IsValid() bool {
	return p == PolicyBalanced || p == PolicyFullyRandom || p == PolicySeparateByGender
}

// ParseGenderPolicy parses the text form of a policy
func ParseGenderPolicy(raw string) (GenderPolicy, error) {
	policy := GenderPolicy(strings.ToLower(strings.TrimSpace(raw)))
	if !policy.IsValid() {
		return "", fmt.Errorf("unknown gender policy %q (expected balanced, random or separate)", raw)
	}
	return policy, nil
}

// Individual is a person to be placed into a group
type Individual struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	// Locked individuals keep their group during automatic arrangement
	Locked bool `json:"locked"`
}

// NewIndividual creates an unlocked individual with a fresh ID
func NewIndividual(name string, category Category) Individual {
	if !category.IsValid() {
		category = CategoryUnspecified
	}
	return Individual{
		ID:       uuid.New().String(),
		Name:     name,
		Category: category,
	}
}

// Group is one of the fixed destination buckets
type Group struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Members []Individual `json:"members"`
}

// NewGroup creates an empty group labelled for the given zero-based position
func NewGroup(index int) Group {
	return Group{
		ID:      uuid.New().String(),
		Name:    GroupLabel(index),
		Members: []Individual{},
	}
}

// GroupLabel returns the sequential display name for a group position
func GroupLabel(index int) string {
	return fmt.Sprintf("Group %d", index+1)
}

// Contains returns true if the individual is a member of this group
func (g *Group) Contains(id string) bool {
	return g.IndexOf(id) >= 0
}

// IndexOf returns the member position of the individual, or -1
func (g *Group) IndexOf(id string) int {
	for i, member := range g.Members {
		if member.ID == id {
			return i
		}
	}
	return -1
}

// CategoryCount returns how many members belong to the category
func (g *Group) CategoryCount(category Category) int {
	count := 0
	for _, member := range g.Members {
		if member.Category == category {
			count++
		}
	}
	return count
}

// LockedCount returns how many members are locked
func (g *Group) LockedCount() int {
	count := 0
	for _, member := range g.Members {
		if member.Locked {
			count++
		}
	}
	return count
}

// Pair is an unordered pair of individual IDs
type Pair struct {
	AID string `json:"aId"`
	BID string `json:"bId"`
}

// Key returns the canonical ordered form of the pair, so (a,b) and (b,a) compare equal
func (p Pair) Key() [2]string {
	if p.AID <= p.BID {
		return [2]string{p.AID, p.BID}
	}
	return [2]string{p.BID, p.AID}
}

// Same returns true if both pairs reference the same two individuals
func (p Pair) Same(other Pair) bool {
	return p.Key() == other.Key()
}

// Involves returns true if the individual is one side of the pair
func (p Pair) Involves(id string) bool {
	return p.AID == id || p.BID == id
}

// Other returns the partner of id, or "" if id is not part of the pair
func (p Pair) Other(id string) string {
	switch id {
	case p.AID:
		return p.BID
	case p.BID:
		return p.AID
	}
	return ""
}

// Constraints holds the soft pairwise constraints
type Constraints struct {
	Together []Pair
	Apart    []Pair
}
