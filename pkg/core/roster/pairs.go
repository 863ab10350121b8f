package roster

import (
	"fmt"
	"slices"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// AddTogether declares that two individuals should share a group.
// Declaring an existing pair again is a no-op; a pair already declared Apart is rejected.
func AddTogether(snapshot *model.Snapshot, aID, bID string) (*model.Snapshot, error) {
	pair, err := checkPair(snapshot, aID, bID)
	if err != nil {
		return nil, err
	}
	if containsPair(snapshot.ApartPairs, pair) {
		return nil, fmt.Errorf("%w: %s and %s are already declared apart", ErrInvalidPair, aID, bID)
	}

	out := snapshot.Clone()
	if !containsPair(out.TogetherPairs, pair) {
		out.TogetherPairs = append(out.TogetherPairs, pair)
	}
	return out, nil
}

// AddApart declares that two individuals must not share a group.
// Declaring an existing pair again is a no-op; a pair already declared Together is rejected.
func AddApart(snapshot *model.Snapshot, aID, bID string) (*model.Snapshot, error) {
	pair, err := checkPair(snapshot, aID, bID)
	if err != nil {
		return nil, err
	}
	if containsPair(snapshot.TogetherPairs, pair) {
		return nil, fmt.Errorf("%w: %s and %s are already declared together", ErrInvalidPair, aID, bID)
	}

	out := snapshot.Clone()
	if !containsPair(out.ApartPairs, pair) {
		out.ApartPairs = append(out.ApartPairs, pair)
	}
	return out, nil
}

// RemovePair deletes the pair from both the Together and Apart sets, in either order
func RemovePair(snapshot *model.Snapshot, aID, bID string) (*model.Snapshot, error) {
	pair := model.Pair{AID: aID, BID: bID}
	if !containsPair(snapshot.TogetherPairs, pair) && !containsPair(snapshot.ApartPairs, pair) {
		return nil, fmt.Errorf("%w: %s and %s", ErrPairNotFound, aID, bID)
	}

	out := snapshot.Clone()
	same := func(other model.Pair) bool { return other.Same(pair) }
	out.TogetherPairs = slices.DeleteFunc(out.TogetherPairs, same)
	out.ApartPairs = slices.DeleteFunc(out.ApartPairs, same)
	return out, nil
}

func checkPair(snapshot *model.Snapshot, aID, bID string) (model.Pair, error) {
	if aID == bID {
		return model.Pair{}, fmt.Errorf("%w: %s cannot be paired with themselves", ErrInvalidPair, aID)
	}
	for _, id := range []string{aID, bID} {
		if snapshot.RosterIndex(id) < 0 {
			return model.Pair{}, fmt.Errorf("%w: %s", ErrUnknownIndividual, id)
		}
	}
	return model.Pair{AID: aID, BID: bID}, nil
}

func containsPair(pairs []model.Pair, pair model.Pair) bool {
	return slices.ContainsFunc(pairs, pair.Same)
}
