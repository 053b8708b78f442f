package chainsync

import "fmt"

// TipIsOriginError is returned when the caller supplies no
// intersection points and the chain has not produced a block yet, so
// the tip cannot be used as a sync starting point.
type TipIsOriginError struct{}

func (e *TipIsOriginError) Error() string { return "chainsync: chain tip is origin" }

// IntersectionNotFoundError is returned when none of the supplied
// points are on the bridge's selected chain.
type IntersectionNotFoundError struct {
	Points int
}

func (e *IntersectionNotFoundError) Error() string {
	return fmt.Sprintf("chainsync: intersection not found among %d candidate point(s)", e.Points)
}

// UnknownResultError is returned when a FindIntersect response matches
// neither IntersectionFound nor IntersectionNotFound.
type UnknownResultError struct{}

func (e *UnknownResultError) Error() string { return "chainsync: unrecognized FindIntersect result" }
