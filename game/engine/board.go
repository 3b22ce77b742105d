package engine

import "fmt"

// SpaceKind labels a space of the hunt board
type SpaceKind string

const (
	SpaceStart      SpaceKind = "start"
	SpacePath       SpaceKind = "path"
	SpaceHazard     SpaceKind = "overwhelming_darkness"
	SpaceStarvation SpaceKind = "starvation"
)

const (
	BoardSpaces     = 13
	StartSpace      = 0
	HazardSpace     = 6
	StarvationSpace = 12

	DefaultSurvivorPosition = StartSpace
	DefaultQuarryPosition   = 6
)

// Space describes one board space
type Space struct {
	Index int       `json:"index"`
	Kind  SpaceKind `json:"kind"`
}

// TokenOffset is the rendering offset of a token inside its space.
// Negative values point to the top-left.
type TokenOffset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// SpaceAt returns the kind of board space p. Out-of-range positions are reported as path.
func SpaceAt(p int) SpaceKind {
	switch p {
	case StartSpace:
		return SpaceStart
	case HazardSpace:
		return SpaceHazard
	case StarvationSpace:
		return SpaceStarvation
	default:
		return SpacePath
	}
}

// Spaces returns the whole board in order
func Spaces() []Space {
	spaces := make([]Space, BoardSpaces)
	for i := range spaces {
		spaces[i] = Space{Index: i, Kind: SpaceAt(i)}
	}
	return spaces
}

// InBounds reports whether p is a board space
func InBounds(p int) bool {
	return p >= StartSpace && p <= StarvationSpace
}

// Clamp forces p onto the board. Callers translating drag gestures use it; the
// engine itself rejects out-of-range positions instead of clamping.
func Clamp(p int) int {
	if p < StartSpace {
		return StartSpace
	}
	if p > StarvationSpace {
		return StarvationSpace
	}
	return p
}

// Overlap reports whether the party and the quarry share a space
func Overlap(party, quarry int) bool {
	return party == quarry
}

// TokenPlacement returns the rendering offsets for both tokens. When they share
// a space the party token moves to the top-left and the quarry to the bottom-right.
func TokenPlacement(party, quarry int) (partyOffset, quarryOffset TokenOffset) {
	if !Overlap(party, quarry) {
		return TokenOffset{}, TokenOffset{}
	}
	return TokenOffset{DX: -1, DY: -1}, TokenOffset{DX: 1, DY: 1}
}

// CheckPositions fails with ErrBounds when either position is off the board
func CheckPositions(survivorPos, quarryPos int) error {
	if !InBounds(survivorPos) {
		return NewValidationError(ErrBounds, "hunt", "survivorPosition", survivorPos,
			"position %d out of range [%d,%d]", survivorPos, StartSpace, StarvationSpace)
	}
	if !InBounds(quarryPos) {
		return NewValidationError(ErrBounds, "hunt", "quarryPosition", quarryPos,
			"position %d out of range [%d,%d]", quarryPos, StartSpace, StarvationSpace)
	}
	return nil
}

// describeSpace is used in move notes and logs
func describeSpace(p int) string {
	return fmt.Sprintf("%d (%s)", p, SpaceAt(p))
}
