package pathfind

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned when a direction name cannot be parsed.
var ErrUnknownDirection = errors.New("unknown direction")

// Direction selects which relationships of a node a traversal may follow,
// relative to the node being expanded.
type Direction int

const (
	// Both follows relationships regardless of orientation.
	Both Direction = iota
	// Outgoing follows relationships that start at the node.
	Outgoing
	// Incoming follows relationships that end at the node.
	Incoming
)

// Reverse returns the direction seen from the other end of a relationship.
func (d Direction) Reverse() Direction {
	switch d {
	case Outgoing:
		return Incoming
	case Incoming:
		return Outgoing
	default:
		return Both
	}
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "outgoing"
	case Incoming:
		return "incoming"
	default:
		return "both"
	}
}

// ParseDirection accepts "both", "outgoing"/"out", and "incoming"/"in".
// An empty string means Both.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both", "any":
		return Both, nil
	case "outgoing", "out":
		return Outgoing, nil
	case "incoming", "in":
		return Incoming, nil
	default:
		return Both, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// matches reports whether e may be followed from node in direction d.
func (d Direction) matches(e Edge, node string) bool {
	switch d {
	case Outgoing:
		return e.From == node
	case Incoming:
		return e.To == node
	default:
		return e.From == node || e.To == node
	}
}
