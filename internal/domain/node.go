package domain

import "fmt"

// Role distinguishes the normal time-expanded node from the two auxiliary
// dealer-side delay tracks described in spec §4.3. DELAY_* nodes only ever
// exist at dealer locations.
type Role int

const (
	Normal Role = iota
	DelayFixed
	DelayVariable
)

func (r Role) String() string {
	switch r {
	case Normal:
		return "NORMAL"
	case DelayFixed:
		return "DELAY_FIXED"
	case DelayVariable:
		return "DELAY_VARIABLE"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Node is a time-expanded graph vertex: (day, location, role). It is a
// small, cheaply hashable, comparable value suitable for direct use as a
// map key (spec §9).
type Node struct {
	Day      Day
	Location string
	Role     Role
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%d,%s)", n.Role, n.Day, n.Location)
}

// NormalNode constructs the NORMAL node at (day, loc).
func NormalNode(day Day, loc string) Node {
	return Node{Day: day, Location: loc, Role: Normal}
}
