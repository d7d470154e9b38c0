package domain

import "fmt"

// LocationKind classifies a Location within the plant -> terminal -> dealer
// network.
type LocationKind int

const (
	// Plant is a production origin where vehicles become available.
	Plant LocationKind = iota
	// Terminal is an intermediate, non-dealer stopover.
	Terminal
	// Dealer is a delivery destination. Delay-cost structure (§4.3) is only
	// ever wired at dealer locations.
	Dealer
)

func (k LocationKind) String() string {
	switch k {
	case Plant:
		return "PLANT"
	case Terminal:
		return "TERMINAL"
	case Dealer:
		return "DEALER"
	default:
		return fmt.Sprintf("LocationKind(%d)", int(k))
	}
}

// ParseLocationKind parses the *_code TYPE token (PLANT, TERM, DEAL).
func ParseLocationKind(s string) (LocationKind, error) {
	switch s {
	case "PLANT":
		return Plant, nil
	case "TERM":
		return Terminal, nil
	case "DEAL":
		return Dealer, nil
	default:
		return 0, fmt.Errorf("parse location kind: unknown type token %q", s)
	}
}

// Location is an immutable value type: a 5-character code plus a kind. Two
// locations are equal iff both fields match, so Location is safe to use
// directly as a map key.
type Location struct {
	Name string
	Kind LocationKind
}

func (l Location) String() string {
	return l.Name
}

// IsDealer reports whether l is a Dealer location; only dealer locations
// carry delay-arc structure in the time-expanded graph (spec §4.3).
func (l Location) IsDealer() bool {
	return l.Kind == Dealer
}
