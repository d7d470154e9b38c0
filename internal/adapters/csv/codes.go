package csv

import (
	"fmt"
	"strconv"
	"strings"

	"vehicle-transport-planner/internal/domain"
)

// locationTypeTokens lists the TYPE suffixes recognized in a *_code token,
// longest first so a greedy prefix match never mistakes DEAL for the head
// of a longer token.
var locationTypeTokens = []string{"PLANT", "TERM", "DEAL"}

// parseLocationCode parses a *_code token NNN99TYPE into a Location: the
// 5-character prefix is kept as the location's name (it is the
// network-unique identifier the rest of the records reference), and TYPE
// selects the kind.
func parseLocationCode(code string) (domain.Location, error) {
	code = strings.TrimSpace(code)
	if len(code) < 6 {
		return domain.Location{}, fmt.Errorf("parse location code %q: too short", code)
	}
	name, typeToken := code[:5], code[5:]
	kind, err := domain.ParseLocationKind(typeToken)
	if err != nil {
		return domain.Location{}, fmt.Errorf("parse location code %q: %w", code, err)
	}
	return domain.Location{Name: name, Kind: kind}, nil
}

// splitLocationCode consumes one *_code token (5-character name plus one of
// locationTypeTokens) off the front of s and returns the rest.
func splitLocationCode(s string) (code, rest string, err error) {
	if len(s) < 6 {
		return "", "", fmt.Errorf("location code %q: too short", s)
	}
	name, tail := s[:5], s[5:]
	for _, tok := range locationTypeTokens {
		if strings.HasPrefix(tail, tok) {
			return name + tok, tail[len(tok):], nil
		}
	}
	return "", "", fmt.Errorf("location code %q: no recognized type token", s)
}

// parseSegmentCode parses a segment_code token STARTEND-MODE-NUM into the
// (segment, ordinal) pair the graph keys trucks by. STARTEND fuses two
// *_code tokens with no separator, so the end of the start code must be
// found by matching a known type token rather than a fixed offset.
func parseSegmentCode(code string) (domain.Segment, int, error) {
	code = strings.TrimSpace(code)
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return domain.Segment{}, 0, fmt.Errorf("parse segment code %q: expected STARTEND-MODE-NUM", code)
	}
	locs, modeToken, numToken := parts[0], parts[1], parts[2]

	startCode, endCode, err := splitLocationCode(locs)
	if err != nil {
		return domain.Segment{}, 0, fmt.Errorf("parse segment code %q: %w", code, err)
	}
	start, err := parseLocationCode(startCode)
	if err != nil {
		return domain.Segment{}, 0, fmt.Errorf("parse segment code %q: start: %w", code, err)
	}
	end, err := parseLocationCode(endCode)
	if err != nil {
		return domain.Segment{}, 0, fmt.Errorf("parse segment code %q: end: %w", code, err)
	}

	var mode domain.Mode
	switch modeToken {
	case "TRUCK":
		mode = domain.Road
	case "TRAIN":
		mode = domain.Train
	default:
		return domain.Segment{}, 0, fmt.Errorf("parse segment code %q: unknown mode %q", code, modeToken)
	}

	num, err := strconv.Atoi(numToken)
	if err != nil {
		return domain.Segment{}, 0, fmt.Errorf("parse segment code %q: non-numeric segment number %q", code, numToken)
	}

	return domain.Segment{Start: start.Name, End: end.Name}, domain.OrdinalFor(mode, num), nil
}

func parseDay(field, s string) (domain.Day, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("parse %s %q: must not be negative", field, s)
	}
	return domain.Day(n), nil
}

func parseNonNegativeInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("parse %s %q: must not be negative", field, s)
	}
	return n, nil
}
