package world

import "strings"

// Direction is a compass direction a connection can be taken in.
type Direction int

const (
	DirNone Direction = iota
	DirNorthwest
	DirNorth
	DirNortheast
	DirWest
	DirOut
	DirEast
	DirSouthwest
	DirSouth
	DirSoutheast
)

func (d Direction) String() string {
	switch d {
	case DirNorthwest:
		return "northwest"
	case DirNorth:
		return "north"
	case DirNortheast:
		return "northeast"
	case DirWest:
		return "west"
	case DirOut:
		return "out"
	case DirEast:
		return "east"
	case DirSouthwest:
		return "southwest"
	case DirSouth:
		return "south"
	case DirSoutheast:
		return "southeast"
	default:
		return "none"
	}
}

// ParseDirection accepts long and short forms, with or without a leading "go ".
func ParseDirection(s string) Direction {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "go ") {
	case "northwest", "nw":
		return DirNorthwest
	case "north", "n":
		return DirNorth
	case "northeast", "ne":
		return DirNortheast
	case "west", "w":
		return DirWest
	case "out", "o":
		return DirOut
	case "east", "e":
		return DirEast
	case "southwest", "sw":
		return DirSouthwest
	case "south", "s":
		return DirSouth
	case "southeast", "se":
		return DirSoutheast
	}
	return DirNone
}

// IsDirectionalWord reports whether s names a direction on its own.
func IsDirectionalWord(s string) bool {
	return ParseDirection(s) != DirNone
}

// Input is a normalized line of text used to match connections.
// Directional words collapse to "go <direction>" so "n", "north" and
// "go n" all compare equal.
type Input struct {
	Raw       string
	Sanitized string
}

// ParseInput normalizes raw text.
func ParseInput(raw string) Input {
	trimmed := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	sanitized := trimmed
	rest, hasGo := strings.CutPrefix(trimmed, "go ")
	switch {
	case IsDirectionalWord(trimmed) && !hasGo:
		sanitized = "go " + ParseDirection(trimmed).String()
	case hasGo && IsDirectionalWord(rest):
		sanitized = "go " + ParseDirection(rest).String()
	}
	return Input{Raw: raw, Sanitized: sanitized}
}

// Verb is the first word of the sanitized input.
func (in Input) Verb() string {
	verb, _, _ := strings.Cut(in.Sanitized, " ")
	return verb
}

// Suffix is everything after the first word, or the whole input for one word.
func (in Input) Suffix() string {
	_, rest, ok := strings.Cut(in.Sanitized, " ")
	if !ok {
		return in.Sanitized
	}
	return rest
}

// Equal compares sanitized forms.
func (in Input) Equal(o Input) bool {
	return in.Sanitized == o.Sanitized
}

// Connection is a directed edge from one room to another.
type Connection struct {
	Target    Coordinates
	Phrase    string
	Input     Input
	Direction Direction
	// InRegion is true when Target is in the same region as the source room.
	InRegion bool
}

// NewConnection derives the normalized input and direction from phrase.
func NewConnection(from, to Coordinates, phrase string) Connection {
	in := ParseInput(phrase)
	return Connection{
		Target:    to,
		Phrase:    phrase,
		Input:     in,
		Direction: ParseDirection(in.Suffix()),
		InRegion:  from.SameRegion(to),
	}
}

// ParseConnection parses "r, s, n - phrase".
func ParseConnection(from Coordinates, s string) (Connection, error) {
	coordsPart, phrase, ok := strings.Cut(s, " - ")
	if !ok {
		coordsPart, phrase, ok = strings.Cut(s, "-")
	}
	if !ok {
		return Connection{}, &ConnectionError{Raw: s}
	}
	to, err := ParseCoordinates(coordsPart)
	if err != nil {
		return Connection{}, err
	}
	return NewConnection(from, to, strings.TrimSpace(phrase)), nil
}

// Matches reports whether in selects this connection.
func (c Connection) Matches(in Input) bool {
	return c.Input.Equal(in)
}

// ConnectionError reports a malformed connection string.
type ConnectionError struct {
	Raw string
}

func (e *ConnectionError) Error() string {
	return "malformed connection " + `"` + e.Raw + `"`
}
