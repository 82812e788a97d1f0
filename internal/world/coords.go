package world

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinates address a room as region, subregion and room index.
// They are the only way actors refer to rooms.
type Coordinates struct {
	Region    int
	Subregion int
	Room      int
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%d, %d, %d", c.Region, c.Subregion, c.Room)
}

// SameRegion reports whether both coordinates lie in the same region.
func (c Coordinates) SameRegion(o Coordinates) bool {
	return c.Region == o.Region
}

// ParseCoordinates parses "r, s, n" (whitespace around the commas is optional).
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Coordinates{}, fmt.Errorf("coordinates %q: want 3 parts, got %d", s, len(parts))
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Coordinates{}, fmt.Errorf("coordinates %q: %w", s, err)
		}
		if v < 0 {
			return Coordinates{}, fmt.Errorf("coordinates %q: negative component", s)
		}
		vals[i] = v
	}
	return Coordinates{Region: vals[0], Subregion: vals[1], Room: vals[2]}, nil
}
