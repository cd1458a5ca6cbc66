package island

import (
	"encoding/json"
	"fmt"
	"io"
)

// Point is a cell on the map grid
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Location kinds found in object location data
const (
	KindItem            = "item"
	KindPotato          = "potato"
	KindStone           = "stone"
	KindBranch          = "branch"
	KindWater           = "water"
	KindTreeOfLife      = "tree of life"
	KindCarp            = "carp"
	KindSecurityConsole = "security console"
	KindHyperloop       = "hyperloop"
)

// Location is an interactable object on the map
type Location struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Kind     string `json:"kind"`
	AreaCode int    `json:"areaCode"`
}

// Point returns the grid cell of the location
func (l Location) Point() Point {
	return Point{X: l.X, Y: l.Y}
}

// LoadLocations decodes the object location list
func LoadLocations(r io.Reader) ([]Location, error) {
	var locations []Location
	if err := json.NewDecoder(r).Decode(&locations); err != nil {
		return nil, fmt.Errorf("decode locations: %w", err)
	}
	return locations, nil
}

// WriteLocations encodes the object location list
func WriteLocations(w io.Writer, locations []Location) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(locations)
}
