package island

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/lixenwraith/routega/parameter"
)

// Island is the immutable item layout of a map: which items each location supplies.
// It is built once and shared read-only.
type Island struct {
	locations []Location
	index     map[Point]int
	items     [][]ItemCode
}

// NewIsland distributes each area's spawned items across its item boxes.
// Item codes are repeated by drop count, shuffled and dealt evenly over the boxes;
// the deal is redrawn while a box would hold too many copies of one item.
func NewIsland(locations []Location, spawns []Spawn, rng *rand.Rand) (*Island, error) {
	isl := &Island{
		locations: slices.Clone(locations),
		index:     make(map[Point]int, len(locations)),
		items:     make([][]ItemCode, len(locations)),
	}

	boxesByArea := make(map[int][]int)
	for i, loc := range locations {
		if _, dup := isl.index[loc.Point()]; dup {
			return nil, fmt.Errorf("location %s listed twice", loc.Point())
		}
		isl.index[loc.Point()] = i

		if loc.Kind == KindItem {
			boxesByArea[loc.AreaCode] = append(boxesByArea[loc.AreaCode], i)
			continue
		}
		fixed, ok := fixedKindItems[loc.Kind]
		if !ok {
			return nil, fmt.Errorf("location %s: unknown kind %q", loc.Point(), loc.Kind)
		}
		isl.items[i] = slices.Clone(fixed)
	}

	dropsByArea := make(map[int][]ItemCode)
	for _, s := range spawns {
		for range s.DropCount {
			dropsByArea[s.AreaCode] = append(dropsByArea[s.AreaCode], s.ItemCode)
		}
	}

	// Deal areas in a fixed order so a seeded rng reproduces the layout
	areas := make([]int, 0, len(boxesByArea))
	for area := range boxesByArea {
		areas = append(areas, area)
	}
	slices.Sort(areas)

	for _, area := range areas {
		boxes := boxesByArea[area]
		dealt := dealItems(dropsByArea[area], len(boxes), rng)
		for i, locIdx := range boxes {
			isl.items[locIdx] = dealt[i]
		}
	}

	return isl, nil
}

// dealItems shuffles drops and deals them round-robin into n boxes
func dealItems(drops []ItemCode, n int, rng *rand.Rand) [][]ItemCode {
	var boxes [][]ItemCode
	for attempt := 0; attempt < parameter.IslandMaxReshuffles; attempt++ {
		shuffled := slices.Clone(drops)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		boxes = make([][]ItemCode, n)
		for i, code := range shuffled {
			boxes[i%n] = append(boxes[i%n], code)
		}

		if !overfilled(boxes) {
			return boxes
		}
	}

	slog.Debug("item deal kept an overfilled box", "boxes", n, "drops", len(drops))
	return boxes
}

func overfilled(boxes [][]ItemCode) bool {
	for _, box := range boxes {
		counts := make(map[ItemCode]int, len(box))
		for _, code := range box {
			counts[code]++
			if counts[code] > parameter.IslandMaxCopiesPerBox {
				return true
			}
		}
	}
	return false
}

// Len returns the number of locations
func (isl *Island) Len() int {
	return len(isl.locations)
}

// Location returns the location at index i
func (isl *Island) Location(i int) Location {
	return isl.locations[i]
}

// Locations returns a copy of every location in input order
func (isl *Island) Locations() []Location {
	return slices.Clone(isl.locations)
}

// IndexOf returns the location index at a point
func (isl *Island) IndexOf(p Point) (int, error) {
	i, ok := isl.index[p]
	if !ok {
		return -1, &LookupNotFoundError{Table: "location", Key: p.String()}
	}
	return i, nil
}

// ItemsAt returns the items supplied at a point
func (isl *Island) ItemsAt(p Point) ([]ItemCode, error) {
	i, err := isl.IndexOf(p)
	if err != nil {
		return nil, err
	}
	return slices.Clone(isl.items[i]), nil
}

// Supplies reports whether location i supplies the item
func (isl *Island) Supplies(i int, code ItemCode) bool {
	return slices.Contains(isl.items[i], code)
}

// SuppliesAny reports whether location i supplies at least one of the items
func (isl *Island) SuppliesAny(i int, codes map[ItemCode]int) bool {
	for _, code := range isl.items[i] {
		if _, ok := codes[code]; ok {
			return true
		}
	}
	return false
}

// Copies returns how many copies of the item location i supplies
func (isl *Island) Copies(i int, code ItemCode) int {
	n := 0
	for _, c := range isl.items[i] {
		if c == code {
			n++
		}
	}
	return n
}
