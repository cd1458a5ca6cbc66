package island

import (
	"encoding/json"
	"fmt"
	"io"
)

// ItemCode identifies an item in the catalog
type ItemCode uint32

// Spawn describes how many copies of an item an area drops
type Spawn struct {
	Code      int      `json:"code"`
	Name      string   `json:"name"`
	AreaType  string   `json:"areaType"`
	AreaCode  int      `json:"areaCode"`
	ItemCode  ItemCode `json:"itemCode"`
	DropPoint string   `json:"dropPoint"`
	DropCount int      `json:"dropCount"`
}

// LoadSpawns decodes the item spawn list
func LoadSpawns(r io.Reader) ([]Spawn, error) {
	var spawns []Spawn
	if err := json.NewDecoder(r).Decode(&spawns); err != nil {
		return nil, fmt.Errorf("decode spawns: %w", err)
	}
	return spawns, nil
}

// Items carried by fixed resource objects
var fixedKindItems = map[string][]ItemCode{
	KindPotato:          {302102},
	KindStone:           {112101},
	KindBranch:          {108101},
	KindWater:           {301203},
	KindTreeOfLife:      {401208},
	KindCarp:            {302109},
	KindSecurityConsole: nil,
	KindHyperloop:       nil,
}
