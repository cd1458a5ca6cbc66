package parameter

// Island - Item Distribution
const (
	// IslandMaxCopiesPerBox is the most copies of one item an item box may hold
	IslandMaxCopiesPerBox = 2

	// IslandMaxReshuffles bounds the redistribution attempts per area
	IslandMaxReshuffles = 64

	// IslandExcludedItem is dropped from requirement tallies (carried from the start)
	IslandExcludedItem = 401103
)
