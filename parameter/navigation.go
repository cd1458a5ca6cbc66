package parameter

// Navigation - Distance Precomputation
const (
	// NavPrecomputeWorkers is the worker pool size, 0 uses one worker per CPU
	NavPrecomputeWorkers = 0

	// NavPrecomputeQueue is the task queue capacity of the worker pool
	NavPrecomputeQueue = 1024

	// NavRowBuffer is the fan-in channel capacity for finished distance rows
	NavRowBuffer = 256
)

// Navigation - Synthetic Maps
const (
	// NavMapWidth and NavMapHeight are the default generated map dimensions
	NavMapWidth  = 81
	NavMapHeight = 41

	// NavMapBraiding adds cycles to generated maps (0 tree, 1 no dead ends)
	NavMapBraiding = 0.35

	// NavMapLocations is the default number of object locations placed on a generated map
	NavMapLocations = 24
)
