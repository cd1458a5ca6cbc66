package parameter

// CheckpointPath is the default directory for best-route checkpoint files
const CheckpointPath = "./checkpoints"

// Genetic Algorithm - Steady-State Engine
const (
	// GAMinPool is the pool floor re-established at the top of every step
	GAMinPool = 2

	// GAMaxPool is the soft pool cap, 0 leaves the pool unbounded
	GAMaxPool = 0

	// GAChildMutationProbability is the chance the first child is the one mutated
	GAChildMutationProbability = 0.5
)

// Genetic Algorithm - Run Control
const (
	// GARunSteps is the default number of steady-state steps for a run
	GARunSteps = 3_000_000

	// GAReportInterval is the step interval between progress samples
	GAReportInterval = 10_000
)
