package persistence

import (
	"time"

	"github.com/lixenwraith/routega/genetic"
)

// CheckpointDTO is the serializable best-organism state of a run
type CheckpointDTO struct {
	RunID    string    `toml:"run_id"`
	Step     int       `toml:"step"`
	Fitness  int64     `toml:"fitness"`
	PoolSize int       `toml:"pool_size"`
	SavedAt  time.Time `toml:"saved_at"`
	Genes    []GeneDTO `toml:"genes"`
}

// GeneDTO is a serializable gene, domain included so position swaps survive a reload
type GeneDTO struct {
	Candidates []int `toml:"candidates"`
	Value      int   `toml:"value"`
}

// FromOrganism converts an organism to a checkpoint
func FromOrganism(runID string, step, poolSize int, o *genetic.Organism[int]) CheckpointDTO {
	if o == nil {
		return CheckpointDTO{RunID: runID, Step: step, PoolSize: poolSize}
	}

	genes := o.Genes()
	dto := CheckpointDTO{
		RunID:    runID,
		Step:     step,
		Fitness:  o.Fitness(),
		PoolSize: poolSize,
		SavedAt:  time.Now().UTC().Truncate(time.Second),
		Genes:    make([]GeneDTO, len(genes)),
	}
	for i := range genes {
		dto.Genes[i] = GeneDTO{
			Candidates: genes[i].Candidates(),
			Value:      genes[i].Value(),
		}
	}
	return dto
}

// Values returns the stored assignment in chromosome order
func (dto CheckpointDTO) Values() []int {
	values := make([]int, len(dto.Genes))
	for i, g := range dto.Genes {
		values[i] = g.Value
	}
	return values
}

// ToOrganism rebuilds the organism against a strategy
func (dto CheckpointDTO) ToOrganism(strategy genetic.Strategy[int]) (*genetic.Organism[int], error) {
	domains := make([][]int, len(dto.Genes))
	for i, g := range dto.Genes {
		domains[i] = g.Candidates
	}
	return genetic.NewOrganismFromValues(domains, dto.Values(), strategy)
}
