// Package pool runs the evolutionary loop: a round-robin self-play
// tournament scores the population, the fittest survive, and crossover plus
// mutation of the survivors refills the next generation.
package pool

import (
	"fmt"
	"runtime"

	"fourai/internal/game"
	"fourai/internal/nn"
)

// Properties is the immutable configuration of one training run. It is
// validated once by New and never mutated while training.
type Properties struct {
	// PopulationSize is the number of agents evaluated per generation.
	PopulationSize int
	// SurvivorCount is how many top agents seed the next generation.
	SurvivorCount int
	// CrossoverCount bounds how many bred children are produced per
	// generation; the remainder of the population is refilled by
	// replicating survivors.
	CrossoverCount int
	// MutationProbability is the per-weight chance of perturbation.
	MutationProbability float64
	// MutationMagnitude bounds each perturbation to [-m, m].
	MutationMagnitude float64
	// WinScore is added to the winner's fitness and subtracted from the
	// loser's for every decided game; draws score zero for both.
	WinScore int
	// Structure lists layer widths, beginning with the flattened board
	// width (42) and ending with the move-space width (7).
	Structure []int
	// Activations names one registered activation per layer transition.
	Activations []string
	// Generations bounds the run; negative means train until interrupted.
	Generations int
	// SaveInterval is the checkpoint cadence in generations; negative
	// disables checkpointing. Zero is rejected.
	SaveInterval int
	// CompareInterval is the random-baseline comparison cadence; negative
	// disables it. Zero is rejected.
	CompareInterval int
	// Workers sizes the tournament worker pool; <= 0 means GOMAXPROCS.
	Workers int
	// Seed drives all randomness of the run.
	Seed int64
}

func (p *Properties) validate() error {
	if p.PopulationSize <= 0 {
		return fmt.Errorf("population size must be > 0, got %d", p.PopulationSize)
	}
	if p.SurvivorCount < 2 || p.SurvivorCount > p.PopulationSize {
		return fmt.Errorf("survivor count must be in [2, population size], got %d", p.SurvivorCount)
	}
	if p.CrossoverCount < 0 {
		return fmt.Errorf("crossover count must be >= 0, got %d", p.CrossoverCount)
	}
	if p.MutationProbability < 0 || p.MutationProbability > 1 {
		return fmt.Errorf("mutation probability must be in [0, 1], got %f", p.MutationProbability)
	}
	if p.MutationMagnitude <= 0 {
		return fmt.Errorf("mutation magnitude must be > 0, got %f", p.MutationMagnitude)
	}
	if p.WinScore <= 0 {
		return fmt.Errorf("win score must be > 0, got %d", p.WinScore)
	}
	if p.SaveInterval == 0 {
		return fmt.Errorf("save interval must be > 0, or negative to disable")
	}
	if p.CompareInterval == 0 {
		return fmt.Errorf("compare interval must be > 0, or negative to disable")
	}
	if len(p.Structure) < 2 {
		return fmt.Errorf("structure needs at least input and output widths, got %d", len(p.Structure))
	}
	if p.Structure[0] != game.MaxMoves {
		return fmt.Errorf("structure must begin with the flattened board width %d, got %d", game.MaxMoves, p.Structure[0])
	}
	if p.Structure[len(p.Structure)-1] != game.Columns {
		return fmt.Errorf("structure must end with the move-space width %d, got %d", game.Columns, p.Structure[len(p.Structure)-1])
	}
	if len(p.Activations) != len(p.Structure)-1 {
		return fmt.Errorf("activation count mismatch: got %d want %d", len(p.Activations), len(p.Structure)-1)
	}
	for _, name := range p.Activations {
		if _, err := nn.GetActivation(name); err != nil {
			return err
		}
	}
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}
