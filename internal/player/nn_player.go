package player

import (
	"math/rand"

	"fourai/internal/game"
	"fourai/internal/nn"
)

// crossoverLayerChance is the probability that a crossover child takes a
// whole weight layer from the second parent instead of the first.
const crossoverLayerChance = 0.5

// NNPlayer selects moves with a feed-forward network over the flattened
// board. It is the only player kind that participates in breeding.
type NNPlayer struct {
	Network *nn.Network `json:"network"`
}

// NewNNPlayer builds a player around a freshly randomized network.
func NewNNPlayer(structure []int, activations []string, rng *rand.Rand) (*NNPlayer, error) {
	network, err := nn.NewRandom(structure, activations, rng)
	if err != nil {
		return nil, err
	}
	return &NNPlayer{Network: network}, nil
}

// MovePreferences flattens the board and runs one forward pass.
func (p *NNPlayer) MovePreferences(board *game.Board) []float64 {
	return p.Network.Forward(board.Flatten())
}

// Mutate perturbs each weight independently: with the given probability, add
// a uniform value in [-magnitude, magnitude].
func (p *NNPlayer) Mutate(rng *rand.Rand, probability, magnitude float64) {
	for i := range p.Network.Weights {
		p.Network.Weights[i].Map(func(v float64) float64 {
			if rng.Float64() >= probability {
				return v
			}
			return v + (rng.Float64()*2-1)*magnitude
		})
	}
}

// Crossover inherits whole weight layers: each layer is replaced by the
// other parent's corresponding layer with probability 0.5. Layer-level
// inheritance keeps co-adapted weights within a layer together.
func (p *NNPlayer) Crossover(rng *rand.Rand, other *NNPlayer) {
	for i := range p.Network.Weights {
		if rng.Float64() < crossoverLayerChance {
			p.Network.Weights[i] = other.Network.Weights[i].Clone()
		}
	}
}

// Clone deep-copies the player.
func (p *NNPlayer) Clone() *NNPlayer {
	return &NNPlayer{Network: p.Network.Clone()}
}
