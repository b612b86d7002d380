package nn

import (
	"fmt"
	"math/rand"

	"fourai/internal/matrix"
)

// Network is a fixed-structure feed-forward network. Weight layer i has
// shape (Structure[i+1], Structure[i]+1); the extra column absorbs a bias
// input of 1.0 appended during the forward pass. The structure never changes
// after construction.
type Network struct {
	Structure   []int           `json:"structure"`
	Activations []string        `json:"activations"`
	Weights     []matrix.Matrix `json:"weights"`
}

// NewRandom builds a network with uniform [-1, 1) weights. Activations are
// resolved against the registry here so a bad name fails at construction,
// not at inference.
func NewRandom(structure []int, activations []string, rng *rand.Rand) (*Network, error) {
	if err := validateShape(structure, activations); err != nil {
		return nil, err
	}

	weights := make([]matrix.Matrix, 0, len(structure)-1)
	for i := 0; i < len(structure)-1; i++ {
		weights = append(weights, matrix.Random(structure[i+1], structure[i]+1, rng))
	}

	return &Network{
		Structure:   append([]int(nil), structure...),
		Activations: append([]string(nil), activations...),
		Weights:     weights,
	}, nil
}

func validateShape(structure []int, activations []string) error {
	if len(structure) < 2 {
		return fmt.Errorf("structure needs at least input and output widths, got %d", len(structure))
	}
	for i, width := range structure {
		if width <= 0 {
			return fmt.Errorf("structure width must be > 0 at index %d: %d", i, width)
		}
	}
	if len(activations) != len(structure)-1 {
		return fmt.Errorf("activation count mismatch: got %d want %d", len(activations), len(structure)-1)
	}
	for _, name := range activations {
		if _, err := GetActivation(name); err != nil {
			return err
		}
	}
	return nil
}

// Validate re-checks shape invariants, for networks decoded from storage.
func (n *Network) Validate() error {
	if err := validateShape(n.Structure, n.Activations); err != nil {
		return err
	}
	if len(n.Weights) != len(n.Structure)-1 {
		return fmt.Errorf("weight layer count mismatch: got %d want %d", len(n.Weights), len(n.Structure)-1)
	}
	for i, layer := range n.Weights {
		if layer.Rows != n.Structure[i+1] || layer.Cols != n.Structure[i]+1 {
			return fmt.Errorf("weight layer %d shape %dx%d, want %dx%d",
				i, layer.Rows, layer.Cols, n.Structure[i+1], n.Structure[i]+1)
		}
	}
	return nil
}

// Forward runs strictly feed-forward inference: per layer, append the bias
// row, multiply, then apply the layer's activation element-wise. The result
// has the output width of the final layer.
func (n *Network) Forward(input []float64) []float64 {
	if len(input) != n.Structure[0] {
		panic(fmt.Sprintf("nn: input length %d, want %d", len(input), n.Structure[0]))
	}

	result := matrix.Column(input)
	for i, layer := range n.Weights {
		// Names were resolved at construction; a miss here is a logic fault.
		activation, err := GetActivation(n.Activations[i])
		if err != nil {
			panic(err)
		}
		result.AppendRow([]float64{1.0})
		result = layer.Mul(result)
		result.Map(activation)
	}
	return result.ColumnVector(0)
}

// Clone deep-copies the network.
func (n *Network) Clone() *Network {
	weights := make([]matrix.Matrix, len(n.Weights))
	for i, layer := range n.Weights {
		weights[i] = layer.Clone()
	}
	return &Network{
		Structure:   append([]int(nil), n.Structure...),
		Activations: append([]string(nil), n.Activations...),
		Weights:     weights,
	}
}
