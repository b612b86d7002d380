package nn

import (
	"math"
	"math/rand"
	"testing"

	"fourai/internal/matrix"
)

func TestNewRandomShapes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	net, err := NewRandom([]int{42, 91, 7}, []string{"sigmoid", "sigmoid"}, rng)
	if err != nil {
		t.Fatalf("new random: %v", err)
	}
	if len(net.Weights) != 2 {
		t.Fatalf("weight layers: got %d want 2", len(net.Weights))
	}
	if net.Weights[0].Rows != 91 || net.Weights[0].Cols != 43 {
		t.Fatalf("layer 0 shape: got %dx%d want 91x43", net.Weights[0].Rows, net.Weights[0].Cols)
	}
	if net.Weights[1].Rows != 7 || net.Weights[1].Cols != 92 {
		t.Fatalf("layer 1 shape: got %dx%d want 7x92", net.Weights[1].Rows, net.Weights[1].Cols)
	}
}

func TestNewRandomActivationCountMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewRandom([]int{42, 7}, []string{"sigmoid", "sigmoid"}, rng); err == nil {
		t.Fatal("expected activation count mismatch error")
	}
}

func TestNewRandomUnknownActivation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewRandom([]int{42, 7}, []string{"swish"}, rng); err == nil {
		t.Fatal("expected unknown activation error")
	}
}

func TestNewRandomDegenerateStructure(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewRandom([]int{42}, nil, rng); err == nil {
		t.Fatal("expected structure length error")
	}
	if _, err := NewRandom([]int{42, 0, 7}, []string{"relu", "relu"}, rng); err == nil {
		t.Fatal("expected non-positive width error")
	}
}

func TestForwardOutputWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	net, err := NewRandom([]int{42, 13, 9, 7}, []string{"elu", "relu", "sigmoid"}, rng)
	if err != nil {
		t.Fatalf("new random: %v", err)
	}

	input := make([]float64, 42)
	for i := range input {
		input[i] = float64(i%3) - 1
	}
	out := net.Forward(input)
	if len(out) != 7 {
		t.Fatalf("output width: got %d want 7", len(out))
	}
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("output %d is not finite: %f", i, v)
		}
	}
}

// A single relu layer with hand-built weights: output = W*[input; 1].
func TestForwardKnownValues(t *testing.T) {
	net := &Network{
		Structure:   []int{2, 2},
		Activations: []string{"relu"},
		Weights: []matrix.Matrix{matrix.FromRows([][]float64{
			{1, 2, 3},
			{-1, 1, 0},
		})},
	}
	if err := net.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	out := net.Forward([]float64{2, 0.5})
	// Row 0: 1*2 + 2*0.5 + 3*1 = 6. Row 1: -2 + 0.5 + 0 = -1.5 -> relu 0.
	if out[0] != 6 || out[1] != 0 {
		t.Fatalf("forward: got %v want [6 0]", out)
	}
}

func TestForwardBiasApplied(t *testing.T) {
	net := &Network{
		Structure:   []int{1, 1},
		Activations: []string{"relu"},
		Weights:     []matrix.Matrix{matrix.FromRows([][]float64{{0, 4}})},
	}
	// Zero input weight, bias weight 4: every input maps to 4.
	if out := net.Forward([]float64{123}); out[0] != 4 {
		t.Fatalf("bias term ignored: got %v", out)
	}
}

func TestForwardDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	net, err := NewRandom([]int{42, 20, 7}, []string{"sigmoid", "elu"}, rng)
	if err != nil {
		t.Fatalf("new random: %v", err)
	}
	input := make([]float64, 42)
	input[0] = 1
	input[41] = -1

	first := net.Forward(input)
	second := net.Forward(input)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("forward not deterministic at %d: %f vs %f", i, first[i], second[i])
		}
	}
}

func TestValidateDetectsBadLayerShape(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	net, err := NewRandom([]int{42, 7}, []string{"relu"}, rng)
	if err != nil {
		t.Fatalf("new random: %v", err)
	}
	net.Weights[0] = matrix.New(7, 7)
	if err := net.Validate(); err == nil {
		t.Fatal("expected layer shape error")
	}
}

func TestCloneIsDeep(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	net, err := NewRandom([]int{42, 7}, []string{"relu"}, rng)
	if err != nil {
		t.Fatalf("new random: %v", err)
	}
	clone := net.Clone()
	clone.Weights[0].Set(0, 0, 99)
	if net.Weights[0].At(0, 0) == 99 {
		t.Fatal("clone shares weight storage")
	}
}
