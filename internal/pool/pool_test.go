package pool

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"fourai/internal/player"
	"fourai/internal/storage"
)

func testProperties() Properties {
	return Properties{
		PopulationSize:      4,
		SurvivorCount:       2,
		CrossoverCount:      1,
		MutationProbability: 0.5,
		MutationMagnitude:   0.1,
		WinScore:            25,
		Structure:           []int{42, 4, 7},
		Activations:         []string{"relu", "sigmoid"},
		Generations:         2,
		SaveInterval:        -1,
		CompareInterval:     -1,
		Workers:             2,
		Seed:                1,
	}
}

func newTestPool(t *testing.T, props Properties) *Pool {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	pool, err := New(props, store, nil)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	return pool
}

func TestPropertiesValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Properties)
	}{
		{"zero population", func(p *Properties) { p.PopulationSize = 0 }},
		{"one survivor", func(p *Properties) { p.SurvivorCount = 1 }},
		{"survivors exceed population", func(p *Properties) { p.SurvivorCount = 5 }},
		{"negative crossover", func(p *Properties) { p.CrossoverCount = -1 }},
		{"probability above one", func(p *Properties) { p.MutationProbability = 1.5 }},
		{"zero magnitude", func(p *Properties) { p.MutationMagnitude = 0 }},
		{"zero win score", func(p *Properties) { p.WinScore = 0 }},
		{"zero save interval", func(p *Properties) { p.SaveInterval = 0 }},
		{"zero compare interval", func(p *Properties) { p.CompareInterval = 0 }},
		{"wrong input width", func(p *Properties) { p.Structure = []int{41, 4, 7} }},
		{"wrong output width", func(p *Properties) { p.Structure = []int{42, 4, 6} }},
		{"activation count mismatch", func(p *Properties) { p.Activations = []string{"relu"} }},
		{"unknown activation", func(p *Properties) { p.Activations = []string{"relu", "softmax"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			props := testProperties()
			tc.mutate(&props)
			store := storage.NewMemoryStore()
			if _, err := New(props, store, nil); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNewDefaultsWorkers(t *testing.T) {
	props := testProperties()
	props.Workers = 0
	pool := newTestPool(t, props)
	if pool.props.Workers <= 0 {
		t.Fatalf("workers not defaulted: %d", pool.props.Workers)
	}
}

func TestTournamentFitnessIsZeroSum(t *testing.T) {
	pool := newTestPool(t, testProperties())
	ctx := context.Background()
	if err := pool.prepare(ctx); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	fitness, err := pool.runTournament(ctx)
	if err != nil {
		t.Fatalf("tournament: %v", err)
	}
	if len(fitness) != pool.props.PopulationSize {
		t.Fatalf("fitness width: got %d want %d", len(fitness), pool.props.PopulationSize)
	}
	sum := 0
	for _, delta := range fitness {
		sum += delta
	}
	if sum != 0 {
		t.Fatalf("fitness deltas sum to %d, want 0", sum)
	}
}

func TestPairingIsZeroSum(t *testing.T) {
	pool := newTestPool(t, testProperties())
	rng := rand.New(rand.NewSource(3))
	first, err := player.NewNNPlayer([]int{42, 5, 7}, []string{"elu", "sigmoid"}, rng)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	second, err := player.NewNNPlayer([]int{42, 5, 7}, []string{"elu", "sigmoid"}, rng)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}

	deltaFirst, deltaSecond := pool.playPairing(first, second)
	if deltaFirst+deltaSecond != 0 {
		t.Fatalf("pairing deltas %d and %d do not cancel", deltaFirst, deltaSecond)
	}
}

func TestRepopulateKeepsSurvivorsVerbatim(t *testing.T) {
	pool := newTestPool(t, testProperties())
	rng := rand.New(rand.NewSource(7))

	survivors := make([]player.Agent, 0, 2)
	for i := 0; i < 2; i++ {
		p, err := player.NewNNPlayer(pool.props.Structure, pool.props.Activations, rng)
		if err != nil {
			t.Fatalf("new player: %v", err)
		}
		agent := player.NewAgent(p)
		agent.Fitness = 100 - i
		survivors = append(survivors, agent)
	}

	next := pool.repopulate(survivors)
	if len(next) != pool.props.PopulationSize {
		t.Fatalf("population size: got %d want %d", len(next), pool.props.PopulationSize)
	}
	for i, survivor := range survivors {
		for l, weights := range survivor.Player.Network.Weights {
			if !next[i].Player.Network.Weights[l].Equal(weights) {
				t.Fatalf("survivor %d layer %d changed during repopulation", i, l)
			}
		}
	}
	for i, agent := range next {
		if agent.Fitness != 0 {
			t.Fatalf("agent %d fitness not reset: %d", i, agent.Fitness)
		}
	}
}

func TestRunAdvancesGenerations(t *testing.T) {
	pool := newTestPool(t, testProperties())
	if err := pool.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if pool.Generation() != 2 {
		t.Fatalf("generation: got %d want 2", pool.Generation())
	}
	if len(pool.Agents()) != pool.props.PopulationSize {
		t.Fatalf("population size after run: got %d want %d", len(pool.Agents()), pool.props.PopulationSize)
	}
}

func TestRunCheckpointCadence(t *testing.T) {
	props := testProperties()
	props.Generations = 5
	props.SaveInterval = 2

	store := storage.NewMemoryStore()
	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init store: %v", err)
	}
	pool, err := New(props, store, nil)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	if err := pool.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	generations, err := store.Generations(ctx)
	if err != nil {
		t.Fatalf("generations: %v", err)
	}
	if len(generations) != 2 || generations[0] != 2 || generations[1] != 4 {
		t.Fatalf("checkpointed generations: got %v want [2 4]", generations)
	}

	latest, ok, err := store.Latest(ctx)
	if err != nil || !ok {
		t.Fatalf("latest: ok=%v err=%v", ok, err)
	}
	if len(latest.Agents) != props.SurvivorCount {
		t.Fatalf("checkpoint agents: got %d want %d", len(latest.Agents), props.SurvivorCount)
	}
}

func TestRunResumesFromCheckpoint(t *testing.T) {
	props := testProperties()
	props.Generations = 3
	props.SaveInterval = 1

	store := storage.NewMemoryStore()
	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init store: %v", err)
	}

	first, err := New(props, store, nil)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	if err := first.Run(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}

	props.Generations = 5
	second, err := New(props, store, nil)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	if err := second.prepare(ctx); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if second.Generation() != 2 {
		t.Fatalf("resumed generation: got %d want 2", second.Generation())
	}
	if len(second.Agents()) != props.PopulationSize {
		t.Fatalf("resumed population: got %d want %d", len(second.Agents()), props.PopulationSize)
	}

	if err := second.Run(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Generation() != 5 {
		t.Fatalf("final generation: got %d want 5", second.Generation())
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	pool := newTestPool(t, testProperties())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPlayGameTerminates(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	red := player.NewRandomPlayer(rand.New(rand.NewSource(rng.Int63())))
	yellow := player.NewRandomPlayer(rand.New(rand.NewSource(rng.Int63())))
	// Winner may be either color or empty on a draw; the call returning
	// at all is the property under test.
	_ = playGame(red, yellow)
}
