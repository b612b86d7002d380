package pool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sort"

	"fourai/internal/player"
	"fourai/internal/storage"
)

// Pool holds the evolving population and the training state between
// generations. It is not safe for concurrent use; Run owns it for the
// duration of a training session.
type Pool struct {
	props      Properties
	store      storage.Store
	logger     *log.Logger
	rng        *rand.Rand
	agents     []player.Agent
	generation int
}

// New validates props and builds a pool backed by store. A nil logger
// silences progress output.
func New(props Properties, store storage.Store, logger *log.Logger) (*Pool, error) {
	if err := props.validate(); err != nil {
		return nil, fmt.Errorf("invalid pool properties: %w", err)
	}
	if store == nil {
		return nil, errors.New("pool requires a checkpoint store")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Pool{
		props:  props,
		store:  store,
		logger: logger,
		rng:    rand.New(rand.NewSource(props.Seed)),
	}, nil
}

// Generation reports the index of the next generation to be evaluated.
func (p *Pool) Generation() int { return p.generation }

// Agents exposes the current population, primarily for inspection in tests.
func (p *Pool) Agents() []player.Agent { return p.agents }

// Run trains until the configured generation bound is reached or ctx is
// cancelled. An interrupted generation is discarded; the run resumes from
// the last checkpoint on the next invocation.
func (p *Pool) Run(ctx context.Context) error {
	if err := p.prepare(ctx); err != nil {
		return err
	}

	for p.props.Generations < 0 || p.generation < p.props.Generations {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.step(ctx); err != nil {
			return err
		}
	}
	p.logger.Printf("training complete at generation %d", p.generation)
	return nil
}

// prepare loads the latest checkpoint if one exists, otherwise seeds a
// fresh random population.
func (p *Pool) prepare(ctx context.Context) error {
	checkpoint, ok, err := p.store.Latest(ctx)
	if err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	if ok {
		p.generation = checkpoint.Generation
		p.agents = p.repopulate(checkpoint.Agents)
		p.logger.Printf("resuming from checkpoint at generation %d with %d survivors", checkpoint.Generation, len(checkpoint.Agents))
		return nil
	}

	p.agents = make([]player.Agent, 0, p.props.PopulationSize)
	for i := 0; i < p.props.PopulationSize; i++ {
		nnPlayer, err := player.NewNNPlayer(p.props.Structure, p.props.Activations, p.rng)
		if err != nil {
			return fmt.Errorf("seed population: %w", err)
		}
		p.agents = append(p.agents, player.NewAgent(nnPlayer))
	}
	p.logger.Printf("seeded fresh population of %d agents", p.props.PopulationSize)
	return nil
}

// step evaluates one generation: tournament, selection, optional
// checkpoint and baseline comparison, then repopulation.
func (p *Pool) step(ctx context.Context) error {
	fitness, err := p.runTournament(ctx)
	if err != nil {
		return fmt.Errorf("generation %d tournament: %w", p.generation, err)
	}
	for i := range p.agents {
		p.agents[i].Fitness += fitness[i]
	}

	sort.SliceStable(p.agents, func(i, j int) bool {
		return p.agents[i].Fitness > p.agents[j].Fitness
	})

	survivors := make([]player.Agent, 0, p.props.SurvivorCount)
	for i := 0; i < p.props.SurvivorCount; i++ {
		survivors = append(survivors, p.agents[i].Clone())
	}
	p.logger.Printf("generation %d: top fitness %d", p.generation, survivors[0].Fitness)

	if p.intervalDue(p.props.SaveInterval) {
		checkpoint := storage.NewCheckpoint(p.generation, survivors)
		if err := p.store.Save(ctx, checkpoint); err != nil {
			return fmt.Errorf("checkpoint generation %d: %w", p.generation, err)
		}
		p.logger.Printf("generation %d: checkpoint saved", p.generation)
	}
	if p.intervalDue(p.props.CompareInterval) {
		delta := p.compareAgainstRandom(survivors[0].Player)
		p.logger.Printf("generation %d: best agent vs random baseline scored %+d", p.generation, delta)
	}

	p.agents = p.repopulate(survivors)
	p.generation++
	return nil
}

func (p *Pool) intervalDue(interval int) bool {
	return interval >= 0 && p.generation != 0 && p.generation%interval == 0
}

// repopulate rebuilds a full population from the survivors: survivors
// carry over untouched, then crossover children up to the configured
// bound, then mutated replicas fill the remainder. Fitness starts at
// zero for everyone so each generation is scored in isolation.
func (p *Pool) repopulate(survivors []player.Agent) []player.Agent {
	target := p.props.PopulationSize
	next := make([]player.Agent, 0, target)

	for _, survivor := range survivors {
		if len(next) == target {
			break
		}
		elite := survivor.Clone()
		elite.Fitness = 0
		next = append(next, elite)
	}

	parents := len(survivors)
	for pair, bred := 0, 0; parents > 1 && len(next) < target && bred < p.props.CrossoverCount; pair, bred = pair+1, bred+1 {
		first := pair % parents
		second := (first + 1 + (pair/parents)%(parents-1)) % parents
		child := survivors[first].Clone()
		child.Player.Crossover(p.rng, survivors[second].Player)
		child.Player.Mutate(p.rng, p.props.MutationProbability, p.props.MutationMagnitude)
		child.Fitness = 0
		next = append(next, child)
	}

	for i := 0; len(next) < target; i++ {
		replica := survivors[i%parents].Clone()
		replica.Player.Mutate(p.rng, p.props.MutationProbability, p.props.MutationMagnitude)
		replica.Fitness = 0
		next = append(next, replica)
	}
	return next
}

// compareAgainstRandom pits best against a random-move baseline for one
// color-swapped pairing and returns best's score.
func (p *Pool) compareAgainstRandom(best player.Player) int {
	baseline := player.NewRandomPlayer(rand.New(rand.NewSource(p.rng.Int63())))
	delta, _ := p.playPairing(best, baseline)
	return delta
}
