package pool

import (
	"context"
	"sync"
)

type pairJob struct {
	i, j int
}

type pairResult struct {
	i, j           int
	deltaI, deltaJ int
}

// runTournament plays every ordered pair of distinct agents and returns the
// per-agent fitness deltas. Games are played by a fixed pool of workers; only
// the coordinator goroutine touches the fitness slice.
func (p *Pool) runTournament(ctx context.Context) ([]int, error) {
	agents := p.agents
	jobCount := len(agents) * (len(agents) - 1)
	workerCount := p.props.Workers
	if workerCount > jobCount {
		workerCount = jobCount
	}

	jobs := make(chan pairJob, workerCount)
	results := make(chan pairResult, workerCount)

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				deltaI, deltaJ := p.playPairing(agents[job.i].Player, agents[job.j].Player)
				select {
				case results <- pairResult{i: job.i, j: job.j, deltaI: deltaI, deltaJ: deltaJ}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range agents {
			for j := range agents {
				if i == j {
					continue
				}
				select {
				case jobs <- pairJob{i: i, j: j}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	fitness := make([]int, len(agents))
	for result := range results {
		fitness[result.i] += result.deltaI
		fitness[result.j] += result.deltaJ
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fitness, nil
}
