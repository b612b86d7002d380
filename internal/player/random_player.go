package player

import (
	"math/rand"

	"fourai/internal/game"
)

// RandomPlayer ignores the board and emits uniform random preferences. It is
// a fitness yardstick for the comparison step and never enters the breeding
// population.
type RandomPlayer struct {
	rng *rand.Rand
}

func NewRandomPlayer(rng *rand.Rand) *RandomPlayer {
	return &RandomPlayer{rng: rng}
}

func (p *RandomPlayer) MovePreferences(_ *game.Board) []float64 {
	prefs := make([]float64, game.Columns)
	for i := range prefs {
		prefs[i] = p.rng.Float64()
	}
	return prefs
}
