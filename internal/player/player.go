// Package player maps board states to move preferences and carries the
// genetic operators that evolve the neural policies.
package player

import (
	"fourai/internal/game"
)

// Player turns a board into a 7-wide move-preference vector. Higher values
// mean more preferred columns; no normalization is applied.
type Player interface {
	MovePreferences(board *game.Board) []float64
}
