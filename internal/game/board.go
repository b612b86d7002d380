// Package game implements the gravity-drop board: a 7x6 grid where pieces
// fall to the lowest empty cell of a column and four in a row wins.
package game

import (
	"fmt"
	"math"
)

const (
	Columns   = 7
	Rows      = 6
	WinLength = 4
	MaxMoves  = Columns * Rows
)

// Spot is the tri-state value of a cell.
type Spot uint8

const (
	SpotEmpty Spot = iota
	SpotRed
	SpotYellow
)

func (s Spot) String() string {
	switch s {
	case SpotRed:
		return "red"
	case SpotYellow:
		return "yellow"
	default:
		return "empty"
	}
}

// Rep returns the network encoding of the cell: empty=0, red=+1, yellow=-1.
func (s Spot) Rep() float64 {
	switch s {
	case SpotRed:
		return 1.0
	case SpotYellow:
		return -1.0
	default:
		return 0.0
	}
}

// Opponent returns the other color. Calling it on SpotEmpty is a logic fault.
func (s Spot) Opponent() Spot {
	switch s {
	case SpotRed:
		return SpotYellow
	case SpotYellow:
		return SpotRed
	default:
		panic("game: empty spot has no opponent")
	}
}

// Result reports the outcome of one insertion attempt.
type Result struct {
	Applied bool
	Winner  Spot
	Draw    bool
}

// Board holds one game's state. Row Rows-1 is the bottom of each column;
// nextRow tracks the next free row per column and reaches -1 when full.
type Board struct {
	cells   [Columns][Rows]Spot
	nextRow [Columns]int
	moves   int
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	b := &Board{}
	for c := range b.nextRow {
		b.nextRow[c] = Rows - 1
	}
	return b
}

// Cell returns the spot at (column, row). Row 0 is the top.
func (b *Board) Cell(column, row int) Spot {
	return b.cells[column][row]
}

// Moves returns the number of pieces placed so far.
func (b *Board) Moves() int {
	return b.moves
}

// ColumnFull reports whether the column cannot accept another piece.
func (b *Board) ColumnFull(column int) bool {
	return b.nextRow[column] < 0
}

// Full reports whether all 42 cells are occupied.
func (b *Board) Full() bool {
	return b.moves >= MaxMoves
}

// Flatten encodes the board as a 42-element vector, columns outer and rows
// inner, using Spot.Rep per cell. This order must stay consistent between
// training and inference.
func (b *Board) Flatten() []float64 {
	out := make([]float64, 0, MaxMoves)
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			out = append(out, b.cells[c][r].Rep())
		}
	}
	return out
}

// Insert drops a piece of the given color into the column. A full column
// leaves the board untouched and reports Applied=false. A placement that
// completes four in a row through the placed cell reports the winner; the
// 42nd placement without a winner reports a draw.
func (b *Board) Insert(column int, spot Spot) Result {
	if column < 0 || column >= Columns {
		panic(fmt.Sprintf("game: column out of range: %d", column))
	}
	if spot == SpotEmpty {
		panic("game: cannot insert an empty spot")
	}

	row := b.nextRow[column]
	if row < 0 {
		return Result{}
	}

	b.cells[column][row] = spot
	b.nextRow[column]--
	b.moves++

	if winner := b.winnerThrough(column, row); winner != SpotEmpty {
		return Result{Applied: true, Winner: winner}
	}
	if b.moves == MaxMoves {
		return Result{Applied: true, Draw: true}
	}
	return Result{Applied: true}
}

// axes through a placed cell, checked in fixed order: horizontal, vertical,
// ascending diagonal, descending diagonal. Row indices grow downward, so the
// ascending diagonal steps (+1, -1).
var axes = [4][2]int{
	{1, 0},
	{0, 1},
	{1, -1},
	{1, 1},
}

// winnerThrough evaluates only the four lines through (column, row). It never
// rescans the whole board.
func (b *Board) winnerThrough(column, row int) Spot {
	for _, axis := range axes {
		if winner := b.scanLine(column, row, axis[0], axis[1]); winner != SpotEmpty {
			return winner
		}
	}
	return SpotEmpty
}

// scanLine extracts the maximal in-bounds line through (column, row) along
// (dc, dr) and tests every length-4 window for an all-equal non-empty color.
// The first matching window wins.
func (b *Board) scanLine(column, row, dc, dr int) Spot {
	// Walk to the start of the line.
	c, r := column, row
	for inBounds(c-dc, r-dr) {
		c -= dc
		r -= dr
	}

	line := make([]Spot, 0, Columns)
	for inBounds(c, r) {
		line = append(line, b.cells[c][r])
		c += dc
		r += dr
	}

	for i := 0; i+WinLength <= len(line); i++ {
		candidate := line[i]
		if candidate == SpotEmpty {
			continue
		}
		match := true
		for k := 1; k < WinLength; k++ {
			if line[i+k] != candidate {
				match = false
				break
			}
		}
		if match {
			return candidate
		}
	}
	return SpotEmpty
}

func inBounds(column, row int) bool {
	return column >= 0 && column < Columns && row >= 0 && row < Rows
}

// ApplyPreferred drops a piece of the given color into the legal column with
// the highest preference. Full columns are disqualified by forcing their
// preference to -Inf and rescanning, so a legal move is always found while
// the board has one. Requesting a move on a full board is a logic fault.
func ApplyPreferred(b *Board, preferences []float64, spot Spot) (int, Result) {
	if len(preferences) != Columns {
		panic(fmt.Sprintf("game: preference vector length %d, want %d", len(preferences), Columns))
	}

	live := make([]float64, Columns)
	copy(live, preferences)

	for {
		best := -1
		for c := 0; c < Columns; c++ {
			if math.IsInf(live[c], -1) {
				continue
			}
			if best < 0 || live[c] > live[best] {
				best = c
			}
		}
		if best < 0 {
			panic("game: no legal move on a full board")
		}
		if result := b.Insert(best, spot); result.Applied {
			return best, result
		}
		live[best] = math.Inf(-1)
	}
}
