package main

import (
	"strings"

	"fourai/internal/game"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

func cellGlyph(spot game.Spot, color bool) string {
	switch spot {
	case game.SpotRed:
		if color {
			return ansiRed + "O" + ansiReset
		}
		return "R"
	case game.SpotYellow:
		if color {
			return ansiYellow + "O" + ansiReset
		}
		return "Y"
	default:
		return "."
	}
}

// renderBoard draws the board top row first with 1-based column headers,
// matching the column numbers accepted at the prompt.
func renderBoard(board *game.Board, color bool) string {
	var sb strings.Builder
	for column := 0; column < game.Columns; column++ {
		if column > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('1' + column))
	}
	sb.WriteByte('\n')
	for row := 0; row < game.Rows; row++ {
		for column := 0; column < game.Columns; column++ {
			if column > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cellGlyph(board.Cell(column, row), color))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func spotName(spot game.Spot, color bool) string {
	switch spot {
	case game.SpotRed:
		if color {
			return ansiRed + "red" + ansiReset
		}
		return "red"
	case game.SpotYellow:
		if color {
			return ansiYellow + "yellow" + ansiReset
		}
		return "yellow"
	default:
		return "nobody"
	}
}
