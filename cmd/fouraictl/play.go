package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fourai/internal/game"
	"fourai/internal/player"
)

// readColumn prompts until the reader yields a 1-based column number naming
// a column that can still take a piece.
func readColumn(scanner *bufio.Scanner, out io.Writer, board *game.Board, mover game.Spot, color bool) (int, error) {
	for {
		fmt.Fprintf(out, "%s to move, pick a column (1-%d): ", spotName(mover, color), game.Columns)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		input := strings.TrimSpace(scanner.Text())
		number, err := strconv.Atoi(input)
		if err != nil || number < 1 || number > game.Columns {
			fmt.Fprintf(out, "enter a number between 1 and %d\n", game.Columns)
			continue
		}
		column := number - 1
		if board.ColumnFull(column) {
			fmt.Fprintf(out, "column %d is full\n", number)
			continue
		}
		return column, nil
	}
}

func announce(out io.Writer, board *game.Board, result game.Result, color bool) {
	fmt.Fprint(out, renderBoard(board, color))
	if result.Winner != game.SpotEmpty {
		fmt.Fprintf(out, "%s wins\n", spotName(result.Winner, color))
	} else if result.Draw {
		fmt.Fprintln(out, "draw: the board is full")
	}
}

// playInteractive runs one human versus network game. The human plays red
// unless aiFirst is set, in which case the network opens as red.
func playInteractive(in io.Reader, out io.Writer, ai *player.NNPlayer, aiFirst bool, color bool) error {
	if ai == nil || ai.Network == nil {
		return errors.New("interactive play needs a network-backed opponent")
	}

	humanSpot := game.SpotRed
	aiSpot := game.SpotYellow
	if aiFirst {
		humanSpot, aiSpot = aiSpot, humanSpot
	}

	board := game.NewBoard()
	scanner := bufio.NewScanner(in)
	current := game.SpotRed

	fmt.Fprint(out, renderBoard(board, color))
	for {
		var result game.Result
		if current == humanSpot {
			column, err := readColumn(scanner, out, board, current, color)
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out, "game abandoned")
				return nil
			}
			if err != nil {
				return err
			}
			result = board.Insert(column, current)
		} else {
			column, aiResult := game.ApplyPreferred(board, ai.MovePreferences(board), current)
			fmt.Fprintf(out, "%s drops into column %d\n", spotName(current, color), column+1)
			result = aiResult
		}

		if result.Winner != game.SpotEmpty || result.Draw {
			announce(out, board, result, color)
			return nil
		}
		fmt.Fprint(out, renderBoard(board, color))
		current = current.Opponent()
	}
}

// playLocal alternates two human players on one terminal.
func playLocal(in io.Reader, out io.Writer, color bool) error {
	board := game.NewBoard()
	scanner := bufio.NewScanner(in)
	current := game.SpotRed

	fmt.Fprint(out, renderBoard(board, color))
	for {
		column, err := readColumn(scanner, out, board, current, color)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "game abandoned")
			return nil
		}
		if err != nil {
			return err
		}

		result := board.Insert(column, current)
		if result.Winner != game.SpotEmpty || result.Draw {
			announce(out, board, result, color)
			return nil
		}
		fmt.Fprint(out, renderBoard(board, color))
		current = current.Opponent()
	}
}
