package main

import (
	"strings"
	"testing"

	"fourai/internal/game"
)

func TestRenderBoardPlacesPiecesBottomUp(t *testing.T) {
	board := game.NewBoard()
	board.Insert(0, game.SpotRed)
	board.Insert(0, game.SpotYellow)
	board.Insert(3, game.SpotRed)

	lines := strings.Split(strings.TrimRight(renderBoard(board, false), "\n"), "\n")
	if len(lines) != game.Rows+1 {
		t.Fatalf("line count: got %d want %d", len(lines), game.Rows+1)
	}
	if lines[0] != "1 2 3 4 5 6 7" {
		t.Fatalf("header: %q", lines[0])
	}

	bottom := lines[game.Rows]
	if bottom != "R . . R . . ." {
		t.Fatalf("bottom row: %q", bottom)
	}
	second := lines[game.Rows-1]
	if second != "Y . . . . . ." {
		t.Fatalf("second row: %q", second)
	}
}

func TestRenderBoardColorEscapes(t *testing.T) {
	board := game.NewBoard()
	board.Insert(2, game.SpotYellow)

	out := renderBoard(board, true)
	if !strings.Contains(out, ansiYellow) || !strings.Contains(out, ansiReset) {
		t.Fatal("expected ANSI escapes in colored output")
	}
	if strings.Contains(renderBoard(board, false), "\x1b[") {
		t.Fatal("plain output must not carry escapes")
	}
}

func TestSpotName(t *testing.T) {
	if spotName(game.SpotRed, false) != "red" || spotName(game.SpotYellow, false) != "yellow" {
		t.Fatal("plain spot names wrong")
	}
	if spotName(game.SpotEmpty, false) != "nobody" {
		t.Fatal("empty spot name wrong")
	}
}
