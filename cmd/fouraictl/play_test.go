package main

import (
	"strings"
	"testing"
)

func TestPlayLocalVerticalWin(t *testing.T) {
	// Red stacks column 1 while yellow stacks column 2; red completes
	// four first.
	moves := "1\n2\n1\n2\n1\n2\n1\n"
	var out strings.Builder

	if err := playLocal(strings.NewReader(moves), &out, false); err != nil {
		t.Fatalf("play local: %v", err)
	}
	if !strings.Contains(out.String(), "red wins") {
		t.Fatalf("expected red win, output:\n%s", out.String())
	}
}

func TestPlayLocalRejectsBadInput(t *testing.T) {
	moves := "0\neight\n8\n1\n2\n1\n2\n1\n2\n1\n"
	var out strings.Builder

	if err := playLocal(strings.NewReader(moves), &out, false); err != nil {
		t.Fatalf("play local: %v", err)
	}
	if strings.Count(out.String(), "enter a number between 1 and 7") != 3 {
		t.Fatalf("expected three rejections, output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "red wins") {
		t.Fatal("expected the game to finish after rejected inputs")
	}
}

func TestPlayLocalAbandonedOnEOF(t *testing.T) {
	var out strings.Builder
	if err := playLocal(strings.NewReader("1\n2\n"), &out, false); err != nil {
		t.Fatalf("play local: %v", err)
	}
	if !strings.Contains(out.String(), "game abandoned") {
		t.Fatal("expected abandonment notice on EOF")
	}
}
