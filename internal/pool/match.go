package pool

import (
	"fourai/internal/game"
	"fourai/internal/player"
)

// playGame runs one game to completion and returns the winning color, or
// SpotEmpty when the board fills without a winner.
func playGame(red, yellow player.Player) game.Spot {
	board := game.NewBoard()
	current := game.SpotRed
	for {
		var mover player.Player
		if current == game.SpotRed {
			mover = red
		} else {
			mover = yellow
		}
		_, result := game.ApplyPreferred(board, mover.MovePreferences(board), current)
		if result.Winner != game.SpotEmpty {
			return result.Winner
		}
		if result.Draw {
			return game.SpotEmpty
		}
		current = current.Opponent()
	}
}

// playPairing plays two games between first and second with colors swapped
// between games, and returns the fitness deltas for first and second.
func (p *Pool) playPairing(first, second player.Player) (int, int) {
	score := p.props.WinScore
	deltaFirst, deltaSecond := 0, 0

	switch playGame(first, second) {
	case game.SpotRed:
		deltaFirst += score
		deltaSecond -= score
	case game.SpotYellow:
		deltaFirst -= score
		deltaSecond += score
	}
	switch playGame(second, first) {
	case game.SpotRed:
		deltaSecond += score
		deltaFirst -= score
	case game.SpotYellow:
		deltaSecond -= score
		deltaFirst += score
	}
	return deltaFirst, deltaSecond
}
