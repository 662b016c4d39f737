package status

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
)

// Result is the outcome of a finished game.
type Result string

const (
	WhiteWins Result = "white"
	BlackWins Result = "black"
	Drawn     Result = "draw"
)

func (r Result) Valid() bool {
	switch r {
	case WhiteWins, BlackWins, Drawn:
		return true
	}
	return false
}

func ParseResult(s string) (Result, error) {
	r := Result(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidResult, s)
	}
	return r, nil
}

// ResultOf derives the result from a terminal status and the side that was
// to move in it. ok is false while the game is ongoing.
func ResultOf(s Status, toMove chess.Color) (result Result, ok bool, err error) {
	if !s.Valid() {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	if !toMove.Valid() {
		return "", false, fmt.Errorf("result of %s: invalid side to move %q", s, toMove)
	}
	switch s {
	case Checkmate:
		if toMove == chess.White {
			return BlackWins, true, nil
		}
		return WhiteWins, true, nil
	case Stalemate, Draw:
		return Drawn, true, nil
	default:
		return "", false, nil
	}
}
