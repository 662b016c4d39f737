package status

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/movegen"
)

var (
	ErrInvalidStatus = errors.New("invalid game status")
	ErrInvalidResult = errors.New("invalid game result")
)

type Status string

const (
	Ongoing   Status = "ongoing"
	Checkmate Status = "checkmate"
	Stalemate Status = "stalemate"
	Draw      Status = "draw"
)

func (s Status) Valid() bool {
	switch s {
	case Ongoing, Checkmate, Stalemate, Draw:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == Checkmate || s == Stalemate || s == Draw
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Evaluate classifies the position. white and black are the legal-move maps
// of each side for board; toMove is the side to move.
//
// Checkmate and stalemate are decided for the mover only and take precedence
// over insufficient material.
func Evaluate(white, black movegen.MoveMap, board *chess.Board, toMove chess.Color) (Status, error) {
	if !toMove.Valid() {
		return "", fmt.Errorf("evaluate: invalid side to move %q", toMove)
	}
	for _, color := range []chess.Color{chess.White, chess.Black} {
		king, ok := board.FindKing(color)
		if !ok {
			return "", fmt.Errorf("evaluate %s: %w", color, chess.ErrMissingKing)
		}
		if color != toMove {
			continue
		}
		moves := white
		if color == chess.Black {
			moves = black
		}
		inCheck := movegen.IsKingDirectlyThreatened(king, board, color)
		hasMoves := moves.HasAny()
		if inCheck && !hasMoves {
			return Checkmate, nil
		}
		if !inCheck && !hasMoves {
			return Stalemate, nil
		}
	}

	if InsufficientMaterial(board) {
		return Draw, nil
	}
	return Ongoing, nil
}

// InsufficientMaterial reports positions where no sequence of moves can mate:
// bare kings, a single extra bishop or knight, or kings with bishops that
// all stand on squares of one color.
func InsufficientMaterial(board *chess.Board) bool {
	count := 0
	minors := 0
	onlyBishops := true
	light, dark := 0, 0
	board.Each(func(pos chess.Position, piece chess.Piece) {
		count++
		switch piece.Type {
		case chess.King:
		case chess.Bishop:
			minors++
			if pos.IsLight() {
				light++
			} else {
				dark++
			}
		case chess.Knight:
			minors++
			onlyBishops = false
		default:
			onlyBishops = false
		}
	})

	if count == 2 {
		return true
	}
	if count == 3 && minors == 1 {
		return true
	}
	return onlyBishops && (light == 0 || dark == 0)
}
