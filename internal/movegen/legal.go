package movegen

import (
	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/notation"
)

// MoveMap maps an origin key ("x,y") to the legal destinations of the piece
// standing there.
type MoveMap map[string][]chess.Position

// Has reports whether from -> to is in the map.
func (m MoveMap) Has(from, to chess.Position) bool {
	for _, dest := range m[from.Key()] {
		if dest == to {
			return true
		}
	}
	return false
}

// HasAny reports whether at least one piece has a legal move.
func (m MoveMap) HasAny() bool {
	for _, dests := range m {
		if len(dests) > 0 {
			return true
		}
	}
	return false
}

// Count returns the number of origin/destination pairs.
func (m MoveMap) Count() int {
	n := 0
	for _, dests := range m {
		n += len(dests)
	}
	return n
}

// PossibleMoves filters PseudoLegalMoves down to the moves that do not leave
// the mover's own king attacked. Each candidate is played on a copy of the
// board, castling rook and en-passant capture included, so board is never
// modified.
func PossibleMoves(piece chess.Piece, from chess.Position, board *chess.Board, record notation.Record) ([]chess.Position, error) {
	if _, ok := board.FindKing(piece.Color); !ok {
		return nil, chess.ErrMissingKing
	}

	pseudo := PseudoLegalMoves(piece, from, board, record)
	legal := make([]chess.Position, 0, len(pseudo))
	for _, to := range pseudo {
		scratch := *board
		scratch.Play(chess.Move{From: from, To: to})
		king, ok := scratch.FindKing(piece.Color)
		if !ok {
			continue
		}
		if IsKingDirectlyThreatened(king, &scratch, piece.Color) {
			continue
		}
		legal = append(legal, to)
	}
	return legal, nil
}

// AllPossibleMoves computes the legal moves of every piece of color. Squares
// without such a piece have no entry.
func AllPossibleMoves(board *chess.Board, record notation.Record, color chess.Color) (MoveMap, error) {
	if _, ok := board.FindKing(color); !ok {
		return nil, chess.ErrMissingKing
	}
	moves := MoveMap{}
	var err error
	board.Each(func(pos chess.Position, piece chess.Piece) {
		if err != nil || piece.Color != color {
			return
		}
		var dests []chess.Position
		dests, err = PossibleMoves(piece, pos, board, record)
		moves[pos.Key()] = dests
	})
	if err != nil {
		return nil, err
	}
	return moves, nil
}
