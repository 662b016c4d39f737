package movegen

import (
	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/notation"
)

// PseudoLegalMoves returns the destinations piece can reach from from by its
// movement rules alone. Whether the move exposes the mover's king is not
// checked; see PossibleMoves.
func PseudoLegalMoves(piece chess.Piece, from chess.Position, board *chess.Board, record notation.Record) []chess.Position {
	switch piece.Type {
	case chess.Pawn:
		return pawnMoves(piece, from, board, record)
	case chess.Knight:
		return stepMoves(piece, from, board, knightDirs)
	case chess.Bishop:
		return slideMoves(piece, from, board, bishopDirs)
	case chess.Rook:
		return slideMoves(piece, from, board, rookDirs)
	case chess.Queen:
		return slideMoves(piece, from, board, queenDirs)
	case chess.King:
		return append(stepMoves(piece, from, board, kingDirs), castleMoves(piece, from, board, record)...)
	default:
		return nil
	}
}

func pawnMoves(piece chess.Piece, from chess.Position, board *chess.Board, record notation.Record) []chess.Position {
	moves := []chess.Position{}
	dir := chess.Forward(piece.Color)

	one := chess.Position{X: from.X, Y: from.Y + dir}
	if board.IsEmpty(one) {
		moves = append(moves, one)
		two := chess.Position{X: from.X, Y: from.Y + 2*dir}
		if from.Y == chess.PawnRow(piece.Color) && board.IsEmpty(two) {
			moves = append(moves, two)
		}
	}

	for _, dx := range []int{-1, 1} {
		target := chess.Position{X: from.X + dx, Y: from.Y + dir}
		if !target.InBounds() {
			continue
		}
		if occupant := board.At(target); !occupant.IsEmpty() && occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}

	// en passant: the capturing pawn stands on the fifth rank from its side
	epRow := 3
	if piece.Color == chess.Black {
		epRow = 4
	}
	if ep, ok := record.EnPassantSquare(); ok && from.Y == epRow {
		for _, dx := range []int{-1, 1} {
			target := chess.Position{X: from.X + dx, Y: from.Y + dir}
			if target == ep && board.IsEmpty(target) {
				moves = append(moves, target)
			}
		}
	}
	return moves
}

func stepMoves(piece chess.Piece, from chess.Position, board *chess.Board, dirs []chess.Position) []chess.Position {
	moves := []chess.Position{}
	for _, dir := range dirs {
		target := from.Add(dir)
		if !target.InBounds() {
			continue
		}
		if occupant := board.At(target); occupant.IsEmpty() || occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func slideMoves(piece chess.Piece, from chess.Position, board *chess.Board, dirs []chess.Position) []chess.Position {
	moves := []chess.Position{}
	for _, dir := range dirs {
		target := from.Add(dir)
		for target.InBounds() {
			occupant := board.At(target)
			if occupant.IsEmpty() {
				moves = append(moves, target)
				target = target.Add(dir)
				continue
			}
			if occupant.Color != piece.Color {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}

type castleSide struct {
	white, black byte
	rookX        int
	between      []int
	kingPath     []int
	landingX     int
}

var castleSides = []castleSide{
	{white: 'K', black: 'k', rookX: 7, between: []int{5, 6}, kingPath: []int{5, 6}, landingX: 6},
	{white: 'Q', black: 'q', rookX: 0, between: []int{1, 2, 3}, kingPath: []int{3, 2}, landingX: 2},
}

func castleMoves(piece chess.Piece, from chess.Position, board *chess.Board, record notation.Record) []chess.Position {
	row := chess.HomeRow(piece.Color)
	if from != (chess.Position{X: 4, Y: row}) {
		return nil
	}
	if IsKingDirectlyThreatened(from, board, piece.Color) {
		return nil
	}

	moves := []chess.Position{}
	for _, side := range castleSides {
		right := side.white
		if piece.Color == chess.Black {
			right = side.black
		}
		if !record.HasCastlingRight(right) {
			continue
		}
		if !board.At(chess.Position{X: side.rookX, Y: row}).Is(chess.Rook, piece.Color) {
			continue
		}
		if !pathEmpty(board, row, side.between) {
			continue
		}
		if pathAttacked(board, row, side.kingPath, piece.Color) {
			continue
		}
		moves = append(moves, chess.Position{X: side.landingX, Y: row})
	}
	return moves
}

func pathEmpty(board *chess.Board, row int, files []int) bool {
	for _, x := range files {
		if !board.IsEmpty(chess.Position{X: x, Y: row}) {
			return false
		}
	}
	return true
}

func pathAttacked(board *chess.Board, row int, files []int, color chess.Color) bool {
	for _, x := range files {
		if IsKingDirectlyThreatened(chess.Position{X: x, Y: row}, board, color) {
			return true
		}
	}
	return false
}
