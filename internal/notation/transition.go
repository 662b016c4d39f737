package notation

import (
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
)

const allRights = "KQkq"

type castlingHome struct {
	right byte
	color chess.Color
	rook  chess.Position
	king  chess.Position
}

var castlingHomes = []castlingHome{
	{right: 'K', color: chess.White, rook: chess.Position{X: 7, Y: 7}, king: chess.Position{X: 4, Y: 7}},
	{right: 'Q', color: chess.White, rook: chess.Position{X: 0, Y: 7}, king: chess.Position{X: 4, Y: 7}},
	{right: 'k', color: chess.Black, rook: chess.Position{X: 7, Y: 0}, king: chess.Position{X: 4, Y: 0}},
	{right: 'q', color: chess.Black, rook: chess.Position{X: 0, Y: 0}, king: chess.Position{X: 4, Y: 0}},
}

// ToggleSideToMove flips w and b.
func ToggleSideToMove(r Record) Record {
	r.SideToMove = r.SideToMove.Opponent()
	return r
}

// SetEnPassantTarget overwrites the en-passant field; target is a square or "-".
func SetEnPassantTarget(r Record, target string) Record {
	if target == "" {
		target = NoSquare
	}
	r.EnPassantTarget = target
	return r
}

// UpdateCastlingRights drops every right whose rook or king has left its
// home square. Rights are never added back.
func UpdateCastlingRights(r Record, b chess.Board) Record {
	var sb strings.Builder
	for _, home := range castlingHomes {
		if !r.HasCastlingRight(home.right) {
			continue
		}
		if !b.At(home.rook).Is(chess.Rook, home.color) {
			continue
		}
		if !b.At(home.king).Is(chess.King, home.color) {
			continue
		}
		sb.WriteByte(home.right)
	}
	r.CastlingRights = sb.String()
	if r.CastlingRights == "" {
		r.CastlingRights = NoSquare
	}
	return r
}

// AdvanceClocks flips the halfmove field between 0 and 1. Each time it
// falls back to 0 a full move has completed and the fullmove number grows.
// Any other loaded halfmove value counts as 1, so "5 10" becomes "0 11".
// Such values are reset here rather than carried forward unchanged.
func AdvanceClocks(r Record) Record {
	if r.HalfmoveClock == 0 {
		r.HalfmoveClock = 1
		return r
	}
	r.HalfmoveClock = 0
	r.FullmoveNumber++
	return r
}

// Recompute derives the record that follows a move. b is the board after the
// move and enPassant the square skipped by a double pawn step, or "-".
//
// Castling rights are recomputed last, against the post-move board.
func Recompute(old Record, b chess.Board, enPassant string) Record {
	r := old
	r.Placement = BoardToPlacement(b)
	r = ToggleSideToMove(r)
	r = SetEnPassantTarget(r, enPassant)
	r = AdvanceClocks(r)
	r = UpdateCastlingRights(r, b)
	return r
}
