package model

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/rules"
	"github.com/benbeisheim/chessrules-backend/internal/status"
)

// plyNotation writes m in short algebraic notation. before is the position
// the move was played from; st and inCheck describe the position after it.
func plyNotation(before rules.State, m chess.Move, effect chess.Effect, st status.Status, inCheck bool) string {
	var san string
	switch {
	case effect.CastleRookMove != nil && m.To.X == 6:
		san = "O-O"
	case effect.CastleRookMove != nil:
		san = "O-O-O"
	default:
		piece := effect.Piece
		capture := ""
		if !effect.Captured.IsEmpty() {
			capture = "x"
		}
		prefix := piece.Type.Notation()
		if piece.Type == chess.Pawn {
			if capture != "" {
				prefix = m.From.File()
			}
		} else {
			prefix += disambiguation(before, m, piece)
		}
		san = fmt.Sprintf("%s%s%s", prefix, capture, m.To.Square())
		if effect.Promotion != "" {
			san += "=" + effect.Promotion.Notation()
		}
	}

	switch {
	case st == status.Checkmate:
		san += "#"
	case inCheck:
		san += "+"
	}
	return san
}

// disambiguation returns the file, rank or square needed to tell m apart
// from another piece of the same type that could reach the same square.
func disambiguation(before rules.State, m chess.Move, piece chess.Piece) string {
	moves, err := before.LegalMoves(piece.Color)
	if err != nil {
		return ""
	}
	sameFile, sameRank, others := false, false, false
	for key := range moves {
		from, err := chess.ParseKey(key)
		if err != nil || from == m.From {
			continue
		}
		if before.Board.At(from).Type != piece.Type || !moves.Has(from, m.To) {
			continue
		}
		others = true
		if from.X == m.From.X {
			sameFile = true
		}
		if from.Y == m.From.Y {
			sameRank = true
		}
	}
	switch {
	case !others:
		return ""
	case !sameFile:
		return m.From.File()
	case !sameRank:
		return fmt.Sprintf("%d", 8-m.From.Y)
	default:
		return m.From.Square()
	}
}
