package model

import (
	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/notation"
)

// WSMove is a move as sent by a client. Squares are algebraic ("e2"); UCI,
// when set, takes precedence and carries all three parts ("e7e8q").
type WSMove struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Promotion chess.PieceType `json:"promotion"`
	UCI       string          `json:"uci"`
}

// ToMove converts the client move into board coordinates.
func (m WSMove) ToMove() (chess.Move, error) {
	if m.UCI != "" {
		return notation.ParseUCIMove(m.UCI)
	}
	from, err := notation.ParseSquare(m.From)
	if err != nil {
		return chess.Move{}, err
	}
	to, err := notation.ParseSquare(m.To)
	if err != nil {
		return chess.Move{}, err
	}
	return chess.Move{From: from, To: to, Promotion: m.Promotion}, nil
}

type Ply struct {
	Piece          chess.Piece           `json:"piece"`
	From           chess.Position        `json:"from"`
	To             chess.Position        `json:"to"`
	CapturedPiece  *chess.Piece          `json:"capturedPiece"`
	CastleRookMove *chess.CastleRookMove `json:"castleRookMove"`
	Promotion      chess.PieceType       `json:"promotion"`
	Notation       string                `json:"notation"`
	FEN            string                `json:"fen"`
}

type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From chess.Position `json:"from"`
	To   chess.Position `json:"to"`
}
