package model

import (
	"github.com/benbeisheim/chessrules-backend/internal/chess"
)

// BoardState is the JSON view of a board sent to clients. Empty squares
// are null.
type BoardState struct {
	Board             [][]*chess.Piece `json:"board"`
	BlackKingPosition chess.Position   `json:"blackKingPosition"`
	WhiteKingPosition chess.Position   `json:"whiteKingPosition"`
}

func newBoardState(b chess.Board) *BoardState {
	board := &BoardState{}
	for y := 0; y < 8; y++ {
		row := make([]*chess.Piece, 8)
		for x := 0; x < 8; x++ {
			if piece := b[y][x]; !piece.IsEmpty() {
				row[x] = &piece
			}
		}
		board.Board = append(board.Board, row)
	}
	board.WhiteKingPosition, _ = b.FindKing(chess.White)
	board.BlackKingPosition, _ = b.FindKing(chess.Black)
	return board
}
