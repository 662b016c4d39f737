package chess

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// InitialBoard returns the standard starting arrangement.
func InitialBoard() Board {
	var board Board
	for x := 0; x < 8; x++ {
		board[0][x] = Piece{Type: backRank[x], Color: Black}
		board[1][x] = Piece{Type: Pawn, Color: Black}
		board[6][x] = Piece{Type: Pawn, Color: White}
		board[7][x] = Piece{Type: backRank[x], Color: White}
	}
	return board
}

// HomeRow is the back-rank row of color c.
func HomeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// PawnRow is the row pawns of color c start on.
func PawnRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// Forward is the row delta of a pawn advance for color c.
func Forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}
