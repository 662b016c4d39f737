package notation

import "github.com/benbeisheim/chessrules-backend/internal/chess"

// ParseSquare converts an algebraic square into board coordinates.
// The file letter may be upper or lower case.
func ParseSquare(square string) (chess.Position, error) {
	if len(square) != 2 {
		return chess.Position{}, parseErr("square", square, "want file letter and rank digit")
	}
	file := square[0]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' {
		return chess.Position{}, parseErr("square", square, "file out of range")
	}
	rank := square[1]
	if rank < '1' || rank > '8' {
		return chess.Position{}, parseErr("square", square, "rank out of range")
	}
	return chess.Position{X: int(file - 'a'), Y: 8 - int(rank-'0')}, nil
}

// FormatSquare is the inverse of ParseSquare and always emits a lowercase file.
func FormatSquare(p chess.Position) string {
	return p.Square()
}

var promotionLetters = map[byte]chess.PieceType{
	'q': chess.Queen,
	'r': chess.Rook,
	'b': chess.Bishop,
	'n': chess.Knight,
}

// ParseUCIMove converts a coordinate move such as "e2e4" or "e7e8q", the
// form returned by an external engine, into a Move.
func ParseUCIMove(s string) (chess.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return chess.Move{}, parseErr("move", s, "want 4 or 5 characters")
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return chess.Move{}, parseErr("move", s, "bad origin square")
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return chess.Move{}, parseErr("move", s, "bad destination square")
	}
	m := chess.Move{From: from, To: to}
	if len(s) == 5 {
		c := s[4]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		promotion, ok := promotionLetters[c]
		if !ok {
			return chess.Move{}, parseErr("move", s, "unknown promotion piece %q", s[4])
		}
		m.Promotion = promotion
	}
	return m, nil
}
