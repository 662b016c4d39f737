package notation

import (
	"strconv"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
)

var charToType = map[byte]chess.PieceType{
	'p': chess.Pawn,
	'n': chess.Knight,
	'b': chess.Bishop,
	'r': chess.Rook,
	'q': chess.Queen,
	'k': chess.King,
}

// PieceToChar returns the placement letter of p: uppercase for white.
// The empty piece maps to 0.
func PieceToChar(p chess.Piece) byte {
	var c byte
	switch p.Type {
	case chess.Pawn:
		c = 'p'
	case chess.Knight:
		c = 'n'
	case chess.Bishop:
		c = 'b'
	case chess.Rook:
		c = 'r'
	case chess.Queen:
		c = 'q'
	case chess.King:
		c = 'k'
	default:
		return 0
	}
	if p.Color == chess.White {
		c -= 'a' - 'A'
	}
	return c
}

// CharToPiece is the inverse of PieceToChar.
func CharToPiece(c byte) (chess.Piece, bool) {
	color := chess.Black
	if c >= 'A' && c <= 'Z' {
		color = chess.White
		c += 'a' - 'A'
	}
	t, ok := charToType[c]
	if !ok {
		return chess.NoPiece, false
	}
	return chess.Piece{Type: t, Color: color}, true
}

// BoardToPlacement encodes the board rank by rank from rank 8, run-length
// encoding empty squares.
func BoardToPlacement(b chess.Board) string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			piece := b[y][x]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(PieceToChar(piece))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// PlacementToBoard parses the first record field. Anything other than
// exactly eight ranks of eight squares is rejected.
func PlacementToBoard(placement string) (chess.Board, error) {
	var board chess.Board
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return board, parseErr("placement", placement, "need 8 ranks, got %d", len(ranks))
	}
	for y, rank := range ranks {
		x := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				x += int(c - '0')
				if x > 8 {
					return board, parseErr("placement", placement, "rank %d overflows", 8-y)
				}
				continue
			}
			piece, ok := CharToPiece(c)
			if !ok {
				return board, parseErr("placement", placement, "unknown piece character %q", c)
			}
			if x >= 8 {
				return board, parseErr("placement", placement, "rank %d overflows", 8-y)
			}
			board[y][x] = piece
			x++
		}
		if x != 8 {
			return board, parseErr("placement", placement, "rank %d has %d squares", 8-y, x)
		}
	}
	return board, nil
}
