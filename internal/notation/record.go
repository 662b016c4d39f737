package notation

import (
	"strconv"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
)

const (
	StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
	StartFEN       = StartPlacement + " w KQkq - 0 1"

	// NoSquare fills the castling and en-passant fields when they are empty.
	NoSquare = "-"
)

// Record is the six-field board-state record.
type Record struct {
	Placement       string      `json:"placement"`
	SideToMove      chess.Color `json:"sideToMove"`
	CastlingRights  string      `json:"castlingRights"`
	EnPassantTarget string      `json:"enPassantTarget"`
	HalfmoveClock   int         `json:"halfmoveClock"`
	FullmoveNumber  int         `json:"fullmoveNumber"`
}

// Initial returns the record of the starting position.
func Initial() Record {
	return Record{
		Placement:       StartPlacement,
		SideToMove:      chess.White,
		CastlingRights:  "KQkq",
		EnPassantTarget: NoSquare,
		HalfmoveClock:   0,
		FullmoveNumber:  1,
	}
}

// Parse reads a space-separated record. The two clock fields are optional
// and default to 0 and 1.
func Parse(s string) (Record, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 || len(fields) > 6 {
		return Record{}, parseErr("record", s, "need 4 to 6 fields, got %d", len(fields))
	}

	r := Record{HalfmoveClock: 0, FullmoveNumber: 1}

	board, err := PlacementToBoard(fields[0])
	if err != nil {
		return Record{}, err
	}
	r.Placement = BoardToPlacement(board)

	switch fields[1] {
	case "w":
		r.SideToMove = chess.White
	case "b":
		r.SideToMove = chess.Black
	default:
		return Record{}, parseErr("side to move", fields[1], "want w or b")
	}

	rights, err := parseCastlingRights(fields[2])
	if err != nil {
		return Record{}, err
	}
	r.CastlingRights = rights

	if fields[3] != NoSquare {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Record{}, parseErr("en passant target", fields[3], "not a square")
		}
		if sq.Y != 2 && sq.Y != 5 {
			return Record{}, parseErr("en passant target", fields[3], "must be on rank 3 or 6")
		}
		r.EnPassantTarget = FormatSquare(sq)
	} else {
		r.EnPassantTarget = NoSquare
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return Record{}, parseErr("halfmove clock", fields[4], "want a non-negative integer")
		}
		r.HalfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return Record{}, parseErr("fullmove number", fields[5], "want a positive integer")
		}
		r.FullmoveNumber = n
	}
	return r, nil
}

func parseCastlingRights(field string) (string, error) {
	if field == NoSquare {
		return NoSquare, nil
	}
	var seen [4]bool
	for i := 0; i < len(field); i++ {
		idx := strings.IndexByte(allRights, field[i])
		if idx < 0 {
			return "", parseErr("castling rights", field, "unknown right %q", field[i])
		}
		if seen[idx] {
			return "", parseErr("castling rights", field, "duplicate right %q", field[i])
		}
		seen[idx] = true
	}
	var sb strings.Builder
	for i := range allRights {
		if seen[i] {
			sb.WriteByte(allRights[i])
		}
	}
	return sb.String(), nil
}

func (r Record) String() string {
	side := "w"
	if r.SideToMove == chess.Black {
		side = "b"
	}
	return strings.Join([]string{
		r.Placement,
		side,
		r.CastlingRights,
		r.EnPassantTarget,
		strconv.Itoa(r.HalfmoveClock),
		strconv.Itoa(r.FullmoveNumber),
	}, " ")
}

// Board decodes the placement field.
func (r Record) Board() (chess.Board, error) {
	return PlacementToBoard(r.Placement)
}

// EnPassantSquare decodes the en-passant field. ok is false for "-".
func (r Record) EnPassantSquare() (chess.Position, bool) {
	if r.EnPassantTarget == NoSquare || r.EnPassantTarget == "" {
		return chess.Position{}, false
	}
	p, err := ParseSquare(r.EnPassantTarget)
	if err != nil {
		return chess.Position{}, false
	}
	return p, true
}

// HasCastlingRight reports whether right (one of K, Q, k, q) is still available.
func (r Record) HasCastlingRight(right byte) bool {
	return r.CastlingRights != NoSquare && strings.IndexByte(r.CastlingRights, right) >= 0
}
