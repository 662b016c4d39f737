package movegen

import (
	"errors"
	"sort"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/notation"
)

func load(t *testing.T, fen string) (chess.Board, notation.Record) {
	t.Helper()
	record, err := notation.Parse(fen)
	if err != nil {
		t.Fatalf("Parse(%q): %v", fen, err)
	}
	board, err := record.Board()
	if err != nil {
		t.Fatalf("Board(%q): %v", fen, err)
	}
	return board, record
}

func sq(t *testing.T, s string) chess.Position {
	t.Helper()
	p, err := notation.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return p
}

func squares(ps []chess.Position) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Square())
	}
	sort.Strings(out)
	return out
}

func movesFrom(t *testing.T, fen, from string) []string {
	t.Helper()
	board, record := load(t, fen)
	origin := sq(t, from)
	piece := board.At(origin)
	if piece.IsEmpty() {
		t.Fatalf("no piece on %s", from)
	}
	moves, err := PossibleMoves(piece, origin, &board, record)
	if err != nil {
		t.Fatalf("PossibleMoves(%s): %v", from, err)
	}
	return squares(moves)
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInitialPositionMoves(t *testing.T) {
	board, record := load(t, notation.StartFEN)
	moves, err := AllPossibleMoves(&board, record, chess.White)
	if err != nil {
		t.Fatalf("AllPossibleMoves: %v", err)
	}
	if len(moves) != 16 {
		t.Fatalf("expected an entry for each of 16 pieces, got %d", len(moves))
	}
	if n := moves.Count(); n != 20 {
		t.Fatalf("expected 20 moves, got %d", n)
	}
	if got := squares(moves[sq(t, "e2").Key()]); !equal(got, []string{"e3", "e4"}) {
		t.Fatalf("e2 moves = %v", got)
	}
	if got := moves[sq(t, "e1").Key()]; len(got) != 0 {
		t.Fatalf("king should have no moves, got %v", squares(got))
	}
	if !moves.Has(sq(t, "g1"), sq(t, "f3")) {
		t.Fatalf("Ng1-f3 missing")
	}
}

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{"pawn after single step", "rnbqkbnr/pppppppp/8/8/8/4P3/PPPP1PPP/RNBQKBNR b KQkq - 0 1", "e3", []string{"e4"}},
		{"blocked pawn", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "e2", []string{}},
		{"en passant", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", "e5", []string{"d6", "e6"}},
		{"black en passant", "4k3/8/8/8/3Pp3/8/8/4K3 b - d3 0 1", "e4", []string{"d3", "e3"}},
		{"rook pinned on file", "k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1", "e2", []string{"e3", "e4", "e5", "e6", "e7", "e8"}},
		{"bishop pinned on file", "k3r3/8/8/8/8/8/4B3/4K3 w - - 0 1", "e2", []string{}},
		{"knight pinned on file", "k3r3/8/8/8/8/8/4N3/4K3 w - - 0 1", "e2", []string{}},
		{"pawn pinned on diagonal", "k7/8/8/8/7b/8/5P2/4K3 w - - 0 1", "f2", []string{}},
		{"queen pinned on diagonal", "k7/8/8/8/7b/8/5Q2/4K3 w - - 0 1", "f2", []string{"g3", "h4"}},
		{"en passant exposes king", "8/8/8/KPp4r/8/8/8/7k w - c6 0 1", "b5", []string{"b6"}},
		{"king avoids adjacent king", "8/8/8/3k4/8/3K4/8/8 w - - 0 1", "d3", []string{"c2", "c3", "d2", "e2", "e3"}},
		{"castle both sides", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1", []string{"c1", "d1", "d2", "e2", "f1", "f2", "g1"}},
		{"castle through attacked square", "r3kr2/8/8/8/8/8/8/R3K2R w KQq - 0 1", "e1", []string{"c1", "d1", "d2", "e2"}},
		{"castle with b1 attacked", "1r2k2r/8/8/8/8/8/8/R3K2R w KQk - 0 1", "e1", []string{"c1", "d1", "d2", "e2", "f1", "f2", "g1"}},
		{"castle without rights", "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1", "e1", []string{"d1", "d2", "e2", "f1", "f2"}},
		{"castle out of check", "r3k2r/8/8/8/4q3/8/8/R3K2R w KQkq - 0 1", "e1", []string{"d1", "d2", "f1", "f2"}},
		{"castle with rook missing", "r3k2r/8/8/8/8/8/8/4K2R w KQkq - 0 1", "e1", []string{"d1", "d2", "e2", "f1", "f2", "g1"}},
		{"black castles", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8", []string{"c8", "d7", "d8", "e7", "f7", "f8", "g8"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := movesFrom(t, tt.fen, tt.from)
			if !equal(got, tt.want) {
				t.Fatalf("moves from %s = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestIsKingDirectlyThreatened(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		at   string
		want bool
	}{
		{"black pawn ahead", "4k3/8/8/3p4/4K3/8/8/8 w - - 0 1", "e4", true},
		{"black pawn behind", "4k3/8/8/8/4K3/3p4/8/8 w - - 0 1", "e4", false},
		{"white pawn ahead of black king", "8/8/8/4k3/3P4/8/8/4K3 b - - 0 1", "e5", true},
		{"knight", "4k3/8/8/8/4K3/8/3n4/8 w - - 0 1", "e4", true},
		{"rook on rank", "4k3/8/8/8/r3K3/8/8/8 w - - 0 1", "e4", true},
		{"rook blocked", "4k3/8/8/8/rN2K3/8/8/8 w - - 0 1", "e4", false},
		{"bishop on diagonal", "4k3/8/8/8/4K3/8/8/1b6 w - - 0 1", "e4", true},
		{"bishop on file", "4k3/8/8/8/4K3/8/8/4b3 w - - 0 1", "e4", false},
		{"queen", "4k3/8/8/8/4K3/8/8/4q3 w - - 0 1", "e4", true},
		{"adjacent king", "8/8/8/3k4/4K3/8/8/8 w - - 0 1", "e4", true},
		{"empty square attacked", "4k3/8/8/8/8/8/8/R3K2r w - - 0 1", "f1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, record := load(t, tt.fen)
			color := record.SideToMove
			if got := IsKingDirectlyThreatened(sq(t, tt.at), &board, color); got != tt.want {
				t.Fatalf("threatened = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingKing(t *testing.T) {
	board, record := load(t, "4k3/8/8/8/8/8/4P3/8 w - - 0 1")
	if _, err := AllPossibleMoves(&board, record, chess.White); !errors.Is(err, chess.ErrMissingKing) {
		t.Fatalf("AllPossibleMoves error = %v", err)
	}
	pawn := board.At(sq(t, "e2"))
	if _, err := PossibleMoves(pawn, sq(t, "e2"), &board, record); !errors.Is(err, chess.ErrMissingKing) {
		t.Fatalf("PossibleMoves error = %v", err)
	}
	if _, err := InCheck(&board, chess.White); !errors.Is(err, chess.ErrMissingKing) {
		t.Fatalf("InCheck error = %v", err)
	}
}

func TestPossibleMovesLeavesBoardUntouched(t *testing.T) {
	board, record := load(t, "r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1")
	before := board
	if _, err := AllPossibleMoves(&board, record, chess.White); err != nil {
		t.Fatalf("AllPossibleMoves: %v", err)
	}
	if board != before {
		t.Fatalf("board changed during generation")
	}
}

func TestCheckEvasionsOnly(t *testing.T) {
	// white is in check from the rook on e8; only blocks, captures and king moves remain
	board, record := load(t, "4r2k/8/8/8/8/8/3B4/R3K3 w - - 0 1")
	moves, err := AllPossibleMoves(&board, record, chess.White)
	if err != nil {
		t.Fatalf("AllPossibleMoves: %v", err)
	}
	if got := squares(moves[sq(t, "d2").Key()]); !equal(got, []string{"e3"}) {
		t.Fatalf("bishop moves = %v", got)
	}
	if got := squares(moves[sq(t, "a1").Key()]); len(got) != 0 {
		t.Fatalf("rook moves = %v", got)
	}
	if got := squares(moves[sq(t, "e1").Key()]); !equal(got, []string{"d1", "f1", "f2"}) {
		t.Fatalf("king moves = %v", got)
	}
}
