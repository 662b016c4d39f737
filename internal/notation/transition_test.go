package notation

import (
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
)

func TestToggleSideToMove(t *testing.T) {
	r := Initial()
	once := ToggleSideToMove(r)
	if once.SideToMove != chess.Black {
		t.Fatalf("side = %s", once.SideToMove)
	}
	if twice := ToggleSideToMove(once); twice != r {
		t.Fatalf("toggle twice = %+v", twice)
	}
}

func TestSetEnPassantTarget(t *testing.T) {
	r := SetEnPassantTarget(Initial(), "e3")
	if r.EnPassantTarget != "e3" {
		t.Fatalf("target = %q", r.EnPassantTarget)
	}
	if r = SetEnPassantTarget(r, ""); r.EnPassantTarget != NoSquare {
		t.Fatalf("target = %q", r.EnPassantTarget)
	}
}

func TestAdvanceClocks(t *testing.T) {
	tests := []struct {
		half, full         int
		wantHalf, wantFull int
	}{
		{0, 1, 1, 1},
		{1, 1, 0, 2},
		{5, 3, 0, 4},
		{5, 10, 0, 11},
	}
	for _, tt := range tests {
		r := Initial()
		r.HalfmoveClock, r.FullmoveNumber = tt.half, tt.full
		r = AdvanceClocks(r)
		if r.HalfmoveClock != tt.wantHalf || r.FullmoveNumber != tt.wantFull {
			t.Errorf("AdvanceClocks(%d %d) = %d %d, want %d %d",
				tt.half, tt.full, r.HalfmoveClock, r.FullmoveNumber, tt.wantHalf, tt.wantFull)
		}
	}
}

func TestUpdateCastlingRights(t *testing.T) {
	tests := []struct {
		name   string
		remove []chess.Position
		want   string
	}{
		{"untouched", nil, "KQkq"},
		{"h1 rook gone", []chess.Position{{X: 7, Y: 7}}, "Qkq"},
		{"a8 rook gone", []chess.Position{{X: 0, Y: 0}}, "KQk"},
		{"white king gone", []chess.Position{{X: 4, Y: 7}}, "kq"},
		{"everything gone", []chess.Position{{X: 4, Y: 7}, {X: 4, Y: 0}}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := chess.InitialBoard()
			for _, p := range tt.remove {
				board.Clear(p)
			}
			r := UpdateCastlingRights(Initial(), board)
			if r.CastlingRights != tt.want {
				t.Fatalf("rights = %q, want %q", r.CastlingRights, tt.want)
			}
		})
	}

	// rights are never restored
	r := Initial()
	r.CastlingRights = "k"
	if r = UpdateCastlingRights(r, chess.InitialBoard()); r.CastlingRights != "k" {
		t.Fatalf("rights = %q, want k", r.CastlingRights)
	}
}

func TestRecompute(t *testing.T) {
	board := chess.InitialBoard()
	board.Play(chess.Move{From: chess.Position{X: 4, Y: 6}, To: chess.Position{X: 4, Y: 4}})

	r := Recompute(Initial(), board, "e3")
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 1 1"
	if r.String() != want {
		t.Fatalf("Recompute = %q, want %q", r.String(), want)
	}

	board.Play(chess.Move{From: chess.Position{X: 4, Y: 0}, To: chess.Position{X: 4, Y: 1}})
	r = Recompute(r, board, NoSquare)
	want = "rnbq1bnr/ppppkppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQ - 0 2"
	if r.String() != want {
		t.Fatalf("Recompute = %q, want %q", r.String(), want)
	}
}
