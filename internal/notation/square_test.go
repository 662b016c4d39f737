package notation

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want chess.Position
	}{
		{"a8", chess.Position{X: 0, Y: 0}},
		{"h1", chess.Position{X: 7, Y: 7}},
		{"e4", chess.Position{X: 4, Y: 4}},
		{"E4", chess.Position{X: 4, Y: 4}},
	}
	for _, tt := range tests {
		got, err := ParseSquare(tt.in)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseSquare(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "a", "i1", "a9", "a0", "e44"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseSquare(%q) error = %v", bad, err)
		}
	}
	if s := FormatSquare(chess.Position{X: 4, Y: 4}); s != "e4" {
		t.Fatalf("FormatSquare = %q", s)
	}
}

func TestParseUCIMove(t *testing.T) {
	m, err := ParseUCIMove("e2e4")
	if err != nil {
		t.Fatalf("ParseUCIMove: %v", err)
	}
	if m.From != (chess.Position{X: 4, Y: 6}) || m.To != (chess.Position{X: 4, Y: 4}) || m.Promotion != "" {
		t.Fatalf("e2e4 = %+v", m)
	}

	m, err = ParseUCIMove("e7e8q")
	if err != nil {
		t.Fatalf("ParseUCIMove: %v", err)
	}
	if m.Promotion != chess.Queen || m.To != (chess.Position{X: 4, Y: 0}) {
		t.Fatalf("e7e8q = %+v", m)
	}
	if m, err = ParseUCIMove("a2a1N"); err != nil || m.Promotion != chess.Knight {
		t.Fatalf("a2a1N = %+v, %v", m, err)
	}

	for _, bad := range []string{"", "e2e", "e2e4qq", "z2e4", "e2e9", "e7e8k"} {
		if _, err := ParseUCIMove(bad); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseUCIMove(%q) error = %v", bad, err)
		}
	}
}
