// Package rules applies moves to a board and notation record pair and keeps
// the two in step.
package rules

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/movegen"
	"github.com/benbeisheim/chessrules-backend/internal/notation"
	"github.com/benbeisheim/chessrules-backend/internal/status"
)

var (
	ErrOutOfBounds      = errors.New("square out of bounds")
	ErrNoPiece          = errors.New("no piece at from square")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
)

// State is a board together with the record describing it. The zero value
// is not usable; build one with New or Load.
type State struct {
	Board  chess.Board
	Record notation.Record
}

func New() State {
	return State{Board: chess.InitialBoard(), Record: notation.Initial()}
}

// Load parses a full record string.
func Load(fen string) (State, error) {
	record, err := notation.Parse(fen)
	if err != nil {
		return State{}, err
	}
	board, err := record.Board()
	if err != nil {
		return State{}, err
	}
	for _, color := range []chess.Color{chess.White, chess.Black} {
		switch n := board.Kings(color); {
		case n == 0:
			return State{}, fmt.Errorf("load %s: %w", color, chess.ErrMissingKing)
		case n > 1:
			return State{}, fmt.Errorf("load %s: %d kings: %w", color, n, chess.ErrDuplicateKing)
		}
	}
	return State{Board: board, Record: record}, nil
}

func (s State) FEN() string {
	return s.Record.String()
}

func (s State) ToMove() chess.Color {
	return s.Record.SideToMove
}

// LegalMoves returns the legal-move map of color in this position.
func (s State) LegalMoves(color chess.Color) (movegen.MoveMap, error) {
	return movegen.AllPossibleMoves(&s.Board, s.Record, color)
}

// InCheck reports whether the side to move is in check.
func (s State) InCheck() (bool, error) {
	return movegen.InCheck(&s.Board, s.Record.SideToMove)
}

// Status classifies the position using fresh move maps for both sides.
func (s State) Status() (status.Status, error) {
	white, err := s.LegalMoves(chess.White)
	if err != nil {
		return "", err
	}
	black, err := s.LegalMoves(chess.Black)
	if err != nil {
		return "", err
	}
	return status.Evaluate(white, black, &s.Board, s.Record.SideToMove)
}

// Validate checks m against the legal moves of the side to move without
// playing it.
func (s State) Validate(m chess.Move) error {
	if !m.From.InBounds() || !m.To.InBounds() {
		return ErrOutOfBounds
	}
	piece := s.Board.At(m.From)
	if piece.IsEmpty() {
		return ErrNoPiece
	}
	if piece.Color != s.Record.SideToMove {
		return ErrNotYourTurn
	}
	if m.Promotion != "" && !m.Promotion.IsPromotion() {
		return fmt.Errorf("%w: %q", ErrInvalidPromotion, m.Promotion)
	}
	dests, err := movegen.PossibleMoves(piece, m.From, &s.Board, s.Record)
	if err != nil {
		return err
	}
	for _, to := range dests {
		if to == m.To {
			return nil
		}
	}
	return fmt.Errorf("%w: %s%s", ErrIllegalMove, m.From.Square(), m.To.Square())
}

// Apply validates and plays m, returning the following state. s itself is
// left untouched.
func (s State) Apply(m chess.Move) (State, chess.Effect, error) {
	if err := s.Validate(m); err != nil {
		return s, chess.Effect{}, err
	}

	next := s
	effect := next.Board.Play(m)

	enPassant := notation.NoSquare
	if effect.DoubleStep {
		skipped := chess.Position{X: m.To.X, Y: (m.From.Y + m.To.Y) / 2}
		enPassant = notation.FormatSquare(skipped)
	}
	next.Record = notation.Recompute(s.Record, next.Board, enPassant)
	return next, effect, nil
}
