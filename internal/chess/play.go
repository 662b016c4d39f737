package chess

type Move struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Effect describes what Play did besides moving the piece from From to To.
type Effect struct {
	Piece          Piece           `json:"piece"`
	Captured       Piece           `json:"captured"`
	CapturedAt     *Position       `json:"capturedAt"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	EnPassant      bool            `json:"enPassant"`
	Promotion      PieceType       `json:"promotion,omitempty"`
	DoubleStep     bool            `json:"doubleStep"`
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Play applies m to the board including the side effects of castling,
// en passant and promotion. It does not check legality.
//
// A pawn moving diagonally onto an empty square is an en-passant capture and
// removes the pawn behind the destination. A king moving two files castles
// and takes the corner rook with it. A pawn reaching the last rank becomes
// m.Promotion, or a queen when none is given.
func (b *Board) Play(m Move) Effect {
	piece := b.At(m.From)
	effect := Effect{Piece: piece}

	if target := b.At(m.To); !target.IsEmpty() {
		effect.Captured = target
		at := m.To
		effect.CapturedAt = &at
	}

	b.Clear(m.From)
	b.Set(m.To, piece)

	switch piece.Type {
	case Pawn:
		if m.From.X != m.To.X && effect.Captured.IsEmpty() {
			victim := Position{X: m.To.X, Y: m.From.Y}
			if v := b.At(victim); v.Is(Pawn, piece.Color.Opponent()) {
				effect.Captured = v
				effect.CapturedAt = &victim
				effect.EnPassant = true
				b.Clear(victim)
			}
		}
		if abs(m.To.Y-m.From.Y) == 2 {
			effect.DoubleStep = true
		}
		if m.To.Y == HomeRow(piece.Color.Opponent()) {
			promotion := m.Promotion
			if !promotion.IsPromotion() {
				promotion = Queen
			}
			b.Set(m.To, Piece{Type: promotion, Color: piece.Color})
			effect.Promotion = promotion
		}
	case King:
		if abs(m.From.X-m.To.X) == 2 {
			var rookMove CastleRookMove
			switch m.To.X {
			case 6:
				rookMove = CastleRookMove{From: Position{X: 7, Y: m.From.Y}, To: Position{X: 5, Y: m.From.Y}}
			case 2:
				rookMove = CastleRookMove{From: Position{X: 0, Y: m.From.Y}, To: Position{X: 3, Y: m.From.Y}}
			default:
				return effect
			}
			rook := b.At(rookMove.From)
			b.Clear(rookMove.From)
			b.Set(rookMove.To, rook)
			effect.CastleRookMove = &rookMove
		}
	}
	return effect
}
