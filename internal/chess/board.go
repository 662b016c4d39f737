package chess

import "errors"

var (
	// ErrMissingKing signals a corrupt board: a side that must have a king has none.
	ErrMissingKing = errors.New("no king for color on board")
	// ErrDuplicateKing signals a board with more than one king of a color.
	ErrDuplicateKing = errors.New("more than one king for color on board")
)

// Board is indexed [y][x]. Row 0 is rank 8, column 0 is file a.
// It is a plain value: assigning a Board copies all 64 cells.
type Board [8][8]Piece

func (b *Board) At(p Position) Piece {
	return b[p.Y][p.X]
}

func (b *Board) Set(p Position, pc Piece) {
	b[p.Y][p.X] = pc
}

func (b *Board) Clear(p Position) {
	b[p.Y][p.X] = NoPiece
}

// IsEmpty reports whether p is on the board and unoccupied.
func (b *Board) IsEmpty(p Position) bool {
	return p.InBounds() && b[p.Y][p.X].IsEmpty()
}

// FindKing returns the first king of color c in row-major order.
func (b *Board) FindKing(c Color) (Position, bool) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if b[y][x].Is(King, c) {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

// Kings counts the kings of color c.
func (b *Board) Kings(c Color) int {
	n := 0
	b.Each(func(_ Position, pc Piece) {
		if pc.Is(King, c) {
			n++
		}
	})
	return n
}

// Each calls fn for every occupied square in row-major order.
func (b *Board) Each(fn func(Position, Piece)) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if !b[y][x].IsEmpty() {
				fn(Position{X: x, Y: y}, b[y][x])
			}
		}
	}
}

func (b *Board) Count() int {
	n := 0
	b.Each(func(Position, Piece) { n++ })
	return n
}
