package chess

import (
	"fmt"
	"strconv"
	"strings"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Key is the "x,y" form used to index legal-move maps.
func (p Position) Key() string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// Square returns the lowercase algebraic name, e.g. e4.
func (p Position) Square() string {
	return fmt.Sprintf("%c%d", p.X+'a', 8-p.Y)
}

func (p Position) File() string {
	return fmt.Sprintf("%c", p.X+'a')
}

// IsLight reports whether the square is a light square (a1 is dark).
func (p Position) IsLight() bool {
	return (p.X+p.Y)%2 == 0
}

// ParseKey is the inverse of Position.Key.
func ParseKey(key string) (Position, error) {
	xs, ys, ok := strings.Cut(key, ",")
	if !ok {
		return Position{}, fmt.Errorf("invalid position key %q", key)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Position{}, fmt.Errorf("invalid position key %q: %w", key, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Position{}, fmt.Errorf("invalid position key %q: %w", key, err)
	}
	p := Position{X: x, Y: y}
	if !p.InBounds() {
		return Position{}, fmt.Errorf("position key %q out of bounds", key)
	}
	return p, nil
}
