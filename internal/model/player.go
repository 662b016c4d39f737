package model

import (
	"github.com/benbeisheim/chessrules-backend/internal/chess"
)

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color chess.Color `json:"color"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (p *Players) slot(c chess.Color) *ClientPlayer {
	if c == chess.White {
		return &p.White
	}
	return &p.Black
}

// ColorOf returns the color playerID plays, if any.
func (p Players) ColorOf(playerID string) (chess.Color, bool) {
	if playerID == "" {
		return "", false
	}
	if p.White.ID == playerID {
		return chess.White, true
	}
	if p.Black.ID == playerID {
		return chess.Black, true
	}
	return "", false
}
