// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/movegen"
	"github.com/benbeisheim/chessrules-backend/internal/rules"
	"github.com/benbeisheim/chessrules-backend/internal/storage"
	"github.com/rs/zerolog"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrInvalidColor = errors.New("invalid color")
)

type GameManager struct {
	games   map[string]*model.Game
	archive *storage.Archive
	mu      sync.RWMutex
	log     zerolog.Logger
}

// NewGameManager builds an empty registry. archive may be nil, in which case
// moves are not persisted.
func NewGameManager(archive *storage.Archive, log zerolog.Logger) *GameManager {
	return &GameManager{
		games:   make(map[string]*model.Game),
		archive: archive,
		log:     log.With().Str("component", "game_manager").Logger(),
	}
}

// RecordMove appends an applied move to the archive.
func (gm *GameManager) RecordMove(gameID string, outcome model.MoveOutcome) error {
	if gm.archive == nil {
		return nil
	}
	return gm.archive.AppendPly(gameID, outcome.Ply.Notation, outcome.FEN, outcome.Status, outcome.Result)
}

// CreateGame registers a new game starting from s.
func (gm *GameManager) CreateGame(gameID string, s rules.State) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	game, err := model.NewGame(gameID, s, gm, gm.log)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	if gm.archive != nil {
		if err := gm.archive.CreateGame(gameID, s.FEN()); err != nil {
			return fmt.Errorf("create game: %w", err)
		}
	}
	gm.games[gameID] = game
	gm.log.Info().Str("game", gameID).Str("fen", s.FEN()).Msg("game created")
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (chess.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) LegalMoves(gameID string, color chess.Color) (movegen.MoveMap, error) {
	if !color.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(color)
}

// MakeMove applies a move. The game lock, not the registry lock, serializes
// moves within one game.
func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) (model.MoveOutcome, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.MoveOutcome{}, err
	}
	return game.MakeMove(playerID, move)
}

// History returns the archived record strings of a game.
func (gm *GameManager) History(gameID string) ([]string, error) {
	if gm.archive == nil {
		return nil, ErrGameNotFound
	}
	positions, err := gm.archive.History(gameID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	return positions, err
}

// ArchivedGames returns the ids of every game in the archive, including
// those created before a restart.
func (gm *GameManager) ArchivedGames() ([]string, error) {
	if gm.archive == nil {
		return []string{}, nil
	}
	ids, err := gm.archive.ListGames()
	if err != nil {
		return nil, fmt.Errorf("list archived games: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
