package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/movegen"
	"github.com/benbeisheim/chessrules-backend/internal/rules"
	"github.com/benbeisheim/chessrules-backend/internal/status"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// Analysis is the stateless view of a position.
type Analysis struct {
	FEN        string          `json:"fen"`
	ToMove     chess.Color     `json:"toMove"`
	Status     status.Status   `json:"status"`
	InCheck    bool            `json:"inCheck"`
	LegalMoves movegen.MoveMap `json:"legalMoves"`
}

func (gs *GameService) JoinGame(gameID string, playerID string) (chess.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

// CreateGame starts a game from fen, or from the initial position when fen
// is empty, and returns its id.
func (gs *GameService) CreateGame(fen string) (string, error) {
	s := rules.New()
	if fen != "" {
		var err error
		if s, err = rules.Load(fen); err != nil {
			return "", err
		}
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, s); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string, color chess.Color) (movegen.MoveMap, error) {
	return gs.gameManager.LegalMoves(gameID, color)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (model.MoveOutcome, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) History(gameID string) ([]string, error) {
	return gs.gameManager.History(gameID)
}

func (gs *GameService) ArchivedGames() ([]string, error) {
	return gs.gameManager.ArchivedGames()
}

// Analyze classifies a position given as a record string without creating a game.
func (gs *GameService) Analyze(fen string) (Analysis, error) {
	s, err := rules.Load(fen)
	if err != nil {
		return Analysis{}, err
	}
	st, err := s.Status()
	if err != nil {
		return Analysis{}, err
	}
	inCheck, err := s.InCheck()
	if err != nil {
		return Analysis{}, err
	}
	moves, err := s.LegalMoves(s.ToMove())
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{
		FEN:        s.FEN(),
		ToMove:     s.ToMove(),
		Status:     st,
		InCheck:    inCheck,
		LegalMoves: moves,
	}, nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
