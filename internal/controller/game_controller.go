package controller

import (
	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type GameController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewGameController(gameService *service.GameService, log zerolog.Logger) *GameController {
	return &GameController{
		gameService: gameService,
		log:         log.With().Str("component", "game_controller").Logger(),
	}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

type positionRequest struct {
	FEN string `json:"fen"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		gc.log.Debug().Err(err).Str("fen", req.FEN).Msg("create game failed")
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(gameState)
}

// GetLegalMoves returns the legal-move map of the color in the query, or of
// the side to move when none is given.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	color := chess.Color(c.Query("color"))
	if color == "" {
		state, err := gc.gameService.GetGameState(gameID)
		if err != nil {
			return sendError(c, err)
		}
		color = state.ToMove
	}

	moves, err := gc.gameService.LegalMoves(gameID, color)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"color": color,
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	outcome, err := gc.gameService.HandleMove(gameID, playerID, move)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"ply":    outcome.Ply,
		"fen":    outcome.FEN,
		"status": outcome.Status,
		"result": outcome.Result,
	})
}

func (gc *GameController) GetHistory(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	positions, err := gc.gameService.History(gameID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"game_id":   gameID,
		"positions": positions,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	ids, err := gc.gameService.ArchivedGames()
	if err != nil {
		gc.log.Error().Err(err).Msg("list games failed")
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"games": ids,
	})
}

// AnalyzePosition classifies a posted record string without creating a game.
func (gc *GameController) AnalyzePosition(c *fiber.Ctx) error {
	var req positionRequest
	if err := c.BodyParser(&req); err != nil || req.FEN == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "fen is required",
		})
	}

	analysis, err := gc.gameService.Analyze(req.FEN)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(analysis)
}
