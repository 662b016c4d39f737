package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/notation"
	"github.com/benbeisheim/chessrules-backend/internal/rules"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, notation.ErrMalformed),
		errors.Is(err, chess.ErrMissingKing),
		errors.Is(err, chess.ErrDuplicateKing),
		errors.Is(err, service.ErrInvalidColor),
		errors.Is(err, rules.ErrOutOfBounds):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotInGame),
		errors.Is(err, model.ErrUnauthorized),
		errors.Is(err, rules.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, rules.ErrIllegalMove),
		errors.Is(err, rules.ErrNoPiece),
		errors.Is(err, rules.ErrInvalidPromotion):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return c.Status(code).JSON(fiber.Map{
		"error": msg,
	})
}
