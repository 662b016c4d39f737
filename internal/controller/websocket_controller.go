package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type WebSocketController struct {
	gameService *service.GameService
	log         zerolog.Logger
}

func NewWebSocketController(gameService *service.GameService, log zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		log:         log.With().Str("component", "ws_controller").Logger(),
	}
}

// lockedConn serializes writes; game broadcasts and direct replies share
// one socket.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) WriteMessage(messageType int, data []byte) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteMessage(messageType, data)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(raw *websocket.Conn) {
	c := &lockedConn{conn: raw}
	gameID := raw.Params("gameId")
	playerID, _ := raw.Locals("playerID").(string)
	log := wsc.log.With().Str("game", gameID).Str("player", playerID).Logger()

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warn().Err(err).Msg("failed to register connection")
		wsc.sendError(c, err)
		if errors.Is(err, model.ErrAlreadyConnected) {
			c.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
			)
		}
		raw.Close()
		return
	}
	log.Debug().Msg("connection established")

	for {
		messageType, message, err := raw.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read error")
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("parse error")
			wsc.sendError(c, fmt.Errorf("malformed message: %w", err))
			continue
		}

		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle error")
			wsc.sendError(c, err)
			continue
		}
		if reply != nil {
			if err := c.WriteJSON(reply); err != nil {
				log.Debug().Err(err).Msg("write error")
				break
			}
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, c)
}

// handleMessage returns the direct reply to msg, if any. Accepted moves are
// answered by the game-state broadcast instead.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return nil, err

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesRequest
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				return nil, err
			}
		}
		color := chess.Color(req.Color)
		if color == "" {
			state, err := wsc.gameService.GetGameState(gameID)
			if err != nil {
				return nil, err
			}
			color = state.ToMove
		}
		moves, err := wsc.gameService.LegalMoves(gameID, color)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(moves)
		if err != nil {
			return nil, err
		}
		return &ws.Message{Type: ws.MessageTypeLegalMoves, Payload: payload}, nil

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *lockedConn, err error) {
	payload, merr := json.Marshal(ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	if werr := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}); werr != nil {
		wsc.log.Debug().Err(werr).Msg("failed to send error")
	}
}
