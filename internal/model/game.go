package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/movegen"
	"github.com/benbeisheim/chessrules-backend/internal/rules"
	"github.com/benbeisheim/chessrules-backend/internal/status"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/rs/zerolog"
)

var (
	ErrGameFull     = errors.New("game is full")
	ErrNotInGame    = errors.New("player not in game")
	ErrGameOver     = errors.New("game is over")
	ErrUnauthorized = errors.New("not authorized to join this game")

	ErrAlreadyConnected = errors.New("connection already exists")
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

// Recorder receives every applied move while the game is still locked, so
// moves reach it in play order.
type Recorder interface {
	RecordMove(gameID string, outcome MoveOutcome) error
}

// Game owns one board/record pair and the players and observers attached to it.
// All state changes go through mu, so only one move is applied at a time.
type Game struct {
	ID          string
	mu          sync.Mutex
	current     rules.State
	state       GameState
	version     uint64 // applied moves; guarded by mu
	connections *GameConnections
	recorder    Recorder
	log         zerolog.Logger

	// sendMu orders broadcasts. sent is the newest version written out.
	sendMu sync.Mutex
	sent   uint64
}

type GameState struct {
	Board           *BoardState     `json:"boardState"`
	FEN             string          `json:"fen"`
	ToMove          chess.Color     `json:"toMove"`
	MoveHistory     []Move          `json:"moveHistory"`
	CapturedPieces  CapturedPieces  `json:"capturedPieces"`
	IsCheck         bool            `json:"isCheck"`
	Status          status.Status   `json:"status"`
	Result          *status.Result  `json:"result"`          // nil while ongoing
	LegalMoves      movegen.MoveMap `json:"legalMoves"`      // side to move only
	EnPassantTarget *chess.Position `json:"enPassantTarget"` // nil without a target
	Players         Players         `json:"players"`
	LastMove        *SimpleMove     `json:"lastMove"` // nil before the first move
}

type CapturedPieces struct {
	White []chess.Piece `json:"white"`
	Black []chess.Piece `json:"black"`
}

// MoveOutcome is what a successful MakeMove reports back to the service layer.
type MoveOutcome struct {
	Ply    Ply
	FEN    string
	Status status.Status
	Result *status.Result
}

// NewGame starts a game from s. s must have been built by rules.New or
// rules.Load. recorder may be nil.
func NewGame(id string, s rules.State, recorder Recorder, log zerolog.Logger) (*Game, error) {
	g := &Game{
		ID:          id,
		current:     s,
		state:       newGameState(),
		connections: NewGameConnections(),
		recorder:    recorder,
		log:         log.With().Str("game", id).Logger(),
	}
	if err := g.refresh(); err != nil {
		return nil, err
	}
	return g, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func newGameState() GameState {
	return GameState{
		MoveHistory:    make([]Move, 0),
		CapturedPieces: newCapturedPieces(),
		LegalMoves:     movegen.MoveMap{},
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]chess.Piece, 0),
		Black: make([]chess.Piece, 0),
	}
}

// refresh recomputes everything in the client view derived from g.current.
func (g *Game) refresh() error {
	s := g.current
	st, err := s.Status()
	if err != nil {
		return err
	}
	inCheck, err := s.InCheck()
	if err != nil {
		return err
	}
	legal, err := s.LegalMoves(s.ToMove())
	if err != nil {
		return err
	}

	g.state.Board = newBoardState(s.Board)
	g.state.FEN = s.FEN()
	g.state.ToMove = s.ToMove()
	g.state.IsCheck = inCheck
	g.state.Status = st
	g.state.LegalMoves = legal
	g.state.EnPassantTarget = nil
	if ep, ok := s.Record.EnPassantSquare(); ok {
		g.state.EnPassantTarget = &ep
	}
	g.state.Result = nil
	if result, ok, err := status.ResultOf(st, s.ToMove()); err != nil {
		return err
	} else if ok {
		g.state.Result = &result
	}
	return nil
}

func (g *Game) AddPlayer(playerID string) (chess.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.state.Players.ColorOf(playerID); ok {
		return color, nil
	}
	for _, color := range []chess.Color{chess.White, chess.Black} {
		slot := g.state.Players.slot(color)
		if slot.ID == "" {
			*slot = ClientPlayer{ID: playerID, Color: color}
			g.log.Info().Str("player", playerID).Str("color", string(color)).Msg("player joined")
			return color, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// snapshot copies the client view. g.mu must be held.
func (g *Game) snapshot() GameState {
	state := g.state
	// history entries are completed in place by black's ply
	state.MoveHistory = make([]Move, len(g.state.MoveHistory))
	copy(state.MoveHistory, g.state.MoveHistory)
	return state
}

// Rules returns the current board and record.
func (g *Game) Rules() rules.State {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.current
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	_, ok := g.state.Players.ColorOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// LegalMoves returns the legal-move map of color in the current position.
func (g *Game) LegalMoves(color chess.Color) (movegen.MoveMap, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.current.LegalMoves(color)
}

// MakeMove validates and applies a move by playerID, who must hold the color
// to move.
func (g *Game) MakeMove(playerID string, move WSMove) (MoveOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, err := move.ToMove()
	if err != nil {
		return MoveOutcome{}, err
	}

	color, ok := g.state.Players.ColorOf(playerID)
	if !ok {
		return MoveOutcome{}, ErrNotInGame
	}
	if g.state.Status.Terminal() {
		return MoveOutcome{}, ErrGameOver
	}
	if color != g.current.ToMove() {
		return MoveOutcome{}, rules.ErrNotYourTurn
	}

	before := g.current
	next, effect, err := before.Apply(m)
	if err != nil {
		g.log.Debug().Err(err).Str("player", playerID).Str("from", m.From.Square()).Str("to", m.To.Square()).Msg("move rejected")
		return MoveOutcome{}, err
	}
	g.current = next
	if err := g.refresh(); err != nil {
		g.current = before
		if rerr := g.refresh(); rerr != nil {
			g.log.Error().Err(rerr).Msg("restore after failed move")
		}
		return MoveOutcome{}, fmt.Errorf("refresh after move: %w", err)
	}

	ply := g.makePly(before, m, effect)
	g.recordPly(color, ply, effect)
	g.state.LastMove = &SimpleMove{From: m.From, To: m.To}

	g.log.Info().
		Str("player", playerID).
		Str("move", ply.Notation).
		Str("fen", g.state.FEN).
		Str("status", string(g.state.Status)).
		Msg("move applied")

	outcome := MoveOutcome{Ply: ply, FEN: g.state.FEN, Status: g.state.Status, Result: g.state.Result}
	if g.recorder != nil {
		if err := g.recorder.RecordMove(g.ID, outcome); err != nil {
			g.log.Error().Err(err).Msg("record move")
		}
	}

	g.version++
	go g.broadcast(g.snapshot(), g.version)

	return outcome, nil
}

func (g *Game) makePly(before rules.State, m chess.Move, effect chess.Effect) Ply {
	ply := Ply{
		Piece:          effect.Piece,
		From:           m.From,
		To:             m.To,
		CastleRookMove: effect.CastleRookMove,
		Promotion:      effect.Promotion,
		Notation:       plyNotation(before, m, effect, g.state.Status, g.state.IsCheck),
		FEN:            g.state.FEN,
	}
	if !effect.Captured.IsEmpty() {
		captured := effect.Captured
		ply.CapturedPiece = &captured
	}
	return ply
}

func (g *Game) recordPly(color chess.Color, ply Ply, effect chess.Effect) {
	if !effect.Captured.IsEmpty() {
		switch color {
		case chess.White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, effect.Captured)
		case chess.Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, effect.Captured)
		}
	}

	// a white ply opens a new move; a black ply completes the last one
	// unless the game started with black to move
	last := len(g.state.MoveHistory) - 1
	if color == chess.White || last < 0 || g.state.MoveHistory[last].BlackPly != nil {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{})
		last++
	}
	if color == chess.White {
		g.state.MoveHistory[last].WhitePly = &ply
	} else {
		g.state.MoveHistory[last].BlackPly = &ply
	}
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	connID := fmt.Sprintf("%p", conn)

	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrUnauthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the existing connection, reject the new one
		g.connections.mu.Unlock()
		return ErrAlreadyConnected
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	g.log.Debug().Str("player", playerID).Str("conn", connID).Msg("registered connection")

	go g.broadcastState()
	return nil
}

// UnregisterConnection drops conn if it is still the one registered for playerID.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if existing, exists := g.connections.connections[playerID]; exists && existing == conn {
		g.log.Debug().Str("player", playerID).Msg("unregistering connection")
		delete(g.connections.connections, playerID)
	}
}

// broadcastState sends the current view to every connection.
func (g *Game) broadcastState() {
	g.mu.Lock()
	state, version := g.snapshot(), g.version
	g.mu.Unlock()

	g.broadcast(state, version)
}

// broadcast sends state, taken at version, unless a newer one already went out.
func (g *Game) broadcast(state GameState, version uint64) {
	g.sendMu.Lock()
	defer g.sendMu.Unlock()

	if version < g.sent {
		g.log.Debug().Uint64("version", version).Uint64("sent", g.sent).Msg("dropping stale state")
		return
	}
	g.sent = version

	payload, err := json.Marshal(state)
	if err != nil {
		g.log.Error().Err(err).Msg("marshal game state")
		return
	}

	// Get a snapshot of connections under the read lock
	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			g.log.Warn().Err(err).Str("player", playerID).Msg("failed to send state")
			g.connections.mu.Lock()
			if g.connections.connections[playerID] == conn {
				delete(g.connections.connections, playerID)
			}
			g.connections.mu.Unlock()
		}
	}
}
