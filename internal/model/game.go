package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotInGame   = errors.New("player not in game")
	ErrGameFull    = errors.New("game is full")
	ErrIllegalMove = errors.New("illegal move")
)

const (
	ReasonCaptured = "captured"
	ReasonBlocked  = "blocked"
	ReasonResigned = "resigned"
)

const (
	SoundMove    = "move"
	SoundCapture = "capture"
	SoundCrown   = "crown"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections observing a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	sent        uint64          // version of the newest state written
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game is one human-versus-computer session.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	human       Side
	ai          MoveChooser
	connections *GameConnections
	clocks      [2]*Clock
	version     uint64 // bumped for every snapshot handed to broadcastState
}

type Resolve struct {
	Winner Side   `json:"winner"`
	Reason string `json:"reason"`
}

type PieceCount struct {
	Red   int `json:"red"`
	Black int `json:"black"`
}

type GameState struct {
	Sound      string     `json:"sound"`
	Board      Board      `json:"board"`
	ToMove     Side       `json:"toMove"`
	LegalMoves []Move     `json:"legalMoves"`
	LastMove   *Move      `json:"lastMove"`
	Resolve    *Resolve   `json:"resolve"`
	Pieces     PieceCount `json:"pieces"`
	Players    Players    `json:"players"`
}

// NewGame starts a session with the human on the given side. Red moves
// first, so a computer playing Red has already replied when NewGame returns.
func NewGame(id string, human Side, ai MoveChooser) *Game {
	return NewGameFromBoard(id, human, ai, InitialBoard(), Red)
}

// NewGameFromBoard starts a session from an arbitrary position with toMove to
// play. A position that is already decided starts resolved.
func NewGameFromBoard(id string, human Side, ai MoveChooser, board Board, toMove Side) *Game {
	g := &Game{
		ID:          id,
		human:       human,
		ai:          ai,
		connections: NewGameConnections(),
		clocks:      [2]*Clock{Red: NewClock(), Black: NewClock()},
	}
	g.state = GameState{
		Board:  board,
		ToMove: toMove,
	}
	g.state.Players.seat(human.Opponent()).ID = ComputerID
	g.state.Players.seat(human.Opponent()).Computer = true
	g.state.Players.Red.Side = Red
	g.state.Players.Black.Side = Black

	if !board.SideExists(toMove.Opponent()) {
		g.finish(toMove, ReasonCaptured)
	} else {
		g.checkWinner(toMove.Opponent())
	}
	if g.state.Resolve == nil {
		g.clocks[toMove].Start()
		if toMove != human {
			g.computerTurn()
		}
	}
	g.refresh()
	return g
}

func (g *Game) HumanSide() Side {
	return g.human
}

// AddPlayer seats playerID as the human. Seating the same player twice is a no-op.
func (g *Game) AddPlayer(playerID string) (Side, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.state.Players.seat(g.human)
	switch seat.ID {
	case "":
		seat.ID = playerID
		log.Debug().Str("game", g.ID).Str("player", playerID).Str("side", g.human.String()).Msg("player seated")
		return g.human, nil
	case playerID:
		return g.human, nil
	}
	return g.human, ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.refresh()
	return g.state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isHuman(playerID)
}

func (g *Game) isHuman(playerID string) bool {
	id := g.state.Players.seat(g.human).ID
	return id != "" && id == playerID
}

// snapshot returns the current state and its broadcast version. Callers hold g.mu.
func (g *Game) snapshot() (GameState, uint64) {
	g.refresh()
	g.version++
	return g.state, g.version
}

func (g *Game) lockedSnapshot() (GameState, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// MakeMove plays the human's move and, unless that ends the game, the computer's reply.
func (g *Game) MakeMove(playerID string, m Move) error {
	state, version, err := g.makeMove(playerID, m)
	if err != nil {
		return err
	}
	g.broadcastState(state, version)
	return nil
}

func (g *Game) makeMove(playerID string, m Move) (GameState, uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.state.Resolve != nil:
		return GameState{}, 0, ErrGameOver
	case !g.isHuman(playerID):
		return GameState{}, 0, ErrNotInGame
	case g.state.ToMove != g.human:
		return GameState{}, 0, ErrNotYourTurn
	}
	if err := g.play(m); err != nil {
		return GameState{}, 0, fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	if g.state.Resolve == nil {
		g.computerTurn()
	}

	state, version := g.snapshot()
	return state, version, nil
}

func (g *Game) Resign(playerID string) error {
	state, version, err := g.resign(playerID)
	if err != nil {
		return err
	}
	g.broadcastState(state, version)
	return nil
}

func (g *Game) resign(playerID string) (GameState, uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return GameState{}, 0, ErrGameOver
	}
	if !g.isHuman(playerID) {
		return GameState{}, 0, ErrNotInGame
	}
	g.finish(g.human.Opponent(), ReasonResigned)

	state, version := g.snapshot()
	return state, version, nil
}

func (g *Game) computerTurn() {
	side := g.human.Opponent()
	m, ok := g.ai.ChooseMove(g.state.Board, side)
	if !ok {
		g.finish(g.human, ReasonBlocked)
		return
	}
	if err := g.play(m); err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("computer chose an illegal move")
		g.finish(g.human, ReasonBlocked)
		return
	}
	log.Info().Str("game", g.ID).Stringer("move", m).Msg("computer moved")
}

// play applies m for the side to move. The board is untouched when m is not legal.
func (g *Game) play(m Move) error {
	side := g.state.ToMove
	next, err := ApplyChecked(g.state.Board, m)
	if err != nil {
		return err
	}
	if mover, _ := g.state.Board.At(m.From).Side(); mover != side {
		return fmt.Errorf("%w: %v is not a %s piece", ErrInvalidMove, m.From, side)
	}
	before := g.state.Board.At(m.From)
	g.clocks[side].Stop()

	g.state.Board = next
	g.state.LastMove = &m
	switch {
	case g.state.Board.At(m.To) != before:
		g.state.Sound = SoundCrown
	case m.IsCapture():
		g.state.Sound = SoundCapture
	default:
		g.state.Sound = SoundMove
	}
	g.state.ToMove = side.Opponent()

	g.checkWinner(side)
	if g.state.Resolve == nil {
		g.clocks[g.state.ToMove].Start()
	}
	return nil
}

// checkWinner ends the game when the opponent of mover has no pieces, or has
// pieces but no legal move.
func (g *Game) checkWinner(mover Side) {
	opponent := mover.Opponent()
	if !g.state.Board.SideExists(opponent) {
		g.finish(mover, ReasonCaptured)
		return
	}
	if len(LegalMoves(g.state.Board, opponent)) == 0 {
		g.finish(mover, ReasonBlocked)
	}
}

func (g *Game) finish(winner Side, reason string) {
	g.clocks[Red].Stop()
	g.clocks[Black].Stop()
	g.state.Resolve = &Resolve{Winner: winner, Reason: reason}
	log.Info().Str("game", g.ID).Str("winner", winner.String()).Str("reason", reason).Msg("game over")
}

// refresh recomputes the derived parts of state.
func (g *Game) refresh() {
	if g.state.Resolve == nil {
		g.state.LegalMoves = LegalMoves(g.state.Board, g.state.ToMove)
	} else {
		g.state.LegalMoves = []Move{}
	}
	g.state.Pieces = PieceCount{
		Red:   g.state.Board.Count(Red),
		Black: g.state.Board.Count(Black),
	}
	g.state.Players.Red.TimeUsed = int(g.clocks[Red].Used().Milliseconds() / 100)
	g.state.Players.Black.TimeUsed = int(g.clocks[Black].Used().Milliseconds() / 100)
}

// RegisterConnection attaches an observer. A newer connection for the same
// player replaces the older one.
func (g *Game) RegisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	if old, exists := g.connections.connections[playerID]; exists && old != conn {
		old.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by a newer connection"),
		)
		old.Close()
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debug().Str("game", g.ID).Str("player", playerID).Msg("connection registered")

	g.broadcastState(g.lockedSnapshot())
}

// UnregisterConnection drops playerID's observer if conn is still the current one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Debug().Str("game", g.ID).Str("player", playerID).Msg("connection unregistered")
	}
}

// CloseConnections closes every observer; used when a game is removed.
func (g *Game) CloseConnections() {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for playerID, conn := range g.connections.connections {
		conn.Close()
		delete(g.connections.connections, playerID)
	}
}

// broadcastState writes state to every observer. Writes are serialized by the
// connections mutex since a websocket allows one writer at a time, and a
// snapshot older than one already written is dropped.
func (g *Game) broadcastState(state GameState, version uint64) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("failed to marshal game state")
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if version <= g.connections.sent {
		log.Trace().Str("game", g.ID).Uint64("version", version).Msg("stale state not sent")
		return
	}
	g.connections.sent = version
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn().Err(err).Str("game", g.ID).Str("player", playerID).Msg("failed to send state, dropping connection")
			delete(g.connections.connections, playerID)
		}
	}
}

// WriteMessage sends msg to one observer, holding the same lock as broadcasts.
func (g *Game) WriteMessage(playerID string, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[playerID]
	if !ok {
		return ErrNotInGame
	}
	return conn.WriteJSON(msg)
}
