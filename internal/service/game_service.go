package service

import (
	"fmt"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(playerID string, human model.Side) (string, error) {
	game, err := gs.gameManager.CreateGame(playerID, human)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return game.ID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) error {
	if err := gs.gameManager.MakeMove(gameID, playerID, move); err != nil {
		return fmt.Errorf("move %v: %w", move, err)
	}
	return nil
}

func (gs *GameService) Resign(gameID string, playerID string) error {
	return gs.gameManager.Resign(gameID, playerID)
}

func (gs *GameService) DeleteGame(gameID string, playerID string) error {
	return gs.gameManager.RemoveGame(gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// SendError reports err to a single observer of a game.
func (gs *GameService) SendError(gameID string, playerID string, err error) error {
	game, getErr := gs.gameManager.GetGame(gameID)
	if getErr != nil {
		return getErr
	}
	msg, marshalErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if marshalErr != nil {
		return marshalErr
	}
	return game.WriteMessage(playerID, msg)
}
