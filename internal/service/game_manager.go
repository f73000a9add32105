// service/game_manager.go
package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrGameNotFound = errors.New("game not found")

// ChooserFactory builds the computer opponent for a new game.
type ChooserFactory func() model.MoveChooser

type GameManager struct {
	games      map[string]*model.Game
	newChooser ChooserFactory
	mu         sync.RWMutex
}

func NewGameManager(newChooser ChooserFactory) *GameManager {
	return &GameManager{
		games:      make(map[string]*model.Game),
		newChooser: newChooser,
	}
}

// CreateGame starts a game with playerID seated on the human side.
func (gm *GameManager) CreateGame(playerID string, human model.Side) (*model.Game, error) {
	gameID := uuid.New().String()
	game := model.NewGame(gameID, human, gm.newChooser())
	if _, err := game.AddPlayer(playerID); err != nil {
		return nil, err
	}

	gm.mu.Lock()
	gm.games[gameID] = game
	gm.mu.Unlock()

	log.Info().Str("game", gameID).Str("player", playerID).Str("side", human.String()).Int("active", gm.Size()).Msg("game created")
	return game, nil
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

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.Move) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Resign(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Resign(playerID)
}

// RemoveGame deletes a game owned by playerID and closes its observers.
func (gm *GameManager) RemoveGame(gameID string, playerID string) error {
	gm.mu.Lock()
	game, exists := gm.games[gameID]
	if !exists {
		gm.mu.Unlock()
		return ErrGameNotFound
	}
	if !game.IsPlayerInGame(playerID) {
		gm.mu.Unlock()
		return model.ErrNotInGame
	}
	delete(gm.games, gameID)
	gm.mu.Unlock()

	game.CloseConnections()
	log.Info().Str("game", gameID).Int("active", gm.Size()).Msg("game removed")
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	game.RegisterConnection(playerID, conn)
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Size() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
