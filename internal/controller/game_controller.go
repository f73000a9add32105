package controller

import (
	"errors"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Side string `json:"side"`
}

// moveRequest accepts either {"from":"F2","to":"E3"} or {"move":"F2 E3"}.
type moveRequest struct {
	From *model.Position `json:"from"`
	To   *model.Position `json:"to"`
	Move string          `json:"move"`
}

func (r moveRequest) toMove() (model.Move, error) {
	if r.Move != "" {
		return model.ParseMove(r.Move)
	}
	if r.From == nil || r.To == nil {
		return model.Move{}, errors.New("move needs from and to coordinates")
	}
	return model.Move{From: *r.From, To: *r.To}, nil
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}
	}
	side := model.Red
	if req.Side != "" {
		var err error
		if side, err = model.ParseSide(req.Side); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err)
		}
	}

	gameID, err := gc.gameService.CreateGame(playerID, side)
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"side":    side,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}
	move, err := req.toMove()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.Resign(gameID, playerID); err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.DeleteGame(gameID, playerID); err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame), errors.Is(err, model.ErrGameFull):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameOver), errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func errorJSON(c *fiber.Ctx, status int, err error) error {
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
