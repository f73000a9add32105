package model

// ComputerID identifies the engine's seat in game state.
const ComputerID = "computer"

type ClientPlayer struct {
	ID       string `json:"id"`
	Side     Side   `json:"side"`
	Computer bool   `json:"computer"`
	// TimeUsed is in tenths of a second.
	TimeUsed int `json:"timeUsed"`
}

type Players struct {
	Red   ClientPlayer `json:"red"`
	Black ClientPlayer `json:"black"`
}

func (p *Players) seat(side Side) *ClientPlayer {
	if side == Black {
		return &p.Black
	}
	return &p.Red
}

// MoveChooser picks a move for side; ok is false when it has none.
type MoveChooser interface {
	ChooseMove(b Board, side Side) (m Move, ok bool)
}
