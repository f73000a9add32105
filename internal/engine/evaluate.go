package engine

import "github.com/benbeisheim/checkers-backend/internal/model"

var material = [...]int{
	model.Empty:     0,
	model.RedMan:    1,
	model.RedKing:   2,
	model.BlackMan:  -1,
	model.BlackKing: -2,
}

// Evaluate scores material only. Positive favours Red, negative favours Black.
func Evaluate(b model.Board) int {
	score := 0
	for row := range b {
		for _, cell := range b[row] {
			score += material[cell]
		}
	}
	return score
}
