package engine

import (
	"testing"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]Algorithm{
		"":           Minimax,
		"minimax":    Minimax,
		"AlphaBeta":  AlphaBeta,
		" parallel ": Parallel,
	} {
		alg, err := ParseAlgorithm(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, alg, in)
	}

	_, err := ParseAlgorithm("mcts")
	assert.Error(t, err)
}

func TestNewAIPlayerDefaults(t *testing.T) {
	p := NewAIPlayer(0, "")
	assert.Equal(t, DefaultDepth, p.Depth)
	assert.Equal(t, Minimax, p.Algorithm)
}

func TestAIPlayerChooseMove(t *testing.T) {
	for _, alg := range []Algorithm{Minimax, AlphaBeta, Parallel} {
		p := NewAIPlayer(3, alg)

		m, ok := p.ChooseMove(model.InitialBoard(), model.Black)
		require.True(t, ok, alg)
		assert.Contains(t, model.LegalMoves(model.InitialBoard(), model.Black), m, alg)

		m, ok = p.ChooseMove(jumpBoard(), model.Red)
		require.True(t, ok, alg)
		assert.Equal(t, mv(3, 4, 1, 6), m, alg)
	}
}

func TestAIPlayerNoMoves(t *testing.T) {
	var b model.Board
	b[0][1] = model.RedKing

	_, ok := NewAIPlayer(3, Minimax).ChooseMove(b, model.Black)
	assert.False(t, ok)
}

func TestAIPlayerIsMoveChooser(t *testing.T) {
	var _ model.MoveChooser = NewAIPlayer(1, Minimax)
}
