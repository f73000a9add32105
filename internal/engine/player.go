package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/rs/zerolog/log"
)

const DefaultDepth = 3

type Algorithm string

const (
	Minimax   Algorithm = "minimax"
	AlphaBeta Algorithm = "alphabeta"
	Parallel  Algorithm = "parallel"
)

func ParseAlgorithm(s string) (Algorithm, error) {
	switch alg := Algorithm(strings.ToLower(strings.TrimSpace(s))); alg {
	case Minimax, AlphaBeta, Parallel:
		return alg, nil
	case "":
		return Minimax, nil
	}
	return "", fmt.Errorf("unknown search algorithm %q", s)
}

type Result struct {
	Score   int
	Move    model.Move
	Found   bool
	Nodes   int
	Elapsed time.Duration
}

// Run searches b with the given algorithm and reports node count and timing.
func Run(alg Algorithm, b model.Board, depth int, maximizing bool) Result {
	start := time.Now()
	var res Result
	switch alg {
	case AlphaBeta:
		var s searcher
		res.Score, res.Move, res.Found = s.alphaBeta(b, depth, -infinity, infinity, maximizing)
		res.Nodes = s.nodes
	case Parallel:
		res.Score, res.Move, res.Found, res.Nodes = searchParallel(b, depth, maximizing)
	default:
		var s searcher
		res.Score, res.Move, res.Found = s.minimax(b, depth, maximizing)
		res.Nodes = s.nodes
	}
	res.Elapsed = time.Since(start)
	return res
}

// AIPlayer picks moves for the computer side.
type AIPlayer struct {
	Depth     int
	Algorithm Algorithm
}

func NewAIPlayer(depth int, alg Algorithm) *AIPlayer {
	if depth < 1 {
		depth = DefaultDepth
	}
	if alg == "" {
		alg = Minimax
	}
	return &AIPlayer{Depth: depth, Algorithm: alg}
}

func (p *AIPlayer) ChooseMove(b model.Board, side model.Side) (model.Move, bool) {
	res := Run(p.Algorithm, b, p.Depth, side == model.Red)
	log.Debug().
		Str("side", side.String()).
		Str("algorithm", string(p.Algorithm)).
		Int("depth", p.Depth).
		Int("score", res.Score).
		Int("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Bool("found", res.Found).
		Msg("computer searched")
	return res.Move, res.Found
}
