package engine

import (
	"runtime"
	"sync/atomic"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"golang.org/x/sync/errgroup"
)

const infinity = 1 << 30

// SideToMove maps the search polarity to a side: Red maximises, Black minimises.
func SideToMove(maximizing bool) model.Side {
	if maximizing {
		return model.Red
	}
	return model.Black
}

// Search is fixed-depth minimax without pruning. It returns the best score for
// the side to move and the first move reaching it; ok is false when the
// position is a leaf (depth exhausted or no legal moves).
func Search(b model.Board, depth int, maximizing bool) (score int, best model.Move, ok bool) {
	var s searcher
	return s.minimax(b, depth, maximizing)
}

// SearchAlphaBeta returns the same score and move as Search while skipping
// subtrees that cannot change the result.
func SearchAlphaBeta(b model.Board, depth int, maximizing bool) (score int, best model.Move, ok bool) {
	var s searcher
	return s.alphaBeta(b, depth, -infinity, infinity, maximizing)
}

// SearchParallel scores the root moves concurrently and picks among them in
// generation order, so it agrees with Search.
func SearchParallel(b model.Board, depth int, maximizing bool) (score int, best model.Move, ok bool) {
	score, best, ok, _ = searchParallel(b, depth, maximizing)
	return score, best, ok
}

type searcher struct {
	nodes int
}

func better(score, best int, maximizing bool) bool {
	if maximizing {
		return score > best
	}
	return score < best
}

func (s *searcher) minimax(b model.Board, depth int, maximizing bool) (int, model.Move, bool) {
	s.nodes++
	if depth <= 0 {
		return Evaluate(b), model.Move{}, false
	}
	moves := model.LegalMoves(b, SideToMove(maximizing))
	if len(moves) == 0 {
		return Evaluate(b), model.Move{}, false
	}

	var bestScore int
	var bestMove model.Move
	for i, m := range moves {
		score, _, _ := s.minimax(model.Apply(b, m), depth-1, !maximizing)
		if i == 0 || better(score, bestScore, maximizing) {
			bestScore, bestMove = score, m
		}
	}
	return bestScore, bestMove, true
}

// alphaBeta is fail-soft: a result outside (alpha, beta) is a bound on the
// true value on the same side of the window.
func (s *searcher) alphaBeta(b model.Board, depth, alpha, beta int, maximizing bool) (int, model.Move, bool) {
	s.nodes++
	if depth <= 0 {
		return Evaluate(b), model.Move{}, false
	}
	moves := model.LegalMoves(b, SideToMove(maximizing))
	if len(moves) == 0 {
		return Evaluate(b), model.Move{}, false
	}

	var bestScore int
	var bestMove model.Move
	for i, m := range moves {
		score, _, _ := s.alphaBeta(model.Apply(b, m), depth-1, alpha, beta, !maximizing)
		if i == 0 || better(score, bestScore, maximizing) {
			bestScore, bestMove = score, m
		}
		if maximizing {
			alpha = max(alpha, bestScore)
		} else {
			beta = min(beta, bestScore)
		}
		if alpha >= beta {
			break
		}
	}
	return bestScore, bestMove, true
}

func searchParallel(b model.Board, depth int, maximizing bool) (int, model.Move, bool, int) {
	if depth <= 0 {
		return Evaluate(b), model.Move{}, false, 1
	}
	moves := model.LegalMoves(b, SideToMove(maximizing))
	if len(moves) == 0 {
		return Evaluate(b), model.Move{}, false, 1
	}

	scores := make([]int, len(moves))
	var nodes atomic.Int64
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range moves {
		i := i
		child := model.Apply(b, m)
		g.Go(func() error {
			var s searcher
			scores[i], _, _ = s.alphaBeta(child, depth-1, -infinity, infinity, !maximizing)
			nodes.Add(int64(s.nodes))
			return nil
		})
	}
	// Workers never fail.
	_ = g.Wait()

	bestScore, bestMove := scores[0], moves[0]
	for i := 1; i < len(moves); i++ {
		if better(scores[i], bestScore, maximizing) {
			bestScore, bestMove = scores[i], moves[i]
		}
	}
	return bestScore, bestMove, true, int(nodes.Load()) + 1
}
