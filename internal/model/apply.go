package model

import (
	"errors"
	"fmt"
)

var ErrInvalidMove = errors.New("invalid move")

// Apply returns the board after m. The input board is not modified. m must
// come from LegalMoves; it is not validated here.
func Apply(b Board, m Move) Board {
	piece := b.At(m.From)
	b[m.From.Row][m.From.Col] = Empty
	if m.IsCapture() {
		mid := m.Midpoint()
		b[mid.Row][mid.Col] = Empty
	}
	if side, ok := piece.Side(); ok && m.To.Row == side.FarRank() {
		piece = piece.Crowned()
	}
	b[m.To.Row][m.To.Col] = piece
	return b
}

// ApplyChecked is Apply for callers that cannot vouch for m.
func ApplyChecked(b Board, m Move) (Board, error) {
	if !m.From.Valid() {
		return b, fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	side, ok := b.At(m.From).Side()
	if !ok || !IsLegal(b, side, m) {
		return b, fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	return Apply(b, m), nil
}
