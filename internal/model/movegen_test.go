package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mv(fromRow, fromCol, toRow, toCol int) Move {
	return Move{From: Position{Row: fromRow, Col: fromCol}, To: Position{Row: toRow, Col: toCol}}
}

func TestLegalMovesInitialRed(t *testing.T) {
	moves := LegalMoves(InitialBoard(), Red)
	assert.Equal(t, []Move{
		mv(5, 0, 4, 1),
		mv(5, 2, 4, 1),
		mv(5, 2, 4, 3),
		mv(5, 4, 4, 3),
		mv(5, 4, 4, 5),
		mv(5, 6, 4, 5),
		mv(5, 6, 4, 7),
	}, moves)
}

func TestLegalMovesInitialBlack(t *testing.T) {
	moves := LegalMoves(InitialBoard(), Black)
	assert.Equal(t, []Move{
		mv(2, 1, 3, 0),
		mv(2, 1, 3, 2),
		mv(2, 3, 3, 2),
		mv(2, 3, 3, 4),
		mv(2, 5, 3, 4),
		mv(2, 5, 3, 6),
		mv(2, 7, 3, 6),
	}, moves)
}

func TestLegalMovesCapture(t *testing.T) {
	b := boardWith(map[Position]Cell{
		{Row: 3, Col: 4}: RedMan,
		{Row: 2, Col: 5}: BlackMan,
	})

	red := LegalMoves(b, Red)
	assert.Equal(t, []Move{mv(3, 4, 2, 3), mv(3, 4, 1, 6)}, red)
	assert.Contains(t, red, mv(3, 4, 1, 6))

	black := LegalMoves(b, Black)
	assert.Equal(t, []Move{mv(2, 5, 4, 3), mv(2, 5, 3, 6)}, black)
}

func TestLegalMovesKingAllDirections(t *testing.T) {
	b := boardWith(map[Position]Cell{{Row: 4, Col: 3}: RedKing})
	assert.Equal(t, []Move{
		mv(4, 3, 3, 2),
		mv(4, 3, 3, 4),
		mv(4, 3, 5, 2),
		mv(4, 3, 5, 4),
	}, LegalMoves(b, Red))

	b = boardWith(map[Position]Cell{
		{Row: 3, Col: 2}: BlackKing,
		{Row: 4, Col: 3}: RedMan,
		{Row: 2, Col: 1}: RedMan,
	})
	assert.Equal(t, []Move{
		mv(3, 2, 1, 0),
		mv(3, 2, 2, 3),
		mv(3, 2, 4, 1),
		mv(3, 2, 5, 4),
	}, LegalMoves(b, Black))
}

func TestLegalMovesBlocked(t *testing.T) {
	// The red man's forward squares are taken; one jump lands off the board,
	// the other lands on an occupied square.
	b := boardWith(map[Position]Cell{
		{Row: 4, Col: 1}: RedMan,
		{Row: 3, Col: 0}: BlackMan,
		{Row: 3, Col: 2}: BlackMan,
		{Row: 2, Col: 3}: BlackMan,
	})
	assert.Empty(t, LegalMoves(b, Red))
	assert.NotEmpty(t, LegalMoves(b, Black))
}

func TestLegalMovesNoJumpOverOwnPiece(t *testing.T) {
	b := boardWith(map[Position]Cell{
		{Row: 4, Col: 3}: RedMan,
		{Row: 3, Col: 4}: RedMan,
	})
	assert.Equal(t, []Move{mv(3, 4, 2, 3), mv(3, 4, 2, 5), mv(4, 3, 3, 2)}, LegalMoves(b, Red))
}

func TestLegalMovesFrom(t *testing.T) {
	b := InitialBoard()
	assert.Equal(t, []Move{mv(5, 2, 4, 1), mv(5, 2, 4, 3)}, LegalMovesFrom(b, Position{Row: 5, Col: 2}))
	assert.Empty(t, LegalMovesFrom(b, Position{Row: 6, Col: 1}))
	assert.Empty(t, LegalMovesFrom(b, Position{Row: 4, Col: 1}))
	assert.Empty(t, LegalMovesFrom(b, Position{Row: 9, Col: 1}))
}

func TestIsLegal(t *testing.T) {
	b := InitialBoard()
	assert.True(t, IsLegal(b, Red, mv(5, 0, 4, 1)))
	assert.False(t, IsLegal(b, Black, mv(5, 0, 4, 1)))
	assert.False(t, IsLegal(b, Red, mv(5, 0, 3, 2)))
	assert.False(t, IsLegal(b, Red, mv(5, 0, 6, 1)))
	assert.False(t, IsLegal(b, Red, mv(-1, 0, 4, 1)))
	assert.False(t, IsLegal(b, Red, mv(5, 0, 4, -1)))
}

// TestRandomPlayouts checks generator and applicator invariants along
// random games.
func TestRandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 50; game++ {
		b := InitialBoard()
		side := Red
		for ply := 0; ply < 200; ply++ {
			moves := LegalMoves(b, side)
			if len(moves) == 0 {
				break
			}
			for _, m := range moves {
				require.True(t, b.At(m.From).belongsTo(side), "origin of %v", m)
				require.Equal(t, Empty, b.At(m.To), "destination of %v", m)
				require.True(t, m.To.Dark(), "destination of %v", m)
			}

			m := moves[rng.Intn(len(moves))]
			before := b
			piece := b.At(m.From)
			next := Apply(b, m)

			require.Equal(t, before, b, "Apply must not modify its input")
			require.Equal(t, Empty, next.At(m.From))
			if m.To.Row == side.FarRank() {
				require.Equal(t, piece.Crowned(), next.At(m.To))
			} else {
				require.Equal(t, piece, next.At(m.To))
			}
			require.Equal(t, b.Count(side), next.Count(side))
			if m.IsCapture() {
				require.Equal(t, Empty, next.At(m.Midpoint()))
				require.Equal(t, b.Count(side.Opponent())-1, next.Count(side.Opponent()))
			} else {
				require.Equal(t, b.Count(side.Opponent()), next.Count(side.Opponent()))
			}

			b = next
			side = side.Opponent()
			if !b.SideExists(side) {
				break
			}
		}
	}
}
