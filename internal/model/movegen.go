package model

type direction struct {
	dr, dc int
}

var kingDirs = []direction{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

var manDirs = [...][]direction{
	Red:   {{-1, -1}, {-1, 1}},
	Black: {{1, -1}, {1, 1}},
}

func directionsFor(cell Cell, side Side) []direction {
	if cell.IsKing() {
		return kingDirs
	}
	return manDirs[side]
}

// LegalMoves lists every step and single jump available to side, row-major
// by origin square and then in direction order.
func LegalMoves(b Board, side Side) []Move {
	moves := []Move{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			from := Position{Row: row, Col: col}
			cell := b.At(from)
			if !cell.belongsTo(side) {
				continue
			}
			moves = appendPieceMoves(moves, b, from, cell, side)
		}
	}
	return moves
}

// LegalMovesFrom lists the moves of the piece on from, if any.
func LegalMovesFrom(b Board, from Position) []Move {
	if !from.Valid() {
		return nil
	}
	cell := b.At(from)
	side, ok := cell.Side()
	if !ok {
		return nil
	}
	return appendPieceMoves(nil, b, from, cell, side)
}

func appendPieceMoves(moves []Move, b Board, from Position, cell Cell, side Side) []Move {
	for _, dir := range directionsFor(cell, side) {
		next := from.offset(dir.dr, dir.dc)
		if !next.Valid() {
			continue
		}
		target := b.At(next)
		if target == Empty {
			moves = append(moves, Move{From: from, To: next})
			continue
		}
		if !target.belongsTo(side.Opponent()) {
			continue
		}
		landing := next.offset(dir.dr, dir.dc)
		if landing.Valid() && b.At(landing) == Empty {
			moves = append(moves, Move{From: from, To: landing})
		}
	}
	return moves
}

// IsLegal reports whether m is one of side's legal moves on b.
func IsLegal(b Board, side Side, m Move) bool {
	if !m.From.Valid() || !m.To.Valid() || !b.At(m.From).belongsTo(side) {
		return false
	}
	for _, legal := range LegalMovesFrom(b, m.From) {
		if legal == m {
			return true
		}
	}
	return false
}
