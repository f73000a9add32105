package model

import (
	"errors"
	"fmt"
	"strings"
)

const BoardSize = 8

type Side uint8

const (
	Red Side = iota
	Black
)

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "red"
}

func (s Side) Opponent() Side {
	if s == Red {
		return Black
	}
	return Red
}

// Forward is the row delta a man of this side steps along.
func (s Side) Forward() int {
	if s == Red {
		return -1
	}
	return 1
}

// FarRank is the row on which a man of this side is crowned.
func (s Side) FarRank() int {
	if s == Red {
		return 0
	}
	return BoardSize - 1
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return Red, nil
	case "black", "b":
		return Black, nil
	}
	return Red, fmt.Errorf("unknown side %q", s)
}

type Cell uint8

const (
	Empty Cell = iota
	RedMan
	RedKing
	BlackMan
	BlackKing
)

var cellSymbols = [...]byte{
	Empty:     '.',
	RedMan:    'r',
	RedKing:   'R',
	BlackMan:  'b',
	BlackKing: 'B',
}

func (c Cell) Side() (Side, bool) {
	switch c {
	case RedMan, RedKing:
		return Red, true
	case BlackMan, BlackKing:
		return Black, true
	}
	return Red, false
}

func (c Cell) IsKing() bool {
	return c == RedKing || c == BlackKing
}

// Crowned returns the king variant of a man; kings and Empty are returned unchanged.
func (c Cell) Crowned() Cell {
	switch c {
	case RedMan:
		return RedKing
	case BlackMan:
		return BlackKing
	}
	return c
}

func (c Cell) belongsTo(side Side) bool {
	s, ok := c.Side()
	return ok && s == side
}

func (c Cell) String() string {
	if int(c) >= len(cellSymbols) {
		return "?"
	}
	return string(cellSymbols[c])
}

func (c Cell) MarshalText() ([]byte, error) {
	if int(c) >= len(cellSymbols) {
		return nil, fmt.Errorf("invalid cell %d", c)
	}
	return []byte{cellSymbols[c]}, nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("invalid cell %q", text)
	}
	cell, ok := cellFromSymbol(text[0])
	if !ok {
		return fmt.Errorf("invalid cell %q", text)
	}
	*c = cell
	return nil
}

func cellFromSymbol(b byte) (Cell, bool) {
	for cell, sym := range cellSymbols {
		if sym == b {
			return Cell(cell), true
		}
	}
	return Empty, false
}

type Position struct {
	Row int
	Col int
}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Dark reports whether p is a playable square.
func (p Position) Dark() bool {
	return (p.Row+p.Col)%2 == 1
}

func (p Position) offset(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// String renders p as row letter followed by column digit, e.g. "F2".
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'A'+p.Row, p.Col)
}

func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("position %v out of bounds", p)
	}
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}

// ParsePosition reads the "row-letter column-number" coordinate format.
// Row letters A-H map to rows 0-7.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Position{}, fmt.Errorf("invalid coordinate %q: want a row letter and a column number like F2", s)
	}
	row := int(strings.ToUpper(s[:1])[0]) - 'A'
	col := int(s[1]) - '0'
	pos := Position{Row: row, Col: col}
	if !pos.Valid() {
		return Position{}, fmt.Errorf("invalid coordinate %q: rows are A-H and columns 0-7", s)
	}
	return pos, nil
}

// Board is a plain value: assigning or passing it copies every cell.
type Board [BoardSize][BoardSize]Cell

func InitialBoard() Board {
	var b Board
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if !(Position{Row: row, Col: col}).Dark() {
				continue
			}
			switch {
			case row < 3:
				b[row][col] = BlackMan
			case row > 4:
				b[row][col] = RedMan
			}
		}
	}
	return b
}

func (b Board) At(p Position) Cell {
	return b[p.Row][p.Col]
}

func (b Board) SideExists(side Side) bool {
	for row := range b {
		for _, cell := range b[row] {
			if cell.belongsTo(side) {
				return true
			}
		}
	}
	return false
}

func (b Board) Count(side Side) int {
	n := 0
	for row := range b {
		for _, cell := range b[row] {
			if cell.belongsTo(side) {
				n++
			}
		}
	}
	return n
}

// String draws the board with a column header and row letters, the same
// form ParseBoard reads back.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString(" ")
	for col := 0; col < BoardSize; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteByte('\n')
	for row := 0; row < BoardSize; row++ {
		sb.WriteByte(byte('A' + row))
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(cellSymbols[b[row][col]])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var errBoardShape = errors.New("board must have 8 rows of 8 cells")

// ParseBoard reads a board drawn by Board.String. Header and row labels are
// optional, whitespace between cells is ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	row := 0
	for _, line := range strings.Split(s, "\n") {
		fields := strings.Join(strings.Fields(line), "")
		if fields == "" || fields == "01234567" {
			continue
		}
		if row >= BoardSize {
			return Board{}, errBoardShape
		}
		if len(fields) == BoardSize+1 {
			if label := byte('A' + row); fields[0] != label && fields[0] != label+'a'-'A' {
				return Board{}, fmt.Errorf("row %c: unexpected label %q", label, fields[0])
			}
			fields = fields[1:]
		}
		if len(fields) != BoardSize {
			return Board{}, errBoardShape
		}
		for col := 0; col < BoardSize; col++ {
			cell, ok := cellFromSymbol(fields[col])
			if !ok {
				return Board{}, fmt.Errorf("row %c: invalid cell %q", 'A'+row, fields[col])
			}
			if cell != Empty && !(Position{Row: row, Col: col}).Dark() {
				return Board{}, fmt.Errorf("piece on light square %v", Position{Row: row, Col: col})
			}
			b[row][col] = cell
		}
		row++
	}
	if row != BoardSize {
		return Board{}, errBoardShape
	}
	return b, nil
}
