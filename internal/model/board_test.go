package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardWith(pieces map[Position]Cell) Board {
	var b Board
	for pos, cell := range pieces {
		b[pos.Row][pos.Col] = cell
	}
	return b
}

func TestInitialBoard(t *testing.T) {
	b := InitialBoard()

	redMen, blackMen := 0, 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pos := Position{Row: row, Col: col}
			cell := b.At(pos)
			if !pos.Dark() {
				assert.Equal(t, Empty, cell, "light square %v", pos)
				continue
			}
			switch {
			case row <= 2:
				assert.Equal(t, BlackMan, cell, "square %v", pos)
				blackMen++
			case row >= 5:
				assert.Equal(t, RedMan, cell, "square %v", pos)
				redMen++
			default:
				assert.Equal(t, Empty, cell, "square %v", pos)
			}
		}
	}
	assert.Equal(t, 12, redMen)
	assert.Equal(t, 12, blackMen)
	assert.Equal(t, 12, b.Count(Red))
	assert.Equal(t, 12, b.Count(Black))
	assert.True(t, b.SideExists(Red))
	assert.True(t, b.SideExists(Black))
}

func TestSideExists(t *testing.T) {
	b := boardWith(map[Position]Cell{{Row: 3, Col: 4}: RedKing})
	assert.True(t, b.SideExists(Red))
	assert.False(t, b.SideExists(Black))

	var empty Board
	assert.False(t, empty.SideExists(Red))
	assert.False(t, empty.SideExists(Black))
}

func TestCellSide(t *testing.T) {
	tests := []struct {
		cell   Cell
		side   Side
		ok     bool
		king   bool
		symbol string
	}{
		{Empty, Red, false, false, "."},
		{RedMan, Red, true, false, "r"},
		{RedKing, Red, true, true, "R"},
		{BlackMan, Black, true, false, "b"},
		{BlackKing, Black, true, true, "B"},
	}
	for _, tt := range tests {
		side, ok := tt.cell.Side()
		assert.Equal(t, tt.ok, ok, tt.symbol)
		if ok {
			assert.Equal(t, tt.side, side, tt.symbol)
		}
		assert.Equal(t, tt.king, tt.cell.IsKing(), tt.symbol)
		assert.Equal(t, tt.symbol, tt.cell.String())
	}
	assert.Equal(t, RedKing, RedMan.Crowned())
	assert.Equal(t, BlackKing, BlackMan.Crowned())
	assert.Equal(t, RedKing, RedKing.Crowned())
	assert.Equal(t, Empty, Empty.Crowned())
}

func TestParsePosition(t *testing.T) {
	pos, err := ParsePosition("F2")
	require.NoError(t, err)
	assert.Equal(t, Position{Row: 5, Col: 2}, pos)

	pos, err = ParsePosition(" a0 ")
	require.NoError(t, err)
	assert.Equal(t, Position{Row: 0, Col: 0}, pos)

	pos, err = ParsePosition("H7")
	require.NoError(t, err)
	assert.Equal(t, Position{Row: 7, Col: 7}, pos)
	assert.Equal(t, "H7", pos.String())

	for _, bad := range []string{"", "F", "I1", "A8", "22", "F22", "é1"} {
		_, err := ParsePosition(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseMove(t *testing.T) {
	want := Move{From: Position{Row: 5, Col: 2}, To: Position{Row: 4, Col: 3}}
	for _, s := range []string{"F2 E3", "F2-E3", "f2e3", " F2, E3 "} {
		m, err := ParseMove(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, m, s)
	}
	assert.Equal(t, "F2-E3", want.String())

	for _, bad := range []string{"", "F2", "F2 E", "F2 Z3", "F2 E3 D4"} {
		_, err := ParseMove(bad)
		assert.Error(t, err, bad)
	}
}

func TestMoveCapture(t *testing.T) {
	step := Move{From: Position{Row: 3, Col: 4}, To: Position{Row: 2, Col: 5}}
	jump := Move{From: Position{Row: 3, Col: 4}, To: Position{Row: 1, Col: 6}}
	assert.False(t, step.IsCapture())
	assert.True(t, jump.IsCapture())
	assert.Equal(t, Position{Row: 2, Col: 5}, jump.Midpoint())
}

func TestBoardStringRoundTrip(t *testing.T) {
	b := InitialBoard()
	b[4][3] = RedKing
	b[3][0] = BlackKing

	parsed, err := ParseBoard(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, parsed)

	assert.Equal(t, "  0 1 2 3 4 5 6 7\nA . b . b . b . b\n", b.String()[:36])
}

func TestParseBoardWithoutLabels(t *testing.T) {
	b, err := ParseBoard(`
		........
		........
		.....b..
		....r...
		........
		........
		........
		........
	`)
	require.NoError(t, err)
	assert.Equal(t, boardWith(map[Position]Cell{
		{Row: 2, Col: 5}: BlackMan,
		{Row: 3, Col: 4}: RedMan,
	}), b)
}

func TestParseBoardErrors(t *testing.T) {
	_, err := ParseBoard("........\n")
	assert.Error(t, err)

	light := "r.......\n" + "........\n" + "........\n" + "........\n" +
		"........\n" + "........\n" + "........\n" + "........\n"
	_, err = ParseBoard(light)
	assert.ErrorContains(t, err, "light square")

	badSymbol := ".x......\n" + "........\n" + "........\n" + "........\n" +
		"........\n" + "........\n" + "........\n" + "........\n"
	_, err = ParseBoard(badSymbol)
	assert.ErrorContains(t, err, "invalid cell")

	wrongLabels := strings.Replace(InitialBoard().String(), "\nA ", "\nZ ", 1)
	_, err = ParseBoard(wrongLabels)
	assert.ErrorContains(t, err, "unexpected label")

	// nine cells is not a labelled row
	nineCells := ".........\n" + strings.Repeat("........\n", 7)
	_, err = ParseBoard(nineCells)
	assert.ErrorContains(t, err, "unexpected label")

	lower, err := ParseBoard(strings.ToLower(InitialBoard().String()))
	require.NoError(t, err)
	assert.Equal(t, InitialBoard(), lower)
}

func TestJSONForms(t *testing.T) {
	m := Move{From: Position{Row: 5, Col: 0}, To: Position{Row: 4, Col: 1}}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"F0","to":"E1"}`, string(data))

	var back Move
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)

	data, err = json.Marshal(InitialBoard())
	require.NoError(t, err)
	var rows [][]string
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, BoardSize)
	assert.Equal(t, []string{".", "b", ".", "b", ".", "b", ".", "b"}, rows[0])
	assert.Equal(t, []string{"r", ".", "r", ".", "r", ".", "r", "."}, rows[7])

	data, err = json.Marshal(Black)
	require.NoError(t, err)
	assert.Equal(t, `"black"`, string(data))
}
