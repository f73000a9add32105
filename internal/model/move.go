package model

import (
	"fmt"
	"strings"
)

// Move is a single step or a single jump. A jump lands two squares away.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) IsCapture() bool {
	return abs(m.To.Row-m.From.Row) == 2
}

// Midpoint is the square a capture jumps over.
func (m Move) Midpoint() Position {
	return Position{Row: (m.From.Row + m.To.Row) / 2, Col: (m.From.Col + m.To.Col) / 2}
}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

// ParseMove reads two coordinates, e.g. "F2 E3", "F2-E3" or "f2e3".
// Only the format and bounds are checked, never legality.
func ParseMove(s string) (Move, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', ',':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if len(cleaned) != 4 {
		return Move{}, fmt.Errorf("invalid move %q: want two coordinates like F2 E3", s)
	}
	from, err := ParsePosition(cleaned[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParsePosition(cleaned[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
