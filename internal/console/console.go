package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/checkers-backend/internal/model"
)

const PlayerID = "local"

// Play runs a terminal game: it draws the board, reads the human's moves
// from in and reports the computer's replies until someone wins, the input
// ends, or ctx is cancelled.
func Play(ctx context.Context, game *model.Game, in io.Reader, out io.Writer) error {
	if _, err := game.AddPlayer(PlayerID); err != nil {
		return err
	}
	human := game.HumanSide()
	lines := readLines(in)

	state := game.GetState()
	if state.LastMove != nil {
		fmt.Fprintf(out, "Computer played %v\n", *state.LastMove)
	}
	for {
		fmt.Fprintln(out)
		fmt.Fprint(out, state.Board.String())
		if state.Resolve != nil {
			printResult(out, human, *state.Resolve)
			return nil
		}

		fmt.Fprintf(out, "You are %s. Your move (e.g. F2 E3, or resign): ", human)
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nGame interrupted.")
			return nil
		case line, ok = <-lines:
			if !ok {
				fmt.Fprintln(out, "\nInput closed.")
				return nil
			}
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "resign", "quit", "q":
			if err := game.Resign(PlayerID); err != nil {
				return err
			}
			state = game.GetState()
			continue
		}

		move, err := model.ParseMove(line)
		if err != nil {
			fmt.Fprintf(out, "Invalid input: %v\n", err)
			continue
		}
		if err := game.MakeMove(PlayerID, move); err != nil {
			if errors.Is(err, model.ErrIllegalMove) {
				fmt.Fprintf(out, "Invalid move %v. Try again.\n", move)
				continue
			}
			return err
		}

		state = game.GetState()
		if state.LastMove != nil && *state.LastMove != move {
			fmt.Fprintf(out, "Computer played %v\n", *state.LastMove)
		}
	}
}

func printResult(out io.Writer, human model.Side, r model.Resolve) {
	who := "Computer"
	if r.Winner == human {
		who = "Human"
	}
	switch r.Reason {
	case model.ReasonBlocked:
		fmt.Fprintf(out, "%s wins! (%s has no legal moves)\n", who, r.Winner.Opponent())
	case model.ReasonResigned:
		fmt.Fprintf(out, "%s wins by resignation.\n", who)
	default:
		fmt.Fprintf(out, "%s wins!\n", who)
	}
}

func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}
