package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/checkers-backend/internal/console"
	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/logging"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "checkers",
		Usage: "Play checkers against the computer in the terminal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Usage:   "search depth in plies",
				Value:   engine.DefaultDepth,
			},
			&cli.StringFlag{
				Name:    "side",
				Aliases: []string{"s"},
				Usage:   "your side, red or black (red moves first)",
				Value:   "red",
			},
			&cli.StringFlag{
				Name:  "algorithm",
				Usage: "minimax, alphabeta or parallel",
				Value: string(engine.Minimax),
			},
			&cli.StringFlag{
				Name:  "position",
				Usage: "file with a board drawn like the game prints it",
			},
			&cli.StringFlag{
				Name:  "to-move",
				Usage: "side to move in --position",
				Value: "red",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "zerolog level for diagnostics on stderr",
				Value: "warn",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cCtx *cli.Context) error {
	logging.Configure(cCtx.String("log-level"), true)

	human, err := model.ParseSide(cCtx.String("side"))
	if err != nil {
		return err
	}
	alg, err := engine.ParseAlgorithm(cCtx.String("algorithm"))
	if err != nil {
		return err
	}
	depth := cCtx.Int("depth")
	if depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", depth)
	}
	ai := engine.NewAIPlayer(depth, alg)

	board := model.InitialBoard()
	toMove := model.Red
	if path := cCtx.String("position"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if board, err = model.ParseBoard(string(data)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if toMove, err = model.ParseSide(cCtx.String("to-move")); err != nil {
			return err
		}
	}
	log.Debug().Str("side", human.String()).Int("depth", depth).Str("algorithm", string(alg)).Msg("starting game")

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	game := model.NewGameFromBoard("terminal", human, ai, board, toMove)
	return console.Play(ctx, game, os.Stdin, os.Stdout)
}
