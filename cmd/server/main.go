package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/checkers-backend/internal/config"
	"github.com/benbeisheim/checkers-backend/internal/controller"
	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/logging"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	app := &cli.App{
		Name:  "checkers-server",
		Usage: "Play checkers against the computer over HTTP and websockets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "path of the .env file",
				Value: ".env",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "listen port, overrides PORT",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cCtx *cli.Context) error {
	cfg, err := config.Load(cCtx.String("env"))
	if err != nil {
		return err
	}
	if cCtx.IsSet("port") {
		cfg.Port = cCtx.Int("port")
	}
	logging.Configure(cfg.LogLevel, cfg.LogPretty)

	// Initialize services
	gameManager := service.NewGameManager(func() model.MoveChooser {
		return engine.NewAIPlayer(cfg.AIDepth, cfg.AIAlgorithm)
	})
	gameService := service.NewGameService(gameManager)
	app := controller.NewApp(gameService, cfg.AllowedOrigins)

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr()).Int("depth", cfg.AIDepth).Str("algorithm", string(cfg.AIAlgorithm)).Msg("server listening")
		return app.Listen(cfg.Addr())
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		return app.Shutdown()
	})

	return g.Wait()
}
