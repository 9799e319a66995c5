package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/mailprobe/mailprobe/internal/api"
	"github.com/mailprobe/mailprobe/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		window      int64
		rateLimit   float64
		rateBurst   int64
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the mail-management API",
		Flags: append(logFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.Int64Flag{
				Name:        "window",
				Usage:       "default OSB window size for /api/features",
				Value:       5,
				Destination: &window,
			},
			&cli.FloatFlag{
				Name:        "rate-limit",
				Usage:       "sustained validate requests per second",
				Value:       50,
				Destination: &rateLimit,
			},
			&cli.Int64Flag{
				Name:        "rate-burst",
				Usage:       "validate request burst allowance",
				Value:       100,
				Destination: &rateBurst,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyServeConfig(cmd, LoadConfig(), &addr, &window, &rateLimit, &rateBurst)
			log := newLogger()
			ctx = logger.WithContext(ctx, log)

			server := api.NewServer(api.NewBlobStore(), api.Config{
				WindowSize: int(window),
				RateLimit:  rateLimit,
				RateBurst:  int(rateBurst),
				Log:        log,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting server", "address", addr, "window", window)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
