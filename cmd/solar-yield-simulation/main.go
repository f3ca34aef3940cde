package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	httpapi "github.com/i474232898/solar-yield-simulation/internal/api/http"
	"github.com/i474232898/solar-yield-simulation/internal/config"
	"github.com/i474232898/solar-yield-simulation/internal/locations"
	"github.com/i474232898/solar-yield-simulation/internal/scheduler"
	"github.com/i474232898/solar-yield-simulation/internal/solar"
	"github.com/i474232898/solar-yield-simulation/internal/source"
	"github.com/i474232898/solar-yield-simulation/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "solar-yield-simulation",
		Usage: "synthetic solar yield data source with a database-shaped API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "console",
				Usage:   "log format (console, json)",
				EnvVars: []string{"LOG_FORMAT"},
			},
		},
		Before: func(c *cli.Context) error {
			return setupLogging(c.String("log-level"), c.String("log-format"))
		},
		Commands: []*cli.Command{
			serveCommand(),
			exportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API with a live sampling feed",
		Action: func(_ *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			curve := solar.NewCurve(solar.WithScaleFactor(cfg.ScaleFactor))
			db := source.NewDummyDatabase(source.WithCurve(curve))

			// In-memory store with configured retention.
			memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

			service := solar.NewService(db, memStore, curve)

			// Location registry; geocoding only when a key is configured.
			var regOpts []locations.Option
			if cfg.GeocoderAPIKey != "" {
				regOpts = append(regOpts, locations.WithGeocoding(cfg.GeocoderAPIKey))
			}
			registry := locations.NewRegistry(regOpts...)
			for _, name := range cfg.Locations {
				loc := registry.Register(name)
				log.Info().Str("location", loc.Name).Str("id", loc.ID.String()).Msg("registered location")
			}

			// Scheduler that periodically samples and stores live yields.
			sched := scheduler.New(cfg.Locations, cfg.SampleInterval, service)
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer sched.Stop()

			// Basic app configuration
			app := fiber.New(fiber.Config{
				AppName:               "solar-yield-simulation",
				DisableStartupMessage: true,
				ReadTimeout:           10 * time.Second,
				WriteTimeout:          10 * time.Second,
				ErrorHandler: func(c *fiber.Ctx, err error) error {
					// Centralized error response
					code := fiber.StatusInternalServerError
					if e, ok := err.(*fiber.Error); ok {
						code = e.Code
					}
					return c.Status(code).JSON(fiber.Map{
						"error":   true,
						"message": err.Error(),
					})
				},
			})

			// Global middleware
			app.Use(fiberlogger.New())
			app.Use(recover.New())

			// Basic health endpoint
			app.Get("/health", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{
					"status":  "ok",
					"service": "solar-yield-simulation",
				})
			})

			// API routes.
			httpapi.RegisterRoutes(app, service, registry)

			go func() {
				if err := app.Listen(":" + cfg.Port); err != nil {
					log.Error().Err(err).Msg("fiber server stopped")
				}
			}()
			log.Info().Str("port", cfg.Port).Msg("serving")

			// Wait for termination signal
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("error during shutdown")
			}
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "generate one yield series and write it to stdout or a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "location",
				Usage:    "location name to generate the series for",
				Required: true,
				EnvVars:  []string{"SOLAR_LOCATION"},
			},
			&cli.StringFlag{
				Name:  "kind",
				Value: "predicted",
				Usage: "series kind (predicted, actual)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "json",
				Usage: "output format (json, csv)",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "output file (default: stdout)",
			},
			&cli.Float64Flag{
				Name:    "scale-factor",
				Value:   solar.DefaultScaleFactor,
				Usage:   "scale factor for the yield curve",
				EnvVars: []string{"SOLAR_SCALE_FACTOR"},
			},
		},
		Action: func(c *cli.Context) error {
			curve := solar.NewCurve(solar.WithScaleFactor(c.Float64("scale-factor")))
			db := source.NewDummyDatabase(source.WithCurve(curve))

			var (
				yields []solar.PredictedYield
				err    error
			)
			switch kind := c.String("kind"); kind {
			case "predicted":
				yields, err = db.GetPredictedSolarYieldsForLocation(c.Context, c.String("location"))
			case "actual":
				yields, err = db.GetActualSolarYieldsForLocation(c.Context, c.String("location"))
			default:
				return fmt.Errorf("unknown series kind %q", kind)
			}
			if err != nil {
				return err
			}

			var out io.Writer = os.Stdout
			if path := c.String("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			switch format := c.String("format"); format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(yields)
			case "csv":
				return writeCSV(out, yields)
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
		},
	}
}

func writeCSV(out io.Writer, yields []solar.PredictedYield) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"timeUnix", "yieldKW", "errLow", "errHigh"}); err != nil {
		return err
	}
	for _, y := range yields {
		record := []string{
			strconv.FormatInt(y.TimeUnix, 10),
			strconv.Itoa(y.YieldKW),
			strconv.Itoa(y.ErrLow),
			strconv.Itoa(y.ErrHigh),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
