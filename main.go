// Command strike runs the Strike tactics engine.
//
// Subcommands:
//  1. "play" (default) – hot-seat text game in the terminal
//  2. "mcp" – serves the game as MCP tools over stdio
//  3. "board" – prints a generated terrain board
//  4. "validate" – checks scenario files
//  5. "init" – writes the built-in scenario into the config directory
//
// Flags and STRIKE_* environment variables (optionally from a .env file)
// control the scenario directory and log level.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/strike-tactics/game/config"
	"github.com/wricardo/strike-tactics/game/engine"
	"github.com/wricardo/strike-tactics/game/service"
	"github.com/wricardo/strike-tactics/game/session"
	"github.com/wricardo/strike-tactics/transport/mcp"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Strike Tactics"
)

func main() {
	// A missing .env is fine; anything else is reported once logging is up
	envErr := godotenv.Load()
	if envErr != nil && errors.Is(envErr, os.ErrNotExist) {
		envErr = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(envErr).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every subcommand shares
type app struct {
	log    zerolog.Logger
	envErr error
}

func newApp(envErr error) *cli.Command {
	a := &app{log: zerolog.Nop(), envErr: envErr}

	return &cli.Command{
		Name:    "strike",
		Usage:   "turn-based tactics on an 8x8 board",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing scenario files",
				Sources: cli.EnvVars("STRIKE_CONFIG_DIR", "CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "trace, debug, info, warn or error",
				Sources: cli.EnvVars("STRIKE_LOG_LEVEL"),
			},
		},
		Before: a.setupLogging,
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play a hot-seat game in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "scenario",
						Aliases: []string{"s"},
						Usage:   "scenario ID (default scenario when empty)",
						Sources: cli.EnvVars("STRIKE_SCENARIO"),
					},
				},
				Action: a.play,
			},
			{
				Name:  "mcp",
				Usage: "serve the game as MCP tools over stdio",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "session-ttl",
						Value:   24 * time.Hour,
						Usage:   "drop sessions idle for longer than this (0 keeps them forever)",
						Sources: cli.EnvVars("STRIKE_SESSION_TTL"),
					},
				},
				Action: a.serveMCP,
			},
			{
				Name:  "board",
				Usage: "print a generated terrain board",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "terrain seed (0 picks one from the clock)",
					},
				},
				Action: a.printBoard,
			},
			{
				Name:      "validate",
				Usage:     "validate scenario files",
				ArgsUsage: "[file...]",
				Action:    a.validate,
			},
			{
				Name:  "init",
				Usage: "write the built-in scenario to the config directory",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite an existing file",
					},
				},
				Action: a.initScenario,
			},
		},
		DefaultCommand: "play",
	}
}

// setupLogging builds the console logger on stderr; stdout belongs to the
// game or the MCP protocol
func (a *app) setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level, err := zerolog.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return ctx, fmt.Errorf("invalid log level %q: %w", cmd.String("log-level"), err)
	}

	out := cmd.Root().ErrWriter
	if out == nil {
		out = os.Stderr
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	if a.envErr != nil {
		a.log.Warn().Err(a.envErr).Msg("Error loading .env file")
	}
	return ctx, nil
}

// initializeServices wires the scenario manager, session manager and game service
func (a *app) initializeServices(configDir string) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManagerWithLogger(a.log)
	gameService := service.NewGameServiceWithLogger(sessionManager, configManager, a.log)

	a.log.Debug().Str("config_dir", configDir).Str("default", configManager.GetDefault().Name).Msg("services ready")
	return gameService, sessionManager, nil
}

func (a *app) play(ctx context.Context, cmd *cli.Command) error {
	gameService, _, err := a.initializeServices(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	root := cmd.Root()
	return newREPL(gameService, root.Reader, root.Writer).Run(ctx, cmd.String("scenario"))
}

func (a *app) serveMCP(ctx context.Context, cmd *cli.Command) error {
	gameService, sessionManager, err := a.initializeServices(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	if ttl := cmd.Duration("session-ttl"); ttl > 0 {
		go a.sessionCleanupRoutine(ctx, sessionManager, ttl)
	}

	a.log.Info().Str("version", Version).Msg("MCP stdio server ready")
	if err := mcp.NewServer(gameService).ServeStdio(); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// sessionCleanupRoutine drops idle sessions until ctx is done
func (a *app) sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			manager.CleanupExpiredSessions(ttl)
		}
	}
}

func (a *app) printBoard(ctx context.Context, cmd *cli.Command) error {
	board := engine.NewBoard(engine.NewRandSource(cmd.Int64("seed")))
	w := cmd.Root().Writer

	fmt.Fprint(w, board.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "# chasm  ~ marsh  . grassland  f forest  h hill  ^ mountain")
	if !board.IsSymmetric() {
		return errors.New("generated board is not point-symmetric")
	}
	return nil
}

func (a *app) validate(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		dir := cmd.String("config-dir")
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to read config directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			for _, ext := range config.Extensions {
				if filepath.Ext(entry.Name()) == ext {
					files = append(files, filepath.Join(dir, entry.Name()))
				}
			}
		}
	}

	if len(files) == 0 {
		return errors.New("no scenario files found")
	}

	return validateFiles(cmd.Root().Writer, files)
}

// validateFiles reports every file and fails when any of them is invalid
func validateFiles(w io.Writer, files []string) error {
	invalid := 0
	for _, file := range files {
		scenario, err := config.ReadScenario(file)
		if err != nil {
			invalid++
			fmt.Fprintf(w, "✗ %s\n  %v\n", filepath.Base(file), err)
			continue
		}

		units := 0
		for _, side := range scenario.Sides {
			units += len(side.Units)
		}
		fmt.Fprintf(w, "✓ %s (%s, %d units)\n", filepath.Base(file), scenario.Name, units)
	}

	fmt.Fprintf(w, "\n%d/%d scenarios valid\n", len(files)-invalid, len(files))
	if invalid > 0 {
		return fmt.Errorf("%d invalid scenario file(s)", invalid)
	}
	return nil
}

func (a *app) initScenario(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("config-dir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	scenario := engine.DefaultScenario()
	path := filepath.Join(dir, scenario.Name+".json")
	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}
	if err := manager.SaveScenario(scenario.Name, scenario); err != nil {
		return err
	}

	a.log.Info().Str("path", path).Msg("scenario written")
	return nil
}
