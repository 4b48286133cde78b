// Command pwhl-sync mirrors PWHL data from the HockeyTech feed into Postgres.
//
// Usage:
//
//	pwhl-sync migrate
//	pwhl-sync update all
//	pwhl-sync update games --season 5
//	pwhl-sync update game-stats --game 137
//	pwhl-sync update players --player 32
//	pwhl-sync serve
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/coldrink/pwhl-data/internal/api"
	"github.com/coldrink/pwhl-data/internal/config"
	"github.com/coldrink/pwhl-data/internal/db"
	"github.com/coldrink/pwhl-data/internal/hockeytech"
	"github.com/coldrink/pwhl-data/internal/store"
	"github.com/coldrink/pwhl-data/internal/sync"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "pwhl-sync",
		Short: "PWHL data mirror CLI",
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(updateCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the mirror schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				if err := pool.Migrate(ctx); err != nil {
					return err
				}
				logger.Info("Schema migrated", "duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// update command
// --------------------------------------------------------------------------

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh mirror categories from the feed",
	}
	cmd.AddCommand(updateAllCmd())
	cmd.AddCommand(categoryCmd("basic", "Refresh leagues, conferences, divisions, seasons and teams",
		func(s *sync.Scope) { s.Basic = true }, false, false))
	cmd.AddCommand(playersCmd())
	cmd.AddCommand(categoryCmd("games", "Refresh the schedule",
		func(s *sync.Scope) { s.Games = true }, true, true))
	cmd.AddCommand(categoryCmd("game-stats", "Refresh per-game box scores",
		func(s *sync.Scope) { s.GameStats = true }, true, true))
	cmd.AddCommand(categoryCmd("season-stats", "Refresh league-wide season stats",
		func(s *sync.Scope) { s.SeasonStats = true }, true, false))
	cmd.AddCommand(categoryCmd("playoffs", "Refresh playoff brackets",
		func(s *sync.Scope) { s.Playoffs = true }, true, false))
	cmd.AddCommand(categoryCmd("play-by-play", "Refresh play-by-play event streams",
		func(s *sync.Scope) { s.PlayByPlay = true }, true, true))
	return cmd
}

func updateAllCmd() *cobra.Command {
	var seasonID int
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Refresh every category in dependency order",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := sync.All()
			scope.SeasonID = seasonID
			return runUpdate(scope)
		},
	}
	cmd.Flags().IntVar(&seasonID, "season", 0, "Limit to one season")
	return cmd
}

// categoryCmd builds a single-category update subcommand with the narrowing
// flags the category supports.
func categoryCmd(use, short string, selects func(*sync.Scope), seasonFlag, gameFlag bool) *cobra.Command {
	var seasonID, gameID int
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			var scope sync.Scope
			selects(&scope)
			scope.SeasonID = seasonID
			scope.GameID = gameID
			return runUpdate(scope)
		},
	}
	if seasonFlag {
		cmd.Flags().IntVar(&seasonID, "season", 0, "Limit to one season")
	}
	if gameFlag {
		cmd.Flags().IntVar(&gameID, "game", 0, "Limit to one game")
	}
	return cmd
}

func playersCmd() *cobra.Command {
	var seasonID, playerID int
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Refresh rosters or a single player profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := sync.Scope{Players: true, SeasonID: seasonID, PlayerID: playerID}
			return runUpdate(scope)
		},
	}
	cmd.Flags().IntVar(&seasonID, "season", 0, "Limit rosters to one season")
	cmd.Flags().IntVar(&playerID, "player", 0, "Refresh a single player profile")
	return cmd
}

// runUpdate wires the runner and executes one scoped sync.
func runUpdate(scope sync.Scope) error {
	return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
		client := hockeytech.NewClient(cfg, logger)
		st := store.New(pool, logger)
		runner := sync.NewRunner(client, st, cfg, logger)

		report, err := runner.Run(ctx, scope)
		if report != nil {
			logger.Info("Update finished", "summary", report.Summary())
			for _, e := range report.Errors {
				logger.Error("update error", "error", e)
			}
		}
		return err
	})
}

// --------------------------------------------------------------------------
// serve command
// --------------------------------------------------------------------------

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ops API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool, logger)
				router := api.NewRouter(st, cfg, logger)

				addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
				srv := &http.Server{
					Addr:         addr,
					Handler:      router,
					ReadTimeout:  10 * time.Second,
					WriteTimeout: 30 * time.Second,
					IdleTimeout:  60 * time.Second,
				}

				errCh := make(chan error, 1)
				go func() {
					logger.Info("Starting ops API", "addr", addr, "environment", cfg.Environment)
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						errCh <- err
					}
				}()

				select {
				case err := <-errCh:
					return err
				case <-ctx.Done():
				}
				logger.Info("Shutting down...")

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
				logger.Info("Server stopped")
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, DB connection, and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
