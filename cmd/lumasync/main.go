package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	appRepos "github.com/eventvault/backend/internal/app/repositories"
	"github.com/eventvault/backend/internal/bootstrap"
	"github.com/eventvault/backend/internal/config"
	"github.com/eventvault/backend/internal/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "lumasync",
		Usage: "Operator tasks for the EventVault backend.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: bootstrap.DefaultConfigPath, Usage: "path to the YAML config file"},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			syncEventCommand(),
			syncGuestsCommand(),
			tokenCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

var syncFlags = []cli.Flag{
	&cli.StringFlag{Name: "event", Value: "new", Usage: `event UUID, or "new" to resolve by Luma id`},
	&cli.StringFlag{Name: "luma-event", Aliases: []string{"l"}, Required: true, Usage: "Luma event api id (evt-...)"},
}

// withDatabase loads config, connects and runs fn with the pool.
func withDatabase(c *cli.Context, fn func(cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}
	pool, err := bootstrap.ConnectDatabase(c.Context, cfg, lgr)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(cfg, pool, lgr)
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations.",
		Action: func(c *cli.Context) error {
			return withDatabase(c, func(cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
				return bootstrap.RunMigrations(c.Context, cfg, pool, lgr)
			})
		},
	}
}

func syncEventCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync-event",
		Usage: "Import or refresh one event from Luma.",
		Flags: syncFlags,
		Action: func(c *cli.Context) error {
			return withDatabase(c, func(cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
				svc := bootstrap.NewSyncService(cfg, appRepos.NewRepositories(pool), lgr)
				result, err := svc.SyncEvent(c.Context, c.String("event"), c.String("luma-event"))
				if err != nil {
					return err
				}
				fmt.Printf("%s %s (%s)\n", result.Outcome, result.EventID, result.Message)
				return nil
			})
		},
	}
}

func syncGuestsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync-guests",
		Usage: "Upsert the Luma guest list of an event into its participants.",
		Flags: syncFlags,
		Action: func(c *cli.Context) error {
			return withDatabase(c, func(cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
				svc := bootstrap.NewSyncService(cfg, appRepos.NewRepositories(pool), lgr)
				count, err := svc.SyncGuests(c.Context, c.String("event"), c.String("luma-event"))
				if err != nil {
					return err
				}
				fmt.Printf("%d guests synced\n", count)
				return nil
			})
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue an access token for an organizer.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Usage: "organizer UUID (random when empty)"},
			&cli.StringFlag{Name: "email", Usage: "email claim"},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "token lifetime"},
		},
		Action: func(c *cli.Context) error {
			cfg, _, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
			if err != nil {
				return err
			}
			jwtService := bootstrap.NewJWTService(cfg)
			if jwtService == nil {
				return fmt.Errorf("auth.jwt_secret (AUTH_JWT_SECRET) is not configured")
			}

			userID := uuid.New()
			if raw := c.String("user"); raw != "" {
				if userID, err = uuid.Parse(raw); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}

			token, err := jwtService.IssueToken(userID, c.String("email"), c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}

