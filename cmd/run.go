package cmd

import (
	"fmt"

	"clipbot/internal/adapters/discord"
	"clipbot/internal/adapters/handler"
	"clipbot/internal/adapters/metrics"
	"clipbot/internal/adapters/store"
	"clipbot/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the Discord gateway and serve slash commands",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		log.Info().Msg("starting clipbot...")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := store.Open(ctx, cfg.Database.Type, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(db); err != nil {
				log.Error().Err(err).Msg("error closing database")
			}
		}()

		session, err := discord.NewSession(cfg.Discord.Token, cfg.Bot.Level())
		if err != nil {
			return err
		}

		bindings := store.NewBindingStore(db)
		responder := discord.NewResponder(session)
		checker := service.NewResourceHealthChecker(discord.NewDirectory(session))

		registry, err := newRegistry(commandDeps{
			store:      bindings,
			checker:    checker,
			responder:  responder,
			channels:   responder,
			authorizer: service.NewAdminAuthorizer(bindings, responder),
			storage:    cfg.Database.Type,
		})
		if err != nil {
			return fmt.Errorf("error building command registry: %w", err)
		}

		dispatchMetrics := metrics.NewDispatch()
		dispatcher := service.NewDispatcher(registry, responder, dispatchMetrics, cfg.Handler.Timeout)

		session.AddHandler(handler.NewCommand(dispatcher).Handle)
		session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
			log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("bot listening")
		})

		if err = session.Open(); err != nil {
			return fmt.Errorf("error opening gateway connection: %w", err)
		}
		defer func() {
			if err := session.Close(); err != nil {
				log.Error().Err(err).Msg("error closing gateway connection")
			}
		}()

		g, ctx := errgroup.WithContext(ctx)

		if cfg.Metrics.Address != "" {
			g.Go(func() error {
				return metrics.Serve(ctx, cfg.Metrics.Address, metrics.Router(dispatchMetrics.Registry()))
			})
		}

		g.Go(func() error {
			<-ctx.Done()
			log.Info().Msg("shutting down")
			return nil
		})

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
