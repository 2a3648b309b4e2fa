package cmd

import (
	"errors"

	"clipbot/internal/adapters/discord"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	deployGuildID string
	deployGlobal  bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy-commands",
	Short: "Replace the published slash commands with the bot's command set",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cfg.Discord.ApplicationID == "" {
			return errors.New("discord.application_id is required to publish commands")
		}

		guildID := cfg.Discord.GuildID
		if deployGuildID != "" {
			guildID = deployGuildID
		}
		if deployGlobal {
			guildID = ""
		}

		session, err := discord.NewSession(cfg.Discord.Token, cfg.Bot.Level())
		if err != nil {
			return err
		}

		// publishing only reads command schemas
		registry, err := newRegistry(commandDeps{})
		if err != nil {
			return err
		}

		published, err := discord.NewPublisher(session, cfg.Discord.ApplicationID).
			Publish(cmd.Context(), guildID, registry.Schemas())
		if err != nil {
			return err
		}

		for _, c := range published {
			log.Info().Str("id", c.ID).Str("name", c.Name).Msg("published command")
		}

		return nil
	},
}

func init() {
	deployCmd.Flags().StringVar(&deployGuildID, "guild", "", "publish to this guild instead of discord.guild_id")
	deployCmd.Flags().BoolVar(&deployGlobal, "global", false, "publish globally even if a guild is configured")
	rootCmd.AddCommand(deployCmd)
}
