package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bibliobot/internal/discord"
)

// deployCmd registers the slash commands with the configured guild
var deployCmd = &cobra.Command{
	Use:   "deploy-commands",
	Short: "Register the slash commands with the Discord guild",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.RequireDiscord(); err != nil {
			return err
		}

		session, err := discord.NewSession(cfg.DiscordToken)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Started refreshing %d application (/) commands.\n", len(discord.Commands()))
		registered, err := discord.RegisterCommands(session, cfg.ClientID, cfg.GuildID)
		if err != nil {
			return fmt.Errorf("deploy failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Successfully reloaded %d application (/) commands.\n", len(registered))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)
}
