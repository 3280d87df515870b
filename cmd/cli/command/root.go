package command

// root.go defines the root command for the bibliobot operator CLI.
// set up the global flags and configuration here.

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bibliobot/cmd/cli/authentication"
	"bibliobot/database"
	"bibliobot/internal/bot"
	"bibliobot/internal/config"
	"bibliobot/internal/render"
	"bibliobot/internal/service"
)

var (
	backend string // overrides STORE_BACKEND
	verbose bool   // log to stderr
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bibliobot",
	Short: "bibliobot - operator tool for the verbondsbibliotheek",
	Long: `bibliobot manages the lending catalog behind the Discord bot. Operators can use it to:
- Register the slash commands with the guild
- List, search and add books
- Update the loan status of a book
- Keep the Airtable credentials in the OS keyring

Use "bibliobot command --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "record store backend (airtable, postgres, sqlite)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")
}

// loadConfig reads the environment and fills missing Airtable credentials from the keyring
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.StoreBackend = backend
	}

	if cfg.StoreBackend == config.BackendAirtable && cfg.AirtableAPIKey == "" {
		if creds, err := authentication.GetCredentials(); err == nil {
			cfg.AirtableAPIKey = creds.APIKey
			if cfg.AirtableBaseID == "" {
				cfg.AirtableBaseID = creds.BaseID
			}
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg.NewLogger(os.Stderr)
}

// newDispatcher wires the same command path the bot uses
func newDispatcher() (*bot.Dispatcher, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := newLogger(cfg)
	repo, closeFn, err := database.OpenRepository(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	d := bot.NewDispatcher(
		service.NewCatalogService(repo, logger),
		&render.Formatter{ThumbnailURL: cfg.ListThumbnailURL},
		logger,
	)
	return d, closeFn, nil
}
