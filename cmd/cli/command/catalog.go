package command

import (
	"context"

	"github.com/spf13/cobra"

	"bibliobot/internal/bot"
)

// catalog.go exposes the slash commands on the command line. Each subcommand
// maps its flags onto the options of the matching slash command.

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, bot.CmdListCatalog, bot.OptAuthor, bot.OptCategory, bot.OptLanguage)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Show the details of matching books",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, bot.CmdSearchBook,
			bot.OptTitle, bot.OptAuthor, bot.OptStatus, bot.OptOwner, bot.OptLoanedTo, bot.OptLanguage, bot.OptCategory)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, bot.CmdAddBook,
			bot.OptTitle, bot.OptAuthor, bot.OptStatus, bot.OptOwner, bot.OptLoanedTo, bot.OptDescription,
			bot.OptLanguage, bot.OptFrontCover, bot.OptBackCover, bot.OptPageCount, bot.OptCategory1,
			bot.OptCategory2, bot.OptTheme)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Update the loan status of a book",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, bot.CmdUpdateStatus, bot.OptTitle, bot.OptStatus, bot.OptLoanedTo)
	},
}

// runCommand dispatches the command built from the flags and prints the reply
func runCommand(cmd *cobra.Command, name string, options ...string) error {
	c, err := commandFromFlags(cmd, name, options...)
	if err != nil {
		return err
	}

	d, closeFn, err := newDispatcher()
	if err != nil {
		return err
	}
	defer closeFn()

	printResponse(cmd.OutOrStdout(), d.Dispatch(context.Background(), c))
	return nil
}

// commandFromFlags collects the set flags into a command
func commandFromFlags(cmd *cobra.Command, name string, options ...string) (bot.Command, error) {
	c := bot.Command{Name: name, Options: bot.Options{}, User: "cli"}
	for _, opt := range options {
		flag := cmd.Flags().Lookup(opt)
		if flag == nil {
			continue
		}
		if opt == bot.OptPageCount {
			if flag.Changed {
				n, err := cmd.Flags().GetInt(opt)
				if err != nil {
					return bot.Command{}, err
				}
				c.Options[opt] = n
			}
			continue
		}
		// string flags with a default always count
		if flag.Changed || flag.DefValue != "" {
			c.Options[opt] = flag.Value.String()
		}
	}
	return c, nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(statusCmd)

	listCmd.Flags().String(bot.OptAuthor, "", "filter on author")
	listCmd.Flags().String(bot.OptCategory, "", "filter on category")
	listCmd.Flags().String(bot.OptLanguage, "", "filter on language")

	searchCmd.Flags().String(bot.OptTitle, "", "title contains")
	searchCmd.Flags().String(bot.OptAuthor, "", "author contains")
	searchCmd.Flags().String(bot.OptStatus, "", "Beschikbaar or Uitgeleend")
	searchCmd.Flags().String(bot.OptOwner, "", "owner contains")
	searchCmd.Flags().String(bot.OptLoanedTo, "", "loaned to contains")
	searchCmd.Flags().String(bot.OptLanguage, "", "language contains")
	searchCmd.Flags().String(bot.OptCategory, "", "category contains")

	addCmd.Flags().String(bot.OptTitle, "", "title of the book")
	addCmd.Flags().String(bot.OptAuthor, "", "author of the book")
	addCmd.Flags().String(bot.OptStatus, "Beschikbaar", "Beschikbaar or Uitgeleend")
	addCmd.Flags().String(bot.OptOwner, "", "owner of the book")
	addCmd.Flags().String(bot.OptLoanedTo, "", "person the book is loaned to")
	addCmd.Flags().String(bot.OptDescription, "", "description")
	addCmd.Flags().String(bot.OptLanguage, "", "language")
	addCmd.Flags().String(bot.OptFrontCover, "", "front cover image URL")
	addCmd.Flags().String(bot.OptBackCover, "", "back cover image URL")
	addCmd.Flags().Int(bot.OptPageCount, 0, "number of pages")
	addCmd.Flags().String(bot.OptCategory1, "", "first category")
	addCmd.Flags().String(bot.OptCategory2, "", "second category")
	addCmd.Flags().String(bot.OptTheme, "", "theme")
	addCmd.MarkFlagRequired(bot.OptTitle)
	addCmd.MarkFlagRequired(bot.OptAuthor)
	addCmd.MarkFlagRequired(bot.OptOwner)

	statusCmd.Flags().String(bot.OptTitle, "", "exact title of the book")
	statusCmd.Flags().String(bot.OptStatus, "", "Beschikbaar or Uitgeleend")
	statusCmd.Flags().String(bot.OptLoanedTo, "", "person the book is loaned to")
	statusCmd.MarkFlagRequired(bot.OptTitle)
	statusCmd.MarkFlagRequired(bot.OptStatus)
}
