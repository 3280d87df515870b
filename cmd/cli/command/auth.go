package command

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"bibliobot/cmd/cli/authentication"
)

// auth.go manages the Airtable credentials kept in the OS keyring.
// They are used whenever AIRTABLE_API_KEY is not set.

// authCmd represents the auth command for credential related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Airtable credentials",
}

// authSetCmd stores a personal access token
var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the Airtable access token in the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseID, _ := cmd.Flags().GetString("base")

		token, err := readSecret("Airtable access token: ")
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if token == "" {
			return errors.New("token must not be empty")
		}

		if err := authentication.StoreCredentials(&authentication.StoredCredentials{APIKey: token, BaseID: baseID}); err != nil {
			return fmt.Errorf("store credentials: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Credentials stored in the keyring.")
		return nil
	},
}

// authDeleteCmd removes the stored credentials
var authDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored Airtable credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := authentication.DeleteCredentials()
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No stored credentials.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("delete credentials: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Credentials removed.")
		return nil
	},
}

// readSecret reads a value from the terminal without echoing it
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(os.Stderr) // Add newline after hidden input
	return strings.TrimSpace(string(raw)), nil
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authDeleteCmd)

	authSetCmd.Flags().String("base", "", "Airtable base id to store with the token")
}
