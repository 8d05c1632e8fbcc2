package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nrkeys/cli/internal/nerdgraph"
)

var (
	createAccountID string
	createKeyType   string
	createName      string
	createNotes     string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new API key",
	Long: `Create a new New Relic API key under an account.

The key's secret value is included in the response. Make sure to save
it securely.

Examples:
  nrkeys create --account-id 12345 --key-type INGEST --name svc-key
  nrkeys create -a 12345 -t USER -n my-key --notes "CI pipeline key"`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createAccountID, "account-id", "a", "", "Account ID (required)")
	createCmd.Flags().StringVarP(&createKeyType, "key-type", "t", "", "Key type (required)")
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "Key name (required)")
	createCmd.Flags().StringVar(&createNotes, "notes", "", "Key notes/description")
	createCmd.MarkFlagRequired("account-id")
	createCmd.MarkFlagRequired("key-type")
	createCmd.MarkFlagRequired("name")
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var notes *string
	if cmd.Flags().Changed("notes") {
		notes = &createNotes
	}

	result, err := nerdgraph.CreateKey(cmd.Context(), client, createAccountID, createKeyType, createName, notes)
	if err != nil {
		return describeError(err)
	}

	out, err := renderPayload(cfg.Format, result)
	if err != nil {
		return err
	}
	fmt.Print(out)

	return nil
}
