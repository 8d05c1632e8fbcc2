package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nrkeys/cli/internal/nerdgraph"
)

var (
	queryKeyID   string
	queryKeyType string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query an API key",
	Long: `Query a New Relic API key by id and type.

Both --key-id and --key-type are needed to identify a key; if either is
missing the request is still sent and the server rejects the filter.

Examples:
  nrkeys query --key-id NRAK-ABC123 --key-type USER
  nrkeys query -i NRII-XYZ789 -t INGEST --format table`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryKeyID, "key-id", "i", "", "Key ID to search for")
	queryCmd.Flags().StringVarP(&queryKeyType, "key-type", "t", "", "Key type (USER, INGEST, or LICENSE)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var keyID, keyType *string
	if cmd.Flags().Changed("key-id") {
		keyID = &queryKeyID
	}
	if cmd.Flags().Changed("key-type") {
		keyType = &queryKeyType
	}

	details, err := nerdgraph.QueryKey(cmd.Context(), client, keyID, keyType)
	if errors.Is(err, nerdgraph.ErrKeyNotFound) {
		fmt.Println("No API keys found or unable to retrieve keys")
		return nil
	}
	if err != nil {
		return describeError(err)
	}

	out, err := renderKeyDetails(cfg.Format, details)
	if err != nil {
		return err
	}
	fmt.Print(out)

	return nil
}
