package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nrkeys/cli/internal/nerdgraph"
)

var deleteKeyID string

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an API key",
	Long: `Delete a New Relic API key. One key is deleted per call.

Examples:
  nrkeys delete --key-id NRII-XYZ789`,
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVarP(&deleteKeyID, "key-id", "i", "", "Key ID (required)")
	deleteCmd.MarkFlagRequired("key-id")
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	result, err := nerdgraph.DeleteKey(cmd.Context(), client, deleteKeyID)
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
