package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nrkeys/cli/internal/nerdgraph"
)

var (
	updateKeyID string
	updateName  string
	updateNotes string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an existing API key",
	Long: `Update the name or notes of an existing New Relic API key.

Fields not passed are left unchanged. Passing an empty value clears
the stored field.

Examples:
  nrkeys update --key-id NRAK-ABC123 --name renamed-key
  nrkeys update -i NRAK-ABC123 --notes "rotated 2026-08"`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVarP(&updateKeyID, "key-id", "i", "", "Key ID (required)")
	updateCmd.Flags().StringVarP(&updateName, "name", "n", "", "New name")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "New notes/description")
	updateCmd.MarkFlagRequired("key-id")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var name, notes *string
	if cmd.Flags().Changed("name") {
		name = &updateName
	}
	if cmd.Flags().Changed("notes") {
		notes = &updateNotes
	}

	result, err := nerdgraph.UpdateKey(cmd.Context(), client, updateKeyID, name, notes)
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
