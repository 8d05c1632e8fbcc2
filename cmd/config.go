package cmd

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/nrkeys/cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Commands for managing the nrkeys configuration file.

Configuration is read from a local .nrkeysrc, falling back to the
global ~/.nrkeysrc. The NEW_RELIC_API_KEY environment variable and
command flags override file values.

Examples:
  nrkeys config init --endpoint https://api.eu.newrelic.com/graphql
  nrkeys config show`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the global config file",
	Long: `Write the current effective configuration (defaults, config files,
environment, and flags) to the global ~/.nrkeysrc file.

Examples:
  nrkeys config init
  nrkeys config init --format table --verbose`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging config files, the
environment, and flags. The API key is redacted.

Examples:
  nrkeys config show`,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	path, err := config.GlobalConfigPath()
	if err != nil {
		return err
	}
	fmt.Printf("Configuration written to %s\n", path)

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	redacted := *cfg
	redacted.APIKey = redactKey(cfg.APIKey)

	data, err := toml.Marshal(&redacted)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Print(string(data))

	return nil
}

// redactKey keeps the last four characters of a key for recognition.
func redactKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
