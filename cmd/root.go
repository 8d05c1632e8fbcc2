package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nrkeys/cli/internal/config"
	"github.com/nrkeys/cli/internal/nerdgraph"
)

var rootCmd = &cobra.Command{
	Use:   "nrkeys",
	Short: "nrkeys - Command line interface for New Relic API keys",
	Long: `nrkeys is a command line tool for managing New Relic API access
keys through the NerdGraph API.

Use this CLI to query, create, update, and delete API keys.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("api-key", "k", "", "New Relic API key (defaults to $NEW_RELIC_API_KEY)")
	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "NerdGraph endpoint URL (default is https://api.newrelic.com/graphql)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: json, yaml, or table")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.nrkeysrc)")
}

// loadConfig loads the configuration and applies flag overrides, which
// take precedence over both config files and the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configFlag, _ := cmd.Flags().GetString("config"); configFlag != "" {
		cfg, err = config.LoadFromFile(configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
		cfg.APIKey = apiKey
	}
	if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		cfg.Format = config.Format(format)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Verbose = true
	}

	if !cfg.Format.IsValid() {
		return nil, fmt.Errorf("invalid output format %q (expected json, yaml, or table)", cfg.Format)
	}

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Using endpoint: %s\n", cfg.Endpoint)
		fmt.Fprintf(os.Stderr, "Output format: %s\n", cfg.Format)
	}

	return cfg, nil
}

// newClient constructs the NerdGraph client for an authenticated call.
func newClient(cfg *config.Config) (*nerdgraph.Client, error) {
	if !cfg.IsAuthenticated() {
		return nil, fmt.Errorf("no API key configured. Set %s or pass --api-key", config.APIKeyEnvVar)
	}

	return nerdgraph.NewClient(nerdgraph.Config{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.Timeout,
	})
}
