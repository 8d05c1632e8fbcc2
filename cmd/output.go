package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/nrkeys/cli/internal/config"
	"github.com/nrkeys/cli/internal/nerdgraph"
)

// renderPayload renders a raw mutation payload in the requested
// format. Table format has no natural shape for arbitrary payloads, so
// it falls back to indented JSON.
func renderPayload(format config.Format, payload json.RawMessage) (string, error) {
	switch format {
	case config.FormatYAML:
		var v any
		if err := json.Unmarshal(payload, &v); err != nil {
			return "", fmt.Errorf("failed to parse payload: %w", err)
		}
		out, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to render yaml: %w", err)
		}
		return string(out), nil
	default:
		var buf bytes.Buffer
		if err := json.Indent(&buf, payload, "", "  "); err != nil {
			return "", fmt.Errorf("failed to render json: %w", err)
		}
		return buf.String() + "\n", nil
	}
}

// renderKeyDetails renders the result of a key query.
func renderKeyDetails(format config.Format, details *nerdgraph.KeyDetails) (string, error) {
	switch format {
	case config.FormatYAML:
		out, err := yaml.Marshal(details)
		if err != nil {
			return "", fmt.Errorf("failed to render yaml: %w", err)
		}
		return string(out), nil
	case config.FormatTable:
		var buf bytes.Buffer
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "API Key Details:")
		w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Key:\t%s\n", details.Key)
		fmt.Fprintf(w, "Name:\t%s\n", details.Name)
		fmt.Fprintf(w, "Type:\t%s\n", details.Type)
		fmt.Fprintf(w, "Notes:\t%s\n", details.Notes)
		w.Flush()
		return buf.String(), nil
	default:
		out, err := json.MarshalIndent(details, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render json: %w", err)
		}
		return string(out) + "\n", nil
	}
}

// describeError adds the GraphQL context prefix to API errors so the
// joined server messages read as one failure; other errors pass
// through unchanged.
func describeError(err error) error {
	var apiErr *nerdgraph.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("GraphQL errors: %w", apiErr)
	}
	return err
}
