// Package nerdgraph implements a client for New Relic's NerdGraph
// GraphQL API, covering the API access key operations.
package nerdgraph

import "encoding/json"

// Error is a single entry in the top-level errors array of a GraphQL
// response. Only Message is surfaced to users; Locations and Path are
// decoded for completeness.
type Error struct {
	Message   string          `json:"message"`
	Locations []ErrorLocation `json:"locations,omitempty"`
	Path      []string        `json:"path,omitempty"`
}

// ErrorLocation is the position in the document an error refers to.
type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Envelope is the top-level {data, errors} structure returned by any
// GraphQL endpoint.
type Envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}
