package nerdgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrKeyNotFound reports a key query whose response carried no key at
// actor.apiAccess.key. It is a normal "not found" outcome, not an API
// failure.
var ErrKeyNotFound = errors.New("api key not found")

const queryKeyDocument = `
query($id: ID!, $keyType: ApiAccessKeyType!) {
    actor {
        apiAccess {
            key(
                id: $id
                keyType: $keyType
            ) {
                key
                name
                notes
                type
            }
        }
    }
}`

const createKeyDocument = `
mutation($accountId: Int!, $keyType: ApiAccessKeyType!, $name: String!, $notes: String) {
    apiAccessCreateKeys(keys: [{
        accountId: $accountId,
        keyType: $keyType,
        name: $name,
        notes: $notes
    }]) {
        createdKeys {
            id
            name
            type
            key
            notes
        }
        errors {
            message
            type
        }
    }
}`

const updateKeyDocument = `
mutation($keyId: String!, $name: String, $notes: String) {
    apiAccessUpdateKeys(keys: [{
        id: $keyId,
        name: $name,
        notes: $notes
    }]) {
        updatedKeys {
            id
            name
            type
            notes
        }
        errors {
            message
            type
        }
    }
}`

const deleteKeyDocument = `
mutation($keyId: String!) {
    apiAccessDeleteKeys(keys: {ingestKeyIds: $keyId}) {
        deletedKeys {
            id
        }
        errors {
            message
            type
        }
    }
}`

// KeyDetails is the flattened result of a key query. Fields the
// response omitted are set to "N/A".
type KeyDetails struct {
	Key   string `json:"key" yaml:"key"`
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Notes string `json:"notes" yaml:"notes"`
}

// QueryKey looks up a single API key. The filter variables are bound
// only when both keyID and keyType are provided; otherwise the
// operation is sent with an empty variables mapping and the server is
// left to reject the incomplete filter.
//
// Returns ErrKeyNotFound when the response carries no key at
// actor.apiAccess.key.
func QueryKey(ctx context.Context, c *Client, keyID, keyType *string) (*KeyDetails, error) {
	vars := Vars{}
	if keyID != nil && keyType != nil {
		vars["id"] = String(*keyID)
		vars["keyType"] = String(*keyType)
	}

	data, err := c.Execute(ctx, queryKeyDocument, vars)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Actor struct {
			APIAccess struct {
				Key map[string]any `json:"key"`
			} `json:"apiAccess"`
		} `json:"actor"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("nerdgraph: unexpected query payload: %w", err)
	}

	key := payload.Actor.APIAccess.Key
	if key == nil {
		return nil, ErrKeyNotFound
	}

	return &KeyDetails{
		Key:   stringField(key, "key"),
		Name:  stringField(key, "name"),
		Type:  stringField(key, "type"),
		Notes: stringField(key, "notes"),
	}, nil
}

// stringField reads a string field from a decoded JSON object,
// substituting "N/A" when the field is absent, null, or not a string.
func stringField(obj map[string]any, name string) string {
	if s, ok := obj[name].(string); ok {
		return s
	}
	return "N/A"
}

// CreateKey creates one API key under the given account. The document
// declares $accountId as Int!, so accountID is parsed locally and sent
// as a JSON number instead of relying on server-side coercion of a
// string. notes is omitted when nil.
//
// The result is the raw mutation payload, returned verbatim. The
// payload carries its own errors array alongside createdKeys, so
// callers see both that channel and the top-level GraphQL error path.
func CreateKey(ctx context.Context, c *Client, accountID, keyType, name string, notes *string) (json.RawMessage, error) {
	id, err := strconv.Atoi(accountID)
	if err != nil {
		return nil, fmt.Errorf("nerdgraph: account id %q is not numeric", accountID)
	}

	vars := Vars{
		"accountId": Int(id),
		"keyType":   String(keyType),
		"name":      String(name),
	}
	vars.SetOptional("notes", notes)

	return c.Execute(ctx, createKeyDocument, vars)
}

// UpdateKey renames or annotates an existing key. name and notes are
// omitted from the variables when nil, which leaves the stored value
// unchanged; pass a pointer to the empty string to clear a field.
func UpdateKey(ctx context.Context, c *Client, keyID string, name, notes *string) (json.RawMessage, error) {
	vars := Vars{
		"keyId": String(keyID),
	}
	vars.SetOptional("name", name)
	vars.SetOptional("notes", notes)

	return c.Execute(ctx, updateKeyDocument, vars)
}

// DeleteKey deletes one API key. The document binds the single keyId
// scalar into the list-typed ingestKeyIds argument; NerdGraph coerces
// the singleton, and deleting multiple keys per call is intentionally
// not supported.
func DeleteKey(ctx context.Context, c *Client, keyID string) (json.RawMessage, error) {
	vars := Vars{
		"keyId": String(keyID),
	}

	return c.Execute(ctx, deleteKeyDocument, vars)
}
