package nerdgraph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

// variableNames returns the sorted-free set of variable names the
// server saw, for exactness checks against builder policy.
func variableNames(vars map[string]any) map[string]bool {
	names := make(map[string]bool, len(vars))
	for k := range vars {
		names[k] = true
	}
	return names
}

func TestQueryKey_VariablePolicy(t *testing.T) {
	tests := []struct {
		name     string
		keyID    *string
		keyType  *string
		wantVars map[string]bool
	}{
		{"both provided", strPtr("abc-1"), strPtr("USER"), map[string]bool{"id": true, "keyType": true}},
		{"id only", strPtr("abc-1"), nil, map[string]bool{}},
		{"type only", nil, strPtr("USER"), map[string]bool{}},
		{"neither", nil, nil, map[string]bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec requestRecord
			server := newRecordingServer(t, http.StatusOK, `{"data": {"actor": {"apiAccess": {"key": {"key": "k"}}}}}`, &rec)
			defer server.Close()

			client := newTestClient(t, server.URL)
			if _, err := QueryKey(context.Background(), client, tt.keyID, tt.keyType); err != nil {
				t.Fatalf("QueryKey returned error: %v", err)
			}

			body := decodeBody(t, rec.body)
			got := variableNames(body.Variables)
			if !reflect.DeepEqual(got, tt.wantVars) {
				t.Errorf("variables = %v, want %v", got, tt.wantVars)
			}
		})
	}
}

func TestQueryKey_SubstitutesMissingFields(t *testing.T) {
	response := `{"data": {"actor": {"apiAccess": {"key": {"key": "abc", "name": "n", "type": "USER"}}}}}`
	server := newRecordingServer(t, http.StatusOK, response, nil)
	defer server.Close()

	client := newTestClient(t, server.URL)
	details, err := QueryKey(context.Background(), client, strPtr("abc"), strPtr("USER"))
	if err != nil {
		t.Fatalf("QueryKey returned error: %v", err)
	}

	want := &KeyDetails{Key: "abc", Name: "n", Type: "USER", Notes: "N/A"}
	if *details != *want {
		t.Errorf("details = %+v, want %+v", details, want)
	}
}

func TestQueryKey_NotFound(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"key path absent", `{"data": {"actor": {"apiAccess": {}}}}`},
		{"key explicitly null", `{"data": {"actor": {"apiAccess": {"key": null}}}}`},
		{"actor absent", `{"data": {}}`},
		{"null data", `{"data": null}`},
		{"no data at all", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newRecordingServer(t, http.StatusOK, tt.response, nil)
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := QueryKey(context.Background(), client, strPtr("abc"), strPtr("USER"))
			if !errors.Is(err, ErrKeyNotFound) {
				t.Errorf("err = %v, want ErrKeyNotFound", err)
			}
		})
	}
}

func TestQueryKey_PropagatesAPIError(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, `{"errors": [{"message": "denied"}]}`, nil)
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := QueryKey(context.Background(), client, strPtr("abc"), strPtr("USER"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error should be *APIError, got %v", err)
	}
	if errors.Is(err, ErrKeyNotFound) {
		t.Error("an API error must not read as the not-found outcome")
	}
}

func TestCreateKey_Variables(t *testing.T) {
	var rec requestRecord
	server := newRecordingServer(t, http.StatusOK, `{"data": {}}`, &rec)
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := CreateKey(context.Background(), client, "12345", "INGEST", "svc-key", nil); err != nil {
		t.Fatalf("CreateKey returned error: %v", err)
	}

	body := decodeBody(t, rec.body)
	want := map[string]bool{"accountId": true, "keyType": true, "name": true}
	if got := variableNames(body.Variables); !reflect.DeepEqual(got, want) {
		t.Errorf("variables = %v, want exactly %v", got, want)
	}

	// The document declares $accountId as Int!, so it goes out as a
	// JSON number, not a numeric string.
	if body.Variables["accountId"] != float64(12345) {
		t.Errorf("accountId = %v (%T), want the number 12345", body.Variables["accountId"], body.Variables["accountId"])
	}
	if body.Variables["keyType"] != "INGEST" {
		t.Errorf("keyType = %v, want %q", body.Variables["keyType"], "INGEST")
	}
	if body.Variables["name"] != "svc-key" {
		t.Errorf("name = %v, want %q", body.Variables["name"], "svc-key")
	}
	if !strings.Contains(body.Query, "apiAccessCreateKeys") {
		t.Errorf("query does not contain the create mutation: %q", body.Query)
	}
}

func TestCreateKey_WithNotes(t *testing.T) {
	var rec requestRecord
	server := newRecordingServer(t, http.StatusOK, `{"data": {}}`, &rec)
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := CreateKey(context.Background(), client, "12345", "USER", "my-key", strPtr("ci key")); err != nil {
		t.Fatalf("CreateKey returned error: %v", err)
	}

	body := decodeBody(t, rec.body)
	if body.Variables["notes"] != "ci key" {
		t.Errorf("notes = %v, want %q", body.Variables["notes"], "ci key")
	}
}

func TestCreateKey_NonNumericAccountID(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := CreateKey(context.Background(), client, "not-a-number", "USER", "my-key", nil)
	if err == nil {
		t.Fatal("CreateKey should reject a non-numeric account id")
	}
	if calls != 0 {
		t.Errorf("no request should be sent for an invalid account id, got %d", calls)
	}
}

func TestCreateKey_PassthroughPayload(t *testing.T) {
	payload := `{"apiAccessCreateKeys": {"createdKeys": [{"id": "k-1", "key": "secret"}], "errors": [{"message": "partial", "type": "FORBIDDEN"}]}}`
	server := newRecordingServer(t, http.StatusOK, `{"data": `+payload+`}`, nil)
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := CreateKey(context.Background(), client, "1", "USER", "k", nil)
	if err != nil {
		t.Fatalf("CreateKey returned error: %v", err)
	}

	// The nested errors array inside the mutation payload is part of
	// the pass-through result, not collapsed into the error return.
	if string(result) != payload {
		t.Errorf("result = %s, want the payload verbatim", result)
	}
}

func TestUpdateKey_Variables(t *testing.T) {
	tests := []struct {
		name     string
		newName  *string
		newNotes *string
		wantVars map[string]bool
	}{
		{"name only", strPtr("renamed"), nil, map[string]bool{"keyId": true, "name": true}},
		{"notes only", nil, strPtr("note"), map[string]bool{"keyId": true, "notes": true}},
		{"both", strPtr("renamed"), strPtr("note"), map[string]bool{"keyId": true, "name": true, "notes": true}},
		{"neither", nil, nil, map[string]bool{"keyId": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec requestRecord
			server := newRecordingServer(t, http.StatusOK, `{"data": {}}`, &rec)
			defer server.Close()

			client := newTestClient(t, server.URL)
			if _, err := UpdateKey(context.Background(), client, "abc-1", tt.newName, tt.newNotes); err != nil {
				t.Fatalf("UpdateKey returned error: %v", err)
			}

			body := decodeBody(t, rec.body)
			if got := variableNames(body.Variables); !reflect.DeepEqual(got, tt.wantVars) {
				t.Errorf("variables = %v, want exactly %v", got, tt.wantVars)
			}
			if body.Variables["keyId"] != "abc-1" {
				t.Errorf("keyId = %v, want %q", body.Variables["keyId"], "abc-1")
			}
		})
	}
}

func TestDeleteKey_EndToEnd(t *testing.T) {
	payload := `{"apiAccessDeleteKeys": {"deletedKeys": [{"id": "key-999"}], "errors": null}}`
	var rec requestRecord
	server := newRecordingServer(t, http.StatusOK, `{"data": `+payload+`}`, &rec)
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := DeleteKey(context.Background(), client, "key-999")
	if err != nil {
		t.Fatalf("DeleteKey returned error: %v", err)
	}

	body := decodeBody(t, rec.body)
	if !reflect.DeepEqual(body.Variables, map[string]any{"keyId": "key-999"}) {
		t.Errorf("variables = %v, want {keyId: key-999}", body.Variables)
	}
	// Single id bound into the list-typed ingestKeyIds argument.
	if !strings.Contains(body.Query, "ingestKeyIds: $keyId") {
		t.Errorf("query does not bind keyId into ingestKeyIds: %q", body.Query)
	}

	if string(result) != payload {
		t.Errorf("result = %s, want the payload verbatim", result)
	}
}
