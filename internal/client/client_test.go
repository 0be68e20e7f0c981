package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avery/staffdesk/internal/handoff"
	"github.com/avery/staffdesk/internal/importer"
	"github.com/avery/staffdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FieldDefinitions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/field-management/job-seekers", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fields":[],"customFields":[{"field_name":"email","field_label":"Email","isRequired":true}]}`))
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	defs, err := c.FieldDefinitions(context.Background(), "job-seekers")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "email", defs[0].Name)
	assert.True(t, defs[0].Required)
}

func TestClient_Import(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/data-uploader/import", r.URL.Path)

		var req types.ImportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "job-seekers", req.EntityType)
		require.Len(t, req.Records, 1)

		resp := types.ImportResponse{Summary: types.ImportSummary{Successful: 1}}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	summary, err := c.Import(context.Background(), types.ImportRequest{
		EntityType: "job-seekers",
		Records:    []map[string]any{{"email": "ada@example.com"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Successful)
}

// The client must satisfy the session's submitter interface.
var _ importer.Submitter = (*Client)(nil)

func TestClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown entity type: widgets"}`))
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	_, err := c.FieldDefinitions(context.Background(), "widgets")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "unknown entity type")
}

func TestClient_Authenticate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/token", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "secret-key", req["key"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"issued-token"}`))
	}))
	defer server.Close()

	c, err := Authenticate(context.Background(), server.URL, "secret-key")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", c.token)
}

func TestClient_PendingFileRoundTrip(t *testing.T) {
	staged := map[string]types.PendingFile{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/pending-files/session-1":
			var file types.PendingFile
			require.NoError(t, json.NewDecoder(r.Body).Decode(&file))
			staged["session-1"] = file
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"key":"session-1"}`))
		case "/api/admin/pending-files/session-1/take":
			file, ok := staged["session-1"]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":"No pending file for key"}`))
				return
			}
			delete(staged, "session-1")
			require.NoError(t, json.NewEncoder(w).Encode(file))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := New(server.URL, "tok")
	file := handoff.Encode("people.csv", "text/csv", []byte("First Name\nAda"), false)

	require.NoError(t, c.StagePendingFile(context.Background(), "session-1", file))

	got, err := c.TakePendingFile(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, "people.csv", got.Name)

	_, err = c.TakePendingFile(context.Background(), "session-1")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
