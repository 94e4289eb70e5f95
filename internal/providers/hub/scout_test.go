// ABOUTME: Tests for the Docker Scout GraphQL catalog source.
// ABOUTME: Verifies request headers, query payloads, and envelope error handling.

package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jfeddern/CatalogScout/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoutSourceListRepositories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "catalogscout/1.0", r.Header.Get("User-Agent"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["query"], "dhiListRepositories")

		w.Write([]byte(`{
			"data": {
				"dhiListRepositories": {
					"items": [
						{"name": "nginx", "type": "IMAGE", "tagNames": ["1.27"]},
						{"name": "postgres", "type": "IMAGE", "tagNames": ["16", "17"]}
					]
				}
			}
		}`))
	}))
	defer server.Close()

	source := NewScoutSource(server.URL, testLogger())
	items, err := source.ListRepositories(context.Background(), "jwt-abc")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "nginx", items[0].Name)
	assert.Equal(t, []string{"16", "17"}, items[1].TagNames)
}

func TestScoutSourceListRepositoriesBadEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	source := NewScoutSource(server.URL, testLogger())
	_, err := source.ListRepositories(context.Background(), "jwt-abc")

	var formatErr *catalog.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestScoutSourceListRepositoriesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("access denied"))
	}))
	defer server.Close()

	source := NewScoutSource(server.URL, testLogger())
	_, err := source.ListRepositories(context.Background(), "jwt-abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "access denied")
}

func TestScoutSourceTagDefinitions(t *testing.T) {
	t.Run("repository with definitions", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Contains(t, body["query"], `repoName: "postgres"`)

			w.Write([]byte(`{
				"data": {
					"dhiRepository": {
						"tagDefinitions": [
							{"displayName": "PostgreSQL 16", "tagNames": ["16"], "endOfLife": "2028-11-09", "endOfSupport": "2027-11-09"}
						]
					}
				}
			}`))
		}))
		defer server.Close()

		source := NewScoutSource(server.URL, testLogger())
		defs, err := source.TagDefinitions(context.Background(), "jwt-abc", "postgres")
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "PostgreSQL 16", defs[0].DisplayName)
		assert.Equal(t, "2028-11-09", defs[0].EndOfLife)
	})

	t.Run("repository name is quoted into the query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Contains(t, body["query"], `repoName: "a\"b"`)

			w.Write([]byte(`{"data": {"dhiRepository": null}}`))
		}))
		defer server.Close()

		source := NewScoutSource(server.URL, testLogger())
		defs, err := source.TagDefinitions(context.Background(), "jwt-abc", `a"b`)
		require.NoError(t, err)
		assert.Empty(t, defs)
	})
}
