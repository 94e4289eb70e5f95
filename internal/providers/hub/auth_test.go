// ABOUTME: Tests for the Docker Hub token exchange client.
// ABOUTME: Uses httptest servers to simulate both historical auth response shapes.

package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestTokenClient(t *testing.T) {
	t.Run("token field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice", body["identifier"])
			assert.Equal(t, "dckr_pat_xyz", body["secret"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token": "jwt-abc"}`))
		}))
		defer server.Close()

		client := NewTokenClient(server.URL, "alice", "dckr_pat_xyz", testLogger())
		token, err := client.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "jwt-abc", token)
	})

	t.Run("access_token field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"access_token": "jwt-def"}`))
		}))
		defer server.Close()

		client := NewTokenClient(server.URL, "alice", "dckr_pat_xyz", testLogger())
		token, err := client.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "jwt-def", token)
	})

	t.Run("error status includes body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "incorrect authentication credentials"}`))
		}))
		defer server.Close()

		client := NewTokenClient(server.URL, "alice", "bad-pat", testLogger())
		_, err := client.Token(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "incorrect authentication credentials")
	})

	t.Run("empty response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewTokenClient(server.URL, "alice", "dckr_pat_xyz", testLogger())
		_, err := client.Token(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no token received")
	})

	t.Run("missing credentials", func(t *testing.T) {
		client := NewTokenClient("http://unused", "", "", testLogger())
		_, err := client.Token(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DOCKER_USERNAME")
	})
}
