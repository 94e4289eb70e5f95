// ABOUTME: Tests for the file-backed catalog source.
// ABOUTME: Covers reading, missing files, and malformed JSON.

package local

import (
	"context"
	"os"
	"path/filepath"
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

func TestSourceListRepositories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[
		{"name": "nginx", "type": "IMAGE", "tagNames": ["1.27", "1.27-fips"]},
		{"name": "postgres", "type": "IMAGE", "tagNames": ["16"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	source := NewSource(path, testLogger())
	assert.Equal(t, "local", source.Name())

	items, err := source.ListRepositories(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "nginx", items[0].Name)
	assert.Equal(t, []string{"1.27", "1.27-fips"}, items[0].TagNames)
}

func TestSourceMissingFile(t *testing.T) {
	source := NewSource(filepath.Join(t.TempDir(), "nope.json"), testLogger())
	_, err := source.ListRepositories(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}

func TestSourceInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o600))

	source := NewSource(path, testLogger())
	_, err := source.ListRepositories(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog JSON")
}

func TestSourceTagDefinitions(t *testing.T) {
	source := NewSource("unused.json", testLogger())
	defs, err := source.TagDefinitions(context.Background(), "", "nginx")
	require.NoError(t, err)
	assert.Nil(t, defs)
}
