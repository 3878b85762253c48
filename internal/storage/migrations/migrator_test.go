package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		data, err := fs.ReadFile(FS, name)
		require.NoError(t, err)

		body := string(data)
		assert.True(t, strings.Contains(body, "-- +goose Up"), "%s missing Up annotation", name)
		assert.True(t, strings.Contains(body, "-- +goose Down"), "%s missing Down annotation", name)
	}
}
