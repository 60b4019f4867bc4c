package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		s, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "mongodb://localhost:27017", s.MongoURL)
		assert.Equal(t, "catalogs", s.MongoDB)
		assert.Equal(t, 0, s.ProductLimit)
		assert.Equal(t, "extracted_data", s.OutputDir)
		assert.False(t, s.FastMode())
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		t.Setenv("MONGO_URL", "mongodb://db.example:27017")
		t.Setenv("MONGO_DB", "vendor_catalogs")
		t.Setenv("PRODUCT_LIMIT", "50")
		t.Setenv("OUTPUT_DIR", t.TempDir())

		s, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "mongodb://db.example:27017", s.MongoURL)
		assert.Equal(t, "vendor_catalogs", s.MongoDB)
		assert.Equal(t, 50, s.ProductLimit)
		assert.True(t, s.FastMode())
	})

	t.Run("rejects a negative product limit", func(t *testing.T) {
		t.Setenv("PRODUCT_LIMIT", "-1")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects an empty store URL", func(t *testing.T) {
		t.Setenv("MONGO_URL", "")

		_, err := Load()
		assert.Error(t, err)
	})
}
