package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "kittygram", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Blob.Driver)
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("KITTYGRAM_APP__ENV", "production")
	t.Setenv("KITTYGRAM_SERVER__ADDR", ":9000")
	t.Setenv("KITTYGRAM_SERVER__READ_TIMEOUT", "2s")
	t.Setenv("KITTYGRAM_DATABASE__DRIVER", "postgres")
	t.Setenv("KITTYGRAM_DATABASE__DSN", "postgres://u:p@localhost:5432/kittygram")
	t.Setenv("KITTYGRAM_BLOB__DRIVER", "s3")
	t.Setenv("KITTYGRAM_BLOB__S3__BUCKET", "cats")
	t.Setenv("KITTYGRAM_AUTH__ODIN_BASE_URL", "https://odin.example.com")
	t.Setenv("KITTYGRAM_AUTH__ODIN_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "cats", cfg.Blob.S3.Bucket)
	assert.True(t, cfg.Auth.Enabled())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("postgres without dsn", func(t *testing.T) {
		t.Setenv("KITTYGRAM_DATABASE__DRIVER", "postgres")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("KITTYGRAM_DATABASE__DRIVER", "mongo")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		t.Setenv("KITTYGRAM_BLOB__DRIVER", "s3")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("odin without api key", func(t *testing.T) {
		t.Setenv("KITTYGRAM_AUTH__ODIN_BASE_URL", "https://odin.example.com")
		_, err := Load()
		assert.Error(t, err)
	})
}
