package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults and environment", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("KAFKA_ENABLED", "true")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
		t.Setenv("PAYMENT_ABANDON_AFTER", "90m")

		cfg, err := LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, "s3cret", cfg.JWTSecret)
		assert.True(t, cfg.KafkaEnabled)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 90*time.Minute, cfg.PaymentAbandonAfter)
		assert.Equal(t, 15*time.Minute, cfg.ProofURLTTL)
		assert.True(t, cfg.JobsEnabled)
		assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=logistics sslmode=disable", cfg.Postgres().DSN())
	})

	t.Run("config file is overridden by environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logistics.yaml")
		require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT: \"9090\"\nJWT_SECRET: from-file\nDB_NAME: filedb\n"), 0o600))
		t.Setenv("DB_NAME", "envdb")

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, "from-file", cfg.JWTSecret)
		assert.Equal(t, "envdb", cfg.DBName)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET is required")
	})

	t.Run("unreadable config file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}

func TestQuoteCommand(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"quote", "--km", "5"})

	require.NoError(t, root.Execute())

	assert.Equal(t, "distance: 5.00 km\nfee: NGN 800.00\nrider share: NGN 560.00\n", out.String())
}

func TestQuoteCommand_RejectsNonFiniteDistance(t *testing.T) {
	for _, km := range []string{"NaN", "Inf", "-Inf"} {
		t.Run(km, func(t *testing.T) {
			root := NewRootCommand()
			root.SetOut(&bytes.Buffer{})
			root.SetArgs([]string{"quote", "--km=" + km})

			var err error
			require.NotPanics(t, func() { err = root.Execute() })

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		})
	}
}
