// Package testdb provides store configurations for tests: a private
// in-memory SQLite database, or PostgreSQL with pgvector in a container.
package testdb

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shorechef/backend/config"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "pgvector/pgvector:pg16"
	postgresUser     = "postgres"
	postgresPassword = "postpass"
	postgresDB       = "shorechef"
)

// SQLiteDSN names a shared-cache in-memory database unique to the caller.
// It lives as long as one connection to it stays open.
func SQLiteDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared"
}

// SQLiteConfig returns a config selecting a fresh in-memory SQLite store.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  SQLiteDSN(),
	}
}

// PostgresConfig starts a pgvector container for the test and returns a
// config pointing at it. The test is skipped without docker or in -short.
func PostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     postgresUser,
				"POSTGRES_PASSWORD": postgresPassword,
				"POSTGRES_DB":       postgresDB,
			},
			// postgres logs readiness once for the init server, again for the real one
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return &config.Config{
		StoreDriver: config.DriverPostgres,
		DBHost:      host,
		DBPort:      port.Port(),
		DBUser:      postgresUser,
		DBPassword:  postgresPassword,
		DBName:      postgresDB,
		DBSSLMode:   "disable",
	}
}
