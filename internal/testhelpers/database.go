package testhelpers

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/hearthside/recipebook/config"
	"github.com/hearthside/recipebook/internal/database"
)

// PostgresDB is a throwaway Postgres instance backing one test.
type PostgresDB struct {
	DB        *gorm.DB
	Config    *config.Config
	Container testcontainers.Container
}

// Close terminates the container.
func (p *PostgresDB) Close() error {
	if p.Container != nil {
		return p.Container.Terminate(context.Background())
	}
	return nil
}

// SetupPostgres starts a Postgres container, connects and migrates. Tests
// using it are skipped unless RUN_DB_TESTS is set, so the default test run
// stays Docker-free.
func SetupPostgres(t *testing.T) *PostgresDB {
	t.Helper()
	if os.Getenv("RUN_DB_TESTS") == "" {
		t.Skip("set RUN_DB_TESTS to run tests against a Postgres container")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "recipebook_test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections"),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		DBHost:     host,
		DBPort:     port.Port(),
		DBUser:     "test",
		DBPassword: "test",
		DBName:     "recipebook_test",
		DBSSLMode:  "disable",
		JWTSecret:  "test-secret",
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	return &PostgresDB{DB: db, Config: cfg, Container: container}
}
