//go:build integration

// Package pgtest starts throwaway Postgres and Redis containers for the
// integration suites.
package pgtest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
	schemaPath   = "migrations/001_initial_schema.sql"
)

var (
	postgresOnce      sync.Once
	postgresContainer testcontainers.Container
	postgresErr       error
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// NewDatabase creates a fresh database with the schema applied inside a
// shared postgres:17 container and returns a pool plus its config.
func NewDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	info := startPostgres(t)
	dbName := "court_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, info.Host, info.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer admin.Close()

	var createErr error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(min(time.Duration(500+attempt*500)*time.Millisecond, 3*time.Second))
		}
		if _, createErr = admin.Exec(ctx, "CREATE DATABASE "+dbName); createErr == nil {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempt+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "failed to create test database")

	cfg := config.DBConfig{
		Host:     info.Host,
		Port:     info.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 8,
	}
	pool, closePool, err := db.Connect(cfg)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(func() {
		closePool()
		dropDatabase(adminDSN, dbName)
	})

	require.NoError(t, applySchema(pool), "schema apply failed")
	return pool, cfg
}

// Reset empties every table of the schema.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, `TRUNCATE reservations, session_packs, materials, courts, players CASCADE`)
	require.NoError(t, err, "failed to reset database")
}

func dropDatabase(adminDSN, dbName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN)
	if err != nil {
		slog.Warn("cleanup connection failed", "database", dbName, "error", err.Error())
		return
	}
	defer admin.Close()
	if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
		slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
	}
}

// applySchema runs the schema file directly; go test starts in the package
// directory, so the file is looked up in the parents too.
func applySchema(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var (
		sql     []byte
		readErr error
	)
	for _, cand := range []string{
		schemaPath,
		filepath.Join("..", schemaPath),
		filepath.Join("..", "..", schemaPath),
		filepath.Join("..", "..", "..", schemaPath),
	} {
		if sql, readErr = os.ReadFile(cand); readErr == nil {
			break
		}
	}
	if readErr != nil {
		return fmt.Errorf("failed to read %s: %w", schemaPath, readErr)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("failed to execute %s: %w", schemaPath, err)
	}
	return nil
}

func startPostgres(t *testing.T) ContainerInfo {
	t.Helper()
	postgresOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=256m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "court-booking-integration"},
		}
		postgresContainer, postgresErr = startContainer(req, 180*time.Second)
	})
	require.NoError(t, postgresErr, "failed to start postgres container")

	info, err := hostPort(postgresContainer, "5432/tcp")
	require.NoError(t, err, "failed to resolve postgres port")
	return info
}

// Containers are reaped by ryuk when the test process exits.
func startContainer(req testcontainers.ContainerRequest, timeout time.Duration) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func hostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mapped}, nil
}
