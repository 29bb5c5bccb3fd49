// Package dockertester spins up throwaway Postgres containers for
// repository integration tests.
package dockertester

import (
	"fmt"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/gorm"

	"github.com/eventorg/smart-event-api/internal/db"
)

const (
	postgresUser     = "test"
	postgresPassword = "test"
	postgresDB       = "smart_event_test"
)

// StartPostgres launches a postgres container and waits until it accepts
// connections. The caller owns the returned resource and must Purge it.
func StartPostgres() (*dockertest.Pool, *dockertest.Resource, *gorm.DB, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("dockertest.NewPool -> %w", err)
	}

	if err = pool.Client.Ping(); err != nil {
		return nil, nil, nil, fmt.Errorf("pool.Client.Ping -> %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=" + postgresUser,
			"POSTGRES_PASSWORD=" + postgresPassword,
			"POSTGRES_DB=" + postgresDB,
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pool.RunWithOptions -> %w", err)
	}

	url := fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, resource.GetPort("5432/tcp"), postgresDB)

	var database *gorm.DB
	if err = pool.Retry(func() error {
		database, err = db.OpenPostgresWithURL(url)

		return err
	}); err != nil {
		_ = pool.Purge(resource)

		return nil, nil, nil, fmt.Errorf("pool.Retry -> %w", err)
	}

	return pool, resource, database, nil
}
