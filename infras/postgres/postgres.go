package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"studyhall/config"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Connection holds the read replica and the primary.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", endpoint(cfg.DB.Postgres.Read)),
		Write: connect(cfg, "write", endpoint(cfg.DB.Postgres.Write)),
	}
}

// WriteDSN is the URL of the primary, used by migrations.
func WriteDSN(cfg *config.Config) string {
	return dsn(cfg, endpoint(cfg.DB.Postgres.Write))
}

// Ping checks both connections, used by the health endpoint.
func (c *Connection) Ping(ctx context.Context) error {
	if c.Read == nil || c.Write == nil {
		return errors.New("database connection not established")
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	var errs []error

	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func dsn(cfg *config.Config, ep endpoint) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		ep.Username,
		ep.Password,
		net.JoinHostPort(ep.Host, ep.Port),
		cfg.DB.Postgres.Prefix+ep.Name,
		ep.SSLMode,
	)
}

// connect retries on a fixed interval and returns nil once the attempts run out.
func connect(cfg *config.Config, name string, ep endpoint) *sqlx.DB {
	logger := log.With().Str("name", name).Str("host", ep.Host).Str("port", ep.Port).Str("dbName", ep.Name).Logger()

	attempt := 0

	db, err := backoff.Retry(context.Background(), func() (*sqlx.DB, error) {
		attempt++

		db, err := sqlx.Connect("postgres", dsn(cfg, ep))
		if err != nil {
			logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

			return nil, err //nolint:wrapcheck
		}

		return db, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(time.Duration(cfg.DB.Postgres.RetryWaitTime)*time.Second)),
		backoff.WithMaxTries(uint(max(cfg.DB.Postgres.MaxRetry, 1))),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Giving up connecting to database")

		return nil
	}

	db.SetMaxIdleConns(postgresMaxIdleConnection)
	db.SetMaxOpenConns(postgresMaxOpenConnection)

	logger.Info().Msg("Connected to database")

	return db
}
