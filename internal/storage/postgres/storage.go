package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eventhub/internal/domain/errors"
	"github.com/polkiloo/eventhub/internal/domain/model"
	"github.com/polkiloo/eventhub/internal/domain/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// pgxPool is the subset of *pgxpool.Pool used by the storage.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
// The pool is opened on first use and shared by all repositories.
type Storage struct {
	dsn         string
	autoMigrate bool
	logger      *slog.Logger

	mu   sync.RWMutex
	pool pgxPool
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type eventRepository struct {
	storage *Storage
}

// New validates the DSN and returns a storage whose pool is opened lazily.
func New(dsn string, autoMigrate bool, logger *slog.Logger) (*Storage, error) {
	if _, err := pgxpool.ParseConfig(dsn); err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	return &Storage{dsn: dsn, autoMigrate: autoMigrate, logger: logger}, nil
}

// Open forces pool initialization. A failed attempt is retried on the next call.
func (s *Storage) Open(ctx context.Context) error {
	_, err := s.db(ctx)
	return err
}

func (s *Storage) db(ctx context.Context) (pgxPool, error) {
	s.mu.RLock()
	pool := s.pool
	s.mu.RUnlock()
	if pool != nil {
		return pool, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		return s.pool, nil
	}

	cfg, err := pgxpool.ParseConfig(s.dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err = newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if s.autoMigrate {
		if err := runMigrations(s.dsn); err != nil {
			pool.Close()
			return nil, err
		}
	}

	s.pool = pool
	if s.logger != nil {
		s.logger.Info("database pool opened")
	}
	return pool, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Events() repository.EventRepository {
	return &eventRepository{storage: s}
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	pool, err := s.db(ctx)
	if err != nil {
		return err
	}
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	pool, err := s.db(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

// ensureUserTx creates a stub row for a user first seen through an order or event.
// Deleted users are never recreated.
func ensureUserTx(ctx context.Context, tx pgx.Tx, id string) error {
	if id == "" {
		return nil
	}
	const ensure = `WITH gone AS (SELECT EXISTS (SELECT 1 FROM deleted_users WHERE id=$1) AS deleted),
                   stub AS (INSERT INTO users (id) SELECT $1 FROM gone WHERE NOT gone.deleted
                            ON CONFLICT (id) DO NOTHING)
                   SELECT deleted FROM gone`
	var deleted bool
	if err := tx.QueryRow(ctx, ensure, id).Scan(&deleted); err != nil {
		return err
	}
	if deleted {
		return domainErrors.ErrUserDeleted
	}
	return nil
}

// mapConstraintError translates integrity violations into domain errors.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return domainErrors.ErrAlreadyExists
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", domainErrors.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}

func encodeMetadata(m model.ProfileMetadata) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func decodeMetadata(raw []byte) (model.ProfileMetadata, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m model.ProfileMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return m, nil
}

func normalizeAmount(raw string) (string, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "", fmt.Errorf("decode amount: %w", err)
	}
	return d.String(), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
