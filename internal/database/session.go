package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"coilapi/internal/config"
)

var (
	// ErrNotInitialized is returned when the manager is used before Init or after Close.
	ErrNotInitialized = errors.New("session manager is not initialized")
	// ErrAlreadyInitialized is returned by Init when a pool is already open.
	ErrAlreadyInitialized = errors.New("session manager is already initialized")
)

var openPool = NewPostgres

// SessionManager owns the connection pool and hands out scoped units of work.
//
// It starts uninitialized; Init opens the pool and Close disposes it and
// returns the manager to the uninitialized state. It is safe for concurrent use.
type SessionManager struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSessionManager returns an uninitialized manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Init opens the pooled connection described by c.
func (m *SessionManager) Init(c config.DatabaseConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return ErrAlreadyInitialized
	}
	db, err := openPool(c)
	if err != nil {
		return err
	}
	m.db = db
	return nil
}

// Close disposes the pool and resets the manager.
func (m *SessionManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return fmt.Errorf("close: %w", ErrNotInitialized)
	}
	err := m.db.Close()
	m.db = nil
	return err
}

// Ping verifies the pool can reach the database.
func (m *SessionManager) Ping(ctx context.Context) error {
	db, err := m.pool("ping")
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Session runs fn inside a transaction taken from the pool.
//
// The transaction commits when fn returns nil. If fn returns an error or
// panics, it is rolled back and the failure propagates unchanged.
func (m *SessionManager) Session(ctx context.Context, fn func(tx DBTX) error) error {
	db, err := m.pool("session")
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	return runInTx(tx, fn)
}

// Connection runs fn inside a transaction on a dedicated connection.
// It is meant for schema setup and teardown.
func (m *SessionManager) Connection(ctx context.Context, fn func(tx DBTX) error) error {
	db, err := m.pool("connection")
	if err != nil {
		return err
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin connection: %w", err)
	}
	return runInTx(tx, fn)
}

func (m *SessionManager) pool(op string) (*sql.DB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.db == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotInitialized)
	}
	return m.db, nil
}

func runInTx(tx *sql.Tx, fn func(tx DBTX) error) error {
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
