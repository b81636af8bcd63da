package pgadmin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the slice of pgx.Conn the admin needs; tests substitute a fake.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

// PGAdmin implements Admin over a single pgx connection. The connection is
// opened lazily on first use so that planning (and dry runs) never touch the
// database.
type PGAdmin struct {
	connString string
	conn       querier
}

// NewPGAdmin creates an admin for the given libpq connection string.
func NewPGAdmin(connString string) *PGAdmin {
	return &PGAdmin{connString: connString}
}

func (a *PGAdmin) acquire(ctx context.Context) (querier, error) {
	if a.conn != nil {
		return a.conn, nil
	}
	conn, err := pgx.Connect(ctx, a.connString)
	if err != nil {
		return nil, fmt.Errorf("connect to local instance: %w", err)
	}
	a.conn = conn
	return a.conn, nil
}

// RoleExists reports whether a role with the given name exists.
func (a *PGAdmin) RoleExists(ctx context.Context, name string) (bool, error) {
	conn, err := a.acquire(ctx)
	if err != nil {
		return false, err
	}
	var one int
	err = conn.QueryRow(ctx, "SELECT 1 FROM pg_roles WHERE rolname = $1", name).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query pg_roles: %w", err)
	}
	return true, nil
}

// DatabaseExists reports whether a database with the given name exists.
func (a *PGAdmin) DatabaseExists(ctx context.Context, name string) (bool, error) {
	conn, err := a.acquire(ctx)
	if err != nil {
		return false, err
	}
	var one int
	err = conn.QueryRow(ctx, "SELECT 1 FROM pg_database WHERE datname = $1", name).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query pg_database: %w", err)
	}
	return true, nil
}

// CreateRole creates a superuser login role. DDL cannot take bind
// parameters, so the identifier is sanitized and the password quoted as a
// literal.
func (a *PGAdmin) CreateRole(ctx context.Context, name, password string) error {
	conn, err := a.acquire(ctx)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf("CREATE ROLE %s SUPERUSER LOGIN PASSWORD %s",
		pgx.Identifier{name}.Sanitize(), quoteLiteral(password))
	if _, err := conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create role %s: %w", name, err)
	}
	return nil
}

// CreateDatabase creates a database owned by the given role and grants the
// owner full access.
func (a *PGAdmin) CreateDatabase(ctx context.Context, name, owner string) error {
	conn, err := a.acquire(ctx)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf("CREATE DATABASE %s OWNER %s",
		pgx.Identifier{name}.Sanitize(), pgx.Identifier{owner}.Sanitize())
	if _, err := conn.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	grant := fmt.Sprintf("GRANT ALL PRIVILEGES ON DATABASE %s TO %s",
		pgx.Identifier{name}.Sanitize(), pgx.Identifier{owner}.Sanitize())
	if _, err := conn.Exec(ctx, grant); err != nil {
		return fmt.Errorf("grant on database %s: %w", name, err)
	}
	return nil
}

// Close releases the connection if one was opened.
func (a *PGAdmin) Close(ctx context.Context) error {
	if a.conn == nil {
		return nil
	}
	err := a.conn.Close(ctx)
	a.conn = nil
	return err
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
