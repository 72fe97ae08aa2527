package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo on the auth_session table.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a repo over conn, which may be a *sql.DB or
// a transaction handed out by a UnitOfWork.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Get(ctx context.Context) (*domain.Session, error) {
	query := `SELECT user_id, user_name, email, role, access_token, authenticated_at, expires_at
		FROM auth_session WHERE id = 'current'`

	var (
		s                 domain.Session
		authAt, expiresAt string
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.UserID,
		&s.UserName,
		&s.Email,
		&s.Role,
		&s.AccessToken,
		&authAt,
		&expiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("auth session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning auth session: %w", err)
	}

	if s.AuthenticatedAt, err = parseTime("authenticated_at", authAt); err != nil {
		return nil, err
	}
	if s.ExpiresAt, err = parseTime("expires_at", expiresAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteSessionRepo) Save(ctx context.Context, s *domain.Session) error {
	query := `INSERT OR REPLACE INTO auth_session
		(id, user_id, user_name, email, role, access_token, authenticated_at, expires_at)
		VALUES ('current', ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.UserID,
		s.UserName,
		s.Email,
		s.Role,
		s.AccessToken,
		formatTime(s.AuthenticatedAt),
		formatTime(s.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("saving auth session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_session`); err != nil {
		return fmt.Errorf("clearing auth session: %w", err)
	}
	return nil
}
