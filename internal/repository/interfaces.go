package repository

import (
	"context"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// SessionRepo persists the single authenticated session.
type SessionRepo interface {
	// Get returns the stored session or ErrNotFound.
	Get(ctx context.Context) (*domain.Session, error)
	// Save replaces any stored session with s.
	Save(ctx context.Context, s *domain.Session) error
	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
