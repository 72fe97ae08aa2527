// Package session holds the authenticated identity for the running client
// and persists it between runs.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/db"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
)

// DefaultTTL is how long a login stays valid when the token carries no
// earlier expiry.
const DefaultTTL = 7 * 24 * time.Hour

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Authenticate(ctx context.Context, in api.AuthRequest) (*api.AuthResult, error)
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l.Named("session") }
}

// Store is the single source of truth for who is logged in. Construct one
// per process and pass it to whatever needs it.
type Store struct {
	auth   Authenticator
	repo   repository.SessionRepo
	uow    db.UnitOfWork
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	mu      sync.RWMutex
	current *domain.Session
}

// NewStore creates a Store. repo is used for reads; writes go through uow so
// a login replaces the stored row atomically.
func NewStore(auth Authenticator, repo repository.SessionRepo, uow db.UnitOfWork, opts ...Option) *Store {
	s := &Store{
		auth:   auth,
		repo:   repo,
		uow:    uow,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates and, on success, persists the new session. Any
// failure leaves the store unauthenticated in memory and on disk.
func (s *Store) Login(ctx context.Context, identifier, secret string) (bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return false, ErrMissingCredentials
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	res, err := s.auth.Authenticate(ctx, api.AuthRequest{
		UserNameOrEmailAddress: identifier,
		Password:               secret,
		RememberClient:         true,
	})
	if err != nil {
		s.logger.Warn("login_failed",
			zap.String("identifier", identifier),
			zap.Int("status", api.StatusCode(err)),
			zap.Error(err))
		s.dropPersisted(ctx)
		return false, ErrLoginFailed
	}

	sess := s.sessionFrom(identifier, res)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSessionRepo(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.Save(ctx, sess)
	})
	if err != nil {
		s.logger.Error("login_persist_failed", zap.Error(err))
		s.dropPersisted(ctx)
		return false, ErrLoginFailed
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.logger.Info("login_succeeded",
		zap.Int64("user_id", sess.UserID),
		zap.String("user_name", sess.UserName),
		zap.Time("expires_at", sess.ExpiresAt))
	return true, nil
}

// dropPersisted deletes any earlier session row so a later Restore
// agrees with the failed login.
func (s *Store) dropPersisted(ctx context.Context) {
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("login_clear_failed", zap.Error(err))
	}
}

func (s *Store) sessionFrom(identifier string, res *api.AuthResult) *domain.Session {
	now := s.now().UTC().Truncate(time.Second)
	email := res.Email
	if email == "" && strings.Contains(identifier, "@") {
		email = identifier
	}
	return &domain.Session{
		UserID:          res.UserID,
		UserName:        domain.CoalesceStr(res.UserName, identifier),
		Email:           email,
		Role:            domain.CoalesceStr(res.Role, "user"),
		AccessToken:     res.AccessToken,
		AuthenticatedAt: now,
		ExpiresAt:       s.expiry(now, res),
	}
}

// expiry is the earliest of the configured TTL, the server's
// expireInSeconds and the token's own exp claim.
func (s *Store) expiry(now time.Time, res *api.AuthResult) time.Time {
	exp := now.Add(s.ttl)
	if res.ExpireInSeconds > 0 {
		if t := now.Add(time.Duration(res.ExpireInSeconds) * time.Second); t.Before(exp) {
			exp = t
		}
	}
	if t, ok := tokenExpiry(res.AccessToken); ok && t.Before(exp) {
		exp = t
	}
	return exp
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server verifies the token on every call.
func tokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time.UTC(), true
}

// Logout forgets the session in memory and on disk.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("logout")
	return nil
}

// Restore loads a persisted session at startup. An expired row is deleted.
func (s *Store) Restore(ctx context.Context) error {
	sess, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if sess.Expired(s.now()) {
		s.logger.Info("session_expired", zap.Time("expires_at", sess.ExpiresAt))
		return s.repo.Clear(ctx)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// IsAuthenticated reports whether a non-expired session is held.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Current returns a copy of the held session.
func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || s.current.Expired(s.now()) {
		return domain.Session{}, false
	}
	return *s.current, true
}

// Token implements api.TokenSource. An expired session yields no token.
func (s *Store) Token() string {
	sess, ok := s.Current()
	if !ok {
		return ""
	}
	return sess.AccessToken
}

var _ api.TokenSource = (*Store)(nil)
