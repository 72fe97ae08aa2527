package session

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/timesheet/internal/api"
)

var (
	// ErrLoginFailed is the only failure a caller of Login ever sees; the
	// underlying cause is logged.
	ErrLoginFailed = errors.New("Login failed. Please check your credentials.") //nolint:staticcheck // user-facing text

	// ErrMissingCredentials is returned when the identifier or secret is empty.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrNotAuthenticated is returned by the guards. It matches
	// api.ErrNotAuthenticated.
	ErrNotAuthenticated = fmt.Errorf("not logged in; run `timesheet login`: %w", api.ErrNotAuthenticated)
)
