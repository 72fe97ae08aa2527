package session

import "github.com/spf13/cobra"

// Authenticated is the read side of a Store.
type Authenticated interface {
	IsAuthenticated() bool
}

// Check returns ErrNotAuthenticated unless a is authenticated.
func Check(a Authenticated) error {
	if !a.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// RequireAuth is a cobra PersistentPreRunE for commands that need a login.
func RequireAuth(a Authenticated) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return Check(a)
	}
}
