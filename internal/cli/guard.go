package cli

import (
	"go.uber.org/zap"

	"github.com/alexanderramin/timesheet/internal/session"
)

// guardView returns v, or a login view that continues to v, depending on
// whether the session is authenticated. The login view itself is never
// guarded.
func guardView(state *SharedState, v View) View {
	if v.ID() == ViewLogin {
		return v
	}
	if err := session.Check(state.App.Session); err != nil {
		state.App.logger().Info("view_redirected_to_login", zap.String("view", v.Title()))
		return newLoginView(state, v)
	}
	return v
}
