package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/draft"
	"github.com/alexanderramin/timesheet/internal/picker"
	"github.com/alexanderramin/timesheet/internal/session"
)

// userMessage turns an error into the text a view shows. Causes that only
// matter to the log are not repeated here.
func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrLoginFailed):
		return session.ErrLoginFailed.Error()
	case errors.Is(err, session.ErrMissingCredentials):
		return "Enter your user name and password."
	case errors.Is(err, api.ErrNotAuthenticated):
		return "Your session has ended. Please log in again."
	case errors.Is(err, draft.ErrBusy), errors.Is(err, picker.ErrBusy):
		return "A save is already in progress."
	case errors.Is(err, api.ErrRejected):
		return api.RejectionMessage(err)
	case errors.Is(err, api.ErrInvalidResponse):
		return "The server sent a response that could not be read."
	case errors.Is(err, api.ErrRequestFailed):
		if code := api.StatusCode(err); code != 0 {
			return fmt.Sprintf("Request failed (HTTP %d).", code)
		}
		return "Could not reach the server."
	}
	return err.Error()
}

// shellError renders err as a red error line.
func shellError(err error) string {
	return formatter.Error(userMessage(err))
}
