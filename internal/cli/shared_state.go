package cli

import (
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/picker"
	"github.com/alexanderramin/timesheet/internal/service"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Reference data for the create dialog, loaded on first use.
	Refs *service.ReferenceData

	// Terminal dimensions
	Width  int
	Height int
}

// UserName returns the signed-in user's name, or "" when signed out.
func (s *SharedState) UserName() string {
	sess, ok := s.App.Session.Current()
	if !ok {
		return ""
	}
	return sess.UserName
}

// AddCustomer merges c into the cached reference data.
func (s *SharedState) AddCustomer(c domain.Customer) {
	if s.Refs == nil {
		s.Refs = &service.ReferenceData{}
	}
	s.Refs.Customers = picker.Merge(s.Refs.Customers, c)
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and the output line (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
