package draft

import (
	"strings"

	"github.com/samber/lo"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// General is the first tab: what the project is and when it runs.
type General struct {
	CustomerID  int64
	Name        string
	Code        string
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
	ProjectType string
	Note        string
	AllUser     bool
}

// Errors returns inline messages keyed by field.
func (g General) Errors() map[string]string {
	errs := map[string]string{}
	if g.CustomerID <= 0 {
		errs["customer"] = "Client is required"
	}
	if strings.TrimSpace(g.Name) == "" {
		errs["name"] = "Project name is required"
	}
	if strings.TrimSpace(g.Code) == "" {
		errs["code"] = "Project code is required"
	}

	start, startErr := domain.ParseDate(g.StartDate)
	switch {
	case strings.TrimSpace(g.StartDate) == "":
		errs["startDate"] = "Start date is required"
	case startErr != nil:
		errs["startDate"] = startErr.Error()
	}
	end, endErr := domain.ParseDate(g.EndDate)
	switch {
	case strings.TrimSpace(g.EndDate) == "":
		errs["endDate"] = "End date is required"
	case endErr != nil:
		errs["endDate"] = endErr.Error()
	case startErr == nil && end.Before(start):
		errs["endDate"] = "End date must not be before start date"
	}

	switch {
	case g.ProjectType == "":
		errs["projectType"] = "Project type is required"
	case !domain.ValidProjectType(g.ProjectType):
		errs["projectType"] = "Unknown project type " + g.ProjectType
	}
	return errs
}

// Valid reports whether every required field is filled and well formed.
func (g General) Valid() bool { return len(g.Errors()) == 0 }

func (g General) empty() bool {
	return g == General{}
}

// Notification is the optional last tab.
type Notification struct {
	ChannelID string
	Events    []string
}

func (n Notification) empty() bool {
	return strings.TrimSpace(n.ChannelID) == "" && len(n.Events) == 0
}

// Has reports whether event is enabled.
func (n Notification) Has(event string) bool {
	return lo.Contains(n.Events, event)
}

// Toggle enables or disables event. Events stay in canonical order.
func (n *Notification) Toggle(event string) {
	enabled := lo.Without(n.Events, event)
	if len(enabled) == len(n.Events) {
		enabled = append(enabled, event)
	}
	n.Events = lo.Filter(domain.NotificationEvents, func(e string, _ int) bool { return lo.Contains(enabled, e) })
}
