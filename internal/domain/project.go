package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for all dates exchanged with the API.
const DateLayout = "2006-01-02"

// Project is a persisted project as returned by the list endpoint. Its
// computed fields (ActiveMember, PMs) are read-only on the client.
type Project struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Code         string        `json:"code"`
	CustomerName string        `json:"customerName"`
	ActiveMember int           `json:"activeMember"`
	PMs          []string      `json:"pms"`
	TimeStart    string        `json:"timeStart"`
	TimeEnd      string        `json:"timeEnd"`
	Status       ProjectStatus `json:"status"`
	ProjectType  string        `json:"projectType,omitempty"`
}

// DateRange formats the project's start and end as "DD/MM/YYYY - DD/MM/YYYY".
// Unparseable or missing ends are rendered as-is or omitted.
func (p *Project) DateRange() string {
	start := displayDate(p.TimeStart)
	end := displayDate(p.TimeEnd)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return "- " + end
	}
	return start + " - " + end
}

// PMList joins the project managers' names for display.
func (p *Project) PMList() string {
	return strings.Join(p.PMs, ", ")
}

// displayDate accepts either a bare date or an RFC3339 timestamp.
func displayDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

// ProjectQuantity is one row of the per-status project counts.
type ProjectQuantity struct {
	Status   ProjectStatus `json:"status"`
	Quantity int           `json:"quantity"`
}

// QuantityFor returns the count for status, or 0 when absent.
func QuantityFor(quantities []ProjectQuantity, status ProjectStatus) int {
	for _, q := range quantities {
		if q.Status == status {
			return q.Quantity
		}
	}
	return 0
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}
