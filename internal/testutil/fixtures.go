package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

var testIDCounter atomic.Int64

func nextID() int64 { return testIDCounter.Add(1) }

// NewTestSession returns a session for userName that expires after ttl.
func NewTestSession(userName string, ttl time.Duration) *domain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Session{
		UserID:          nextID(),
		UserName:        userName,
		Email:           userName + "@example.com",
		Role:            "Admin",
		AccessToken:     "token-" + userName,
		AuthenticatedAt: now,
		ExpiresAt:       now.Add(ttl),
	}
}

// User options
type UserOption func(*domain.User)

func WithBranch(branch string) UserOption {
	return func(u *domain.User) { u.Branch = branch }
}

func WithUserType(t domain.UserType) UserOption {
	return func(u *domain.User) { u.Type = t }
}

func WithEmail(email string) UserOption {
	return func(u *domain.User) { u.Email = email }
}

func NewTestUser(name string, opts ...UserOption) domain.User {
	u := domain.User{
		ID:     nextID(),
		Name:   name,
		Email:  fmt.Sprintf("%s@example.com", name),
		Branch: "HN1",
		Type:   domain.UserStaff,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func NewTestTask(name string) domain.Task {
	return domain.Task{ID: nextID(), Name: name}
}

func NewTestCustomer(name, code string) domain.Customer {
	return domain.Customer{ID: nextID(), Name: name, Code: code}
}

// Project options
type ProjectOption func(*domain.Project)

func WithCustomer(name string) ProjectOption {
	return func(p *domain.Project) { p.CustomerName = name }
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) { p.Status = s }
}

func WithPMs(names ...string) ProjectOption {
	return func(p *domain.Project) { p.PMs = names }
}

func NewTestProject(name string, opts ...ProjectOption) domain.Project {
	id := nextID()
	p := domain.Project{
		ID:           id,
		Name:         name,
		Code:         fmt.Sprintf("PRJ%03d", id),
		CustomerName: "Acme",
		ActiveMember: 3,
		PMs:          []string{"Lan"},
		TimeStart:    "2025-01-01",
		TimeEnd:      "2025-12-31",
		Status:       domain.ProjectActive,
		ProjectType:  string(domain.ProjectTimeAndMaterials),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
