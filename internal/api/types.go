package api

import "github.com/alexanderramin/timesheet/internal/domain"

// AuthRequest is the body of the token endpoint.
type AuthRequest struct {
	UserNameOrEmailAddress string `json:"userNameOrEmailAddress"`
	Password               string `json:"password"`
	RememberClient         bool   `json:"rememberClient"`
}

// AuthResult is the token endpoint's result.
type AuthResult struct {
	AccessToken     string `json:"accessToken"`
	ExpireInSeconds int    `json:"expireInSeconds"`
	UserID          int64  `json:"userId"`
	UserName        string `json:"userName"`
	Email           string `json:"emailAddress"`
	Role            string `json:"role"`
}

// ProjectFilter narrows the project list. A nil Status lists every status.
type ProjectFilter struct {
	Status *domain.ProjectStatus
	Search string
}

// FilterFor builds a ProjectFilter from the toolbar selector.
func FilterFor(f domain.StatusFilter, search string) ProjectFilter {
	pf := ProjectFilter{Search: search}
	if code, ok := f.Code(); ok {
		pf.Status = &code
	}
	return pf
}

// MemberAssignment carries one team member's role in a saved project.
type MemberAssignment struct {
	UserID int64  `json:"userId"`
	Role   string `json:"type"`
	IsTemp bool   `json:"isTemp"`
}

// TaskAssignment carries one task's billable flag in a saved project.
type TaskAssignment struct {
	TaskID   int64 `json:"taskId"`
	Billable bool  `json:"billable"`
}

// SaveProjectRequest is the body of Project/Save. UserIDs and TaskIDs are
// always present; Users and Tasks detail the role and billable metadata.
type SaveProjectRequest struct {
	Name              string             `json:"name"`
	Code              string             `json:"code"`
	CustomerID        int64              `json:"customerId"`
	StartDate         string             `json:"startDate"`
	EndDate           string             `json:"endDate"`
	ProjectType       string             `json:"projectType"`
	Note              string             `json:"note,omitempty"`
	IsAllUserBelongTo bool               `json:"isAllUserBelongTo"`
	UserIDs           []int64            `json:"userIds"`
	TaskIDs           []int64            `json:"taskIds"`
	Users             []MemberAssignment `json:"users,omitempty"`
	Tasks             []TaskAssignment   `json:"tasks,omitempty"`
	KomuChannelID     string             `json:"komuChannelId,omitempty"`
	Notifications     []string           `json:"notifications,omitempty"`
}

// SaveProjectResult is what Project/Save returns. ID is 0 when the server
// does not echo the created project.
type SaveProjectResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// SaveCustomerRequest is the body of Customer/Save.
type SaveCustomerRequest struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Address string `json:"address,omitempty"`
}
