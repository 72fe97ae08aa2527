package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// UserType discriminates staff from interns and collaborators. The API
// sends it either as an integer (0/1/2) or as its name.
type UserType int

const (
	UserStaff UserType = iota
	UserInternship
	UserCollaborator
)

var userTypeNames = []string{"Staff", "Internship", "Collaborator"}

func (t UserType) String() string {
	if t < 0 || int(t) >= len(userTypeNames) {
		return fmt.Sprintf("UserType(%d)", int(t))
	}
	return userTypeNames[t]
}

// ParseUserType accepts "0"/"1"/"2" or a case-insensitive type name.
func ParseUserType(s string) (UserType, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= len(userTypeNames) {
			return 0, fmt.Errorf("unknown user type %d", n)
		}
		return UserType(n), nil
	}
	for i, name := range userTypeNames {
		if strings.EqualFold(name, s) {
			return UserType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown user type %q", s)
}

// UnmarshalJSON decodes either a number or a string.
func (t *UserType) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		*t = UserStaff
		return nil
	}
	parsed, err := ParseUserType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ProjectStatus is the numeric status code used by the project endpoints.
type ProjectStatus int

const (
	ProjectActive ProjectStatus = iota
	ProjectDeactive
)

func (s ProjectStatus) String() string {
	switch s {
	case ProjectActive:
		return "Active"
	case ProjectDeactive:
		return "Deactive"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StatusFilter is the toolbar's status selector.
type StatusFilter string

const (
	FilterActive   StatusFilter = "active"
	FilterDeactive StatusFilter = "deactive"
	FilterAll      StatusFilter = "all"
)

// StatusFilters lists the selector options in display order.
var StatusFilters = []StatusFilter{FilterActive, FilterDeactive, FilterAll}

// ParseStatusFilter accepts the selector value. "archived" is accepted as a
// synonym of "all".
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "active":
		return FilterActive, nil
	case "deactive", "inactive":
		return FilterDeactive, nil
	case "all", "archived":
		return FilterAll, nil
	}
	return "", fmt.Errorf("unknown status filter %q (use active, deactive or all)", s)
}

// Code maps the selector to the API status code. The second result is false
// for FilterAll, where no status parameter is sent.
func (f StatusFilter) Code() (ProjectStatus, bool) {
	switch f {
	case FilterActive:
		return ProjectActive, true
	case FilterDeactive:
		return ProjectDeactive, true
	}
	return 0, false
}

// Label is the selector's display text.
func (f StatusFilter) Label() string {
	switch f {
	case FilterActive:
		return "Active Projects"
	case FilterDeactive:
		return "Deactive Projects"
	default:
		return "All Projects"
	}
}

// Next cycles to the following selector option.
func (f StatusFilter) Next() StatusFilter {
	for i, s := range StatusFilters {
		if s == f {
			return StatusFilters[(i+1)%len(StatusFilters)]
		}
	}
	return FilterActive
}

// ProjectRole is a team member's role inside one project.
type ProjectRole string

const (
	RolePM       ProjectRole = "PM"
	RoleMember   ProjectRole = "Member"
	RoleShadow   ProjectRole = "Shadow"
	RoleDeactive ProjectRole = "Deactive"
)

// ProjectRoles lists roles in cycling order.
var ProjectRoles = []ProjectRole{RolePM, RoleMember, RoleShadow, RoleDeactive}

// Next cycles to the following role.
func (r ProjectRole) Next() ProjectRole {
	for i, role := range ProjectRoles {
		if role == r {
			return ProjectRoles[(i+1)%len(ProjectRoles)]
		}
	}
	return RoleMember
}

// MemberStatus marks a membership as official or temporary.
type MemberStatus string

const (
	MemberOfficial MemberStatus = "Official"
	MemberTemp     MemberStatus = "Temp"
)

// ProjectType is the billing model of a project.
type ProjectType string

const (
	ProjectTimeAndMaterials ProjectType = "T&M"
	ProjectFixedPrice       ProjectType = "FIXED_PRICE"
	ProjectNonBill          ProjectType = "NON_BILL"
	ProjectODC              ProjectType = "ODC"
	ProjectProduct          ProjectType = "PRODUCT"
	ProjectTraining         ProjectType = "TRAINING"
	ProjectNoSalary         ProjectType = "NO_SALARY"
)

// ProjectTypes lists the accepted project types in display order.
var ProjectTypes = []ProjectType{
	ProjectTimeAndMaterials, ProjectFixedPrice, ProjectNonBill,
	ProjectODC, ProjectProduct, ProjectTraining, ProjectNoSalary,
}

// ValidProjectType reports whether s names a known project type.
func ValidProjectType(s string) bool {
	for _, t := range ProjectTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// NotificationEvents are the event labels a project can notify a channel about.
var NotificationEvents = []string{
	"Submit timesheet",
	"Request Off/Remote/Onsite/Đi muộn, về sớm",
	"Approve/Reject Request Off/Remote/Onsite/Đi muộn, về sớm",
	"Request Change Working Time",
	"Approve/Reject Change Working Time",
}
