package picker

import "github.com/alexanderramin/timesheet/internal/domain"

// Assignment is the per-project metadata of one selected team member.
type Assignment struct {
	Role   domain.ProjectRole
	Status domain.MemberStatus
}

// Member is a selected user with its assignment.
type Member struct {
	User domain.User
	Assignment
}

// TeamPicker selects project members. The first member picked into an empty
// team becomes PM; later ones join as Member.
type TeamPicker struct {
	*Picker[domain.User]
	assignments     map[int64]Assignment
	ShowDeactivated bool
}

func NewTeamPicker(users []domain.User) *TeamPicker {
	return &TeamPicker{
		Picker:          New(users),
		assignments:     map[int64]Assignment{},
		ShowDeactivated: true,
	}
}

func (t *TeamPicker) Select(id int64) bool {
	first := len(t.selected) == 0
	if !t.Picker.Select(id) {
		return false
	}
	role := domain.RoleMember
	if first {
		role = domain.RolePM
	}
	t.assignments[id] = Assignment{Role: role, Status: domain.MemberOfficial}
	return true
}

func (t *TeamPicker) Deselect(id int64) bool {
	if !t.Picker.Deselect(id) {
		return false
	}
	delete(t.assignments, id)
	return true
}

// Reset clears the team and makes every user in users available.
func (t *TeamPicker) Reset(users []domain.User) {
	t.Picker.Reset(users)
	t.assignments = map[int64]Assignment{}
	t.ShowDeactivated = true
}

// Assignment returns the metadata of a selected member.
func (t *TeamPicker) Assignment(id int64) (Assignment, bool) {
	a, ok := t.assignments[id]
	return a, ok
}

// SetRole changes a selected member's role.
func (t *TeamPicker) SetRole(id int64, role domain.ProjectRole) bool {
	a, ok := t.assignments[id]
	if !ok {
		return false
	}
	a.Role = role
	t.assignments[id] = a
	return true
}

// CycleRole advances a selected member to the next role.
func (t *TeamPicker) CycleRole(id int64) bool {
	a, ok := t.assignments[id]
	if !ok {
		return false
	}
	return t.SetRole(id, a.Role.Next())
}

// SetStatus changes a selected member's official/temp status.
func (t *TeamPicker) SetStatus(id int64, status domain.MemberStatus) bool {
	a, ok := t.assignments[id]
	if !ok {
		return false
	}
	a.Status = status
	t.assignments[id] = a
	return true
}

// ToggleStatus flips a selected member between Official and Temp.
func (t *TeamPicker) ToggleStatus(id int64) bool {
	a, ok := t.assignments[id]
	if !ok {
		return false
	}
	next := domain.MemberTemp
	if a.Status == domain.MemberTemp {
		next = domain.MemberOfficial
	}
	return t.SetStatus(id, next)
}

// Members returns every selected member in selection order.
func (t *TeamPicker) Members(filters ...Filter[domain.User]) []Member {
	users := t.Selected(filters...)
	out := make([]Member, 0, len(users))
	for _, u := range users {
		out = append(out, Member{User: u, Assignment: t.assignments[u.ID]})
	}
	return out
}

// VisibleMembers is Members with deactivated members hidden unless
// ShowDeactivated is set.
func (t *TeamPicker) VisibleMembers(filters ...Filter[domain.User]) []Member {
	members := t.Members(filters...)
	if t.ShowDeactivated {
		return members
	}
	out := members[:0]
	for _, m := range members {
		if m.Role != domain.RoleDeactive {
			out = append(out, m)
		}
	}
	return out
}
