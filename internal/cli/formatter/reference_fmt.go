package formatter

import (
	"strconv"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// FormatCustomers renders the customer list.
func FormatCustomers(customers []domain.Customer) string {
	if len(customers) == 0 {
		return Dim("No clients found.")
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{Dim(strconv.FormatInt(c.ID, 10)), StyleGreen.Render(c.Code), Bold(c.Name), OrDash(c.Address)})
	}
	return RenderTable([]string{"ID", "CODE", "NAME", "ADDRESS"}, rows)
}

// FormatUsers renders the user list.
func FormatUsers(users []domain.User) string {
	if len(users) == 0 {
		return Dim("No users found.")
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			Dim(strconv.FormatInt(u.ID, 10)),
			Bold(u.Name),
			OrDash(u.Email),
			OrDash(u.Branch),
			UserTypeBadge(u.Type),
		})
	}
	return RenderTable([]string{"ID", "NAME", "EMAIL", "BRANCH", "TYPE"}, rows)
}

// UserTypeBadge renders a user type in its own color.
func UserTypeBadge(t domain.UserType) string {
	switch t {
	case domain.UserStaff:
		return StyleBlue.Render(t.String())
	case domain.UserInternship:
		return StyleYellow.Render(t.String())
	default:
		return StylePurple.Render(t.String())
	}
}

// FormatTasks renders the task list.
func FormatTasks(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks found.")
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{Dim(strconv.FormatInt(t.ID, 10)), Bold(t.Name)})
	}
	return RenderTable([]string{"ID", "NAME"}, rows)
}

// FormatBranches renders the branch list.
func FormatBranches(branches []domain.Branch) string {
	if len(branches) == 0 {
		return Dim("No branches found.")
	}
	rows := make([][]string, 0, len(branches))
	for _, b := range branches {
		rows = append(rows, []string{Dim(strconv.FormatInt(b.ID, 10)), Bold(b.Label())})
	}
	return RenderTable([]string{"ID", "NAME"}, rows)
}

// FormatSession renders the signed-in identity.
func FormatSession(s domain.Session, now time.Time) string {
	left := s.ExpiresAt.Sub(now).Round(time.Minute)
	pairs := [][2]string{
		{"User", Bold(s.UserName)},
		{"Email", OrDash(s.Email)},
		{"Role", s.Role},
		{"Signed in", s.AuthenticatedAt.Local().Format("2006-01-02 15:04")},
		{"Expires", s.ExpiresAt.Local().Format("2006-01-02 15:04") + Dim(" (in "+left.String()+")")},
	}
	return KeyValue(pairs)
}
