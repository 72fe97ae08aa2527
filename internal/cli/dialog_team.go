package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/draft"
	"github.com/alexanderramin/timesheet/internal/picker"
)

// userTypeOptions are the type filter choices; nil means every type.
var userTypeOptions = []*domain.UserType{nil, ptr(domain.UserStaff), ptr(domain.UserInternship), ptr(domain.UserCollaborator)}

func ptr[T any](v T) *T { return &v }

// listPane tracks a cursor over one side of a picker.
type listPane struct {
	cursor int
}

func (p *listPane) move(delta, n int) {
	p.cursor = max(min(p.cursor+delta, n-1), 0)
}

// teamTab edits the team picker: filters and the available list on the
// left, selected members with their role and status on the right.
type teamTab struct {
	state *SharedState
	draft *draft.Draft

	pane      int // 0 available, 1 selected
	panes     [2]listPane
	branch    int
	userType  int
	search    string
	searching bool
}

func newTeamTab(state *SharedState, d *draft.Draft) *teamTab {
	return &teamTab{state: state, draft: d}
}

func (t *teamTab) branches() []string {
	names := []string{picker.AllBranches}
	if t.state.Refs != nil {
		names = append(names, t.state.Refs.BranchNames()...)
	}
	return names
}

func (t *teamTab) filter() picker.Filter[domain.User] {
	var types []domain.UserType
	if ut := userTypeOptions[t.userType]; ut != nil {
		types = append(types, *ut)
	}
	return picker.All(
		picker.ByBranch(t.branches()[t.branch]),
		picker.ByType(types...),
		picker.BySearch(t.search),
	)
}

func (t *teamTab) available() []domain.User {
	return t.draft.Team().Available(t.filter())
}

func (t *teamTab) members() []picker.Member {
	return t.draft.Team().VisibleMembers()
}

func (t *teamTab) capturesInput() bool { return t.searching }

func (t *teamTab) update(msg tea.KeyMsg) tea.Cmd {
	if t.searching {
		t.updateSearch(msg)
		return nil
	}

	avail, members := t.available(), t.members()
	switch msg.String() {
	case "left", "right":
		t.pane = 1 - t.pane
	case "up", "k":
		t.panes[t.pane].move(-1, t.paneLen(avail, members))
	case "down", "j":
		t.panes[t.pane].move(1, t.paneLen(avail, members))
	case "enter", " ":
		if t.pane == 0 && t.panes[0].cursor < len(avail) {
			id := avail[t.panes[0].cursor].ID
			t.draft.EditTeam(func(p *picker.TeamPicker) { p.Select(id) })
		} else if t.pane == 1 && t.panes[1].cursor < len(members) {
			id := members[t.panes[1].cursor].User.ID
			t.draft.EditTeam(func(p *picker.TeamPicker) { p.Deselect(id) })
		}
		t.clamp()
	case "r":
		if id, ok := t.memberAtCursor(members); ok {
			t.draft.EditTeam(func(p *picker.TeamPicker) { p.CycleRole(id) })
			t.clamp()
		}
	case "o":
		if id, ok := t.memberAtCursor(members); ok {
			t.draft.EditTeam(func(p *picker.TeamPicker) { p.ToggleStatus(id) })
		}
	case "b":
		t.branch = (t.branch + 1) % len(t.branches())
		t.panes[0].cursor = 0
	case "t":
		t.userType = (t.userType + 1) % len(userTypeOptions)
		t.panes[0].cursor = 0
	case "h":
		t.draft.EditTeam(func(p *picker.TeamPicker) { p.ShowDeactivated = !p.ShowDeactivated })
		t.clamp()
	case "/":
		t.searching = true
	}
	return nil
}

func (t *teamTab) updateSearch(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		t.searching = false
	case tea.KeyEsc:
		t.searching = false
		t.search = ""
	case tea.KeyBackspace:
		if r := []rune(t.search); len(r) > 0 {
			t.search = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		t.search += string(msg.Runes)
	}
	t.panes[0].cursor = 0
}

func (t *teamTab) paneLen(avail []domain.User, members []picker.Member) int {
	if t.pane == 0 {
		return len(avail)
	}
	return len(members)
}

func (t *teamTab) memberAtCursor(members []picker.Member) (int64, bool) {
	if t.pane != 1 || t.panes[1].cursor >= len(members) {
		return 0, false
	}
	return members[t.panes[1].cursor].User.ID, true
}

// clamp keeps both cursors inside their lists after a move between them.
func (t *teamTab) clamp() {
	t.panes[0].move(0, len(t.available()))
	t.panes[1].move(0, len(t.members()))
}

func (t *teamTab) view() string {
	typeLabel := "all types"
	if ut := userTypeOptions[t.userType]; ut != nil {
		typeLabel = ut.String()
	}
	search := formatter.Dim("/ search")
	if t.searching || t.search != "" {
		search = formatter.StyleYellow.Render("/ ") + t.search
		if t.searching {
			search += "█"
		}
	}
	filters := fmt.Sprintf("  %s %s   %s %s   %s",
		formatter.Dim("b branch:"), formatter.Bold(t.branches()[t.branch]),
		formatter.Dim("t type:"), formatter.Bold(typeLabel),
		search)

	avail := t.available()
	var left strings.Builder
	left.WriteString(t.paneTitle(0, fmt.Sprintf("Available (%d)", len(avail))) + "\n")
	for i, u := range avail {
		left.WriteString(cursorMark(t.pane == 0 && i == t.panes[0].cursor) +
			formatter.PadRight(u.Name, 18) + " " + formatter.Dim(formatter.PadRight(u.Branch, 6)) + " " + formatter.UserTypeBadge(u.Type) + "\n")
	}

	members := t.members()
	var right strings.Builder
	right.WriteString(t.paneTitle(1, fmt.Sprintf("Selected (%d)", len(members))) + "\n")
	for i, m := range members {
		right.WriteString(cursorMark(t.pane == 1 && i == t.panes[1].cursor) +
			formatter.PadRight(m.User.Name, 18) + " " +
			formatter.RoleStyle(m.Role).Render(formatter.PadRight(string(m.Role), 9)) + " " +
			formatter.Dim(string(m.Status)) + "\n")
	}
	if len(members) == 0 {
		right.WriteString(formatter.Dim("  no members yet") + "\n")
	}
	hidden := "shown"
	if !t.draft.Team().ShowDeactivated {
		hidden = "hidden"
	}
	right.WriteString("\n" + formatter.Dim("h deactivated members: "+hidden))

	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(44).Render(left.String()),
		right.String())
	return filters + "\n\n" + indent(cols, "  ")
}

func (t *teamTab) paneTitle(pane int, text string) string {
	if t.pane == pane {
		return formatter.StyleHeader.Render(text)
	}
	return formatter.Dim(text)
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
