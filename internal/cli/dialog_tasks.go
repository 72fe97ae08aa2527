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

// tasksTab moves tasks between the catalogue and the project and marks
// selected ones billable or not.
type tasksTab struct {
	draft *draft.Draft

	pane      int
	panes     [2]listPane
	search    string
	searching bool
}

func newTasksTab(d *draft.Draft) *tasksTab {
	return &tasksTab{draft: d}
}

func (t *tasksTab) available() []domain.Task {
	return t.draft.Tasks().Available(picker.TaskSearch(t.search))
}

func (t *tasksTab) items() []picker.TaskItem {
	return t.draft.Tasks().Items()
}

func (t *tasksTab) capturesInput() bool { return t.searching }

func (t *tasksTab) update(msg tea.KeyMsg) tea.Cmd {
	if t.searching {
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
		return nil
	}

	avail, items := t.available(), t.items()
	n := len(avail)
	if t.pane == 1 {
		n = len(items)
	}
	switch msg.String() {
	case "left", "right":
		t.pane = 1 - t.pane
	case "up", "k":
		t.panes[t.pane].move(-1, n)
	case "down", "j":
		t.panes[t.pane].move(1, n)
	case "enter", " ":
		if t.pane == 0 && t.panes[0].cursor < len(avail) {
			id := avail[t.panes[0].cursor].ID
			t.draft.EditTasks(func(p *picker.TaskPicker) { p.Select(id) })
		} else if t.pane == 1 && t.panes[1].cursor < len(items) {
			id := items[t.panes[1].cursor].Task.ID
			t.draft.EditTasks(func(p *picker.TaskPicker) { p.Deselect(id) })
		}
		t.panes[0].move(0, len(t.available()))
		t.panes[1].move(0, len(t.items()))
	case "b":
		if t.pane == 1 && t.panes[1].cursor < len(items) {
			id := items[t.panes[1].cursor].Task.ID
			t.draft.EditTasks(func(p *picker.TaskPicker) { p.ToggleBillable(id) })
		}
	case "/":
		t.searching = true
	}
	return nil
}

func (t *tasksTab) view() string {
	search := formatter.Dim("/ search")
	if t.searching || t.search != "" {
		search = formatter.StyleYellow.Render("/ ") + t.search
		if t.searching {
			search += "█"
		}
	}

	title := func(pane int, text string) string {
		if t.pane == pane {
			return formatter.StyleHeader.Render(text)
		}
		return formatter.Dim(text)
	}

	avail := t.available()
	var left strings.Builder
	left.WriteString(title(0, fmt.Sprintf("Tasks (%d)", len(avail))) + "\n")
	for i, task := range avail {
		left.WriteString(cursorMark(t.pane == 0 && i == t.panes[0].cursor) + formatter.PadRight(task.Name, 34) + "\n")
	}

	items := t.items()
	var right strings.Builder
	right.WriteString(title(1, fmt.Sprintf("Selected (%d)", len(items))) + "\n")
	for i, it := range items {
		billable := formatter.StyleGreen.Render("billable")
		if !it.Billable {
			billable = formatter.Dim("non-billable")
		}
		right.WriteString(cursorMark(t.pane == 1 && i == t.panes[1].cursor) + formatter.PadRight(it.Task.Name, 28) + " " + billable + "\n")
	}
	if len(items) == 0 {
		right.WriteString(formatter.Dim("  no tasks yet") + "\n")
	}

	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(40).Render(left.String()),
		right.String())
	return "  " + search + "\n\n" + indent(cols, "  ")
}
