package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
)

// projectDetailView shows one listed project. It reads only the list data
// already on the client.
type projectDetailView struct {
	state   *SharedState
	project domain.Project
}

func newProjectDetailView(state *SharedState, p domain.Project) *projectDetailView {
	return &projectDetailView{state: state, project: p}
}

func (v *projectDetailView) ID() ViewID    { return ViewProjectDetail }
func (v *projectDetailView) Title() string { return v.project.Name }

func (v *projectDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

func (v *projectDetailView) Init() tea.Cmd { return nil }

func (v *projectDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		var action service.RowAction
		switch keyMsg.String() {
		case "e":
			action = service.ActionEdit
		case "d":
			action = service.ActionDelete
		default:
			return v, nil
		}
		if _, err := v.state.App.Toolbar.Act(action, v.project.ID); err != nil {
			return v, outputCmd(formatter.StyleYellow.Render(userMessage(err)))
		}
	}
	return v, nil
}

func (v *projectDetailView) View() string {
	return "\n" + formatter.FormatProjectDetail(v.project) + "\n"
}
