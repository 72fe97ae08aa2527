package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/draft"
	"github.com/alexanderramin/timesheet/internal/service"
)

// projectSavedMsg is the outcome of one dialog save. draftID identifies the
// dialog session that issued it.
type projectSavedMsg struct {
	draftID string
	res     *api.SaveProjectResult
	list    *service.ListResult
	err     error
}

// projectDialogView is the four-tab Create Project dialog. It owns one
// draft for as long as it is on the stack.
type projectDialogView struct {
	state *SharedState
	draft *draft.Draft
	tab   draft.Tab

	general      *generalTab
	team         *teamTab
	tasks        *tasksTab
	notification *notificationTab

	showErrors bool
	err        error
	notice     string
}

func newProjectDialogView(state *SharedState) *projectDialogView {
	var refs service.ReferenceData
	if state.Refs != nil {
		refs = *state.Refs
	}
	d := draft.New(refs.Users, refs.Tasks, state.App.logger())
	d.Open()

	v := &projectDialogView{
		state:        state,
		draft:        d,
		general:      newGeneralTab(state, d),
		team:         newTeamTab(state, d),
		tasks:        newTasksTab(d),
		notification: newNotificationTab(d),
	}
	v.general.setFocus(rowClient)
	return v
}

func (v *projectDialogView) ID() ViewID    { return ViewProjectDialog }
func (v *projectDialogView) Title() string { return "Create Project" }

// CapturesInput is always true: the tabs use letter keys.
func (v *projectDialogView) CapturesInput() bool { return true }

func (v *projectDialogView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
	switch v.tab {
	case draft.TabGeneral:
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("←/→"), key.WithHelp("←/→", "choose")),
			key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new client")))
	case draft.TabTeam:
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/remove")),
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "role")),
			key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "official/temp")))
	case draft.TabTasks:
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/remove")),
			key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "billable")))
	case draft.TabNotification:
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle")))
	}
	return bindings
}

func (v *projectDialogView) Init() tea.Cmd { return nil }

func (v *projectDialogView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectSavedMsg:
		return v, v.handleSaved(msg)

	case clientCreatedMsg:
		v.general.selectCustomer(msg.customer.ID)
		v.notice = "Client " + msg.customer.Name + " added."
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *projectDialogView) subSearching() bool {
	switch v.tab {
	case draft.TabTeam:
		return v.team.capturesInput()
	case draft.TabTasks:
		return v.tasks.capturesInput()
	}
	return false
}

func (v *projectDialogView) handleKey(msg tea.KeyMsg) tea.Cmd {
	v.notice = ""
	if v.subSearching() {
		return v.forward(msg)
	}

	switch msg.String() {
	case "tab":
		v.switchTab(1)
		return nil
	case "shift+tab":
		v.switchTab(-1)
		return nil
	case "ctrl+s":
		return v.submit()
	case "esc":
		if v.draft.Busy() {
			return outputCmd(formatter.StyleYellow.Render("A save is already in progress."))
		}
		v.draft.Close()
		return popView()
	}
	return v.forward(msg)
}

func (v *projectDialogView) forward(msg tea.KeyMsg) tea.Cmd {
	if v.draft.Busy() {
		return nil
	}
	switch v.tab {
	case draft.TabGeneral:
		return v.general.update(msg)
	case draft.TabTeam:
		return v.team.update(msg)
	case draft.TabTasks:
		return v.tasks.update(msg)
	case draft.TabNotification:
		return v.notification.update(msg)
	}
	return nil
}

func (v *projectDialogView) switchTab(delta int) {
	n := len(draft.Tabs)
	v.tab = draft.Tabs[(int(v.tab)+delta+n)%n]
	switch v.tab {
	case draft.TabGeneral:
		v.general.setFocus(v.general.focus)
	case draft.TabNotification:
		v.notification.setFocus(v.notification.focus)
	}
}

// submit starts a save when the draft is complete and otherwise reveals
// every validation message.
func (v *projectDialogView) submit() tea.Cmd {
	if v.draft.Busy() {
		return nil
	}
	if !v.draft.CanSubmit() {
		v.showErrors = true
		return nil
	}
	v.err = nil
	d := v.draft
	id := d.ID()
	creator := v.state.App.Creator

	return func() tea.Msg {
		res, list, err := creator.Create(context.Background(), d)
		return projectSavedMsg{draftID: id, res: res, list: list, err: err}
	}
}

func (v *projectDialogView) handleSaved(msg projectSavedMsg) tea.Cmd {
	if msg.draftID != v.draft.ID() || errors.Is(msg.err, draft.ErrStale) {
		return nil
	}
	if msg.res == nil {
		v.err = msg.err
		v.state.App.logger().Warn("project_dialog_save_failed", zap.Error(msg.err))
		if errors.Is(msg.err, api.ErrNotAuthenticated) {
			return requireAuth
		}
		v.draft.Settle()
		return nil
	}

	v.draft.Close()
	text := formatter.Success(fmt.Sprintf("Project %s created.", msg.res.Code))
	if msg.err != nil {
		// Saved, but the list could not be reloaded.
		text += "  " + formatter.StyleYellow.Render(userMessage(msg.err))
	}
	return func() tea.Msg { return wizardCompleteMsg{nextCmd: outputCmd(text)} }
}

func (v *projectDialogView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + v.renderTabs() + "\n\n")

	switch v.tab {
	case draft.TabGeneral:
		b.WriteString(v.general.view(v.showErrors))
	case draft.TabTeam:
		b.WriteString(v.team.view())
	case draft.TabTasks:
		b.WriteString(v.tasks.view())
	case draft.TabNotification:
		b.WriteString(v.notification.view())
	}
	b.WriteString("\n\n")
	b.WriteString(v.renderFooter())
	return b.String()
}

func (v *projectDialogView) renderTabs() string {
	var parts []string
	for _, t := range draft.Tabs {
		label := t.String()
		if v.draft.TabValid(t) {
			label = "✔ " + label
		}
		if t == v.tab {
			parts = append(parts, formatter.StyleHeader.Render("["+label+"]"))
		} else {
			parts = append(parts, formatter.Dim(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (v *projectDialogView) renderFooter() string {
	var lines []string
	if v.draft.Busy() {
		lines = append(lines, "  "+formatter.Dim("Saving..."))
	}
	if v.err != nil {
		lines = append(lines, "  "+formatter.StyleRed.Render(userMessage(v.err)))
	}
	if v.showErrors {
		errs := v.draft.Errors()
		// General field messages are shown next to their fields.
		for _, k := range []string{"team", "tasks"} {
			if msg, ok := errs[k]; ok {
				lines = append(lines, "  "+formatter.StyleRed.Render(msg))
			}
		}
		if v.tab != draft.TabGeneral && !v.draft.TabValid(draft.TabGeneral) {
			n := len(v.draft.General().Errors())
			lines = append(lines, "  "+formatter.StyleRed.Render(fmt.Sprintf("General: %d field(s) need attention", n)))
		}
	}
	if v.notice != "" {
		lines = append(lines, "  "+formatter.StyleGreen.Render(v.notice))
	}
	state := formatter.Dim("draft: " + v.draft.State().String())
	lines = append(lines, "  "+state)
	return strings.Join(lines, "\n")
}
