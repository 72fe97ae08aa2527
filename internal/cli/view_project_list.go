package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
)

// projectsLoadedMsg is the outcome of one numbered toolbar request.
type projectsLoadedMsg struct {
	seq uint64
	res *service.ListResult
	err error
}

// refsLoadedMsg carries the reference data the create dialog needs.
type refsLoadedMsg struct {
	refs *service.ReferenceData
	err  error
}

// projectListView is the Manage Projects screen: a status selector, a
// search box and the projects grouped by client.
type projectListView struct {
	state   *SharedState
	list    *service.ListResult
	err     error
	cursor  int
	loading bool
	opening bool

	// Search box
	searching bool
	search    string
}

func newProjectListView(state *SharedState) *projectListView {
	return &projectListView{state: state, loading: true}
}

func (v *projectListView) ID() ViewID          { return ViewProjectList }
func (v *projectListView) Title() string       { return "Manage Projects" }
func (v *projectListView) CapturesInput() bool { return v.searching }

func (v *projectListView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
		key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
	}
}

func (v *projectListView) toolbar() *service.Toolbar { return v.state.App.Toolbar }

func (v *projectListView) Init() tea.Cmd {
	v.search = v.toolbar().Search()
	v.sync()
	return v.fetch(v.toolbar().Refresh())
}

// fetch runs req in the background. Its result is applied only if no newer
// request was issued in the meantime.
func (v *projectListView) fetch(req service.ListRequest) tea.Cmd {
	v.loading = true
	tb := v.toolbar()
	return func() tea.Msg {
		res, err := tb.Fetch(context.Background(), req)
		return projectsLoadedMsg{seq: req.Seq, res: res, err: err}
	}
}

// sync re-reads the applied list from the toolbar.
func (v *projectListView) sync() {
	v.list, v.err = v.toolbar().Current()
	if n := len(v.rows()); v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

func (v *projectListView) rows() []domain.Project {
	if v.list == nil {
		return nil
	}
	return v.list.Projects()
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		if !v.toolbar().Apply(msg.seq, msg.res, msg.err) {
			return v, nil
		}
		v.loading = false
		v.sync()
		if errors.Is(msg.err, api.ErrNotAuthenticated) {
			return v, requireAuth
		}
		return v, nil

	case refsLoadedMsg:
		v.opening = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrNotAuthenticated) {
				return v, requireAuth
			}
			return v, outputCmd(shellError(msg.err))
		}
		v.state.Refs = msg.refs
		return v, pushView(newProjectDialogView(v.state))

	case refreshViewMsg:
		v.sync()
		return v, nil

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *projectListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := v.rows()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case "s":
		tb := v.toolbar()
		v.cursor = 0
		return v, v.fetch(tb.SetFilter(tb.Filter().Next()))
	case "r":
		return v, v.fetch(v.toolbar().Refresh())
	case "/":
		v.searching = true
	case "n":
		return v, v.openDialog()
	case "enter", "v":
		return v, v.act(service.ActionView)
	case "e":
		return v, v.act(service.ActionEdit)
	case "d":
		return v, v.act(service.ActionDelete)
	case "L":
		store := v.state.App.Session
		return v, func() tea.Msg {
			if err := store.Logout(context.Background()); err != nil {
				return cmdOutputMsg{output: shellError(err)}
			}
			return authRequiredMsg{}
		}
	}
	return v, nil
}

// updateSearch edits the search term. Every keystroke issues a request;
// the toolbar drops results of the superseded ones.
func (v *projectListView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		return v, nil
	case tea.KeyEsc:
		v.searching = false
		if v.search == "" {
			return v, nil
		}
		v.search = ""
	case tea.KeyBackspace:
		if v.search == "" {
			return v, nil
		}
		r := []rune(v.search)
		v.search = string(r[:len(r)-1])
	case tea.KeyRunes, tea.KeySpace:
		v.search += string(msg.Runes)
	default:
		return v, nil
	}
	v.cursor = 0
	return v, v.fetch(v.toolbar().SetSearch(v.search))
}

func (v *projectListView) selected() (domain.Project, bool) {
	rows := v.rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return domain.Project{}, false
	}
	return rows[v.cursor], true
}

func (v *projectListView) act(action service.RowAction) tea.Cmd {
	p, ok := v.selected()
	if !ok {
		return nil
	}
	project, err := v.toolbar().Act(action, p.ID)
	if err != nil {
		return outputCmd(formatter.StyleYellow.Render(userMessage(err)))
	}
	return pushView(newProjectDetailView(v.state, project))
}

func (v *projectListView) openDialog() tea.Cmd {
	if v.state.Refs != nil {
		return pushView(newProjectDialogView(v.state))
	}
	if v.opening {
		return nil
	}
	v.opening = true
	refs := v.state.App.References
	return func() tea.Msg {
		data, err := refs.Load(context.Background())
		return refsLoadedMsg{refs: data, err: err}
	}
}

func (v *projectListView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + v.renderToolbar() + "\n")
	if v.list != nil {
		b.WriteString("  " + formatter.FormatQuantities(v.list.Quantities) + "\n")
	}
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString("  " + shellError(v.err) + "\n\n")
	}
	if v.opening {
		b.WriteString("  " + formatter.Dim("Loading clients, users and tasks...") + "\n\n")
	}

	if msg := v.toolbar().Message(); msg != "" {
		if v.loading && v.list == nil {
			b.WriteString("  " + formatter.Dim("Loading projects...") + "\n")
		} else {
			b.WriteString("  " + formatter.Dim(msg) + "\n")
		}
		return b.String()
	}
	if v.list == nil {
		return b.String()
	}

	var lines []string
	i, cursorLine := 0, 0
	for _, g := range v.list.Groups {
		lines = append(lines, "  "+formatter.GroupHeading(g))
		for _, p := range g.Projects {
			if i == v.cursor {
				cursorLine = len(lines)
			}
			lines = append(lines, v.renderRow(p, i == v.cursor))
			i++
		}
		lines = append(lines, "")
	}
	if v.state.Height > 0 {
		lines = scrollWindow(lines, cursorLine, v.state.ContentHeight()-strings.Count(b.String(), "\n"))
	}
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	return b.String()
}

// scrollWindow returns at most height lines of lines, keeping focus visible.
func scrollWindow(lines []string, focus, height int) []string {
	if height < 1 {
		height = 1
	}
	if len(lines) <= height {
		return lines
	}
	start := focus - height/2
	start = max(0, min(start, len(lines)-height))
	return lines[start : start+height]
}

func (v *projectListView) renderToolbar() string {
	tb := v.toolbar()
	var opts []string
	for _, f := range domain.StatusFilters {
		if f == tb.Filter() {
			opts = append(opts, formatter.StyleHeader.Render("["+f.Label()+"]"))
		} else {
			opts = append(opts, formatter.Dim(f.Label()))
		}
	}
	search := formatter.Dim("/ to search")
	if v.searching || v.search != "" {
		search = formatter.StyleYellow.Render("/") + " " + v.search
		if v.searching {
			search += "█"
		}
	}
	line := strings.Join(opts, " ") + "   " + search
	if v.loading {
		line += "  " + formatter.Dim("…")
	}
	return line
}

func (v *projectListView) renderRow(p domain.Project, focused bool) string {
	nameStyle := formatter.StyleFg
	if focused {
		nameStyle = formatter.StyleBold
	}
	return fmt.Sprintf("  %s%s %s %s %s %s  %s",
		cursorMark(focused),
		formatter.StyleGreen.Render(formatter.PadRight(p.Code, 10)),
		nameStyle.Render(formatter.PadRight(p.Name, 28)),
		formatter.Dim(formatter.PadRight(p.PMList(), 18)),
		formatter.PadRight(strconv.Itoa(p.ActiveMember)+" members", 11),
		formatter.PadRight(p.DateRange(), 23),
		formatter.StatusPill(p.Status),
	)
}
