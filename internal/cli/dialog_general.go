package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/draft"
)

// General tab rows, in display order.
const (
	rowClient = iota
	rowName
	rowCode
	rowStart
	rowEnd
	rowType
	rowNote
	rowAllUser
	generalRows
)

// generalRowKeys maps rows to draft.General error keys.
var generalRowKeys = map[int]string{
	rowClient: "customer",
	rowName:   "name",
	rowCode:   "code",
	rowStart:  "startDate",
	rowEnd:    "endDate",
	rowType:   "projectType",
}

// generalTab edits draft.General.
type generalTab struct {
	state *SharedState
	draft *draft.Draft

	focus   int
	inputs  map[int]*textinput.Model
	touched map[int]bool
}

func newGeneralTab(state *SharedState, d *draft.Draft) *generalTab {
	t := &generalTab{state: state, draft: d, touched: map[int]bool{}}
	name := newTextInput("Project name", 40)
	code := newTextInput("PROJECT-CODE", 20)
	start := newTextInput("YYYY-MM-DD", 10)
	end := newTextInput("YYYY-MM-DD", 10)
	note := newTextInput("optional", 40)
	t.inputs = map[int]*textinput.Model{rowName: &name, rowCode: &code, rowStart: &start, rowEnd: &end, rowNote: &note}
	return t
}

func (t *generalTab) customers() []domain.Customer {
	if t.state.Refs == nil {
		return nil
	}
	return t.state.Refs.Customers
}

func (t *generalTab) setFocus(row int) {
	t.focus = (row + generalRows) % generalRows
	for r, in := range t.inputs {
		if r == t.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// selectCustomer makes id the project's client.
func (t *generalTab) selectCustomer(id int64) {
	t.draft.UpdateGeneral(func(g *draft.General) { g.CustomerID = id })
	t.touched[rowClient] = true
}

func (t *generalTab) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		t.setFocus(t.focus - 1)
		return nil
	case tea.KeyDown, tea.KeyEnter:
		t.setFocus(t.focus + 1)
		return nil
	}

	switch t.focus {
	case rowClient:
		switch msg.String() {
		case "left", "right":
			t.cycleCustomer(msg.String() == "right")
		case "+", "ctrl+n":
			return startCreateClient(t.state)
		}
		return nil
	case rowType:
		if msg.String() == "left" || msg.String() == "right" {
			t.cycleType(msg.String() == "right")
		}
		return nil
	case rowAllUser:
		if msg.Type == tea.KeySpace || msg.String() == "left" || msg.String() == "right" {
			t.draft.UpdateGeneral(func(g *draft.General) { g.AllUser = !g.AllUser })
		}
		return nil
	}

	in := t.inputs[t.focus]
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	t.touched[t.focus] = true
	t.commit()
	return cmd
}

// commit copies the text inputs into the draft.
func (t *generalTab) commit() {
	t.draft.UpdateGeneral(func(g *draft.General) {
		g.Name = t.inputs[rowName].Value()
		g.Code = t.inputs[rowCode].Value()
		g.StartDate = t.inputs[rowStart].Value()
		g.EndDate = t.inputs[rowEnd].Value()
		g.Note = t.inputs[rowNote].Value()
	})
}

func (t *generalTab) cycleCustomer(forward bool) {
	list := t.customers()
	if len(list) == 0 {
		return
	}
	cur := t.draft.General().CustomerID
	idx := -1
	for i, c := range list {
		if c.ID == cur {
			idx = i
		}
	}
	switch {
	case idx < 0 && forward:
		idx = 0
	case idx < 0:
		idx = len(list) - 1
	case forward:
		idx = (idx + 1) % len(list)
	default:
		idx = (idx - 1 + len(list)) % len(list)
	}
	t.selectCustomer(list[idx].ID)
}

func (t *generalTab) cycleType(forward bool) {
	cur := t.draft.General().ProjectType
	idx := -1
	for i, pt := range domain.ProjectTypes {
		if string(pt) == cur {
			idx = i
		}
	}
	n := len(domain.ProjectTypes)
	switch {
	case idx < 0:
		idx = 0
	case forward:
		idx = (idx + 1) % n
	default:
		idx = (idx - 1 + n) % n
	}
	t.draft.UpdateGeneral(func(g *draft.General) { g.ProjectType = string(domain.ProjectTypes[idx]) })
	t.touched[rowType] = true
}

func (t *generalTab) customerLabel(id int64) string {
	for _, c := range t.customers() {
		if c.ID == id {
			return c.Name + formatter.Dim(" ["+c.Code+"]")
		}
	}
	return formatter.Dim("none")
}

func (t *generalTab) view(showAll bool) string {
	g := t.draft.General()
	errs := g.Errors()

	const labelWidth = 14
	row := func(r int, label, value string) string {
		line := "  " + cursorMark(t.focus == r) + fieldLabel(label, t.focus == r, labelWidth) + value
		if key, ok := generalRowKeys[r]; ok && (showAll || t.touched[r]) {
			if msg, bad := errs[key]; bad {
				line += "  " + formatter.StyleRed.Render(msg)
			}
		}
		return line
	}

	selector := func(text string, focused bool) string {
		if focused {
			return formatter.StyleYellow.Render("‹ ") + text + formatter.StyleYellow.Render(" ›")
		}
		return text
	}

	typeLabel := formatter.Dim("none")
	if g.ProjectType != "" {
		typeLabel = g.ProjectType
	}

	lines := []string{
		row(rowClient, "Client", selector(t.customerLabel(g.CustomerID), t.focus == rowClient)+formatter.Dim("   + new client")),
		row(rowName, "Name", t.inputs[rowName].View()),
		row(rowCode, "Code", t.inputs[rowCode].View()),
		row(rowStart, "Start date", t.inputs[rowStart].View()),
		row(rowEnd, "End date", t.inputs[rowEnd].View()),
		row(rowType, "Project type", selector(typeLabel, t.focus == rowType)),
		row(rowNote, "Note", t.inputs[rowNote].View()),
		row(rowAllUser, "All users", formatter.Check(g.AllUser)+formatter.Dim(" every user belongs to this project")),
	}
	return strings.Join(lines, "\n")
}
