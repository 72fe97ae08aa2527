package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timesheet/internal/teatest"
)

// TestDriver wraps teatest.Driver with timesheet-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// output line) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// tuiCmdTimeout leaves room for round trips to the in-process FakeAPI while
// staying under the cursor blink interval.
const tuiCmdTimeout = 250 * time.Millisecond

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads the project list from the FakeAPI when signed in).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithCmdTimeout(tuiCmdTimeout))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Login fills the login view and submits it.
func (d *TestDriver) Login(user, password string) {
	d.T.Helper()
	d.Type(user)
	d.PressTab()
	d.Type(password)
	d.PressEnter()
}

// PressCtrl sends a control key such as tea.KeyCtrlS.
func (d *TestDriver) PressCtrl(k tea.KeyType) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: k})
}

// ── Timesheet-specific inspection ────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.ActiveView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// LastOutput returns the transient output line.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

// Dialog returns the active create dialog, failing the test if another
// view is on top.
func (d *TestDriver) Dialog() *projectDialogView {
	d.T.Helper()
	v, ok := d.ActiveView().(*projectDialogView)
	if !ok {
		d.T.Fatalf("active view is %v, not the project dialog", d.ActiveViewID())
	}
	return v
}
