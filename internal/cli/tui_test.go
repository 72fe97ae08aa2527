package cli

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/alexanderramin/timesheet/internal/testutil"
)

// seedProjects gives the fake two active projects under different clients
// and one deactive one.
func seedProjects(fake *testutil.FakeAPI) {
	fake.Projects = []domain.Project{
		testutil.NewTestProject("Portal", testutil.WithCustomer("Acme"), testutil.WithPMs("Lan")),
		testutil.NewTestProject("Mobile", testutil.WithCustomer("Globex")),
		testutil.NewTestProject("Legacy", testutil.WithCustomer("Acme"), testutil.WithProjectStatus(domain.ProjectDeactive)),
	}
	fake.Quantities = []domain.ProjectQuantity{{Status: domain.ProjectActive, Quantity: 2}, {Status: domain.ProjectDeactive, Quantity: 1}}
}

func TestTUI_StartsAtLoginWithoutSession(t *testing.T) {
	app, fake := testApp(t)
	d := NewTestDriver(t, app)

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
	assert.True(t, d.ViewContains("Sign in"))
	assert.Empty(t, fake.RequestsTo(testutil.PathProjects), "nothing is loaded before login")
}

func TestTUI_LoginOpensProjectList(t *testing.T) {
	app, fake := testApp(t)
	seedProjects(fake)
	d := NewTestDriver(t, app)

	d.Login("admin", "secret")

	assert.Equal(t, ViewProjectList, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen(), "login replaces itself")
	assert.True(t, d.ViewContains("Portal"))
	assert.True(t, d.ViewContains("[admin]"), "header shows the user")
}

func TestTUI_LoginFailureKeepsUserName(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.Login("admin", "wrong")

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.True(t, d.ViewContains("Login failed. Please check your credentials."))
	v := d.ActiveView().(*loginView)
	assert.Equal(t, "admin", v.user.Value())
	assert.Empty(t, v.password.Value(), "password cleared after a failure")
	assert.Equal(t, 1, v.focus)
}

func TestTUI_LoginEnterMovesToPassword(t *testing.T) {
	app, fake := testApp(t)
	d := NewTestDriver(t, app)

	d.Type("admin")
	d.PressEnter()

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.Equal(t, 1, d.ActiveView().(*loginView).focus)
	assert.Empty(t, fake.RequestsTo(testutil.PathAuthenticate))
}

func TestTUI_LoginEscQuits(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('q')
	assert.False(t, d.IsQuitting(), "q is typed into the login form")

	d.PressEsc()
	assert.True(t, d.IsQuitting())
}

func TestTUI_ProjectListGroupsByClient(t *testing.T) {
	app, fake := loggedInApp(t)
	seedProjects(fake)
	d := NewTestDriver(t, app)

	assert.Equal(t, ViewProjectList, d.ActiveViewID())
	view := d.View()
	assert.Contains(t, view, "Acme (1)")
	assert.Contains(t, view, "Globex (1)")
	assert.Contains(t, view, "Portal")
	assert.NotContains(t, view, "Legacy")
	assert.Contains(t, view, "All 3")
}

func TestTUI_ProjectListEmpty(t *testing.T) {
	app, _ := loggedInApp(t)
	d := NewTestDriver(t, app)

	assert.True(t, d.ViewContains(service.NoProjectsMessage))
}

func TestTUI_StatusCycle(t *testing.T) {
	app, fake := loggedInApp(t)
	seedProjects(fake)
	d := NewTestDriver(t, app)

	d.PressKey('s')
	req, ok := fake.LastRequest(testutil.PathProjects)
	require.True(t, ok)
	assert.Equal(t, "1", req.Query.Get("status"))
	assert.True(t, d.ViewContains("Legacy"))
	assert.False(t, d.ViewContains("Portal"))

	d.PressKey('s')
	req, _ = fake.LastRequest(testutil.PathProjects)
	assert.False(t, req.Query.Has("status"), "all sends no status")
	assert.True(t, d.ViewContains("Legacy"))
	assert.True(t, d.ViewContains("Portal"))

	d.PressKey('s')
	req, _ = fake.LastRequest(testutil.PathProjects)
	assert.Equal(t, "0", req.Query.Get("status"))
	assert.Equal(t, domain.FilterActive, app.Toolbar.Filter())
}

func TestTUI_SearchFiltersAsYouType(t *testing.T) {
	app, fake := loggedInApp(t)
	seedProjects(fake)
	d := NewTestDriver(t, app)

	d.PressKey('/')
	d.Type("port")

	req, ok := fake.LastRequest(testutil.PathProjects)
	require.True(t, ok)
	assert.Equal(t, "port", req.Query.Get("search"))
	assert.True(t, d.ViewContains("Portal"))
	assert.False(t, d.ViewContains("Mobile"))

	d.PressKey('q')
	assert.False(t, d.IsQuitting(), "q goes into the search box")
	d.PressEnter()
	assert.Equal(t, "portq", app.Toolbar.Search())

	d.PressKey('/')
	d.PressEsc()
	assert.Empty(t, app.Toolbar.Search())
	assert.True(t, d.ViewContains("Mobile"))
}

func TestTUI_ViewShowsDetail(t *testing.T) {
	app, fake := loggedInApp(t)
	seedProjects(fake)
	d := NewTestDriver(t, app)

	d.PressKey('v')

	assert.Equal(t, ViewProjectDetail, d.ActiveViewID())
	assert.True(t, d.ViewContains("Portal"))
	assert.True(t, d.ViewContains(fake.Projects[0].Code))

	d.PressKey('e')
	assert.Contains(t, d.LastOutput(), "not available")
	assert.Equal(t, ViewProjectDetail, d.ActiveViewID())

	d.PressEsc()
	assert.Equal(t, ViewProjectList, d.ActiveViewID())
}

func TestTUI_EditAndDeleteUnavailable(t *testing.T) {
	app, fake := loggedInApp(t)
	seedProjects(fake)
	d := NewTestDriver(t, app)

	d.PressDown()
	d.PressKey('d')

	assert.Equal(t, ViewProjectList, d.ActiveViewID())
	assert.Contains(t, d.LastOutput(), "not available")
	assert.Empty(t, fake.RequestsTo(testutil.PathSaveProject))
}

func TestTUI_ListErrorShown(t *testing.T) {
	app, fake := loggedInApp(t)
	fake.FailWith(testutil.PathProjects, http.StatusInternalServerError)
	d := NewTestDriver(t, app)

	assert.True(t, d.ViewContains("Request failed (HTTP 500)."))
	assert.False(t, d.ViewContains(service.NoProjectsMessage), "a failed load is not an empty list")
}

func TestTUI_ExpiredTokenReturnsToLogin(t *testing.T) {
	app, fake := loggedInApp(t)
	fake.Token = "rotated"
	d := NewTestDriver(t, app)

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.Equal(t, []ViewID{ViewLogin}, d.ViewStackIDs())
}

func TestTUI_LogoutReturnsToLogin(t *testing.T) {
	app, fake := loggedInApp(t)
	seedProjects(fake)
	d := NewTestDriver(t, app)

	d.PressKey('L')

	assert.Equal(t, ViewLogin, d.ActiveViewID())
	assert.False(t, app.Session.IsAuthenticated())
	assert.False(t, d.ViewContains("[admin]"))
}

func TestTUI_QuitWithQ(t *testing.T) {
	app, _ := loggedInApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressCtrlC()

	assert.True(t, d.IsQuitting())
}

func TestGuardView_RedirectsPushesWithoutSession(t *testing.T) {
	app, _ := testApp(t)
	state := &SharedState{App: app}

	v := guardView(state, newProjectDetailView(state, testutil.NewTestProject("X")))
	login, ok := v.(*loginView)
	require.True(t, ok)
	assert.Equal(t, ViewProjectDetail, login.next.ID())

	same := newLoginView(state, nil)
	assert.Same(t, same, guardView(state, same))
}

func TestScrollWindow(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "f"}

	assert.Equal(t, lines, scrollWindow(lines, 0, 10))
	assert.Equal(t, []string{"a", "b", "c"}, scrollWindow(lines, 0, 3))
	assert.Equal(t, []string{"c", "d", "e"}, scrollWindow(lines, 3, 3))
	assert.Equal(t, []string{"d", "e", "f"}, scrollWindow(lines, 5, 3))
	assert.Equal(t, []string{"f"}, scrollWindow(lines, 5, 0))
}
