package cli

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/picker"
	"github.com/alexanderramin/timesheet/internal/repository"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/alexanderramin/timesheet/internal/session"
	"github.com/alexanderramin/timesheet/internal/testutil"
)

// testApp wires a full App against a FakeAPI and an in-memory DB.
func testApp(t *testing.T) (*App, *testutil.FakeAPI) {
	t.Helper()
	fake := testutil.NewFakeAPI(t)
	database := testutil.NewTestDB(t)

	authClient := api.NewClient(fake.URL(), 5*time.Second)
	store := session.NewStore(authClient, repository.NewSQLiteSessionRepo(database), testutil.NewTestUoW(database))
	client := api.NewClient(fake.URL(), 5*time.Second, api.WithTokenSource(store))

	projects := service.NewProjectListService(client)
	toolbar := service.NewToolbar(projects, nil)
	return &App{
		Session:    store,
		API:        client,
		Projects:   projects,
		References: service.NewReferenceService(client),
		Toolbar:    toolbar,
		Creator:    service.NewProjectCreateService(client, toolbar),
	}, fake
}

// loggedInApp is testApp with an active session and some reference data.
func loggedInApp(t *testing.T) (*App, *testutil.FakeAPI) {
	t.Helper()
	app, fake := testApp(t)
	fake.Customers = []domain.Customer{testutil.NewTestCustomer("Acme", "ACME")}
	fake.Users = []domain.User{
		testutil.NewTestUser("Lan", testutil.WithBranch("HN1")),
		testutil.NewTestUser("Minh", testutil.WithBranch("DN"), testutil.WithUserType(domain.UserInternship)),
	}
	fake.Tasks = []domain.Task{testutil.NewTestTask("Coding"), testutil.NewTestTask("Meeting")}
	fake.Branches = []domain.Branch{{ID: 1, Name: "HN1", DisplayName: "HN1"}, {ID: 2, Name: "DN", DisplayName: "DN"}}

	ok, err := app.Session.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	require.True(t, ok)
	return app, fake
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Root command ---

func TestRootCmd_NotInteractive_ShowsHelp(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "timesheet")
	assert.Contains(t, output, "login")
}

// --- login / logout / whoami ---

func TestLoginCmd_Success(t *testing.T) {
	app, fake := testApp(t)

	output, err := executeCmd(t, app, "login", "-u", "admin", "-p", "secret")
	require.NoError(t, err)
	assert.Contains(t, output, "Logged in as admin.")
	assert.True(t, app.Session.IsAuthenticated())
	assert.Len(t, fake.RequestsTo(testutil.PathAuthenticate), 1)
}

func TestLoginCmd_WrongPassword(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "login", "-u", "admin", "-p", "nope")
	require.ErrorIs(t, err, session.ErrLoginFailed)
	assert.False(t, app.Session.IsAuthenticated())
}

func TestLoginCmd_MissingCredentials(t *testing.T) {
	app, fake := testApp(t)

	_, err := executeCmd(t, app, "login", "-u", "admin")
	require.ErrorIs(t, err, session.ErrMissingCredentials)
	assert.Empty(t, fake.RequestsTo(testutil.PathAuthenticate), "no request without credentials")
}

func TestLogoutCmd_ClearsSession(t *testing.T) {
	app, _ := loggedInApp(t)

	output, err := executeCmd(t, app, "logout")
	require.NoError(t, err)
	assert.Contains(t, output, "Logged out.")
	assert.False(t, app.Session.IsAuthenticated())
}

func TestWhoamiCmd_RequiresLogin(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "whoami")
	require.ErrorIs(t, err, api.ErrNotAuthenticated)
}

func TestWhoamiCmd_ShowsUser(t *testing.T) {
	app, _ := loggedInApp(t)

	output, err := executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, output, "admin")
	assert.Contains(t, output, "Expires")
}

// --- project ---

func TestProjectCmds_RequireLogin(t *testing.T) {
	app, fake := testApp(t)

	for _, args := range [][]string{
		{"project", "list"},
		{"project", "quantity"},
		{"project", "create", "--name", "X"},
		{"customer", "list"},
		{"user", "list"},
		{"task", "list"},
		{"branch", "list"},
	} {
		_, err := executeCmd(t, app, args...)
		assert.ErrorIs(t, err, api.ErrNotAuthenticated, "%v", args)
	}
	assert.Empty(t, fake.Requests(), "guarded commands must not reach the API")
}

func TestProjectListCmd_GroupsByClient(t *testing.T) {
	app, fake := loggedInApp(t)
	fake.Projects = []domain.Project{
		testutil.NewTestProject("Portal", testutil.WithCustomer("Acme")),
		testutil.NewTestProject("Mobile", testutil.WithCustomer("Globex")),
		testutil.NewTestProject("Legacy", testutil.WithCustomer("Acme"), testutil.WithProjectStatus(domain.ProjectDeactive)),
	}
	fake.Quantities = []domain.ProjectQuantity{{Status: domain.ProjectActive, Quantity: 2}, {Status: domain.ProjectDeactive, Quantity: 1}}

	output, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Active Projects")
	assert.Contains(t, output, "Acme (1)")
	assert.Contains(t, output, "Globex (1)")
	assert.Contains(t, output, "Portal")
	assert.NotContains(t, output, "Legacy", "deactive project hidden by the default filter")
	assert.Contains(t, output, "All 3")

	req, ok := fake.LastRequest(testutil.PathProjects)
	require.True(t, ok)
	assert.Equal(t, "0", req.Query.Get("status"))
}

func TestProjectListCmd_AllAndSearch(t *testing.T) {
	app, fake := loggedInApp(t)
	fake.Projects = []domain.Project{
		testutil.NewTestProject("Portal"),
		testutil.NewTestProject("Legacy", testutil.WithProjectStatus(domain.ProjectDeactive)),
	}

	output, err := executeCmd(t, app, "project", "list", "--status", "all", "-s", "leg")
	require.NoError(t, err)
	assert.Contains(t, output, "All Projects")
	assert.Contains(t, output, "Legacy")
	assert.NotContains(t, output, "Portal")

	req, ok := fake.LastRequest(testutil.PathProjects)
	require.True(t, ok)
	assert.False(t, req.Query.Has("status"), "all sends no status parameter")
	assert.Equal(t, "leg", req.Query.Get("search"))
}

func TestProjectListCmd_Empty(t *testing.T) {
	app, _ := loggedInApp(t)

	output, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, output, service.NoProjectsMessage)
}

func TestProjectListCmd_BadStatus(t *testing.T) {
	app, _ := loggedInApp(t)

	_, err := executeCmd(t, app, "project", "list", "--status", "frozen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status filter")
}

func TestProjectQuantityCmd(t *testing.T) {
	app, fake := loggedInApp(t)
	fake.Quantities = []domain.ProjectQuantity{{Status: domain.ProjectActive, Quantity: 7}, {Status: domain.ProjectDeactive, Quantity: 2}}

	output, err := executeCmd(t, app, "project", "quantity")
	require.NoError(t, err)
	assert.Contains(t, output, "Active 7")
	assert.Contains(t, output, "Deactive 2")
	assert.Contains(t, output, "All 9")
}

func TestProjectCreateCmd_Success(t *testing.T) {
	app, fake := loggedInApp(t)
	customer := fake.Customers[0]
	lan, minh := fake.Users[0], fake.Users[1]
	coding, meeting := fake.Tasks[0], fake.Tasks[1]

	output, err := executeCmd(t, app, "project", "create",
		"--customer", itoa(customer.ID),
		"--name", "Portal", "--code", "PORTAL",
		"--start", "2025-01-01", "--end", "2025-06-30",
		"--member", itoa(lan.ID),
		"--member", itoa(minh.ID)+":shadow:temp",
		"--task", itoa(coding.ID),
		"--task", itoa(meeting.ID)+":nonbill",
		"--channel", "C42", "--notify", "1", "--notify", "3",
	)
	require.NoError(t, err)
	assert.Contains(t, output, "Created project Portal")

	req, ok := fake.LastRequest(testutil.PathSaveProject)
	require.True(t, ok)
	var body api.SaveProjectRequest
	req.DecodeBody(t, &body)
	assert.Equal(t, "PORTAL", body.Code)
	assert.Equal(t, customer.ID, body.CustomerID)
	assert.Equal(t, string(domain.ProjectTimeAndMaterials), body.ProjectType)
	require.Len(t, body.Users, 2)
	assert.Equal(t, api.MemberAssignment{UserID: lan.ID, Role: "PM"}, body.Users[0])
	assert.Equal(t, api.MemberAssignment{UserID: minh.ID, Role: "Shadow", IsTemp: true}, body.Users[1])
	assert.Equal(t, []api.TaskAssignment{{TaskID: coding.ID, Billable: true}, {TaskID: meeting.ID, Billable: false}}, body.Tasks)
	assert.Equal(t, "C42", body.KomuChannelID)
	assert.Equal(t, []string{domain.NotificationEvents[0], domain.NotificationEvents[2]}, body.Notifications)

	assert.Len(t, fake.RequestsTo(testutil.PathProjects), 1, "list refreshed after the save")
}

func TestProjectCreateCmd_Incomplete(t *testing.T) {
	app, fake := loggedInApp(t)

	_, err := executeCmd(t, app, "project", "create", "--name", "Portal")
	require.ErrorIs(t, err, ErrIncompleteProject)
	assert.Contains(t, err.Error(), "code: Project code is required")
	assert.Contains(t, err.Error(), "team: Select at least one team member")
	assert.Empty(t, fake.RequestsTo(testutil.PathSaveProject))
}

func TestProjectCreateCmd_EndBeforeStart(t *testing.T) {
	app, fake := loggedInApp(t)

	_, err := executeCmd(t, app, "project", "create",
		"--customer", itoa(fake.Customers[0].ID), "--name", "P", "--code", "P",
		"--start", "2025-06-01", "--end", "2025-01-01",
		"--member", itoa(fake.Users[0].ID), "--task", itoa(fake.Tasks[0].ID))
	require.ErrorIs(t, err, ErrIncompleteProject)
	assert.Contains(t, err.Error(), "End date must not be before start date")
}

func TestProjectCreateCmd_UnknownMember(t *testing.T) {
	app, _ := loggedInApp(t)

	_, err := executeCmd(t, app, "project", "create", "--member", "999999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown or duplicate user")
}

func TestProjectCreateCmd_Rejected(t *testing.T) {
	app, fake := loggedInApp(t)
	fake.RejectWith(testutil.PathSaveProject, "Project code already exists")

	_, err := executeCmd(t, app, "project", "create",
		"--customer", itoa(fake.Customers[0].ID), "--name", "P", "--code", "DUP",
		"--start", "2025-01-01", "--end", "2025-02-01",
		"--member", itoa(fake.Users[0].ID), "--task", itoa(fake.Tasks[0].ID))
	require.ErrorIs(t, err, api.ErrRejected)
	assert.Equal(t, "Project code already exists", userMessage(err))
	assert.Empty(t, fake.RequestsTo(testutil.PathProjects), "no refresh after a failed save")
}

func TestParseMember(t *testing.T) {
	id, role, status, err := parseMember("12:member:temp")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.Equal(t, domain.RoleMember, role)
	assert.Equal(t, domain.MemberTemp, status)

	_, role, status, err = parseMember("7")
	require.NoError(t, err)
	assert.Empty(t, role)
	assert.Equal(t, domain.MemberOfficial, status)

	_, _, _, err = parseMember("x")
	assert.Error(t, err)
	_, _, _, err = parseMember("1:boss")
	assert.Error(t, err)
	_, _, _, err = parseMember("1:pm:maybe")
	assert.Error(t, err)
}

func TestParseTask(t *testing.T) {
	id, billable, err := parseTask("5")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.True(t, billable)

	_, billable, err = parseTask("5:nonbill")
	require.NoError(t, err)
	assert.False(t, billable)

	_, _, err = parseTask("5:sometimes")
	assert.Error(t, err)
}

// --- customer / user / task / branch ---

func TestCustomerCreateCmd(t *testing.T) {
	app, fake := loggedInApp(t)

	output, err := executeCmd(t, app, "client", "create", "--name", "Initech", "--code", "INI")
	require.NoError(t, err)
	assert.Contains(t, output, "Created client Initech [INI]")
	assert.Len(t, fake.Customers, 2)
}

func TestCustomerCreateCmd_Invalid(t *testing.T) {
	app, fake := loggedInApp(t)

	_, err := executeCmd(t, app, "customer", "create", "--name", "Initech")
	require.ErrorIs(t, err, picker.ErrInvalid)
	assert.Empty(t, fake.RequestsTo(testutil.PathSaveCustomer))
}

func TestCustomerListCmd(t *testing.T) {
	app, _ := loggedInApp(t)

	output, err := executeCmd(t, app, "customer", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "ACME")
}

func TestUserListCmd_Filters(t *testing.T) {
	app, _ := loggedInApp(t)

	output, err := executeCmd(t, app, "user", "list", "--branch", "DN")
	require.NoError(t, err)
	assert.Contains(t, output, "Minh")
	assert.NotContains(t, output, "Lan")

	output, err = executeCmd(t, app, "user", "list", "--type", "staff")
	require.NoError(t, err)
	assert.Contains(t, output, "Lan")
	assert.NotContains(t, output, "Minh")

	output, err = executeCmd(t, app, "user", "list", "-s", "nobody")
	require.NoError(t, err)
	assert.Contains(t, output, "No users found.")

	_, err = executeCmd(t, app, "user", "list", "--type", "wizard")
	assert.Error(t, err)
}

func TestTaskAndBranchListCmds(t *testing.T) {
	app, _ := loggedInApp(t)

	output, err := executeCmd(t, app, "task", "list", "-s", "cod")
	require.NoError(t, err)
	assert.Contains(t, output, "Coding")
	assert.NotContains(t, output, "Meeting")

	output, err = executeCmd(t, app, "branch", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "HN1")
	assert.Contains(t, output, "DN")
}

func TestCmd_ServerError(t *testing.T) {
	app, fake := loggedInApp(t)
	fake.FailWith(testutil.PathCustomers, http.StatusInternalServerError)

	_, err := executeCmd(t, app, "customer", "list")
	require.ErrorIs(t, err, api.ErrRequestFailed)
	assert.Equal(t, "Request failed (HTTP 500).", userMessage(err))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
