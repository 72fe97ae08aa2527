package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/draft"
	"github.com/alexanderramin/timesheet/internal/picker"
	"github.com/alexanderramin/timesheet/internal/testutil"
)

func setupGateway(t *testing.T) (*testutil.FakeAPI, *api.Client) {
	t.Helper()
	fake := testutil.NewFakeAPI(t)
	client := api.NewClient(fake.URL(), 2*time.Second, api.WithTokenSource(api.StaticToken(fake.Token)))
	return fake, client
}

func TestGroupByCustomer(t *testing.T) {
	projects := []domain.Project{
		testutil.NewTestProject("Z1", testutil.WithCustomer("Zeta")),
		testutil.NewTestProject("A1", testutil.WithCustomer("acme")),
		testutil.NewTestProject("Z2", testutil.WithCustomer("Zeta")),
		testutil.NewTestProject("N1", testutil.WithCustomer("")),
		testutil.NewTestProject("B1", testutil.WithCustomer("Beta")),
	}

	groups := GroupByCustomer(projects)
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Customer)
	}
	assert.Equal(t, []string{NoCustomerGroup, "acme", "Beta", "Zeta"}, names)
	assert.Equal(t, "Z1", groups[3].Projects[0].Name)
	assert.Equal(t, "Z2", groups[3].Projects[1].Name)
}

func TestProjectListService_ActiveAcme(t *testing.T) {
	fake, client := setupGateway(t)
	fake.Quantities = []domain.ProjectQuantity{{Status: domain.ProjectActive, Quantity: 0}}
	svc := NewProjectListService(client)

	res, err := svc.Load(context.Background(), domain.FilterActive, "Acme")
	require.NoError(t, err)
	assert.True(t, res.Empty())

	rec, ok := fake.LastRequest(testutil.PathProjects)
	require.True(t, ok)
	assert.Equal(t, "0", rec.Query.Get("status"))
	assert.Equal(t, "Acme", rec.Query.Get("search"))
	assert.Len(t, fake.RequestsTo(testutil.PathQuantities), 1)
}

func TestProjectListService_GroupsAndCounts(t *testing.T) {
	fake, client := setupGateway(t)
	fake.Projects = []domain.Project{
		testutil.NewTestProject("Portal", testutil.WithCustomer("Globex")),
		testutil.NewTestProject("Billing", testutil.WithCustomer("Acme")),
		testutil.NewTestProject("Old", testutil.WithCustomer("Acme"), testutil.WithProjectStatus(domain.ProjectDeactive)),
	}
	fake.Quantities = []domain.ProjectQuantity{
		{Status: domain.ProjectActive, Quantity: 2},
		{Status: domain.ProjectDeactive, Quantity: 1},
	}
	svc := NewProjectListService(client)

	res, err := svc.Load(context.Background(), domain.FilterAll, "  ")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total())
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "Acme", res.Groups[0].Customer)
	assert.Len(t, res.Groups[0].Projects, 2)
	assert.Equal(t, 1, domain.QuantityFor(res.Quantities, domain.ProjectDeactive))
	assert.Equal(t, "", res.Search)

	rec, _ := fake.LastRequest(testutil.PathProjects)
	assert.False(t, rec.Query.Has("status"))
}

func TestProjectListService_FailureSurfaces(t *testing.T) {
	fake, client := setupGateway(t)
	fake.FailWith(testutil.PathQuantities, http.StatusInternalServerError)
	svc := NewProjectListService(client)

	_, err := svc.Load(context.Background(), domain.FilterActive, "")
	assert.ErrorIs(t, err, api.ErrRequestFailed)
	assert.Equal(t, http.StatusInternalServerError, api.StatusCode(err))
}

func TestToolbar_AppliesOnlyLatestRequest(t *testing.T) {
	_, client := setupGateway(t)
	tb := NewToolbar(NewProjectListService(client), nil)

	first := tb.SetSearch("a")
	second := tb.SetSearch("ab")
	assert.Greater(t, second.Seq, first.Seq)

	newer := &ListResult{Search: "ab"}
	older := &ListResult{Search: "a"}
	assert.True(t, tb.Apply(second.Seq, newer, nil))
	assert.False(t, tb.Apply(first.Seq, older, nil), "superseded result must be dropped")

	cur, err := tb.Current()
	require.NoError(t, err)
	assert.Same(t, newer, cur)
}

func TestToolbar_StaleErrorIgnored(t *testing.T) {
	_, client := setupGateway(t)
	tb := NewToolbar(NewProjectListService(client), nil)

	stale := tb.Refresh()
	latest := tb.SetFilter(domain.FilterDeactive)
	assert.Equal(t, domain.FilterDeactive, latest.Filter)

	assert.False(t, tb.Apply(stale.Seq, nil, errors.New("timeout")))
	_, err := tb.Current()
	assert.NoError(t, err)
}

func TestToolbar_ReloadAndEmptyMessage(t *testing.T) {
	fake, client := setupGateway(t)
	tb := NewToolbar(NewProjectListService(client), nil)

	res, err := tb.Reload(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Equal(t, "No projects found.", tb.Message())

	fake.Projects = []domain.Project{testutil.NewTestProject("Portal")}
	_, err = tb.Reload(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tb.Message())
}

func TestToolbar_ErrorKeepsPreviousList(t *testing.T) {
	fake, client := setupGateway(t)
	fake.Projects = []domain.Project{testutil.NewTestProject("Portal")}
	tb := NewToolbar(NewProjectListService(client), nil)
	_, err := tb.Reload(context.Background())
	require.NoError(t, err)

	fake.FailWith(testutil.PathProjects, http.StatusBadGateway)
	_, err = tb.Reload(context.Background())
	require.Error(t, err)

	cur, curErr := tb.Current()
	assert.Error(t, curErr)
	require.NotNil(t, cur)
	assert.Equal(t, 1, cur.Total())
}

func TestToolbar_FirstLoadFailureIsNotEmpty(t *testing.T) {
	fake, client := setupGateway(t)
	fake.FailWith(testutil.PathProjects, http.StatusInternalServerError)
	tb := NewToolbar(NewProjectListService(client), nil)

	assert.Equal(t, NoProjectsMessage, tb.Message(), "nothing requested yet")

	_, err := tb.Reload(context.Background())
	require.Error(t, err)
	assert.Empty(t, tb.Message())

	fake.Reset()
	_, err = tb.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NoProjectsMessage, tb.Message())
}

func TestToolbar_RowActions(t *testing.T) {
	fake, client := setupGateway(t)
	p := testutil.NewTestProject("Portal")
	fake.Projects = []domain.Project{p}
	tb := NewToolbar(NewProjectListService(client), nil)

	_, err := tb.Act(ActionView, p.ID)
	assert.ErrorIs(t, err, ErrProjectNotListed)

	_, err = tb.Reload(context.Background())
	require.NoError(t, err)

	got, err := tb.Act(ActionView, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portal", got.Name)

	_, err = tb.Act(ActionEdit, p.ID)
	assert.ErrorIs(t, err, ErrActionUnavailable)
	_, err = tb.Act(ActionDelete, p.ID)
	assert.ErrorIs(t, err, ErrActionUnavailable)

	_, err = tb.Act(ActionView, -1)
	assert.ErrorIs(t, err, ErrProjectNotListed)
	assert.Len(t, fake.Requests(), 2, "row actions make no remote calls")
}

func TestReferenceService_Load(t *testing.T) {
	fake, client := setupGateway(t)
	fake.Customers = []domain.Customer{testutil.NewTestCustomer("Acme", "ACM")}
	fake.Users = []domain.User{testutil.NewTestUser("An", testutil.WithBranch("HN1")), testutil.NewTestUser("Binh", testutil.WithBranch("HN1"))}
	fake.Tasks = []domain.Task{testutil.NewTestTask("Coding")}
	svc := NewReferenceService(client)

	data, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Customers, 1)
	assert.Len(t, data.Users, 2)
	assert.Len(t, data.Tasks, 1)
	assert.Equal(t, []string{"HN1"}, data.BranchNames(), "falls back to user branches")

	data.Branches = []domain.Branch{{ID: 1, Name: "HN1", DisplayName: "Ha Noi 1"}, {ID: 2, Name: "SG"}}
	assert.Equal(t, []string{"Ha Noi 1", "SG"}, data.BranchNames())
}

func TestReferenceService_FirstErrorWins(t *testing.T) {
	fake, client := setupGateway(t)
	fake.FailWith(testutil.PathTasks, http.StatusServiceUnavailable)
	svc := NewReferenceService(client)

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, api.ErrRequestFailed)
}

func readyDraft(t *testing.T, fake *testutil.FakeAPI) *draft.Draft {
	t.Helper()
	customer := testutil.NewTestCustomer("Acme", "ACM")
	fake.Customers = append(fake.Customers, customer)
	user := testutil.NewTestUser("An")
	task := testutil.NewTestTask("Coding")
	d := draft.New([]domain.User{user}, []domain.Task{task}, nil)
	d.UpdateGeneral(func(g *draft.General) {
		g.CustomerID = customer.ID
		g.Name = "Portal"
		g.Code = "PRT"
		g.StartDate = "2025-01-01"
		g.EndDate = "2025-12-31"
		g.ProjectType = string(domain.ProjectODC)
	})
	d.EditTeam(func(tp *picker.TeamPicker) { tp.Select(user.ID) })
	d.EditTasks(func(tp *picker.TaskPicker) { tp.Select(task.ID) })
	require.Equal(t, draft.Valid, d.State())
	return d
}

func TestCreateService_RefreshesAfterSave(t *testing.T) {
	fake, client := setupGateway(t)
	tb := NewToolbar(NewProjectListService(client), nil)
	svc := NewProjectCreateService(client, tb)
	d := readyDraft(t, fake)

	res, list, err := svc.Create(context.Background(), d)
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	require.NotNil(t, list)
	assert.Equal(t, 1, list.Total())
	assert.Equal(t, draft.Saved, d.State())

	var order []string
	for _, r := range fake.Requests() {
		order = append(order, r.Path)
	}
	require.GreaterOrEqual(t, len(order), 2)
	assert.Equal(t, testutil.PathSaveProject, order[0], "save completes before the refresh is issued")
}

func TestCreateService_FailureSkipsRefresh(t *testing.T) {
	fake, client := setupGateway(t)
	tb := NewToolbar(NewProjectListService(client), nil)
	svc := NewProjectCreateService(client, tb)
	d := readyDraft(t, fake)
	fake.RejectWith(testutil.PathSaveProject, "Customer not found")

	_, _, err := svc.Create(context.Background(), d)
	assert.ErrorIs(t, err, api.ErrRejected)
	assert.Equal(t, draft.Failed, d.State())
	assert.Empty(t, fake.RequestsTo(testutil.PathProjects))
}

func TestLogUseCaseObserver(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewLogUseCaseObserver(zap.New(core))
	_, client := setupGateway(t)

	_, err := NewProjectListService(client, obs).Load(context.Background(), domain.FilterActive, "x")
	require.NoError(t, err)

	entries := logs.FilterMessage("service_use_case").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "list-projects", ctx["use_case"])
	assert.Equal(t, true, ctx["success"])
}
