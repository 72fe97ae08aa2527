package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/domain"
)

// NoProjectsMessage is shown instead of an empty list.
const NoProjectsMessage = "No projects found."

// NoCustomerGroup names the group of projects without a customer.
const NoCustomerGroup = "(no client)"

// CustomerGroup is the projects of one customer, in API order.
type CustomerGroup struct {
	Customer string
	Projects []domain.Project
}

// ListResult is one load of the Manage Projects list.
type ListResult struct {
	Filter     domain.StatusFilter
	Search     string
	Groups     []CustomerGroup
	Quantities []domain.ProjectQuantity
}

// Empty reports whether no project matched.
func (r *ListResult) Empty() bool { return r.Total() == 0 }

// Total counts the listed projects.
func (r *ListResult) Total() int {
	return lo.SumBy(r.Groups, func(g CustomerGroup) int { return len(g.Projects) })
}

// Projects returns every listed project in display order.
func (r *ListResult) Projects() []domain.Project {
	return lo.FlatMap(r.Groups, func(g CustomerGroup, _ int) []domain.Project { return g.Projects })
}

// Find returns the listed project with id.
func (r *ListResult) Find(id int64) (domain.Project, bool) {
	return lo.Find(r.Projects(), func(p domain.Project) bool { return p.ID == id })
}

// GroupByCustomer groups projects by customer name. Groups are sorted by
// name; projects keep their input order.
func GroupByCustomer(projects []domain.Project) []CustomerGroup {
	grouped := lo.GroupBy(projects, func(p domain.Project) string {
		return domain.CoalesceStr(strings.TrimSpace(p.CustomerName), NoCustomerGroup)
	})
	names := lo.Keys(grouped)
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return lo.Map(names, func(name string, _ int) CustomerGroup {
		return CustomerGroup{Customer: name, Projects: grouped[name]}
	})
}

type projectListService struct {
	gateway  ProjectGateway
	observer UseCaseObserver
}

func NewProjectListService(gateway ProjectGateway, observers ...UseCaseObserver) ProjectListService {
	return &projectListService{gateway: gateway, observer: useCaseObserverOrNoop(observers)}
}

// Load fetches the filtered list and the per-status counts together.
func (s *projectListService) Load(ctx context.Context, filter domain.StatusFilter, search string) (result *ListResult, err error) {
	startedAt := time.Now()
	search = strings.TrimSpace(search)
	fields := map[string]any{"filter": string(filter), "search": search}
	defer func() { observe(ctx, s.observer, "list-projects", startedAt, err, fields) }()

	var (
		projects   []domain.Project
		quantities []domain.ProjectQuantity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.gateway.ListProjects(gctx, api.FilterFor(filter, search))
		return err
	})
	g.Go(func() error {
		var err error
		quantities, err = s.gateway.ProjectQuantities(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	result = &ListResult{
		Filter:     filter,
		Search:     search,
		Groups:     GroupByCustomer(projects),
		Quantities: quantities,
	}
	fields["count"] = result.Total()
	return result, nil
}
