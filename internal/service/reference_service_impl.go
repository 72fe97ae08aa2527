package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// ReferenceData is everything the create dialog offers to pick from.
type ReferenceData struct {
	Customers []domain.Customer
	Users     []domain.User
	Tasks     []domain.Task
	Branches  []domain.Branch
}

// BranchNames returns the distinct branch labels for the team filter.
func (r *ReferenceData) BranchNames() []string {
	names := lo.Map(r.Branches, func(b domain.Branch, _ int) string { return b.Label() })
	if len(names) == 0 {
		names = lo.Map(r.Users, func(u domain.User, _ int) string { return u.Branch })
	}
	return lo.Uniq(lo.Compact(names))
}

type referenceService struct {
	gateway  ReferenceGateway
	observer UseCaseObserver
}

func NewReferenceService(gateway ReferenceGateway, observers ...UseCaseObserver) ReferenceService {
	return &referenceService{gateway: gateway, observer: useCaseObserverOrNoop(observers)}
}

// Load fetches the four reference lists concurrently. The first failure
// cancels the rest and is returned.
func (s *referenceService) Load(ctx context.Context) (data *ReferenceData, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "load-reference-data", startedAt, err, nil) }()

	data = &ReferenceData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Customers, err = s.gateway.ListCustomers(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Users, err = s.gateway.ListUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Tasks, err = s.gateway.ListTasks(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Branches, err = s.gateway.ListBranches(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
