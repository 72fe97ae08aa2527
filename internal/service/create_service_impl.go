package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/draft"
)

type ProjectCreateService interface {
	// Create submits d and, once the save has completed, refreshes the
	// toolbar's list. A refresh failure is returned together with the
	// non-nil save result.
	Create(ctx context.Context, d *draft.Draft) (*api.SaveProjectResult, *ListResult, error)
}

type projectCreateService struct {
	saver    draft.ProjectSaver
	toolbar  *Toolbar
	observer UseCaseObserver
}

func NewProjectCreateService(saver draft.ProjectSaver, toolbar *Toolbar, observers ...UseCaseObserver) ProjectCreateService {
	return &projectCreateService{saver: saver, toolbar: toolbar, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectCreateService) Create(ctx context.Context, d *draft.Draft) (res *api.SaveProjectResult, list *ListResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"draft_id": d.ID()}
	defer func() { observe(ctx, s.observer, "create-project", startedAt, err, fields) }()

	res, err = d.Submit(ctx, s.saver)
	if err != nil {
		return nil, nil, err
	}
	fields["project_id"] = res.ID

	list, err = s.toolbar.Reload(ctx)
	if err != nil {
		return res, nil, fmt.Errorf("project saved but the list could not be refreshed: %w", err)
	}
	return res, list, nil
}
