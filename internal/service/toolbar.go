package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/alexanderramin/timesheet/internal/domain"
)

// ErrActionUnavailable is returned for row actions with no remote contract.
var ErrActionUnavailable = errors.New("not available")

// ErrProjectNotListed is returned when a row action names a project that is
// not in the current list.
var ErrProjectNotListed = errors.New("project not in current list")

// RowAction is a per-row affordance of the project list.
type RowAction string

const (
	ActionView   RowAction = "view"
	ActionEdit   RowAction = "edit"
	ActionDelete RowAction = "delete"
)

// ListRequest is one numbered fetch issued by the Toolbar.
type ListRequest struct {
	Seq    uint64
	Filter domain.StatusFilter
	Search string
}

// Toolbar owns the status selector and search term of the project list.
// Each change issues a new numbered request; only the result of the most
// recently issued request is applied, so out-of-order responses cannot
// overwrite newer data.
type Toolbar struct {
	svc    ProjectListService
	logger *zap.Logger

	mu      sync.Mutex
	filter  domain.StatusFilter
	search  string
	seq     uint64
	current *ListResult
	lastErr error
}

func NewToolbar(svc ProjectListService, logger *zap.Logger) *Toolbar {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Toolbar{svc: svc, logger: logger.Named("toolbar"), filter: domain.FilterActive}
}

// Filter returns the selected status filter.
func (t *Toolbar) Filter() domain.StatusFilter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filter
}

// Search returns the current search term.
func (t *Toolbar) Search() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.search
}

// SetFilter changes the status selector and issues a request.
func (t *Toolbar) SetFilter(f domain.StatusFilter) ListRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = f
	return t.issue()
}

// SetSearch changes the search term and issues a request.
func (t *Toolbar) SetSearch(s string) ListRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.search = s
	return t.issue()
}

// Refresh issues a request for the current selector and search term.
func (t *Toolbar) Refresh() ListRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.issue()
}

func (t *Toolbar) issue() ListRequest {
	t.seq++
	return ListRequest{Seq: t.seq, Filter: t.filter, Search: t.search}
}

// Fetch runs req against the service. It does not change the toolbar.
func (t *Toolbar) Fetch(ctx context.Context, req ListRequest) (*ListResult, error) {
	return t.svc.Load(ctx, req.Filter, req.Search)
}

// Apply stores the outcome of request seq. It returns false, and changes
// nothing, when a newer request has been issued since.
func (t *Toolbar) Apply(seq uint64, res *ListResult, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		t.logger.Debug("stale_list_result", zap.Uint64("seq", seq), zap.Uint64("latest", t.seq))
		return false
	}
	if err != nil {
		t.lastErr = err
		t.logger.Warn("list_projects_failed", zap.Uint64("seq", seq), zap.Error(err))
		return true
	}
	t.current = res
	t.lastErr = nil
	return true
}

// Reload issues, fetches and applies one request synchronously.
func (t *Toolbar) Reload(ctx context.Context) (*ListResult, error) {
	req := t.Refresh()
	res, err := t.Fetch(ctx, req)
	t.Apply(req.Seq, res, err)
	return res, err
}

// Current returns the applied list and the error of the latest request.
func (t *Toolbar) Current() (*ListResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.lastErr
}

// Message returns the text to show instead of rows, or "" when there are
// rows to show or when nothing has loaded because the latest request failed.
func (t *Toolbar) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil && t.lastErr != nil {
		return ""
	}
	if t.current == nil || t.current.Empty() {
		return NoProjectsMessage
	}
	return ""
}

// Act runs a row action. View returns the listed project; Edit and Delete
// have no remote contract and return ErrActionUnavailable.
func (t *Toolbar) Act(action RowAction, id int64) (domain.Project, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return domain.Project{}, ErrProjectNotListed
	}
	p, ok := t.current.Find(id)
	if !ok {
		return domain.Project{}, fmt.Errorf("project %d: %w", id, ErrProjectNotListed)
	}
	switch action {
	case ActionView:
		return p, nil
	case ActionEdit, ActionDelete:
		t.logger.Info("row_action_unavailable", zap.String("action", string(action)), zap.Int64("project_id", id))
		return p, fmt.Errorf("%s %q: %w", action, p.Name, ErrActionUnavailable)
	}
	return p, fmt.Errorf("unknown action %q", action)
}
