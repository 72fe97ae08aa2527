// Package draft models the project creation dialog as one state machine over
// its four tabs.
package draft

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/picker"
)

var (
	// ErrNotReady is returned by Submit outside the Valid state.
	ErrNotReady = errors.New("project draft is not complete")
	// ErrBusy is returned by Submit while a save is outstanding.
	ErrBusy = errors.New("project save already in progress")
	// ErrStale is returned for a save that completed after the dialog was
	// closed. Its result has been discarded.
	ErrStale = errors.New("project draft was closed before the save completed")
)

// ProjectSaver creates projects.
type ProjectSaver interface {
	SaveProject(ctx context.Context, in api.SaveProjectRequest) (*api.SaveProjectResult, error)
}

// Draft is the in-memory, unsaved project. It is safe for use from the UI
// goroutine and a pending save at the same time.
type Draft struct {
	mu     sync.Mutex
	logger *zap.Logger

	id         string
	generation uint64
	state      State
	busy       bool
	lastErr    error

	users []domain.User
	tasks []domain.Task

	general      General
	team         *picker.TeamPicker
	taskPicker   *picker.TaskPicker
	notification Notification
}

// New returns an Empty draft whose pickers offer users and tasks.
func New(users []domain.User, tasks []domain.Task, logger *zap.Logger) *Draft {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Draft{
		logger:     logger.Named("draft"),
		users:      users,
		tasks:      tasks,
		team:       picker.NewTeamPicker(users),
		taskPicker: picker.NewTaskPicker(tasks),
	}
	d.reset()
	return d
}

// Open starts a new dialog session. It is the same as Close.
func (d *Draft) Open() {
	d.Close()
}

// Close discards every slice and invalidates any pending save.
func (d *Draft) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy {
		d.logger.Info("draft_closed_while_saving", zap.String("draft_id", d.id))
	}
	d.reset()
}

func (d *Draft) reset() {
	d.generation++
	d.id = uuid.NewString()
	d.state = Empty
	d.busy = false
	d.lastErr = nil
	d.general = General{}
	d.team.Reset(d.users)
	d.taskPicker.Reset(d.tasks)
	d.notification = Notification{}
}

// Reload replaces the reference users and tasks, keeping selections.
func (d *Draft) Reload(users []domain.User, tasks []domain.Task) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users, d.tasks = users, tasks
	d.team.Load(users)
	d.taskPicker.Load(tasks)
}

// ID identifies the current dialog session in logs.
func (d *Draft) ID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// State returns the aggregate state.
func (d *Draft) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Busy reports whether a save is outstanding.
func (d *Draft) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// CanSubmit reports whether the submit action is enabled.
func (d *Draft) CanSubmit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == Valid && !d.busy
}

// LastError returns the error of the most recent failed save.
func (d *Draft) LastError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// General returns a copy of the general slice.
func (d *Draft) General() General {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.general
}

// Notification returns a copy of the notification slice.
func (d *Draft) Notification() Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.notification
	n.Events = append([]string(nil), n.Events...)
	return n
}

// Team returns the team picker for reading. Mutate it through EditTeam.
func (d *Draft) Team() *picker.TeamPicker { return d.team }

// Tasks returns the task picker for reading. Mutate it through EditTasks.
func (d *Draft) Tasks() *picker.TaskPicker { return d.taskPicker }

// UpdateGeneral applies fn to the general slice.
func (d *Draft) UpdateGeneral(fn func(*General)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.general)
	d.recompute()
}

// EditTeam applies fn to the team picker.
func (d *Draft) EditTeam(fn func(*picker.TeamPicker)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.team)
	d.recompute()
}

// EditTasks applies fn to the task picker.
func (d *Draft) EditTasks(fn func(*picker.TaskPicker)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.taskPicker)
	d.recompute()
}

// UpdateNotification applies fn to the notification slice.
func (d *Draft) UpdateNotification(fn func(*Notification)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.notification)
	d.recompute()
}

// TabValid reports whether one tab is complete. Notification is always valid.
func (d *Draft) TabValid(tab Tab) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tabValid(tab)
}

func (d *Draft) tabValid(tab Tab) bool {
	switch tab {
	case TabGeneral:
		return d.general.Valid()
	case TabTeam:
		_, n := d.team.Len()
		return n > 0
	case TabTasks:
		_, n := d.taskPicker.Len()
		return n > 0
	}
	return true
}

// Errors returns inline validation messages keyed by field.
func (d *Draft) Errors() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	errs := d.general.Errors()
	if !d.tabValid(TabTeam) {
		errs["team"] = "Select at least one team member"
	}
	if !d.tabValid(TabTasks) {
		errs["tasks"] = "Select at least one task"
	}
	return errs
}

// recompute derives the state from the slices. It never leaves Submitting;
// the pending save decides what follows.
func (d *Draft) recompute() {
	if d.state == Submitting {
		return
	}
	switch {
	case d.tabValid(TabGeneral) && d.tabValid(TabTeam) && d.tabValid(TabTasks):
		d.state = Valid
	case d.hasContent():
		d.state = PartiallyFilled
	default:
		d.state = Empty
	}
}

func (d *Draft) hasContent() bool {
	_, members := d.team.Len()
	_, tasks := d.taskPicker.Len()
	return !d.general.empty() || members > 0 || tasks > 0 || !d.notification.empty()
}

// Settle leaves Failed after the error has been shown. All fields are kept,
// so a draft that was Valid before the attempt is Valid again.
func (d *Draft) Settle() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Failed {
		d.recompute()
	}
}

// Payload shapes the save request from the current slices.
func (d *Draft) Payload() api.SaveProjectRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.payload()
}

func (d *Draft) payload() api.SaveProjectRequest {
	g := d.general
	members := d.team.Members()
	items := d.taskPicker.Items()
	return api.SaveProjectRequest{
		Name:              strings.TrimSpace(g.Name),
		Code:              strings.TrimSpace(g.Code),
		CustomerID:        g.CustomerID,
		StartDate:         strings.TrimSpace(g.StartDate),
		EndDate:           strings.TrimSpace(g.EndDate),
		ProjectType:       g.ProjectType,
		Note:              strings.TrimSpace(g.Note),
		IsAllUserBelongTo: g.AllUser,
		UserIDs:           d.team.SelectedIDs(),
		TaskIDs:           d.taskPicker.SelectedIDs(),
		Users: lo.Map(members, func(m picker.Member, _ int) api.MemberAssignment {
			return api.MemberAssignment{UserID: m.User.ID, Role: string(m.Role), IsTemp: m.Status == domain.MemberTemp}
		}),
		Tasks: lo.Map(items, func(it picker.TaskItem, _ int) api.TaskAssignment {
			return api.TaskAssignment{TaskID: it.Task.ID, Billable: it.Billable}
		}),
		KomuChannelID: strings.TrimSpace(d.notification.ChannelID),
		Notifications: append([]string(nil), d.notification.Events...),
	}
}

// Submit saves the draft. It is only allowed from Valid and at most one save
// runs at a time. On failure the draft moves to Failed and keeps every
// field; call Settle to make it submittable again.
func (d *Draft) Submit(ctx context.Context, saver ProjectSaver) (*api.SaveProjectResult, error) {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil, ErrBusy
	}
	if d.state != Valid {
		d.mu.Unlock()
		return nil, ErrNotReady
	}
	d.busy = true
	d.state = Submitting
	gen, id := d.generation, d.id
	req := d.payload()
	d.mu.Unlock()

	d.logger.Info("project_save_started", zap.String("draft_id", id), zap.String("code", req.Code))
	res, err := saver.SaveProject(ctx, req)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.generation {
		d.logger.Info("project_save_discarded", zap.String("draft_id", id), zap.Error(err))
		return nil, ErrStale
	}
	d.busy = false
	if err != nil {
		d.state = Failed
		d.lastErr = err
		d.logger.Warn("project_save_failed", zap.String("draft_id", id), zap.Error(err))
		return nil, err
	}
	d.state = Saved
	d.lastErr = nil
	d.logger.Info("project_saved", zap.String("draft_id", id), zap.Int64("project_id", res.ID))
	return res, nil
}
