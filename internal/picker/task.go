package picker

import "github.com/alexanderramin/timesheet/internal/domain"

// TaskItem is a selected task with its billable flag.
type TaskItem struct {
	Task     domain.Task
	Billable bool
}

// TaskPicker selects project tasks. New selections are billable.
type TaskPicker struct {
	*Picker[domain.Task]
	billable map[int64]bool
}

func NewTaskPicker(tasks []domain.Task) *TaskPicker {
	return &TaskPicker{Picker: New(tasks), billable: map[int64]bool{}}
}

func (t *TaskPicker) Select(id int64) bool {
	if !t.Picker.Select(id) {
		return false
	}
	t.billable[id] = true
	return true
}

func (t *TaskPicker) Deselect(id int64) bool {
	if !t.Picker.Deselect(id) {
		return false
	}
	delete(t.billable, id)
	return true
}

// Reset clears the selection and makes every task available.
func (t *TaskPicker) Reset(tasks []domain.Task) {
	t.Picker.Reset(tasks)
	t.billable = map[int64]bool{}
}

// SetBillable sets a selected task's billable flag.
func (t *TaskPicker) SetBillable(id int64, billable bool) bool {
	if !t.IsSelected(id) {
		return false
	}
	t.billable[id] = billable
	return true
}

// ToggleBillable flips a selected task's billable flag.
func (t *TaskPicker) ToggleBillable(id int64) bool {
	if !t.IsSelected(id) {
		return false
	}
	t.billable[id] = !t.billable[id]
	return true
}

// Items returns the selected tasks in selection order.
func (t *TaskPicker) Items(filters ...Filter[domain.Task]) []TaskItem {
	tasks := t.Selected(filters...)
	out := make([]TaskItem, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, TaskItem{Task: task, Billable: t.billable[task.ID]})
	}
	return out
}
