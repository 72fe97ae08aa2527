package draft

import "fmt"

// State is the aggregate state of a project draft.
type State int

const (
	Empty State = iota
	PartiallyFilled
	Valid
	Submitting
	Saved
	Failed
)

var stateNames = []string{"Empty", "PartiallyFilled", "Valid", "Submitting", "Saved", "Failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Tab names one slice of the draft.
type Tab int

const (
	TabGeneral Tab = iota
	TabTeam
	TabTasks
	TabNotification
)

// Tabs lists the dialog tabs in display order.
var Tabs = []Tab{TabGeneral, TabTeam, TabTasks, TabNotification}

func (t Tab) String() string {
	switch t {
	case TabGeneral:
		return "General"
	case TabTeam:
		return "Team"
	case TabTasks:
		return "Tasks"
	case TabNotification:
		return "Notification"
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}
