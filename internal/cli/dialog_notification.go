package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/draft"
)

// notificationTab edits the chat channel and the events sent to it. Row 0
// is the channel, rows after it are the events.
type notificationTab struct {
	draft   *draft.Draft
	focus   int
	channel textinput.Model
}

func newNotificationTab(d *draft.Draft) *notificationTab {
	return &notificationTab{draft: d, channel: newTextInput("channel id", 30)}
}

func (t *notificationTab) rows() int { return 1 + len(domain.NotificationEvents) }

func (t *notificationTab) setFocus(row int) {
	t.focus = (row + t.rows()) % t.rows()
	if t.focus == 0 {
		t.channel.Focus()
	} else {
		t.channel.Blur()
	}
}

func (t *notificationTab) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		t.setFocus(t.focus - 1)
		return nil
	case tea.KeyDown:
		t.setFocus(t.focus + 1)
		return nil
	}

	if t.focus == 0 {
		if msg.Type == tea.KeyEnter {
			t.setFocus(1)
			return nil
		}
		var cmd tea.Cmd
		t.channel, cmd = t.channel.Update(msg)
		value := t.channel.Value()
		t.draft.UpdateNotification(func(n *draft.Notification) { n.ChannelID = value })
		return cmd
	}

	if msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter {
		event := domain.NotificationEvents[t.focus-1]
		t.draft.UpdateNotification(func(n *draft.Notification) { n.Toggle(event) })
	}
	return nil
}

func (t *notificationTab) view() string {
	n := t.draft.Notification()
	lines := []string{
		"  " + cursorMark(t.focus == 0) + fieldLabel("Channel", t.focus == 0, 10) + t.channel.View(),
		"",
		"  " + formatter.Dim("Send a message when:"),
	}
	for i, event := range domain.NotificationEvents {
		row := i + 1
		lines = append(lines, "  "+cursorMark(t.focus == row)+formatter.Check(n.Has(event))+" "+event)
	}
	return strings.Join(lines, "\n")
}
