package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	err error
}

// loginView asks for credentials and, once signed in, replaces itself with
// the view it was guarding.
type loginView struct {
	state *SharedState
	next  View

	user     textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      error
}

func newLoginView(state *SharedState, next View) *loginView {
	v := &loginView{
		state:    state,
		next:     next,
		user:     newTextInput("user name or email", 32),
		password: newTextInput("password", 32),
	}
	v.password.EchoMode = textinput.EchoPassword
	v.password.EchoCharacter = '•'
	v.user.Focus()
	return v
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
	}
}

func (v *loginView) Init() tea.Cmd { return nil }

func (v *loginView) inputs() []*textinput.Model {
	return []*textinput.Model{&v.user, &v.password}
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		v.busy = false
		if msg.err != nil {
			v.err = msg.err
			v.password.Reset()
			v.focus = 1
			focusOnly(v.inputs(), v.focus)
			return v, nil
		}
		return v, replaceView(v.next)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			return v, func() tea.Msg { return quitMsg{} }
		case tea.KeyTab, tea.KeyDown, tea.KeyShiftTab, tea.KeyUp:
			v.focus = 1 - v.focus
			focusOnly(v.inputs(), v.focus)
			return v, nil
		case tea.KeyEnter:
			if v.focus == 0 && v.password.Value() == "" {
				v.focus = 1
				focusOnly(v.inputs(), v.focus)
				return v, nil
			}
			return v, v.submit()
		}
		var cmd tea.Cmd
		in := v.inputs()[v.focus]
		*in, cmd = in.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *loginView) submit() tea.Cmd {
	v.busy = true
	v.err = nil
	store := v.state.App.Session
	user, password := strings.TrimSpace(v.user.Value()), v.password.Value()
	return func() tea.Msg {
		_, err := store.Login(context.Background(), user, password)
		return loginResultMsg{err: err}
	}
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Sign in") + "\n\n")
	b.WriteString("  " + fieldLabel("User", v.focus == 0, 10) + v.user.View() + "\n")
	b.WriteString("  " + fieldLabel("Password", v.focus == 1, 10) + v.password.View() + "\n\n")
	switch {
	case v.busy:
		b.WriteString("  " + formatter.Dim("Signing in...") + "\n")
	case v.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render(userMessage(v.err)) + "\n")
	}
	return b.String()
}
