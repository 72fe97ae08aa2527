package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to re-read shared data.
type refreshViewMsg struct{}

// cmdOutputMsg carries a transient line shown above the status bar until
// the next key press.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// authRequiredMsg resets the stack to the login view. It is sent when a
// remote call finds the session gone.
type authRequiredMsg struct{}

// quitMsg signals the app to quit.
type quitMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// outputCmd returns a tea.Cmd that flashes text.
func outputCmd(text string) tea.Cmd {
	return func() tea.Msg { return cmdOutputMsg{output: text} }
}

// wizardCompleteOutput pops the wizard and flashes text.
func wizardCompleteOutput(text string) tea.Msg {
	return wizardCompleteMsg{nextCmd: outputCmd(text)}
}

func requireAuth() tea.Msg { return authRequiredMsg{} }
