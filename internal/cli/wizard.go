package cli

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/picker"
)

// timesheetHuhTheme returns a custom huh theme using the Gruvbox palette.
func timesheetHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// clientCreatedMsg announces a client saved from the new-client form.
type clientCreatedMsg struct {
	customer domain.Customer
}

// clientFields backs the new-client form.
type clientFields struct {
	name    string
	code    string
	address string
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}

// wizardCreateClient builds the new-client form.
func wizardCreateClient(fields *clientFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Client name").Value(&fields.name).Validate(required("Name")),
			huh.NewInput().Title("Client code").Value(&fields.code).Validate(required("Code")),
			huh.NewInput().Title("Address").Description("optional").Value(&fields.address),
		),
	).WithTheme(timesheetHuhTheme()).WithShowHelp(false)
}

// startCreateClient pushes the new-client form.
func startCreateClient(state *SharedState) tea.Cmd {
	fields := &clientFields{}
	return startWizardCmd(state, "New Client", wizardCreateClient(fields), func() tea.Cmd {
		return func() tea.Msg { return applyCreateClient(state, fields) }
	})
}

// applyCreateClient saves the client and merges it into the cached
// reference data. Failures come back as output for the form's caller.
func applyCreateClient(state *SharedState, fields *clientFields) tea.Msg {
	form := &picker.ClientForm{Name: fields.name, Code: fields.code, Address: fields.address}
	if !form.Valid() {
		return cmdOutputMsg{output: formatter.Error("client name and code are required")}
	}
	c, err := form.Submit(context.Background(), state.App.API)
	if err != nil {
		state.App.logger().Warn("create_client_failed", zap.Error(err))
		return cmdOutputMsg{output: shellError(err)}
	}
	state.AddCustomer(c)
	return clientCreatedMsg{customer: c}
}
