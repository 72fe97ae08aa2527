package cli

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
)

// newTextInput returns a styled single-line input with a steady cursor.
func newTextInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = width
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	ti.PlaceholderStyle = formatter.StyleDim
	ti.TextStyle = formatter.StyleFg
	return ti
}

// focusOnly focuses inputs[i] and blurs the rest.
func focusOnly(inputs []*textinput.Model, i int) {
	for j, in := range inputs {
		if j == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// fieldLabel renders a form label, highlighted when focused.
func fieldLabel(label string, focused bool, width int) string {
	text := formatter.PadRight(label, width)
	if focused {
		return formatter.StyleHeader.Render(text)
	}
	return formatter.Dim(text)
}

// cursorMark is the row marker of list views.
func cursorMark(on bool) string {
	if on {
		return formatter.StyleGreen.Render("▸ ")
	}
	return "  "
}
