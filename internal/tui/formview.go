package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/form"
	"taskdeck/internal/service"
)

// formView binds the creation form's rules to text widgets.
type formView struct {
	state form.Form
	title textinput.Model
	desc  textarea.Model
}

func newFormView() formView {
	title := textinput.New()
	title.Placeholder = "Enter task title"
	title.CharLimit = 255
	title.Prompt = ""

	desc := textarea.New()
	desc.Placeholder = "Enter task description"
	desc.CharLimit = 0
	desc.MaxHeight = 0
	desc.ShowLineNumbers = false
	desc.SetHeight(3)
	desc.SetWidth(50)
	desc.Prompt = ""

	return formView{title: title, desc: desc}
}

func (f *formView) setWidth(w int) {
	inner := clamp(w-6, 20, 80)
	f.title.Width = inner
	f.desc.SetWidth(inner)
}

// begin copies the widget text into the form and starts a submission.
func (f *formView) begin() (service.NewTask, error) {
	f.state.Title = f.title.Value()
	f.state.Description = f.desc.Value()
	in, err := f.state.Begin()
	if err == nil {
		// Read-only while the request is in flight.
		f.title.Blur()
		f.desc.Blur()
	}
	return in, err
}

func (f *formView) succeed() {
	f.state.Succeed()
	f.title.Reset()
	f.desc.Reset()
}

func (f *formView) fail() {
	f.state.Fail()
}

func (f *formView) submitting() bool { return f.state.Submitting() }

// update routes a message to the focused widget. Nothing is editable while
// submitting.
func (f *formView) update(msg tea.Msg, focus focusArea) tea.Cmd {
	if f.submitting() {
		return nil
	}
	var cmd tea.Cmd
	switch focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusDescription:
		f.desc, cmd = f.desc.Update(msg)
	}
	return cmd
}

// focus moves keyboard focus onto the matching widget.
func (f *formView) focus(area focusArea) tea.Cmd {
	f.title.Blur()
	f.desc.Blur()
	if f.submitting() {
		return nil
	}
	switch area {
	case focusTitle:
		return f.title.Focus()
	case focusDescription:
		return f.desc.Focus()
	}
	return nil
}

func (f *formView) view(focus focusArea) string {
	var b strings.Builder
	b.WriteString(sectionTitleStyle.Render("Create New Task"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Title"))
	b.WriteString("\n")
	b.WriteString(f.title.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Description"))
	b.WriteString("\n")
	b.WriteString(f.desc.View())
	b.WriteString("\n\n")

	button := buttonStyle
	switch {
	case f.submitting():
		button = disabledButtonStyle
	case focus == focusSubmit:
		button = focusedButtonStyle
	}
	b.WriteString(button.Render(f.state.Label()))

	pane := paneStyle
	if focus != focusList {
		pane = focusedPaneStyle
	}
	return pane.Render(b.String())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
