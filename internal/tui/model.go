// Package tui provides the interactive task board.
//
// The board is a bubbletea program. Requests to the task service run as
// commands off the event loop and report back as messages; only Update
// mutates the board controller, the form and the dialog.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/board"
	"taskdeck/internal/form"
	"taskdeck/internal/logging"
	"taskdeck/internal/modal"
	"taskdeck/internal/service"
)

// ErrorTitle titles every error dialog.
const ErrorTitle = "Error"

// focusArea is the part of the board receiving keys.
type focusArea int

const (
	focusTitle focusArea = iota
	focusDescription
	focusSubmit
	focusList
	focusCount
)

// Model is the bubbletea model for the task board.
type Model struct {
	ctx  context.Context
	svc  service.Service
	ctrl *board.Controller
	log  *logging.Logger

	form  formView
	list  *listPane
	items map[service.TaskID]*itemView
	modal *modal.Modal

	focus  focusArea
	cursor int

	keys KeyMap
	help help.Model

	width, height int
}

// NewModel creates a board over svc. ctx bounds every request.
func NewModel(ctx context.Context, svc service.Service, log *logging.Logger, loc *time.Location) *Model {
	if log == nil {
		log = logging.Nop()
	}
	list := newListPane(loc)
	m := &Model{
		ctx:   ctx,
		svc:   svc,
		ctrl:  board.New(svc, log),
		log:   log.Named("tui"),
		form:  newFormView(),
		list:  list,
		items: make(map[service.TaskID]*itemView),
		modal: modal.New(list),
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.form.focus(focusTitle)
	m.ctrl.BeginLoad()
	m.refreshList()
	return m
}

// Init starts the initial load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks(), textinput.Blink, tea.SetWindowTitle("taskdeck"))
}

func (m *Model) loadTasks() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		tasks, err := ctrl.Fetch(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m *Model) createTask(in service.NewTask) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		task, err := form.Create(ctx, svc, in)
		return taskCreatedMsg{task: task, err: err}
	}
}

func (m *Model) completeTask(id service.TaskID) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return taskCompletedMsg{id: id, err: ctrl.SendComplete(ctx, id)}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tasksLoadedMsg:
		m.ctrl.ApplyLoad(msg.tasks, msg.err)
		m.clampCursor()
		m.refreshList()
		return m, nil

	case taskCreatedMsg:
		if msg.err != nil {
			m.log.Warnw("create failed", "error", msg.err)
			m.form.fail()
			m.showError(form.CreateFailedMessage)
			return m, m.form.focus(m.focus)
		}
		m.form.succeed()
		m.ctrl.RecordCreated(msg.task)
		m.refreshList()
		return m, m.form.focus(m.focus)

	case taskCompletedMsg:
		if item := m.items[msg.id]; item != nil {
			item.completing = false
		}
		if msg.err != nil {
			m.showError(CompleteFailedMessage)
			m.refreshList()
			return m, nil
		}
		m.ctrl.ApplyCompleted(msg.id)
		delete(m.items, msg.id)
		m.clampCursor()
		m.refreshList()
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blinks and other widget traffic.
	return m, m.form.update(msg, m.focus)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.modal.IsOpen() {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.modal.Click(msg.X, msg.Y)
		}
		return nil
	}
	return m.list.update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.modal.Teardown()
		return m, tea.Quit
	}

	if m.modal.IsOpen() {
		if key.Matches(msg, m.keys.Close) {
			m.modal.Close()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Submit) && m.focus != focusList:
		return m, m.submit()
	}

	switch m.focus {
	case focusSubmit:
		if msg.Type == tea.KeyEnter || msg.String() == " " {
			return m, m.submit()
		}
		return m, nil

	case focusList:
		return m.handleListKey(msg)
	}

	return m, m.form.update(msg, m.focus)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.modal.Teardown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.refreshList()
		m.list.ensureVisible(m.cursor)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.ctrl.Len()-1 {
			m.cursor++
		}
		m.refreshList()
		m.list.ensureVisible(m.cursor)
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		return m, m.completeSelected()
	}
	return m, m.list.update(msg)
}

// submit validates locally and, if valid, sends the create request.
func (m *Model) submit() tea.Cmd {
	in, err := m.form.begin()
	switch {
	case errors.Is(err, form.ErrSubmitting):
		return nil
	case err != nil:
		m.showError(form.Message(err))
		return nil
	}
	return m.createTask(in)
}

// completeSelected disables the selected item and sends the request.
func (m *Model) completeSelected() tea.Cmd {
	tasks := m.ctrl.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return nil
	}
	id := tasks[m.cursor].ID
	item := m.items[id]
	if item == nil {
		item = &itemView{}
		m.items[id] = item
	}
	if item.completing {
		return nil
	}
	item.completing = true
	m.refreshList()
	return m.completeTask(id)
}

func (m *Model) setFocus(area focusArea) tea.Cmd {
	m.focus = area
	cmd := m.form.focus(area)
	m.refreshList()
	return cmd
}

func (m *Model) showError(message string) {
	m.modal.Open(ErrorTitle, message)
	m.layoutModal()
}

func (m *Model) clampCursor() {
	if m.cursor >= m.ctrl.Len() {
		m.cursor = max(0, m.ctrl.Len()-1)
	}
}

func (m *Model) refreshList() {
	status := m.ctrl.Status()
	m.list.render(m.ctrl.Tasks(), m.items, m.cursor, m.focus == focusList, status, m.ctrl.Err() != nil)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.form.setWidth(w)
	m.help.Width = w

	formHeight := lipgloss.Height(m.form.view(m.focus))
	listHeight := h - formHeight - lipgloss.Height(appTitleStyle.Render("x")) - 4
	m.list.setSize(max(20, w-4), max(3, listHeight))
	m.refreshList()
	m.layoutModal()
}

// layoutModal records where the dialog box lands when centered.
func (m *Model) layoutModal() {
	if !m.modal.IsOpen() {
		return
	}
	box := m.modalBox()
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	m.modal.SetContentBounds(modal.Rect{
		X:      max(0, (m.width-bw)/2),
		Y:      max(0, (m.height-bh)/2),
		Width:  bw,
		Height: bh,
	})
}

func (m *Model) modalBox() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		modalIconStyle.Render("!"),
		modalTitleStyle.Render(m.modal.Title()),
		"",
		m.modal.Message(),
		"",
		focusedButtonStyle.Render("Close"),
	)
	return modalBoxStyle.Render(body)
}

// View renders the board, or the dialog centered over a blank backdrop.
func (m *Model) View() string {
	if m.modal.IsOpen() {
		box := m.modalBox()
		if m.width == 0 || m.height == 0 {
			return box
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	var b strings.Builder
	b.WriteString(appTitleStyle.Render("Todo App"))
	b.WriteString("\n")
	b.WriteString(m.form.view(m.focus))
	b.WriteString("\n")
	b.WriteString(m.list.view(m.focus == focusList))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
