package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/form"
	"taskdeck/internal/service"
	"taskdeck/internal/testutil"
)

func newTestModel(t *testing.T, svc *testutil.FakeService) *Model {
	t.Helper()
	m := NewModel(context.Background(), svc, nil, time.UTC)
	send(m, tea.WindowSizeMsg{Width: 100, Height: 60})
	return m
}

// loaded returns a model whose initial load has completed.
func loaded(t *testing.T, svc *testutil.FakeService) *Model {
	t.Helper()
	m := newTestModel(t, svc)
	send(m, m.loadTasks()())
	return m
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func taskIDs(m *Model) []service.TaskID {
	var out []service.TaskID
	for _, t := range m.ctrl.Tasks() {
		out = append(out, t.ID)
	}
	return out
}

func sameIDs(got []service.TaskID, want ...service.TaskID) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func fill(m *Model, title, description string) {
	m.form.title.SetValue(title)
	m.form.desc.SetValue(description)
}

func TestModel_LoadingThenList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("first", "one")
	svc.AddTask("second", "two")

	m := newTestModel(t, svc)
	if !strings.Contains(m.View(), "Loading tasks...") {
		t.Errorf("expected loading message before the load resolves")
	}

	send(m, m.loadTasks()())

	if !sameIDs(taskIDs(m), "2", "1") {
		t.Errorf("unexpected order %v", taskIDs(m))
	}
	view := m.View()
	for _, want := range []string{"List of Tasks", "Showing 2 tasks", "second", "first", "[Done]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_EmptyPlaceholder(t *testing.T) {
	m := loaded(t, testutil.NewFakeService())
	if !strings.Contains(m.View(), "No tasks to display") {
		t.Errorf("expected empty placeholder, got:\n%s", m.View())
	}
}

func TestModel_LoadFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", "a")
	svc.ListErr = errors.New("connection refused")

	m := loaded(t, svc)

	if m.ctrl.Len() != 0 {
		t.Errorf("expected empty collection, got %d tasks", m.ctrl.Len())
	}
	if !strings.Contains(m.View(), "Failed to fetch tasks") {
		t.Errorf("expected load failure message")
	}
	if m.modal.IsOpen() {
		t.Errorf("load failure should not open the dialog")
	}
}

func TestModel_BlankSubmitNeverCallsBackend(t *testing.T) {
	svc := testutil.NewFakeService()
	m := loaded(t, svc)
	fill(m, "   ", "something")

	if cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Errorf("expected no request command")
	}

	if svc.CreateCalls != 0 {
		t.Errorf("expected no create calls, got %d", svc.CreateCalls)
	}
	if !m.modal.IsOpen() || m.modal.Message() != form.EmptyFieldsMessage {
		t.Errorf("expected %q dialog, got open=%v %q", form.EmptyFieldsMessage, m.modal.IsOpen(), m.modal.Message())
	}
	if !m.list.ScrollLocked() {
		t.Errorf("expected list scrolling locked while the dialog is open")
	}
	if m.form.submitting() {
		t.Errorf("form should not be submitting")
	}
}

func TestModel_CreateSixthEvictsOldest(t *testing.T) {
	svc := testutil.NewFakeService()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		svc.AddTask(title, title)
	}
	m := loaded(t, svc)
	fill(m, "new", "fresh")

	cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected a create command")
	}
	if !m.form.submitting() {
		t.Errorf("expected form to be submitting")
	}
	if !strings.Contains(m.View(), form.SubmittingLabel) {
		t.Errorf("expected %q label while in flight", form.SubmittingLabel)
	}

	send(m, cmd())

	if !sameIDs(taskIDs(m), "6", "5", "4", "3", "2") {
		t.Errorf("unexpected collection %v", taskIDs(m))
	}
	if m.form.title.Value() != "" || m.form.desc.Value() != "" {
		t.Errorf("expected cleared fields, got %q / %q", m.form.title.Value(), m.form.desc.Value())
	}
	if m.form.submitting() {
		t.Errorf("expected form idle after success")
	}
}

func TestModel_SubmitButtonEnter(t *testing.T) {
	svc := testutil.NewFakeService()
	m := loaded(t, svc)
	fill(m, "Title", "Description")
	m.focus = focusSubmit

	cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a create command")
	}
	send(m, cmd())

	if svc.LastCreate.Title != "Title" || svc.LastCreate.Description != "Description" {
		t.Errorf("unexpected request %+v", svc.LastCreate)
	}
	if m.ctrl.Len() != 1 {
		t.Errorf("expected 1 task, got %d", m.ctrl.Len())
	}
}

func TestModel_LongDescriptionNotTruncated(t *testing.T) {
	svc := testutil.NewFakeService()
	m := loaded(t, svc)
	long := strings.Repeat("lorem ipsum ", 500)
	fill(m, "Title", long)

	cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected a create command")
	}
	send(m, cmd())

	if svc.LastCreate.Description != long {
		t.Errorf("description truncated to %d of %d bytes", len(svc.LastCreate.Description), len(long))
	}
}

func TestModel_SubmitIgnoredWhileInFlight(t *testing.T) {
	m := loaded(t, testutil.NewFakeService())
	fill(m, "t", "d")

	if cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS}); cmd == nil {
		t.Fatal("expected a create command")
	}
	if cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS}); cmd != nil {
		t.Errorf("second submit should be ignored while in flight")
	}
}

func TestModel_FailedCreateKeepsFields(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateErr = errors.New("500")
	m := loaded(t, svc)
	fill(m, "keep me", "and me")

	cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	send(m, cmd())

	if m.form.title.Value() != "keep me" || m.form.desc.Value() != "and me" {
		t.Errorf("fields were not preserved: %q / %q", m.form.title.Value(), m.form.desc.Value())
	}
	if !m.modal.IsOpen() || m.modal.Message() != form.CreateFailedMessage {
		t.Errorf("expected %q dialog, got %q", form.CreateFailedMessage, m.modal.Message())
	}
	if m.form.submitting() {
		t.Errorf("expected submit control re-enabled")
	}
	if m.ctrl.Len() != 0 {
		t.Errorf("collection should be unchanged")
	}
}

func TestModel_CompleteRemovesTask(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("one", "1")
	svc.AddTask("two", "2")
	m := loaded(t, svc)
	m.setFocus(focusList)
	send(m, runeKey('j'))

	cmd := send(m, runeKey('d'))
	if cmd == nil {
		t.Fatal("expected a complete command")
	}
	if !strings.Contains(m.View(), "["+MarkingLabel+"]") {
		t.Errorf("expected %q while in flight", MarkingLabel)
	}
	if again := send(m, runeKey('d')); again != nil {
		t.Errorf("disabled item should not issue a second request")
	}

	send(m, cmd())

	if !sameIDs(taskIDs(m), "2") {
		t.Errorf("unexpected collection %v", taskIDs(m))
	}
	if svc.CompleteCalls != 1 {
		t.Errorf("expected 1 complete call, got %d", svc.CompleteCalls)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.cursor)
	}
}

func TestModel_FailedCompleteKeepsList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("one", "1")
	svc.AddTask("two", "2")
	svc.CompleteErr = errors.New("boom")
	m := loaded(t, svc)
	m.setFocus(focusList)

	cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	send(m, cmd())

	if !sameIDs(taskIDs(m), "2", "1") {
		t.Errorf("unexpected collection %v", taskIDs(m))
	}
	if !m.modal.IsOpen() || m.modal.Message() != CompleteFailedMessage {
		t.Errorf("expected %q dialog, got %q", CompleteFailedMessage, m.modal.Message())
	}
	if item := m.items["2"]; item == nil || item.completing {
		t.Errorf("expected item re-enabled")
	}
}

func TestModel_DialogBackdropClick(t *testing.T) {
	m := loaded(t, testutil.NewFakeService())
	fill(m, "", "")
	send(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	box := m.modal.ContentBounds()
	if box.Width == 0 || box.Height == 0 {
		t.Fatalf("expected dialog bounds, got %+v", box)
	}

	send(m, tea.MouseMsg{X: box.X + 1, Y: box.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.modal.IsOpen() {
		t.Fatal("click inside the dialog should not close it")
	}

	send(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.modal.IsOpen() {
		t.Error("backdrop click should close the dialog")
	}
	if m.list.ScrollLocked() {
		t.Error("expected list scrolling restored")
	}
}

func TestModel_DialogSwallowsKeys(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("one", "1")
	m := loaded(t, svc)
	m.setFocus(focusList)
	m.showError("something")

	if cmd := send(m, runeKey('d')); cmd != nil {
		t.Errorf("keys behind the dialog should be ignored")
	}
	if svc.CompleteCalls != 0 {
		t.Errorf("expected no complete calls")
	}

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal.IsOpen() {
		t.Errorf("esc should close the dialog")
	}
}

func TestModel_FocusCycle(t *testing.T) {
	m := loaded(t, testutil.NewFakeService())

	want := []focusArea{focusDescription, focusSubmit, focusList, focusTitle}
	for _, w := range want {
		send(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.focus != w {
			t.Fatalf("expected focus %d, got %d", w, m.focus)
		}
	}
	send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != focusList {
		t.Errorf("expected shift+tab to go back to the list, got %d", m.focus)
	}
}
