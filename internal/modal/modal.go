// Package modal implements the single error dialog.
//
// There is one dialog at a time: opening while open replaces the title and
// message. While open, the background's scrolling is locked.
package modal

// ScrollLocker is the background surface whose scrolling the dialog suspends.
type ScrollLocker interface {
	SetScrollLocked(locked bool)
}

// Rect is a screen region in cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Modal is the dialog state.
type Modal struct {
	open    bool
	title   string
	message string

	locker  ScrollLocker
	content Rect
}

// New creates a closed dialog. locker may be nil.
func New(locker ScrollLocker) *Modal {
	return &Modal{locker: locker}
}

// Open shows the dialog, replacing any current title and message.
func (m *Modal) Open(title, message string) {
	m.title = title
	m.message = message
	if !m.open {
		m.open = true
		m.lock(true)
	}
}

// Close hides the dialog and restores background scrolling.
func (m *Modal) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.lock(false)
}

// Teardown restores background scrolling whether or not the dialog is open.
func (m *Modal) Teardown() {
	m.open = false
	m.lock(false)
}

// SetContentBounds records where the dialog box was drawn.
func (m *Modal) SetContentBounds(r Rect) { m.content = r }

// ContentBounds returns where the dialog box was last drawn.
func (m *Modal) ContentBounds() Rect { return m.content }

// Click handles a click at (x, y). A click on the backdrop closes the
// dialog; a click inside the content box does nothing. It reports whether
// the dialog consumed the click.
func (m *Modal) Click(x, y int) bool {
	if !m.open {
		return false
	}
	if !m.content.Contains(x, y) {
		m.Close()
	}
	return true
}

func (m *Modal) IsOpen() bool    { return m.open }
func (m *Modal) Title() string   { return m.title }
func (m *Modal) Message() string { return m.message }

func (m *Modal) lock(locked bool) {
	if m.locker != nil {
		m.locker.SetScrollLocked(locked)
	}
}
