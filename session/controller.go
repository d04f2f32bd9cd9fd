// Package session applies user interaction events to board state. The
// Controller owns every piece of interaction state (the dragged task, the
// hovered drop target, the open edit session, the pending delete) as named
// fields with a single writer, and serializes event application so each
// mutation is atomic with respect to the next.
package session

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"kanban-api/board"
	"kanban-api/domain"
	"kanban-api/store"
)

// ThemeSaver persists the selected theme, best-effort.
type ThemeSaver interface {
	SaveTheme(ctx context.Context, theme string) error
}

// Controller drives the board: every user interaction lands here, mutates
// the task store or the interaction state, and the next render is derived
// entirely from that state.
type Controller struct {
	mu     sync.Mutex
	store  *store.TaskStore
	themes ThemeSaver
	logger *log.Logger

	dragging      string
	dropTarget    string
	editingID     string
	editError     bool
	pendingDelete string
	theme         string
}

// New creates a Controller. themes may be nil, disabling theme persistence.
func New(taskStore *store.TaskStore, themes ThemeSaver, theme string, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if !domain.ValidTheme(theme) {
		theme = domain.DefaultTheme
	}
	return &Controller{
		store:  taskStore,
		themes: themes,
		theme:  theme,
		logger: logger,
	}
}

// SubmitTask handles the add-task form. Empty titles are refused with
// domain.ErrEmptyTitle so the caller keeps the form state and focus.
func (c *Controller) SubmitTask(ctx context.Context, title, description string) (domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.store.Add(ctx, title, description)
	if err != nil {
		return domain.Task{}, err
	}
	c.logger.Debugf("session: task added: %s", t.Title)
	return t, nil
}

// DragStart enters the Dragging state for the given card. Unknown ids are
// ignored: the card may have disappeared between pick-up and event delivery.
func (c *Controller) DragStart(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.store.Get(taskID); !ok {
		return
	}
	c.dragging = taskID
	c.dropTarget = ""
}

// DragOver marks the column that would receive a drop. At most one column is
// marked; hovering a new column replaces the previous mark.
func (c *Controller) DragOver(columnID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dragging == "" || !domain.ValidStatus(columnID) {
		return
	}
	c.dropTarget = columnID
}

// DragLeave clears the mark, but only for the column that currently holds
// it; a leave event straggling after the target changed must not clear the
// new target.
func (c *Controller) DragLeave(columnID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dropTarget == columnID {
		c.dropTarget = ""
	}
}

// Drop resolves the drag onto a column: reassigns the task's status and
// forgets the remembered id. A drop with no drag in progress is a no-op.
// Dropping onto the task's current column is legal and idempotent.
func (c *Controller) Drop(ctx context.Context, columnID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dragging == "" {
		return
	}
	if _, ok := c.store.Move(ctx, c.dragging, columnID); ok {
		c.logger.Debugf("session: task %s dropped in %s", c.dragging, columnID)
	}
	c.dragging = ""
	c.dropTarget = ""
}

// DragEnd returns to idle unconditionally. Both the successful-drop and the
// aborted-drag path land here, and both must clear every indicator.
func (c *Controller) DragEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dragging = ""
	c.dropTarget = ""
}

// StartEdit opens an edit session on the card. Only one session exists at a
// time; starting another replaces it, which is what the full re-render did
// in practice.
func (c *Controller) StartEdit(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.store.Get(taskID); !ok {
		return
	}
	c.editingID = taskID
	c.editError = false
}

// SaveEdit commits the edit session. A title trimming to empty keeps the
// session open with a surfaced error and leaves the store untouched.
func (c *Controller) SaveEdit(ctx context.Context, title, description string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editingID == "" {
		return nil
	}
	_, _, err := c.store.Update(ctx, c.editingID, store.Fields{Title: &title, Description: &description})
	if err != nil {
		c.editError = true
		return err
	}
	c.editingID = ""
	c.editError = false
	return nil
}

// CancelEdit discards the in-progress edit without touching the store.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.editingID = ""
	c.editError = false
}

// RequestDelete enters the pending-delete guard for the task. A subsequent
// request overwrites the pending id.
func (c *Controller) RequestDelete(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingDelete = taskID
}

// ConfirmDelete removes the pending task and leaves the guard state.
func (c *Controller) ConfirmDelete(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pendingDelete == "" {
		return
	}
	if removed, ok := c.store.Remove(ctx, c.pendingDelete); ok {
		c.logger.Debugf("session: task deleted: %s", removed.Title)
	}
	c.pendingDelete = ""
}

// CancelDelete leaves the guard state without mutation. Backdrop dismissal
// routes here as well.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingDelete = ""
}

// Escape is the global cancel key: dismisses a pending delete and aborts an
// open edit session.
func (c *Controller) Escape() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pendingDelete = ""
	c.editingID = ""
	c.editError = false
}

// SetTheme applies and persists a theme selection.
func (c *Controller) SetTheme(ctx context.Context, name string) error {
	if !domain.ValidTheme(name) {
		return domain.ErrUnknownTheme
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.theme = name
	if c.themes != nil {
		// best-effort, already logged by the adapter
		_ = c.themes.SaveTheme(ctx, name)
	}
	return nil
}

// Theme returns the current theme identifier.
func (c *Controller) Theme() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// Tasks returns the full collection in store order.
func (c *Controller) Tasks() []domain.Task {
	return c.store.Tasks()
}

// RenderBoard projects the current state into a fresh element tree.
func (c *Controller) RenderBoard() *board.Element {
	c.mu.Lock()
	view := board.View{
		DraggingID:      c.dragging,
		DropTarget:      c.dropTarget,
		EditingID:       c.editingID,
		EditError:       c.editError,
		PendingDeleteID: c.pendingDelete,
	}
	c.mu.Unlock()

	return board.Render(c.store, domain.Columns, view)
}
