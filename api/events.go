package api

import (
	"context"
	"fmt"
)

// Interaction event types, matching the drag/edit/delete lifecycles.
const (
	EventDragStart = "drag-start"
	EventDragEnd   = "drag-end"
	EventDragOver  = "drag-over"
	EventDragLeave = "drag-leave"
	EventDrop      = "drop"

	EventEditStart  = "edit-start"
	EventEditSave   = "edit-save"
	EventEditCancel = "edit-cancel"

	EventDeleteRequest = "delete-request"
	EventDeleteConfirm = "delete-confirm"
	EventDeleteCancel  = "delete-cancel"

	EventEscape = "escape"
)

// Event is a single user interaction carried over the wire. Fields beyond
// Type are populated per event type: TaskID for card events, Column for drag
// target events, Title/Description for edit saves.
type Event struct {
	Type        string `json:"type"`
	TaskID      string `json:"taskId,omitempty"`
	Column      string `json:"column,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// apply dispatches one event into the controller. The returned error is a
// per-event rejection (edit-save validation); unknown event types error as a
// caller bug. Neither aborts the rest of a batch.
func apply(ctx context.Context, b Board, ev Event) error {
	switch ev.Type {
	case EventDragStart:
		b.DragStart(ev.TaskID)
	case EventDragEnd:
		b.DragEnd()
	case EventDragOver:
		b.DragOver(ev.Column)
	case EventDragLeave:
		b.DragLeave(ev.Column)
	case EventDrop:
		b.Drop(ctx, ev.Column)
	case EventEditStart:
		b.StartEdit(ev.TaskID)
	case EventEditSave:
		return b.SaveEdit(ctx, ev.Title, ev.Description)
	case EventEditCancel:
		b.CancelEdit()
	case EventDeleteRequest:
		b.RequestDelete(ev.TaskID)
	case EventDeleteConfirm:
		b.ConfirmDelete(ctx)
	case EventDeleteCancel:
		b.CancelDelete()
	case EventEscape:
		b.Escape()
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}
