package board

import (
	"strconv"
	"time"

	"kanban-api/domain"
)

// TaskLister is the read-only slice of the task store the renderer consumes.
type TaskLister interface {
	ListByStatus(status string) []domain.Task
}

// View carries the interaction state that shapes the projection. It is an
// input to Render like the store contents; the renderer holds no state of
// its own between invocations.
type View struct {
	// DraggingID marks the card currently being dragged.
	DraggingID string
	// DropTarget marks the column that would receive a drop. At most one.
	DropTarget string
	// EditingID marks the card in edit mode.
	EditingID string
	// EditError marks a rejected save; the editing card surfaces it.
	EditError bool
	// PendingDeleteID raises the delete confirmation modal.
	PendingDeleteID string
}

type emptyState struct {
	icon string
	text string
	hint string
}

var emptyStates = map[string]emptyState{
	domain.StatusTodo:       {"✨", "No tasks yet", "Add a task above to get started"},
	domain.StatusInProgress: {"🚀", "Nothing in progress", "Drag tasks here to start working"},
	domain.StatusDone:       {"🎉", "No completed tasks", "Move finished tasks here"},
}

// Render projects the store contents and interaction state into a fresh
// element tree. Every column is rebuilt from scratch: cards in store order or
// the column's empty-state placeholder, plus a count computed from the
// listing, never carried over from a prior render.
func Render(tasks TaskLister, columns []domain.Column, view View) *Element {
	root := NewElement("div").SetAttr("class", "board")

	for _, col := range columns {
		colTasks := tasks.ListByStatus(col.ID)

		section := NewElement("section").
			SetAttr("class", "column").
			SetAttr("data-column-id", col.ID)

		header := NewElement("header").SetAttr("class", "column-header").Append(
			NewElement("h2").SetAttr("class", "column-title").SetText(col.Title),
			NewElement("span").
				SetAttr("class", "task-count").
				SetAttr("data-column", col.ID).
				SetText(strconv.Itoa(len(colTasks))),
		)

		containerClass := "tasks-container"
		if view.DropTarget == col.ID {
			containerClass += " drag-over"
		}
		container := NewElement("div").
			SetAttr("class", containerClass).
			SetAttr("data-status", col.ID)

		if len(colTasks) == 0 {
			container.Append(renderEmptyState(col.ID))
		} else {
			for _, t := range colTasks {
				container.Append(renderCard(t, view))
			}
		}

		section.Append(header, container)
		root.Append(section)
	}

	if view.PendingDeleteID != "" {
		root.Append(renderDeleteModal(view.PendingDeleteID))
	}

	return root
}

func renderEmptyState(status string) *Element {
	msg := emptyStates[status]
	return NewElement("div").SetAttr("class", "empty-state").Append(
		NewElement("span").SetAttr("class", "empty-icon").SetText(msg.icon),
		NewElement("p").SetAttr("class", "empty-text").SetText(msg.text),
		NewElement("p").SetAttr("class", "empty-hint").SetText(msg.hint),
	)
}

func renderCard(t domain.Task, view View) *Element {
	editing := view.EditingID == t.ID

	class := "task-card"
	if view.DraggingID == t.ID {
		class += " dragging"
	}
	if editing {
		class += " editing"
	}

	card := NewElement("div").
		SetAttr("class", class).
		SetAttr("data-task-id", t.ID).
		SetAttr("draggable", strconv.FormatBool(!editing))

	if editing {
		card.Append(renderEditForm(t, view.EditError))
	} else {
		card.Append(
			NewElement("div").SetAttr("class", "task-card-header").Append(
				NewElement("h3").SetAttr("class", "task-title").SetText(t.Title),
				NewElement("div").SetAttr("class", "task-actions").Append(
					actionButton("edit", "Edit"),
					actionButton("delete", "Delete"),
				),
			),
		)
		if t.Description != "" {
			card.Append(NewElement("p").SetAttr("class", "task-description").SetText(t.Description))
		}
	}

	card.Append(NewElement("div").SetAttr("class", "task-meta").SetText("Created: " + formatCreatedAt(t.CreatedAt)))
	return card
}

func renderEditForm(t domain.Task, editError bool) *Element {
	form := NewElement("div").SetAttr("class", "task-edit").Append(
		NewElement("input").
			SetAttr("type", "text").
			SetAttr("class", "task-edit-input").
			SetAttr("value", t.Title).
			SetAttr("maxlength", "100").
			SetAttr("autofocus", "autofocus"),
		NewElement("textarea").
			SetAttr("class", "task-edit-input").
			SetAttr("maxlength", "500").
			SetAttr("rows", "2").
			SetText(t.Description),
	)
	if editError {
		form.Append(NewElement("p").
			SetAttr("class", "edit-error").
			SetText("Task title cannot be empty"))
	}
	form.Append(NewElement("div").SetAttr("class", "task-actions").Append(
		actionButton("save-edit", "Save"),
		actionButton("cancel-edit", "Cancel"),
	))
	return form
}

func actionButton(action, title string) *Element {
	return NewElement("button").
		SetAttr("class", "task-action-btn").
		SetAttr("data-action", action).
		SetAttr("title", title)
}

func renderDeleteModal(taskID string) *Element {
	return NewElement("div").
		SetAttr("class", "modal active").
		SetAttr("data-pending-delete", taskID).
		Append(
			NewElement("div").SetAttr("class", "modal-content").Append(
				NewElement("p").SetText("Delete this task?"),
				NewElement("div").SetAttr("class", "modal-actions").Append(
					NewElement("button").SetAttr("data-action", "confirm-delete").SetText("Delete"),
					NewElement("button").SetAttr("data-action", "cancel-delete").SetText("Cancel"),
				),
			),
		)
}

func formatCreatedAt(millis int64) string {
	return time.UnixMilli(millis).Format("Jan 2, 03:04 PM")
}
