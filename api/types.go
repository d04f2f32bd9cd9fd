package api

import (
	"context"

	"kanban-api/board"
	"kanban-api/domain"
)

// Board abstracts the interaction controller for handlers.
type Board interface {
	SubmitTask(ctx context.Context, title, description string) (domain.Task, error)

	DragStart(taskID string)
	DragOver(columnID string)
	DragLeave(columnID string)
	Drop(ctx context.Context, columnID string)
	DragEnd()

	StartEdit(taskID string)
	SaveEdit(ctx context.Context, title, description string) error
	CancelEdit()

	RequestDelete(taskID string)
	ConfirmDelete(ctx context.Context)
	CancelDelete()

	Escape()

	SetTheme(ctx context.Context, name string) error
	Theme() string

	Tasks() []domain.Task
	RenderBoard() *board.Element
}
