package store

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

// Saver receives the full task collection after every successful mutation.
// Save failures are best-effort: the store logs them and keeps going with its
// in-memory state as the authority for the rest of the session.
type Saver interface {
	SaveTasks(ctx context.Context, tasks []domain.Task) error
}

// TaskStore is the single writer of truth for the task collection. Slice
// order is append order, which defines column order since no reordering
// operation exists.
type TaskStore struct {
	mu     sync.Mutex
	tasks  []domain.Task
	saver  Saver
	logger *log.Logger

	// overridable for tests
	now   func() time.Time
	newID func() string
}

// New creates a TaskStore persisting through saver. A nil saver disables
// persistence.
func New(saver Saver, logger *log.Logger) *TaskStore {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TaskStore{
		saver:  saver,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Fields carries a partial update; nil fields are left untouched.
type Fields struct {
	Title       *string
	Description *string
}

// Add validates, creates and appends a new task in the default column.
// A title that trims to empty is refused with domain.ErrEmptyTitle before
// anything mutates.
func (s *TaskStore) Add(ctx context.Context, title, description string) (domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Task{}, domain.ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := domain.Task{
		ID:          strconv.FormatInt(now.UnixMilli(), 10) + "-" + s.newID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      domain.DefaultStatus,
		CreatedAt:   now.UnixMilli(),
	}
	s.tasks = append(s.tasks, t)
	s.persistLocked(ctx)
	return t, nil
}

// Move reassigns the task's column. Unknown ids are tolerated silently; the
// task may have been deleted between the pick-up and the drop. Dropping onto
// the current column is legal and simply reasserts the status.
func (s *TaskStore) Move(ctx context.Context, id, status string) (domain.Task, bool) {
	if !domain.ValidStatus(status) {
		return domain.Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Task{}, false
	}
	s.tasks[i].Status = status
	s.persistLocked(ctx)
	return s.tasks[i], true
}

// Update merges the provided fields onto the task. A provided title trimming
// to empty is refused with domain.ErrEmptyTitle and nothing mutates.
func (s *TaskStore) Update(ctx context.Context, id string, f Fields) (domain.Task, bool, error) {
	var title string
	if f.Title != nil {
		title = strings.TrimSpace(*f.Title)
		if title == "" {
			return domain.Task{}, false, domain.ErrEmptyTitle
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Task{}, false, nil
	}
	if f.Title != nil {
		s.tasks[i].Title = title
	}
	if f.Description != nil {
		s.tasks[i].Description = strings.TrimSpace(*f.Description)
	}
	s.persistLocked(ctx)
	return s.tasks[i], true, nil
}

// Remove deletes and returns the task. A second remove of the same id
// reports not found without error.
func (s *TaskStore) Remove(ctx context.Context, id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Task{}, false
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persistLocked(ctx)
	return removed, true
}

// Get returns the task by id.
func (s *TaskStore) Get(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i], true
}

// ListByStatus returns the tasks in the given column, preserving collection
// order. Pure read.
func (s *TaskStore) ListByStatus(status string) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Task{}
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Tasks returns a copy of the full collection in order.
func (s *TaskStore) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Replace swaps in a previously persisted collection at startup. Entries
// that would violate the store's invariants are dropped rather than let into
// the collection. Replace does not trigger persistence.
func (s *TaskStore) Replace(tasks []domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = s.tasks[:0]
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.ID == "" || strings.TrimSpace(t.Title) == "" || !domain.ValidStatus(t.Status) {
			s.logger.Warnf("store: dropping invalid persisted task %q", t.ID)
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.logger.Warnf("store: dropping duplicate persisted task %q", t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		s.tasks = append(s.tasks, t)
	}
}

func (s *TaskStore) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) persistLocked(ctx context.Context) {
	if s.saver == nil {
		return
	}
	snapshot := make([]domain.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	if err := s.saver.SaveTasks(ctx, snapshot); err != nil {
		s.logger.Errorf("store: persisting %d tasks: %v", len(snapshot), err)
	}
}
