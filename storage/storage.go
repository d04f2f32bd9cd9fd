package storage

import (
	"context"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

// Default storage keys, kept from the original persisted layout.
const (
	DefaultTasksKey = "kanban_tasks"
	DefaultThemeKey = "kanban_theme"
)

// Adapter serializes board state into the key-value backend. Every failure
// mode degrades: saves are best-effort and loads fall back to empty/default
// so a broken or corrupt backend can never take down the board.
type Adapter struct {
	kv       KV
	tasksKey string
	themeKey string
	logger   *log.Logger
}

// New creates an Adapter over kv. Empty keys fall back to the defaults.
func New(kv KV, tasksKey, themeKey string, logger *log.Logger) *Adapter {
	if tasksKey == "" {
		tasksKey = DefaultTasksKey
	}
	if themeKey == "" {
		themeKey = DefaultThemeKey
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Adapter{kv: kv, tasksKey: tasksKey, themeKey: themeKey, logger: logger}
}

// SaveTasks writes the full collection under the tasks key. The error is
// returned for observability but callers treat persistence as best-effort.
func (a *Adapter) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := sonic.ConfigStd.Marshal(tasks)
	if err != nil {
		a.logger.Errorf("storage: encoding tasks: %v", err)
		return err
	}
	if err := a.kv.Set(ctx, a.tasksKey, string(data)); err != nil {
		a.logger.Errorf("storage: saving tasks: %v", err)
		return err
	}
	a.logger.Debugf("storage: saved %d tasks", len(tasks))
	return nil
}

// LoadTasks reads the persisted collection. Absent, unreadable or corrupt
// data yields an empty collection; startup never fails on bad prior state.
func (a *Adapter) LoadTasks(ctx context.Context) []domain.Task {
	raw, ok, err := a.kv.Get(ctx, a.tasksKey)
	if err != nil {
		a.logger.Errorf("storage: loading tasks: %v", err)
		return []domain.Task{}
	}
	if !ok {
		return []domain.Task{}
	}
	var tasks []domain.Task
	if err := sonic.ConfigStd.Unmarshal([]byte(raw), &tasks); err != nil {
		a.logger.Errorf("storage: decoding tasks, starting empty: %v", err)
		return []domain.Task{}
	}
	a.logger.Debugf("storage: loaded %d tasks", len(tasks))
	return tasks
}

// SaveTheme writes the theme identifier under the theme key.
func (a *Adapter) SaveTheme(ctx context.Context, theme string) error {
	if err := a.kv.Set(ctx, a.themeKey, theme); err != nil {
		a.logger.Errorf("storage: saving theme: %v", err)
		return err
	}
	return nil
}

// LoadTheme reads the persisted theme. Anything absent, unreadable or
// outside the enumerated theme set yields the default.
func (a *Adapter) LoadTheme(ctx context.Context) string {
	raw, ok, err := a.kv.Get(ctx, a.themeKey)
	if err != nil {
		a.logger.Errorf("storage: loading theme: %v", err)
		return domain.DefaultTheme
	}
	if !ok {
		return domain.DefaultTheme
	}
	if !domain.ValidTheme(raw) {
		a.logger.Warnf("storage: ignoring unknown persisted theme %q", raw)
		return domain.DefaultTheme
	}
	return raw
}
