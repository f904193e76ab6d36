package store

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/validation"
)

// AddTask validates and inserts a task, stamping identity and timestamps.
func (s *Store) AddTask(t models.Task) (models.Task, error) {
	if err := validation.Task(t); err != nil {
		return models.Task{}, err
	}

	t.ID = uuid.NewString()
	if t.Status == "" {
		t.Status = models.TaskPending
	}
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.DeletedAt = nil

	s.mu.Lock()
	s.snap.Tasks[t.ID] = t
	s.mutate(EventTaskCreated, t)
	return t, nil
}

// UpdateTask replaces an existing task's fields. Identity, creation time,
// and the deletion tombstone are preserved.
func (s *Store) UpdateTask(t models.Task) (models.Task, error) {
	s.mu.Lock()
	existing, ok := s.snap.Tasks[t.ID]
	if !ok || existing.Deleted() {
		s.mu.Unlock()
		return models.Task{}, fmt.Errorf("task %s: %w", t.ID, ErrNotFound)
	}
	if err := validation.Task(t); err != nil {
		s.mu.Unlock()
		return models.Task{}, err
	}

	t.CreatedAt = existing.CreatedAt
	t.DeletedAt = existing.DeletedAt
	t.UpdatedAt = s.now()

	s.snap.Tasks[t.ID] = t
	s.mutate(EventTaskUpdated, t)
	return t, nil
}

// CompleteTask marks a task completed.
func (s *Store) CompleteTask(id string) (models.Task, error) {
	s.mu.Lock()
	t, ok := s.snap.Tasks[id]
	if !ok || t.Deleted() {
		s.mu.Unlock()
		return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	t.Status = models.TaskCompleted
	t.UpdatedAt = s.now()
	s.snap.Tasks[id] = t
	s.mutate(EventTaskCompleted, t)
	return t, nil
}

// DeleteTask soft-deletes: the task stays in the snapshot under a
// tombstone so sync and activity history keep seeing it.
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	t, ok := s.snap.Tasks[id]
	if !ok || t.Deleted() {
		s.mu.Unlock()
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	now := s.now()
	t.DeletedAt = &now
	t.UpdatedAt = now
	s.snap.Tasks[id] = t
	s.mutate(EventTaskDeleted, t)
	return nil
}

// RestoreTask clears a task's deletion tombstone.
func (s *Store) RestoreTask(id string) (models.Task, error) {
	s.mu.Lock()
	t, ok := s.snap.Tasks[id]
	if !ok {
		s.mu.Unlock()
		return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if !t.Deleted() {
		s.mu.Unlock()
		return models.Task{}, fmt.Errorf("task %s is not deleted", id)
	}

	t.DeletedAt = nil
	t.UpdatedAt = s.now()
	s.snap.Tasks[id] = t
	s.mutate(EventTaskUpdated, t)
	return t, nil
}

// GetTask returns a live (non-deleted) task.
func (s *Store) GetTask(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.snap.Tasks[id]
	if !ok || t.Deleted() {
		return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, nil
}

// GetTasks lists tasks in creation order. Tombstoned tasks are included
// only on request; activity-history consumers rely on seeing them.
func (s *Store) GetTasks(includeDeleted bool) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]models.Task, 0, len(s.snap.Tasks))
	for _, t := range s.snap.Tasks {
		if !includeDeleted && t.Deleted() {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	return tasks
}

// GetTasksByProject lists live tasks referencing the given project id.
func (s *Store) GetTasksByProject(projectID string) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks []models.Task
	for _, t := range s.snap.Tasks {
		if t.Deleted() || t.ProjectID != projectID {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	return tasks
}

// GetTasksForDay lists live tasks scheduled on the given day.
func (s *Store) GetTasksForDay(day string) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tasks []models.Task
	for _, t := range s.snap.Tasks {
		if t.Deleted() || t.ScheduledDate != day {
			continue
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].PriorityScore > tasks[j].PriorityScore })
	return tasks
}
