package store

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/recurrence"
	"github.com/averyquinn/daybook/internal/streak"
	"github.com/averyquinn/daybook/internal/utils"
	"github.com/averyquinn/daybook/internal/validation"
)

// AddHabit validates and inserts a habit. For every_n_days policies the
// creation day doubles as the cycle anchor when none was given.
func (s *Store) AddHabit(h models.Habit) (models.Habit, error) {
	if h.Policy.Type == models.PolicyEveryNDays && h.Policy.Anchor == "" {
		h.Policy.Anchor = s.today()
	}
	if err := validation.Habit(h); err != nil {
		return models.Habit{}, err
	}

	h.ID = uuid.NewString()
	h.CreatedAt = s.today()
	h.UpdatedAt = s.now()
	h.CompletionLog = nil
	h.Streak = 0
	h.BestStreak = 0

	s.mu.Lock()
	s.snap.Habits[h.ID] = h
	s.mutate(EventHabitCreated, h.Clone())
	return h, nil
}

// UpdateHabit replaces display metadata and policy. The completion ledger
// and creation day are preserved, and the memoized streak fields are
// recomputed under the new policy so they stay reproducible.
func (s *Store) UpdateHabit(h models.Habit) (models.Habit, error) {
	s.mu.Lock()
	existing, ok := s.snap.Habits[h.ID]
	if !ok {
		s.mu.Unlock()
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, ErrNotFound)
	}
	if h.Policy.Type == models.PolicyEveryNDays && h.Policy.Anchor == "" {
		h.Policy.Anchor = existing.CreatedAt
	}
	if err := validation.Habit(h); err != nil {
		s.mu.Unlock()
		return models.Habit{}, err
	}

	h.CreatedAt = existing.CreatedAt
	h.CompletionLog = existing.CompletionLog
	h.BestStreak = existing.BestStreak
	h.UpdatedAt = s.now()
	streak.Recompute(&h, s.now())

	s.snap.Habits[h.ID] = h
	s.mutate(EventHabitUpdated, h.Clone())
	return h, nil
}

// DeleteHabit hard-deletes: the habit and its entire ledger leave the
// snapshot. No tombstone, by contrast with tasks.
func (s *Store) DeleteHabit(id string) error {
	s.mu.Lock()
	h, ok := s.snap.Habits[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}

	delete(s.snap.Habits, id)
	s.mutate(EventHabitDeleted, h.Clone())
	return nil
}

// GetHabit returns a habit by id.
func (s *Store) GetHabit(id string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.snap.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return h.Clone(), nil
}

// GetHabitByName returns a habit by exact name.
func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.snap.Habits {
		if h.Name == name {
			return h.Clone(), nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q: %w", name, ErrNotFound)
}

// GetHabits lists habits in creation order.
func (s *Store) GetHabits() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	habits := make([]models.Habit, 0, len(s.snap.Habits))
	for _, h := range s.snap.Habits {
		habits = append(habits, h.Clone())
	}
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt != habits[j].CreatedAt {
			return habits[i].CreatedAt < habits[j].CreatedAt
		}
		return habits[i].Name < habits[j].Name
	})
	return habits
}

// ToggleCompletion marks or unmarks the habit done on the given day (""
// means today) and recomputes the memoized streak fields.
func (s *Store) ToggleCompletion(id, day string) (models.Habit, error) {
	s.mu.Lock()
	h, ok := s.snap.Habits[id]
	if !ok {
		s.mu.Unlock()
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	if day == "" {
		day = s.today()
	}
	if err := validation.Day(day); err != nil {
		s.mu.Unlock()
		return models.Habit{}, err
	}

	log, added := h.CompletionLog.Add(day)
	if !added {
		log, _ = h.CompletionLog.Remove(day)
	}
	h.CompletionLog = log
	h.UpdatedAt = s.now()
	streak.Recompute(&h, s.now())

	s.snap.Habits[id] = h
	event := EventHabitCompleted
	if !added {
		event = EventHabitUpdated
	}
	s.mutate(event, h.Clone())
	return h.Clone(), nil
}

// Backfill adds any of the given days not already in the ledger and
// recomputes streaks once for the whole batch, not per day. Returns the
// days actually added.
func (s *Store) Backfill(id string, days []string) (models.Habit, []string, error) {
	s.mu.Lock()
	h, ok := s.snap.Habits[id]
	if !ok {
		s.mu.Unlock()
		return models.Habit{}, nil, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	for _, d := range days {
		if err := validation.Day(d); err != nil {
			s.mu.Unlock()
			return models.Habit{}, nil, err
		}
	}

	var added []string
	log := h.CompletionLog
	for _, d := range days {
		var ok bool
		if log, ok = log.Add(d); ok {
			added = append(added, d)
		}
	}
	if len(added) == 0 {
		s.mu.Unlock()
		return h.Clone(), nil, nil
	}

	h.CompletionLog = log
	h.UpdatedAt = s.now()
	streak.Recompute(&h, s.now())

	s.snap.Habits[id] = h
	s.mutate(EventHabitUpdated, h.Clone())
	return h.Clone(), added, nil
}

// HabitStats recomputes the derived view for display without mutating the
// stored habit.
func (s *Store) HabitStats(id string) (streak.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.snap.Habits[id]
	if !ok {
		return streak.Result{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return streak.Compute(h, s.now()), nil
}

// DueToday lists habits whose policy makes them due on the current day.
func (s *Store) DueToday() []models.Habit {
	today := utils.Day(s.now())
	var due []models.Habit
	for _, h := range s.GetHabits() {
		if recurrence.IsDue(h.Policy, today) {
			due = append(due, h)
		}
	}
	return due
}
