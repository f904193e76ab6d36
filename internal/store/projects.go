package store

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/validation"
)

// AddProject validates and inserts a project.
func (s *Store) AddProject(p models.Project) (models.Project, error) {
	if err := validation.Project(p); err != nil {
		return models.Project{}, err
	}

	p.ID = uuid.NewString()
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.mu.Lock()
	s.snap.Projects[p.ID] = p
	s.mutate(EventProjectCreated, p)
	return p, nil
}

// UpdateProject replaces a project's fields, keeping identity and
// creation time.
func (s *Store) UpdateProject(p models.Project) (models.Project, error) {
	s.mu.Lock()
	existing, ok := s.snap.Projects[p.ID]
	if !ok {
		s.mu.Unlock()
		return models.Project{}, fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
	}
	if err := validation.Project(p); err != nil {
		s.mu.Unlock()
		return models.Project{}, err
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()
	s.snap.Projects[p.ID] = p
	s.mutate(EventProjectUpdated, p)
	return p, nil
}

// DeleteProject hard-deletes a project. Tasks referencing it keep their
// project id; the reference is weak and resolves to nothing afterwards.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	p, ok := s.snap.Projects[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	delete(s.snap.Projects, id)
	s.mutate(EventProjectDeleted, p)
	return nil
}

// GetProject returns a project by id.
func (s *Store) GetProject(id string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.snap.Projects[id]
	if !ok {
		return models.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// GetProjects lists projects in creation order.
func (s *Store) GetProjects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]models.Project, 0, len(s.snap.Projects))
	for _, p := range s.snap.Projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].CreatedAt.Before(projects[j].CreatedAt) })
	return projects
}
