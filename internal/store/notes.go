package store

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/averyquinn/daybook/internal/models"
	"github.com/averyquinn/daybook/internal/validation"
)

// AddNote validates and inserts a note.
func (s *Store) AddNote(n models.Note) (models.Note, error) {
	if err := validation.Note(n); err != nil {
		return models.Note{}, err
	}

	n.ID = uuid.NewString()
	now := s.now()
	n.CreatedAt = now
	n.UpdatedAt = now

	s.mu.Lock()
	s.snap.Notes[n.ID] = n
	s.mutate(EventNoteCreated, n)
	return n, nil
}

// UpdateNote replaces a note's fields, keeping identity and creation time.
func (s *Store) UpdateNote(n models.Note) (models.Note, error) {
	s.mu.Lock()
	existing, ok := s.snap.Notes[n.ID]
	if !ok {
		s.mu.Unlock()
		return models.Note{}, fmt.Errorf("note %s: %w", n.ID, ErrNotFound)
	}
	if err := validation.Note(n); err != nil {
		s.mu.Unlock()
		return models.Note{}, err
	}

	n.CreatedAt = existing.CreatedAt
	n.UpdatedAt = s.now()
	s.snap.Notes[n.ID] = n
	s.mutate(EventNoteUpdated, n)
	return n, nil
}

// DeleteNote hard-deletes a note.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	n, ok := s.snap.Notes[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}

	delete(s.snap.Notes, id)
	s.mutate(EventNoteDeleted, n)
	return nil
}

// GetNote returns a note by id.
func (s *Store) GetNote(id string) (models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.snap.Notes[id]
	if !ok {
		return models.Note{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return n, nil
}

// GetNotes lists notes in creation order, optionally scoped to a project.
func (s *Store) GetNotes(projectID string) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make([]models.Note, 0, len(s.snap.Notes))
	for _, n := range s.snap.Notes {
		if projectID != "" && n.ProjectID != projectID {
			continue
		}
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.Before(notes[j].CreatedAt) })
	return notes
}
