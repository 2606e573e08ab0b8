package store

import (
	"fmt"
	"time"

	"github.com/securepass/securepass/internal/models"
)

// NoteStore owns the note collection.
type NoteStore struct {
	*Collection[models.Note]
}

// NewNoteStore constructs an empty note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{
		Collection: NewCollection(
			func(n models.Note) string { return n.ID },
			func(n *models.Note, id string) { n.ID = id },
			func(n *models.Note, t time.Time) { n.LastModified = t },
		),
	}
}

func ValidateNote(n models.Note) error {
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if n.Content == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}

// Add validates and stores a new note.
func (s *NoteStore) Add(n models.Note) (models.Note, error) {
	if err := ValidateNote(n); err != nil {
		return models.Note{}, err
	}
	if n.Category == "" {
		n.Category = models.NoteCategoryOther
	}
	return s.Collection.Add(n), nil
}

// Update validates and replaces the note with the given id. An absent id is
// a silent no-op.
func (s *NoteStore) Update(id string, n models.Note) error {
	if err := ValidateNote(n); err != nil {
		return err
	}
	s.Collection.Update(id, n)
	return nil
}
