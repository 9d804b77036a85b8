package services

import (
	"context"
	"strings"

	"barkeep/domain/entities"
	"barkeep/domain/interfaces"
)

// NoteService manages per-user note lists.
type NoteService struct {
	notes interfaces.NoteRepository
}

// NewNoteService creates a note service.
func NewNoteService(notes interfaces.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// Add stores a note after trimming and length validation.
func (s *NoteService) Add(ctx context.Context, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.NewValidationError("note cannot be empty")
	}
	if len(text) > entities.MaxNoteLength {
		return entities.NewValidationError("note too long (max %d characters)", entities.MaxNoteLength)
	}
	return s.notes.Add(ctx, userID, text)
}

// List returns the user's notes in insertion order.
func (s *NoteService) List(ctx context.Context, userID int64) ([]entities.Note, error) {
	return s.notes.List(ctx, userID)
}

// Delete removes the note at the 1-based position shown in listings.
func (s *NoteService) Delete(ctx context.Context, userID int64, position int) error {
	if position < 1 {
		return entities.NewValidationError("note number must be at least 1")
	}
	return s.notes.Delete(ctx, userID, position-1)
}
