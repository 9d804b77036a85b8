package services

import (
	"context"
	"strings"
	"testing"

	"barkeep/domain/entities"
	"barkeep/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_Add_TrimsAndValidates(t *testing.T) {
	ctx := context.Background()
	mockNoteRepo := new(testhelpers.MockNoteRepository)
	service := NewNoteService(mockNoteRepo)

	mockNoteRepo.On("Add", ctx, int64(111), "buy milk").Return(nil)
	require.NoError(t, service.Add(ctx, 111, "  buy milk  "))
	mockNoteRepo.AssertExpectations(t)

	assert.True(t, entities.IsValidation(service.Add(ctx, 111, "   ")))
	assert.True(t, entities.IsValidation(service.Add(ctx, 111, strings.Repeat("x", entities.MaxNoteLength+1))))
}

func TestNoteService_Delete_TranslatesPosition(t *testing.T) {
	ctx := context.Background()
	mockNoteRepo := new(testhelpers.MockNoteRepository)
	service := NewNoteService(mockNoteRepo)

	mockNoteRepo.On("Delete", ctx, int64(111), 2).Return(nil)
	require.NoError(t, service.Delete(ctx, 111, 3))

	assert.True(t, entities.IsValidation(service.Delete(ctx, 111, 0)))
}
