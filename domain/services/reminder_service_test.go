package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"barkeep/domain/entities"
	"barkeep/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReminderService_Schedule(t *testing.T) {
	ctx := context.Background()
	mockReminderRepo := new(testhelpers.MockReminderRepository)
	service := NewReminderService(mockReminderRepo)

	before := time.Now().UTC()
	mockReminderRepo.On("Add", ctx, mock.MatchedBy(func(r *entities.Reminder) bool {
		return r.UserID == 111 && r.ChannelID == 100 && r.Message == "stand up" && !r.DM
	})).Return(int64(1), nil)

	reminder, err := service.Schedule(ctx, 111, 100, "stand up", 30*time.Minute, false)

	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(30*time.Minute), reminder.DueAt, 2*time.Second)
	mockReminderRepo.AssertExpectations(t)
}

func TestReminderService_Schedule_Validation(t *testing.T) {
	service := NewReminderService(new(testhelpers.MockReminderRepository))
	ctx := context.Background()

	_, err := service.Schedule(ctx, 111, 100, "", time.Minute, false)
	assert.True(t, entities.IsValidation(err), "empty message")

	_, err = service.Schedule(ctx, 111, 100, strings.Repeat("x", MaxReminderMessage+1), time.Minute, false)
	assert.True(t, entities.IsValidation(err), "overlong message")

	_, err = service.Schedule(ctx, 111, 100, "past", -time.Minute, false)
	assert.True(t, entities.IsValidation(err), "non-positive delay")
}

func TestReminderService_Cancel_ByOwner(t *testing.T) {
	ctx := context.Background()
	mockReminderRepo := new(testhelpers.MockReminderRepository)
	service := NewReminderService(mockReminderRepo)

	mockReminderRepo.On("ListByUser", ctx, int64(111)).Return([]*entities.Reminder{{ID: 5, UserID: 111}}, nil)
	mockReminderRepo.On("Remove", ctx, int64(5)).Return(true, nil)

	err := service.Cancel(ctx, 5, 111, false)

	require.NoError(t, err)
	mockReminderRepo.AssertExpectations(t)
}

func TestReminderService_Cancel_NotOwner(t *testing.T) {
	ctx := context.Background()
	mockReminderRepo := new(testhelpers.MockReminderRepository)
	service := NewReminderService(mockReminderRepo)

	mockReminderRepo.On("ListByUser", ctx, int64(222)).Return([]*entities.Reminder{}, nil)

	err := service.Cancel(ctx, 5, 222, false)

	assert.ErrorIs(t, err, entities.ErrUnauthorized)
	mockReminderRepo.AssertNotCalled(t, "Remove", ctx, int64(5))
}

func TestReminderService_Cancel_ModeratorOverride(t *testing.T) {
	ctx := context.Background()
	mockReminderRepo := new(testhelpers.MockReminderRepository)
	service := NewReminderService(mockReminderRepo)

	mockReminderRepo.On("ListByUser", ctx, int64(222)).Return([]*entities.Reminder{}, nil)
	mockReminderRepo.On("Remove", ctx, int64(5)).Return(true, nil)

	err := service.Cancel(ctx, 5, 222, true)

	require.NoError(t, err)
}

func TestReminderService_Cancel_Missing(t *testing.T) {
	ctx := context.Background()
	mockReminderRepo := new(testhelpers.MockReminderRepository)
	service := NewReminderService(mockReminderRepo)

	mockReminderRepo.On("ListByUser", ctx, int64(111)).Return([]*entities.Reminder{}, nil)
	mockReminderRepo.On("Remove", ctx, int64(99)).Return(false, nil)

	err := service.Cancel(ctx, 99, 111, true)

	assert.ErrorIs(t, err, entities.ErrNotFound)
}
