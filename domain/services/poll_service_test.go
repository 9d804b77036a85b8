package services

import (
	"context"
	"testing"
	"time"

	"barkeep/domain/entities"
	"barkeep/domain/events"
	"barkeep/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func openPoll() *entities.Poll {
	return &entities.Poll{
		ID:        7,
		ChannelID: 100,
		CreatorID: 111,
		Question:  "Pizza night?",
		Options:   []string{"Yes", "No", "Only Fridays"},
		Votes:     make(map[int64]int),
		CreatedAt: time.Now().UTC(),
	}
}

func TestPollService_CreatePoll_ValidatesOptions(t *testing.T) {
	service := NewPollService(new(testhelpers.MockPollRepository), &testhelpers.RecordingPublisher{})
	ctx := context.Background()

	_, err := service.CreatePoll(ctx, 100, 111, "Pick one", []string{"only"})
	assert.True(t, entities.IsValidation(err), "one option is too few")

	_, err = service.CreatePoll(ctx, 100, 111, "Pick one", []string{"a", "b", "c", "d", "e", "f"})
	assert.True(t, entities.IsValidation(err), "six options is too many")

	_, err = service.CreatePoll(ctx, 100, 111, "Pick one", []string{"same", "same"})
	assert.True(t, entities.IsValidation(err), "duplicate options rejected")

	_, err = service.CreatePoll(ctx, 100, 111, "", []string{"a", "b"})
	assert.True(t, entities.IsValidation(err), "empty question rejected")
}

func TestPollService_CreatePoll_Stores(t *testing.T) {
	mockPollRepo := new(testhelpers.MockPollRepository)
	service := NewPollService(mockPollRepo, &testhelpers.RecordingPublisher{})
	ctx := context.Background()

	mockPollRepo.On("Create", ctx, mock.MatchedBy(func(p *entities.Poll) bool {
		return p.Question == "Pizza night?" && len(p.Options) == 2 && !p.Closed
	})).Return(int64(1), nil)

	poll, err := service.CreatePoll(ctx, 100, 111, "Pizza night?", []string{"Yes", "No"})

	require.NoError(t, err)
	assert.NotNil(t, poll.Votes)
	mockPollRepo.AssertExpectations(t)
}

func TestPollService_Vote_RevoteOverwrites(t *testing.T) {
	mockPollRepo := new(testhelpers.MockPollRepository)
	publisher := &testhelpers.RecordingPublisher{}
	service := NewPollService(mockPollRepo, publisher)
	ctx := context.Background()

	poll := openPoll()
	mockPollRepo.On("GetByID", ctx, int64(7)).Return(poll, nil)
	mockPollRepo.On("Save", ctx, poll).Return(nil)

	_, overrode, err := service.Vote(ctx, 7, 222, 0)
	require.NoError(t, err)
	assert.False(t, overrode)

	_, overrode, err = service.Vote(ctx, 7, 222, 2)
	require.NoError(t, err)
	assert.True(t, overrode)

	// The old vote is gone; tallies count each voter once.
	assert.Equal(t, []int{0, 0, 1}, poll.Tally())
	assert.Equal(t, 1, poll.TotalVotes())

	require.Len(t, publisher.Events, 2)
	second := publisher.Events[1].(events.PollVoteEvent)
	assert.True(t, second.Overrode)
}

func TestPollService_Vote_ClosedPoll(t *testing.T) {
	mockPollRepo := new(testhelpers.MockPollRepository)
	service := NewPollService(mockPollRepo, &testhelpers.RecordingPublisher{})
	ctx := context.Background()

	poll := openPoll()
	poll.Closed = true
	mockPollRepo.On("GetByID", ctx, int64(7)).Return(poll, nil)

	_, _, err := service.Vote(ctx, 7, 222, 0)

	assert.ErrorIs(t, err, entities.ErrExpired)
}

func TestPollService_Vote_OptionOutOfRange(t *testing.T) {
	mockPollRepo := new(testhelpers.MockPollRepository)
	service := NewPollService(mockPollRepo, &testhelpers.RecordingPublisher{})
	ctx := context.Background()

	mockPollRepo.On("GetByID", ctx, int64(7)).Return(openPoll(), nil)

	_, _, err := service.Vote(ctx, 7, 222, 5)

	assert.True(t, entities.IsValidation(err))
}

func TestPollService_Close_Authorization(t *testing.T) {
	mockPollRepo := new(testhelpers.MockPollRepository)
	service := NewPollService(mockPollRepo, &testhelpers.RecordingPublisher{})
	ctx := context.Background()

	poll := openPoll()
	mockPollRepo.On("GetByID", ctx, int64(7)).Return(poll, nil)
	mockPollRepo.On("Save", ctx, poll).Return(nil)

	// A random user cannot close it.
	_, err := service.Close(ctx, 7, 999, false)
	assert.ErrorIs(t, err, entities.ErrUnauthorized)

	// A moderator can.
	closed, err := service.Close(ctx, 7, 999, true)
	require.NoError(t, err)
	assert.True(t, closed.Closed)

	// A second close fails.
	_, err = service.Close(ctx, 7, 111, false)
	assert.ErrorIs(t, err, entities.ErrExpired)
}

func TestPollService_Close_ByCreator(t *testing.T) {
	mockPollRepo := new(testhelpers.MockPollRepository)
	service := NewPollService(mockPollRepo, &testhelpers.RecordingPublisher{})
	ctx := context.Background()

	poll := openPoll()
	mockPollRepo.On("GetByID", ctx, int64(7)).Return(poll, nil)
	mockPollRepo.On("Save", ctx, poll).Return(nil)

	closed, err := service.Close(ctx, 7, poll.CreatorID, false)

	require.NoError(t, err)
	assert.True(t, closed.Closed)
}
