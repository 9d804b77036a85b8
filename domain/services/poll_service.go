package services

import (
	"context"
	"fmt"
	"time"

	"barkeep/domain/entities"
	"barkeep/domain/events"
	"barkeep/domain/interfaces"
)

// PollService manages poll lifecycle and voting. Revotes overwrite the
// previous choice; closing is idempotent from the caller's view but only the
// first close reports the final tally.
type PollService struct {
	polls     interfaces.PollRepository
	publisher interfaces.EventPublisher
}

// NewPollService creates a poll service.
func NewPollService(polls interfaces.PollRepository, publisher interfaces.EventPublisher) *PollService {
	return &PollService{polls: polls, publisher: publisher}
}

// CreatePoll validates the options and stores a new open poll.
func (s *PollService) CreatePoll(ctx context.Context, channelID, creatorID int64, question string, options []string) (*entities.Poll, error) {
	if question == "" {
		return nil, entities.NewValidationError("poll question cannot be empty")
	}
	if err := entities.ValidatePollOptions(options); err != nil {
		return nil, err
	}

	poll := &entities.Poll{
		ChannelID: channelID,
		CreatorID: creatorID,
		Question:  question,
		Options:   options,
		Votes:     make(map[int64]int),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.polls.Create(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}
	return poll, nil
}

// Vote records the user's choice, overwriting any previous vote on the same
// poll. Returns the updated poll and whether an earlier vote was replaced.
func (s *PollService) Vote(ctx context.Context, pollID, userID int64, option int) (*entities.Poll, bool, error) {
	poll, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, false, err
	}

	_, overrode := poll.Votes[userID]
	if err := poll.Vote(userID, option); err != nil {
		return nil, false, err
	}
	if err := s.polls.Save(ctx, poll); err != nil {
		return nil, false, fmt.Errorf("failed to save poll: %w", err)
	}

	s.publisher.Publish(events.PollVoteEvent{
		PollID:   poll.ID,
		UserID:   userID,
		Option:   option,
		Overrode: overrode,
	})
	return poll, overrode, nil
}

// Close finalizes the poll. Only the creator or a moderator may close it;
// closing an already closed poll fails with ErrExpired.
func (s *PollService) Close(ctx context.Context, pollID, requesterID int64, isModerator bool) (*entities.Poll, error) {
	poll, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.Closed {
		return nil, entities.ErrExpired
	}
	if requesterID != poll.CreatorID && !isModerator {
		return nil, entities.ErrUnauthorized
	}

	poll.Closed = true
	if err := s.polls.Save(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to save poll: %w", err)
	}
	return poll, nil
}

// Results returns the poll with its current tally without mutating it.
func (s *PollService) Results(ctx context.Context, pollID int64) (*entities.Poll, []int, error) {
	poll, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, nil, err
	}
	return poll, poll.Tally(), nil
}
