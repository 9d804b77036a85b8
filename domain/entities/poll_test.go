package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePollOptions(t *testing.T) {
	assert.NoError(t, ValidatePollOptions([]string{"yes", "no"}))
	assert.NoError(t, ValidatePollOptions([]string{"a", "b", "c", "d", "e"}))

	var vErr *ValidationError
	assert.ErrorAs(t, ValidatePollOptions([]string{"only one"}), &vErr)
	assert.ErrorAs(t, ValidatePollOptions([]string{"a", "b", "c", "d", "e", "f"}), &vErr)
	assert.ErrorAs(t, ValidatePollOptions([]string{"yes", ""}), &vErr)
	assert.ErrorAs(t, ValidatePollOptions([]string{"yes", "yes"}), &vErr)
}

func TestPollVoteOverwrites(t *testing.T) {
	poll := &Poll{Options: []string{"red", "green", "blue"}}

	require.NoError(t, poll.Vote(100, 0))
	require.NoError(t, poll.Vote(200, 1))
	require.NoError(t, poll.Vote(100, 2))

	assert.Equal(t, []int{0, 1, 1}, poll.Tally())
	assert.Equal(t, 2, poll.TotalVotes())
}

func TestPollVoteValidation(t *testing.T) {
	poll := &Poll{Options: []string{"red", "green"}}

	var vErr *ValidationError
	assert.ErrorAs(t, poll.Vote(100, -1), &vErr)
	assert.ErrorAs(t, poll.Vote(100, 2), &vErr)

	poll.Closed = true
	assert.ErrorIs(t, poll.Vote(100, 0), ErrExpired)
}

func TestPollTallyEmptyPoll(t *testing.T) {
	poll := &Poll{Options: []string{"red", "green"}}
	assert.Equal(t, []int{0, 0}, poll.Tally())
	assert.Equal(t, 0, poll.TotalVotes())
}
