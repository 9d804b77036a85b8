package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleInKeepsCorrectIndex(t *testing.T) {
	rng := NewSeededRand(5)
	incorrect := []string{"Paris", "Rome", "Madrid"}

	for i := 0; i < 50; i++ {
		q := ShuffleIn(rng, "Capital of Germany?", "Berlin", incorrect)
		require.Len(t, q.Choices, 4)
		assert.Equal(t, "Berlin", q.Correct())
		assert.Contains(t, q.Choices, "Paris")
	}
}

func TestAnswerMatches(t *testing.T) {
	q := TriviaQuestion{Prompt: "p", Choices: []string{"x", "Berlin"}, CorrectIndex: 1}

	assert.True(t, q.AnswerMatches("Berlin"))
	assert.True(t, q.AnswerMatches("  berlin  "))
	assert.False(t, q.AnswerMatches("Paris"))
	assert.False(t, q.AnswerMatches(""))
}

func TestLocalQuestionsAreWellFormed(t *testing.T) {
	pool := LocalQuestions()
	require.NotEmpty(t, pool)
	for _, q := range pool {
		assert.NotEmpty(t, q.Prompt)
		assert.GreaterOrEqual(t, len(q.Choices), 2)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.Less(t, q.CorrectIndex, len(q.Choices))
	}
}
