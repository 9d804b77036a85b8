package games

import "strings"

// TriviaQuestion is a multiple-choice question with exactly one correct
// answer among the shuffled choices.
type TriviaQuestion struct {
	Prompt       string
	Choices      []string
	CorrectIndex int
}

// Correct returns the correct answer text.
func (q TriviaQuestion) Correct() string {
	return q.Choices[q.CorrectIndex]
}

// AnswerMatches scores a free-form answer against the correct one:
// case-insensitive exact match after trimming surrounding whitespace.
func (q TriviaQuestion) AnswerMatches(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.Correct()))
}

// ShuffleIn builds a question from a prompt, the correct answer and the
// distractors, shuffling the choices.
func ShuffleIn(rng Rand, prompt, correct string, incorrect []string) TriviaQuestion {
	choices := make([]string, 0, len(incorrect)+1)
	choices = append(choices, incorrect...)
	choices = append(choices, correct)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	q := TriviaQuestion{Prompt: prompt, Choices: choices}
	for i, c := range choices {
		if c == correct {
			q.CorrectIndex = i
			break
		}
	}
	return q
}

// LocalQuestions is the built-in pool used when the trivia API is
// unreachable; commands degrade to it rather than failing.
func LocalQuestions() []TriviaQuestion {
	return []TriviaQuestion{
		{Prompt: "How many cards are in a standard deck without jokers?", Choices: []string{"48", "50", "52", "54"}, CorrectIndex: 2},
		{Prompt: "In blackjack, what is the highest value an ace can count for?", Choices: []string{"1", "10", "11", "21"}, CorrectIndex: 2},
		{Prompt: "What is the sum of opposite faces on a standard die?", Choices: []string{"6", "7", "8", "9"}, CorrectIndex: 1},
		{Prompt: "Which hand beats a flush in poker?", Choices: []string{"Straight", "Two pair", "Full house", "Three of a kind"}, CorrectIndex: 2},
		{Prompt: "How many pips are on a standard die in total?", Choices: []string{"18", "20", "21", "24"}, CorrectIndex: 2},
		{Prompt: "What does the dealer do on seventeen in this house?", Choices: []string{"Hit", "Stand", "Double", "Fold"}, CorrectIndex: 1},
	}
}
