package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"barkeep/domain/games"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriviaClient_FetchQuestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api_token.php":
			io.WriteString(w, `{"response_code":0,"token":"abc123"}`)
		case "/api.php":
			assert.Equal(t, "abc123", r.URL.Query().Get("token"))
			io.WriteString(w, `{"response_code":0,"results":[{"question":"What%20is%202%2B2%3F","correct_answer":"4","incorrect_answers":["3","5","22"]}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewTriviaClient(server.URL)
	q, token, err := client.FetchQuestion(context.Background(), "", games.NewSeededRand(1))

	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Equal(t, "What is 2+2?", q.Prompt)
	assert.Len(t, q.Choices, 4)
	assert.Equal(t, "4", q.Correct())
}

func TestTriviaClient_TokenExpiredRetriesOnce(t *testing.T) {
	tokens := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api_token.php":
			tokens++
			fmt.Fprintf(w, `{"response_code":0,"token":"fresh%d"}`, tokens)
		case "/api.php":
			if r.URL.Query().Get("token") == "stale" {
				io.WriteString(w, `{"response_code":3}`)
				return
			}
			io.WriteString(w, `{"response_code":0,"results":[{"question":"Q","correct_answer":"A","incorrect_answers":["B","C","D"]}]}`)
		}
	}))
	defer server.Close()

	client := NewTriviaClient(server.URL)
	q, token, err := client.FetchQuestion(context.Background(), "stale", games.NewSeededRand(1))

	require.NoError(t, err)
	assert.Equal(t, 1, tokens)
	assert.Equal(t, "fresh1", token)
	assert.Equal(t, "Q", q.Prompt)
}

func TestTriviaClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewTriviaClient(server.URL)
	_, _, err := client.FetchQuestion(context.Background(), "tok", games.NewSeededRand(1))

	assert.Error(t, err)
}
