package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"barkeep/domain/games"
)

// OpenTDB response codes.
const (
	triviaCodeSuccess      = 0
	triviaCodeNoResults    = 1
	triviaCodeTokenEmpty   = 4
	triviaCodeTokenMissing = 3
)

// TriviaClient fetches questions from an OpenTDB-compatible API. A session
// token avoids repeat questions; when it expires the client requests a fresh
// one and retries once. Callers fall back to the local pool on any error.
type TriviaClient struct {
	http    *http.Client
	baseURL string
}

// NewTriviaClient creates a client for the given OpenTDB-compatible base URL.
func NewTriviaClient(baseURL string) *TriviaClient {
	return &TriviaClient{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

type triviaResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

type tokenResponse struct {
	ResponseCode int    `json:"response_code"`
	Token        string `json:"token"`
}

// RequestToken asks the API for a new session token.
func (c *TriviaClient) RequestToken(ctx context.Context) (string, error) {
	var resp tokenResponse
	if err := c.getJSON(ctx, c.baseURL+"/api_token.php?command=request", &resp); err != nil {
		return "", err
	}
	if resp.ResponseCode != triviaCodeSuccess || resp.Token == "" {
		return "", fmt.Errorf("trivia token request failed with code %d", resp.ResponseCode)
	}
	return resp.Token, nil
}

// FetchQuestion fetches one multiple-choice question using the given session
// token. It returns the question, the token to persist for the next call
// (refreshed when the old one expired), and an error. Choices are shuffled
// with rng.
func (c *TriviaClient) FetchQuestion(ctx context.Context, token string, rng games.Rand) (*games.TriviaQuestion, string, error) {
	if token == "" {
		fresh, err := c.RequestToken(ctx)
		if err != nil {
			return nil, "", err
		}
		token = fresh
	}

	resp, err := c.fetch(ctx, token)
	if err != nil {
		return nil, token, err
	}

	// Expired or exhausted token: get a new one and retry once.
	if resp.ResponseCode == triviaCodeTokenMissing || resp.ResponseCode == triviaCodeTokenEmpty {
		log.WithField("code", resp.ResponseCode).Info("Trivia session token expired, requesting a new one")
		fresh, err := c.RequestToken(ctx)
		if err != nil {
			return nil, "", err
		}
		token = fresh
		resp, err = c.fetch(ctx, token)
		if err != nil {
			return nil, token, err
		}
	}

	if resp.ResponseCode != triviaCodeSuccess || len(resp.Results) == 0 {
		return nil, token, fmt.Errorf("trivia fetch failed with code %d", resp.ResponseCode)
	}

	raw := resp.Results[0]
	prompt, err := url.QueryUnescape(raw.Question)
	if err != nil {
		return nil, token, fmt.Errorf("failed to decode question: %w", err)
	}
	correct, err := url.QueryUnescape(raw.CorrectAnswer)
	if err != nil {
		return nil, token, fmt.Errorf("failed to decode answer: %w", err)
	}
	incorrect := make([]string, 0, len(raw.IncorrectAnswers))
	for _, a := range raw.IncorrectAnswers {
		decoded, err := url.QueryUnescape(a)
		if err != nil {
			return nil, token, fmt.Errorf("failed to decode answer: %w", err)
		}
		incorrect = append(incorrect, decoded)
	}

	q := games.ShuffleIn(rng, prompt, correct, incorrect)
	return &q, token, nil
}

func (c *TriviaClient) fetch(ctx context.Context, token string) (*triviaResponse, error) {
	u := fmt.Sprintf("%s/api.php?amount=1&type=multiple&encode=url3986&token=%s", c.baseURL, url.QueryEscape(token))
	var resp triviaResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *TriviaClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("trivia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trivia API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode trivia response: %w", err)
	}
	return nil
}
