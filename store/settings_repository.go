package store

import "context"

type settingsRepository struct {
	doc *Document
}

func (r *settingsRepository) TriviaToken(ctx context.Context) (string, error) {
	return r.doc.TriviaToken, nil
}

func (r *settingsRepository) SetTriviaToken(ctx context.Context, token string) error {
	r.doc.TriviaToken = token
	return nil
}
