package trivia

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/games"
	"barkeep/domain/interfaces"
	"barkeep/infrastructure"
)

// Feature handles the /trivia command. Questions come from the trivia API
// with the built-in pool as fallback, so the command works offline.
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	client     *infrastructure.TriviaClient
	rng        games.Rand
	registry   *games.Registry
}

// NewFeature creates the trivia feature.
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory, client *infrastructure.TriviaClient, rng games.Rand) *Feature {
	f := &Feature{
		session:    session,
		uowFactory: uowFactory,
		client:     client,
		rng:        rng,
	}
	f.registry = games.NewRegistry(f.onExpire)
	return f
}

func sessionTimeout() time.Duration {
	return common.TriviaTimeoutSeconds * time.Second
}

// questionState is the registry payload for one open question.
type questionState struct {
	Question   games.TriviaQuestion
	PlayerID   int64
	PlayerName string
	ChannelID  string
	MessageID  string
}

// onExpire reveals the answer when time runs out.
func (f *Feature) onExpire(s *games.Session) {
	state := s.Game.(*questionState)

	_, err := f.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    state.ChannelID,
		ID:         state.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{timeoutEmbed(state)},
		Components: &[]discordgo.MessageComponent{},
	})
	if err != nil {
		log.Errorf("Error editing expired trivia message: %v", err)
	}
}

// nextQuestion fetches a question from the API, persisting the session token
// across calls. The store lock is never held during the HTTP round trip.
func (f *Feature) nextQuestion(ctx context.Context) (*games.TriviaQuestion, error) {
	token, err := f.loadToken(ctx)
	if err != nil {
		return nil, err
	}

	question, newToken, err := f.client.FetchQuestion(ctx, token, f.rng)
	if err != nil {
		return nil, err
	}
	if newToken != token {
		if err := f.saveToken(ctx, newToken); err != nil {
			log.Errorf("Error saving trivia token: %v", err)
		}
	}
	return question, nil
}

func (f *Feature) loadToken(ctx context.Context) (string, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer uow.Rollback()

	token, err := uow.SettingsRepository().TriviaToken(ctx)
	if err != nil {
		return "", err
	}
	return token, uow.Commit()
}

func (f *Feature) saveToken(ctx context.Context, token string) error {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SettingsRepository().SetTriviaToken(ctx, token); err != nil {
		return err
	}
	return uow.Commit()
}

// localQuestion serves from the built-in pool.
func (f *Feature) localQuestion() games.TriviaQuestion {
	pool := games.LocalQuestions()
	return pool[f.rng.Intn(len(pool))]
}
