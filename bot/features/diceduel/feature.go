package diceduel

import (
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/games"
	"barkeep/domain/interfaces"
)

// Feature handles the /diceduel command: a 2d6 challenge between two players
// with ties rerolled.
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	rng        games.Rand
	registry   *games.Registry
}

// NewFeature creates the dice duel feature with its own session registry.
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory, rng games.Rand) *Feature {
	f := &Feature{
		session:    session,
		uowFactory: uowFactory,
		rng:        rng,
	}
	f.registry = games.NewRegistry(f.onExpire)
	return f
}

func sessionTimeout() time.Duration {
	return common.DiceDuelTimeoutSeconds * time.Second
}

// challengeState is the registry payload for a pending duel.
type challengeState struct {
	ChallengerID   int64
	ChallengerName string
	OpponentID     int64
	OpponentName   string
	Wager          int64
	ChannelID      string
	MessageID      string
}

// onExpire voids a challenge nobody answered.
func (f *Feature) onExpire(s *games.Session) {
	state := s.Game.(*challengeState)
	log.WithField("session_id", s.ID).Info("Dice duel challenge expired unanswered")

	_, err := f.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    state.ChannelID,
		ID:         state.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{expiredEmbed()},
		Components: &[]discordgo.MessageComponent{},
	})
	if err != nil {
		log.Errorf("Error editing expired dice duel message: %v", err)
	}
}
