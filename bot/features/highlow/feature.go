package highlow

import (
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/games"
	"barkeep/domain/interfaces"
)

// Feature handles the /highlow command: one card up, guess the next.
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	rng        games.Rand
	registry   *games.Registry
}

// NewFeature creates the highlow feature with its own session registry.
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
	return common.HighLowTimeoutSeconds * time.Second
}

// onExpire voids a round nobody answered; the wager was never taken.
func (f *Feature) onExpire(s *games.Session) {
	state := s.Game.(*roundState)
	log.WithField("session_id", s.ID).Info("High/low round expired unanswered")

	_, err := f.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    state.ChannelID,
		ID:         state.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{expiredEmbed()},
		Components: &[]discordgo.MessageComponent{},
	})
	if err != nil {
		log.Errorf("Error editing expired high/low message: %v", err)
	}
}

// roundState is the registry payload for one open round.
type roundState struct {
	Game       *games.HighLow
	PlayerName string
	ChannelID  string
	MessageID  string
}
