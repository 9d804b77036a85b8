package blackjack

import (
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/games"
	"barkeep/domain/interfaces"
)

// Feature handles the /blackjack command, both solo against the dealer and
// player-versus-player challenges.
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	rng        games.Rand
	registry   *games.Registry
}

// NewFeature creates the blackjack feature with its own session registry.
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
	return common.BlackjackTimeoutSeconds * time.Second
}

// onExpire runs when a table went quiet past the timeout. An unanswered
// challenge is voided; a live hand is finished by standing the absent player.
func (f *Feature) onExpire(s *games.Session) {
	state := s.Game.(*tableState)

	if !state.accepted() && state.Game.PvP() {
		log.WithField("session_id", s.ID).Info("Blackjack challenge expired unanswered")
		f.editMessage(state, challengeExpiredEmbed(state), nil)
		return
	}

	if !state.finishByTimeout() {
		log.Errorf("Error timing out blackjack session %s", s.ID)
		return
	}
	f.settleAndRender(state, true)
}
