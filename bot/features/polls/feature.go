package polls

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/interfaces"
	"barkeep/domain/services"
)

// Feature handles the /poll command group. Votes land on buttons under the
// poll message; a revote replaces the earlier choice.
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory

	// Open poll messages, so the auto-close timer can edit them.
	mu       sync.Mutex
	messages map[int64]pollMessage
}

type pollMessage struct {
	ChannelID string
	MessageID string
}

// NewFeature creates the polls feature.
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		messages:   make(map[int64]pollMessage),
	}
}

func pollDuration() time.Duration {
	return common.PollDurationSeconds * time.Second
}

func (f *Feature) trackMessage(pollID int64, channelID, messageID string) {
	f.mu.Lock()
	f.messages[pollID] = pollMessage{ChannelID: channelID, MessageID: messageID}
	f.mu.Unlock()

	time.AfterFunc(pollDuration(), func() {
		f.autoClose(pollID)
	})
}

func (f *Feature) takeMessage(pollID int64) (pollMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[pollID]
	delete(f.messages, pollID)
	return msg, ok
}

// autoClose finalizes a poll whose voting window elapsed. A poll already
// closed by hand is left alone.
func (f *Feature) autoClose(pollID int64) {
	ctx := context.Background()

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning poll auto-close transaction: %v", err)
		return
	}
	defer uow.Rollback()

	pollService := services.NewPollService(uow.PollRepository(), uow.EventBus())
	poll, err := pollService.Close(ctx, pollID, 0, true)
	if err != nil {
		// Already closed by its creator; nothing to do.
		return
	}
	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing poll auto-close: %v", err)
		return
	}

	msg, ok := f.takeMessage(pollID)
	if !ok {
		return
	}
	_, err = f.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    msg.ChannelID,
		ID:         msg.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{resultsEmbed(poll, true)},
		Components: &[]discordgo.MessageComponent{},
	})
	if err != nil {
		log.Errorf("Error editing closed poll message: %v", err)
	}
}
