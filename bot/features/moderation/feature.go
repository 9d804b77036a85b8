package moderation

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"barkeep/bot/common"
	"barkeep/domain/entities"
	"barkeep/domain/interfaces"
	"barkeep/domain/services"
)

// Feature handles the moderation command group: purge, auto-delete policies,
// the moderator allowlist and channel pins.
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
}

// NewFeature creates the moderation feature.
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{session: session, uowFactory: uowFactory}
}

// authorize checks the invoker against server permissions and the allowlist.
func (f *Feature) authorize(ctx context.Context, i *discordgo.InteractionCreate) error {
	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		return err
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	moderationService := services.NewModerationService(uow.ModerationRepository())
	ok, err := moderationService.Authorize(ctx, userID, common.HasManageMessages(i))
	if err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	if !ok {
		return entities.ErrUnauthorized
	}
	return nil
}
