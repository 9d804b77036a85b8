package slots

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/games"
	"barkeep/domain/services"
)

// HandleCommand handles /slots.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	playerID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var wager int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "wager" {
			wager = opt.IntValue()
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	gameService := services.NewGameService(uow.UserRepository(), uow.EventBus())
	if err := gameService.ValidateWager(ctx, playerID, user.Username, wager); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	spin := games.Spin(f.rng)
	net := -wager
	if spin.Win() {
		net = wager*spin.Multiplier - wager
	}

	settled, err := gameService.SettleNet(ctx, "slots", playerID, user.Username, wager, net)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := buildSpinEmbed(user.Username, wager, spin, settled, playerID)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Errorf("Error responding to slots command: %v", err)
	}
}

func buildSpinEmbed(username string, wager int64, spin games.SpinResult, settled *services.Settlement, playerID int64) *discordgo.MessageEmbed {
	reels := strings.Join(spin.Reels, " │ ")

	var verdict string
	color := common.ColorDanger
	switch {
	case spin.Label == "Jackpot":
		verdict = fmt.Sprintf("💰 **JACKPOT!** %dx payout!", spin.Multiplier)
		color = common.ColorGold
	case spin.Win():
		verdict = fmt.Sprintf("**%s!** %dx payout.", spin.Label, spin.Multiplier)
		color = common.ColorSuccess
	default:
		verdict = "No match this time."
	}
	if spin.Nudged {
		verdict += "\n🍀 A lucky nudge bumped the reels!"
	}

	description := fmt.Sprintf("**[ %s ]**\n%s\n%s: **%s chips** · balance **%s**",
		reels, verdict,
		common.Mention(playerID), common.FormatNetChange(settled.NetChange), common.FormatChips(settled.NewBalance))
	for _, name := range settled.NewAchievements {
		description += fmt.Sprintf("\n🏅 Unlocked **%s**!", name)
	}

	return &discordgo.MessageEmbed{
		Title:       "🎰 Slots",
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s wagered %s chips", username, common.FormatChips(wager)),
		},
	}
}
