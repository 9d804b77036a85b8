package highlow

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/entities"
	"barkeep/domain/games"
	"barkeep/domain/services"
)

// HandleCommand handles /highlow.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	playerID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	channelID, err := common.ParseSnowflake(i.ChannelID)
	if err != nil {
		log.Errorf("Error parsing channel ID %s: %v", i.ChannelID, err)
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
	gameService := services.NewGameService(uow.UserRepository(), uow.EventBus())
	if err := gameService.ValidateWager(ctx, playerID, user.Username, wager); err != nil {
		uow.Rollback()
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	game := games.NewHighLow(f.rng, playerID, wager)
	state := &roundState{Game: game, PlayerName: user.Username, ChannelID: i.ChannelID}

	session, err := f.registry.Start(games.SessionKey{ChannelID: channelID, UserID: playerID}, state, sessionTimeout())
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎴 High or Low?",
		Description: fmt.Sprintf("The card shows **%s**. Will the next one be higher or lower?\nAces are high, equal ranks push.", game.First),
		Color:       common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Wager: %s chips · %d seconds to answer", common.FormatChips(wager), common.HighLowTimeoutSeconds),
		},
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Higher ⬆️", Style: discordgo.PrimaryButton, CustomID: "highlow_higher_" + session.ID},
				discordgo.Button{Label: "Lower ⬇️", Style: discordgo.SecondaryButton, CustomID: "highlow_lower_" + session.ID},
			},
		},
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		log.Errorf("Error responding to highlow command: %v", err)
		return
	}
	if msg, err := s.InteractionResponse(i.Interaction); err == nil {
		state.MessageID = msg.ID
	}
}

// HandleInteraction handles the higher/lower buttons.
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	rest := strings.TrimPrefix(customID, "highlow_")
	action, sessionID, ok := strings.Cut(rest, "_")
	if !ok {
		return
	}

	session := f.registry.GetByID(sessionID)
	if session == nil {
		common.RespondWithError(s, i, "That round is already over.")
		return
	}
	state := session.Game.(*roundState)

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		return
	}
	if userID != state.Game.PlayerID {
		common.RespondWithError(s, i, "This round isn't yours.")
		return
	}

	if !f.registry.Close(session) {
		return
	}

	guess := games.GuessHigher
	if action == "lower" {
		guess = games.GuessLower
	}
	outcome := state.Game.Resolve(guess)

	ctx := context.Background()
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	gameService := services.NewGameService(uow.UserRepository(), uow.EventBus())
	settled, err := gameService.SettleWager(ctx, "highlow", userID, user.Username, state.Game.Wager, outcome, false)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := resultEmbed(state, outcome, settled, userID)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error updating highlow message: %v", err)
	}
}

func resultEmbed(state *roundState, outcome entities.GameOutcome, settled *services.Settlement, userID int64) *discordgo.MessageEmbed {
	var verdict string
	var color int
	switch outcome {
	case entities.OutcomeWin:
		verdict = "You called it! 🎉"
		color = common.ColorSuccess
	case entities.OutcomeLoss:
		verdict = "Wrong call. 😔"
		color = common.ColorDanger
	default:
		verdict = "Same rank. Push."
		color = common.ColorWarning
	}

	description := fmt.Sprintf("**%s** → **%s**\n%s\n%s: **%s chips** · balance **%s**",
		state.Game.First, *state.Game.Second, verdict,
		common.Mention(userID), common.FormatNetChange(settled.NetChange), common.FormatChips(settled.NewBalance))
	for _, name := range settled.NewAchievements {
		description += fmt.Sprintf("\n🏅 Unlocked **%s**!", name)
	}

	return &discordgo.MessageEmbed{
		Title:       "🎴 High or Low — Result",
		Description: description,
		Color:       color,
	}
}

func expiredEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎴 High or Low",
		Description: "Round expired without a guess. No chips changed hands.",
		Color:       common.ColorDanger,
	}
}
