package diceduel

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

// HandleCommand handles /diceduel.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	challengerID, err := common.ParseSnowflake(user.ID)
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
	var opponent *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "wager":
			wager = opt.IntValue()
		case "opponent":
			opponent = opt.UserValue(s)
		}
	}
	if opponent == nil || opponent.Bot {
		common.RespondWithError(s, i, "Pick another player to duel.")
		return
	}
	opponentID, err := common.ParseSnowflake(opponent.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", opponent.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	if opponentID == challengerID {
		common.RespondWithError(s, i, "You can't duel yourself.")
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	gameService := services.NewGameService(uow.UserRepository(), uow.EventBus())
	if err := gameService.ValidateWager(ctx, challengerID, user.Username, wager); err != nil {
		uow.Rollback()
		common.HandleError(s, i, err, false)
		return
	}
	if err := gameService.ValidateWager(ctx, opponentID, opponent.Username, wager); err != nil {
		uow.Rollback()
		common.RespondWithError(s, i, "Your opponent can't cover that wager.")
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	state := &challengeState{
		ChallengerID:   challengerID,
		ChallengerName: user.Username,
		OpponentID:     opponentID,
		OpponentName:   opponent.Username,
		Wager:          wager,
		ChannelID:      i.ChannelID,
	}
	session, err := f.registry.Start(games.SessionKey{ChannelID: channelID, UserID: challengerID}, state, sessionTimeout())
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎲 Dice Duel",
		Description: fmt.Sprintf("%s challenges %s to a dice duel for **%s chips**!\nBoth roll 2d6, highest total wins. Ties reroll.",
			common.Mention(challengerID), common.Mention(opponentID), common.FormatChips(wager)),
		Color: common.ColorWarning,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Expires in %d seconds", common.DiceDuelTimeoutSeconds),
		},
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Roll! 🎲", Style: discordgo.SuccessButton, CustomID: "diceduel_accept_" + session.ID},
				discordgo.Button{Label: "Decline", Style: discordgo.DangerButton, CustomID: "diceduel_decline_" + session.ID},
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
		log.Errorf("Error responding to diceduel command: %v", err)
		return
	}
	if msg, err := s.InteractionResponse(i.Interaction); err == nil {
		state.MessageID = msg.ID
	}
}

// HandleInteraction handles the accept/decline buttons.
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	rest := strings.TrimPrefix(customID, "diceduel_")
	action, sessionID, ok := strings.Cut(rest, "_")
	if !ok {
		return
	}

	session := f.registry.GetByID(sessionID)
	if session == nil {
		common.RespondWithError(s, i, "That duel is already over.")
		return
	}
	state := session.Game.(*challengeState)

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		return
	}
	if userID != state.OpponentID {
		common.RespondWithError(s, i, "This challenge isn't for you.")
		return
	}

	if !f.registry.Close(session) {
		return
	}

	if action == "decline" {
		update(s, i, declinedEmbed())
		return
	}

	f.runDuel(s, i, state)
}

func (f *Feature) runDuel(s *discordgo.Session, i *discordgo.InteractionCreate, state *challengeState) {
	ctx := context.Background()
	duel := games.RollDuel(f.rng)

	challengerOutcome := entities.OutcomePush
	opponentOutcome := entities.OutcomePush
	switch {
	case duel.ChallengerWins():
		challengerOutcome = entities.OutcomeWin
		opponentOutcome = entities.OutcomeLoss
	case duel.OpponentWins():
		challengerOutcome = entities.OutcomeLoss
		opponentOutcome = entities.OutcomeWin
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	gameService := services.NewGameService(uow.UserRepository(), uow.EventBus())
	challengerSettled, err := gameService.SettleWager(ctx, "diceduel", state.ChallengerID, state.ChallengerName, state.Wager, challengerOutcome, false)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	opponentSettled, err := gameService.SettleWager(ctx, "diceduel", state.OpponentID, state.OpponentName, state.Wager, opponentOutcome, false)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	update(s, i, resultEmbed(state, duel, challengerSettled, opponentSettled))
}

func resultEmbed(state *challengeState, duel games.DuelResult, challengerSettled, opponentSettled *services.Settlement) *discordgo.MessageEmbed {
	var rounds []string
	for n, round := range duel.Rounds {
		line := fmt.Sprintf("Round %d: %s rolled **%d+%d=%d** · %s rolled **%d+%d=%d**",
			n+1,
			state.ChallengerName, round.ChallengerDice[0], round.ChallengerDice[1], round.ChallengerSum(),
			state.OpponentName, round.OpponentDice[0], round.OpponentDice[1], round.OpponentSum())
		rounds = append(rounds, line)
	}

	var verdict string
	switch {
	case duel.ChallengerWins():
		verdict = fmt.Sprintf("🏆 %s wins!", common.Mention(state.ChallengerID))
	case duel.OpponentWins():
		verdict = fmt.Sprintf("🏆 %s wins!", common.Mention(state.OpponentID))
	default:
		verdict = "Still tied after the last reroll. Push."
	}

	description := strings.Join(rounds, "\n") + "\n\n" + verdict
	description += fmt.Sprintf("\n%s: **%s chips** · %s: **%s chips**",
		common.Mention(state.ChallengerID), common.FormatNetChange(challengerSettled.NetChange),
		common.Mention(state.OpponentID), common.FormatNetChange(opponentSettled.NetChange))
	for _, name := range challengerSettled.NewAchievements {
		description += fmt.Sprintf("\n🏅 %s unlocked **%s**!", common.Mention(state.ChallengerID), name)
	}
	for _, name := range opponentSettled.NewAchievements {
		description += fmt.Sprintf("\n🏅 %s unlocked **%s**!", common.Mention(state.OpponentID), name)
	}

	return &discordgo.MessageEmbed{
		Title:       "🎲 Dice Duel — Result",
		Description: description,
		Color:       common.ColorInfo,
	}
}

func declinedEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎲 Dice Duel",
		Description: "Challenge declined. No chips changed hands.",
		Color:       common.ColorDanger,
	}
}

func expiredEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎲 Dice Duel",
		Description: "Challenge expired without an answer. No chips changed hands.",
		Color:       common.ColorDanger,
	}
}

func update(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error updating dice duel message: %v", err)
	}
}
