package trivia

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/config"
	"barkeep/domain/games"
	"barkeep/domain/services"
)

var answerLabels = []string{"🇦", "🇧", "🇨", "🇩"}

// HandleCommand handles /trivia.
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

	question, err := f.nextQuestion(ctx)
	if err != nil {
		log.Warnf("Trivia API unavailable, using local pool: %v", err)
		local := f.localQuestion()
		question = &local
	}

	state := &questionState{
		Question:   *question,
		PlayerID:   playerID,
		PlayerName: user.Username,
		ChannelID:  i.ChannelID,
	}
	session, err := f.registry.Start(games.SessionKey{ChannelID: channelID, UserID: playerID}, state, sessionTimeout())
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	embed := questionEmbed(state)
	var buttons []discordgo.MessageComponent
	for idx := range state.Question.Choices {
		buttons = append(buttons, discordgo.Button{
			Label:    answerLabels[idx],
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("trivia_%s_%d", session.ID, idx),
		})
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}},
		},
	})
	if err != nil {
		log.Errorf("Error responding to trivia command: %v", err)
		return
	}
	if msg, err := s.InteractionResponse(i.Interaction); err == nil {
		state.MessageID = msg.ID
	}
}

// HandleInteraction handles the answer buttons.
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	rest := strings.TrimPrefix(customID, "trivia_")
	sessionID, idxStr, ok := strings.Cut(rest, "_")
	if !ok {
		return
	}
	choice, err := strconv.Atoi(idxStr)
	if err != nil {
		return
	}

	session := f.registry.GetByID(sessionID)
	if session == nil {
		common.RespondWithError(s, i, "That question is already closed.")
		return
	}
	state := session.Game.(*questionState)

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		return
	}
	if userID != state.PlayerID {
		common.RespondWithError(s, i, "This question isn't yours. Start your own with /trivia.")
		return
	}
	if choice < 0 || choice >= len(state.Question.Choices) {
		return
	}

	if !f.registry.Close(session) {
		return
	}

	correct := choice == state.Question.CorrectIndex
	var embed *discordgo.MessageEmbed
	if correct {
		embed = f.rewardAndBuildEmbed(s, i, state, choice)
	} else {
		embed = wrongEmbed(state, choice)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error updating trivia message: %v", err)
	}
}

func (f *Feature) rewardAndBuildEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, state *questionState, choice int) *discordgo.MessageEmbed {
	ctx := context.Background()
	reward := config.Get().TriviaReward

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning trivia reward transaction: %v", err)
		return correctEmbed(state, choice, 0, 0)
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.UserRepository(), uow.EventBus())
	account, err := ledger.Credit(ctx, state.PlayerID, state.PlayerName, reward, "trivia")
	if err != nil {
		log.Errorf("Error crediting trivia reward for %d: %v", state.PlayerID, err)
		return correctEmbed(state, choice, 0, 0)
	}
	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing trivia reward: %v", err)
		return correctEmbed(state, choice, 0, 0)
	}
	return correctEmbed(state, choice, reward, account.Balance)
}

func questionEmbed(state *questionState) *discordgo.MessageEmbed {
	var choices []string
	for idx, c := range state.Question.Choices {
		choices = append(choices, fmt.Sprintf("%s %s", answerLabels[idx], c))
	}
	return &discordgo.MessageEmbed{
		Title:       "🧠 Trivia",
		Description: fmt.Sprintf("**%s**\n\n%s", state.Question.Prompt, strings.Join(choices, "\n")),
		Color:       common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s has %d seconds to answer", state.PlayerName, common.TriviaTimeoutSeconds),
		},
	}
}

func correctEmbed(state *questionState, choice int, reward, balance int64) *discordgo.MessageEmbed {
	description := fmt.Sprintf("✅ **Correct!** The answer was **%s**.", state.Question.Correct())
	if reward > 0 {
		description += fmt.Sprintf("\n%s earned **%s chips** · balance **%s**",
			common.Mention(state.PlayerID), common.FormatChips(reward), common.FormatChips(balance))
	}
	return &discordgo.MessageEmbed{
		Title:       "🧠 Trivia — Result",
		Description: description,
		Color:       common.ColorSuccess,
	}
}

func wrongEmbed(state *questionState, choice int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🧠 Trivia — Result",
		Description: fmt.Sprintf("❌ **%s** is not it. The answer was **%s**.",
			state.Question.Choices[choice], state.Question.Correct()),
		Color: common.ColorDanger,
	}
}

func timeoutEmbed(state *questionState) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🧠 Trivia",
		Description: fmt.Sprintf("⏰ Time's up! The answer was **%s**.",
			state.Question.Correct()),
		Color: common.ColorDanger,
	}
}
