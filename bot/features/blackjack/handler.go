package blackjack

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

// HandleCommand handles /blackjack, dealing either a solo hand or posting a
// PvP challenge.
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
	var opponent *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "wager":
			wager = opt.IntValue()
		case "opponent":
			opponent = opt.UserValue(s)
		}
	}

	if err := f.validateWager(ctx, playerID, user.Username, wager); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if opponent != nil {
		f.startChallenge(ctx, s, i, playerID, channelID, user, opponent, wager)
		return
	}
	f.startSolo(ctx, s, i, playerID, channelID, user.Username, wager)
}

func (f *Feature) validateWager(ctx context.Context, discordID int64, username string, wager int64) error {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	gameService := services.NewGameService(uow.UserRepository(), uow.EventBus())
	if err := gameService.ValidateWager(ctx, discordID, username, wager); err != nil {
		return err
	}
	return uow.Commit()
}

func (f *Feature) startSolo(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, playerID, channelID int64, username string, wager int64) {
	game := games.NewBlackjack(f.rng, playerID, wager)
	state := newSoloTable(game, username, i.ChannelID)

	// A dealt twenty-one resolves on the spot; no session needed.
	if games.HandValue(game.Player) >= 21 {
		if err := game.Apply(games.InputStand); err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		embed := f.settle(state, false)
		respondEmbed(s, i, embed, nil)
		return
	}

	session, err := f.registry.Start(games.SessionKey{ChannelID: channelID, UserID: playerID}, state, sessionTimeout())
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	respondEmbed(s, i, buildTableEmbed(state), playButtons(session.ID))
	f.rememberMessage(s, i, state)
}

func (f *Feature) startChallenge(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, playerID, channelID int64, user, opponent *discordgo.User, wager int64) {
	if opponent.Bot {
		common.RespondWithError(s, i, "You can't challenge a bot.")
		return
	}
	opponentID, err := common.ParseSnowflake(opponent.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", opponent.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	if opponentID == playerID {
		common.RespondWithError(s, i, "You can't challenge yourself.")
		return
	}
	if err := f.validateWager(ctx, opponentID, opponent.Username, wager); err != nil {
		common.RespondWithError(s, i, "Your opponent can't cover that wager.")
		return
	}

	game := games.NewPvPBlackjack(f.rng, playerID, opponentID, wager)
	state := newChallengeTable(game, user.Username, opponent.Username, i.ChannelID)

	session, err := f.registry.Start(games.SessionKey{ChannelID: channelID, UserID: playerID}, state, sessionTimeout())
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	respondEmbed(s, i, buildChallengeEmbed(state, playerID, opponentID), challengeButtons(session.ID))
	f.rememberMessage(s, i, state)
}

// HandleInteraction handles the hit/stand and accept/decline buttons.
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	rest := strings.TrimPrefix(customID, "blackjack_")
	action, sessionID, ok := strings.Cut(rest, "_")
	if !ok {
		return
	}

	session := f.registry.GetByID(sessionID)
	if session == nil {
		common.RespondWithError(s, i, "That table is already closed.")
		return
	}
	state := session.Game.(*tableState)

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		return
	}

	switch action {
	case "accept", "decline":
		f.handleChallengeAnswer(s, i, session, state, userID, action)
	case "hit", "stand":
		f.handlePlay(s, i, session, state, userID, action)
	}
}

func (f *Feature) handleChallengeAnswer(s *discordgo.Session, i *discordgo.InteractionCreate, session *games.Session, state *tableState, userID int64, action string) {
	if state.accepted() || !state.Game.PvP() {
		return
	}
	if userID != state.Game.OpponentID {
		common.RespondWithError(s, i, "This challenge isn't for you.")
		return
	}

	if action == "decline" {
		if f.registry.Close(session) {
			updateEmbed(s, i, challengeDeclinedEmbed(), []discordgo.MessageComponent{})
		}
		return
	}

	state.accept()
	f.registry.Touch(session, sessionTimeout())
	updateEmbed(s, i, buildTableEmbed(state), playButtons(session.ID))
}

func (f *Feature) handlePlay(s *discordgo.Session, i *discordgo.InteractionCreate, session *games.Session, state *tableState, userID int64, action string) {
	if !state.accepted() {
		common.RespondWithError(s, i, "The challenge hasn't been accepted yet.")
		return
	}

	input := games.InputStand
	if action == "hit" {
		input = games.InputHit
	}
	resolved, err := state.applyInput(userID, input)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if resolved {
		if !f.registry.Close(session) {
			// Lost the race against expiry; the timeout path settles.
			return
		}
		embed := f.settle(state, false)
		updateEmbed(s, i, embed, []discordgo.MessageComponent{})
		return
	}

	f.registry.Touch(session, sessionTimeout())
	updateEmbed(s, i, buildTableEmbed(state), playButtons(session.ID))
}

// settle pays out a resolved table and renders the final embed.
func (f *Feature) settle(state *tableState, timedOut bool) *discordgo.MessageEmbed {
	ctx := context.Background()
	g := state.Game
	state.mu.Lock()
	result := g.Result()
	g.Close()
	state.mu.Unlock()

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning settlement transaction: %v", err)
		return buildResultEmbed(state, result.Summary, nil, timedOut)
	}
	defer uow.Rollback()

	gameService := services.NewGameService(uow.UserRepository(), uow.EventBus())

	var lines []string
	playerSettled, err := gameService.SettleWager(ctx, "blackjack", g.PlayerID, state.PlayerName, state.Wager, result.PlayerOutcome, games.IsNatural(g.Player))
	if err != nil {
		log.Errorf("Error settling blackjack for player %d: %v", g.PlayerID, err)
		return buildResultEmbed(state, result.Summary, nil, timedOut)
	}
	lines = append(lines, settlementLine(g.PlayerID, playerSettled))

	if g.PvP() {
		opponentSettled, err := gameService.SettleWager(ctx, "blackjack", g.OpponentID, state.OpponentName, state.Wager, result.OpponentOutcome, games.IsNatural(g.Opponent))
		if err != nil {
			log.Errorf("Error settling blackjack for opponent %d: %v", g.OpponentID, err)
			return buildResultEmbed(state, result.Summary, lines, timedOut)
		}
		lines = append(lines, settlementLine(g.OpponentID, opponentSettled))
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing blackjack settlement: %v", err)
	}
	return buildResultEmbed(state, result.Summary, lines, timedOut)
}

func settlementLine(userID int64, settled *services.Settlement) string {
	line := fmt.Sprintf("%s: **%s chips** · balance **%s**",
		common.Mention(userID), common.FormatNetChange(settled.NetChange), common.FormatChips(settled.NewBalance))
	for _, name := range settled.NewAchievements {
		line += fmt.Sprintf("\n🏅 %s unlocked **%s**!", common.Mention(userID), name)
	}
	return line
}

// settleAndRender settles from the expiry path, where there is no
// interaction to respond to and the original message must be edited.
func (f *Feature) settleAndRender(state *tableState, timedOut bool) {
	if state.Game.State() != games.StateResolved {
		return
	}
	embed := f.settle(state, timedOut)
	f.editMessage(state, embed, []discordgo.MessageComponent{})
}

func (f *Feature) editMessage(state *tableState, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	if state.MessageID == "" {
		return
	}
	_, err := f.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    state.ChannelID,
		ID:         state.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		log.Errorf("Error editing blackjack message: %v", err)
	}
}

// rememberMessage records the response message so the expiry path can edit it.
func (f *Feature) rememberMessage(s *discordgo.Session, i *discordgo.InteractionCreate, state *tableState) {
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.Errorf("Error getting interaction response: %v", err)
		return
	}
	state.MessageID = msg.ID
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		log.Errorf("Error responding to blackjack command: %v", err)
	}
}

func updateEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		log.Errorf("Error updating blackjack message: %v", err)
	}
}
