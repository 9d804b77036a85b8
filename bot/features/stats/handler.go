package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/entities"
)

// HandleStats handles /stats, showing the invoker's (or a named user's) record.
func (f *Feature) HandleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	target := common.InteractionUser(i)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}
	targetID, err := common.ParseSnowflake(target.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	account, err := f.loadUser(ctx, targetID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if account == nil {
		respondEphemeral(s, i, fmt.Sprintf("%s hasn't played yet.", target.Username))
		return
	}

	total := account.Wins + account.Losses + account.Pushes
	winRate := 0.0
	if played := account.Wins + account.Losses; played > 0 {
		winRate = float64(account.Wins) / float64(played) * 100
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s", target.Username),
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Balance", Value: common.FormatChips(account.Balance) + " chips", Inline: true},
			{Name: "Hands", Value: fmt.Sprintf("%d", total), Inline: true},
			{Name: "Record", Value: fmt.Sprintf("%dW / %dL / %dP", account.Wins, account.Losses, account.Pushes), Inline: true},
			{Name: "Win rate", Value: fmt.Sprintf("%.1f%%", winRate), Inline: true},
			{Name: "Daily streak", Value: fmt.Sprintf("%d day(s)", account.StreakCount), Inline: true},
			{Name: "Achievements", Value: fmt.Sprintf("%d", len(account.Achievements)), Inline: true},
		},
	}
	respondEmbed(s, i, embed)
}

// HandleLeaderboard handles /leaderboard.
func (f *Feature) HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	by := "balance"
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "by" {
			by = opt.StringValue()
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	var leaders []*entities.User
	var err error
	if by == "wins" {
		leaders, err = uow.UserRepository().ListTopByWins(ctx, common.LeaderboardSize)
	} else {
		leaders, err = uow.UserRepository().ListTopByBalance(ctx, common.LeaderboardSize)
	}
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if len(leaders) == 0 {
		respondEphemeral(s, i, "Nobody on the board yet.")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var lines []string
	for rank, leader := range leaders {
		prefix := fmt.Sprintf("%d.", rank+1)
		if rank < len(medals) {
			prefix = medals[rank]
		}
		if by == "wins" {
			lines = append(lines, fmt.Sprintf("%s **%s** — %d wins", prefix, leader.Username, leader.Wins))
		} else {
			lines = append(lines, fmt.Sprintf("%s **%s** — %s chips", prefix, leader.Username, common.FormatChips(leader.Balance)))
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏆 Leaderboard — top %s", by),
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorGold,
	}
	respondEmbed(s, i, embed)
}

// HandleAchievements handles /achievements.
func (f *Feature) HandleAchievements(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	account, err := f.loadUser(ctx, userID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if account == nil || len(account.Achievements) == 0 {
		respondEphemeral(s, i, "No achievements yet. Win a hand to get started!")
		return
	}

	var lines []string
	for _, name := range account.Achievements {
		lines = append(lines, "🏅 "+name)
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏅 %s's Achievements", user.Username),
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorGold,
	}
	respondEmbed(s, i, embed)
}

// loadUser reads an account without creating one; nil means never played.
func (f *Feature) loadUser(ctx context.Context, discordID int64) (*entities.User, error) {
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	account, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	return account, uow.Commit()
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Errorf("Error responding to stats command: %v", err)
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to stats command: %v", err)
	}
}
