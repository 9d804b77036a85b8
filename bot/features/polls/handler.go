package polls

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/entities"
	"barkeep/domain/services"
)

// HandleCommand handles the /poll command and its subcommands.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "create":
		f.handleCreate(s, i, options[0].Options)
	case "results":
		f.handleResults(s, i, options[0].Options)
	case "close":
		f.handleClose(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	creatorID, err := common.ParseSnowflake(user.ID)
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

	var question string
	var pollOptions []string
	for _, opt := range opts {
		switch opt.Name {
		case "question":
			question = opt.StringValue()
		case "option1", "option2", "option3", "option4", "option5":
			if v := strings.TrimSpace(opt.StringValue()); v != "" {
				pollOptions = append(pollOptions, v)
			}
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	pollService := services.NewPollService(uow.PollRepository(), uow.EventBus())
	poll, err := pollService.CreatePoll(ctx, channelID, creatorID, question, pollOptions)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var buttons []discordgo.MessageComponent
	for idx, option := range poll.Options {
		buttons = append(buttons, discordgo.Button{
			Label:    option,
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("poll_%d_%d", poll.ID, idx),
		})
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{openEmbed(poll)},
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}},
		},
	})
	if err != nil {
		log.Errorf("Error responding to poll create: %v", err)
		return
	}
	if msg, err := s.InteractionResponse(i.Interaction); err == nil {
		f.trackMessage(poll.ID, i.ChannelID, msg.ID)
	}
}

// HandleInteraction handles the vote buttons.
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	rest := strings.TrimPrefix(customID, "poll_")
	idStr, optStr, ok := strings.Cut(rest, "_")
	if !ok {
		return
	}
	pollID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return
	}
	option, err := strconv.Atoi(optStr)
	if err != nil {
		return
	}

	user := common.InteractionUser(i)
	voterID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		return
	}

	ctx := context.Background()
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	pollService := services.NewPollService(uow.PollRepository(), uow.EventBus())
	poll, overrode, err := pollService.Vote(ctx, pollID, voterID, option)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("🗳️ Vote recorded for **%s**.", poll.Options[option])
	if overrode {
		message = fmt.Sprintf("🗳️ Changed your vote to **%s**.", poll.Options[option])
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to poll vote: %v", err)
	}
}

func (f *Feature) handleResults(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var pollID int64
	for _, opt := range opts {
		if opt.Name == "id" {
			pollID = opt.IntValue()
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	pollService := services.NewPollService(uow.PollRepository(), uow.EventBus())
	poll, _, err := pollService.Results(ctx, pollID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{resultsEmbed(poll, poll.Closed)},
		},
	})
	if err != nil {
		log.Errorf("Error responding to poll results: %v", err)
	}
}

func (f *Feature) handleClose(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	requesterID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var pollID int64
	for _, opt := range opts {
		if opt.Name == "id" {
			pollID = opt.IntValue()
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	pollService := services.NewPollService(uow.PollRepository(), uow.EventBus())
	poll, err := pollService.Close(ctx, pollID, requesterID, common.HasManageMessages(i))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	// Strip the vote buttons from the original message if we still track it.
	if msg, ok := f.takeMessage(poll.ID); ok {
		_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    msg.ChannelID,
			ID:         msg.MessageID,
			Embeds:     &[]*discordgo.MessageEmbed{resultsEmbed(poll, true)},
			Components: &[]discordgo.MessageComponent{},
		})
		if err != nil {
			log.Errorf("Error editing closed poll message: %v", err)
		}
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{resultsEmbed(poll, true)},
		},
	})
	if err != nil {
		log.Errorf("Error responding to poll close: %v", err)
	}
}

func openEmbed(poll *entities.Poll) *discordgo.MessageEmbed {
	var lines []string
	for idx, option := range poll.Options {
		lines = append(lines, fmt.Sprintf("%d. %s", idx+1, option))
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🗳️ Poll #%d: %s", poll.ID, poll.Question),
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Vote with the buttons · closes %s", common.FormatDuration(pollDuration())),
		},
	}
}

func resultsEmbed(poll *entities.Poll, closed bool) *discordgo.MessageEmbed {
	tally := poll.Tally()
	total := poll.TotalVotes()

	var lines []string
	for idx, option := range poll.Options {
		lines = append(lines, fmt.Sprintf("%s **%s** — %d vote(s)",
			common.ProgressBar(tally[idx], total, 10), option, tally[idx]))
	}

	title := fmt.Sprintf("🗳️ Poll #%d: %s", poll.ID, poll.Question)
	if closed {
		title += " (closed)"
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d vote(s) total", total),
		},
	}
}
