package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/entities"
	"barkeep/domain/services"
)

// HandleCommand handles the /remind command and its subcommands.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	switch options[0].Name {
	case "set":
		f.handleSet(s, i, options[0].Options)
	case "at":
		f.handleAt(s, i, options[0].Options)
	case "list":
		f.handleList(s, i)
	case "cancel":
		f.handleCancel(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

func (f *Feature) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
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

	var message, delayStr string
	var dm bool
	for _, opt := range opts {
		switch opt.Name {
		case "message":
			message = opt.StringValue()
		case "in":
			delayStr = opt.StringValue()
		case "dm":
			dm = opt.BoolValue()
		}
	}

	delay, err := parseDelay(delayStr)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	reminderService := services.NewReminderService(uow.ReminderRepository())
	reminder, err := reminderService.Schedule(ctx, userID, channelID, message, delay, dm)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	where := "here"
	if dm {
		where = "by DM"
	}
	respondEphemeral(s, i, fmt.Sprintf("⏰ Reminder **#%d** set for %s (%s).",
		reminder.ID, common.FormatDiscordTimestamp(reminder.DueAt, "f"), where))
}

func (f *Feature) handleAt(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
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

	var message, when string
	var offsetHours int64
	var dm bool
	for _, opt := range opts {
		switch opt.Name {
		case "message":
			message = opt.StringValue()
		case "when":
			when = opt.StringValue()
		case "utc_offset":
			offsetHours = opt.IntValue()
		case "dm":
			dm = opt.BoolValue()
		}
	}

	dueAt, err := parseWhen(when, offsetHours, time.Now())
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	reminderService := services.NewReminderService(uow.ReminderRepository())
	reminder, err := reminderService.Schedule(ctx, userID, channelID, message, time.Until(dueAt), dm)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	where := "here"
	if dm {
		where = "by DM"
	}
	respondEphemeral(s, i, fmt.Sprintf("⏰ Reminder **#%d** set for %s (%s).",
		reminder.ID, common.FormatDiscordTimestamp(reminder.DueAt, "f"), where))
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	reminderService := services.NewReminderService(uow.ReminderRepository())
	list, err := reminderService.List(ctx, userID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if len(list) == 0 {
		respondEphemeral(s, i, "You have no pending reminders.")
		return
	}
	var lines []string
	for _, reminder := range list {
		lines = append(lines, fmt.Sprintf("**#%d** %s — %s",
			reminder.ID, common.FormatDiscordTimestamp(reminder.DueAt, "R"), reminder.Message))
	}
	respondEphemeral(s, i, strings.Join(lines, "\n"))
}

func (f *Feature) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var id int64
	for _, opt := range opts {
		if opt.Name == "id" {
			id = opt.IntValue()
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	reminderService := services.NewReminderService(uow.ReminderRepository())
	if err := reminderService.Cancel(ctx, id, userID, common.HasManageMessages(i)); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("🗑️ Reminder **#%d** cancelled.", id))
}

// parseDelay accepts Go duration syntax plus day suffixes like "2d" or "1d12h".
func parseDelay(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, entities.NewValidationError("tell me when, e.g. 30m, 2h or 1d")
	}
	if idx := strings.Index(s, "d"); idx > 0 {
		days, err := time.ParseDuration(s[:idx] + "h")
		if err == nil {
			rest := time.Duration(0)
			if idx+1 < len(s) {
				rest, err = time.ParseDuration(s[idx+1:])
				if err != nil {
					return 0, entities.NewValidationError("couldn't read %q, try 30m, 2h or 1d", s)
				}
			}
			return days*24 + rest, nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, entities.NewValidationError("couldn't read %q, try 30m, 2h or 1d", s)
	}
	return d, nil
}

// parseWhen reads an absolute time, either "2006-01-02 15:04" or a bare
// "15:04" meaning the next occurrence of that wall-clock time. The offset is
// the user's UTC offset in hours; times are interpreted in that zone.
func parseWhen(s string, offsetHours int64, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, entities.NewValidationError("tell me when, e.g. 18:30 or 2026-09-01 18:30")
	}
	if offsetHours < -12 || offsetHours > 14 {
		return time.Time{}, entities.NewValidationError("utc_offset must be between -12 and 14")
	}
	zone := time.FixedZone("user", int(offsetHours)*3600)

	if at, err := time.ParseInLocation("2006-01-02 15:04", s, zone); err == nil {
		return at, nil
	}
	at, err := time.ParseInLocation("15:04", s, zone)
	if err != nil {
		return time.Time{}, entities.NewValidationError("couldn't read %q, try 18:30 or 2026-09-01 18:30", s)
	}

	local := now.In(zone)
	at = time.Date(local.Year(), local.Month(), local.Day(), at.Hour(), at.Minute(), 0, 0, zone)
	if !at.After(now) {
		at = at.Add(24 * time.Hour)
	}
	return at, nil
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
		log.Errorf("Error responding to remind command: %v", err)
	}
}
