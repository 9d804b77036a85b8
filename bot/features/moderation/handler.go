package moderation

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

// HandlePurge handles /purge.
func (f *Feature) HandlePurge(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	if err := f.authorize(ctx, i); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var count int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "count" {
			count = opt.IntValue()
		}
	}

	if count < 1 || count > entities.MaxPurgeCount {
		common.RespondWithError(s, i, fmt.Sprintf("Count must be between 1 and %d.", entities.MaxPurgeCount))
		return
	}

	// Ack first; deleting can take a while on big batches.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		log.Errorf("Error deferring purge response: %v", err)
		return
	}

	deleted, skipped, err := f.purgeMessages(s, i.ChannelID, int(count))
	if err != nil {
		log.Errorf("Error purging messages in %s: %v", i.ChannelID, err)
		common.FollowUpWithError(s, i, "Purge failed partway. Some messages may remain.")
		return
	}

	summary := fmt.Sprintf("🧹 Deleted **%d** message(s).", deleted)
	if skipped > 0 {
		summary += fmt.Sprintf(" Skipped **%d** older than 14 days (Discord won't bulk-delete those).", skipped)
	}
	_, err = s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: summary,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending purge summary: %v", err)
	}
}

// splitPurgeBatch separates messages young enough for bulk deletion from
// those past the cutoff, which purge skips because the bulk endpoint
// silently ignores them.
func splitPurgeBatch(messages []*discordgo.Message, cutoff time.Time) (batch []string, skipped int) {
	for _, msg := range messages {
		if msg.Timestamp.Before(cutoff) {
			skipped++
			continue
		}
		batch = append(batch, msg.ID)
	}
	return batch, skipped
}

// purgeMessages deletes up to count recent messages, batching young ones
// through the bulk endpoint and skipping anything past the 14-day boundary.
func (f *Feature) purgeMessages(s *discordgo.Session, channelID string, count int) (deleted, skipped int, err error) {
	cutoff := time.Now().Add(-entities.BulkDeleteMaxAge)
	before := ""

	for deleted+skipped < count {
		limit := count - deleted - skipped
		if limit > 100 {
			limit = 100
		}
		messages, err := s.ChannelMessages(channelID, limit, before, "", "")
		if err != nil {
			return deleted, skipped, err
		}
		if len(messages) == 0 {
			break
		}
		before = messages[len(messages)-1].ID

		batch, pastBoundary := splitPurgeBatch(messages, cutoff)
		skipped += pastBoundary
		if len(batch) == 1 {
			if err := s.ChannelMessageDelete(channelID, batch[0]); err != nil {
				return deleted, skipped, err
			}
			deleted++
		} else if len(batch) > 1 {
			if err := s.ChannelMessagesBulkDelete(channelID, batch); err != nil {
				return deleted, skipped, err
			}
			deleted += len(batch)
		}
	}
	return deleted, skipped, nil
}

// HandleAutoDelete handles the /autodelete command and its subcommands.
func (f *Feature) HandleAutoDelete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	if err := f.authorize(ctx, i); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	channelID, err := common.ParseSnowflake(i.ChannelID)
	if err != nil {
		log.Errorf("Error parsing channel ID %s: %v", i.ChannelID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	moderationService := services.NewModerationService(uow.ModerationRepository())

	var message string
	switch options[0].Name {
	case "set":
		var minutes int64
		for _, opt := range options[0].Options {
			if opt.Name == "minutes" {
				minutes = opt.IntValue()
			}
		}
		interval := time.Duration(minutes) * time.Minute
		if err := moderationService.SetAutoDelete(ctx, channelID, interval); err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		message = fmt.Sprintf("🧹 Messages in this channel now auto-delete after **%s**.", common.FormatDuration(interval))

	case "off":
		if err := moderationService.DisableAutoDelete(ctx, channelID); err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		message = "🧹 Auto-delete disabled for this channel."

	case "list":
		policies, err := moderationService.AutoDeletePolicies(ctx)
		if err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		if len(policies) == 0 {
			message = "No channels have auto-delete configured."
		} else {
			var lines []string
			for _, policy := range policies {
				lines = append(lines, fmt.Sprintf("<#%d> — every %s", policy.ChannelID, common.FormatDuration(policy.Interval)))
			}
			message = strings.Join(lines, "\n")
		}

	default:
		common.RespondWithError(s, i, "Unknown subcommand")
		return
	}

	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	respondEphemeral(s, i, message)
}

// HandleModAccess handles the /modaccess command and its subcommands.
func (f *Feature) HandleModAccess(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	// Only real permission holders manage the allowlist itself.
	if !common.HasManageMessages(i) {
		common.HandleError(s, i, entities.ErrUnauthorized, false)
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	moderationService := services.NewModerationService(uow.ModerationRepository())

	var message string
	switch options[0].Name {
	case "allow", "revoke":
		var target *discordgo.User
		for _, opt := range options[0].Options {
			if opt.Name == "user" {
				target = opt.UserValue(s)
			}
		}
		if target == nil {
			common.RespondWithError(s, i, "Pick a user.")
			return
		}
		targetID, err := common.ParseSnowflake(target.ID)
		if err != nil {
			log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
			common.RespondWithError(s, i, "Unable to process request. Please try again.")
			return
		}
		if options[0].Name == "allow" {
			added, err := moderationService.Allow(ctx, targetID)
			if err != nil {
				common.HandleError(s, i, err, false)
				return
			}
			if added {
				message = fmt.Sprintf("✅ %s can now use moderation commands.", common.Mention(targetID))
			} else {
				message = fmt.Sprintf("%s is already on the list.", common.Mention(targetID))
			}
		} else {
			if err := moderationService.Disallow(ctx, targetID); err != nil {
				common.HandleError(s, i, err, false)
				return
			}
			message = fmt.Sprintf("✅ %s removed from the moderation list.", common.Mention(targetID))
		}

	case "list":
		allowlist, err := moderationService.Allowlist(ctx)
		if err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		if len(allowlist) == 0 {
			message = "The moderation allowlist is empty."
		} else {
			var mentions []string
			for _, userID := range allowlist {
				mentions = append(mentions, common.Mention(userID))
			}
			message = strings.Join(mentions, ", ")
		}

	default:
		common.RespondWithError(s, i, "Unknown subcommand")
		return
	}

	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	respondEphemeral(s, i, message)
}

// HandlePin handles the /pin command and its subcommands.
func (f *Feature) HandlePin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	channelID, err := common.ParseSnowflake(i.ChannelID)
	if err != nil {
		log.Errorf("Error parsing channel ID %s: %v", i.ChannelID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// Reading the pin is open to everyone; writing needs moderation rights.
	if options[0].Name != "show" {
		if err := f.authorize(ctx, i); err != nil {
			common.HandleError(s, i, err, false)
			return
		}
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	moderationService := services.NewModerationService(uow.ModerationRepository())

	var message string
	ephemeral := true
	switch options[0].Name {
	case "set":
		var text string
		for _, opt := range options[0].Options {
			if opt.Name == "text" {
				text = opt.StringValue()
			}
		}
		if err := moderationService.SetPin(ctx, channelID, text); err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		message = "📌 Pin saved for this channel."

	case "show":
		text, err := moderationService.Pin(ctx, channelID)
		if err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		if text == "" {
			message = "Nothing pinned here."
		} else {
			message = fmt.Sprintf("📌 %s", text)
			ephemeral = false
		}

	case "clear":
		if err := moderationService.ClearPin(ctx, channelID); err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		message = "📌 Pin cleared."

	default:
		common.RespondWithError(s, i, "Unknown subcommand")
		return
	}

	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	data := &discordgo.InteractionResponseData{Content: message}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("Error responding to pin command: %v", err)
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
		log.Errorf("Error responding to moderation command: %v", err)
	}
}
