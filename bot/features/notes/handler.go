package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/services"
)

// HandleCommand handles the /note command and its subcommands.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	user := common.InteractionUser(i)
	userID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	ctx := context.Background()
	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	noteService := services.NewNoteService(uow.NoteRepository())

	var message string
	switch options[0].Name {
	case "add":
		var text string
		for _, opt := range options[0].Options {
			if opt.Name == "text" {
				text = opt.StringValue()
			}
		}
		if err := noteService.Add(ctx, userID, text); err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		message = "📝 Note saved."

	case "list":
		list, err := noteService.List(ctx, userID)
		if err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		if len(list) == 0 {
			message = "You have no notes."
		} else {
			var lines []string
			for idx, note := range list {
				lines = append(lines, fmt.Sprintf("**%d.** %s *(%s)*", idx+1, note.Text,
					common.FormatDiscordTimestamp(note.CreatedAt, "d")))
			}
			message = strings.Join(lines, "\n")
		}

	case "delete":
		var position int64
		for _, opt := range options[0].Options {
			if opt.Name == "number" {
				position = opt.IntValue()
			}
		}
		if err := noteService.Delete(ctx, userID, int(position)); err != nil {
			common.HandleError(s, i, err, false)
			return
		}
		message = fmt.Sprintf("🗑️ Note %d deleted.", position)

	default:
		common.RespondWithError(s, i, "Unknown subcommand")
		return
	}

	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to note command: %v", err)
	}
}
