package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/domain/entities"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Ephemeral   bool   // Whether the error message should be ephemeral
	Err         error  // Underlying error
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (validation, insufficient funds, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
	}
}

// NewSystemError creates an error for system issues (storage, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: "Something went wrong. Please try again later.",
		LogMessage:  logMessage,
		Ephemeral:   true,
		Err:         err,
	}
}

// UserMessageFor translates a domain error into a message safe to show the
// user. System errors get the generic fallback.
func UserMessageFor(err error) string {
	var validation *entities.ValidationError
	var cooldown *entities.CooldownError
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &cooldown):
		return fmt.Sprintf("You need to wait **%s** before doing that again.", cooldown.Remaining.Round(time.Second))
	case errors.Is(err, entities.ErrInsufficientFunds):
		return "You don't have enough chips for that."
	case errors.Is(err, entities.ErrSessionInProgress):
		return "Finish your current game first."
	case errors.Is(err, entities.ErrUnauthorized):
		return "You're not allowed to do that."
	case errors.Is(err, entities.ErrExpired):
		return "That one's already over."
	case errors.Is(err, entities.ErrNotFound):
		return "Couldn't find that."
	default:
		return "Something went wrong. Please try again later."
	}
}

// IsDomainError reports whether err is a user-caused domain error rather than
// a system failure.
func IsDomainError(err error) bool {
	return entities.IsValidation(err) ||
		errors.Is(err, entities.ErrInsufficientFunds) ||
		errors.Is(err, entities.ErrCooldownActive) ||
		errors.Is(err, entities.ErrSessionInProgress) ||
		errors.Is(err, entities.ErrUnauthorized) ||
		errors.Is(err, entities.ErrExpired) ||
		errors.Is(err, entities.ErrNotFound)
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError logs err and responds with the right user-facing message.
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	var message string
	var botErr *BotError
	if errors.As(err, &botErr) {
		log.WithFields(log.Fields{
			"user_id": InteractionUserID(i),
			"error":   botErr.Error(),
		}).Error(botErr.LogMessage)
		message = botErr.UserMessage
	} else if IsDomainError(err) {
		message = UserMessageFor(err)
	} else {
		log.WithFields(log.Fields{
			"user_id": InteractionUserID(i),
			"error":   err.Error(),
		}).Error("Unexpected error in bot command")
		message = "Something went wrong. Please try again later."
	}

	if deferred {
		FollowUpWithError(s, i, message)
	} else {
		RespondWithError(s, i, message)
	}
}
