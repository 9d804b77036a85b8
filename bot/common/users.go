package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// InteractionUser returns the invoking user for both guild and DM interactions.
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID returns the invoking user's ID string, or "" when absent.
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if u := InteractionUser(i); u != nil {
		return u.ID
	}
	return ""
}

// ParseSnowflake converts a Discord ID string to int64.
func ParseSnowflake(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// FormatSnowflake converts an int64 ID back to Discord's string form.
func FormatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}

// HasManageMessages reports whether the interaction member carries the
// Manage Messages permission. Administrators qualify regardless.
func HasManageMessages(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	return i.Member.Permissions&(discordgo.PermissionManageMessages|discordgo.PermissionAdministrator) != 0
}
