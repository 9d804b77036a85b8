package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"barkeep/domain/entities"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	minQuantity := float64(1)
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your chip balance",
		},
		{
			Name:        "daily",
			Description: "Claim your daily chips (streaks earn a bonus)",
		},
		{
			Name:        "work",
			Description: "Do an odd job for some chips",
		},
		{
			Name:        "pay",
			Description: "Transfer chips to another player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of chips to send",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to send chips to",
					Required:    true,
				},
			},
		},
		{
			Name:        "blackjack",
			Description: "Play a hand of blackjack against the house or a friend",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "wager",
					Description: "Chips on the line",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "opponent",
					Description: "Challenge another player instead of the house",
					Required:    false,
				},
			},
		},
		{
			Name:        "highlow",
			Description: "Guess whether the next card is higher or lower",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "wager",
					Description: "Chips on the line",
					Required:    true,
				},
			},
		},
		{
			Name:        "slots",
			Description: "Spin the slot machine",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "wager",
					Description: "Chips on the line",
					Required:    true,
				},
			},
		},
		{
			Name:        "diceduel",
			Description: "Challenge another player to a dice duel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "wager",
					Description: "Chips on the line for each player",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "opponent",
					Description: "Player to challenge",
					Required:    true,
				},
			},
		},
		{
			Name:        "trivia",
			Description: "Answer a trivia question for chips",
		},
		{
			Name:        "shop",
			Description: "Browse and trade in the item shop",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Browse the catalog",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "buy",
					Description: "Buy an item",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Item name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "quantity",
							Description: "How many (default 1)",
							Required:    false,
							MinValue:    &minQuantity,
							MaxValue:    entities.MaxTradeQuantity,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "sell",
					Description: "Sell an item back to the shop",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Item name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "quantity",
							Description: "How many (default 1)",
							Required:    false,
							MinValue:    &minQuantity,
							MaxValue:    entities.MaxTradeQuantity,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "inventory",
					Description: "See what you own",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "price",
					Description: "Look up an item's current price",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Item name",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "poll",
			Description: "Create and manage polls",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Start a poll in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "question",
							Description: "What to ask",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "option1",
							Description: "First choice",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "option2",
							Description: "Second choice",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "option3",
							Description: "Third choice",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "option4",
							Description: "Fourth choice",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "option5",
							Description: "Fifth choice",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "results",
					Description: "Show current results for a poll",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Poll ID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "close",
					Description: "Close a poll early",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Poll ID",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "note",
			Description: "Keep personal notes",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Save a note",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "text",
							Description: "What to remember",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List your notes",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a note by number",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "number",
							Description: "Note number from /note list",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "remind",
			Description: "Schedule reminders",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set a reminder",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message",
							Description: "What to remind you about",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "in",
							Description: "When, e.g. 30m, 2h or 1d",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "dm",
							Description: "Deliver by DM instead of in this channel",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "at",
					Description: "Set a reminder for a specific time",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message",
							Description: "What to remind you about",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "when",
							Description: "When, e.g. 18:30 or 2026-09-01 18:30",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "utc_offset",
							Description: "Your UTC offset in hours (default 0)",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "dm",
							Description: "Deliver by DM instead of in this channel",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List your pending reminders",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "cancel",
					Description: "Cancel a reminder",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Reminder ID",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "purge",
			Description: "Bulk-delete recent messages in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "How many messages to delete (1-1000)",
					Required:    true,
				},
			},
		},
		{
			Name:        "autodelete",
			Description: "Configure message auto-deletion for channels",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Auto-delete messages in this channel after a delay",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "minutes",
							Description: "Delete messages older than this many minutes",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "off",
					Description: "Disable auto-delete for this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List channels with auto-delete configured",
				},
			},
		},
		{
			Name:        "modaccess",
			Description: "Manage who may use moderation commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "allow",
					Description: "Grant a user moderation access",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to allow",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "revoke",
					Description: "Revoke a user's moderation access",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to revoke",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show the moderation allowlist",
				},
			},
		},
		{
			Name:        "pin",
			Description: "Manage this channel's sticky text",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set the sticky text",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "text",
							Description: "Text to pin",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the sticky text",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Clear the sticky text",
				},
			},
		},
		{
			Name:        "stats",
			Description: "Show a player's record",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to look up (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the top players",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "by",
					Description: "Ranking to show",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "balance", Value: "balance"},
						{Name: "wins", Value: "wins"},
					},
				},
			},
		},
		{
			Name:        "achievements",
			Description: "Show your achievements",
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
