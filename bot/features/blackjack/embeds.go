package blackjack

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"barkeep/bot/common"
	"barkeep/domain/games"
)

func handLine(cards []games.Card) string {
	return fmt.Sprintf("%s (**%d**)", games.FormatHand(cards), games.HandValue(cards))
}

// buildTableEmbed renders a live table. The dealer's hole card stays hidden
// until the hand resolves.
func buildTableEmbed(state *tableState) *discordgo.MessageEmbed {
	g := state.Game
	embed := &discordgo.MessageEmbed{
		Title: "🂡 Blackjack",
		Color: common.ColorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Wager: %s chips", common.FormatChips(state.Wager)),
		},
	}

	if g.PvP() {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: state.PlayerName, Value: handLine(g.Player), Inline: true},
			{Name: state.OpponentName, Value: handValueFor(g), Inline: true},
		}
		embed.Description = fmt.Sprintf("It's %s's turn.", common.Mention(g.CurrentTurnID()))
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Your hand", Value: handLine(g.Player), Inline: true},
		{Name: "Dealer shows", Value: fmt.Sprintf("%s 🂠", games.FormatHand(g.Dealer[:1])), Inline: true},
	}
	embed.Description = "Hit or stand?"
	return embed
}

// handValueFor hides the opponent's exact hand while the challenger still
// acts, so the second player gets no information edge.
func handValueFor(g *games.Blackjack) string {
	if g.State() == games.StatePlayerTurn {
		return fmt.Sprintf("%d cards 🂠", len(g.Opponent))
	}
	return handLine(g.Opponent)
}

func buildChallengeEmbed(state *tableState, challengerID, opponentID int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🂡 Blackjack Challenge",
		Description: fmt.Sprintf("%s challenges %s to blackjack for **%s chips**!",
			common.Mention(challengerID), common.Mention(opponentID), common.FormatChips(state.Wager)),
		Color: common.ColorWarning,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Expires in %d seconds", common.BlackjackTimeoutSeconds),
		},
	}
}

func buildResultEmbed(state *tableState, summary string, lines []string, timedOut bool) *discordgo.MessageEmbed {
	g := state.Game
	embed := &discordgo.MessageEmbed{
		Title:       "🂡 Blackjack — Result",
		Description: summary,
		Color:       common.ColorInfo,
	}
	if timedOut {
		embed.Description += "\n*(finished automatically after inactivity)*"
	}

	if g.PvP() {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: state.PlayerName, Value: handLine(g.Player), Inline: true},
			{Name: state.OpponentName, Value: handLine(g.Opponent), Inline: true},
		}
	} else {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Your hand", Value: handLine(g.Player), Inline: true},
			{Name: "Dealer", Value: handLine(g.Dealer), Inline: true},
		}
	}

	for _, line := range lines {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "​", Value: line})
	}
	return embed
}

func challengeExpiredEmbed(state *tableState) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🂡 Blackjack Challenge",
		Description: "Challenge expired without an answer. No chips changed hands.",
		Color:       common.ColorDanger,
	}
}

func challengeDeclinedEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🂡 Blackjack Challenge",
		Description: "Challenge declined. No chips changed hands.",
		Color:       common.ColorDanger,
	}
}

func playButtons(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Hit", Style: discordgo.PrimaryButton, CustomID: "blackjack_hit_" + sessionID},
				discordgo.Button{Label: "Stand", Style: discordgo.SecondaryButton, CustomID: "blackjack_stand_" + sessionID},
			},
		},
	}
}

func challengeButtons(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Accept", Style: discordgo.SuccessButton, CustomID: "blackjack_accept_" + sessionID},
				discordgo.Button{Label: "Decline", Style: discordgo.DangerButton, CustomID: "blackjack_decline_" + sessionID},
			},
		},
	}
}
