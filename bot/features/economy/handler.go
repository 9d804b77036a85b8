package economy

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"barkeep/bot/common"
	"barkeep/domain/services"
)

// HandleDaily handles the /daily command.
func (f *Feature) HandleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseSnowflake(user.ID)
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

	ledger := services.NewLedgerService(uow.UserRepository(), uow.EventBus())
	result, err := ledger.ClaimDaily(ctx, discordID, user.Username, time.Now().UTC())
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("🪙 You collected your daily **%s chips**", common.FormatChips(result.Base))
	if result.Bonus > 0 {
		message += fmt.Sprintf(" plus a **%s** streak bonus", common.FormatChips(result.Bonus))
	}
	message += fmt.Sprintf("!\nStreak: **%d day(s)** · Balance: **%s chips**", result.Streak, common.FormatChips(result.NewBalance))

	respond(s, i, message, false)
}

// HandleWork handles the /work command.
func (f *Feature) HandleWork(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	discordID, err := common.ParseSnowflake(user.ID)
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

	ledger := services.NewLedgerService(uow.UserRepository(), uow.EventBus())
	result, err := ledger.Work(ctx, discordID, user.Username, time.Now().UTC(), f.rng)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("🛠️ You finished a shift of **%s** and earned **%s chips**. Balance: **%s chips**",
		result.Job, common.FormatChips(result.Pay), common.FormatChips(result.NewBalance))
	respond(s, i, message, false)
}

// HandlePay handles the /pay command.
func (f *Feature) HandlePay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	user := common.InteractionUser(i)
	payerID, err := common.ParseSnowflake(user.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	options := i.ApplicationCommandData().Options
	var amount int64
	var target *discordgo.User
	for _, opt := range options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			target = opt.UserValue(s)
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "Pick someone to pay.")
		return
	}
	if target.Bot {
		common.RespondWithError(s, i, "Bots don't take tips.")
		return
	}
	payeeID, err := common.ParseSnowflake(target.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.UserRepository(), uow.EventBus())
	result, err := ledger.Transfer(ctx, payerID, user.Username, payeeID, target.Username, amount)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	message := fmt.Sprintf("💸 %s paid **%s chips** to %s. Your balance: **%s chips**",
		common.Mention(payerID), common.FormatChips(result.Amount), common.Mention(payeeID),
		common.FormatChips(result.PayerBalance))
	respond(s, i, message, false)
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("Error responding to economy command: %v", err)
	}
}
