package services

import (
	"context"
	"fmt"

	"barkeep/domain/entities"
	"barkeep/domain/events"
	"barkeep/domain/interfaces"
)

// GameService settles finished games against the ledger and awards
// achievements. All wager movement happens here, after the game logic
// decided the outcome, so a crash mid-game never leaves money in limbo.
type GameService struct {
	users     interfaces.UserRepository
	publisher interfaces.EventPublisher
}

// NewGameService creates a game settlement service.
func NewGameService(users interfaces.UserRepository, publisher interfaces.EventPublisher) *GameService {
	return &GameService{users: users, publisher: publisher}
}

// Settlement reports the outcome of one settled hand for one player.
type Settlement struct {
	Outcome         entities.GameOutcome
	NetChange       int64
	NewBalance      int64
	NewAchievements []string
}

// ValidateWager checks that the user exists with enough balance for the
// wager before a game starts. No money moves.
func (s *GameService) ValidateWager(ctx context.Context, discordID int64, username string, wager int64) error {
	user, err := s.users.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	return user.ValidateWager(wager)
}

// SettleWager settles a fixed-wager game: win pays the wager, loss forfeits
// it, push moves nothing. natural marks a dealt twenty-one for the
// achievement check.
func (s *GameService) SettleWager(ctx context.Context, game string, discordID int64, username string, wager int64, outcome entities.GameOutcome, natural bool) (*Settlement, error) {
	var net int64
	switch outcome {
	case entities.OutcomeWin:
		net = wager
	case entities.OutcomeLoss:
		net = -wager
	case entities.OutcomePush:
		net = 0
	default:
		return nil, entities.NewValidationError("unknown game outcome %q", outcome)
	}
	return s.settle(ctx, game, discordID, username, wager, net, outcome, natural)
}

// SettleNet settles a game with an arbitrary net result, e.g. a slots spin
// where the multiplier determines the payout. Outcome is derived from the
// sign of net.
func (s *GameService) SettleNet(ctx context.Context, game string, discordID int64, username string, wager, net int64) (*Settlement, error) {
	outcome := entities.OutcomePush
	switch {
	case net > 0:
		outcome = entities.OutcomeWin
	case net < 0:
		outcome = entities.OutcomeLoss
	}
	return s.settle(ctx, game, discordID, username, wager, net, outcome, false)
}

func (s *GameService) settle(ctx context.Context, game string, discordID int64, username string, wager, net int64, outcome entities.GameOutcome, natural bool) (*Settlement, error) {
	user, err := s.users.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	old := user.Balance
	user.Balance += net
	if user.Balance < 0 {
		// Losses are capped at the wager the user could afford at game start,
		// so this only happens on a stale snapshot.
		user.Balance = 0
	}
	user.RecordOutcome(outcome)

	earned := s.evaluateAchievements(user, wager, outcome, natural)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.publisher.Publish(events.BalanceChangeEvent{
		UserID:       user.DiscordID,
		OldBalance:   old,
		NewBalance:   user.Balance,
		ChangeAmount: net,
		Reason:       game,
	})
	s.publisher.Publish(events.GameResolvedEvent{
		Game:      game,
		UserID:    user.DiscordID,
		Wager:     wager,
		NetChange: net,
		Outcome:   outcome,
	})

	return &Settlement{
		Outcome:         outcome,
		NetChange:       net,
		NewBalance:      user.Balance,
		NewAchievements: earned,
	}, nil
}

// evaluateAchievements grants any achievements this hand earned and returns
// the newly granted names in grant order.
func (s *GameService) evaluateAchievements(user *entities.User, wager int64, outcome entities.GameOutcome, natural bool) []string {
	var earned []string
	grant := func(name string) {
		if user.GrantAchievement(name) {
			earned = append(earned, name)
		}
	}

	if outcome == entities.OutcomeWin {
		grant(entities.AchievementFirstBlood)
		if wager >= entities.HighRollerThreshold {
			grant(entities.AchievementHighRoller)
		}
		for _, m := range entities.WinMilestones {
			if user.Wins == m {
				grant(entities.MilestoneName(m))
			}
		}
	}
	if natural {
		grant(entities.AchievementBlackjack)
	}
	return earned
}
