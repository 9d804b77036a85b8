package services

import (
	"context"
	"fmt"
	"time"

	"barkeep/config"
	"barkeep/domain/entities"
	"barkeep/domain/events"
	"barkeep/domain/games"
	"barkeep/domain/interfaces"
)

// LedgerService owns all balance and cooldown mutations. Every operation
// applies its effects exactly once per call; atomicity across credit and
// debit comes from running inside one unit of work.
type LedgerService struct {
	users     interfaces.UserRepository
	publisher interfaces.EventPublisher
}

// NewLedgerService creates a ledger service over the given repositories.
func NewLedgerService(users interfaces.UserRepository, publisher interfaces.EventPublisher) *LedgerService {
	return &LedgerService{users: users, publisher: publisher}
}

// DailyResult reports a successful daily claim.
type DailyResult struct {
	Base       int64
	Bonus      int64
	Total      int64
	Streak     int
	NewBalance int64
}

// WorkResult reports a successful work shift.
type WorkResult struct {
	Pay        int64
	Job        string
	NewBalance int64
}

// TransferResult reports a completed transfer.
type TransferResult struct {
	Amount       int64
	PayerBalance int64
	PayeeBalance int64
}

var workJobs = []string{
	"bug squash", "barge fueling", "code review", "data entry",
	"ticket triage", "river nav calc", "crate stacking",
}

// Credit adds amount to the user's balance.
func (s *LedgerService) Credit(ctx context.Context, discordID int64, username string, amount int64, reason string) (*entities.User, error) {
	if amount <= 0 {
		return nil, entities.NewValidationError("credit amount must be positive")
	}
	user, err := s.users.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.apply(ctx, user, amount, reason)
}

// Debit removes amount from the user's balance, failing with
// ErrInsufficientFunds before any mutation when the balance is short.
func (s *LedgerService) Debit(ctx context.Context, discordID int64, username string, amount int64, reason string) (*entities.User, error) {
	if amount <= 0 {
		return nil, entities.NewValidationError("debit amount must be positive")
	}
	user, err := s.users.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.CanAfford(amount) {
		return nil, entities.ErrInsufficientFunds
	}
	return s.apply(ctx, user, -amount, reason)
}

// ClaimDaily credits the fixed daily amount plus the streak bonus, enforcing
// the cooldown. Consecutive calendar-day claims grow the streak; a gap
// resets it.
func (s *LedgerService) ClaimDaily(ctx context.Context, discordID int64, username string, now time.Time) (*DailyResult, error) {
	cfg := config.Get()

	user, err := s.users.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.LastDaily.IsZero() {
		if elapsed := now.Sub(user.LastDaily); elapsed < cfg.DailyCooldown {
			return nil, &entities.CooldownError{Remaining: cfg.DailyCooldown - elapsed}
		}
	}

	streak := s.advanceStreak(user, now)
	bonus := cfg.StreakStep * int64(max(0, streak-1))
	if bonus > cfg.StreakMaxBonus {
		bonus = cfg.StreakMaxBonus
	}
	total := cfg.DailyBaseAmount + bonus

	user.LastDaily = now
	if _, err := s.apply(ctx, user, total, "daily"); err != nil {
		return nil, err
	}

	return &DailyResult{
		Base:       cfg.DailyBaseAmount,
		Bonus:      bonus,
		Total:      total,
		Streak:     streak,
		NewBalance: user.Balance,
	}, nil
}

// advanceStreak updates the user's daily streak for a claim happening now
// and returns the new count. Claims on the same calendar day keep the
// current count.
func (s *LedgerService) advanceStreak(user *entities.User, now time.Time) int {
	today := now.UTC().Format("2006-01-02")
	if user.StreakLastDate == today {
		return user.StreakCount
	}

	count := 1
	if user.StreakLastDate != "" {
		if last, err := time.Parse("2006-01-02", user.StreakLastDate); err == nil {
			if nowDay, err := time.Parse("2006-01-02", today); err == nil && nowDay.Sub(last) == 24*time.Hour {
				count = user.StreakCount + 1
			}
		}
	}
	user.StreakCount = count
	user.StreakLastDate = today
	return count
}

// Work credits a random pay in the configured range, gated by the work
// cooldown.
func (s *LedgerService) Work(ctx context.Context, discordID int64, username string, now time.Time, rng games.Rand) (*WorkResult, error) {
	cfg := config.Get()

	user, err := s.users.GetOrCreate(ctx, discordID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.LastWork.IsZero() {
		if elapsed := now.Sub(user.LastWork); elapsed < cfg.WorkCooldown {
			return nil, &entities.CooldownError{Remaining: cfg.WorkCooldown - elapsed}
		}
	}

	pay := cfg.WorkMinPay + rng.Int63n(cfg.WorkMaxPay-cfg.WorkMinPay+1)
	job := workJobs[rng.Intn(len(workJobs))]

	user.LastWork = now
	if _, err := s.apply(ctx, user, pay, "work"); err != nil {
		return nil, err
	}

	return &WorkResult{Pay: pay, Job: job, NewBalance: user.Balance}, nil
}

// Transfer moves amount from payer to payee atomically; on any failure
// neither balance changes.
func (s *LedgerService) Transfer(ctx context.Context, payerID int64, payerName string, payeeID int64, payeeName string, amount int64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, entities.NewValidationError("transfer amount must be positive")
	}
	if payerID == payeeID {
		return nil, entities.NewValidationError("cannot transfer to yourself")
	}

	payer, err := s.users.GetOrCreate(ctx, payerID, payerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get payer: %w", err)
	}
	if !payer.CanAfford(amount) {
		return nil, entities.ErrInsufficientFunds
	}
	payee, err := s.users.GetOrCreate(ctx, payeeID, payeeName)
	if err != nil {
		return nil, fmt.Errorf("failed to get payee: %w", err)
	}

	if _, err := s.apply(ctx, payer, -amount, "transfer_out"); err != nil {
		return nil, err
	}
	if _, err := s.apply(ctx, payee, amount, "transfer_in"); err != nil {
		return nil, err
	}

	return &TransferResult{
		Amount:       amount,
		PayerBalance: payer.Balance,
		PayeeBalance: payee.Balance,
	}, nil
}

// apply mutates the balance, persists the account and publishes the change.
// The balance never goes negative; callers must have validated affordability.
func (s *LedgerService) apply(ctx context.Context, user *entities.User, delta int64, reason string) (*entities.User, error) {
	old := user.Balance
	user.Balance += delta
	if user.Balance < 0 {
		user.Balance = old
		return nil, entities.ErrInsufficientFunds
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.publisher.Publish(events.BalanceChangeEvent{
		UserID:       user.DiscordID,
		OldBalance:   old,
		NewBalance:   user.Balance,
		ChangeAmount: delta,
		Reason:       reason,
	})
	return user, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
