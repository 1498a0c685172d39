package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	"rewardsbot/internal/models"
	"rewardsbot/internal/store"
)

// TaskScheduler schedules a one-shot deferred task and returns its handle.
type TaskScheduler interface {
	Schedule(delay time.Duration, fn func()) uuid.UUID
}

// WithdrawalOutcome describes the result of a withdrawal request. When
// Pending is false, Reason carries the first failed eligibility check.
type WithdrawalOutcome struct {
	Pending   bool
	Reason    WithdrawReason
	Amount    int64
	Balance   int64
	Referrals int
	Bank      models.BankDetails
}

// WithdrawalService runs the request -> eligibility -> pending/rejected flow.
// A pending request does not deduct balance and leaves no persistent record;
// it only schedules one deferred follow-up notification. Scheduled follow-ups
// always fire, even if account state changes before the delay elapses.
type WithdrawalService struct {
	store     *store.AccountStore
	rules     WithdrawRules
	scheduler TaskScheduler
	notifier  Notifier
	delay     time.Duration
	now       func() time.Time
}

// NewWithdrawalService creates a new WithdrawalService
func NewWithdrawalService(accounts *store.AccountStore, rules WithdrawRules, scheduler TaskScheduler, notifier Notifier, delay time.Duration) *WithdrawalService {
	return &WithdrawalService{
		store:     accounts,
		rules:     rules,
		scheduler: scheduler,
		notifier:  notifier,
		delay:     delay,
		now:       time.Now,
	}
}

const manualReviewNotice = "❌ Automatic verification is unavailable for this request.\n\n" +
	"Your withdrawal has been queued for manual review by the support team. " +
	"No further action is needed; you will be notified once the review is complete."

// Request evaluates eligibility for the account and, if it passes every
// check, acknowledges the request as pending and schedules the follow-up.
// The second return value is false if the account does not exist.
func (s *WithdrawalService) Request(accountID int64) (WithdrawalOutcome, bool) {
	account, ok := s.store.Get(accountID)
	if !ok {
		return WithdrawalOutcome{}, false
	}

	outcome := WithdrawalOutcome{
		Balance:   account.Balance,
		Referrals: account.ReferralCount,
	}

	allowed, reason := CanWithdraw(account, s.now(), s.rules)
	if !allowed {
		outcome.Reason = reason
		log.Printf("Withdrawal rejected for user %d: %s", accountID, reason)
		return outcome, true
	}

	outcome.Pending = true
	outcome.Amount = account.Balance
	outcome.Bank = *account.BankDetails
	log.Printf("Withdrawal pending for user %d: %d", accountID, outcome.Amount)

	// Fire-and-forget: the notifier swallows delivery failures and nothing
	// cancels the task if the account changes in the meantime.
	taskID := s.scheduler.Schedule(s.delay, func() {
		s.notifier.Notify(accountID, manualReviewNotice)
	})
	log.Printf("Scheduled withdrawal follow-up %s for user %d in %s", taskID, accountID, s.delay)

	return outcome, true
}
