package services

import (
	"log"
	"time"

	"rewardsbot/internal/store"
)

// ClaimResult is the outcome of a claim attempt.
type ClaimResult struct {
	Claimed          bool
	NewBalance       int64
	SecondsRemaining int64
}

// ClaimService credits the recurring claim amount, subject to the cooldown.
type ClaimService struct {
	store    *store.AccountStore
	amount   int64
	cooldown time.Duration
	now      func() time.Time
}

// NewClaimService creates a new ClaimService
func NewClaimService(accounts *store.AccountStore, amount int64, cooldown time.Duration) *ClaimService {
	return &ClaimService{
		store:    accounts,
		amount:   amount,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Claim re-checks the cooldown and applies the credit inside one store
// critical section, so two concurrent claims cannot both pass the check.
// The second return value is false if the account does not exist.
func (s *ClaimService) Claim(accountID int64) (ClaimResult, bool) {
	var result ClaimResult
	var found bool

	now := s.now()
	s.store.Mutate(func(tx *store.Tx) bool {
		account := tx.Get(accountID)
		if account == nil {
			return false
		}
		found = true

		check := CanClaim(account, now, s.cooldown)
		if !check.Allowed {
			result.SecondsRemaining = check.SecondsRemaining
			return false
		}

		account.Balance += s.amount
		account.LastClaim = now.Unix()
		account.ClaimHistory = append(account.ClaimHistory, now.Unix())

		result.Claimed = true
		result.NewBalance = account.Balance
		return true
	})

	if result.Claimed {
		log.Printf("User %d claimed %d successfully", accountID, s.amount)
	}
	return result, found
}
