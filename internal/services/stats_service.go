package services

import (
	"rewardsbot/internal/models"
	"rewardsbot/internal/store"
)

// Stats holds aggregate totals over all accounts.
type Stats struct {
	TotalAccounts    int   `json:"total_accounts"`
	VerifiedAccounts int   `json:"verified_accounts"`
	TotalBalance     int64 `json:"total_balance"`
	TotalReferrals   int   `json:"total_referrals"`
}

// StatsService computes aggregate statistics over the store.
type StatsService struct {
	store *store.AccountStore
}

// NewStatsService creates a new StatsService
func NewStatsService(accounts *store.AccountStore) *StatsService {
	return &StatsService{store: accounts}
}

// Collect computes the totals in one pass under the store lock.
func (s *StatsService) Collect() Stats {
	var stats Stats
	s.store.View(func(tx *store.Tx) {
		stats.TotalAccounts = tx.Len()
		tx.Each(func(account *models.Account) {
			if account.Verified {
				stats.VerifiedAccounts++
			}
			stats.TotalBalance += account.Balance
			stats.TotalReferrals += account.ReferralCount
		})
	})
	return stats
}
