package services

import (
	"fmt"
	"log"

	"rewardsbot/internal/store"
	"rewardsbot/internal/utils"
)

// Notifier delivers a text message to an account's chat. Delivery is
// best-effort; implementations log failures instead of returning them.
type Notifier interface {
	Notify(accountID int64, text string)
}

// ReferralService handles one-time referral attribution and crediting.
type ReferralService struct {
	store    *store.AccountStore
	bonus    int64
	notifier Notifier
}

// NewReferralService creates a new ReferralService
func NewReferralService(accounts *store.AccountStore, bonus int64, notifier Notifier) *ReferralService {
	return &ReferralService{
		store:    accounts,
		bonus:    bonus,
		notifier: notifier,
	}
}

// Attribute links a new account to its referrer and credits the bonus. The
// referrer must exist, must not be the account itself, and the account must
// not already have a referrer; otherwise the call is a silent no-op. The
// credit and the referred-by assignment happen in one store critical section.
func (s *ReferralService) Attribute(accountID, referrerID int64) bool {
	if accountID == referrerID {
		return false
	}

	var attributed, notifyReferrer bool
	s.store.Mutate(func(tx *store.Tx) bool {
		referrer := tx.Get(referrerID)
		if referrer == nil {
			return false
		}
		account := tx.Get(accountID)
		if account == nil || account.ReferredBy != nil {
			return false
		}

		referrer.ReferralCount++
		referrer.Balance += s.bonus
		ref := referrerID
		account.ReferredBy = &ref

		attributed = true
		notifyReferrer = referrer.Verified
		return true
	})

	if !attributed {
		return false
	}

	log.Printf("Referral processed: %d referred by %d", accountID, referrerID)

	// Unverified referrers are credited silently.
	if notifyReferrer && s.notifier != nil {
		s.notifier.Notify(referrerID, fmt.Sprintf(
			"🎉 You earned a referral bonus of %s!", utils.FormatCurrency(s.bonus)))
	}
	return true
}
