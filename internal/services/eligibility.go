package services

import (
	"time"

	"rewardsbot/internal/config"
	"rewardsbot/internal/models"
)

// WithdrawReason identifies the first failed withdrawal eligibility check.
type WithdrawReason int

const (
	WithdrawAllowed WithdrawReason = iota
	ReasonWindowClosed
	ReasonInsufficientReferrals
	ReasonBelowMinimum
	ReasonBankDetailsMissing
)

// String returns the reason code name.
func (r WithdrawReason) String() string {
	switch r {
	case WithdrawAllowed:
		return "ALLOWED"
	case ReasonWindowClosed:
		return "WINDOW_CLOSED"
	case ReasonInsufficientReferrals:
		return "INSUFFICIENT_REFERRALS"
	case ReasonBelowMinimum:
		return "BELOW_MINIMUM"
	case ReasonBankDetailsMissing:
		return "BANK_DETAILS_MISSING"
	}
	return "UNKNOWN"
}

// ClaimCheck is the outcome of a claim eligibility evaluation.
type ClaimCheck struct {
	Allowed          bool
	SecondsRemaining int64
}

// CanClaim reports whether the cooldown has elapsed since the last claim.
// A zero LastClaim means the account has never claimed.
func CanClaim(account *models.Account, now time.Time, cooldown time.Duration) ClaimCheck {
	elapsed := now.Unix() - account.LastClaim
	cooldownSecs := int64(cooldown / time.Second)

	if elapsed >= cooldownSecs {
		return ClaimCheck{Allowed: true}
	}
	return ClaimCheck{SecondsRemaining: cooldownSecs - elapsed}
}

// WithdrawRules are the configured thresholds a withdrawal must pass.
type WithdrawRules struct {
	MinAmount    int64
	MinReferrals int
	Windows      []config.WithdrawalWindow
	Timezone     *time.Location
}

// CanWithdraw evaluates the withdrawal checks in fixed order and returns the
// first failing reason. The order is part of the contract: window, referrals,
// minimum balance, bank details.
func CanWithdraw(account *models.Account, now time.Time, rules WithdrawRules) (bool, WithdrawReason) {
	if !WindowOpen(now, rules.Windows, rules.Timezone) {
		return false, ReasonWindowClosed
	}
	if account.ReferralCount < rules.MinReferrals {
		return false, ReasonInsufficientReferrals
	}
	if account.Balance < rules.MinAmount {
		return false, ReasonBelowMinimum
	}
	if !account.HasBankDetails() {
		return false, ReasonBankDetailsMissing
	}
	return true, WithdrawAllowed
}

// WindowOpen reports whether now falls inside any configured withdrawal
// window, evaluated in the configured timezone.
func WindowOpen(now time.Time, windows []config.WithdrawalWindow, tz *time.Location) bool {
	local := now.In(tz)
	for _, w := range windows {
		if local.Weekday() == w.Weekday && local.Hour() >= w.StartHour && local.Hour() < w.EndHour {
			return true
		}
	}
	return false
}
