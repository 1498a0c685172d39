package services

import (
	"log"

	"rewardsbot/internal/store"
)

// MembershipChecker queries the external channel for membership. Errors are
// treated by callers as "not a member".
type MembershipChecker interface {
	IsMember(accountID int64) (bool, error)
}

// VerifyOutcome is the result of a membership verification attempt.
type VerifyOutcome int

const (
	VerifyOK VerifyOutcome = iota
	VerifyNotMember
	VerifyCheckFailed
)

// VerificationService gates functionality behind channel membership. The
// Unverified to Verified transition is one-way and persisted immediately.
type VerificationService struct {
	store   *store.AccountStore
	checker MembershipChecker
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(accounts *store.AccountStore, checker MembershipChecker) *VerificationService {
	return &VerificationService{
		store:   accounts,
		checker: checker,
	}
}

// IsVerified reports whether the account exists and has passed verification.
func (s *VerificationService) IsVerified(accountID int64) bool {
	account, ok := s.store.Get(accountID)
	return ok && account.Verified
}

// Verify runs the membership check and, on a positive result, marks the
// account verified. The account is created if it does not exist yet, so a
// user whose first interaction is the verification button still gets a record.
func (s *VerificationService) Verify(accountID int64, firstName string) VerifyOutcome {
	member, err := s.checker.IsMember(accountID)
	if err != nil {
		log.Printf("Error checking channel membership for user %d: %v", accountID, err)
		return VerifyCheckFailed
	}
	if !member {
		return VerifyNotMember
	}

	s.store.Mutate(func(tx *store.Tx) bool {
		account, _ := tx.GetOrCreate(accountID, firstName)
		account.Verified = true
		return true
	})

	log.Printf("User %d verified channel access", accountID)
	return VerifyOK
}
