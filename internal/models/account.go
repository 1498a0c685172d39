package models

// BankDetails holds the payout destination for an account.
// It is always replaced as a whole, never field by field.
type BankDetails struct {
	AccountNumber string `json:"acc_number"`
	BankName      string `json:"bank_name"`
	AccountName   string `json:"acct_name"`
}

// Complete reports whether all three fields are present.
func (b BankDetails) Complete() bool {
	return b.AccountNumber != "" && b.BankName != "" && b.AccountName != ""
}

// Account represents a user's persistent record in the store.
type Account struct {
	ID                int64        `json:"id"`
	FirstName         string       `json:"first_name"`
	Balance           int64        `json:"balance"`
	LastClaim         int64        `json:"last_claim"`
	ReferralCount     int          `json:"referrals"`
	Verified          bool         `json:"channel_verified"`
	ReferredBy        *int64       `json:"referred_by,omitempty"`
	BankDetails       *BankDetails `json:"bank_details,omitempty"`
	ClaimHistory      []int64      `json:"claim_history"`
	AwaitingBankInput bool         `json:"expecting_bank_details"`
}

// NewAccount creates a fresh unverified account with zero balance.
func NewAccount(id int64, firstName string) *Account {
	return &Account{
		ID:           id,
		FirstName:    firstName,
		ClaimHistory: []int64{},
	}
}

// HasBankDetails reports whether the account has a complete payout destination.
func (a *Account) HasBankDetails() bool {
	return a.BankDetails != nil && a.BankDetails.Complete()
}

// Clone returns a deep copy of the account, safe to read outside the store lock.
func (a *Account) Clone() *Account {
	c := *a
	if a.ReferredBy != nil {
		ref := *a.ReferredBy
		c.ReferredBy = &ref
	}
	if a.BankDetails != nil {
		bd := *a.BankDetails
		c.BankDetails = &bd
	}
	if a.ClaimHistory != nil {
		c.ClaimHistory = make([]int64, len(a.ClaimHistory))
		copy(c.ClaimHistory, a.ClaimHistory)
	}
	return &c
}
