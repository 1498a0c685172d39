package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	member bool
	err    error
	calls  int
}

func (c *fakeChecker) IsMember(accountID int64) (bool, error) {
	c.calls++
	return c.member, c.err
}

func TestVerifyMarksAccountVerified(t *testing.T) {
	accounts := newTestStore(t)
	addAccount(accounts, 1, false)

	service := NewVerificationService(accounts, &fakeChecker{member: true})

	require.Equal(t, VerifyOK, service.Verify(1, "Test"))
	assert.True(t, service.IsVerified(1))
}

func TestVerifyCreatesMissingAccount(t *testing.T) {
	accounts := newTestStore(t)
	service := NewVerificationService(accounts, &fakeChecker{member: true})

	require.Equal(t, VerifyOK, service.Verify(7, "Fresh"))

	account, ok := accounts.Get(7)
	require.True(t, ok)
	assert.True(t, account.Verified)
	assert.Equal(t, "Fresh", account.FirstName)
}

func TestVerifyNotMemberLeavesUnverified(t *testing.T) {
	accounts := newTestStore(t)
	addAccount(accounts, 1, false)

	service := NewVerificationService(accounts, &fakeChecker{member: false})

	assert.Equal(t, VerifyNotMember, service.Verify(1, "Test"))
	assert.False(t, service.IsVerified(1))
}

// A failing membership query is a denial, not a crash.
func TestVerifyCheckFailure(t *testing.T) {
	accounts := newTestStore(t)
	addAccount(accounts, 1, false)

	service := NewVerificationService(accounts, &fakeChecker{err: errors.New("network down")})

	assert.Equal(t, VerifyCheckFailed, service.Verify(1, "Test"))
	assert.False(t, service.IsVerified(1))
}

// Verified is one-way: a later negative check never clears it.
func TestVerifyIsMonotonic(t *testing.T) {
	accounts := newTestStore(t)
	addAccount(accounts, 1, false)

	checker := &fakeChecker{member: true}
	service := NewVerificationService(accounts, checker)

	require.Equal(t, VerifyOK, service.Verify(1, "Test"))

	checker.member = false
	assert.Equal(t, VerifyNotMember, service.Verify(1, "Test"))
	assert.True(t, service.IsVerified(1))
}

func TestIsVerifiedUnknownAccount(t *testing.T) {
	accounts := newTestStore(t)
	service := NewVerificationService(accounts, &fakeChecker{member: true})

	assert.False(t, service.IsVerified(42))
}
