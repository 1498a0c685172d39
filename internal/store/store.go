package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"rewardsbot/internal/models"
)

// AccountStore is the in-memory account mapping, guarded by a single lock.
// Every successful mutation is synchronously snapshotted to disk; a failed
// snapshot write is logged and the in-memory state stays authoritative.
type AccountStore struct {
	mu       sync.Mutex
	accounts map[int64]*models.Account
	path     string
}

// New creates an empty store persisting to the given snapshot path.
func New(path string) *AccountStore {
	return &AccountStore{
		accounts: make(map[int64]*models.Account),
		path:     path,
	}
}

// Load reads the snapshot file into the store. A missing file yields an empty
// store; a corrupt file yields an empty store with a logged warning.
func (s *AccountStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("No snapshot found at %s, starting with empty store", s.path)
			return nil
		}
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	raw := make(map[string]*models.Account)
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("Corrupted snapshot at %s: %v. Starting with empty store", s.path, err)
		return nil
	}

	for key, account := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			log.Printf("Skipping snapshot entry with bad key %q: %v", key, err)
			continue
		}
		account.ID = id
		if account.ClaimHistory == nil {
			account.ClaimHistory = []int64{}
		}
		s.accounts[id] = account
	}

	log.Printf("Loaded %d accounts from snapshot", len(s.accounts))
	return nil
}

// Get returns a copy of the account, safe to use without holding the lock.
func (s *AccountStore) Get(id int64) (*models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	return account.Clone(), true
}

// Exists reports whether an account is present.
func (s *AccountStore) Exists(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.accounts[id]
	return ok
}

// Count returns the number of accounts.
func (s *AccountStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}

// Tx gives a mutator direct access to live accounts while the store lock is
// held. Mutators must not retain pointers past the transaction.
type Tx struct {
	store *AccountStore
}

// Get returns the live account, or nil if absent.
func (tx *Tx) Get(id int64) *models.Account {
	return tx.store.accounts[id]
}

// GetOrCreate returns the live account, creating it lazily on first contact.
func (tx *Tx) GetOrCreate(id int64, firstName string) (*models.Account, bool) {
	if account, ok := tx.store.accounts[id]; ok {
		return account, false
	}
	account := models.NewAccount(id, firstName)
	tx.store.accounts[id] = account
	return account, true
}

// Len returns the number of accounts.
func (tx *Tx) Len() int {
	return len(tx.store.accounts)
}

// Each calls fn for every live account.
func (tx *Tx) Each(fn func(*models.Account)) {
	for _, account := range tx.store.accounts {
		fn(account)
	}
}

// Mutate runs fn as a single critical section over the whole store. If fn
// reports that it changed state, the snapshot is written before the lock is
// released, so a check inside fn and the mutation it guards are atomic with
// respect to every other mutation.
func (s *AccountStore) Mutate(fn func(tx *Tx) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fn(&Tx{store: s}) {
		s.saveLocked()
	}
}

// View runs fn under the lock without persisting.
func (s *AccountStore) View(fn func(tx *Tx)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&Tx{store: s})
}

// Update applies a mutator to an existing account and persists. It returns
// false if the account does not exist.
func (s *AccountStore) Update(id int64, mutator func(*models.Account)) bool {
	var ok bool
	s.Mutate(func(tx *Tx) bool {
		account := tx.Get(id)
		if account == nil {
			return false
		}
		mutator(account)
		ok = true
		return true
	})
	return ok
}

// saveLocked writes the whole store to the snapshot file. Callers must hold
// the lock. Failures are logged, never fatal.
func (s *AccountStore) saveLocked() {
	raw := make(map[string]*models.Account, len(s.accounts))
	for id, account := range s.accounts {
		raw[strconv.FormatInt(id, 10)] = account
	}

	data, err := json.Marshal(raw)
	if err != nil {
		log.Printf("Failed to encode snapshot: %v", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("Failed to save snapshot: %v", err)
	}
}
