package fixture

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Account is a login the fixture site accepts.
type Account struct {
	Email    string
	Password string
}

// AccountStore keeps bcrypt hashes keyed by lower-cased email.
type AccountStore struct {
	mu     sync.RWMutex
	hashes map[string][]byte
}

func NewAccountStore() *AccountStore {
	return &AccountStore{hashes: make(map[string][]byte)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Add registers or replaces an account.
func (s *AccountStore) Add(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password for %s: %w", email, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[normalizeEmail(email)] = hash
	return nil
}

// Exists reports whether email is registered.
func (s *AccountStore) Exists(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.hashes[normalizeEmail(email)]
	return ok
}

// Verify reports whether password matches the registered account.
func (s *AccountStore) Verify(email, password string) bool {
	s.mu.RLock()
	hash, ok := s.hashes[normalizeEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
