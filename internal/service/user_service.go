package service

import (
	"sync"
	"time"

	"wa-coach-bot/internal/domain"
)

// UserService owns the in-memory user collection that shadows the durable
// store. Every read and mutation goes through its mutex; the raw slice is
// never handed out, and callers only see copies.
type UserService struct {
	repo   domain.UserRepository
	logger domain.Logger

	mu    sync.Mutex
	users []*domain.User
}

// NewUserService creates the owning wrapper around a user repository.
func NewUserService(repo domain.UserRepository, logger domain.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
		users:  []*domain.User{},
	}
}

// Load replaces the collection from storage. Storage failures are recovered
// by starting empty, per the store contract; the bot keeps running.
func (s *UserService) Load() {
	users, err := s.repo.Load()
	if err != nil {
		s.logger.Warn("Failed to load user store, starting empty", "error", err)
		users = []*domain.User{}
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
}

// Persist writes the whole collection to storage. Failures are logged and
// returned; nothing here is fatal.
func (s *UserService) Persist() error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.repo.Save(snapshot); err != nil {
		s.logger.Error("Failed to save user store", err)
		return err
	}
	return nil
}

// Find returns a copy of the record for the given address.
func (s *UserService) Find(number string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.findLocked(number); u != nil {
		return *cloneUser(u), true
	}
	return domain.User{}, false
}

// Mutate runs fn on the record under the store lock and returns a copy of
// the result. It does not persist; callers decide when a decision point
// becomes durable.
func (s *UserService) Mutate(number string, fn func(*domain.User)) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findLocked(number)
	if u == nil {
		return domain.User{}, false
	}
	fn(u)
	return *cloneUser(u), true
}

// Grant upserts a record and activates it for days from now, then persists.
// New records get their registration metadata exactly once.
func (s *UserService) Grant(number string, now time.Time, days int, quota *int) domain.User {
	s.mu.Lock()
	u := s.findLocked(number)
	if u == nil {
		u = &domain.User{Number: number, RegisteredAt: now}
		s.users = append(s.users, u)
	}
	domain.Grant(u, now, days, quota)
	granted := *cloneUser(u)
	s.mu.Unlock()

	_ = s.Persist()
	return granted
}

// Counts tallies paid versus expired records, resolving lapsed paid terms on
// the way. It returns copies of the records revoked by this call so the
// caller can send their one-time notices.
func (s *UserService) Counts(now time.Time) (active, expired int, revoked []domain.User) {
	s.mu.Lock()
	for _, u := range s.users {
		if domain.ResolveExpiry(u, now) {
			revoked = append(revoked, *cloneUser(u))
		}
		switch u.Status {
		case domain.StatusPaid:
			active++
		case domain.StatusExpired:
			expired++
		}
	}
	s.mu.Unlock()

	if len(revoked) > 0 {
		_ = s.Persist()
	}
	return active, expired, revoked
}

// ForEach runs fn over every record under the store lock. fn must not call
// back into the service.
func (s *UserService) ForEach(fn func(*domain.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		fn(u)
	}
}

// Count returns the number of records in the store.
func (s *UserService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *UserService) findLocked(number string) *domain.User {
	for _, u := range s.users {
		if u.Number == number {
			return u
		}
	}
	return nil
}

func (s *UserService) snapshotLocked() []*domain.User {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, cloneUser(u))
	}
	return out
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.ExpireAt != nil {
		t := *u.ExpireAt
		c.ExpireAt = &t
	}
	if u.Quota != nil {
		q := *u.Quota
		c.Quota = &q
	}
	return &c
}
