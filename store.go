package users

import (
	"context"
	"sort"
	"sync"
)

// Store is the credential table contract. Implementations must guarantee
// single-operation atomicity: Update runs its mutator under the same lock
// that guards the record, so read-modify-write sequences (sign-in tracking,
// sparse profile merges, moderation flips) never interleave.
type Store interface {
	// Create inserts a new record, failing with ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *User) error
	// Get returns the record for email, or ErrUserNotFound.
	Get(ctx context.Context, email string) (*User, error)
	// Update applies fn to the stored record atomically and returns the
	// updated copy. A non-nil error from fn aborts the mutation.
	Update(ctx context.Context, email string, fn func(*User) error) (*User, error)
	// Delete removes the record permanently, or fails with ErrUserNotFound.
	Delete(ctx context.Context, email string) error
	// List returns every record, ordered by email for stable output.
	List(ctx context.Context) ([]*User, error)
}

// MemoryStore is the process-lifetime implementation: a single mutable table
// behind one RWMutex. Reads may run concurrently; every mutation is
// serialized. There is no durability, by design.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryStore creates an empty store. Build a fresh one per process, and
// per test for isolation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: map[string]*User{},
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return ErrEmailTaken
	}

	s.users[user.Email] = user.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}

	return user.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, email string, fn func(*User) error) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}

	// Mutate a copy so a failing fn leaves the stored record untouched.
	next := user.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	// Email is the key and immutable; ignore any attempt to change it.
	next.Email = email
	s.users[email] = next

	return next.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; !ok {
		return ErrUserNotFound
	}

	delete(s.users, email)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Email < out[j].Email
	})

	return out, nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
