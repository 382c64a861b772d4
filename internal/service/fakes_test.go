package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/queue"
	"github.com/iliyamo/studio-showcase/internal/repository"
)

type memUsers struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]*model.User
	getErr error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[uint64]*model.User{}} }

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.Email == u.Email {
			return repository.ErrEmailTaken
		}
		if e.Username == u.Username {
			return repository.ErrUsernameTaken
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	return err == nil, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uint64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) set(id uint64, fn func(*model.User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.byID[id])
}

func (m *memUsers) failLookups(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

func (m *memUsers) remove(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

// memTokens mirrors the conditional UPDATE of the SQL store under a mutex.
type memTokens struct {
	mu        sync.Mutex
	rows      map[string]*model.RefreshToken
	insertErr error
}

func newMemTokens() *memTokens { return &memTokens{rows: map[string]*model.RefreshToken{}} }

func (m *memTokens) Store(_ context.Context, userID uint64, hash string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.rows[hash] = &model.RefreshToken{UserID: userID, TokenHash: hash, ExpiresAt: exp}
	return nil
}

// Rotate holds the mutex for the whole rotation, the way the SQL store
// holds its transaction.
func (m *memTokens) Rotate(ctx context.Context, oldHash, newHash string, newExp, now time.Time, check repository.OwnerCheck) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[oldHash]
	if !ok || !row.Usable(now) {
		return 0, repository.ErrTokenNotUsable
	}
	if check != nil {
		if err := check(ctx, row.UserID); err != nil {
			if errors.Is(err, repository.ErrOwnerUnavailable) {
				row.Revoked = true
				return row.UserID, err
			}
			return 0, err
		}
	}
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	row.Revoked = true
	m.rows[newHash] = &model.RefreshToken{UserID: row.UserID, TokenHash: newHash, ExpiresAt: newExp}
	return row.UserID, nil
}

// failInserts makes every later insert fail with err until called with nil.
func (m *memTokens) failInserts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertErr = err
}

func (m *memTokens) Revoke(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[hash]; ok {
		row.Revoked = true
	}
	return nil
}

func (m *memTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.UserID == userID {
			row.Revoked = true
		}
	}
	return nil
}

func (m *memTokens) active(userID uint64, now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, row := range m.rows {
		if row.UserID == userID && row.Usable(now) {
			n++
		}
	}
	return n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.Event
}

func (r *recordingPublisher) Publish(_ context.Context, ev queue.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}
