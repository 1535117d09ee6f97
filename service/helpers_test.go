package service

import (
	"errors"
	"sync"
	"time"

	"logistics-accounts/model"
	"logistics-accounts/repository"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory stand-in for the Postgres user repository.
// Setting down=true makes every call fail the way an unreachable store would.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by email
	down  bool
}

var errStoreDown = errors.New("connection refused")

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) addUser(u *model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.Email] = u
}

func (f *fakeUserRepo) Create(user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errStoreDown
	}
	if _, exists := f.users[user.Email]; exists {
		return errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errStoreDown
	}
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errStoreDown
	}
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByPhone(phone string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errStoreDown
	}
	for _, u := range f.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return false, errStoreDown
	}
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserRepo) ExistsByPhone(phone string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return false, errStoreDown
	}
	for _, u := range f.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdatePassword(email string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errStoreDown
	}
	u, ok := f.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) SaveResetToken(email string, token string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errStoreDown
	}
	u, ok := f.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (f *fakeUserRepo) FindByResetToken(token string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errStoreDown
	}
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) ClearResetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errStoreDown
	}
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			u.ResetToken = nil
			u.ResetTokenExpiry = nil
		}
	}
	return nil
}

func (f *fakeUserRepo) DeleteExpiredResetTokens(now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errStoreDown
	}
	for _, u := range f.users {
		if u.ResetToken != nil && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.Before(now) {
			u.ResetToken = nil
			u.ResetTokenExpiry = nil
		}
	}
	return nil
}

// fakeEmail records sent mail and can be told to fail.
type fakeEmail struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

type sentMail struct {
	to, subject, body string
}

func (f *fakeEmail) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp dial failed")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeEmail) lastTo() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].to
}

func (f *fakeEmail) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeSms records sent messages and can be told to fail.
type fakeSms struct {
	mu   sync.Mutex
	sent []string // destination numbers
	fail bool
}

func (f *fakeSms) Send(to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("twilio: 503")
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeSms) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
