package store

import (
	"context"
	"strings"
	"sync"

	"github.com/MKhiriev/amour-lingua/models"
)

// memoryUserRepository is the map-backed [UserRepository].
type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	nextID int64
}

// NewMemoryUserRepository returns an empty in-memory [UserRepository].
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users:  make(map[int64]models.User),
		nextID: 1,
	}
}

func (r *memoryUserRepository) GetUser(_ context.Context, id int64) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepository) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if user, ok := r.findLocked(func(u models.User) bool { return strings.EqualFold(u.Username, username) }); ok {
		return cloneUser(user), nil
	}
	return models.User{}, ErrUserNotFound
}

func (r *memoryUserRepository) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if user, ok := r.findLocked(func(u models.User) bool { return strings.EqualFold(u.Email, email) }); ok {
		return cloneUser(user), nil
	}
	return models.User{}, ErrUserNotFound
}

func (r *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUniqueLocked(0, user.Username, user.Email); err != nil {
		return models.User{}, err
	}

	if user.LangPreference == "" {
		user.LangPreference = models.DefaultLanguage
	}

	user.UserID = r.nextID
	r.nextID++
	r.users[user.UserID] = cloneUser(user)

	return cloneUser(user), nil
}

func (r *memoryUserRepository) UpdateUser(_ context.Context, id int64, update models.UserUpdate) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	if update.Email != nil {
		if err := r.checkUniqueLocked(id, "", *update.Email); err != nil {
			return models.User{}, err
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		name := *update.Name
		user.Name = &name
	}
	if update.LangPreference != nil {
		user.LangPreference = *update.LangPreference
	}
	if update.Password != nil {
		user.Password = *update.Password
	}

	r.users[id] = user
	return cloneUser(user), nil
}

func (r *memoryUserRepository) findLocked(match func(models.User) bool) (models.User, bool) {
	for _, user := range r.users {
		if match(user) {
			return user, true
		}
	}
	return models.User{}, false
}

// checkUniqueLocked reports a conflict with any user other than exceptID.
// Empty values are not checked.
func (r *memoryUserRepository) checkUniqueLocked(exceptID int64, username, email string) error {
	taken := func(match func(models.User) bool) bool {
		for id, existing := range r.users {
			if id != exceptID && match(existing) {
				return true
			}
		}
		return false
	}

	if username != "" && taken(func(u models.User) bool { return strings.EqualFold(u.Username, username) }) {
		return ErrUsernameAlreadyExists
	}
	if email != "" && taken(func(u models.User) bool { return strings.EqualFold(u.Email, email) }) {
		return ErrEmailAlreadyExists
	}
	return nil
}

func cloneUser(user models.User) models.User {
	if user.Name != nil {
		name := *user.Name
		user.Name = &name
	}
	return user
}
