package user

import (
	"context"
	"errors"
	"time"

	"github.com/meghdad1234/fabric-microservices/internal/docstore"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("email already registered")
)

// Repository persists users in the service's document store.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, id int64, upd Update) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}

// Update carries the mutable fields of a user. An empty field is a no-op, not
// a clear.
type Update struct {
	Name  string
	Email string
}

type fileRepository struct {
	store *docstore.Store[User]
}

func NewRepository(store *docstore.Store[User]) Repository {
	return &fileRepository{store: store}
}

func (r *fileRepository) List(_ context.Context) ([]User, error) {
	return r.store.Load()
}

func (r *fileRepository) GetByID(_ context.Context, id int64) (*User, error) {
	users, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	users, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create assigns the next identifier and creation time and appends the user.
// Email uniqueness is checked against the same snapshot the insert is applied
// to, so two racing registrations cannot both pass the check.
func (r *fileRepository) Create(_ context.Context, u *User) (*User, error) {
	var created User
	err := r.store.Mutate(func(users []User) ([]User, error) {
		for i := range users {
			if users[i].Email == u.Email {
				return nil, ErrEmailExists
			}
		}
		created = *u
		created.ID = docstore.NextID(users, func(u User) int64 { return u.ID })
		created.CreatedAt = time.Now().UTC()
		return append(users, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *fileRepository) Update(_ context.Context, id int64, upd Update) (*User, error) {
	var updated User
	err := r.store.Mutate(func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID != id {
				continue
			}
			if upd.Name != "" {
				users[i].Name = upd.Name
			}
			if upd.Email != "" {
				users[i].Email = upd.Email
			}
			updated = users[i]
			return users, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *fileRepository) Delete(_ context.Context, id int64) (*User, error) {
	var removed User
	err := r.store.Mutate(func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID == id {
				removed = users[i]
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}
