package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid user input")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// dummyDigest is compared against when a login email is unknown, so the
// request costs the same bcrypt work as a real mismatch and the response
// cannot distinguish "no such account" from "wrong password".
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type UpdateInput struct {
	Name  string
	Email string
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (View, error)
	List(ctx context.Context) ([]View, error)
	GetByID(ctx context.Context, id int64) (View, error)
	Update(ctx context.Context, id int64, input UpdateInput) (View, error)
	Delete(ctx context.Context, id int64) (View, error)
	Login(ctx context.Context, email, password string) (View, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (View, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	if name == "" {
		return View{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if email == "" {
		return View{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return View{}, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to hash password")
		return View{}, fmt.Errorf("service: failed to hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &User{
		Name:     name,
		Email:    email,
		Password: string(digest),
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return View{}, ErrEmailExists
		}
		log.Error().Err(err).Msg("service: failed to create user in repository")
		return View{}, fmt.Errorf("service: failed to create user: %w", err)
	}

	log.Info().Int64("user_id", created.ID).Msg("service: user registered")
	return created.Public(), nil
}

func (s *service) List(ctx context.Context) ([]View, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list users")
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}

	views := make([]View, 0, len(users))
	for _, u := range users {
		views = append(views, u.Public())
	}
	return views, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (View, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return View{}, ErrNotFound
		}
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to get user by id")
		return View{}, fmt.Errorf("service: failed to get user by id %d: %w", id, err)
	}
	return u.Public(), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (View, error) {
	upd := Update{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return View{}, ErrNotFound
		}
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to update user")
		return View{}, fmt.Errorf("service: failed to update user %d: %w", id, err)
	}

	log.Info().Int64("user_id", id).Msg("service: user updated")
	return updated.Public(), nil
}

func (s *service) Delete(ctx context.Context, id int64) (View, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return View{}, ErrNotFound
		}
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to delete user")
		return View{}, fmt.Errorf("service: failed to delete user %d: %w", id, err)
	}

	log.Info().Int64("user_id", id).Msg("service: user deleted")
	return removed.Public(), nil
}

func (s *service) Login(ctx context.Context, email, password string) (View, error) {
	if email == "" || password == "" {
		return View{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Burn the same hashing work as a real comparison.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(password))
			return View{}, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("service: failed to look up user for login")
		return View{}, fmt.Errorf("service: failed to look up user for login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		log.Warn().Int64("user_id", u.ID).Msg("service: login rejected")
		return View{}, ErrInvalidCredentials
	}

	log.Info().Int64("user_id", u.ID).Msg("service: login successful")
	return u.Public(), nil
}
