// Package auth implements the mocked sign-in flow of the app.  A device
// keeps exactly one user record, serialized as JSON under UserKey.
// Roles are derived from the email address; nothing here is a real
// authorization check.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/matchday-tickets/internal/kv"
	"github.com/iliyamo/matchday-tickets/internal/model"
	"github.com/iliyamo/matchday-tickets/internal/utils"
)

// UserKey is the storage key of the device's user record.
const UserKey = "@user"

// mockName is the display name given to users who log in without
// having registered on the device.
const mockName = "John Doe"

var (
	// ErrStorage wraps any failure of the underlying store.
	ErrStorage = errors.New("auth: storage failure")
	// ErrInvalidCredentials is returned when a registered user's password does not match.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrNotLoggedIn is returned by UpdateProfile when no user is stored.
	ErrNotLoggedIn = errors.New("auth: not logged in")
	// ErrMissingFields is returned when email or password is empty.
	ErrMissingFields = errors.New("auth: email and password required")
)

// RoleForEmail returns admin when the email contains "admin", user otherwise.
func RoleForEmail(email string) string {
	if strings.Contains(email, "admin") {
		return model.RoleAdmin
	}
	return model.RoleUser
}

// Service reads and writes the user record of one device.
type Service struct {
	store      kv.Store
	newID      func() string
	bcryptCost int
}

// Option configures a Service.
type Option func(*Service)

// WithIDFunc sets the generator for user ids.
func WithIDFunc(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithBcryptCost sets the cost used to hash registration passwords.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

// NewService returns a Service over store.
func NewService(store kv.Store, opts ...Option) *Service {
	s := &Service{store: store, newID: uuid.NewString, bcryptCost: 10}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the stored user.  It returns nil without error when the
// device holds no record.
func (s *Service) Restore(ctx context.Context) (*model.User, error) {
	raw, err := s.store.Get(ctx, UserKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("%w: decode user: %v", ErrStorage, err)
	}
	return &u, nil
}

// Login signs the device in as email.  Any password is accepted unless
// the device holds a registered record for the same email, in which
// case the password must match it.  Signing in again with the email
// already on the device keeps that record and its id.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	cur, err := s.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if cur != nil && cur.Email == email {
		if cur.PasswordHash != "" && !utils.VerifyPassword(cur.PasswordHash, password) {
			return nil, ErrInvalidCredentials
		}
		return cur, nil
	}
	u := &model.User{
		ID:    s.newID(),
		Name:  mockName,
		Email: email,
		Role:  RoleForEmail(email),
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Register stores a new user record with the user role.
func (s *Service) Register(ctx context.Context, name, email, password, phone string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		ID:           s.newID(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		Role:         model.RoleUser,
		PasswordHash: hash,
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		u.Phone = &phone
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Logout forgets the stored user.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// ProfileUpdate lists the fields a user may change.  Nil fields are kept.
type ProfileUpdate struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Avatar *string `json:"avatar"`
}

// UpdateProfile merges upd into the stored user and saves it.
func (s *Service) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*model.User, error) {
	u, err := s.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotLoggedIn
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = upd.Phone
	}
	if upd.Avatar != nil {
		u.Avatar = upd.Avatar
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) save(ctx context.Context, u *model.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%w: encode user: %v", ErrStorage, err)
	}
	if err := s.store.Set(ctx, UserKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
