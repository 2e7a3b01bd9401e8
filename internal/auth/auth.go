// Package auth resolves the local user of a request from its bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lomoval/menu-events/internal/profile"
	"github.com/lomoval/menu-events/internal/storage"
	log "github.com/sirupsen/logrus"
)

const bearerPrefix = "Bearer "

var (
	ErrUnauthorized = errors.New("authorization token is missing")
	ErrInvalidToken = errors.New("authorization token is invalid")
)

type Config struct {
	Secret string
	// RefreshStaff re-applies the admin claim to known users on every request.
	RefreshStaff bool
}

type ProfileLookup interface {
	Lookup(ctx context.Context, userID string) (profile.Profile, error)
}

type Authenticator struct {
	secret       []byte
	refreshStaff bool
	users        storage.UserStorage
	profiles     ProfileLookup
}

func New(config Config, users storage.UserStorage, profiles ProfileLookup) *Authenticator {
	return &Authenticator{
		secret:       []byte(config.Secret),
		refreshStaff: config.RefreshStaff,
		users:        users,
		profiles:     profiles,
	}
}

// Authenticate decodes the Authorization header value and returns the stored
// user of its subject, creating the user on first sight.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (storage.User, error) {
	if header == "" {
		return storage.User{}, ErrUnauthorized
	}
	claims, err := parseToken(strings.TrimPrefix(header, bearerPrefix), a.secret)
	if err != nil {
		return storage.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := string(claims.Sub)
	user, err := a.users.GetUser(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFoundUser):
		user = storage.User{ID: id, Username: id, IsStaff: claims.IsAdmin}
		a.enrich(ctx, &user)
	case err != nil:
		return storage.User{}, fmt.Errorf("failed to load user %q: %w", id, err)
	case a.refreshStaff:
		user.IsStaff = claims.IsAdmin
	}

	if err := a.users.SaveUser(ctx, user); err != nil {
		return storage.User{}, fmt.Errorf("failed to save user %q: %w", id, err)
	}
	return user, nil
}

func (a *Authenticator) enrich(ctx context.Context, user *storage.User) {
	if a.profiles == nil {
		return
	}
	p, err := a.profiles.Lookup(ctx, user.ID)
	if err != nil {
		log.Warnf("failed to get profile of user %q: %v", user.ID, err)
		return
	}
	if p.FirstName != "" {
		user.FirstName = p.FirstName
	}
	if p.LastName != "" {
		user.LastName = p.LastName
	}
}
