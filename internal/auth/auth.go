// Package auth identifies the person using the tool. Anyone who cannot log in
// continues as the guest user.
package auth

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/prompt"
	"github.com/conorfennell/flashdeck/internal/storage"
)

// ErrWeakPassword is returned when a new password is too short.
var ErrWeakPassword = errors.New("password must be at least 8 characters")

const minPasswordLength = 8

// Store is the persistence login and registration need.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// Register creates a user with the given password.
func Register(ctx context.Context, store Store, username, password string) (domain.User, error) {
	if username == "" {
		return domain.User{}, errors.New("username is required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	id, err := store.CreateUser(ctx, username, hash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return domain.User{}, errors.Errorf("user %q already exists", username)
		}
		return domain.User{}, errors.Wrap(err, "register user")
	}
	return domain.User{ID: id, Username: username, PasswordHash: hash}, nil
}

// Authenticate checks a username and password. It returns nil when they do
// not match a stored user.
func Authenticate(ctx context.Context, store Store, username, password string) (*domain.User, error) {
	user, err := store.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "look up user")
	}
	if user == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

// Login asks for credentials and returns the matching user, or the guest
// when they are wrong or left blank. Only input and storage failures are
// returned as errors.
func Login(ctx context.Context, io prompt.IO, store Store) (domain.User, error) {
	username, err := prompt.Text(io, "Username: ")
	if err != nil {
		return domain.User{}, err
	}
	if username == "" {
		io.WriteLine("Continuing as guest.")
		return domain.Guest(), nil
	}

	password, err := prompt.Password(io, "Password: ")
	if err != nil {
		return domain.User{}, err
	}

	user, err := Authenticate(ctx, store, username, password)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		io.WriteLine("Login failed, continuing as guest.")
		return domain.Guest(), nil
	}

	io.WriteLine(fmt.Sprintf("Logged in as %s.", user.Username))
	return *user, nil
}
