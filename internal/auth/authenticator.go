// internal/auth/authenticator.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"ghotok-workers/internal/common/logger"
	"ghotok-workers/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Bootstrap is the admin account created on its first successful login.
type Bootstrap struct {
	Username string
	Password string
	Email    string
}

func (b Bootstrap) matches(username, password string) bool {
	return b.Username != "" && b.Password != "" && username == b.Username && password == b.Password
}

type Authenticator struct {
	users      *UserStore
	sessions   *SessionStore
	bcryptCost int
	bootstrap  Bootstrap
	logger     logger.Logger
}

func NewAuthenticator(users *UserStore, sessions *SessionStore, bcryptCost int, bootstrap Bootstrap, log logger.Logger) *Authenticator {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Authenticator{
		users:      users,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		bootstrap:  bootstrap,
		logger:     log,
	}
}

type LoginResult struct {
	User    models.User
	Session *Session
	Created bool
}

// Login checks username and password and opens a session.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	created := false
	user, err := a.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound) && a.bootstrap.matches(username, password):
		user, err = a.createBootstrapUser(ctx)
		if err != nil {
			return nil, err
		}
		created = true
	case errors.Is(err, ErrUserNotFound):
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	default:
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
	}

	sess, err := a.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: *user, Session: sess, Created: created}, nil
}

func (a *Authenticator) createBootstrapUser(ctx context.Context) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(a.bootstrap.Password), a.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash bootstrap password: %w", err)
	}
	email := a.bootstrap.Email
	if email == "" {
		email = a.bootstrap.Username
	}
	user, err := a.users.Create(ctx, a.bootstrap.Username, string(hash), email)
	if err != nil {
		return nil, err
	}
	a.logger.Info("bootstrap admin created", map[string]interface{}{"userId": user.ID, "username": user.Username})
	return user, nil
}

// Validate returns the user behind a live session.
func (a *Authenticator) Validate(ctx context.Context, userID int64, token string) (*models.User, *Session, error) {
	sess, err := a.sessions.Get(ctx, userID, token)
	if err != nil {
		return nil, nil, err
	}
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

func (a *Authenticator) Sessions() *SessionStore {
	return a.sessions
}
