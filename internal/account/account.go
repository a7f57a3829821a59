// Package account registers users and checks their credentials.
package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/models"
	"gamehub/backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

const invalidCredentials = "Invalid email or password"

// Session is a user together with a freshly signed token.
type Session struct {
	User  models.User
	Token string
}

type Service struct {
	db       *gorm.DB
	secret   string
	tokenTTL time.Duration
	hashCost int
}

// Option customizes a Service.
type Option func(*Service)

// WithTokenTTL overrides jwt.DefaultTTL.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) { s.tokenTTL = ttl }
}

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func New(db *gorm.DB, secret string, opts ...Option) *Service {
	s := &Service{db: db, secret: secret, tokenTTL: jwt.DefaultTTL, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and signs them in.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, apperror.ValidationFailed("", "Name, email and password are required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, apperror.ValidationFailed("email", "Invalid email format")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       DefaultAvatar(name),
	}
	err = s.db.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperror.Conflict("User with this email already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.session(user)
}

// Login checks the credentials. An unknown email and a wrong password fail
// with the same message.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("", "Email and password are required")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	return s.session(user)
}

// GetUser returns the user with the given id.
func (s *Service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (s *Service) session(user models.User) (*Session, error) {
	token, err := jwt.GenerateToken(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}

// DefaultAvatar is the generated avatar URL for users who have not set one.
func DefaultAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
