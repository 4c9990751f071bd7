// Package auth implements the credential provider behind sign-in and
// sign-up, session management and the middleware protecting the
// dashboard. Credential failures surface to callers only as generic
// messages; the specific cause is logged.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mimiru/mimiru/internal/config"
	"github.com/mimiru/mimiru/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// Provider verifies and registers account credentials. It fills the role
// the hosted auth service plays for the web app: SignUp and
// SignInWithPassword, nothing more.
type Provider struct {
	db     *gorm.DB
	config config.Auth
}

// NewProvider creates a credential provider.
func NewProvider(db *gorm.DB, cfg config.Auth) *Provider {
	return &Provider{db: db, config: cfg}
}

// SignUp registers a new account and returns it with a generated uuid.
func (p *Provider) SignUp(email, password string) (*entities.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	var existing entities.Account
	err := p.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := HashPassword(password, p.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	account := &entities.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := p.db.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// SignInWithPassword verifies credentials and returns the account.
// A missing account and a wrong password are indistinguishable to the
// caller.
func (p *Provider) SignInWithPassword(email, password string) (*entities.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account entities.Account
	err := p.db.Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if err := CheckPassword(password, account.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &account, nil
}

// GetAccountByID retrieves an account by its uuid.
func (p *Provider) GetAccountByID(id string) (*entities.Account, error) {
	var account entities.Account
	err := p.db.Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}
