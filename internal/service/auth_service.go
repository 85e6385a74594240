package service

import (
	"context"
	"errors"
	"time"

	"alphacloud/assessment-portal/internal/auth"
	"alphacloud/assessment-portal/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrTokenGeneration    = errors.New("failed to generate authentication token")
)

// Access types carried in the token. "full" unlocks the whole portal;
// "assessment" is limited to the review phase.
const (
	AccessTypeFull       = "full"
	AccessTypeAssessment = "assessment"
)

// LoginResult is what a successful login returns to the browser.
type LoginResult struct {
	Token      string `json:"token"`
	AccessType string `json:"accessType"`
	Username   string `json:"username"`
	Message    string `json:"message"`
}

// AuthService authenticates portal users against the configured
// credential list and issues tokens through the active codec.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type authService struct {
	codec           auth.TokenCodec
	credentials     []config.CredentialConfig
	defaultClientID string
	tokenTTL        time.Duration
	now             func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(codec auth.TokenCodec, cfg config.AuthConfig) AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		codec:           codec,
		credentials:     cfg.Credentials,
		defaultClientID: cfg.DefaultClientID,
		tokenTTL:        ttl,
		now:             time.Now,
	}
}

// Login verifies the supplied credentials against the configured bcrypt
// hashes and issues a token carrying the matching access type.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var matched *config.CredentialConfig
	for i := range s.credentials {
		if s.credentials[i].Username == username {
			matched = &s.credentials[i]
			break
		}
	}
	if matched == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(matched.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	token, err := s.codec.Issue(auth.Claims{
		ClientID:   s.defaultClientID,
		Username:   username,
		AccessType: matched.AccessType,
		Timestamp:  now.UnixMilli(),
		Expires:    now.Add(s.tokenTTL).UnixMilli(),
	})
	if err != nil {
		return nil, ErrTokenGeneration
	}

	message := "Login successful - Full Access"
	if matched.AccessType == AccessTypeAssessment {
		message = "Login successful - Assessment Access"
	}

	return &LoginResult{
		Token:      token,
		AccessType: matched.AccessType,
		Username:   username,
		Message:    message,
	}, nil
}
