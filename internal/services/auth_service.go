package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/backend"
	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// LoginClient forwards credentials to the store backend, which is the only
// party that ever sees or stores them.
type LoginClient interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
}

// AuthService establishes terminal sessions. It delegates the credential
// check to the backend and mints a local JWT carrying the role and the
// session ID that keys the cashier's cart.
type AuthService struct {
	backend    LoginClient
	sessions   *SessionService
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(backendClient LoginClient, sessions *SessionService, jwtSecret string) *AuthService {
	return &AuthService{
		backend:    backendClient,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 12 * time.Hour, // One shift
	}
}

// Login authenticates against the backend and, on success, opens a terminal
// session. Cashier sessions get a cart and checkout coordinator; admins only
// get a token. A backend denial surfaces as *backend.BusinessError with the
// backend's message.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.LoginSession, error) {
	result, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &backend.BusinessError{Message: result.Message}
	}

	sessionID := uuid.New().String()
	if result.Role == "cashier" {
		s.sessions.Create(sessionID, username)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username":   username,
		"role":       result.Role,
		"session_id": sessionID,
		"exp":        time.Now().Add(s.tokenDurat).Unix(),
		"iat":        time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginSession{
		Token:     tokenString,
		Role:      result.Role,
		Username:  username,
		SessionID: sessionID,
	}, nil
}

// Logout closes the terminal session and discards its cart. Admin tokens
// carry a session ID with no cart behind it; dropping those is a no-op.
func (s *AuthService) Logout(sessionID string) {
	s.sessions.Drop(sessionID)
}

// ValidateToken parses and validates a session token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
