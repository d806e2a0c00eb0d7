package accounts

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

// Service defines account registration and authentication.
type Service interface {
	Register(ctx context.Context, email, password string) (*Account, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(tokenString string) (ledger.Address, error)
}

type service struct {
	repo   Repository
	secret []byte
}

// NewService creates a new accounts service signing tokens with secret.
func NewService(repo Repository, secret []byte) Service {
	return &service{repo: repo, secret: secret}
}

func (s *service) Register(ctx context.Context, email, password string) (*Account, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	account := &Account{
		ID:           id,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Address:      addressFromID(id),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &jwt.StandardClaims{
		Subject:   string(account.Address),
		ExpiresAt: expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies the token signature and returns the caller address
// carried in the subject claim.
func (s *service) ParseToken(tokenString string) (ledger.Address, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return ledger.Address(claims.Subject), nil
}

// addressFromID renders the account id as a 0x-prefixed hex address.
func addressFromID(id uuid.UUID) ledger.Address {
	return ledger.Address("0x" + hex.EncodeToString(id[:]))
}
