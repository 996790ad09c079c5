package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"go-teachain-ws/internal/model"
	"go-teachain-ws/internal/repository"
	"go-teachain-ws/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrWalletTaken        = errors.New("wallet address already registered")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	CheckAvailability(email, wallet string) error
	Register(in RegisterInput) (*model.Account, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Logout(accountID uuid.UUID) error
	Heartbeat(accountID uuid.UUID) error
}

type LoginResponse struct {
	Token   string                `json:"token"`
	Account model.AccountResponse `json:"account"`
}

type TokenValidationResponse struct {
	Account model.AccountResponse `json:"account"`
}

// RegisterInput creates a local dashboard account. The matching on-chain
// registration is issued by the caller through the lifecycle controller;
// this service owns only the login identity.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2"`
	Place    string `json:"place"`
	Wallet   string `json:"wallet" validate:"required,wallet"`
	Role     string `json:"role"`
}

type authService struct {
	accountRepo repository.AccountRepository
}

func NewAuthService(accountRepo repository.AccountRepository) AuthService {
	return &authService{accountRepo: accountRepo}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	account, err := s.accountRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	if !account.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: a fresh token version invalidates older tokens
	newTokenVersion := uuid.New().String()
	now := time.Now()
	account.TokenVersion = newTokenVersion
	account.LastSeenAt = &now
	if err := s.accountRepo.Update(account); err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(account.ID, account.Email, account.Name, account.Wallet, account.RoleLabel, newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:   token,
		Account: account.ToResponse(),
	}, nil
}

// CheckAvailability reports whether the email and wallet are free. The
// caller runs this before any ledger write so a local uniqueness conflict
// never leaves an orphaned on-chain participant.
func (s *authService) CheckAvailability(email, wallet string) error {
	if existing, _ := s.accountRepo.FindByEmail(email); existing != nil {
		return ErrEmailTaken
	}
	if existing, _ := s.accountRepo.FindByWallet(wallet); existing != nil {
		return ErrWalletTaken
	}
	return nil
}

func (s *authService) Register(in RegisterInput) (*model.Account, error) {
	if err := s.CheckAvailability(in.Email, in.Wallet); err != nil {
		return nil, err
	}

	account := &model.Account{
		Email:     in.Email,
		Name:      in.Name,
		Place:     in.Place,
		Wallet:    in.Wallet,
		RoleLabel: in.Role,
		IsActive:  true,
	}
	if err := account.SetPassword(in.Password); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByID(claims.AccountID)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	if account.TokenVersion != claims.TokenVersion {
		return nil, jwt.ErrInvalidToken
	}

	return &TokenValidationResponse{Account: account.ToResponse()}, nil
}

// Logout rotates the token version so the current token stops validating.
func (s *authService) Logout(accountID uuid.UUID) error {
	return s.accountRepo.UpdateTokenVersion(accountID, uuid.New().String())
}

func (s *authService) Heartbeat(accountID uuid.UUID) error {
	return s.accountRepo.UpdateLastSeen(accountID)
}
