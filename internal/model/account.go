package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Account is a local dashboard login. It is the server-side stand-in for the
// browser wallet session: the account carries the wallet address used for
// chain identity and a mirror of the on-chain role for route gating. The
// authoritative user record stays on the ledger.
type Account struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"`
	Name         string     `gorm:"type:varchar(255)" json:"name" validate:"required"`
	Place        string     `gorm:"type:varchar(255)" json:"place"`
	Wallet       string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"wallet" validate:"required"`
	RoleLabel    string     `gorm:"type:varchar(32);not null" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // single active session
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// SetPassword hashes and sets the account password.
func (a *Account) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashed)
	return nil
}

// CheckPassword verifies a password against the stored hash.
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) == nil
}

// Role resolves the mirrored chain role. Accounts written by this service
// always hold a known label; anything else maps to false.
func (a *Account) Role() (Role, bool) {
	return RoleByLabel(a.RoleLabel)
}

// AccountResponse is the API shape of an account, without credentials.
type AccountResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Place      string     `json:"place"`
	Wallet     string     `json:"wallet"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

// ToResponse converts an Account to its API shape.
func (a *Account) ToResponse() AccountResponse {
	return AccountResponse{
		ID:         a.ID,
		Email:      a.Email,
		Name:       a.Name,
		Place:      a.Place,
		Wallet:     a.Wallet,
		Role:       a.RoleLabel,
		IsActive:   a.IsActive,
		LastSeenAt: a.LastSeenAt,
	}
}
