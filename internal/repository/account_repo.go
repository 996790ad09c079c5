package repository

import (
	"go-teachain-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	FindByEmail(email string) (*model.Account, error)
	FindByID(id uuid.UUID) (*model.Account, error)
	FindByWallet(wallet string) (*model.Account, error)
	Create(account *model.Account) error
	Update(account *model.Account) error
	UpdateTokenVersion(accountID uuid.UUID, version string) error
	UpdateLastSeen(accountID uuid.UUID) error
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db}
}

func (r *accountRepo) FindByEmail(email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) FindByID(id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) FindByWallet(wallet string) (*model.Account, error) {
	var account model.Account
	if err := r.db.Where("wallet = ?", wallet).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) Create(account *model.Account) error {
	return r.db.Create(account).Error
}

func (r *accountRepo) Update(account *model.Account) error {
	return r.db.Save(account).Error
}

func (r *accountRepo) UpdateTokenVersion(accountID uuid.UUID, version string) error {
	return r.db.Model(&model.Account{}).Where("id = ?", accountID).Update("token_version", version).Error
}

func (r *accountRepo) UpdateLastSeen(accountID uuid.UUID) error {
	return r.db.Model(&model.Account{}).Where("id = ?", accountID).Update("last_seen_at", gorm.Expr("NOW()")).Error
}
