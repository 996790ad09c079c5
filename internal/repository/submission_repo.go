package repository

import (
	"go-teachain-ws/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Record(txHash, method, wallet string, blockNumber uint64, status, detail string) error
	FindByWallet(wallet string, limit int) ([]model.Submission, error)
	FindRecent(limit int) ([]model.Submission, error)
}

type submissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db}
}

func (r *submissionRepo) Record(txHash, method, wallet string, blockNumber uint64, status, detail string) error {
	return r.db.Create(&model.Submission{
		TxHash:      txHash,
		Method:      method,
		Wallet:      wallet,
		BlockNumber: blockNumber,
		Status:      status,
		Detail:      detail,
	}).Error
}

func (r *submissionRepo) FindByWallet(wallet string, limit int) ([]model.Submission, error) {
	var subs []model.Submission
	if err := r.db.Where("wallet = ?", wallet).Order("id DESC").Limit(limit).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) FindRecent(limit int) ([]model.Submission, error) {
	var subs []model.Submission
	if err := r.db.Order("id DESC").Limit(limit).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
