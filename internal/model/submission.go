package model

import "time"

// Submission statuses. A write is recorded only after its receipt resolves,
// so there is no pending state to track.
const (
	SubmissionConfirmed = "confirmed"
	SubmissionFailed    = "failed"
)

// Submission is the local audit record of one ledger write issued by this
// service: which account asked for it, which contract method ran, and how
// the transaction ended.
type Submission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TxHash      string    `gorm:"type:varchar(80);uniqueIndex" json:"tx_hash"`
	Method      string    `gorm:"type:varchar(64);not null" json:"method"`
	Wallet      string    `gorm:"type:varchar(64);index" json:"wallet"`
	BlockNumber uint64    `json:"block_number"`
	Status      string    `gorm:"type:varchar(16);not null" json:"status"`
	Detail      string    `gorm:"type:text" json:"detail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
