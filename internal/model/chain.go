package model

import "time"

// Chain entities are owned by the ledger. They are decoded read-side views;
// nothing here is ever written to the local database.

// User is a supply-chain participant registered on the ledger.
type User struct {
	Wallet string     `json:"wallet"`
	Name   string     `json:"name"`
	Place  string     `json:"place"`
	Role   Role       `json:"role"`
	Status UserStatus `json:"status"`
}

// Batch groups products made in one production run. Created once by a
// manufacturer and immutable afterwards.
type Batch struct {
	BatchID     uint64 `json:"batch_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product is a tracked tea product. Stage is the denormalized current
// position; the full history lives in the StageDetails sequence.
type Product struct {
	ProductID        uint64    `json:"product_id"`
	Name             string    `json:"name"`
	ProductType      string    `json:"product_type"`
	Description      string    `json:"description"`
	BatchNo          uint64    `json:"batch_no"`
	Stage            Stage     `json:"stage"`
	ManufacturedDate time.Time `json:"manufactured_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
	Price            uint64    `json:"price"`
}

// StageDetails is one append-only history record, written when a product is
// checked in at a stage. ExitTime is nil while the product is still at the
// stage; the ledger transmits that as a zero timestamp.
type StageDetails struct {
	User       User       `json:"user"`
	Stage      Stage      `json:"stage"`
	StageCount uint64     `json:"stage_count"`
	EntryTime  time.Time  `json:"entry_time"`
	ExitTime   *time.Time `json:"exit_time,omitempty"`
	Remark     string     `json:"remark"`
}

// StillPresent reports whether the product has not yet left this stage.
func (s StageDetails) StillPresent() bool {
	return s.ExitTime == nil
}

// ExitLabel renders the exit time for display, avoiding the epoch-origin
// date a naive render of the sentinel would produce.
func (s StageDetails) ExitLabel() string {
	if s.ExitTime == nil {
		return "Still present"
	}
	return s.ExitTime.UTC().Format(time.RFC3339)
}

// Provenance is the full public view of a product returned by the verify
// lookup: the product, its batch, and the ordered stage history.
type Provenance struct {
	Product Product        `json:"product"`
	Batch   Batch          `json:"batch"`
	Stages  []StageDetails `json:"stages"`
}
