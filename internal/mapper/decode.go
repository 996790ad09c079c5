package mapper

import (
	"fmt"
	"time"

	"go-teachain-ws/internal/ledger"
	"go-teachain-ws/internal/model"
)

// The decoders turn raw ledger records into domain types. They are pure: any
// ledger interaction happens before the raw record reaches this package.
//
// List decoding policy: a single undecodable item does not fail the whole
// list. Decoders return the items that survived plus the per-item errors, and
// the caller logs them. (The alternative, aborting the fetch, would let one
// corrupt record blank an entire dashboard.)

// DecodeUser converts a raw user record, rejecting unknown role or status
// values.
func DecodeUser(raw ledger.RawUser) (model.User, error) {
	role := model.Role(raw.Role)
	if !role.Valid() {
		return model.User{}, &ledger.DecodeError{Field: "user.role", Detail: fmt.Sprintf("unknown value %d", raw.Role)}
	}
	status := model.UserStatus(raw.Status)
	if !status.Valid() {
		return model.User{}, &ledger.DecodeError{Field: "user.status", Detail: fmt.Sprintf("unknown value %d", raw.Status)}
	}
	if raw.Wallet == "" {
		return model.User{}, &ledger.DecodeError{Field: "user.wallet", Detail: "missing"}
	}
	return model.User{
		Wallet: raw.Wallet,
		Name:   raw.Name,
		Place:  raw.Place,
		Role:   role,
		Status: status,
	}, nil
}

// DecodeBatch converts a raw batch record. A zero batch ID means the ledger
// returned an empty slot rather than a real batch.
func DecodeBatch(raw ledger.RawBatch) (model.Batch, error) {
	if raw.BatchID == 0 {
		return model.Batch{}, &ledger.DecodeError{Field: "batch.batchId", Detail: "missing"}
	}
	return model.Batch{
		BatchID:     raw.BatchID,
		Name:        raw.Name,
		Description: raw.Description,
	}, nil
}

// DecodeProduct converts a raw product record: integer stage to the enum,
// unix-second timestamps to times, with unknown stages rejected.
func DecodeProduct(raw ledger.RawProduct) (model.Product, error) {
	if raw.ProductID == 0 {
		return model.Product{}, &ledger.DecodeError{Field: "product.productId", Detail: "missing"}
	}
	stage := model.Stage(raw.Stage)
	if !stage.Valid() {
		return model.Product{}, &ledger.DecodeError{Field: "product.stage", Detail: fmt.Sprintf("unknown value %d", raw.Stage)}
	}
	return model.Product{
		ProductID:        raw.ProductID,
		Name:             raw.Name,
		ProductType:      raw.ProductType,
		Description:      raw.Description,
		BatchNo:          raw.BatchNo,
		Stage:            stage,
		ManufacturedDate: time.Unix(int64(raw.ManufacturedDate), 0).UTC(),
		ExpiryDate:       time.Unix(int64(raw.ExpiryDate), 0).UTC(),
		Price:            raw.Price,
	}, nil
}

// DecodeProducts converts a list, skipping undecodable items and reporting
// them separately.
func DecodeProducts(raws []ledger.RawProduct) ([]model.Product, []error) {
	products := make([]model.Product, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		p, err := DecodeProduct(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("product %d of %d: %w", i+1, len(raws), err))
			continue
		}
		products = append(products, p)
	}
	return products, errs
}

// DecodeUsers converts a user list with the same skip-and-report policy.
func DecodeUsers(raws []ledger.RawUser) ([]model.User, []error) {
	users := make([]model.User, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		u, err := DecodeUser(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("user %d of %d: %w", i+1, len(raws), err))
			continue
		}
		users = append(users, u)
	}
	return users, errs
}

// DecodeStageHistory converts the stage-history sequence, preserving ledger
// order. A zero exitTime is the ledger's "still here" sentinel and decodes to
// a nil ExitTime, never to a 1970 date.
func DecodeStageHistory(raws []ledger.RawStageEntry) ([]model.StageDetails, []error) {
	entries := make([]model.StageDetails, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		stage := model.Stage(raw.Stage)
		if !stage.Valid() {
			errs = append(errs, fmt.Errorf("stage entry %d of %d: %w", i+1, len(raws),
				&ledger.DecodeError{Field: "stage", Detail: fmt.Sprintf("unknown value %d", raw.Stage)}))
			continue
		}
		user, err := DecodeUser(raw.User)
		if err != nil {
			errs = append(errs, fmt.Errorf("stage entry %d of %d: %w", i+1, len(raws), err))
			continue
		}
		entry := model.StageDetails{
			User:       user,
			Stage:      stage,
			StageCount: raw.StageCount,
			EntryTime:  time.Unix(int64(raw.EntryTime), 0).UTC(),
			Remark:     raw.Remark,
		}
		if raw.ExitTime != 0 {
			t := time.Unix(int64(raw.ExitTime), 0).UTC()
			entry.ExitTime = &t
		}
		entries = append(entries, entry)
	}
	return entries, errs
}

// EncodeProduct converts a domain product back into its wire record. Used by
// tests and by the submission path when echoing a decoded view.
func EncodeProduct(p model.Product) ledger.RawProduct {
	return ledger.RawProduct{
		ProductID:        p.ProductID,
		Name:             p.Name,
		ProductType:      p.ProductType,
		Description:      p.Description,
		BatchNo:          p.BatchNo,
		Stage:            uint8(p.Stage),
		ManufacturedDate: uint64(p.ManufacturedDate.Unix()),
		ExpiryDate:       uint64(p.ExpiryDate.Unix()),
		Price:            p.Price,
	}
}
