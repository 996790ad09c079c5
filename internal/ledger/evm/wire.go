package evm

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"go-teachain-ws/internal/ledger"
)

// Wire structs mirror the contract's tuple layouts for abi.ConvertType. The
// raw() converters flatten big.Int and address types into the ledger-native
// integer/string records the mapper consumes.

type wireUser struct {
	Wallet ethcommon.Address
	Name   string
	Place  string
	Role   uint8
	Status uint8
}

type wireBatch struct {
	BatchId     *big.Int
	Name        string
	Description string
}

type wireProduct struct {
	ProductId        *big.Int
	Name             string
	ProductType      string
	Description      string
	BatchNo          *big.Int
	Stage            uint8
	ManufacturedDate *big.Int
	ExpiryDate       *big.Int
	Price            *big.Int
}

type wireStageEntry struct {
	User       wireUser
	Stage      uint8
	StageCount *big.Int
	EntryTime  *big.Int
	ExitTime   *big.Int
	Remark     string
}

func u64(v *big.Int) uint64 {
	if v == nil {
		return 0
	}
	return v.Uint64()
}

func (w wireUser) raw() ledger.RawUser {
	wallet := ""
	if w.Wallet != (ethcommon.Address{}) {
		wallet = w.Wallet.Hex()
	}
	return ledger.RawUser{
		Wallet: wallet,
		Name:   w.Name,
		Place:  w.Place,
		Role:   w.Role,
		Status: w.Status,
	}
}

func (w wireBatch) raw() ledger.RawBatch {
	return ledger.RawBatch{
		BatchID:     u64(w.BatchId),
		Name:        w.Name,
		Description: w.Description,
	}
}

func (w wireProduct) raw() ledger.RawProduct {
	return ledger.RawProduct{
		ProductID:        u64(w.ProductId),
		Name:             w.Name,
		ProductType:      w.ProductType,
		Description:      w.Description,
		BatchNo:          u64(w.BatchNo),
		Stage:            w.Stage,
		ManufacturedDate: u64(w.ManufacturedDate),
		ExpiryDate:       u64(w.ExpiryDate),
		Price:            u64(w.Price),
	}
}

func (w wireStageEntry) raw() ledger.RawStageEntry {
	return ledger.RawStageEntry{
		User:       w.User.raw(),
		Stage:      w.Stage,
		StageCount: u64(w.StageCount),
		EntryTime:  u64(w.EntryTime),
		ExitTime:   u64(w.ExitTime),
		Remark:     w.Remark,
	}
}
