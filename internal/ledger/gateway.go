package ledger

import "context"

// Raw records carry ledger-native encodings: enums and timestamps are plain
// integers exactly as the contract returns them. The mapper package turns
// them into domain types; nothing below this boundary imports the model.

type RawUser struct {
	Wallet string
	Name   string
	Place  string
	Role   uint8
	Status uint8
}

type RawBatch struct {
	BatchID     uint64
	Name        string
	Description string
}

type RawProduct struct {
	ProductID        uint64
	Name             string
	ProductType      string
	Description      string
	BatchNo          uint64
	Stage            uint8
	ManufacturedDate uint64 // seconds since epoch
	ExpiryDate       uint64 // seconds since epoch
	Price            uint64
}

// RawStageEntry is one stage-history record. ExitTime zero means the product
// is still at the stage; the mapper translates that sentinel.
type RawStageEntry struct {
	User       RawUser
	Stage      uint8
	StageCount uint64
	EntryTime  uint64
	ExitTime   uint64
	Remark     string
}

// ProductSubmission is the validated write payload for addProduct.
type ProductSubmission struct {
	Name             string
	ProductType      string
	Description      string
	BatchNo          uint64
	ManufacturedDate uint64
	ExpiryDate       uint64
	Price            uint64
}

// Reader is the read-only contract surface. It works against a plain RPC
// endpoint and needs no signing key, so the public verify path can run
// without an authenticated session.
type Reader interface {
	ProductDetails(ctx context.Context, productID uint64) (RawProduct, RawBatch, []RawStageEntry, error)
	BatchDetails(ctx context.Context, batchNo uint64) (RawBatch, error)
}

// Writer is the state-changing contract surface. Every method submits a
// transaction, waits for its receipt, and returns the receipt with the
// decoded events that belong to that transaction. Writes are never retried
// here; a failure is surfaced once and the caller decides what to do.
type Writer interface {
	AddProduct(ctx context.Context, in ProductSubmission) (*Receipt, error)
	ProductCheckIn(ctx context.Context, productID uint64, stage uint8, remark string) (*Receipt, error)
	ProductStageUpdate(ctx context.Context, productID uint64, stage uint8, remark string) (*Receipt, error)
	CreateBatch(ctx context.Context, name, description string) (*Receipt, error)
	AddUser(ctx context.Context, wallet, name, place string, role uint8) (*Receipt, error)
	RegisterUser(ctx context.Context, name, place string, role uint8) (*Receipt, error)
	UpdateUserStatus(ctx context.Context, wallet string, status uint8) (*Receipt, error)

	ProductsByUser(ctx context.Context) ([]RawProduct, error)
	AllUsers(ctx context.Context) ([]RawUser, error)

	// Caller is the wallet address the gateway signs with.
	Caller() string
}

// Gateway is the full contract surface used by authenticated operations.
type Gateway interface {
	Reader
	Writer
}
