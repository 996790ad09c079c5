package ledger

// Receipt is the confirmed result of one ledger write. Events holds only the
// logs emitted by the watched contract in this exact transaction, already
// decoded into typed variants; logs carrying a different transaction hash are
// dropped at the gateway.
type Receipt struct {
	TxHash      string
	BlockNumber uint64
	Events      []Event
}

// Event is the tagged union of contract events this client understands.
// Callers pattern-match for the one variant that confirms their write and
// treat absence as an explicit error instead of assuming success.
type Event interface {
	EventName() string
}

type ProductAdded struct {
	ProductID uint64
	Name      string
	BatchNo   uint64
}

type ProductStageUpdated struct {
	ProductID uint64
	Stage     uint8
	Remark    string
}

type BatchCreated struct {
	BatchID uint64
	Name    string
}

type UserRegistered struct {
	Wallet string
	Name   string
	Role   uint8
	Status uint8
}

type UserStatusUpdated struct {
	Wallet    string
	OldStatus uint8
	NewStatus uint8
}

func (ProductAdded) EventName() string        { return "ProductAdded" }
func (ProductStageUpdated) EventName() string { return "ProductStageUpdated" }
func (BatchCreated) EventName() string        { return "BatchCreated" }
func (UserRegistered) EventName() string      { return "UserRegistered" }
func (UserStatusUpdated) EventName() string   { return "UserStatusUpdated" }

// FindOne returns the single event of type T in the receipt. It reports
// false when the event is absent or appears more than once; either way the
// write cannot be confirmed from this receipt.
func FindOne[T Event](r *Receipt) (T, bool) {
	var found T
	var count int
	for _, ev := range r.Events {
		if typed, ok := ev.(T); ok {
			found = typed
			count++
		}
	}
	return found, count == 1
}
