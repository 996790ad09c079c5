package evm

import (
	"fmt"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"go-teachain-ws/internal/ledger"
)

// decodeLog matches a log's first topic against the contract's event set and
// unpacks the matching variant. Unknown events map to nil: the contract may
// emit more than this client tracks.
func (g *ContractGateway) decodeLog(lg *types.Log) (ledger.Event, error) {
	if len(lg.Topics) == 0 {
		return nil, nil
	}
	ev, err := g.parsed.EventByID(lg.Topics[0])
	if err != nil {
		return nil, nil
	}

	vals, err := g.parsed.Unpack(ev.Name, lg.Data)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", ev.Name, err)
	}

	switch ev.Name {
	case "ProductAdded":
		if len(vals) != 3 {
			return nil, badArity(ev.Name, 3, len(vals))
		}
		return ledger.ProductAdded{
			ProductID: evU64(vals[0]),
			Name:      evStr(vals[1]),
			BatchNo:   evU64(vals[2]),
		}, nil
	case "ProductStageUpdated":
		if len(vals) != 3 {
			return nil, badArity(ev.Name, 3, len(vals))
		}
		return ledger.ProductStageUpdated{
			ProductID: evU64(vals[0]),
			Stage:     evU8(vals[1]),
			Remark:    evStr(vals[2]),
		}, nil
	case "BatchCreated":
		if len(vals) != 2 {
			return nil, badArity(ev.Name, 2, len(vals))
		}
		return ledger.BatchCreated{
			BatchID: evU64(vals[0]),
			Name:    evStr(vals[1]),
		}, nil
	case "UserAdded", "UserRegistered":
		if len(vals) != 4 {
			return nil, badArity(ev.Name, 4, len(vals))
		}
		return ledger.UserRegistered{
			Wallet: evAddr(vals[0]),
			Name:   evStr(vals[1]),
			Role:   evU8(vals[2]),
			Status: evU8(vals[3]),
		}, nil
	case "UserStatusUpdated":
		if len(vals) != 3 {
			return nil, badArity(ev.Name, 3, len(vals))
		}
		return ledger.UserStatusUpdated{
			Wallet:    evAddr(vals[0]),
			OldStatus: evU8(vals[1]),
			NewStatus: evU8(vals[2]),
		}, nil
	}
	return nil, nil
}

func badArity(event string, want, got int) error {
	return fmt.Errorf("event %s: expected %d arguments, got %d", event, want, got)
}

func evU64(v interface{}) uint64 {
	if b, ok := v.(*big.Int); ok {
		return b.Uint64()
	}
	return 0
}

func evU8(v interface{}) uint8 {
	if n, ok := v.(uint8); ok {
		return n
	}
	return 0
}

func evStr(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func evAddr(v interface{}) string {
	if a, ok := v.(ethcommon.Address); ok {
		return a.Hex()
	}
	return ""
}
