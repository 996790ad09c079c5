package evm

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"go-teachain-ws/internal/ledger"
)

const revertedPrefix = "execution reverted"

// asReverted classifies a write error. Revert-shaped errors become
// TransactionRevertedError with the best reason available, in priority
// order: ABI-encoded revert data, the node's "execution reverted: X"
// message, then the string-fragment heuristic. Anything else passes through
// untouched.
func (g *ContractGateway) asReverted(err error) error {
	if err == nil {
		return nil
	}

	// structured revert data carried on the RPC error
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if reason := unpackRevertData(dataErr.ErrorData()); reason != "" {
			return &ledger.TransactionRevertedError{Reason: reason, Cause: err}
		}
	}

	msg := err.Error()
	if idx := strings.Index(msg, revertedPrefix); idx >= 0 {
		reason := strings.TrimSpace(strings.TrimPrefix(msg[idx+len(revertedPrefix):], ":"))
		if reason == "" {
			reason = "Unknown error"
		}
		return &ledger.TransactionRevertedError{Reason: reason, Cause: err}
	}

	if strings.Contains(msg, "revert") {
		return &ledger.TransactionRevertedError{Reason: ledger.FallbackReason(msg), Cause: err}
	}

	// Last resort: some node errors never say "revert" but still carry the
	// contract's require message as a fragment, e.g. the gas-estimation
	// shape "err: User is not active (supplied gas ...)".
	if reason, ok := ledger.FragmentReason(msg); ok {
		return &ledger.TransactionRevertedError{Reason: reason, Cause: err}
	}

	return err
}

// unpackRevertData decodes the ABI-encoded Error(string) payload a node
// attaches to revert responses.
func unpackRevertData(data interface{}) string {
	hexStr, ok := data.(string)
	if !ok {
		return ""
	}
	raw, err := hexutil.Decode(hexStr)
	if err != nil {
		return ""
	}
	reason, err := abi.UnpackRevert(raw)
	if err != nil {
		return ""
	}
	return reason
}
