package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackReason(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{
			"gas estimation revert",
			"err: Product is not at your stage (supplied gas 30000000)",
			"Product is not at your stage",
		},
		{
			"nested error chain",
			"failed to estimate gas: execution error: Only admin can update status (call reverted)",
			"Only admin can update status",
		},
		{"no parenthesised fragment", "execution reverted", "Unknown error"},
		{"empty message", "", "Unknown error"},
		{"no colon", "something went wrong (badly)", "Unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackReason(tt.msg))
		})
	}
}

func TestTransactionRevertedErrorUnwrap(t *testing.T) {
	cause := errors.New("rpc: execution reverted")
	err := &TransactionRevertedError{Reason: "User is not active", Cause: cause}

	assert.Equal(t, "transaction reverted: User is not active", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t,
		"ledger gateway unavailable: RPC URL not configured",
		(&GatewayUnavailableError{Reason: "RPC URL not configured"}).Error())
	assert.Equal(t,
		"ProductAdded event not found in transaction receipt 0xabc",
		(&EventNotFoundError{Event: "ProductAdded", TxHash: "0xabc"}).Error())
	assert.Equal(t,
		"decode user.role: unknown value 99",
		(&DecodeError{Field: "user.role", Detail: "unknown value 99"}).Error())
	assert.Equal(t,
		"ledger operation timed out: addProduct",
		(&TimeoutError{Op: "addProduct"}).Error())
}
