package ledger

import (
	"fmt"
	"regexp"
)

// GatewayUnavailableError means no usable endpoint or session exists for the
// requested operation: the RPC URL is unconfigured, the signing key is
// missing, or the node cannot be reached at all.
type GatewayUnavailableError struct {
	Reason string
}

func (e *GatewayUnavailableError) Error() string {
	return "ledger gateway unavailable: " + e.Reason
}

// TransactionRevertedError means the ledger rejected the write. Reason is the
// best human-readable explanation the gateway could extract, in priority
// order: explicit revert reason, structured revert argument, message
// fragment, or "Unknown error".
type TransactionRevertedError struct {
	Reason string
	Cause  error
}

func (e *TransactionRevertedError) Error() string {
	return "transaction reverted: " + e.Reason
}

func (e *TransactionRevertedError) Unwrap() error { return e.Cause }

// EventNotFoundError means the transaction succeeded but the confirming event
// was not in the receipt. That is a contract/client mismatch, not a transient
// failure, and must not be retried.
type EventNotFoundError struct {
	Event  string
	TxHash string
}

func (e *EventNotFoundError) Error() string {
	return fmt.Sprintf("%s event not found in transaction receipt %s", e.Event, e.TxHash)
}

// DecodeError means a ledger response did not match the expected schema:
// a required field was absent or an enum value fell outside the known set.
type DecodeError struct {
	Field  string
	Detail string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Field, e.Detail)
}

// TimeoutError means a ledger round-trip exceeded the gateway deadline.
// Distinct from a revert: the transaction may still land later.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return "ledger operation timed out: " + e.Op
}

// reasonFragment is a last-resort heuristic that pulls a readable fragment
// out of a generic error string, e.g. the X in "err: X (supplied gas ...)".
// It runs only after the structured extraction paths have failed.
var reasonFragment = regexp.MustCompile(`: ([^:(]+?)\s*\(`)

// FragmentReason applies the fragment heuristic to an opaque error string,
// reporting whether anything matched.
func FragmentReason(msg string) (string, bool) {
	if m := reasonFragment.FindStringSubmatch(msg); len(m) == 2 {
		return m[1], true
	}
	return "", false
}

// FallbackReason applies the fragment heuristic to an opaque error string.
// Returns "Unknown error" when nothing matches.
func FallbackReason(msg string) string {
	if reason, ok := FragmentReason(msg); ok {
		return reason
	}
	return "Unknown error"
}
