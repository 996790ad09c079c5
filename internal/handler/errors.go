package handler

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"

	"go-teachain-ws/internal/ledger"
	"go-teachain-ws/internal/lifecycle"
)

// renderError maps the typed error taxonomy onto HTTP responses. Validation
// problems come back field by field; everything else becomes a single
// display string with a status that tells the client whether retrying
// manually can help.
func renderError(c *fiber.Ctx, err error) error {
	var validation lifecycle.ValidationErrors
	if errors.As(err, &validation) {
		return c.Status(400).JSON(fiber.Map{
			"error":      validation.Error(),
			"violations": validation,
		})
	}

	var transition *lifecycle.TransitionError
	if errors.As(err, &transition) {
		return c.Status(409).JSON(fiber.Map{"error": transition.Error()})
	}

	var unavailable *ledger.GatewayUnavailableError
	if errors.As(err, &unavailable) {
		return c.Status(503).JSON(fiber.Map{"error": unavailable.Error()})
	}

	var timeout *ledger.TimeoutError
	if errors.As(err, &timeout) {
		return c.Status(504).JSON(fiber.Map{"error": timeout.Error()})
	}

	var reverted *ledger.TransactionRevertedError
	if errors.As(err, &reverted) {
		return c.Status(422).JSON(fiber.Map{"error": reverted.Error()})
	}

	var eventMissing *ledger.EventNotFoundError
	if errors.As(err, &eventMissing) {
		// contract/client mismatch, not transient
		return c.Status(502).JSON(fiber.Map{"error": eventMissing.Error()})
	}

	var decode *ledger.DecodeError
	if errors.As(err, &decode) {
		return c.Status(502).JSON(fiber.Map{"error": decode.Error()})
	}

	if errors.Is(err, lifecycle.ErrProductNotFound) || errors.Is(err, lifecycle.ErrBatchNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}

// Inflight is the cooperative duplicate-write guard: one pending ledger
// write per wallet. A second submission while one is in flight is refused
// instead of queued, mirroring a disabled submit button.
type Inflight struct {
	mu   sync.Mutex
	busy map[string]bool
}

func NewInflight() *Inflight {
	return &Inflight{busy: make(map[string]bool)}
}

func (f *Inflight) begin(wallet string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy[wallet] {
		return false
	}
	f.busy[wallet] = true
	return true
}

func (f *Inflight) end(wallet string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.busy, wallet)
}

func guardBusy(c *fiber.Ctx) error {
	return c.Status(429).JSON(fiber.Map{"error": "Another submission is still pending; wait for it to finish"})
}

func accountWallet(c *fiber.Ctx) string {
	wallet, _ := c.Locals("account_wallet").(string)
	return wallet
}
