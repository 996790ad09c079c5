package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"go-teachain-ws/internal/lifecycle"
	"go-teachain-ws/internal/ws"
)

type BatchHandler struct {
	controller *lifecycle.Controller
	hub        *ws.Hub
	writes     *Inflight
}

func NewBatchHandler(controller *lifecycle.Controller, hub *ws.Hub, writes *Inflight) *BatchHandler {
	return &BatchHandler{controller: controller, hub: hub, writes: writes}
}

// CreateBatchRequest represents the create batch request body
type CreateBatchRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateBatch registers a new production batch; the ledger assigns its ID
// POST /api/v1/batches
func (h *BatchHandler) CreateBatch(c *fiber.Ctx) error {
	var req CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if !h.writes.begin(accountWallet(c)) {
		return guardBusy(c)
	}
	defer h.writes.end(accountWallet(c))

	result, err := h.controller.CreateBatch(c.Context(), req.Name, req.Description)
	if err != nil {
		return renderError(c, err)
	}

	h.hub.Notify("batch.created", result)
	return c.Status(201).JSON(result)
}

// GetBatch looks up a batch by number
// GET /api/v1/batches/:no
func (h *BatchHandler) GetBatch(c *fiber.Ctx) error {
	no, err := strconv.ParseUint(c.Params("no"), 10, 64)
	if err != nil || no == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid batch number"})
	}

	batch, err := h.controller.BatchDetails(c.Context(), no)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(batch)
}
