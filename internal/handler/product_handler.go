package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"go-teachain-ws/internal/lifecycle"
	"go-teachain-ws/internal/mapper"
	"go-teachain-ws/internal/model"
	"go-teachain-ws/internal/ws"
)

type ProductHandler struct {
	controller *lifecycle.Controller
	hub        *ws.Hub
	writes     *Inflight
}

func NewProductHandler(controller *lifecycle.Controller, hub *ws.Hub, writes *Inflight) *ProductHandler {
	return &ProductHandler{controller: controller, hub: hub, writes: writes}
}

func parseProductID(c *fiber.Ctx) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// GetProducts lists the products currently held by the service wallet
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.controller.ProductsByUser(c.Context())
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"products": products, "total": len(products)})
}

// CreateProduct submits a new product to the ledger
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req mapper.NewProductInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if !h.writes.begin(accountWallet(c)) {
		return guardBusy(c)
	}
	defer h.writes.end(accountWallet(c))

	result, err := h.controller.CreateProduct(c.Context(), req)
	if err != nil {
		return renderError(c, err)
	}

	h.hub.Notify("product.added", result)
	return c.Status(201).JSON(result)
}

// TransitionRequest represents a stage-change request body. CurrentStage is
// the stage shown to the operator; a mismatch with a fresher view fails the
// transition check locally.
type TransitionRequest struct {
	CurrentStage uint8  `json:"current_stage"`
	Stage        uint8  `json:"stage"`
	Remark       string `json:"remark"`
}

func (h *ProductHandler) transition(c *fiber.Ctx, target *uint8, policy mapper.RemarkPolicy, event string) error {
	id, ok := parseProductID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if target != nil {
		req.Stage = *target
	}

	if !h.writes.begin(accountWallet(c)) {
		return guardBusy(c)
	}
	defer h.writes.end(accountWallet(c))

	result, err := h.controller.RequestProductTransition(
		c.Context(), id, model.Stage(req.CurrentStage), model.Stage(req.Stage), req.Remark, policy)
	if err != nil {
		return renderError(c, err)
	}

	h.hub.Notify(event, result)
	return c.JSON(result)
}

// CheckIn advances a product to the next stage with an optional remark
// POST /api/v1/products/:id/check-in
func (h *ProductHandler) CheckIn(c *fiber.Ctx) error {
	return h.transition(c, nil, mapper.RemarkOptional, "product.checked_in")
}

// UpdateStage moves a product to any reachable stage with a mandatory remark
// POST /api/v1/products/:id/stage
func (h *ProductHandler) UpdateStage(c *fiber.Ctx) error {
	return h.transition(c, nil, mapper.RemarkRequired, "product.stage_updated")
}

// MarkLost reports a product lost; the remark must explain the loss
// POST /api/v1/products/:id/lost
func (h *ProductHandler) MarkLost(c *fiber.Ctx) error {
	lost := uint8(model.StageLost)
	return h.transition(c, &lost, mapper.RemarkRequired, "product.lost")
}

// MarkSold records the final sale of a product; the remark must describe the
// sale
// POST /api/v1/products/:id/sold
func (h *ProductHandler) MarkSold(c *fiber.Ctx) error {
	sold := uint8(model.StageSold)
	return h.transition(c, &sold, mapper.RemarkRequired, "product.sold")
}
