package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-teachain-ws/internal/lifecycle"
	"go-teachain-ws/internal/model"
	"go-teachain-ws/internal/ws"
)

type UserHandler struct {
	controller *lifecycle.Controller
	hub        *ws.Hub
	writes     *Inflight
}

func NewUserHandler(controller *lifecycle.Controller, hub *ws.Hub, writes *Inflight) *UserHandler {
	return &UserHandler{controller: controller, hub: hub, writes: writes}
}

// GetUsers lists every registered supply-chain participant
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.controller.AllUsers(c.Context())
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "total": len(users)})
}

// AddUserRequest represents the admin add-user request body
type AddUserRequest struct {
	Wallet string `json:"wallet"`
	Name   string `json:"name"`
	Place  string `json:"place"`
	Role   uint8  `json:"role"`
}

// AddUser registers a participant on behalf of an admin
// POST /api/v1/users
func (h *UserHandler) AddUser(c *fiber.Ctx) error {
	var req AddUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if !h.writes.begin(accountWallet(c)) {
		return guardBusy(c)
	}
	defer h.writes.end(accountWallet(c))

	user, err := h.controller.AddUser(c.Context(), req.Wallet, req.Name, req.Place, model.Role(req.Role))
	if err != nil {
		return renderError(c, err)
	}

	h.hub.Notify("user.registered", user)
	return c.Status(201).JSON(user)
}

// UpdateStatusRequest carries the participant's current status as seen by
// the admin screen plus the requested one, so stale views are rejected
// before any ledger call.
type UpdateStatusRequest struct {
	CurrentStatus uint8 `json:"current_status"`
	Status        uint8 `json:"status"`
	// Blocking is irreversible; the client must set this to proceed.
	ConfirmBlock bool `json:"confirm_block"`
}

// UpdateStatus moves a participant to a new status
// PATCH /api/v1/users/:wallet/status
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	wallet := c.Params("wallet")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	target := model.UserStatus(req.Status)
	if target == model.StatusBlocked && !req.ConfirmBlock {
		return c.Status(400).JSON(fiber.Map{"error": "Blocking is permanent and must be confirmed"})
	}

	if !h.writes.begin(accountWallet(c)) {
		return guardBusy(c)
	}
	defer h.writes.end(accountWallet(c))

	change, err := h.controller.RequestUserStatusChange(c.Context(), wallet, model.UserStatus(req.CurrentStatus), target)
	if err != nil {
		return renderError(c, err)
	}

	h.hub.Notify("user.status_updated", change)
	return c.JSON(change)
}
