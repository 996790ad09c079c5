package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-teachain-ws/internal/lifecycle"
	"go-teachain-ws/internal/model"
	"go-teachain-ws/internal/service"
	"go-teachain-ws/pkg/validator"
)

type AuthHandler struct {
	authService service.AuthService
	controller  *lifecycle.Controller
	writes      *Inflight
}

func NewAuthHandler(authService service.AuthService, controller *lifecycle.Controller, writes *Inflight) *AuthHandler {
	return &AuthHandler{authService: authService, controller: controller, writes: writes}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles account authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// Register creates a dashboard account and registers the matching
// supply-chain participant on the ledger in one step. The participant
// starts Pending until an admin activates it.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if fields := validator.ValidateStruct(req); len(fields) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	role, ok := model.RoleByLabel(req.Role)
	if !ok || role == model.RoleAdmin {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid role selected"})
	}

	// Uniqueness is checked before the ledger write so a conflict never
	// leaves an on-chain participant without a login.
	if err := h.authService.CheckAvailability(req.Email, req.Wallet); err != nil {
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}

	if !h.writes.begin(req.Wallet) {
		return guardBusy(c)
	}
	defer h.writes.end(req.Wallet)

	user, err := h.controller.AddUser(c.Context(), req.Wallet, req.Name, req.Place, role)
	if err != nil {
		return renderError(c, err)
	}

	account, err := h.authService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrWalletTaken) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create account"})
	}

	return c.Status(201).JSON(fiber.Map{
		"account":     account.ToResponse(),
		"participant": user,
	})
}

// ValidateTokenRequest represents the validate token request body
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateToken handles JWT token validation
// POST /api/v1/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Token == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Token is required"})
	}

	response, err := h.authService.ValidateToken(req.Token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// Logout invalidates the current session token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	accountID := c.Locals("account_id")
	if accountID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := uuid.Parse(accountID.(string))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	if err := h.authService.Logout(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to log out"})
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	accountID := c.Locals("account_id")
	if accountID == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := uuid.Parse(accountID.(string))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	if err := h.authService.Heartbeat(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update heartbeat"})
	}

	return c.JSON(fiber.Map{"message": "Heartbeat received", "status": "online"})
}
