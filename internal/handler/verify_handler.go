package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-teachain-ws/internal/lifecycle"
	"go-teachain-ws/internal/model"
)

// VerifyHandler serves the public, unauthenticated provenance lookup used
// by QR-code scans on retail packaging.
type VerifyHandler struct {
	controller *lifecycle.Controller
}

func NewVerifyHandler(controller *lifecycle.Controller) *VerifyHandler {
	return &VerifyHandler{controller: controller}
}

// GetProvenance returns the product, its batch, and the full ordered stage
// history
// GET /api/v1/verify/:id
func (h *VerifyHandler) GetProvenance(c *fiber.Ctx) error {
	id, ok := parseProductID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	provenance, err := h.controller.FetchProductDetails(c.Context(), id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(provenance)
}

// GetOptions returns the role, status, and stage value/label lists so
// clients never hardcode enum values
// GET /api/v1/meta/options
func (h *VerifyHandler) GetOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"roles":    model.RoleOptions,
		"statuses": model.UserStatusOptions,
		"stages":   model.StageOptions,
	})
}
