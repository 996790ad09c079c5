package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"go-teachain-ws/internal/repository"
)

// SubmissionHandler exposes the local audit trail of ledger writes.
type SubmissionHandler struct {
	submissionRepo repository.SubmissionRepository
}

func NewSubmissionHandler(submissionRepo repository.SubmissionRepository) *SubmissionHandler {
	return &SubmissionHandler{submissionRepo: submissionRepo}
}

func parseLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 500 {
		return 50
	}
	return limit
}

// GetRecent lists the latest ledger writes issued by this service
// GET /api/v1/submissions
func (h *SubmissionHandler) GetRecent(c *fiber.Ctx) error {
	subs, err := h.submissionRepo.FindRecent(parseLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}
	return c.JSON(fiber.Map{"submissions": subs, "total": len(subs)})
}

// GetByWallet lists the ledger writes recorded for one signing wallet
// GET /api/v1/submissions/:wallet
func (h *SubmissionHandler) GetByWallet(c *fiber.Ctx) error {
	subs, err := h.submissionRepo.FindByWallet(c.Params("wallet"), parseLimit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}
	return c.JSON(fiber.Map{"submissions": subs, "total": len(subs)})
}
