package middleware

import (
	"strings"

	"go-teachain-ws/internal/repository"
	"go-teachain-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the JWT, enforces the single-session token version
// against the database, and sets account info in the request context.
func RequireAuth(accountRepo repository.AccountRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		account, err := accountRepo.FindByID(claims.AccountID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Account not found"})
		}

		if account.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		if !account.IsActive {
			return c.Status(403).JSON(fiber.Map{"error": "Account is inactive"})
		}

		c.Locals("account_id", claims.AccountID.String())
		c.Locals("account_email", claims.Email)
		c.Locals("account_name", claims.Name)
		c.Locals("account_wallet", account.Wallet)
		c.Locals("account_role", account.RoleLabel)

		return c.Next()
	}
}

// RequireRole restricts a route to accounts whose mirrored chain role is one
// of the given labels.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("account_role").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of roles: " + strings.Join(roles, ", "),
		})
	}
}
