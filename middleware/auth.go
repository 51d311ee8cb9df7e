package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"seat-booking/models/intern"
	"seat-booking/types"
	"seat-booking/utils"
)

// Locals keys set by the auth middleware for downstream handlers.
const (
	LocalInternID = "internID"
	LocalRole     = "role"
)

// IsAuthenticated checks for a valid bearer token and, when requiredRole is
// non-empty, that the token's role claim matches. Admin routes pass
// intern.RoleAdmin; routes that only need an identity pass "".
func IsAuthenticated(secret, requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Authorization token missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid authorization header format",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := utils.ParseSessionToken(secret, tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		internID, err := claims.SubjectID()
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid token subject",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if requiredRole != "" && claims.Role != requiredRole {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: "Insufficient permissions",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(LocalInternID, internID)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RequireAuthentication only requires a valid token, any role.
func RequireAuthentication(secret string) fiber.Handler {
	return IsAuthenticated(secret, "")
}

// RequireAdmin requires a valid token carrying the admin role claim.
func RequireAdmin(secret string) fiber.Handler {
	return IsAuthenticated(secret, intern.RoleAdmin)
}

// InternIDFromContext returns the authenticated intern's row ID.
func InternIDFromContext(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalInternID).(uint)
	return id, ok
}

// IsAdminContext reports whether the authenticated caller is an admin.
func IsAdminContext(c *fiber.Ctx) bool {
	role, ok := c.Locals(LocalRole).(string)
	return ok && role == intern.RoleAdmin
}
