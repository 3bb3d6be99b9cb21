// file: internals/helpers/auth/claims.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docpulse_backend/internals/constants"
)

/* ============================================
   Locals Keys (diisi oleh middleware AuthJWT)
   ============================================ */

const (
	LocUserID          = "user_id"           // string UUID
	LocUserName        = "user_name"         // string
	LocRolesGlobal     = "roles_global"      // []string
	LocActiveCompanyID = "active_company_id" // string UUID
)

/* ============================================
   Readers
   ============================================ */

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing user id")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: invalid user id")
	}
	return id, nil
}

func GetUserName(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocUserName).(string); ok {
		return s
	}
	return ""
}

// GetRolesGlobal kembalikan role dari claims; toleran terhadap []string / []any.
func GetRolesGlobal(c *fiber.Ctx) []string {
	switch v := c.Locals(LocRolesGlobal).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func HasRole(c *fiber.Ctx, role string) bool {
	for _, r := range GetRolesGlobal(c) {
		if r == role {
			return true
		}
	}
	return false
}

func HasAnyRole(c *fiber.Ctx, roles ...string) bool {
	for _, r := range roles {
		if HasRole(c, r) {
			return true
		}
	}
	return false
}

func IsSystemManager(c *fiber.Ctx) bool { return HasRole(c, constants.RoleSystemManager) }
func IsMasterManager(c *fiber.Ctx) bool { return HasRole(c, constants.RoleMasterManager) }
func IsCompliance(c *fiber.Ctx) bool    { return HasRole(c, constants.RoleCompliance) }

/* ============================================
   Company (tenant) context
   ============================================ */

// ResolveCompanyID ambil tenant scope dari (urut prioritas):
// 1) path param :company_id, 2) query ?company_id=, 3) claim active_company_id.
func ResolveCompanyID(c *fiber.Ctx) (uuid.UUID, error) {
	candidates := []string{
		strings.TrimSpace(c.Params("company_id")),
		strings.TrimSpace(c.Query("company_id")),
	}
	if s, ok := c.Locals(LocActiveCompanyID).(string); ok {
		candidates = append(candidates, strings.TrimSpace(s))
	}
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		id, err := uuid.Parse(cand)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "company_id invalid")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Company context tidak ditemukan")
}
