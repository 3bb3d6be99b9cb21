// file: internals/features/documents/tracker/controller/document_action_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "docpulse_backend/internals/features/documents/tracker/dto"
	service "docpulse_backend/internals/features/documents/tracker/service"
	helper "docpulse_backend/internals/helpers"
	helperAuth "docpulse_backend/internals/helpers/auth"
)

// DocumentActionController: endpoint aksi lifecycle (renew, revoke, dsb).
// Dipisah dari CRUD biar route guard-nya bisa beda (compliance ke atas).
type DocumentActionController struct {
	DB      *gorm.DB
	Service *service.LifecycleService
}

func NewDocumentActionController(db *gorm.DB) *DocumentActionController {
	return &DocumentActionController{DB: db, Service: service.NewLifecycleService(db)}
}

// resolveAndGuard: ambil target dari path/body (payload lama masih didukung),
// lalu cek tenant.
func (ctl *DocumentActionController) resolveAndGuard(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := dto.ResolveActionTarget(c)
	if err != nil {
		return uuid.Nil, err
	}

	doc, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return uuid.Nil, err
	}
	if !helperAuth.IsSystemManager(c) {
		mid, err := helperAuth.ResolveCompanyID(c)
		if err != nil {
			return uuid.Nil, err
		}
		if mid != doc.DocumentTrackerCompanyID {
			return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengakses dokumen tenant lain")
		}
	}
	return id, nil
}

// POST /:id/renew → buat draft pengganti, dokumen asal tidak berubah
func (ctl *DocumentActionController) Renew(c *fiber.Ctx) error {
	id, err := ctl.resolveAndGuard(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	newID, err := ctl.Service.Renew(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Draft perpanjangan dibuat", fiber.Map{
		"document_tracker_id":     newID,
		"replaces_document_id":    id,
		"document_tracker_status": "Draft",
	})
}

// POST /:id/mark-renewal-in-progress
func (ctl *DocumentActionController) MarkRenewalInProgress(c *fiber.Ctx) error {
	id, err := ctl.resolveAndGuard(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.Service.MarkRenewalInProgress(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Status diubah ke Renewal In Progress", fiber.Map{"document_tracker_id": id})
}

// POST /:id/revert-renewal-status
func (ctl *DocumentActionController) RevertRenewalStatus(c *fiber.Ctx) error {
	id, err := ctl.resolveAndGuard(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.Service.RevertRenewalStatus(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Status dikembalikan sesuai tanggal expiry", fiber.Map{"document_tracker_id": id})
}

// POST /:id/revoke-or-cancel
// Active → Revoked (semua role aksi). Selain itu jatuh ke cancel yang
// role-gated di service (master/system manager saja).
func (ctl *DocumentActionController) RevokeOrCancel(c *fiber.Ctx) error {
	id, err := ctl.resolveAndGuard(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	roles := helperAuth.GetRolesGlobal(c)
	if err := ctl.Service.RevokeOrCancel(c.UserContext(), id, roles); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Dokumen di-revoke / dibatalkan", fiber.Map{"document_tracker_id": id})
}

// PATCH /:id/lifecycle-state  body: {"lifecycle_state":"Historical"}
func (ctl *DocumentActionController) UpdateLifecycleState(c *fiber.Ctx) error {
	id, err := ctl.resolveAndGuard(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body struct {
		LifecycleState string `json:"lifecycle_state"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	state := strings.TrimSpace(body.LifecycleState)
	if state == "" {
		return helper.Error(c, fiber.StatusBadRequest, "lifecycle_state wajib diisi")
	}

	updated, err := ctl.Service.UpdateLifecycleState(c.UserContext(), id, state)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Lifecycle state diperbarui", fiber.Map{
		"document_tracker_id":              updated,
		"document_tracker_lifecycle_state": state,
	})
}

// PATCH /:id/status  body: {"status":"Revoked"}
func (ctl *DocumentActionController) UpdateStatus(c *fiber.Ctx) error {
	id, err := ctl.resolveAndGuard(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	status := strings.TrimSpace(body.Status)
	if status == "" {
		return helper.Error(c, fiber.StatusBadRequest, "status wajib diisi")
	}

	updated, err := ctl.Service.UpdateStatus(c.UserContext(), id, status)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Status diperbarui", fiber.Map{
		"document_tracker_id":     updated,
		"document_tracker_status": status,
	})
}
