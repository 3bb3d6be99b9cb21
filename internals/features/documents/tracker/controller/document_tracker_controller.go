// file: internals/features/documents/tracker/controller/document_tracker_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "docpulse_backend/internals/features/documents/tracker/dto"
	model "docpulse_backend/internals/features/documents/tracker/model"
	service "docpulse_backend/internals/features/documents/tracker/service"
	helper "docpulse_backend/internals/helpers"
	helperAuth "docpulse_backend/internals/helpers/auth"
	helperOSS "docpulse_backend/internals/helpers/oss"
)

type DocumentTrackerController struct {
	DB        *gorm.DB
	Service   *service.LifecycleService
	Validator *validator.Validate
	Blob      *helperOSS.OSSService // nil kalau ENV OSS tidak diset
}

func NewDocumentTrackerController(db *gorm.DB, blob *helperOSS.OSSService) *DocumentTrackerController {
	return &DocumentTrackerController{
		DB:        db,
		Service:   service.NewLifecycleService(db),
		Validator: validator.New(),
		Blob:      blob,
	}
}

// guardTenant: dokumen harus milik company yang sedang diakses user
// (system manager bebas lintas tenant).
func (ctl *DocumentTrackerController) guardTenant(c *fiber.Ctx, companyID uuid.UUID) error {
	if helperAuth.IsSystemManager(c) {
		return nil
	}
	mid, err := helperAuth.ResolveCompanyID(c)
	if err != nil {
		return err
	}
	if mid != companyID {
		return fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengakses dokumen tenant lain")
	}
	return nil
}

// ========== Create (draft) ==========
func (ctl *DocumentTrackerController) Create(c *fiber.Ctx) error {
	var req dto.CreateDocumentTrackerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctl.guardTenant(c, req.DocumentTrackerCompanyID); err != nil {
		return helper.FromFiberError(c, err)
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.Service.Create(c.UserContext(), m); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Dokumen dibuat", dto.FromModelDocumentTracker(m))
}

// ========== Detail ==========
func (ctl *DocumentTrackerController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "document_tracker_id invalid")
	}

	doc, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.guardTenant(c, doc.DocumentTrackerCompanyID); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "OK", dto.FromModelDocumentTracker(doc))
}

// ========== List (tenant-scoped + filter) ==========
func (ctl *DocumentTrackerController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.ResolveCompanyID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := model.ScopeAlive(ctl.DB.Model(&model.DocumentTracker{})).
		Scopes(model.ScopeByCompany(companyID))

	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("document_tracker_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("lifecycle_state")); v != "" {
		q = q.Where("document_tracker_lifecycle_state = ?", v)
	}
	if v := strings.TrimSpace(c.Query("category")); v != "" {
		q = q.Where("document_tracker_category = ?", v)
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("document_tracker_name ILIKE ?", "%"+v+"%")
	}
	if v := strings.TrimSpace(c.Query("expiring")); v == "true" {
		q = q.Where("document_tracker_flag_expiring_soon = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.DocumentTracker
	if err := q.Order("document_tracker_expiry_date ASC NULLS LAST").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	items := make([]dto.DocumentTrackerResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.FromModelDocumentTracker(&rows[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      items,
		"pagination": helper.BuildPagination(p, total, len(items)),
	})
}

// ========== Patch (draft only; field locked setelah submit) ==========
func (ctl *DocumentTrackerController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "document_tracker_id invalid")
	}

	doc, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.guardTenant(c, doc.DocumentTrackerCompanyID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchDocumentTrackerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := req.ApplyTo(doc); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	// Save jalankan guard post-submit: patch field terkunci akan ditolak di sana
	if err := ctl.Service.Save(c.UserContext(), doc, service.SaveOpts{}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Dokumen diperbarui", dto.FromModelDocumentTracker(doc))
}

// ========== Submit ==========
func (ctl *DocumentTrackerController) Submit(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "document_tracker_id invalid")
	}

	doc, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.guardTenant(c, doc.DocumentTrackerCompanyID); err != nil {
		return helper.FromFiberError(c, err)
	}

	submitted, err := ctl.Service.Submit(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Dokumen di-submit", dto.FromModelDocumentTracker(submitted))
}

// ========== Delete (soft delete, draft only) ==========
func (ctl *DocumentTrackerController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "document_tracker_id invalid")
	}

	doc, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.guardTenant(c, doc.DocumentTrackerCompanyID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.Service.SoftDelete(c.UserContext(), id); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Dokumen dihapus", fiber.Map{"document_tracker_id": id})
}

// ========== Chain (root + seluruh rantai renewal) ==========
func (ctl *DocumentTrackerController) GetChain(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "document_tracker_id invalid")
	}

	doc, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.guardTenant(c, doc.DocumentTrackerCompanyID); err != nil {
		return helper.FromFiberError(c, err)
	}

	root, err := ctl.Service.GetRootDocument(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	chain, err := ctl.Service.GetChainDocuments(c.UserContext(), root.DocumentTrackerID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	items := make([]dto.DocumentTrackerResponse, 0, len(chain))
	for i := range chain {
		items = append(items, dto.FromModelDocumentTracker(&chain[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"root_id": root.DocumentTrackerID,
		"chain":   items,
	})
}

// ========== Upload lampiran (primary / supplementary) ==========
func (ctl *DocumentTrackerController) UploadAttachment(c *fiber.Ctx) error {
	if ctl.Blob == nil {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "document_tracker_id invalid")
	}

	doc, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.guardTenant(c, doc.DocumentTrackerCompanyID); err != nil {
		return helper.FromFiberError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File tidak ditemukan di form field 'file'")
	}

	slot := strings.TrimSpace(c.FormValue("slot", "supplementary"))

	ctx, cancel := helperOSS.TimeoutCtx(c.UserContext())
	defer cancel()

	url, err := ctl.Blob.UploadDocumentFile(ctx, doc.DocumentTrackerCompanyID, slot, fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if slot == "primary" {
		doc.DocumentTrackerPrimaryDocumentURL = &url
		if err := ctl.Service.Save(c.UserContext(), doc, service.SaveOpts{}); err != nil {
			return helper.FromFiberError(c, err)
		}
		return helper.Success(c, "Primary document diupload", fiber.Map{"file_url": url})
	}

	attType := strings.TrimSpace(c.FormValue("attachment_type", model.AttachmentTypeSupporting))
	desc := strings.TrimSpace(c.FormValue("description"))
	var descPtr *string
	if desc != "" {
		descPtr = &desc
	}

	att := model.DocumentTrackerAttachment{
		DocumentTrackerAttachmentType:    attType,
		DocumentTrackerAttachmentFileURL: url,
		DocumentTrackerAttachmentDesc:    descPtr,
	}
	if err := ctl.Service.AddAttachment(c.UserContext(), doc.DocumentTrackerID, &att); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lampiran diupload", fiber.Map{
		"document_tracker_attachment_id": att.DocumentTrackerAttachmentID,
		"file_url":                       url,
	})
}
