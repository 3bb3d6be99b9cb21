// file: internals/features/companies/controller/company_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "docpulse_backend/internals/features/companies/dto"
	model "docpulse_backend/internals/features/companies/model"
	helper "docpulse_backend/internals/helpers"
)

type CompanyController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCompanyController(db *gorm.DB) *CompanyController {
	return &CompanyController{
		DB:        db,
		Validator: validator.New(),
	}
}

// ========== Create ==========
func (ctl *CompanyController) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.Error(c, fiber.StatusConflict, "Nama/slug company sudah dipakai")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Company dibuat", dto.FromModelCompany(m))
}

// ========== List ==========
func (ctl *CompanyController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := model.ScopeAlive(ctl.DB.Model(&model.Company{}))
	if active := strings.TrimSpace(c.Query("active")); active == "true" {
		q = q.Where("company_is_active = ?", true)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("company_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.Company
	if err := q.Order("company_name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	items := make([]dto.CompanyResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.FromModelCompany(&rows[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      items,
		"pagination": helper.BuildPagination(p, total, len(items)),
	})
}

// ========== Detail ==========
func (ctl *CompanyController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "company_id invalid")
	}

	var m model.Company
	if err := model.ScopeAlive(ctl.DB).First(&m, "company_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Company tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", dto.FromModelCompany(&m))
}

// ========== Patch ==========
func (ctl *CompanyController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "company_id invalid")
	}

	var m model.Company
	if err := model.ScopeAlive(ctl.DB).First(&m, "company_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Company tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.PatchCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyTo(&m)
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Company diperbarui", dto.FromModelCompany(&m))
}

// ========== Delete (soft delete) ==========
func (ctl *CompanyController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "company_id invalid")
	}

	now := time.Now().UTC()
	res := ctl.DB.Model(&model.Company{}).
		Where("company_id = ? AND company_deleted_at IS NULL", id).
		Update("company_deleted_at", &now)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Company tidak ditemukan")
	}

	return helper.Success(c, "Company dihapus", fiber.Map{"company_id": id})
}
