// file: internals/features/documents/renewal_logs/controller/renewal_log_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "docpulse_backend/internals/features/documents/renewal_logs/dto"
	model "docpulse_backend/internals/features/documents/renewal_logs/model"
	helper "docpulse_backend/internals/helpers"
	helperAuth "docpulse_backend/internals/helpers/auth"
)

// Laporan scan bersifat read-only lewat API; yang menulis hanya job harian.
type RenewalLogController struct {
	DB *gorm.DB
}

func NewRenewalLogController(db *gorm.DB) *RenewalLogController {
	return &RenewalLogController{DB: db}
}

// GET / → daftar laporan milik tenant aktif, terbaru dulu.
// Filter opsional ?date=YYYY-MM-DD.
func (ctl *RenewalLogController) List(c *fiber.Ctx) error {
	companyID, err := helperAuth.ResolveCompanyID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := model.ScopeAlive(ctl.DB.Model(&model.RenewalLog{})).
		Scopes(model.ScopeByCompany(companyID))

	if v := strings.TrimSpace(c.Query("date")); v != "" {
		d, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date harus format YYYY-MM-DD")
		}
		q = q.Where("renewal_log_date = ?", d)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.RenewalLog
	if err := q.Preload("Items").
		Order("renewal_log_date DESC, renewal_log_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	items := make([]dto.RenewalLogResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.FromModelRenewalLog(&rows[i], false))
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      items,
		"pagination": helper.BuildPagination(p, total, len(items)),
	})
}

// GET /:id → detail laporan beserta item-itemnya.
func (ctl *RenewalLogController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "renewal_log_id invalid")
	}

	var row model.RenewalLog
	if err := model.ScopeAlive(ctl.DB).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("renewal_log_item_days_to_expiry ASC")
		}).
		First(&row, "renewal_log_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Laporan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	if !helperAuth.IsSystemManager(c) {
		companyID, err := helperAuth.ResolveCompanyID(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if companyID != row.RenewalLogCompanyID {
			return helper.Error(c, fiber.StatusForbidden, "Tidak boleh mengakses laporan tenant lain")
		}
	}

	return helper.Success(c, "OK", dto.FromModelRenewalLog(&row, true))
}
