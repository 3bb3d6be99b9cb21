// file: internals/features/companies/model/company_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: companies (tenant)
   ========================= */

type Company struct {
	CompanyID uuid.UUID `json:"company_id" gorm:"column:company_id;type:uuid;primaryKey"`

	CompanyName string  `json:"company_name" gorm:"column:company_name;type:varchar(120);not null;uniqueIndex"`
	CompanySlug string  `json:"company_slug" gorm:"column:company_slug;type:varchar(140);not null;uniqueIndex"`
	CompanyDesc *string `json:"company_desc,omitempty" gorm:"column:company_desc;type:text"`

	CompanyIsActive bool `json:"company_is_active" gorm:"column:company_is_active;not null;default:true"`

	// timestamps (soft delete manual, bukan gorm.DeletedAt)
	CompanyCreatedAt time.Time  `json:"company_created_at" gorm:"column:company_created_at;type:timestamptz;not null"`
	CompanyUpdatedAt time.Time  `json:"company_updated_at" gorm:"column:company_updated_at;type:timestamptz;not null"`
	CompanyDeletedAt *time.Time `json:"company_deleted_at,omitempty" gorm:"column:company_deleted_at;type:timestamptz"`
}

func (Company) TableName() string { return "companies" }

/* =========================
   Hooks
   ========================= */

func (m *Company) BeforeCreate(tx *gorm.DB) error {
	if m.CompanyID == uuid.Nil {
		m.CompanyID = uuid.New()
	}
	now := time.Now().UTC()
	if m.CompanyCreatedAt.IsZero() {
		m.CompanyCreatedAt = now
	}
	m.CompanyUpdatedAt = now
	return nil
}

func (m *Company) BeforeUpdate(tx *gorm.DB) error {
	m.CompanyUpdatedAt = time.Now().UTC()
	return nil
}

/* =========================
   Scopes
   ========================= */

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("company_deleted_at IS NULL")
}

func ScopeActive(db *gorm.DB) *gorm.DB {
	return db.Where("company_deleted_at IS NULL AND company_is_active = ?", true)
}
