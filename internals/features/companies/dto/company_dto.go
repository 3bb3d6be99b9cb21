// file: internals/features/companies/dto/company_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "docpulse_backend/internals/features/companies/model"
)

/* =========================================================
   REQUEST: Create
   ========================================================= */

type CreateCompanyRequest struct {
	CompanyName string  `json:"company_name" validate:"required,max=120"`
	CompanySlug *string `json:"company_slug" validate:"omitempty,max=140"`
	CompanyDesc *string `json:"company_desc"`

	CompanyIsActive *bool `json:"company_is_active"`
}

func (r *CreateCompanyRequest) ToModel() *model.Company {
	m := &model.Company{
		CompanyName:     strings.TrimSpace(r.CompanyName),
		CompanyDesc:     r.CompanyDesc,
		CompanyIsActive: true, // default true
	}
	if r.CompanySlug != nil && strings.TrimSpace(*r.CompanySlug) != "" {
		m.CompanySlug = strings.TrimSpace(*r.CompanySlug)
	} else {
		m.CompanySlug = Slugify(m.CompanyName)
	}
	if r.CompanyIsActive != nil {
		m.CompanyIsActive = *r.CompanyIsActive
	}
	return m
}

/* =========================================================
   REQUEST: Patch
   ========================================================= */

type PatchCompanyRequest struct {
	CompanyName     *string `json:"company_name" validate:"omitempty,max=120"`
	CompanySlug     *string `json:"company_slug" validate:"omitempty,max=140"`
	CompanyDesc     *string `json:"company_desc"`
	CompanyIsActive *bool   `json:"company_is_active"`
}

func (r *PatchCompanyRequest) ApplyTo(m *model.Company) {
	if r.CompanyName != nil {
		m.CompanyName = strings.TrimSpace(*r.CompanyName)
	}
	if r.CompanySlug != nil {
		m.CompanySlug = strings.TrimSpace(*r.CompanySlug)
	}
	if r.CompanyDesc != nil {
		m.CompanyDesc = r.CompanyDesc
	}
	if r.CompanyIsActive != nil {
		m.CompanyIsActive = *r.CompanyIsActive
	}
}

/* =========================================================
   RESPONSE
   ========================================================= */

type CompanyResponse struct {
	CompanyID       uuid.UUID `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	CompanySlug     string    `json:"company_slug"`
	CompanyDesc     *string   `json:"company_desc,omitempty"`
	CompanyIsActive bool      `json:"company_is_active"`
	CompanyCreated  time.Time `json:"company_created_at"`
	CompanyUpdated  time.Time `json:"company_updated_at"`
}

func FromModelCompany(m *model.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:       m.CompanyID,
		CompanyName:     m.CompanyName,
		CompanySlug:     m.CompanySlug,
		CompanyDesc:     m.CompanyDesc,
		CompanyIsActive: m.CompanyIsActive,
		CompanyCreated:  m.CompanyCreatedAt,
		CompanyUpdated:  m.CompanyUpdatedAt,
	}
}

/* =========================================================
   Slug util (lowercase, non-alnum → "-")
   ========================================================= */

func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
