// file: internals/features/documents/settings/dto/tracker_settings_dto.go
package dto

import (
	"time"

	model "docpulse_backend/internals/features/documents/settings/model"
)

type UpdateTrackerSettingsRequest struct {
	CronSchedule *string `json:"tracker_settings_cron_schedule" validate:"omitempty,min=9,max=80"`
	ScanEnabled  *bool   `json:"tracker_settings_scan_enabled"`
}

type TrackerSettingsResponse struct {
	CronSchedule string    `json:"tracker_settings_cron_schedule"`
	ScanEnabled  bool      `json:"tracker_settings_scan_enabled"`
	UpdatedAt    time.Time `json:"tracker_settings_updated_at"`
}

func FromModelTrackerSettings(m *model.TrackerSettings) TrackerSettingsResponse {
	return TrackerSettingsResponse{
		CronSchedule: m.TrackerSettingsCronSchedule,
		ScanEnabled:  m.TrackerSettingsScanEnabled,
		UpdatedAt:    m.TrackerSettingsUpdatedAt,
	}
}
