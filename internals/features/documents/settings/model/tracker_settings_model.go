// file: internals/features/documents/settings/model/tracker_settings_model.go
package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// DefaultCronSchedule: tiap hari jam 06:00 server time.
const DefaultCronSchedule = "0 6 * * *"

// TrackerSettings: single-row. Semua baca/tulis lewat Load() supaya
// baris default selalu ada.
type TrackerSettings struct {
	TrackerSettingsID           int    `json:"tracker_settings_id"            gorm:"column:tracker_settings_id;primaryKey"`
	TrackerSettingsCronSchedule string `json:"tracker_settings_cron_schedule" gorm:"column:tracker_settings_cron_schedule;type:varchar(80);not null;default:'0 6 * * *'"`
	TrackerSettingsScanEnabled  bool   `json:"tracker_settings_scan_enabled"  gorm:"column:tracker_settings_scan_enabled;not null;default:true"`

	TrackerSettingsCreatedAt time.Time `json:"tracker_settings_created_at" gorm:"column:tracker_settings_created_at;autoCreateTime"`
	TrackerSettingsUpdatedAt time.Time `json:"tracker_settings_updated_at" gorm:"column:tracker_settings_updated_at;autoUpdateTime"`
}

func (TrackerSettings) TableName() string { return "tracker_settings" }

// Load: ambil baris settings, buat default kalau belum ada.
func Load(db *gorm.DB) (*TrackerSettings, error) {
	var s TrackerSettings
	err := db.First(&s, "tracker_settings_id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = TrackerSettings{
			TrackerSettingsID:           1,
			TrackerSettingsCronSchedule: DefaultCronSchedule,
			TrackerSettingsScanEnabled:  true,
		}
		if cerr := db.Create(&s).Error; cerr != nil {
			return nil, cerr
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
