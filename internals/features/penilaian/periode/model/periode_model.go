// internals/features/penilaian/periode/model/periode_model.go
package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
Status periode (sesuai ENUM di DB):
- "aktif" : periode berjalan, penilaian bisa diisi
- "tutup" : periode selesai

Status dan lock sengaja ORTOGONAL: menutup periode tidak otomatis
mengunci, dan sebaliknya. Penilaian hanya bisa diedit saat status
aktif DAN belum dikunci.
*/
type PeriodeStatus string

const (
	PeriodeStatusAktif PeriodeStatus = "aktif"
	PeriodeStatusTutup PeriodeStatus = "tutup"
)

func (s *PeriodeStatus) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*s = PeriodeStatus(strings.ToLower(strings.TrimSpace(v)))
	case []byte:
		*s = PeriodeStatus(strings.ToLower(strings.TrimSpace(string(v))))
	case nil:
		*s = ""
	}
	return nil
}

func (s PeriodeStatus) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(s))), nil
}

type PeriodeModel struct {
	PeriodeID uuid.UUID `gorm:"type:uuid;primaryKey;column:periode_id" json:"periode_id"`

	PeriodeTahun    int           `gorm:"not null;uniqueIndex;column:periode_tahun" json:"periode_tahun"`
	PeriodeStatus   PeriodeStatus `gorm:"type:varchar(20);not null;default:aktif;column:periode_status" json:"periode_status"`
	PeriodeIsLocked bool          `gorm:"not null;default:false;column:periode_is_locked" json:"periode_is_locked"`

	PeriodeCreatedAt time.Time      `gorm:"column:periode_created_at;autoCreateTime" json:"periode_created_at"`
	PeriodeUpdatedAt *time.Time     `gorm:"column:periode_updated_at;autoUpdateTime" json:"periode_updated_at,omitempty"`
	PeriodeDeletedAt gorm.DeletedAt `gorm:"column:periode_deleted_at;index" json:"periode_deleted_at,omitempty"`
}

func (PeriodeModel) TableName() string { return "periode_evaluasi" }

func (m *PeriodeModel) BeforeCreate(_ *gorm.DB) error {
	if m.PeriodeID == uuid.Nil {
		m.PeriodeID = uuid.New()
	}
	return nil
}

func (m *PeriodeModel) IsEditable() bool {
	return m.PeriodeStatus == PeriodeStatusAktif && !m.PeriodeIsLocked
}

// Tahun pembanding untuk kriteria penilaian: dua tahun & satu tahun sebelum.
func (m *PeriodeModel) TahunPembanding1() int { return m.PeriodeTahun - 2 }
func (m *PeriodeModel) TahunPembanding2() int { return m.PeriodeTahun - 1 }
