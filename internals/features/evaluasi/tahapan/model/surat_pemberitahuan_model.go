// internals/features/evaluasi/tahapan/model/surat_pemberitahuan_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"perwadag_backend/internals/features/evaluasi/progress"
)

// SuratPemberitahuanModel: tahapan pertama, dibuat otomatis saat surat tugas
// dibuat. 1:1 dengan surat tugas.
type SuratPemberitahuanModel struct {
	SuratPemberitahuanID uuid.UUID `gorm:"type:uuid;primaryKey;column:surat_pemberitahuan_id" json:"surat_pemberitahuan_id"`

	SuratPemberitahuanSuratTugasID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:surat_pemberitahuan_surat_tugas_id" json:"surat_pemberitahuan_surat_tugas_id"`

	SuratPemberitahuanTanggal      *time.Time `gorm:"type:date;column:surat_pemberitahuan_tanggal" json:"surat_pemberitahuan_tanggal,omitempty"`
	SuratPemberitahuanFileKey      *string    `gorm:"type:varchar(500);column:surat_pemberitahuan_file_key" json:"-"`
	SuratPemberitahuanFileURL      *string    `gorm:"type:varchar(500);column:surat_pemberitahuan_file_url" json:"surat_pemberitahuan_file_url,omitempty"`
	SuratPemberitahuanFileFilename *string    `gorm:"type:varchar(300);column:surat_pemberitahuan_file_filename" json:"surat_pemberitahuan_file_filename,omitempty"`

	SuratPemberitahuanCreatedAt time.Time      `gorm:"column:surat_pemberitahuan_created_at;autoCreateTime" json:"surat_pemberitahuan_created_at"`
	SuratPemberitahuanUpdatedAt *time.Time     `gorm:"column:surat_pemberitahuan_updated_at;autoUpdateTime" json:"surat_pemberitahuan_updated_at,omitempty"`
	SuratPemberitahuanDeletedAt gorm.DeletedAt `gorm:"column:surat_pemberitahuan_deleted_at;index" json:"surat_pemberitahuan_deleted_at,omitempty"`
}

func (SuratPemberitahuanModel) TableName() string { return "surat_pemberitahuan" }

func (m *SuratPemberitahuanModel) BeforeCreate(_ *gorm.DB) error {
	if m.SuratPemberitahuanID == uuid.Nil {
		m.SuratPemberitahuanID = uuid.New()
	}
	return nil
}

func (m *SuratPemberitahuanModel) requiredDone() (done, total int) {
	total = 2
	if m.SuratPemberitahuanTanggal != nil {
		done++
	}
	if m.SuratPemberitahuanFileKey != nil && *m.SuratPemberitahuanFileKey != "" {
		done++
	}
	return
}

func (m *SuratPemberitahuanModel) IsCompleted() bool {
	done, total := m.requiredDone()
	return done == total
}

func (m *SuratPemberitahuanModel) CompletionPercentage() int {
	done, total := m.requiredDone()
	return progress.Percent(done, total)
}
