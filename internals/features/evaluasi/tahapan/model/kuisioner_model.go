// internals/features/evaluasi/tahapan/model/kuisioner_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"perwadag_backend/internals/features/evaluasi/progress"
)

// KuisionerModel: kuisioner umpan balik perwadag, 1:1 dengan surat tugas.
type KuisionerModel struct {
	KuisionerID uuid.UUID `gorm:"type:uuid;primaryKey;column:kuisioner_id" json:"kuisioner_id"`

	KuisionerSuratTugasID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:kuisioner_surat_tugas_id" json:"kuisioner_surat_tugas_id"`

	KuisionerTanggal *time.Time `gorm:"type:date;column:kuisioner_tanggal" json:"kuisioner_tanggal,omitempty"`

	KuisionerFileKey      *string `gorm:"type:varchar(500);column:kuisioner_file_key" json:"-"`
	KuisionerFileURL      *string `gorm:"type:varchar(500);column:kuisioner_file_url" json:"kuisioner_file_url,omitempty"`
	KuisionerFileFilename *string `gorm:"type:varchar(300);column:kuisioner_file_filename" json:"kuisioner_file_filename,omitempty"`

	KuisionerCreatedAt time.Time      `gorm:"column:kuisioner_created_at;autoCreateTime" json:"kuisioner_created_at"`
	KuisionerUpdatedAt *time.Time     `gorm:"column:kuisioner_updated_at;autoUpdateTime" json:"kuisioner_updated_at,omitempty"`
	KuisionerDeletedAt gorm.DeletedAt `gorm:"column:kuisioner_deleted_at;index" json:"kuisioner_deleted_at,omitempty"`
}

func (KuisionerModel) TableName() string { return "kuisioner" }

func (m *KuisionerModel) BeforeCreate(_ *gorm.DB) error {
	if m.KuisionerID == uuid.Nil {
		m.KuisionerID = uuid.New()
	}
	return nil
}

func (m *KuisionerModel) requiredDone() (done, total int) {
	total = 2
	if m.KuisionerTanggal != nil {
		done++
	}
	if m.KuisionerFileKey != nil && *m.KuisionerFileKey != "" {
		done++
	}
	return
}

func (m *KuisionerModel) IsCompleted() bool {
	done, total := m.requiredDone()
	return done == total
}

func (m *KuisionerModel) CompletionPercentage() int {
	done, total := m.requiredDone()
	return progress.Percent(done, total)
}
