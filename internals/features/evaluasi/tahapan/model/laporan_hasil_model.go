// internals/features/evaluasi/tahapan/model/laporan_hasil_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"perwadag_backend/internals/features/evaluasi/progress"
)

// LaporanHasilModel: laporan hasil evaluasi, 1:1 dengan surat tugas.
type LaporanHasilModel struct {
	LaporanHasilID uuid.UUID `gorm:"type:uuid;primaryKey;column:laporan_hasil_id" json:"laporan_hasil_id"`

	LaporanHasilSuratTugasID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:laporan_hasil_surat_tugas_id" json:"laporan_hasil_surat_tugas_id"`

	LaporanHasilNomor   *string    `gorm:"type:varchar(200);column:laporan_hasil_nomor" json:"laporan_hasil_nomor,omitempty"`
	LaporanHasilTanggal *time.Time `gorm:"type:date;column:laporan_hasil_tanggal" json:"laporan_hasil_tanggal,omitempty"`

	LaporanHasilFileKey      *string `gorm:"type:varchar(500);column:laporan_hasil_file_key" json:"-"`
	LaporanHasilFileURL      *string `gorm:"type:varchar(500);column:laporan_hasil_file_url" json:"laporan_hasil_file_url,omitempty"`
	LaporanHasilFileFilename *string `gorm:"type:varchar(300);column:laporan_hasil_file_filename" json:"laporan_hasil_file_filename,omitempty"`

	LaporanHasilCreatedAt time.Time      `gorm:"column:laporan_hasil_created_at;autoCreateTime" json:"laporan_hasil_created_at"`
	LaporanHasilUpdatedAt *time.Time     `gorm:"column:laporan_hasil_updated_at;autoUpdateTime" json:"laporan_hasil_updated_at,omitempty"`
	LaporanHasilDeletedAt gorm.DeletedAt `gorm:"column:laporan_hasil_deleted_at;index" json:"laporan_hasil_deleted_at,omitempty"`
}

func (LaporanHasilModel) TableName() string { return "laporan_hasil" }

func (m *LaporanHasilModel) BeforeCreate(_ *gorm.DB) error {
	if m.LaporanHasilID == uuid.Nil {
		m.LaporanHasilID = uuid.New()
	}
	return nil
}

func (m *LaporanHasilModel) requiredDone() (done, total int) {
	total = 3
	if m.LaporanHasilNomor != nil && strings.TrimSpace(*m.LaporanHasilNomor) != "" {
		done++
	}
	if m.LaporanHasilTanggal != nil {
		done++
	}
	if m.LaporanHasilFileKey != nil && *m.LaporanHasilFileKey != "" {
		done++
	}
	return
}

func (m *LaporanHasilModel) IsCompleted() bool {
	done, total := m.requiredDone()
	return done == total
}

func (m *LaporanHasilModel) CompletionPercentage() int {
	done, total := m.requiredDone()
	return progress.Percent(done, total)
}
