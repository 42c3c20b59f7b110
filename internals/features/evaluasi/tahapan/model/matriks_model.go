// internals/features/evaluasi/tahapan/model/matriks_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"perwadag_backend/internals/features/evaluasi/progress"
)

// TemuanRekomendasi: satu pasang kondisi temuan + rekomendasi perbaikan.
type TemuanRekomendasi struct {
	Kondisi     string `json:"kondisi"`
	Rekomendasi string `json:"rekomendasi"`
}

// MatriksModel: matriks hasil evaluasi, 1:1 dengan surat tugas.
type MatriksModel struct {
	MatriksID uuid.UUID `gorm:"type:uuid;primaryKey;column:matriks_id" json:"matriks_id"`

	MatriksSuratTugasID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:matriks_surat_tugas_id" json:"matriks_surat_tugas_id"`

	MatriksNomor  *string                                 `gorm:"type:varchar(200);column:matriks_nomor" json:"matriks_nomor,omitempty"`
	MatriksTemuan datatypes.JSONType[[]TemuanRekomendasi] `gorm:"column:matriks_temuan" json:"matriks_temuan"`

	MatriksFileKey      *string `gorm:"type:varchar(500);column:matriks_file_key" json:"-"`
	MatriksFileURL      *string `gorm:"type:varchar(500);column:matriks_file_url" json:"matriks_file_url,omitempty"`
	MatriksFileFilename *string `gorm:"type:varchar(300);column:matriks_file_filename" json:"matriks_file_filename,omitempty"`

	MatriksCreatedAt time.Time      `gorm:"column:matriks_created_at;autoCreateTime" json:"matriks_created_at"`
	MatriksUpdatedAt *time.Time     `gorm:"column:matriks_updated_at;autoUpdateTime" json:"matriks_updated_at,omitempty"`
	MatriksDeletedAt gorm.DeletedAt `gorm:"column:matriks_deleted_at;index" json:"matriks_deleted_at,omitempty"`
}

func (MatriksModel) TableName() string { return "matriks" }

func (m *MatriksModel) BeforeCreate(_ *gorm.DB) error {
	if m.MatriksID == uuid.Nil {
		m.MatriksID = uuid.New()
	}
	return nil
}

func (m *MatriksModel) Temuan() []TemuanRekomendasi { return m.MatriksTemuan.Data() }

// hasTemuan: minimal satu pasang temuan/rekomendasi yang keduanya terisi.
func (m *MatriksModel) hasTemuan() bool {
	for _, t := range m.Temuan() {
		if strings.TrimSpace(t.Kondisi) != "" && strings.TrimSpace(t.Rekomendasi) != "" {
			return true
		}
	}
	return false
}

func (m *MatriksModel) requiredDone() (done, total int) {
	total = 3
	if m.MatriksNomor != nil && strings.TrimSpace(*m.MatriksNomor) != "" {
		done++
	}
	if m.hasTemuan() {
		done++
	}
	if m.MatriksFileKey != nil && *m.MatriksFileKey != "" {
		done++
	}
	return
}

func (m *MatriksModel) IsCompleted() bool {
	done, total := m.requiredDone()
	return done == total
}

func (m *MatriksModel) CompletionPercentage() int {
	done, total := m.requiredDone()
	return progress.Percent(done, total)
}
