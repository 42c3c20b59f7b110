// internals/features/penilaian/penilaian_risiko/model/penilaian_risiko_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
PenilaianRisikoModel: satu baris per (perwadag, periode), dijaga unik
lewat composite index. Baris dibuat kosong saat periode digenerate;
kriteria diisi bertahap lewat update, hasil kalkulasi (total, skor,
profil) hanya terisi saat delapan nilai kriteria lengkap.
*/
type PenilaianRisikoModel struct {
	PenilaianRisikoID uuid.UUID `gorm:"type:uuid;primaryKey;column:penilaian_risiko_id" json:"penilaian_risiko_id"`

	PenilaianRisikoUserPerwadagID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_penilaian_perwadag_periode;column:penilaian_risiko_user_perwadag_id" json:"penilaian_risiko_user_perwadag_id"`
	PenilaianRisikoPeriodeID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_penilaian_perwadag_periode;index;column:penilaian_risiko_periode_id" json:"penilaian_risiko_periode_id"`

	// Salinan identitas saat generate, supaya riwayat stabil
	PenilaianRisikoNamaPerwadag string `gorm:"type:varchar(200);not null;column:penilaian_risiko_nama_perwadag" json:"penilaian_risiko_nama_perwadag"`
	PenilaianRisikoInspektorat  string `gorm:"type:varchar(100);not null;index;column:penilaian_risiko_inspektorat" json:"penilaian_risiko_inspektorat"`
	PenilaianRisikoTahun        int    `gorm:"not null;index;column:penilaian_risiko_tahun" json:"penilaian_risiko_tahun"`

	PenilaianRisikoKriteria datatypes.JSONType[KriteriaData] `gorm:"column:penilaian_risiko_kriteria" json:"penilaian_risiko_kriteria"`

	// Hasil kalkulasi: nil selama kriteria belum lengkap
	PenilaianRisikoTotalNilaiRisiko *float64 `gorm:"type:decimal(8,2);column:penilaian_risiko_total_nilai_risiko" json:"penilaian_risiko_total_nilai_risiko,omitempty"`
	PenilaianRisikoSkorRataRata     *float64 `gorm:"type:decimal(8,2);column:penilaian_risiko_skor_rata_rata" json:"penilaian_risiko_skor_rata_rata,omitempty"`
	PenilaianRisikoProfil           *string  `gorm:"type:varchar(20);column:penilaian_risiko_profil" json:"penilaian_risiko_profil,omitempty"`

	PenilaianRisikoCatatan *string `gorm:"type:text;column:penilaian_risiko_catatan" json:"penilaian_risiko_catatan,omitempty"`

	PenilaianRisikoCreatedAt time.Time      `gorm:"column:penilaian_risiko_created_at;autoCreateTime" json:"penilaian_risiko_created_at"`
	PenilaianRisikoUpdatedAt *time.Time     `gorm:"column:penilaian_risiko_updated_at;autoUpdateTime" json:"penilaian_risiko_updated_at,omitempty"`
	PenilaianRisikoDeletedAt gorm.DeletedAt `gorm:"column:penilaian_risiko_deleted_at;index" json:"penilaian_risiko_deleted_at,omitempty"`
}

func (PenilaianRisikoModel) TableName() string { return "penilaian_risiko" }

func (m *PenilaianRisikoModel) BeforeCreate(_ *gorm.DB) error {
	if m.PenilaianRisikoID == uuid.Nil {
		m.PenilaianRisikoID = uuid.New()
	}
	return nil
}

func (m *PenilaianRisikoModel) Kriteria() KriteriaData { return m.PenilaianRisikoKriteria.Data() }

func (m *PenilaianRisikoModel) SetKriteria(k KriteriaData) {
	m.PenilaianRisikoKriteria = datatypes.NewJSONType(k)
}

func (m *PenilaianRisikoModel) HasCalculationResult() bool {
	return m.PenilaianRisikoTotalNilaiRisiko != nil &&
		m.PenilaianRisikoSkorRataRata != nil &&
		m.PenilaianRisikoProfil != nil
}

// ClearCalculationResult: dipanggil saat kriteria kembali tidak lengkap.
func (m *PenilaianRisikoModel) ClearCalculationResult() {
	m.PenilaianRisikoTotalNilaiRisiko = nil
	m.PenilaianRisikoSkorRataRata = nil
	m.PenilaianRisikoProfil = nil
}
