// internals/features/evaluasi/surat_tugas/model/surat_tugas_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
SuratTugasModel adalah akar workflow evaluasi. Satu surat tugas memiliki
tujuh record tahapan (surat pemberitahuan, 3 meeting, matriks, laporan
hasil, kuisioner) yang dibuat & dihapus bersama dalam satu transaksi.

nama_perwadag & inspektorat disalin dari akun perwadag saat create supaya
riwayat evaluasi tidak berubah ketika akun diedit belakangan.
*/
type SuratTugasModel struct {
	// PK (diisi BeforeCreate supaya jalan juga di sqlite saat test)
	SuratTugasID uuid.UUID `gorm:"type:uuid;primaryKey;column:surat_tugas_id" json:"surat_tugas_id"`

	// Relasi ke akun perwadag yang dievaluasi
	SuratTugasUserPerwadagID uuid.UUID `gorm:"type:uuid;not null;index;column:surat_tugas_user_perwadag_id" json:"surat_tugas_user_perwadag_id"`
	SuratTugasNamaPerwadag   string    `gorm:"type:varchar(200);not null;column:surat_tugas_nama_perwadag" json:"surat_tugas_nama_perwadag"`
	SuratTugasInspektorat    string    `gorm:"type:varchar(100);not null;index;column:surat_tugas_inspektorat" json:"surat_tugas_inspektorat"`

	// Isi surat
	SuratTugasNoSurat          string    `gorm:"type:varchar(200);uniqueIndex;not null;column:surat_tugas_no_surat" json:"surat_tugas_no_surat"`
	SuratTugasTanggalMulai     time.Time `gorm:"type:date;not null;index;column:surat_tugas_tanggal_mulai" json:"surat_tugas_tanggal_mulai"`
	SuratTugasTanggalSelesai   time.Time `gorm:"type:date;not null;column:surat_tugas_tanggal_selesai" json:"surat_tugas_tanggal_selesai"`
	SuratTugasPengendaliMutu   *string   `gorm:"type:varchar(200);column:surat_tugas_pengendali_mutu" json:"surat_tugas_pengendali_mutu,omitempty"`
	SuratTugasPengendaliTeknis *string   `gorm:"type:varchar(200);column:surat_tugas_pengendali_teknis" json:"surat_tugas_pengendali_teknis,omitempty"`
	SuratTugasKetuaTim         *string   `gorm:"type:varchar(200);column:surat_tugas_ketua_tim" json:"surat_tugas_ketua_tim,omitempty"`

	// Lampiran surat tugas
	SuratTugasFileKey      *string `gorm:"type:varchar(500);column:surat_tugas_file_key" json:"-"`
	SuratTugasFileURL      *string `gorm:"type:varchar(500);column:surat_tugas_file_url" json:"surat_tugas_file_url,omitempty"`
	SuratTugasFileFilename *string `gorm:"type:varchar(300);column:surat_tugas_file_filename" json:"surat_tugas_file_filename,omitempty"`

	// Audit
	SuratTugasCreatedAt time.Time      `gorm:"column:surat_tugas_created_at;autoCreateTime" json:"surat_tugas_created_at"`
	SuratTugasUpdatedAt *time.Time     `gorm:"column:surat_tugas_updated_at;autoUpdateTime" json:"surat_tugas_updated_at,omitempty"`
	SuratTugasDeletedAt gorm.DeletedAt `gorm:"column:surat_tugas_deleted_at;index" json:"surat_tugas_deleted_at,omitempty"`
}

func (SuratTugasModel) TableName() string { return "surat_tugas" }

func (m *SuratTugasModel) BeforeCreate(_ *gorm.DB) error {
	if m.SuratTugasID == uuid.Nil {
		m.SuratTugasID = uuid.New()
	}
	return nil
}

// TahunEvaluasi: tahun dari tanggal mulai, dipakai filter list & dashboard.
func (m *SuratTugasModel) TahunEvaluasi() int { return m.SuratTugasTanggalMulai.Year() }

// DurasiEvaluasi dalam hari, inklusif.
func (m *SuratTugasModel) DurasiEvaluasi() int {
	d := int(m.SuratTugasTanggalSelesai.Sub(m.SuratTugasTanggalMulai).Hours()/24) + 1
	if d < 0 {
		return 0
	}
	return d
}

// StatusEvaluasi relatif ke hari ini: "belum_mulai" | "berlangsung" | "selesai".
func (m *SuratTugasModel) StatusEvaluasi(now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	mulai := time.Date(m.SuratTugasTanggalMulai.Year(), m.SuratTugasTanggalMulai.Month(), m.SuratTugasTanggalMulai.Day(), 0, 0, 0, 0, time.UTC)
	selesai := time.Date(m.SuratTugasTanggalSelesai.Year(), m.SuratTugasTanggalSelesai.Month(), m.SuratTugasTanggalSelesai.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case today.Before(mulai):
		return "belum_mulai"
	case today.After(selesai):
		return "selesai"
	default:
		return "berlangsung"
	}
}
