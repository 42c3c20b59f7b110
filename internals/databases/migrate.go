// internals/databases/migrate.go
package database

import (
	"log"

	"gorm.io/gorm"

	stModel "perwadag_backend/internals/features/evaluasi/surat_tugas/model"
	thpModel "perwadag_backend/internals/features/evaluasi/tahapan/model"
	perModel "perwadag_backend/internals/features/penilaian/periode/model"
	prModel "perwadag_backend/internals/features/penilaian/penilaian_risiko/model"
	uModel "perwadag_backend/internals/features/users/model"
)

// AutoMigrate menjalankan migrasi skema seluruh tabel aplikasi.
// Urutan: tabel induk dulu, baru dependennya.
func AutoMigrate(db *gorm.DB) error {
	log.Println("🧱 Menjalankan auto-migrate...")
	return db.AutoMigrate(
		&uModel.UserModel{},
		&stModel.SuratTugasModel{},
		&thpModel.SuratPemberitahuanModel{},
		&thpModel.MeetingModel{},
		&thpModel.MatriksModel{},
		&thpModel.LaporanHasilModel{},
		&thpModel.KuisionerModel{},
		&perModel.PeriodeModel{},
		&prModel.PenilaianRisikoModel{},
	)
}
