package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	stDTO "perwadag_backend/internals/features/evaluasi/surat_tugas/dto"
	stModel "perwadag_backend/internals/features/evaluasi/surat_tugas/model"
	stService "perwadag_backend/internals/features/evaluasi/surat_tugas/service"
	thpModel "perwadag_backend/internals/features/evaluasi/tahapan/model"
	uModel "perwadag_backend/internals/features/users/model"
	"perwadag_backend/internals/helpers/scope"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&uModel.UserModel{},
		&stModel.SuratTugasModel{},
		&thpModel.SuratPemberitahuanModel{},
		&thpModel.MeetingModel{},
		&thpModel.MatriksModel{},
		&thpModel.LaporanHasilModel{},
		&thpModel.KuisionerModel{},
	))
	return db
}

func seedPerwadag(t *testing.T, db *gorm.DB, nama, inspektorat string) *uModel.UserModel {
	t.Helper()
	insp := inspektorat
	u := &uModel.UserModel{
		UserNama:        nama,
		UserUsername:    "u_" + uuid.NewString()[:8],
		UserPassword:    "x",
		UserRole:        uModel.UserRolePerwadag,
		UserInspektorat: &insp,
		UserIsActive:    true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func buatSuratTugas(t *testing.T, svc *stService.SuratTugasService, pw *uModel.UserModel, noSurat string, mulaiOffset, selesaiOffset int) *stModel.SuratTugasModel {
	t.Helper()
	st, err := svc.Create(&stDTO.CreateSuratTugasRequest{
		UserPerwadagID: pw.UserID.String(),
		NoSurat:        noSurat,
		TanggalMulai:   time.Now().AddDate(0, 0, mulaiOffset).Format("2006-01-02"),
		TanggalSelesai: time.Now().AddDate(0, 0, selesaiOffset).Format("2006-01-02"),
	})
	require.NoError(t, err)
	return st
}

func lengkapiKuisioner(t *testing.T, db *gorm.DB, suratTugasID uuid.UUID) {
	t.Helper()
	tgl := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	key := "evaluasi/kuisioner/contoh.pdf"
	require.NoError(t, db.Model(&thpModel.KuisionerModel{}).
		Where("kuisioner_surat_tugas_id = ?", suratTugasID).
		Updates(map[string]any{
			"kuisioner_tanggal":  tgl,
			"kuisioner_file_key": key,
		}).Error)
}

func TestSummaryTahapanDanStatusPerScope(t *testing.T) {
	db := openTestDB(t)
	stSvc := stService.NewSuratTugasService(db, nil)
	svc := NewDashboardService(db)

	pw1 := seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1")
	pw2 := seedPerwadag(t, db, "ITPC Dubai", "Inspektorat 2")

	// dua evaluasi selesai di wilayah 1 (satu dengan kuisioner lengkap),
	// satu evaluasi belum mulai di wilayah 2
	a := buatSuratTugas(t, stSvc, pw1, "ST/DASH/A", -20, -10)
	buatSuratTugas(t, stSvc, pw1, "ST/DASH/B", -20, -10)
	buatSuratTugas(t, stSvc, pw2, "ST/DASH/C", 10, 20)
	lengkapiKuisioner(t, db, a.SuratTugasID)

	// admin melihat semuanya
	sum, err := svc.Summary(scope.Admin(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalSuratTugas)
	assert.Equal(t, 2, sum.Selesai)
	assert.Equal(t, 1, sum.BelumMulai)
	assert.Equal(t, 0, sum.Berlangsung)
	assert.Equal(t, StageCount{Completed: 1, Incomplete: 2}, sum.Kuisioner)
	assert.Equal(t, StageCount{Completed: 0, Incomplete: 3}, sum.SuratPemberitahuan)
	assert.Equal(t, StageCount{Completed: 0, Incomplete: 3}, sum.EntryMeeting)
	assert.Equal(t, 0, sum.FullyCompleted)
	// satu record 14% (1/7 tahapan), dua record 0% -> rata-rata 5%
	assert.Equal(t, 5, sum.AveragePercentage)

	// inspektorat hanya wilayahnya
	sum, err = svc.Summary(scope.Inspektorat("Inspektorat 1"), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalSuratTugas)
	assert.Equal(t, StageCount{Completed: 1, Incomplete: 1}, sum.Kuisioner)
	assert.Equal(t, 7, sum.AveragePercentage)

	// perwadag hanya miliknya
	sum, err = svc.Summary(scope.Perwadag(pw2.UserID), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TotalSuratTugas)
	assert.Equal(t, 1, sum.BelumMulai)
	assert.Equal(t, StageCount{Completed: 0, Incomplete: 1}, sum.Kuisioner)
	assert.Equal(t, 0, sum.AveragePercentage)
}

func TestSummaryKosongTanpaSuratTugas(t *testing.T) {
	db := openTestDB(t)
	svc := NewDashboardService(db)

	sum, err := svc.Summary(scope.Admin(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.TotalSuratTugas)
	assert.Equal(t, 0, sum.AveragePercentage)
}
