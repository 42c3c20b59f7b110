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
	thpModel "perwadag_backend/internals/features/evaluasi/tahapan/model"
	uModel "perwadag_backend/internals/features/users/model"
	helper "perwadag_backend/internals/helpers"
	"perwadag_backend/internals/helpers/apperr"
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

func helperParams() helper.Params {
	return helper.Params{Page: 1, PerPage: 50, SortOrder: "desc"}
}

func createReq(perwadagID, noSurat string) *stDTO.CreateSuratTugasRequest {
	return &stDTO.CreateSuratTugasRequest{
		UserPerwadagID: perwadagID,
		NoSurat:        noSurat,
		TanggalMulai:   "2025-03-01",
		TanggalSelesai: "2025-03-10",
	}
}

func TestCreateCascadeMenanamTujuhTahapan(t *testing.T) {
	db := openTestDB(t)
	svc := NewSuratTugasService(db, nil)
	pw := seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1")

	st, err := svc.Create(createReq(pw.UserID.String(), "ST/001/2025"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, st.SuratTugasID)
	assert.Equal(t, "Atdag Tokyo", st.SuratTugasNamaPerwadag)
	assert.Equal(t, "Inspektorat 1", st.SuratTugasInspektorat)

	var nSP, nMeet, nMtr, nLap, nKui int64
	db.Model(&thpModel.SuratPemberitahuanModel{}).Where("surat_pemberitahuan_surat_tugas_id = ?", st.SuratTugasID).Count(&nSP)
	db.Model(&thpModel.MeetingModel{}).Where("meeting_surat_tugas_id = ?", st.SuratTugasID).Count(&nMeet)
	db.Model(&thpModel.MatriksModel{}).Where("matriks_surat_tugas_id = ?", st.SuratTugasID).Count(&nMtr)
	db.Model(&thpModel.LaporanHasilModel{}).Where("laporan_hasil_surat_tugas_id = ?", st.SuratTugasID).Count(&nLap)
	db.Model(&thpModel.KuisionerModel{}).Where("kuisioner_surat_tugas_id = ?", st.SuratTugasID).Count(&nKui)

	assert.EqualValues(t, 1, nSP)
	assert.EqualValues(t, 3, nMeet)
	assert.EqualValues(t, 1, nMtr)
	assert.EqualValues(t, 1, nLap)
	assert.EqualValues(t, 1, nKui)

	// progress awal 0%
	flags, err := svc.Progress(st.SuratTugasID)
	require.NoError(t, err)
	assert.Equal(t, 0, flags.OverallPercentage())
}

func TestCreateNoSuratDuplikatKonflik(t *testing.T) {
	db := openTestDB(t)
	svc := NewSuratTugasService(db, nil)
	pw := seedPerwadag(t, db, "ITPC Osaka", "Inspektorat 2")

	_, err := svc.Create(createReq(pw.UserID.String(), "ST/DUP/2025"))
	require.NoError(t, err)

	_, err = svc.Create(createReq(pw.UserID.String(), "ST/DUP/2025"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	// rollback total: tidak ada tahapan yatim dari percobaan kedua
	var nSP int64
	db.Model(&thpModel.SuratPemberitahuanModel{}).Count(&nSP)
	assert.EqualValues(t, 1, nSP)
}

func TestCreateValidasiTanggal(t *testing.T) {
	db := openTestDB(t)
	svc := NewSuratTugasService(db, nil)
	pw := seedPerwadag(t, db, "Atdag Seoul", "Inspektorat 1")

	req := createReq(pw.UserID.String(), "ST/002/2025")
	req.TanggalMulai = "2025-03-10"
	req.TanggalSelesai = "2025-03-01"
	_, err := svc.Create(req)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreatePerwadagNonaktifDitolak(t *testing.T) {
	db := openTestDB(t)
	svc := NewSuratTugasService(db, nil)
	pw := seedPerwadag(t, db, "Atdag Cairo", "Inspektorat 3")
	require.NoError(t, db.Model(&uModel.UserModel{}).
		Where("user_id = ?", pw.UserID).Update("user_is_active", false).Error)

	_, err := svc.Create(createReq(pw.UserID.String(), "ST/003/2025"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestGetByIDScope(t *testing.T) {
	db := openTestDB(t)
	svc := NewSuratTugasService(db, nil)
	pw := seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1")

	st, err := svc.Create(createReq(pw.UserID.String(), "ST/010/2025"))
	require.NoError(t, err)

	// admin lolos
	_, err = svc.GetByID(scope.Admin(), st.SuratTugasID)
	assert.NoError(t, err)

	// inspektorat wilayah sendiri lolos
	_, err = svc.GetByID(scope.Inspektorat("Inspektorat 1"), st.SuratTugasID)
	assert.NoError(t, err)

	// inspektorat wilayah lain: ScopeViolation, bukan NotFound
	_, err = svc.GetByID(scope.Inspektorat("Inspektorat 2"), st.SuratTugasID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindScopeViolation))

	// perwadag lain: ScopeViolation
	_, err = svc.GetByID(scope.Perwadag(uuid.New()), st.SuratTugasID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindScopeViolation))

	// perwadag pemilik lolos
	_, err = svc.GetByID(scope.Perwadag(pw.UserID), st.SuratTugasID)
	assert.NoError(t, err)

	// id tak dikenal: NotFound
	_, err = svc.GetByID(scope.Admin(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestListScoped(t *testing.T) {
	db := openTestDB(t)
	svc := NewSuratTugasService(db, nil)
	pw1 := seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1")
	pw2 := seedPerwadag(t, db, "ITPC Dubai", "Inspektorat 2")

	_, err := svc.Create(createReq(pw1.UserID.String(), "ST/L1/2025"))
	require.NoError(t, err)
	_, err = svc.Create(createReq(pw2.UserID.String(), "ST/L2/2025"))
	require.NoError(t, err)

	p := helperParams()

	rows, total, err := svc.List(scope.Admin(), ListFilter{}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	rows, total, err = svc.List(scope.Inspektorat("Inspektorat 1"), ListFilter{}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Atdag Tokyo", rows[0].SuratTugasNamaPerwadag)

	rows, total, err = svc.List(scope.Perwadag(pw2.UserID), ListFilter{}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "ITPC Dubai", rows[0].SuratTugasNamaPerwadag)
}

func TestListFilterStatusEvaluasi(t *testing.T) {
	db := openTestDB(t)
	svc := NewSuratTugasService(db, nil)
	pw := seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1")

	day := func(offset int) string {
		return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
	}
	mkReq := func(noSurat, mulai, selesai string) *stDTO.CreateSuratTugasRequest {
		return &stDTO.CreateSuratTugasRequest{
			UserPerwadagID: pw.UserID.String(),
			NoSurat:        noSurat,
			TanggalMulai:   mulai,
			TanggalSelesai: selesai,
		}
	}

	_, err := svc.Create(mkReq("ST/PAST/2025", day(-20), day(-10)))
	require.NoError(t, err)
	_, err = svc.Create(mkReq("ST/NOW/2025", day(-3), day(3)))
	require.NoError(t, err)
	_, err = svc.Create(mkReq("ST/NEXT/2025", day(10), day(20)))
	require.NoError(t, err)

	p := helperParams()
	for status, wantNo := range map[string]string{
		"selesai":     "ST/PAST/2025",
		"berlangsung": "ST/NOW/2025",
		"belum_mulai": "ST/NEXT/2025",
	} {
		rows, total, err := svc.List(scope.Admin(), ListFilter{Status: status}, p)
		require.NoError(t, err, status)
		require.EqualValues(t, 1, total, status)
		assert.Equal(t, wantNo, rows[0].SuratTugasNoSurat, status)
	}

	_, _, err = svc.List(scope.Admin(), ListFilter{Status: "ngawur"}, p)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDeleteCascade(t *testing.T) {
	db := openTestDB(t)
	svc := NewSuratTugasService(db, nil)
	pw := seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1")

	st, err := svc.Create(createReq(pw.UserID.String(), "ST/DEL/2025"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(scope.Admin(), st.SuratTugasID))

	// parent & semua tahapan tidak terlihat lagi (soft delete)
	_, err = svc.GetByID(scope.Admin(), st.SuratTugasID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	var nMeet int64
	db.Model(&thpModel.MeetingModel{}).Where("meeting_surat_tugas_id = ?", st.SuratTugasID).Count(&nMeet)
	assert.EqualValues(t, 0, nMeet)

	// hapus dua kali: NotFound
	err = svc.Delete(scope.Admin(), st.SuratTugasID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestProgressNaikHanyaSaatTahapanLengkap(t *testing.T) {
	db := openTestDB(t)
	svc := NewSuratTugasService(db, nil)
	pw := seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1")

	st, err := svc.Create(createReq(pw.UserID.String(), "ST/PRG/2025"))
	require.NoError(t, err)

	// isi sebagian field surat pemberitahuan: parent tetap 0%
	tanggal := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&thpModel.SuratPemberitahuanModel{}).
		Where("surat_pemberitahuan_surat_tugas_id = ?", st.SuratTugasID).
		Update("surat_pemberitahuan_tanggal", tanggal).Error)

	flags, err := svc.Progress(st.SuratTugasID)
	require.NoError(t, err)
	assert.Equal(t, 0, flags.OverallPercentage())

	// lengkapi: file juga terisi -> 1 dari 7 tahapan = 14%
	require.NoError(t, db.Model(&thpModel.SuratPemberitahuanModel{}).
		Where("surat_pemberitahuan_surat_tugas_id = ?", st.SuratTugasID).
		Update("surat_pemberitahuan_file_key", "evaluasi/sp/x.pdf").Error)

	flags, err = svc.Progress(st.SuratTugasID)
	require.NoError(t, err)
	assert.True(t, flags.SuratPemberitahuan)
	assert.Equal(t, 14, flags.OverallPercentage())
}
