package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	perModel "perwadag_backend/internals/features/penilaian/periode/model"
	prModel "perwadag_backend/internals/features/penilaian/penilaian_risiko/model"
	uModel "perwadag_backend/internals/features/users/model"
	"perwadag_backend/internals/helpers/apperr"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&uModel.UserModel{},
		&perModel.PeriodeModel{},
		&prModel.PenilaianRisikoModel{},
	))
	return db
}

func seedPerwadag(t *testing.T, db *gorm.DB, nama, inspektorat string, aktif bool) *uModel.UserModel {
	t.Helper()
	var insp *string
	if inspektorat != "" {
		insp = &inspektorat
	}
	u := &uModel.UserModel{
		UserNama:        nama,
		UserUsername:    "u_" + uuid.NewString()[:8],
		UserPassword:    "x",
		UserRole:        uModel.UserRolePerwadag,
		UserInspektorat: insp,
		UserIsActive:    aktif,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreatePeriodeBulkGenerate(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeriodeService(db)

	seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1", true)
	seedPerwadag(t, db, "ITPC Dubai", "Inspektorat 2", true)
	seedPerwadag(t, db, "Atdag Nonaktif", "Inspektorat 1", false) // dilewati
	seedPerwadag(t, db, "Atdag Cacat", "", true)                  // gagal: tanpa inspektorat

	periode, summary, err := svc.CreatePeriode(2024)
	require.NoError(t, err)
	assert.Equal(t, 2022, periode.TahunPembanding1())
	assert.Equal(t, 2023, periode.TahunPembanding2())

	// best-effort: yang cacat gagal sendirian, sisanya tetap jadi
	assert.Equal(t, 3, summary.TotalPerwadag) // hanya yang aktif
	assert.Equal(t, 2, summary.Generated)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "Atdag Cacat", summary.Errors[0].NamaPerwadag)

	var n int64
	db.Model(&prModel.PenilaianRisikoModel{}).
		Where("penilaian_risiko_periode_id = ?", periode.PeriodeID).Count(&n)
	assert.EqualValues(t, 2, n)

	// tahun pembanding ikut tersalin ke blok kriteria
	var pr prModel.PenilaianRisikoModel
	require.NoError(t, db.Where("penilaian_risiko_periode_id = ?", periode.PeriodeID).First(&pr).Error)
	k := pr.Kriteria()
	assert.Equal(t, 2022, k.TrenCapaian.TahunPembanding1)
	assert.Equal(t, 2023, k.TrenCapaian.TahunPembanding2)
	assert.Equal(t, 2023, k.RealisasiAnggaran.TahunPembanding)
}

func TestCreatePeriodeGagalAmbilPerwadagTercatat(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeriodeService(db)

	// query daftar perwadag dibuat gagal; summary tidak boleh terlihat
	// seperti fleet tanpa perwadag aktif
	require.NoError(t, db.Migrator().DropTable(&uModel.UserModel{}))

	periode, summary, err := svc.CreatePeriode(2024)
	require.NoError(t, err) // periode tetap jadi, generate-nya yang gagal
	require.NotNil(t, periode)

	assert.Equal(t, 0, summary.TotalPerwadag)
	assert.Equal(t, 0, summary.Generated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0].Error, "gagal mengambil daftar perwadag")
}

func TestCreatePeriodeTahunDuplikat(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeriodeService(db)

	_, _, err := svc.CreatePeriode(2024)
	require.NoError(t, err)

	_, _, err = svc.CreatePeriode(2024)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestRegenerateMengisiYangBelumAda(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeriodeService(db)

	seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1", true)
	periode, summary, err := svc.CreatePeriode(2025)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Generated)

	// perwadag baru setelah periode dibuat
	seedPerwadag(t, db, "ITPC Osaka", "Inspektorat 2", true)

	summary, err = svc.RegeneratePenilaian(periode.PeriodeID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalPerwadag)
	assert.Equal(t, 1, summary.Generated) // hanya yang baru
	assert.Equal(t, 1, summary.Failed)    // duplikat dilaporkan, bukan ditimpa
}

func TestSetStatusDanLockOrtogonal(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeriodeService(db)

	periode, _, err := svc.CreatePeriode(2024)
	require.NoError(t, err)
	assert.True(t, periode.IsEditable())

	// lock tanpa menutup
	m, err := svc.SetLock(periode.PeriodeID, true)
	require.NoError(t, err)
	assert.Equal(t, perModel.PeriodeStatusAktif, m.PeriodeStatus)
	assert.False(t, m.IsEditable())

	// buka lock, tutup status
	_, err = svc.SetLock(periode.PeriodeID, false)
	require.NoError(t, err)
	m, err = svc.SetStatus(periode.PeriodeID, perModel.PeriodeStatusTutup)
	require.NoError(t, err)
	assert.False(t, m.PeriodeIsLocked)
	assert.False(t, m.IsEditable())
}

func TestDeletePeriodeCascade(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeriodeService(db)

	seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1", true)
	periode, _, err := svc.CreatePeriode(2024)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePeriode(periode.PeriodeID))

	_, err = svc.GetByID(periode.PeriodeID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	// hard delete: tidak ada sisa baris penilaian, unscoped sekalipun
	var n int64
	db.Unscoped().Model(&prModel.PenilaianRisikoModel{}).
		Where("penilaian_risiko_periode_id = ?", periode.PeriodeID).Count(&n)
	assert.EqualValues(t, 0, n)

	// tahun bisa dipakai ulang setelah hard delete
	_, _, err = svc.CreatePeriode(2024)
	assert.NoError(t, err)
}

func TestSummary(t *testing.T) {
	db := openTestDB(t)
	svc := NewPeriodeService(db)

	seedPerwadag(t, db, "Atdag Tokyo", "Inspektorat 1", true)
	seedPerwadag(t, db, "ITPC Dubai", "Inspektorat 2", true)
	periode, _, err := svc.CreatePeriode(2024)
	require.NoError(t, err)

	// satu penilaian sudah dihitung
	var pr prModel.PenilaianRisikoModel
	require.NoError(t, db.Where("penilaian_risiko_periode_id = ?", periode.PeriodeID).First(&pr).Error)
	skor := 1.5
	total := 32.0
	profil := "Rendah"
	pr.PenilaianRisikoSkorRataRata = &skor
	pr.PenilaianRisikoTotalNilaiRisiko = &total
	pr.PenilaianRisikoProfil = &profil
	require.NoError(t, db.Save(&pr).Error)

	sum, err := svc.Summary(periode.PeriodeID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, sum.TotalPenilaian)
	assert.EqualValues(t, 1, sum.SudahDihitung)
	assert.EqualValues(t, 1, sum.BelumDihitung)
	require.NotNil(t, sum.RataRataSkor)
	assert.InDelta(t, 1.5, *sum.RataRataSkor, 0.001)
	assert.Equal(t, 1, sum.ProfilCount["Rendah"])
}
