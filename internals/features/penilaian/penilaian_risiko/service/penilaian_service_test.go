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
	prDTO "perwadag_backend/internals/features/penilaian/penilaian_risiko/dto"
	prModel "perwadag_backend/internals/features/penilaian/penilaian_risiko/model"
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
		&perModel.PeriodeModel{},
		&prModel.PenilaianRisikoModel{},
	))
	return db
}

func seedPenilaian(t *testing.T, db *gorm.DB, inspektorat string, editable bool) *prModel.PenilaianRisikoModel {
	t.Helper()

	periode := &perModel.PeriodeModel{
		PeriodeTahun:  2024 + len(inspektorat), // tahun unik per pemanggilan
		PeriodeStatus: perModel.PeriodeStatusAktif,
	}
	if !editable {
		periode.PeriodeIsLocked = true
	}
	require.NoError(t, db.Create(periode).Error)

	m := &prModel.PenilaianRisikoModel{
		PenilaianRisikoUserPerwadagID: uuid.New(),
		PenilaianRisikoPeriodeID:      periode.PeriodeID,
		PenilaianRisikoNamaPerwadag:   "Atdag Tokyo",
		PenilaianRisikoInspektorat:    inspektorat,
		PenilaianRisikoTahun:          periode.PeriodeTahun,
	}
	m.SetKriteria(prModel.NewKriteriaData(periode.TahunPembanding1(), periode.TahunPembanding2()))
	require.NoError(t, db.Create(m).Error)
	return m
}

func patchLengkap() *prDTO.KriteriaPatch {
	return &prDTO.KriteriaPatch{
		TrenCapaian:           &prDTO.TrenCapaianPatch{CapaianTahun1: fptr(100), CapaianTahun2: fptr(110)},
		RealisasiAnggaran:     &prDTO.RealisasiAnggaranPatch{Realisasi: fptr(99), Pagu: fptr(100)},
		TrenEkspor:            &prDTO.TrenEksporPatch{Deskripsi: fptr(10)},
		AuditItjen:            &prDTO.AuditItjenPatch{Pilihan: sptr("1 Tahun")},
		PerjanjianPerdagangan: &prDTO.PerjanjianPerdaganganPatch{Pilihan: sptr("Tidak ada perjanjian internasional")},
		PeringkatEkspor:       &prDTO.PeringkatEksporPatch{Deskripsi: iptr(3)},
		PersentaseIk:          &prDTO.PersentaseIkPatch{IkTidakTercapai: iptr(1), TotalIk: iptr(20)},
		RealisasiTei:          &prDTO.RealisasiTeiPatch{NilaiRealisasi: fptr(80), NilaiPotensi: fptr(100)},
	}
}

func TestUpdateKriteriaLengkapAutoCalculate(t *testing.T) {
	db := openTestDB(t)
	svc := NewPenilaianService(db)
	m := seedPenilaian(t, db, "Inspektorat 1", true)

	out, err := svc.UpdateKriteria(scope.Admin(), m.PenilaianRisikoID, &prDTO.UpdatePenilaianRequest{
		KriteriaData: patchLengkap(),
	})
	require.NoError(t, err)
	require.True(t, out.HasCalculationResult())

	// semua nilai turunan = 1, pakai patchLengkap: nilai [3,1,3,1,1,1,1,1]
	k := out.Kriteria()
	assert.Equal(t, 3, *k.TrenCapaian.Nilai)       // naik 10%
	assert.Equal(t, 1, *k.RealisasiAnggaran.Nilai) // 99%
	assert.Equal(t, 1, *k.AuditItjen.Nilai)

	// bobot: 3*15+1*10+3*15+1*25+1*5+1*10+1*10+1*10 = 160, /5 = 32
	assert.InDelta(t, 32.0, *out.PenilaianRisikoTotalNilaiRisiko, 0.001)
	assert.InDelta(t, 1.5, *out.PenilaianRisikoSkorRataRata, 0.001)
	assert.Equal(t, ProfilRendah, *out.PenilaianRisikoProfil)
}

func TestUpdateKriteriaParsialTidakMenghitung(t *testing.T) {
	db := openTestDB(t)
	svc := NewPenilaianService(db)
	m := seedPenilaian(t, db, "Inspektorat 1", true)

	out, err := svc.UpdateKriteria(scope.Admin(), m.PenilaianRisikoID, &prDTO.UpdatePenilaianRequest{
		KriteriaData: &prDTO.KriteriaPatch{
			TrenEkspor: &prDTO.TrenEksporPatch{Deskripsi: fptr(40)},
		},
	})
	require.NoError(t, err)
	assert.False(t, out.HasCalculationResult())
	assert.Equal(t, 1, *out.Kriteria().TrenEkspor.Nilai)
	assert.Len(t, out.Kriteria().MissingCriteria(), 7)
}

func TestUpdateKriteriaMergePerField(t *testing.T) {
	db := openTestDB(t)
	svc := NewPenilaianService(db)
	m := seedPenilaian(t, db, "Inspektorat 1", true)

	_, err := svc.UpdateKriteria(scope.Admin(), m.PenilaianRisikoID, &prDTO.UpdatePenilaianRequest{
		KriteriaData: patchLengkap(),
	})
	require.NoError(t, err)

	// patch satu field saja: field lain pada blok yang sama tidak disentuh,
	// turunan dihitung ulang dari gabungan input
	out, err := svc.UpdateKriteria(scope.Admin(), m.PenilaianRisikoID, &prDTO.UpdatePenilaianRequest{
		KriteriaData: &prDTO.KriteriaPatch{
			TrenCapaian: &prDTO.TrenCapaianPatch{CapaianTahun1: fptr(120)},
		},
	})
	require.NoError(t, err)

	k := out.Kriteria()
	require.NotNil(t, k.TrenCapaian.CapaianTahun1)
	assert.InDelta(t, 120.0, *k.TrenCapaian.CapaianTahun1, 0.001)
	require.NotNil(t, k.TrenCapaian.CapaianTahun2) // tetap 110 dari patch pertama
	assert.InDelta(t, 110.0, *k.TrenCapaian.CapaianTahun2, 0.001)

	// turun 8.33% -> nilai 4; data masih lengkap, hasil dihitung ulang
	assert.Equal(t, 4, *k.TrenCapaian.Nilai)
	require.True(t, out.HasCalculationResult())
	// bobot: 4*15+1*10+3*15+1*25+1*5+1*10+1*10+1*10 = 175, /5 = 35
	assert.InDelta(t, 35.0, *out.PenilaianRisikoTotalNilaiRisiko, 0.001)
}

func TestUpdateKriteriaAutoCalculateFalse(t *testing.T) {
	db := openTestDB(t)
	svc := NewPenilaianService(db)
	m := seedPenilaian(t, db, "Inspektorat 1", true)

	noCalc := false
	out, err := svc.UpdateKriteria(scope.Admin(), m.PenilaianRisikoID, &prDTO.UpdatePenilaianRequest{
		KriteriaData:  patchLengkap(),
		AutoCalculate: &noCalc,
	})
	require.NoError(t, err)
	assert.True(t, out.Kriteria().IsCalculationComplete())
	assert.False(t, out.HasCalculationResult())

	// kalkulasi eksplisit tetap bisa
	out, err = svc.Calculate(scope.Admin(), m.PenilaianRisikoID, false)
	require.NoError(t, err)
	assert.True(t, out.HasCalculationResult())
}

func TestUpdateKriteriaPeriodeTerkunci(t *testing.T) {
	db := openTestDB(t)
	svc := NewPenilaianService(db)
	m := seedPenilaian(t, db, "Inspektorat 2", false)

	_, err := svc.UpdateKriteria(scope.Admin(), m.PenilaianRisikoID, &prDTO.UpdatePenilaianRequest{
		KriteriaData: patchLengkap(),
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindLockedPeriode))
}

func TestUpdateKriteriaScope(t *testing.T) {
	db := openTestDB(t)
	svc := NewPenilaianService(db)
	m := seedPenilaian(t, db, "Inspektorat 1", true)

	// wilayah lain: ScopeViolation
	_, err := svc.UpdateKriteria(scope.Inspektorat("Inspektorat 2"), m.PenilaianRisikoID, &prDTO.UpdatePenilaianRequest{})
	assert.True(t, apperr.Is(err, apperr.KindScopeViolation))

	// id tak dikenal: NotFound
	_, err = svc.GetByID(scope.Admin(), uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCalculateBelumLengkap(t *testing.T) {
	db := openTestDB(t)
	svc := NewPenilaianService(db)
	m := seedPenilaian(t, db, "Inspektorat 1", true)

	_, err := svc.Calculate(scope.Admin(), m.PenilaianRisikoID, false)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
