package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	prModel "perwadag_backend/internals/features/penilaian/penilaian_risiko/model"
)

func kriteriaDenganNilai(nilai [8]int) prModel.KriteriaData {
	k := prModel.NewKriteriaData(2022, 2023)
	k.TrenCapaian.Nilai = iptr(nilai[0])
	k.RealisasiAnggaran.Nilai = iptr(nilai[1])
	k.TrenEkspor.Nilai = iptr(nilai[2])
	k.AuditItjen.Nilai = iptr(nilai[3])
	k.PerjanjianPerdagangan.Nilai = iptr(nilai[4])
	k.PeringkatEkspor.Nilai = iptr(nilai[5])
	k.PersentaseIk.Nilai = iptr(nilai[6])
	k.RealisasiTei.Nilai = iptr(nilai[7])
	return k
}

func TestHitungTotalBelumLengkap(t *testing.T) {
	k := prModel.NewKriteriaData(2022, 2023)
	assert.Nil(t, HitungTotal(k))
	assert.False(t, k.IsCalculationComplete())
	assert.Len(t, k.MissingCriteria(), 8)

	k.TrenCapaian.Nilai = iptr(3)
	assert.Nil(t, HitungTotal(k))
	assert.Len(t, k.MissingCriteria(), 7)
}

func TestHitungTotalDeterministik(t *testing.T) {
	k := kriteriaDenganNilai([8]int{1, 1, 1, 1, 1, 1, 1, 1})
	h := HitungTotal(k)
	require.NotNil(t, h)
	// Σ bobot = 100, dibagi 5 = 20
	assert.InDelta(t, 20.0, h.TotalNilaiRisiko, 0.001)
	assert.InDelta(t, 1.0, h.SkorRataRata, 0.001)
	assert.Equal(t, ProfilRendah, h.ProfilRisiko)

	// input sama -> output sama
	h2 := HitungTotal(k)
	assert.Equal(t, h, h2)
}

func TestHitungTotalBerbobot(t *testing.T) {
	// audit_itjen (bobot 25) tinggi menyeret total naik paling besar
	k := kriteriaDenganNilai([8]int{1, 1, 1, 5, 1, 1, 1, 1})
	h := HitungTotal(k)
	require.NotNil(t, h)
	// 15+10+15+125+5+10+10+10 = 200, /5 = 40
	assert.InDelta(t, 40.0, h.TotalNilaiRisiko, 0.001)
	assert.InDelta(t, 1.5, h.SkorRataRata, 0.001)
}

func TestProfilBoundaries(t *testing.T) {
	cases := []struct {
		nilai  [8]int
		skor   float64
		profil string
	}{
		{[8]int{2, 2, 2, 2, 2, 2, 2, 2}, 2.0, ProfilRendah},   // tepat 2.0
		{[8]int{2, 2, 2, 2, 2, 2, 2, 3}, 2.13, ProfilSedang},  // di atas 2.0
		{[8]int{3, 3, 3, 3, 4, 4, 4, 4}, 3.5, ProfilSedang},   // tepat 3.5
		{[8]int{3, 3, 3, 4, 4, 4, 4, 4}, 3.63, ProfilTinggi},  // di atas 3.5
		{[8]int{5, 5, 5, 5, 5, 5, 5, 5}, 5.0, ProfilTinggi},
	}
	for _, tc := range cases {
		h := HitungTotal(kriteriaDenganNilai(tc.nilai))
		require.NotNil(t, h)
		assert.InDelta(t, tc.skor, h.SkorRataRata, 0.005)
		assert.Equal(t, tc.profil, h.ProfilRisiko, "skor %v", tc.skor)
	}
}

func TestProsesTrenCapaian(t *testing.T) {
	d := prModel.TrenCapaianData{
		TahunPembanding1: 2022,
		TahunPembanding2: 2023,
		CapaianTahun1:    fptr(100),
		CapaianTahun2:    fptr(150),
	}
	out := prosesTrenCapaian(d)
	require.NotNil(t, out.Tren)
	assert.InDelta(t, 50.0, *out.Tren, 0.001)
	assert.Equal(t, "Naik ≥ 41%", *out.Pilihan)
	assert.Equal(t, 1, *out.Nilai)

	// turun 30% -> nilai 5
	d.CapaianTahun2 = fptr(70)
	out = prosesTrenCapaian(d)
	assert.Equal(t, 5, *out.Nilai)

	// capaian tahun 1 nol: tidak bisa dihitung, semua turunan kosong
	d.CapaianTahun1 = fptr(0)
	out = prosesTrenCapaian(d)
	assert.Nil(t, out.Tren)
	assert.Nil(t, out.Nilai)
}

func TestProsesKriteriaResetTurunanBasi(t *testing.T) {
	// nilai lama ada, lalu input mentahnya dihapus -> nilai harus ikut hilang
	k := prModel.NewKriteriaData(2022, 2023)
	k.TrenCapaian.Nilai = iptr(2)
	k.TrenCapaian.Tren = fptr(30)
	k.TrenCapaian.CapaianTahun1 = nil
	k.TrenCapaian.CapaianTahun2 = nil

	out := ProsesKriteria(k)
	assert.Nil(t, out.TrenCapaian.Nilai)
	assert.Nil(t, out.TrenCapaian.Tren)
	assert.Nil(t, out.TrenCapaian.Pilihan)
}

func TestProsesRealisasiAnggaran(t *testing.T) {
	d := prModel.RealisasiAnggaranData{Realisasi: fptr(99), Pagu: fptr(100)}
	out := prosesRealisasiAnggaran(d)
	assert.Equal(t, 1, *out.Nilai)

	d.Realisasi = fptr(80)
	out = prosesRealisasiAnggaran(d)
	assert.Equal(t, 5, *out.Nilai)

	d.Pagu = fptr(0)
	out = prosesRealisasiAnggaran(d)
	assert.Nil(t, out.Nilai)
}

func TestProsesAuditItjen(t *testing.T) {
	d := prModel.AuditItjenData{Pilihan: sptr("1 Tahun")}
	assert.Equal(t, 1, *prosesAuditItjen(d).Nilai)

	d.Pilihan = sptr("Belum pernah diaudit")
	assert.Equal(t, 5, *prosesAuditItjen(d).Nilai)

	d.Pilihan = sptr("opsi ngawur")
	assert.Nil(t, prosesAuditItjen(d).Nilai)
}

func TestProsesPersentaseIk(t *testing.T) {
	d := prModel.PersentaseIkData{IkTidakTercapai: iptr(1), TotalIk: iptr(20)}
	out := prosesPersentaseIk(d)
	require.NotNil(t, out.Persentase)
	assert.InDelta(t, 5.0, *out.Persentase, 0.001)
	assert.Equal(t, 1, *out.Nilai)

	d.IkTidakTercapai = iptr(5)
	out = prosesPersentaseIk(d)
	assert.Equal(t, 5, *out.Nilai) // 25% -> > 20%

	d.TotalIk = iptr(0)
	assert.Nil(t, prosesPersentaseIk(d).Nilai)
}

func TestProsesRealisasiTei(t *testing.T) {
	// belum ada realisasi: langsung nilai 5
	d := prModel.RealisasiTeiData{NilaiRealisasi: fptr(0), NilaiPotensi: fptr(100)}
	out := prosesRealisasiTei(d)
	assert.Equal(t, "Belum Ada Realisasi", *out.Pilihan)
	assert.Equal(t, 5, *out.Nilai)

	d = prModel.RealisasiTeiData{NilaiRealisasi: fptr(80), NilaiPotensi: fptr(100)}
	out = prosesRealisasiTei(d)
	assert.Equal(t, 1, *out.Nilai)

	d.NilaiRealisasi = fptr(30)
	out = prosesRealisasiTei(d)
	assert.Equal(t, 3, *out.Nilai)

	d.NilaiRealisasi = fptr(10)
	out = prosesRealisasiTei(d)
	assert.Equal(t, 4, *out.Nilai)
}

func TestProsesPeringkatEkspor(t *testing.T) {
	d := prModel.PeringkatEksporData{Deskripsi: iptr(3)}
	assert.Equal(t, 1, *prosesPeringkatEkspor(d).Nilai)

	d.Deskripsi = iptr(15)
	assert.Equal(t, 3, *prosesPeringkatEkspor(d).Nilai)

	d.Deskripsi = iptr(40)
	assert.Equal(t, 5, *prosesPeringkatEkspor(d).Nilai)
}
