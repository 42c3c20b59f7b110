// internals/features/penilaian/penilaian_risiko/service/kalkulator.go
package service

import (
	"math"

	prModel "perwadag_backend/internals/features/penilaian/penilaian_risiko/model"
)

// Bobot per kriteria, urut: tren_capaian, realisasi_anggaran, tren_ekspor,
// audit_itjen, perjanjian_perdagangan, peringkat_ekspor, persentase_ik,
// realisasi_tei.
var Bobot = [8]int{15, 10, 15, 25, 5, 10, 10, 10}

const (
	ProfilRendah = "Rendah"
	ProfilSedang = "Sedang"
	ProfilTinggi = "Tinggi"
)

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }
func iptr(n int) *int         { return &n }

/*
ProsesKriteria menghitung ulang seluruh field turunan dari input mentah.
Field turunan (tren/persentase/deskripsi hasil, pilihan, nilai) SELALU
direset dulu, lalu diisi hanya bila input mentahnya lengkap — nilai
lama tidak boleh bertahan setelah inputnya dihapus.
*/
func ProsesKriteria(k prModel.KriteriaData) prModel.KriteriaData {
	k.TrenCapaian = prosesTrenCapaian(k.TrenCapaian)
	k.RealisasiAnggaran = prosesRealisasiAnggaran(k.RealisasiAnggaran)
	k.TrenEkspor = prosesTrenEkspor(k.TrenEkspor)
	k.AuditItjen = prosesAuditItjen(k.AuditItjen)
	k.PerjanjianPerdagangan = prosesPerjanjianPerdagangan(k.PerjanjianPerdagangan)
	k.PeringkatEkspor = prosesPeringkatEkspor(k.PeringkatEkspor)
	k.PersentaseIk = prosesPersentaseIk(k.PersentaseIk)
	k.RealisasiTei = prosesRealisasiTei(k.RealisasiTei)
	return k
}

func prosesTrenCapaian(d prModel.TrenCapaianData) prModel.TrenCapaianData {
	d.Tren, d.Pilihan, d.Nilai = nil, nil, nil

	if d.CapaianTahun1 == nil || d.CapaianTahun2 == nil {
		return d
	}
	c1, c2 := *d.CapaianTahun1, *d.CapaianTahun2
	if c1 == 0 {
		return d
	}
	tren := (c2 - c1) / c1 * 100
	d.Tren = fptr(round2(tren))

	switch {
	case tren >= 41:
		d.Pilihan, d.Nilai = sptr("Naik ≥ 41%"), iptr(1)
	case tren >= 21:
		d.Pilihan, d.Nilai = sptr("Naik 21% - 40%"), iptr(2)
	case tren >= 0:
		d.Pilihan, d.Nilai = sptr("Naik 0% - 20%"), iptr(3)
	case tren >= -25:
		d.Pilihan, d.Nilai = sptr("Turun < 25%"), iptr(4)
	default:
		d.Pilihan, d.Nilai = sptr("Turun ≥ 25%"), iptr(5)
	}
	return d
}

func prosesRealisasiAnggaran(d prModel.RealisasiAnggaranData) prModel.RealisasiAnggaranData {
	d.Persentase, d.Pilihan, d.Nilai = nil, nil, nil

	if d.Realisasi == nil || d.Pagu == nil || *d.Pagu == 0 {
		return d
	}
	persen := *d.Realisasi / *d.Pagu * 100
	d.Persentase = fptr(round2(persen))

	switch {
	case persen > 98:
		d.Pilihan, d.Nilai = sptr("> 98%"), iptr(1)
	case persen > 95:
		d.Pilihan, d.Nilai = sptr("95% - 97%"), iptr(2)
	case persen > 90:
		d.Pilihan, d.Nilai = sptr("90% - 94%"), iptr(3)
	case persen >= 85:
		d.Pilihan, d.Nilai = sptr("85% - 89%"), iptr(4)
	default:
		d.Pilihan, d.Nilai = sptr("< 85%"), iptr(5)
	}
	return d
}

func prosesTrenEkspor(d prModel.TrenEksporData) prModel.TrenEksporData {
	d.Pilihan, d.Nilai = nil, nil

	if d.Deskripsi == nil {
		return d
	}
	v := *d.Deskripsi
	switch {
	case v >= 35:
		d.Pilihan, d.Nilai = sptr("Naik ≥ 35%"), iptr(1)
	case v >= 20:
		d.Pilihan, d.Nilai = sptr("Naik 20% - 34%"), iptr(2)
	case v >= 0:
		d.Pilihan, d.Nilai = sptr("Naik 0% - 19%"), iptr(3)
	case v >= -25:
		d.Pilihan, d.Nilai = sptr("Turun < 25%"), iptr(4)
	default:
		d.Pilihan, d.Nilai = sptr("Turun ≥ 25%"), iptr(5)
	}
	return d
}

var auditItjenMap = map[string]int{
	"1 Tahun":              1,
	"2 Tahun":              2,
	"3 Tahun":              3,
	"4 Tahun":              4,
	"Belum pernah diaudit": 5,
}

func prosesAuditItjen(d prModel.AuditItjenData) prModel.AuditItjenData {
	d.Nilai = nil

	if d.Pilihan == nil {
		return d
	}
	if n, ok := auditItjenMap[*d.Pilihan]; ok {
		d.Nilai = iptr(n)
	}
	return d
}

var perjanjianMap = map[string]int{
	"Tidak ada perjanjian internasional":        1,
	"Sedang diusulkan/ Being Proposed":          2,
	"Masih berproses/ on going":                 3,
	"Sudah disepakati namun belum diratifikasi": 4,
	"Sudah diimplementasikan":                   5,
}

func prosesPerjanjianPerdagangan(d prModel.PerjanjianPerdaganganData) prModel.PerjanjianPerdaganganData {
	d.Nilai = nil

	if d.Pilihan == nil {
		return d
	}
	if n, ok := perjanjianMap[*d.Pilihan]; ok {
		d.Nilai = iptr(n)
	}
	return d
}

func prosesPeringkatEkspor(d prModel.PeringkatEksporData) prModel.PeringkatEksporData {
	d.Pilihan, d.Nilai = nil, nil

	if d.Deskripsi == nil {
		return d
	}
	peringkat := *d.Deskripsi
	switch {
	case peringkat >= 1 && peringkat <= 5:
		d.Pilihan, d.Nilai = sptr("Peringkat 1 - 6"), iptr(1)
	case peringkat >= 7 && peringkat <= 11:
		d.Pilihan, d.Nilai = sptr("Peringkat 7 - 12"), iptr(2)
	case peringkat >= 13 && peringkat <= 18:
		d.Pilihan, d.Nilai = sptr("Peringkat 13 - 18"), iptr(3)
	case peringkat >= 19 && peringkat <= 23:
		d.Pilihan, d.Nilai = sptr("Peringkat 19 - 23"), iptr(4)
	default:
		d.Pilihan, d.Nilai = sptr("Peringkat diatas 23"), iptr(5)
	}
	return d
}

func prosesPersentaseIk(d prModel.PersentaseIkData) prModel.PersentaseIkData {
	d.Persentase, d.Pilihan, d.Nilai = nil, nil, nil

	if d.IkTidakTercapai == nil || d.TotalIk == nil || *d.TotalIk == 0 {
		return d
	}
	persen := float64(*d.IkTidakTercapai) / float64(*d.TotalIk) * 100
	d.Persentase = fptr(round2(persen))

	switch {
	case persen <= 5:
		d.Pilihan, d.Nilai = sptr("< 5%"), iptr(1)
	case persen <= 10:
		d.Pilihan, d.Nilai = sptr("6% - 10%"), iptr(2)
	case persen <= 15:
		d.Pilihan, d.Nilai = sptr("11% - 15%"), iptr(3)
	case persen <= 20:
		d.Pilihan, d.Nilai = sptr("16% - 20%"), iptr(4)
	default:
		d.Pilihan, d.Nilai = sptr("> 20%"), iptr(5)
	}
	return d
}

func prosesRealisasiTei(d prModel.RealisasiTeiData) prModel.RealisasiTeiData {
	d.Deskripsi, d.Pilihan, d.Nilai = nil, nil, nil

	if d.NilaiRealisasi == nil || d.NilaiPotensi == nil {
		return d
	}
	realisasi, potensi := *d.NilaiRealisasi, *d.NilaiPotensi

	// Belum ada realisasi/potensi: langsung risiko tertinggi
	if potensi == 0 || realisasi == 0 {
		d.Deskripsi = fptr(0)
		d.Pilihan, d.Nilai = sptr("Belum Ada Realisasi"), iptr(5)
		return d
	}

	persen := realisasi / potensi * 100
	d.Deskripsi = fptr(round2(persen))

	switch {
	case persen > 70:
		d.Pilihan, d.Nilai = sptr("> 70%"), iptr(1)
	case persen >= 50:
		d.Pilihan, d.Nilai = sptr("50% - 70%"), iptr(2)
	case persen >= 25:
		d.Pilihan, d.Nilai = sptr("25% - 49%"), iptr(3)
	default:
		d.Pilihan, d.Nilai = sptr("< 25%"), iptr(4)
	}
	return d
}

// HasilKalkulasi adalah output HitungTotal saat delapan kriteria lengkap.
type HasilKalkulasi struct {
	TotalNilaiRisiko float64 `json:"total_nilai_risiko"`
	SkorRataRata     float64 `json:"skor_rata_rata"`
	ProfilRisiko     string  `json:"profil_risiko"`
	Scores           [8]int  `json:"individual_scores"`
	WeightedScores   [8]int  `json:"weighted_scores"`
}

// HitungTotal: nil bila ada kriteria yang nilai-nya belum terisi.
// total = Σ(nilai·bobot)/5, skor = Σnilai/8, profil dari skor rata-rata.
func HitungTotal(k prModel.KriteriaData) *HasilKalkulasi {
	scores, ok := k.NilaiScores()
	if !ok {
		return nil
	}

	sumWeighted := 0
	sumNilai := 0
	var weighted [8]int
	for i, n := range scores {
		weighted[i] = n * Bobot[i]
		sumWeighted += weighted[i]
		sumNilai += n
	}

	total := float64(sumWeighted) / 5
	skor := float64(sumNilai) / 8

	profil := ProfilTinggi
	switch {
	case skor <= 2.0:
		profil = ProfilRendah
	case skor <= 3.5:
		profil = ProfilSedang
	}

	return &HasilKalkulasi{
		TotalNilaiRisiko: round2(total),
		SkorRataRata:     round2(skor),
		ProfilRisiko:     profil,
		Scores:           scores,
		WeightedScores:   weighted,
	}
}
