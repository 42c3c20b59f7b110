// internals/features/penilaian/penilaian_risiko/model/kriteria_data.go
package model

import "perwadag_backend/internals/features/evaluasi/progress"

/*
Delapan blok kriteria penilaian risiko. Tiap blok memisahkan dua jenis
field:
  - input mentah yang diisi evaluator (capaian, realisasi, pagu, ...)
  - field turunan yang SELALU dihitung ulang oleh kalkulator
    (tren/persentase/deskripsi, pilihan, nilai) dan tidak boleh
    dipercaya dari payload client.
*/

type TrenCapaianData struct {
	TahunPembanding1 int      `json:"tahun_pembanding_1"`
	CapaianTahun1    *float64 `json:"capaian_tahun_1,omitempty"`
	TahunPembanding2 int      `json:"tahun_pembanding_2"`
	CapaianTahun2    *float64 `json:"capaian_tahun_2,omitempty"`

	Tren    *float64 `json:"tren,omitempty"`
	Pilihan *string  `json:"pilihan,omitempty"`
	Nilai   *int     `json:"nilai,omitempty"`
}

type RealisasiAnggaranData struct {
	TahunPembanding int      `json:"tahun_pembanding"`
	Realisasi       *float64 `json:"realisasi,omitempty"`
	Pagu            *float64 `json:"pagu,omitempty"`

	Persentase *float64 `json:"persentase,omitempty"`
	Pilihan    *string  `json:"pilihan,omitempty"`
	Nilai      *int     `json:"nilai,omitempty"`
}

type TrenEksporData struct {
	TahunPembanding int      `json:"tahun_pembanding"`
	Deskripsi       *float64 `json:"deskripsi,omitempty"` // persen pertumbuhan, input mentah

	Pilihan *string `json:"pilihan,omitempty"`
	Nilai   *int    `json:"nilai,omitempty"`
}

type AuditItjenData struct {
	TahunPembanding int     `json:"tahun_pembanding"`
	Deskripsi       *string `json:"deskripsi,omitempty"`
	Pilihan         *string `json:"pilihan,omitempty"` // input: salah satu opsi audit

	Nilai *int `json:"nilai,omitempty"`
}

type PerjanjianPerdaganganData struct {
	TahunPembanding int     `json:"tahun_pembanding"`
	Deskripsi       *string `json:"deskripsi,omitempty"`
	Pilihan         *string `json:"pilihan,omitempty"` // input: status perjanjian

	Nilai *int `json:"nilai,omitempty"`
}

type PeringkatEksporData struct {
	TahunPembanding int  `json:"tahun_pembanding"`
	Deskripsi       *int `json:"deskripsi,omitempty"` // peringkat negara tujuan

	Pilihan *string `json:"pilihan,omitempty"`
	Nilai   *int    `json:"nilai,omitempty"`
}

type PersentaseIkData struct {
	TahunPembanding int  `json:"tahun_pembanding"`
	IkTidakTercapai *int `json:"ik_tidak_tercapai,omitempty"`
	TotalIk         *int `json:"total_ik,omitempty"`

	Persentase *float64 `json:"persentase,omitempty"`
	Pilihan    *string  `json:"pilihan,omitempty"`
	Nilai      *int     `json:"nilai,omitempty"`
}

type RealisasiTeiData struct {
	TahunPembanding int      `json:"tahun_pembanding"`
	NilaiRealisasi  *float64 `json:"nilai_realisasi,omitempty"`
	NilaiPotensi    *float64 `json:"nilai_potensi,omitempty"`

	Deskripsi *float64 `json:"deskripsi,omitempty"`
	Pilihan   *string  `json:"pilihan,omitempty"`
	Nilai     *int     `json:"nilai,omitempty"`
}

type KriteriaData struct {
	TrenCapaian           TrenCapaianData           `json:"tren_capaian"`
	RealisasiAnggaran     RealisasiAnggaranData     `json:"realisasi_anggaran"`
	TrenEkspor            TrenEksporData            `json:"tren_ekspor"`
	AuditItjen            AuditItjenData            `json:"audit_itjen"`
	PerjanjianPerdagangan PerjanjianPerdaganganData `json:"perjanjian_perdagangan"`
	PeringkatEkspor       PeringkatEksporData       `json:"peringkat_ekspor"`
	PersentaseIk          PersentaseIkData          `json:"persentase_ik"`
	RealisasiTei          RealisasiTeiData          `json:"realisasi_tei"`
}

// NewKriteriaData menyiapkan blok kosong dengan tahun pembanding terisi.
func NewKriteriaData(tahunPembanding1, tahunPembanding2 int) KriteriaData {
	return KriteriaData{
		TrenCapaian: TrenCapaianData{
			TahunPembanding1: tahunPembanding1,
			TahunPembanding2: tahunPembanding2,
		},
		RealisasiAnggaran:     RealisasiAnggaranData{TahunPembanding: tahunPembanding2},
		TrenEkspor:            TrenEksporData{TahunPembanding: tahunPembanding2},
		AuditItjen:            AuditItjenData{TahunPembanding: tahunPembanding2},
		PerjanjianPerdagangan: PerjanjianPerdaganganData{TahunPembanding: tahunPembanding2},
		PeringkatEkspor:       PeringkatEksporData{TahunPembanding: tahunPembanding2},
		PersentaseIk:          PersentaseIkData{TahunPembanding: tahunPembanding2},
		RealisasiTei:          RealisasiTeiData{TahunPembanding: tahunPembanding2},
	}
}

// NilaiScores mengembalikan delapan nilai sesuai urutan bobot.
// ok=false bila ada yang belum terisi.
func (k KriteriaData) NilaiScores() (scores [8]int, ok bool) {
	ptrs := [8]*int{
		k.TrenCapaian.Nilai,
		k.RealisasiAnggaran.Nilai,
		k.TrenEkspor.Nilai,
		k.AuditItjen.Nilai,
		k.PerjanjianPerdagangan.Nilai,
		k.PeringkatEkspor.Nilai,
		k.PersentaseIk.Nilai,
		k.RealisasiTei.Nilai,
	}
	for i, p := range ptrs {
		if p == nil {
			return scores, false
		}
		scores[i] = *p
	}
	return scores, true
}

// MissingCriteria: nama kriteria yang nilai-nya belum terisi.
func (k KriteriaData) MissingCriteria() []string {
	names := [8]string{
		"tren_capaian", "realisasi_anggaran", "tren_ekspor", "audit_itjen",
		"perjanjian_perdagangan", "peringkat_ekspor", "persentase_ik", "realisasi_tei",
	}
	ptrs := [8]*int{
		k.TrenCapaian.Nilai,
		k.RealisasiAnggaran.Nilai,
		k.TrenEkspor.Nilai,
		k.AuditItjen.Nilai,
		k.PerjanjianPerdagangan.Nilai,
		k.PeringkatEkspor.Nilai,
		k.PersentaseIk.Nilai,
		k.RealisasiTei.Nilai,
	}
	var missing []string
	for i, p := range ptrs {
		if p == nil {
			missing = append(missing, names[i])
		}
	}
	return missing
}

func (k KriteriaData) IsCalculationComplete() bool {
	_, ok := k.NilaiScores()
	return ok
}

// CompletionPercentage: berapa dari 8 kriteria yang nilai-nya terisi.
func (k KriteriaData) CompletionPercentage() int {
	return progress.Percent(8-len(k.MissingCriteria()), 8)
}
