// internals/features/penilaian/penilaian_risiko/dto/penilaian_risiko_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	prModel "perwadag_backend/internals/features/penilaian/penilaian_risiko/model"
)

/* ===================== REQUESTS ===================== */

/*
KriteriaPatch: merge field-per-field. Hanya input mentah yang dikirim
yang ditulis; input lain pada blok yang sama dan blok yang tidak dikirim
tidak disentuh. Field turunan (tren, persentase, pilihan hasil, nilai)
TIDAK diterima dari client — selalu dihitung ulang.
*/
type KriteriaPatch struct {
	TrenCapaian           *TrenCapaianPatch           `json:"tren_capaian,omitempty"`
	RealisasiAnggaran     *RealisasiAnggaranPatch     `json:"realisasi_anggaran,omitempty"`
	TrenEkspor            *TrenEksporPatch            `json:"tren_ekspor,omitempty"`
	AuditItjen            *AuditItjenPatch            `json:"audit_itjen,omitempty"`
	PerjanjianPerdagangan *PerjanjianPerdaganganPatch `json:"perjanjian_perdagangan,omitempty"`
	PeringkatEkspor       *PeringkatEksporPatch       `json:"peringkat_ekspor,omitempty"`
	PersentaseIk          *PersentaseIkPatch          `json:"persentase_ik,omitempty"`
	RealisasiTei          *RealisasiTeiPatch          `json:"realisasi_tei,omitempty"`
}

type TrenCapaianPatch struct {
	CapaianTahun1 *float64 `json:"capaian_tahun_1"`
	CapaianTahun2 *float64 `json:"capaian_tahun_2"`
}

type RealisasiAnggaranPatch struct {
	Realisasi *float64 `json:"realisasi"`
	Pagu      *float64 `json:"pagu"`
}

type TrenEksporPatch struct {
	Deskripsi *float64 `json:"deskripsi"`
}

type AuditItjenPatch struct {
	Deskripsi *string `json:"deskripsi"`
	Pilihan   *string `json:"pilihan"`
}

type PerjanjianPerdaganganPatch struct {
	Deskripsi *string `json:"deskripsi"`
	Pilihan   *string `json:"pilihan"`
}

type PeringkatEksporPatch struct {
	Deskripsi *int `json:"deskripsi"`
}

type PersentaseIkPatch struct {
	IkTidakTercapai *int `json:"ik_tidak_tercapai"`
	TotalIk         *int `json:"total_ik"`
}

type RealisasiTeiPatch struct {
	NilaiRealisasi *float64 `json:"nilai_realisasi"`
	NilaiPotensi   *float64 `json:"nilai_potensi"`
}

// ApplyTo menulis input mentah ke blok kriteria tersimpan. Tahun
// pembanding tidak ikut dipatch: nilainya milik periode.
func (p *KriteriaPatch) ApplyTo(k prModel.KriteriaData) prModel.KriteriaData {
	if p.TrenCapaian != nil {
		setF(&k.TrenCapaian.CapaianTahun1, p.TrenCapaian.CapaianTahun1)
		setF(&k.TrenCapaian.CapaianTahun2, p.TrenCapaian.CapaianTahun2)
	}
	if p.RealisasiAnggaran != nil {
		setF(&k.RealisasiAnggaran.Realisasi, p.RealisasiAnggaran.Realisasi)
		setF(&k.RealisasiAnggaran.Pagu, p.RealisasiAnggaran.Pagu)
	}
	if p.TrenEkspor != nil {
		setF(&k.TrenEkspor.Deskripsi, p.TrenEkspor.Deskripsi)
	}
	if p.AuditItjen != nil {
		setS(&k.AuditItjen.Deskripsi, p.AuditItjen.Deskripsi)
		setS(&k.AuditItjen.Pilihan, p.AuditItjen.Pilihan)
	}
	if p.PerjanjianPerdagangan != nil {
		setS(&k.PerjanjianPerdagangan.Deskripsi, p.PerjanjianPerdagangan.Deskripsi)
		setS(&k.PerjanjianPerdagangan.Pilihan, p.PerjanjianPerdagangan.Pilihan)
	}
	if p.PeringkatEkspor != nil {
		setI(&k.PeringkatEkspor.Deskripsi, p.PeringkatEkspor.Deskripsi)
	}
	if p.PersentaseIk != nil {
		setI(&k.PersentaseIk.IkTidakTercapai, p.PersentaseIk.IkTidakTercapai)
		setI(&k.PersentaseIk.TotalIk, p.PersentaseIk.TotalIk)
	}
	if p.RealisasiTei != nil {
		setF(&k.RealisasiTei.NilaiRealisasi, p.RealisasiTei.NilaiRealisasi)
		setF(&k.RealisasiTei.NilaiPotensi, p.RealisasiTei.NilaiPotensi)
	}
	return k
}

func setF(dst **float64, src *float64) {
	if src != nil {
		*dst = src
	}
}

func setS(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

func setI(dst **int, src *int) {
	if src != nil {
		*dst = src
	}
}

type UpdatePenilaianRequest struct {
	KriteriaData  *KriteriaPatch `json:"kriteria_data" validate:"omitempty"`
	Catatan       *string        `json:"catatan" validate:"omitempty,max=1000"`
	AutoCalculate *bool          `json:"auto_calculate" validate:"omitempty"`
}

// AutoCalc default true, meniru perilaku form penilaian.
func (r *UpdatePenilaianRequest) AutoCalc() bool {
	if r.AutoCalculate == nil {
		return true
	}
	return *r.AutoCalculate
}

/* ===================== RESPONSES ===================== */

type PenilaianRisikoResponse struct {
	PenilaianRisikoID uuid.UUID `json:"penilaian_risiko_id"`
	UserPerwadagID    uuid.UUID `json:"user_perwadag_id"`
	NamaPerwadag      string    `json:"nama_perwadag"`
	Inspektorat       string    `json:"inspektorat"`
	PeriodeID         uuid.UUID `json:"periode_id"`
	Tahun             int       `json:"tahun"`

	KriteriaData         prModel.KriteriaData `json:"kriteria_data"`
	IsComplete           bool                 `json:"is_calculation_complete"`
	CompletionPercentage int                  `json:"completion_percentage"`
	MissingCriteria      []string             `json:"missing_criteria,omitempty"`

	TotalNilaiRisiko *float64 `json:"total_nilai_risiko,omitempty"`
	SkorRataRata     *float64 `json:"skor_rata_rata,omitempty"`
	ProfilRisiko     *string  `json:"profil_risiko_auditan,omitempty"`
	Catatan          *string  `json:"catatan,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewPenilaianRisikoResponse(m *prModel.PenilaianRisikoModel) *PenilaianRisikoResponse {
	if m == nil {
		return nil
	}
	k := m.Kriteria()
	return &PenilaianRisikoResponse{
		PenilaianRisikoID:    m.PenilaianRisikoID,
		UserPerwadagID:       m.PenilaianRisikoUserPerwadagID,
		NamaPerwadag:         m.PenilaianRisikoNamaPerwadag,
		Inspektorat:          m.PenilaianRisikoInspektorat,
		PeriodeID:            m.PenilaianRisikoPeriodeID,
		Tahun:                m.PenilaianRisikoTahun,
		KriteriaData:         k,
		IsComplete:           k.IsCalculationComplete(),
		CompletionPercentage: k.CompletionPercentage(),
		MissingCriteria:      k.MissingCriteria(),
		TotalNilaiRisiko:     m.PenilaianRisikoTotalNilaiRisiko,
		SkorRataRata:         m.PenilaianRisikoSkorRataRata,
		ProfilRisiko:         m.PenilaianRisikoProfil,
		Catatan:              m.PenilaianRisikoCatatan,
		CreatedAt:            m.PenilaianRisikoCreatedAt,
		UpdatedAt:            m.PenilaianRisikoUpdatedAt,
	}
}
