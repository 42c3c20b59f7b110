// internals/features/evaluasi/tahapan/dto/tahapan_dto.go
package dto

import (
	"time"

	"gorm.io/datatypes"

	thpModel "perwadag_backend/internals/features/evaluasi/tahapan/model"
)

const dateLayout = "2006-01-02"

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

/* ===================== SURAT PEMBERITAHUAN ===================== */

type UpdateSuratPemberitahuanRequest struct {
	Tanggal *string `json:"tanggal" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateSuratPemberitahuanRequest) ApplyToModel(m *thpModel.SuratPemberitahuanModel) {
	if t := parseDate(r.Tanggal); t != nil {
		m.SuratPemberitahuanTanggal = t
	}
	now := time.Now()
	m.SuratPemberitahuanUpdatedAt = &now
}

type SuratPemberitahuanResponse struct {
	*thpModel.SuratPemberitahuanModel
	IsCompleted          bool `json:"is_completed"`
	CompletionPercentage int  `json:"completion_percentage"`
}

func NewSuratPemberitahuanResponse(m *thpModel.SuratPemberitahuanModel) *SuratPemberitahuanResponse {
	if m == nil {
		return nil
	}
	return &SuratPemberitahuanResponse{
		SuratPemberitahuanModel: m,
		IsCompleted:             m.IsCompleted(),
		CompletionPercentage:    m.CompletionPercentage(),
	}
}

/* ===================== MEETING ===================== */

type UpdateMeetingRequest struct {
	Tanggal         *string `json:"tanggal" validate:"omitempty,datetime=2006-01-02"`
	LinkZoom        *string `json:"link_zoom" validate:"omitempty,url,max=500"`
	LinkDaftarHadir *string `json:"link_daftar_hadir" validate:"omitempty,url,max=500"`
}

func (r *UpdateMeetingRequest) ApplyToModel(m *thpModel.MeetingModel) {
	if t := parseDate(r.Tanggal); t != nil {
		m.MeetingTanggal = t
	}
	if r.LinkZoom != nil {
		m.MeetingLinkZoom = r.LinkZoom
	}
	if r.LinkDaftarHadir != nil {
		m.MeetingLinkDaftarHadir = r.LinkDaftarHadir
	}
	now := time.Now()
	m.MeetingUpdatedAt = &now
}

type MeetingResponse struct {
	*thpModel.MeetingModel
	Files                []thpModel.FileItem `json:"files"`
	IsCompleted          bool                `json:"is_completed"`
	CompletionPercentage int                 `json:"completion_percentage"`
}

func NewMeetingResponse(m *thpModel.MeetingModel) *MeetingResponse {
	if m == nil {
		return nil
	}
	return &MeetingResponse{
		MeetingModel:         m,
		Files:                m.Files(),
		IsCompleted:          m.IsCompleted(),
		CompletionPercentage: m.CompletionPercentage(),
	}
}

/* ===================== MATRIKS ===================== */

type TemuanRekomendasiRequest struct {
	Kondisi     string `json:"kondisi" validate:"required,min=3"`
	Rekomendasi string `json:"rekomendasi" validate:"required,min=3"`
}

type UpdateMatriksRequest struct {
	Nomor  *string                    `json:"nomor" validate:"omitempty,min=3,max=200"`
	Temuan []TemuanRekomendasiRequest `json:"temuan" validate:"omitempty,dive"`
}

func (r *UpdateMatriksRequest) ApplyToModel(m *thpModel.MatriksModel) {
	if r.Nomor != nil {
		m.MatriksNomor = r.Nomor
	}
	if r.Temuan != nil {
		list := make([]thpModel.TemuanRekomendasi, 0, len(r.Temuan))
		for _, t := range r.Temuan {
			list = append(list, thpModel.TemuanRekomendasi{
				Kondisi:     t.Kondisi,
				Rekomendasi: t.Rekomendasi,
			})
		}
		m.MatriksTemuan = datatypes.NewJSONType(list)
	}
	now := time.Now()
	m.MatriksUpdatedAt = &now
}

type MatriksResponse struct {
	*thpModel.MatriksModel
	Temuan               []thpModel.TemuanRekomendasi `json:"temuan"`
	IsCompleted          bool                         `json:"is_completed"`
	CompletionPercentage int                          `json:"completion_percentage"`
}

func NewMatriksResponse(m *thpModel.MatriksModel) *MatriksResponse {
	if m == nil {
		return nil
	}
	return &MatriksResponse{
		MatriksModel:         m,
		Temuan:               m.Temuan(),
		IsCompleted:          m.IsCompleted(),
		CompletionPercentage: m.CompletionPercentage(),
	}
}

/* ===================== LAPORAN HASIL ===================== */

type UpdateLaporanHasilRequest struct {
	Nomor   *string `json:"nomor" validate:"omitempty,min=3,max=200"`
	Tanggal *string `json:"tanggal" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateLaporanHasilRequest) ApplyToModel(m *thpModel.LaporanHasilModel) {
	if r.Nomor != nil {
		m.LaporanHasilNomor = r.Nomor
	}
	if t := parseDate(r.Tanggal); t != nil {
		m.LaporanHasilTanggal = t
	}
	now := time.Now()
	m.LaporanHasilUpdatedAt = &now
}

type LaporanHasilResponse struct {
	*thpModel.LaporanHasilModel
	IsCompleted          bool `json:"is_completed"`
	CompletionPercentage int  `json:"completion_percentage"`
}

func NewLaporanHasilResponse(m *thpModel.LaporanHasilModel) *LaporanHasilResponse {
	if m == nil {
		return nil
	}
	return &LaporanHasilResponse{
		LaporanHasilModel:    m,
		IsCompleted:          m.IsCompleted(),
		CompletionPercentage: m.CompletionPercentage(),
	}
}

/* ===================== KUISIONER ===================== */

type UpdateKuisionerRequest struct {
	Tanggal *string `json:"tanggal" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateKuisionerRequest) ApplyToModel(m *thpModel.KuisionerModel) {
	if t := parseDate(r.Tanggal); t != nil {
		m.KuisionerTanggal = t
	}
	now := time.Now()
	m.KuisionerUpdatedAt = &now
}

type KuisionerResponse struct {
	*thpModel.KuisionerModel
	IsCompleted          bool `json:"is_completed"`
	CompletionPercentage int  `json:"completion_percentage"`
}

func NewKuisionerResponse(m *thpModel.KuisionerModel) *KuisionerResponse {
	if m == nil {
		return nil
	}
	return &KuisionerResponse{
		KuisionerModel:       m,
		IsCompleted:          m.IsCompleted(),
		CompletionPercentage: m.CompletionPercentage(),
	}
}
