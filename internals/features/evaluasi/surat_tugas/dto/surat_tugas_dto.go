// internals/features/evaluasi/surat_tugas/dto/surat_tugas_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"perwadag_backend/internals/features/evaluasi/progress"
	stModel "perwadag_backend/internals/features/evaluasi/surat_tugas/model"
)

const dateLayout = "2006-01-02"

/* ===================== REQUESTS ===================== */

type CreateSuratTugasRequest struct {
	UserPerwadagID   string  `json:"user_perwadag_id" validate:"required,uuid4"`
	NoSurat          string  `json:"no_surat" validate:"required,min=3,max=200"`
	TanggalMulai     string  `json:"tanggal_evaluasi_mulai" validate:"required,datetime=2006-01-02"`
	TanggalSelesai   string  `json:"tanggal_evaluasi_selesai" validate:"required,datetime=2006-01-02"`
	PengendaliMutu   *string `json:"pengendali_mutu" validate:"omitempty,max=200"`
	PengendaliTeknis *string `json:"pengendali_teknis" validate:"omitempty,max=200"`
	KetuaTim         *string `json:"ketua_tim" validate:"omitempty,max=200"`
}

func (r *CreateSuratTugasRequest) ParsedDates() (mulai, selesai time.Time, err error) {
	mulai, err = time.Parse(dateLayout, r.TanggalMulai)
	if err != nil {
		return
	}
	selesai, err = time.Parse(dateLayout, r.TanggalSelesai)
	return
}

type UpdateSuratTugasRequest struct {
	NoSurat          *string `json:"no_surat" validate:"omitempty,min=3,max=200"`
	TanggalMulai     *string `json:"tanggal_evaluasi_mulai" validate:"omitempty,datetime=2006-01-02"`
	TanggalSelesai   *string `json:"tanggal_evaluasi_selesai" validate:"omitempty,datetime=2006-01-02"`
	PengendaliMutu   *string `json:"pengendali_mutu" validate:"omitempty,max=200"`
	PengendaliTeknis *string `json:"pengendali_teknis" validate:"omitempty,max=200"`
	KetuaTim         *string `json:"ketua_tim" validate:"omitempty,max=200"`
}

// ApplyToModel: patch field yang dikirim saja. Tanggal sudah divalidasi
// formatnya oleh validator, parse di sini tinggal jalan.
func (r *UpdateSuratTugasRequest) ApplyToModel(m *stModel.SuratTugasModel) {
	if r.NoSurat != nil {
		m.SuratTugasNoSurat = *r.NoSurat
	}
	if r.TanggalMulai != nil {
		if t, err := time.Parse(dateLayout, *r.TanggalMulai); err == nil {
			m.SuratTugasTanggalMulai = t
		}
	}
	if r.TanggalSelesai != nil {
		if t, err := time.Parse(dateLayout, *r.TanggalSelesai); err == nil {
			m.SuratTugasTanggalSelesai = t
		}
	}
	if r.PengendaliMutu != nil {
		m.SuratTugasPengendaliMutu = r.PengendaliMutu
	}
	if r.PengendaliTeknis != nil {
		m.SuratTugasPengendaliTeknis = r.PengendaliTeknis
	}
	if r.KetuaTim != nil {
		m.SuratTugasKetuaTim = r.KetuaTim
	}
	now := time.Now()
	m.SuratTugasUpdatedAt = &now
}

/* ===================== RESPONSES ===================== */

type ProgressResponse struct {
	Stages            progress.StageFlags `json:"stages"`
	CompletedStages   int                 `json:"completed_stages"`
	OverallPercentage int                 `json:"overall_percentage"`
	IsFullyCompleted  bool                `json:"is_fully_completed"`
}

func NewProgressResponse(f progress.StageFlags) ProgressResponse {
	return ProgressResponse{
		Stages:            f,
		CompletedStages:   f.CompletedCount(),
		OverallPercentage: f.OverallPercentage(),
		IsFullyCompleted:  f.IsFullyCompleted(),
	}
}

type SuratTugasResponse struct {
	SuratTugasID   uuid.UUID `json:"surat_tugas_id"`
	UserPerwadagID uuid.UUID `json:"user_perwadag_id"`
	NamaPerwadag   string    `json:"nama_perwadag"`
	Inspektorat    string    `json:"inspektorat"`

	NoSurat          string  `json:"no_surat"`
	TanggalMulai     string  `json:"tanggal_evaluasi_mulai"`
	TanggalSelesai   string  `json:"tanggal_evaluasi_selesai"`
	TahunEvaluasi    int     `json:"tahun_evaluasi"`
	DurasiEvaluasi   int     `json:"durasi_evaluasi"`
	StatusEvaluasi   string  `json:"status_evaluasi"`
	PengendaliMutu   *string `json:"pengendali_mutu,omitempty"`
	PengendaliTeknis *string `json:"pengendali_teknis,omitempty"`
	KetuaTim         *string `json:"ketua_tim,omitempty"`

	FileURL      *string `json:"file_url,omitempty"`
	FileFilename *string `json:"file_filename,omitempty"`

	Progress *ProgressResponse `json:"progress,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewSuratTugasResponse(m *stModel.SuratTugasModel, flags *progress.StageFlags) *SuratTugasResponse {
	if m == nil {
		return nil
	}
	resp := &SuratTugasResponse{
		SuratTugasID:     m.SuratTugasID,
		UserPerwadagID:   m.SuratTugasUserPerwadagID,
		NamaPerwadag:     m.SuratTugasNamaPerwadag,
		Inspektorat:      m.SuratTugasInspektorat,
		NoSurat:          m.SuratTugasNoSurat,
		TanggalMulai:     m.SuratTugasTanggalMulai.Format(dateLayout),
		TanggalSelesai:   m.SuratTugasTanggalSelesai.Format(dateLayout),
		TahunEvaluasi:    m.TahunEvaluasi(),
		DurasiEvaluasi:   m.DurasiEvaluasi(),
		StatusEvaluasi:   m.StatusEvaluasi(time.Now()),
		PengendaliMutu:   m.SuratTugasPengendaliMutu,
		PengendaliTeknis: m.SuratTugasPengendaliTeknis,
		KetuaTim:         m.SuratTugasKetuaTim,
		FileURL:          m.SuratTugasFileURL,
		FileFilename:     m.SuratTugasFileFilename,
		CreatedAt:        m.SuratTugasCreatedAt,
		UpdatedAt:        m.SuratTugasUpdatedAt,
	}
	if flags != nil {
		p := NewProgressResponse(*flags)
		resp.Progress = &p
	}
	return resp
}
