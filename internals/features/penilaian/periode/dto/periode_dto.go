// internals/features/penilaian/periode/dto/periode_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	perModel "perwadag_backend/internals/features/penilaian/periode/model"
)

/* ===================== REQUESTS ===================== */

type CreatePeriodeRequest struct {
	Tahun int `json:"tahun" validate:"required,min=2000,max=2100"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=aktif tutup"`
}

type SetLockRequest struct {
	IsLocked bool `json:"is_locked"`
}

/* ===================== RESPONSES ===================== */

type PeriodeResponse struct {
	PeriodeID        uuid.UUID `json:"periode_id"`
	Tahun            int       `json:"tahun"`
	Status           string    `json:"status"`
	IsLocked         bool      `json:"is_locked"`
	IsEditable       bool      `json:"is_editable"`
	TahunPembanding1 int       `json:"tahun_pembanding_1"`
	TahunPembanding2 int       `json:"tahun_pembanding_2"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewPeriodeResponse(m *perModel.PeriodeModel) *PeriodeResponse {
	if m == nil {
		return nil
	}
	return &PeriodeResponse{
		PeriodeID:        m.PeriodeID,
		Tahun:            m.PeriodeTahun,
		Status:           string(m.PeriodeStatus),
		IsLocked:         m.PeriodeIsLocked,
		IsEditable:       m.IsEditable(),
		TahunPembanding1: m.TahunPembanding1(),
		TahunPembanding2: m.TahunPembanding2(),
		CreatedAt:        m.PeriodeCreatedAt,
		UpdatedAt:        m.PeriodeUpdatedAt,
	}
}

// GenerateError: satu perwadag yang gagal dibuatkan baris penilaian.
type GenerateError struct {
	UserPerwadagID uuid.UUID `json:"user_perwadag_id"`
	NamaPerwadag   string    `json:"nama_perwadag"`
	Error          string    `json:"error"`
}

// GenerateSummary: hasil bulk generate penilaian, best-effort per baris.
type GenerateSummary struct {
	TotalPerwadag int             `json:"total_perwadag"`
	Generated     int             `json:"generated"`
	Failed        int             `json:"failed"`
	Errors        []GenerateError `json:"errors,omitempty"`
}

type CreatePeriodeResponse struct {
	Periode  *PeriodeResponse `json:"periode"`
	Generate GenerateSummary  `json:"generate"`
}
