// internals/features/evaluasi/tahapan/controller/common.go
package controller

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	stModel "perwadag_backend/internals/features/evaluasi/surat_tugas/model"
	"perwadag_backend/internals/helpers/apperr"
	"perwadag_backend/internals/helpers/scope"
)

var validate = validator.New()

// Semua akses tahapan lewat surat tugas induknya: scope dicek di parent,
// supaya aturan wilayah/kepemilikan satu pintu.
func loadScopedSuratTugas(db *gorm.DB, sc scope.Scope, suratTugasID uuid.UUID) (*stModel.SuratTugasModel, error) {
	var st stModel.SuratTugasModel
	if err := db.Where("surat_tugas_id = ?", suratTugasID).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Surat tugas tidak ditemukan")
		}
		return nil, err
	}
	if !sc.CanSee(st.SuratTugasInspektorat, st.SuratTugasUserPerwadagID) {
		return nil, apperr.ScopeViolation("Surat tugas di luar wilayah akses Anda")
	}
	return &st, nil
}

// Key file di path harus di-escape oleh client; balikkan ke bentuk asli.
func decodeParam(raw string) (string, error) {
	return url.PathUnescape(raw)
}
