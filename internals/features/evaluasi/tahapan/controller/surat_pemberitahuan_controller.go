// internals/features/evaluasi/tahapan/controller/surat_pemberitahuan_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	thpDTO "perwadag_backend/internals/features/evaluasi/tahapan/dto"
	thpModel "perwadag_backend/internals/features/evaluasi/tahapan/model"
	helper "perwadag_backend/internals/helpers"
	"perwadag_backend/internals/helpers/apperr"
	"perwadag_backend/internals/helpers/oss"
	"perwadag_backend/internals/helpers/scope"
)

type SuratPemberitahuanController struct {
	DB      *gorm.DB
	Storage oss.Storage
}

func NewSuratPemberitahuanController(db *gorm.DB, st oss.Storage) *SuratPemberitahuanController {
	return &SuratPemberitahuanController{DB: db, Storage: st}
}

func (h *SuratPemberitahuanController) load(c *fiber.Ctx) (*thpModel.SuratPemberitahuanModel, error) {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return nil, err
	}
	stID, err := uuid.Parse(c.Params("suratTugasId"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID surat tugas tidak valid")
	}
	if _, err := loadScopedSuratTugas(h.DB, sc, stID); err != nil {
		return nil, err
	}

	var m thpModel.SuratPemberitahuanModel
	if err := h.DB.Where("surat_pemberitahuan_surat_tugas_id = ?", stID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Surat pemberitahuan tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/evaluasi/surat-tugas/:suratTugasId/surat-pemberitahuan
func (h *SuratPemberitahuanController) Detail(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "OK", thpDTO.NewSuratPemberitahuanResponse(m))
}

// PATCH /api/evaluasi/surat-tugas/:suratTugasId/surat-pemberitahuan
func (h *SuratPemberitahuanController) Update(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}

	var req thpDTO.UpdateSuratPemberitahuanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.ApplyToModel(m)

	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan surat pemberitahuan")
	}
	return helper.Success(c, "Surat pemberitahuan diperbarui", thpDTO.NewSuratPemberitahuanResponse(m))
}

// POST /api/evaluasi/surat-tugas/:suratTugasId/surat-pemberitahuan/file
func (h *SuratPemberitahuanController) UploadFile(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	if h.Storage == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File wajib dikirim pada field 'file'")
	}

	key, url, err := oss.PutFormFile(h.Storage, fh, "evaluasi/surat-pemberitahuan")
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Gagal menyimpan file")
	}

	oldKey := m.SuratPemberitahuanFileKey
	m.SuratPemberitahuanFileKey = &key
	m.SuratPemberitahuanFileURL = &url
	m.SuratPemberitahuanFileFilename = &fh.Filename
	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan metadata file")
	}
	if oldKey != nil && *oldKey != "" && *oldKey != key {
		_ = h.Storage.Delete(*oldKey)
	}
	return helper.Success(c, "File surat pemberitahuan tersimpan", thpDTO.NewSuratPemberitahuanResponse(m))
}
