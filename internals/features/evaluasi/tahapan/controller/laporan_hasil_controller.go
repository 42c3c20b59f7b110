// internals/features/evaluasi/tahapan/controller/laporan_hasil_controller.go
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

type LaporanHasilController struct {
	DB      *gorm.DB
	Storage oss.Storage
}

func NewLaporanHasilController(db *gorm.DB, st oss.Storage) *LaporanHasilController {
	return &LaporanHasilController{DB: db, Storage: st}
}

func (h *LaporanHasilController) load(c *fiber.Ctx) (*thpModel.LaporanHasilModel, error) {
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

	var m thpModel.LaporanHasilModel
	if err := h.DB.Where("laporan_hasil_surat_tugas_id = ?", stID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Laporan hasil tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/evaluasi/surat-tugas/:suratTugasId/laporan-hasil
func (h *LaporanHasilController) Detail(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "OK", thpDTO.NewLaporanHasilResponse(m))
}

// PATCH /api/evaluasi/surat-tugas/:suratTugasId/laporan-hasil
func (h *LaporanHasilController) Update(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}

	var req thpDTO.UpdateLaporanHasilRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.ApplyToModel(m)

	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan laporan hasil")
	}
	return helper.Success(c, "Laporan hasil diperbarui", thpDTO.NewLaporanHasilResponse(m))
}

// POST /api/evaluasi/surat-tugas/:suratTugasId/laporan-hasil/file
func (h *LaporanHasilController) UploadFile(c *fiber.Ctx) error {
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

	key, url, err := oss.PutFormFile(h.Storage, fh, "evaluasi/laporan-hasil")
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Gagal menyimpan file")
	}

	oldKey := m.LaporanHasilFileKey
	m.LaporanHasilFileKey = &key
	m.LaporanHasilFileURL = &url
	m.LaporanHasilFileFilename = &fh.Filename
	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan metadata file")
	}
	if oldKey != nil && *oldKey != "" && *oldKey != key {
		_ = h.Storage.Delete(*oldKey)
	}
	return helper.Success(c, "File laporan hasil tersimpan", thpDTO.NewLaporanHasilResponse(m))
}
