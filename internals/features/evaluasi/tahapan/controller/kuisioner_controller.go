// internals/features/evaluasi/tahapan/controller/kuisioner_controller.go
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

type KuisionerController struct {
	DB      *gorm.DB
	Storage oss.Storage
}

func NewKuisionerController(db *gorm.DB, st oss.Storage) *KuisionerController {
	return &KuisionerController{DB: db, Storage: st}
}

func (h *KuisionerController) load(c *fiber.Ctx) (*thpModel.KuisionerModel, error) {
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

	var m thpModel.KuisionerModel
	if err := h.DB.Where("kuisioner_surat_tugas_id = ?", stID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Kuisioner tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/evaluasi/surat-tugas/:suratTugasId/kuisioner
func (h *KuisionerController) Detail(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "OK", thpDTO.NewKuisionerResponse(m))
}

// PATCH /api/evaluasi/surat-tugas/:suratTugasId/kuisioner
func (h *KuisionerController) Update(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}

	var req thpDTO.UpdateKuisionerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.ApplyToModel(m)

	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan kuisioner")
	}
	return helper.Success(c, "Kuisioner diperbarui", thpDTO.NewKuisionerResponse(m))
}

// POST /api/evaluasi/surat-tugas/:suratTugasId/kuisioner/file
func (h *KuisionerController) UploadFile(c *fiber.Ctx) error {
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

	key, url, err := oss.PutFormFile(h.Storage, fh, "evaluasi/kuisioner")
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Gagal menyimpan file")
	}

	oldKey := m.KuisionerFileKey
	m.KuisionerFileKey = &key
	m.KuisionerFileURL = &url
	m.KuisionerFileFilename = &fh.Filename
	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan metadata file")
	}
	if oldKey != nil && *oldKey != "" && *oldKey != key {
		_ = h.Storage.Delete(*oldKey)
	}
	return helper.Success(c, "File kuisioner tersimpan", thpDTO.NewKuisionerResponse(m))
}
