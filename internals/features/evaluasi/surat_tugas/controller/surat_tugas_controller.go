// internals/features/evaluasi/surat_tugas/controller/surat_tugas_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"perwadag_backend/internals/features/evaluasi/progress"
	stDTO "perwadag_backend/internals/features/evaluasi/surat_tugas/dto"
	stService "perwadag_backend/internals/features/evaluasi/surat_tugas/service"
	helper "perwadag_backend/internals/helpers"
	"perwadag_backend/internals/helpers/oss"
	"perwadag_backend/internals/helpers/scope"
)

var validate = validator.New()

type SuratTugasController struct {
	Service *stService.SuratTugasService
	Storage oss.Storage
}

func NewSuratTugasController(db *gorm.DB, st oss.Storage) *SuratTugasController {
	return &SuratTugasController{
		Service: stService.NewSuratTugasService(db, st),
		Storage: st,
	}
}

// POST /api/evaluasi/surat-tugas
func (h *SuratTugasController) Create(c *fiber.Ctx) error {
	var req stDTO.CreateSuratTugasRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	st, err := h.Service.Create(&req)
	if err != nil {
		return helper.FromAppError(c, err)
	}

	flags, err := h.Service.Progress(st.SuratTugasID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated,
		"Surat tugas beserta tahapannya berhasil dibuat",
		stDTO.NewSuratTugasResponse(st, &flags))
}

// GET /api/evaluasi/surat-tugas
func (h *SuratTugasController) List(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	f := stService.ListFilter{
		Inspektorat: strings.TrimSpace(c.Query("inspektorat")),
		Status:      strings.TrimSpace(c.Query("status")),
		Search:      strings.TrimSpace(c.Query("q")),
	}
	if v := c.Query("tahun"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Tahun = n
		}
	}

	rows, total, err := h.Service.List(sc, f, p)
	if err != nil {
		return helper.FromAppError(c, err)
	}

	withProgress := c.QueryBool("with_progress", false)
	items := make([]*stDTO.SuratTugasResponse, 0, len(rows))
	for i := range rows {
		var flags *progress.StageFlags
		if withProgress {
			fl, err := h.Service.Progress(rows[i].SuratTugasID)
			if err != nil {
				return helper.FromAppError(c, err)
			}
			flags = &fl
		}
		items = append(items, stDTO.NewSuratTugasResponse(&rows[i], flags))
	}
	return c.JSON(fiber.Map{"data": items, "pagination": helper.BuildMeta(total, p)})
}

// GET /api/evaluasi/surat-tugas/:id
func (h *SuratTugasController) Detail(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	st, err := h.Service.GetByID(sc, id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	flags, err := h.Service.Progress(st.SuratTugasID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "OK", stDTO.NewSuratTugasResponse(st, &flags))
}

// PATCH /api/evaluasi/surat-tugas/:id
func (h *SuratTugasController) Update(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req stDTO.UpdateSuratTugasRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	st, err := h.Service.Update(sc, id, &req)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "Surat tugas diperbarui", stDTO.NewSuratTugasResponse(st, nil))
}

// DELETE /api/evaluasi/surat-tugas/:id
func (h *SuratTugasController) Delete(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := h.Service.Delete(sc, id); err != nil {
		return helper.FromAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Surat tugas beserta tahapannya dihapus", "id": id})
}

// POST /api/evaluasi/surat-tugas/:id/file  (multipart: field "file")
func (h *SuratTugasController) UploadFile(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	if h.Storage == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File wajib dikirim pada field 'file'")
	}

	// blob dulu, record belakangan: progress tidak boleh melaporkan file
	// yang blob-nya gagal tersimpan
	key, url, err := oss.PutFormFile(h.Storage, fh, "evaluasi/surat-tugas")
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Gagal menyimpan file")
	}

	st, err := h.Service.AttachFile(sc, id, key, url, fh.Filename)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "File surat tugas tersimpan", stDTO.NewSuratTugasResponse(st, nil))
}
