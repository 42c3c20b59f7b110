// internals/features/penilaian/periode/controller/periode_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	perDTO "perwadag_backend/internals/features/penilaian/periode/dto"
	perModel "perwadag_backend/internals/features/penilaian/periode/model"
	perService "perwadag_backend/internals/features/penilaian/periode/service"
	helper "perwadag_backend/internals/helpers"
)

var validate = validator.New()

type PeriodeController struct {
	Service *perService.PeriodeService
}

func NewPeriodeController(db *gorm.DB) *PeriodeController {
	return &PeriodeController{Service: perService.NewPeriodeService(db)}
}

// POST /api/penilaian/periode
func (h *PeriodeController) Create(c *fiber.Ctx) error {
	var req perDTO.CreatePeriodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	periode, summary, err := h.Service.CreatePeriode(req.Tahun)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated,
		"Periode dibuat, penilaian risiko digenerate",
		perDTO.CreatePeriodeResponse{
			Periode:  perDTO.NewPeriodeResponse(periode),
			Generate: summary,
		})
}

// GET /api/penilaian/periode
func (h *PeriodeController) List(c *fiber.Ctx) error {
	rows, err := h.Service.List()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil periode")
	}
	items := make([]*perDTO.PeriodeResponse, 0, len(rows))
	for i := range rows {
		items = append(items, perDTO.NewPeriodeResponse(&rows[i]))
	}
	return helper.Success(c, "OK", items)
}

// GET /api/penilaian/periode/:id
func (h *PeriodeController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := h.Service.GetByID(id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "OK", perDTO.NewPeriodeResponse(m))
}

// GET /api/penilaian/periode/:id/summary
func (h *PeriodeController) Summary(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	sum, err := h.Service.Summary(id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "OK", sum)
}

// POST /api/penilaian/periode/:id/regenerate
func (h *PeriodeController) Regenerate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	summary, err := h.Service.RegeneratePenilaian(id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "Generate penilaian selesai", summary)
}

// PATCH /api/penilaian/periode/:id/status
func (h *PeriodeController) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var req perDTO.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := h.Service.SetStatus(id, perModel.PeriodeStatus(req.Status))
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "Status periode diperbarui", perDTO.NewPeriodeResponse(m))
}

// PATCH /api/penilaian/periode/:id/lock
func (h *PeriodeController) SetLock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	var req perDTO.SetLockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	m, err := h.Service.SetLock(id, req.IsLocked)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "Kunci periode diperbarui", perDTO.NewPeriodeResponse(m))
}

// DELETE /api/penilaian/periode/:id
func (h *PeriodeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	if err := h.Service.DeletePeriode(id); err != nil {
		return helper.FromAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Periode beserta penilaiannya dihapus", "id": id})
}
