// internals/features/penilaian/penilaian_risiko/controller/penilaian_risiko_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	prDTO "perwadag_backend/internals/features/penilaian/penilaian_risiko/dto"
	prService "perwadag_backend/internals/features/penilaian/penilaian_risiko/service"
	helper "perwadag_backend/internals/helpers"
	"perwadag_backend/internals/helpers/scope"
)

var validate = validator.New()

type PenilaianRisikoController struct {
	Service *prService.PenilaianService
}

func NewPenilaianRisikoController(db *gorm.DB) *PenilaianRisikoController {
	return &PenilaianRisikoController{Service: prService.NewPenilaianService(db)}
}

// GET /api/penilaian/penilaian-risiko
func (h *PenilaianRisikoController) List(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	f := prService.ListFilter{
		Inspektorat: strings.TrimSpace(c.Query("inspektorat")),
		Profil:      strings.TrimSpace(c.Query("profil")),
		Search:      strings.TrimSpace(c.Query("q")),
	}
	if v := c.Query("periode_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.PeriodeID = id
		}
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
	items := make([]*prDTO.PenilaianRisikoResponse, 0, len(rows))
	for i := range rows {
		items = append(items, prDTO.NewPenilaianRisikoResponse(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": items, "pagination": helper.BuildMeta(total, p)})
}

// GET /api/penilaian/penilaian-risiko/:id
func (h *PenilaianRisikoController) Detail(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	m, err := h.Service.GetByID(sc, id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "OK", prDTO.NewPenilaianRisikoResponse(m))
}

// PATCH /api/penilaian/penilaian-risiko/:id
func (h *PenilaianRisikoController) Update(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req prDTO.UpdatePenilaianRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := h.Service.UpdateKriteria(sc, id, &req)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "Penilaian risiko diperbarui", prDTO.NewPenilaianRisikoResponse(m))
}

// POST /api/penilaian/penilaian-risiko/:id/calculate
func (h *PenilaianRisikoController) Calculate(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	force := c.QueryBool("force", false)

	m, err := h.Service.Calculate(sc, id, force)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "Kalkulasi penilaian risiko selesai", prDTO.NewPenilaianRisikoResponse(m))
}
