// internals/features/users/controller/user_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	uDTO "perwadag_backend/internals/features/users/dto"
	uModel "perwadag_backend/internals/features/users/model"
	helper "perwadag_backend/internals/helpers"
	"perwadag_backend/internals/helpers/apperr"
)

var validate = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

/* ===================== HANDLERS ===================== */

// POST /api/a/users
func (h *UserController) Create(c *fiber.Ctx) error {
	var req uDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	// inspektorat wajib untuk role inspektorat & perwadag
	if req.UserRole != string(uModel.UserRoleAdmin) &&
		(req.UserInspektorat == nil || strings.TrimSpace(*req.UserInspektorat) == "") {
		return fiber.NewError(fiber.StatusBadRequest, "Inspektorat wajib diisi untuk role ini")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
	}

	m := req.ToModel(string(hashed))
	if err := h.DB.Create(m).Error; err != nil {
		if apperr.IsDuplicateKey(err) {
			return helper.FromAppError(c, apperr.Conflict("user_username", "Username sudah dipakai"))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat user")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "User berhasil dibuat", uDTO.NewUserResponse(m))
}

// PATCH /api/a/users/:id
func (h *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req uDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := h.findByID(id)
	if err != nil {
		return err
	}
	req.ApplyToModel(m)

	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui user")
	}
	return helper.Success(c, "User diperbarui", uDTO.NewUserResponse(m))
}

// DELETE /api/a/users/:id (soft delete)
func (h *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := h.findByID(id)
	if err != nil {
		return err
	}
	if err := h.DB.Delete(&uModel.UserModel{}, "user_id = ?", m.UserID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus user")
	}
	return c.JSON(fiber.Map{"message": "User dihapus", "id": m.UserID})
}

// GET /api/a/users/:id
func (h *UserController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := h.findByID(id)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", uDTO.NewUserResponse(m))
}

// GET /api/a/users
func (h *UserController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	orderClause, err := p.SafeOrderClause(map[string]string{
		"created_at": "user_created_at",
		"nama":       "lower(user_nama)",
		"username":   "lower(user_username)",
	}, "created_at")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "sort_by tidak dikenal")
	}
	orderExpr := strings.TrimPrefix(strings.TrimSpace(orderClause), "ORDER BY ")

	dbq := h.DB.Model(&uModel.UserModel{})
	if v := strings.TrimSpace(c.Query("role")); v != "" {
		dbq = dbq.Where("user_role = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(c.Query("inspektorat")); v != "" {
		dbq = dbq.Where("user_inspektorat = ?", v)
	}
	if v := c.Query("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			dbq = dbq.Where("user_is_active = ?", b)
		}
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		dbq = dbq.Where("user_nama ILIKE ? OR user_username ILIKE ?", "%"+v+"%", "%"+v+"%")
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []uModel.UserModel
	if err := dbq.Order(orderExpr).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	items := make([]*uDTO.UserResponse, 0, len(rows))
	for i := range rows {
		items = append(items, uDTO.NewUserResponse(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": items, "pagination": helper.BuildMeta(total, p)})
}

/* ===================== HELPERS ===================== */

func (h *UserController) findByID(id uuid.UUID) (*uModel.UserModel, error) {
	var m uModel.UserModel
	if err := h.DB.Where("user_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return &m, nil
}
