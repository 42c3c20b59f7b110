// internals/features/users/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"perwadag_backend/internals/configs"
	uDTO "perwadag_backend/internals/features/users/dto"
	uModel "perwadag_backend/internals/features/users/model"
	helper "perwadag_backend/internals/helpers"
	authmw "perwadag_backend/internals/middlewares/auth"
)

const accessTokenTTL = 8 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req uDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Username dan password wajib diisi")
	}

	var user uModel.UserModel
	if err := h.DB.Where("user_username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Akun nonaktif")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
	}

	token, err := issueAccessToken(&user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat token")
	}

	// cookie fallback untuk frontend yang tidak simpan bearer
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(accessTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return helper.Success(c, "Login berhasil", uDTO.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
		User:        uDTO.NewUserResponse(&user),
	})
}

// GET /api/auth/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	uid, _ := c.Locals(authmw.LocUserID).(string)
	var user uModel.UserModel
	if err := h.DB.Where("user_id = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	return helper.Success(c, "OK", uDTO.NewUserResponse(&user))
}

// POST /api/auth/logout
func (h *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return helper.Success(c, "Logout berhasil", nil)
}

func issueAccessToken(u *uModel.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"id":   u.UserID.String(),
		"nama": u.UserNama,
		"role": string(u.UserRole),
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	if u.UserInspektorat != nil {
		claims["inspektorat"] = *u.UserInspektorat
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(configs.JWTSecret))
}
