// internals/helpers/scope/scope.go
package scope

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"perwadag_backend/internals/constants"
	authmw "perwadag_backend/internals/middlewares/auth"
)

// Scope adalah identitas caller dalam bentuk varian tertutup:
// admin (tanpa batasan), inspektorat (dibatasi wilayah), perwadag (dibatasi akun).
// Semua query list/get atas surat tugas, tahapan, dan penilaian risiko lewat sini.
type Scope struct {
	Role        string
	Inspektorat string    // terisi hanya untuk role inspektorat
	UserID      uuid.UUID // terisi hanya untuk role perwadag
}

func Admin() Scope { return Scope{Role: constants.RoleAdmin} }

func Inspektorat(wilayah string) Scope {
	return Scope{Role: constants.RoleInspektorat, Inspektorat: wilayah}
}

func Perwadag(userID uuid.UUID) Scope {
	return Scope{Role: constants.RolePerwadag, UserID: userID}
}

// FromCtx membangun Scope dari locals yang dihydrate AuthJWT.
func FromCtx(c *fiber.Ctx) (Scope, error) {
	role, _ := c.Locals(authmw.LocUserRole).(string)
	switch role {
	case constants.RoleAdmin:
		return Admin(), nil
	case constants.RoleInspektorat:
		wilayah, _ := c.Locals(authmw.LocInspektorat).(string)
		if strings.TrimSpace(wilayah) == "" {
			return Scope{}, fiber.NewError(fiber.StatusForbidden, "Akun inspektorat tanpa wilayah")
		}
		return Inspektorat(wilayah), nil
	case constants.RolePerwadag:
		raw, _ := c.Locals(authmw.LocUserID).(string)
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return Scope{}, fiber.NewError(fiber.StatusUnauthorized, "user id tidak valid")
		}
		return Perwadag(id), nil
	}
	return Scope{}, fiber.NewError(fiber.StatusForbidden, "Role tidak dikenal")
}

// Columns memberi tahu predicate kolom mana yang menyimpan wilayah & pemilik
// pada tabel yang sedang di-query (tiap tabel pakai prefix kolomnya sendiri).
type Columns struct {
	Inspektorat string
	PerwadagID  string
}

// Apply menambahkan predicate scope ke query. Admin lolos tanpa filter.
func (s Scope) Apply(q *gorm.DB, cols Columns) *gorm.DB {
	switch s.Role {
	case constants.RoleAdmin:
		return q
	case constants.RoleInspektorat:
		return q.Where(cols.Inspektorat+" = ?", s.Inspektorat)
	case constants.RolePerwadag:
		return q.Where(cols.PerwadagID+" = ?", s.UserID)
	}
	// role tak dikenal: jangan bocorkan apa pun
	return q.Where("1 = 0")
}

// CanSee dipakai jalur fetch-by-id: row ada tetapi di luar scope harus
// menghasilkan ScopeViolation, bukan NotFound.
func (s Scope) CanSee(inspektorat string, perwadagID uuid.UUID) bool {
	switch s.Role {
	case constants.RoleAdmin:
		return true
	case constants.RoleInspektorat:
		return inspektorat == s.Inspektorat
	case constants.RolePerwadag:
		return perwadagID == s.UserID
	}
	return false
}
