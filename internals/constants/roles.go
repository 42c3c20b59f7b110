package constants

import "fmt"

// Role tunggal per user (tersimpan di kolom user_role & klaim JWT "role")
const (
	RoleAdmin       = "admin"       // Itjen pusat, akses penuh
	RoleInspektorat = "inspektorat" // auditor wilayah, dibatasi kolom inspektorat
	RolePerwadag    = "perwadag"    // perwakilan perdagangan, hanya data miliknya
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess      = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyEvaluatorsCanAccess  = "❌ Hanya admin atau inspektorat yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorEvaluator(feature string) string {
	return fmt.Sprintf(ErrOnlyEvaluatorsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleInspektorat,
		RolePerwadag,
	}

	// boleh mengelola workflow evaluasi & penilaian risiko
	EvaluatorRoles = []string{
		RoleAdmin,
		RoleInspektorat,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
