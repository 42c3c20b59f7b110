// internals/seeds/users/seed_users.go
package users

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	uModel "perwadag_backend/internals/features/users/model"
)

func strptr(s string) *string { return &s }

// SeedUsers mengisi akun awal: satu admin, satu auditor per wilayah
// contoh, dan beberapa perwadag. Idempotent: username yang sudah ada
// dilewati.
func SeedUsers(db *gorm.DB) {
	seed := []struct {
		Nama        string
		Username    string
		Password    string
		Role        uModel.UserRole
		Inspektorat *string
	}{
		{"Administrator Itjen", "admin", "admin12345", uModel.UserRoleAdmin, nil},
		{"Auditor Wilayah 1", "auditor.wil1", "auditor12345", uModel.UserRoleInspektorat, strptr("Inspektorat 1")},
		{"Auditor Wilayah 2", "auditor.wil2", "auditor12345", uModel.UserRoleInspektorat, strptr("Inspektorat 2")},
		{"Atase Perdagangan Tokyo", "atdag.tokyo", "perwadag12345", uModel.UserRolePerwadag, strptr("Inspektorat 1")},
		{"ITPC Dubai", "itpc.dubai", "perwadag12345", uModel.UserRolePerwadag, strptr("Inspektorat 2")},
	}

	for _, s := range seed {
		var count int64
		if err := db.Model(&uModel.UserModel{}).
			Where("user_username = ?", s.Username).
			Count(&count).Error; err != nil {
			log.Printf("❌ seed users: cek %s gagal: %v", s.Username, err)
			continue
		}
		if count > 0 {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ seed users: hash password %s gagal: %v", s.Username, err)
			continue
		}

		u := &uModel.UserModel{
			UserNama:        s.Nama,
			UserUsername:    s.Username,
			UserPassword:    string(hashed),
			UserRole:        s.Role,
			UserInspektorat: s.Inspektorat,
			UserIsActive:    true,
		}
		if err := db.Create(u).Error; err != nil {
			log.Printf("❌ seed users: insert %s gagal: %v", s.Username, err)
			continue
		}
		log.Printf("✅ seed users: %s (%s) dibuat", s.Username, s.Role)
	}
}
