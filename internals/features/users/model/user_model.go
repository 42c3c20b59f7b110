// internals/features/users/model/user_model.go
package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
Role (sesuai ENUM di DB):
- "admin"
- "inspektorat"
- "perwadag"
*/
type UserRole string

const (
	UserRoleAdmin       UserRole = "admin"
	UserRoleInspektorat UserRole = "inspektorat"
	UserRolePerwadag    UserRole = "perwadag"
)

// Pastikan selalu lower-case saat scan/save
func (r *UserRole) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*r = UserRole(strings.ToLower(strings.TrimSpace(v)))
	case []byte:
		*r = UserRole(strings.ToLower(strings.TrimSpace(string(v))))
	case nil:
		*r = ""
	default:
		*r = UserRole(strings.ToLower(strings.TrimSpace(v.(string))))
	}
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(r))), nil
}

type UserModel struct {
	// PK (diisi BeforeCreate supaya jalan juga di sqlite saat test)
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`

	// Identitas
	UserNama     string  `gorm:"type:varchar(200);not null;column:user_nama" json:"user_nama"`
	UserUsername string  `gorm:"type:varchar(100);uniqueIndex;not null;column:user_username" json:"user_username"`
	UserEmail    *string `gorm:"type:varchar(200);column:user_email" json:"user_email,omitempty"`
	UserPassword string  `gorm:"type:varchar(200);not null;column:user_password" json:"-"`

	// Role & wilayah kerja. Inspektorat wajib untuk role inspektorat & perwadag.
	UserRole        UserRole `gorm:"type:varchar(20);not null;index;column:user_role" json:"user_role"`
	UserInspektorat *string  `gorm:"type:varchar(100);index;column:user_inspektorat" json:"user_inspektorat,omitempty"`

	UserIsActive bool `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	// Audit
	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time     `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}

func (m *UserModel) Inspektorat() string {
	if m.UserInspektorat == nil {
		return ""
	}
	return *m.UserInspektorat
}
