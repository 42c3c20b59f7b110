// internals/features/evaluasi/tahapan/model/meeting_model.go
package model

import (
	"database/sql/driver"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"perwadag_backend/internals/features/evaluasi/progress"
)

/*
Jenis meeting (sesuai ENUM di DB):
- "entry"      : entry meeting, pembukaan evaluasi
- "konfirmasi" : konfirmasi temuan
- "exit"       : exit meeting, penutupan
*/
type MeetingType string

const (
	MeetingTypeEntry      MeetingType = "entry"
	MeetingTypeKonfirmasi MeetingType = "konfirmasi"
	MeetingTypeExit       MeetingType = "exit"
)

func AllMeetingTypes() []MeetingType {
	return []MeetingType{MeetingTypeEntry, MeetingTypeKonfirmasi, MeetingTypeExit}
}

func (t *MeetingType) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*t = MeetingType(strings.ToLower(strings.TrimSpace(v)))
	case []byte:
		*t = MeetingType(strings.ToLower(strings.TrimSpace(string(v))))
	case nil:
		*t = ""
	}
	return nil
}

func (t MeetingType) Value() (driver.Value, error) {
	return strings.ToLower(strings.TrimSpace(string(t))), nil
}

// MeetingModel: tiga baris per surat tugas (entry/konfirmasi/exit),
// dijaga unik lewat composite index.
type MeetingModel struct {
	MeetingID uuid.UUID `gorm:"type:uuid;primaryKey;column:meeting_id" json:"meeting_id"`

	MeetingSuratTugasID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uq_meeting_st_type;column:meeting_surat_tugas_id" json:"meeting_surat_tugas_id"`
	MeetingType         MeetingType `gorm:"type:varchar(20);not null;uniqueIndex:uq_meeting_st_type;column:meeting_type" json:"meeting_type"`

	MeetingTanggal         *time.Time `gorm:"type:date;column:meeting_tanggal" json:"meeting_tanggal,omitempty"`
	MeetingLinkZoom        *string    `gorm:"type:varchar(500);column:meeting_link_zoom" json:"meeting_link_zoom,omitempty"`
	MeetingLinkDaftarHadir *string    `gorm:"type:varchar(500);column:meeting_link_daftar_hadir" json:"meeting_link_daftar_hadir,omitempty"`

	// Lampiran bukti: bisa lebih dari satu, disimpan sebagai array JSON.
	MeetingFiles datatypes.JSONType[[]FileItem] `gorm:"column:meeting_files" json:"meeting_files"`

	MeetingCreatedAt time.Time      `gorm:"column:meeting_created_at;autoCreateTime" json:"meeting_created_at"`
	MeetingUpdatedAt *time.Time     `gorm:"column:meeting_updated_at;autoUpdateTime" json:"meeting_updated_at,omitempty"`
	MeetingDeletedAt gorm.DeletedAt `gorm:"column:meeting_deleted_at;index" json:"meeting_deleted_at,omitempty"`
}

func (MeetingModel) TableName() string { return "meetings" }

func (m *MeetingModel) BeforeCreate(_ *gorm.DB) error {
	if m.MeetingID == uuid.Nil {
		m.MeetingID = uuid.New()
	}
	return nil
}

func (m *MeetingModel) Files() []FileItem { return m.MeetingFiles.Data() }

func (m *MeetingModel) requiredDone() (done, total int) {
	total = 4
	if m.MeetingTanggal != nil {
		done++
	}
	if m.MeetingLinkZoom != nil && strings.TrimSpace(*m.MeetingLinkZoom) != "" {
		done++
	}
	if m.MeetingLinkDaftarHadir != nil && strings.TrimSpace(*m.MeetingLinkDaftarHadir) != "" {
		done++
	}
	if len(m.Files()) > 0 {
		done++
	}
	return
}

func (m *MeetingModel) IsCompleted() bool {
	done, total := m.requiredDone()
	return done == total
}

func (m *MeetingModel) CompletionPercentage() int {
	done, total := m.requiredDone()
	return progress.Percent(done, total)
}
