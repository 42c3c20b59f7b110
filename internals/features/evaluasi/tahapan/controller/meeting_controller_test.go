package controller

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	stModel "perwadag_backend/internals/features/evaluasi/surat_tugas/model"
	thpModel "perwadag_backend/internals/features/evaluasi/tahapan/model"
	uModel "perwadag_backend/internals/features/users/model"
	authmw "perwadag_backend/internals/middlewares/auth"
)

func openCtrlTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&uModel.UserModel{},
		&stModel.SuratTugasModel{},
		&thpModel.MeetingModel{},
	))
	return db
}

// app dengan locals caller di-set langsung, menggantikan AuthJWT di test.
func newMeetingTestApp(db *gorm.DB, role, inspektorat string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(authmw.LocUserID, uuid.NewString())
		c.Locals(authmw.LocUserRole, role)
		c.Locals(authmw.LocInspektorat, inspektorat)
		return c.Next()
	})
	ctrl := NewMeetingController(db, nil)
	app.Get("/api/evaluasi/surat-tugas/:suratTugasId/meetings/:meetingType", ctrl.Detail)
	app.Patch("/api/evaluasi/surat-tugas/:suratTugasId/meetings/:meetingType", ctrl.Update)
	return app
}

func seedSuratTugasDenganMeeting(t *testing.T, db *gorm.DB, inspektorat string) *stModel.SuratTugasModel {
	t.Helper()
	st := &stModel.SuratTugasModel{
		SuratTugasUserPerwadagID: uuid.New(),
		SuratTugasNamaPerwadag:   "Atdag Tokyo",
		SuratTugasInspektorat:    inspektorat,
		SuratTugasNoSurat:        "ST/" + uuid.NewString()[:8],
		SuratTugasTanggalMulai:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		SuratTugasTanggalSelesai: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(st).Error)
	require.NoError(t, db.Create(&thpModel.MeetingModel{
		MeetingSuratTugasID: st.SuratTugasID,
		MeetingType:         thpModel.MeetingTypeEntry,
	}).Error)
	return st
}

func TestMeetingDetailLintasWilayahForbidden(t *testing.T) {
	db := openCtrlTestDB(t)
	st := seedSuratTugasDenganMeeting(t, db, "Inspektorat 1")

	app := newMeetingTestApp(db, "inspektorat", "Inspektorat 2")
	req := httptest.NewRequest("GET",
		"/api/evaluasi/surat-tugas/"+st.SuratTugasID.String()+"/meetings/entry", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMeetingDetailSuratTugasTakAdaNotFound(t *testing.T) {
	db := openCtrlTestDB(t)

	app := newMeetingTestApp(db, "admin", "")
	req := httptest.NewRequest("GET",
		"/api/evaluasi/surat-tugas/"+uuid.NewString()+"/meetings/entry", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMeetingUpdateLintasWilayahForbidden(t *testing.T) {
	db := openCtrlTestDB(t)
	st := seedSuratTugasDenganMeeting(t, db, "Inspektorat 1")

	app := newMeetingTestApp(db, "inspektorat", "Inspektorat 2")
	req := httptest.NewRequest("PATCH",
		"/api/evaluasi/surat-tugas/"+st.SuratTugasID.String()+"/meetings/entry",
		strings.NewReader(`{"tanggal":"2025-03-02"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// record tidak berubah
	var m thpModel.MeetingModel
	require.NoError(t, db.Where("meeting_surat_tugas_id = ?", st.SuratTugasID).First(&m).Error)
	assert.Nil(t, m.MeetingTanggal)
}

func TestMeetingDetailDalamWilayahOK(t *testing.T) {
	db := openCtrlTestDB(t)
	st := seedSuratTugasDenganMeeting(t, db, "Inspektorat 1")

	app := newMeetingTestApp(db, "inspektorat", "Inspektorat 1")
	req := httptest.NewRequest("GET",
		"/api/evaluasi/surat-tugas/"+st.SuratTugasID.String()+"/meetings/entry", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
