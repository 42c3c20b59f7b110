// internals/features/evaluasi/tahapan/controller/meeting_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	thpDTO "perwadag_backend/internals/features/evaluasi/tahapan/dto"
	thpModel "perwadag_backend/internals/features/evaluasi/tahapan/model"
	helper "perwadag_backend/internals/helpers"
	"perwadag_backend/internals/helpers/apperr"
	"perwadag_backend/internals/helpers/oss"
	"perwadag_backend/internals/helpers/scope"
)

type MeetingController struct {
	DB      *gorm.DB
	Storage oss.Storage
}

func NewMeetingController(db *gorm.DB, st oss.Storage) *MeetingController {
	return &MeetingController{DB: db, Storage: st}
}

func parseMeetingType(raw string) (thpModel.MeetingType, error) {
	mt := thpModel.MeetingType(raw)
	switch mt {
	case thpModel.MeetingTypeEntry, thpModel.MeetingTypeKonfirmasi, thpModel.MeetingTypeExit:
		return mt, nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "Jenis meeting tidak dikenal (entry|konfirmasi|exit)")
}

func (h *MeetingController) load(c *fiber.Ctx) (*thpModel.MeetingModel, error) {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return nil, err
	}
	stID, err := uuid.Parse(c.Params("suratTugasId"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID surat tugas tidak valid")
	}
	mt, err := parseMeetingType(c.Params("meetingType"))
	if err != nil {
		return nil, err
	}
	if _, err := loadScopedSuratTugas(h.DB, sc, stID); err != nil {
		return nil, err
	}

	var m thpModel.MeetingModel
	if err := h.DB.Where("meeting_surat_tugas_id = ? AND meeting_type = ?", stID, mt).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Meeting tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

// GET /api/evaluasi/surat-tugas/:suratTugasId/meetings
func (h *MeetingController) ListBySuratTugas(c *fiber.Ctx) error {
	sc, err := scope.FromCtx(c)
	if err != nil {
		return err
	}
	stID, err := uuid.Parse(c.Params("suratTugasId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID surat tugas tidak valid")
	}
	if _, err := loadScopedSuratTugas(h.DB, sc, stID); err != nil {
		return helper.FromAppError(c, err)
	}

	var rows []thpModel.MeetingModel
	if err := h.DB.Where("meeting_surat_tugas_id = ?", stID).
		Order("meeting_type").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil meeting")
	}
	items := make([]*thpDTO.MeetingResponse, 0, len(rows))
	for i := range rows {
		items = append(items, thpDTO.NewMeetingResponse(&rows[i]))
	}
	return helper.Success(c, "OK", items)
}

// GET /api/evaluasi/surat-tugas/:suratTugasId/meetings/:meetingType
func (h *MeetingController) Detail(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.Success(c, "OK", thpDTO.NewMeetingResponse(m))
}

// PATCH /api/evaluasi/surat-tugas/:suratTugasId/meetings/:meetingType
func (h *MeetingController) Update(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}

	var req thpDTO.UpdateMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.ApplyToModel(m)

	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan meeting")
	}
	return helper.Success(c, "Meeting diperbarui", thpDTO.NewMeetingResponse(m))
}

// POST /api/evaluasi/surat-tugas/:suratTugasId/meetings/:meetingType/files
// Lampiran meeting bisa banyak; upload menambah, bukan mengganti.
func (h *MeetingController) UploadFile(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	if h.Storage == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File wajib dikirim pada field 'file'")
	}

	key, url, err := oss.PutFormFile(h.Storage, fh, "evaluasi/meeting/"+string(m.MeetingType))
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Gagal menyimpan file")
	}

	files := append(m.Files(), thpModel.FileItem{Key: key, URL: url, Filename: fh.Filename})
	m.MeetingFiles = datatypes.NewJSONType(files)

	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan metadata file")
	}
	return helper.Success(c, "File meeting tersimpan", thpDTO.NewMeetingResponse(m))
}

// DELETE /api/evaluasi/surat-tugas/:suratTugasId/meetings/:meetingType/files/:fileKey
func (h *MeetingController) DeleteFile(c *fiber.Ctx) error {
	m, err := h.load(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	rawKey, err := decodeParam(c.Params("fileKey"))
	if err != nil || rawKey == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Key file tidak valid")
	}

	files := m.Files()
	kept := files[:0]
	found := false
	for _, f := range files {
		if f.Key == rawKey {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return helper.FromAppError(c, apperr.NotFound("File tidak ditemukan pada meeting ini"))
	}

	m.MeetingFiles = datatypes.NewJSONType(kept)
	if err := h.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan metadata file")
	}
	if h.Storage != nil {
		_ = h.Storage.Delete(rawKey)
	}
	return helper.Success(c, "File meeting dihapus", thpDTO.NewMeetingResponse(m))
}
