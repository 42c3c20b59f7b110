// internals/features/evaluasi/surat_tugas/service/surat_tugas_service.go
package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"perwadag_backend/internals/features/evaluasi/progress"
	stDTO "perwadag_backend/internals/features/evaluasi/surat_tugas/dto"
	stModel "perwadag_backend/internals/features/evaluasi/surat_tugas/model"
	thpModel "perwadag_backend/internals/features/evaluasi/tahapan/model"
	uModel "perwadag_backend/internals/features/users/model"
	helper "perwadag_backend/internals/helpers"
	"perwadag_backend/internals/helpers/apperr"
	"perwadag_backend/internals/helpers/oss"
	"perwadag_backend/internals/helpers/scope"
)

/*
SuratTugasService adalah orkestrator workflow: create menanam parent +
tujuh tahapan dalam SATU transaksi, delete mencabut semuanya dalam satu
transaksi. Tidak ada jalur yang meninggalkan surat tugas tanpa tahapan
lengkap, atau tahapan yatim tanpa surat tugas.
*/
type SuratTugasService struct {
	DB      *gorm.DB
	Storage oss.Storage // boleh nil (mis. di test); cleanup file jadi no-op
}

func NewSuratTugasService(db *gorm.DB, st oss.Storage) *SuratTugasService {
	return &SuratTugasService{DB: db, Storage: st}
}

/* ===================== CREATE ===================== */

func (s *SuratTugasService) Create(req *stDTO.CreateSuratTugasRequest) (*stModel.SuratTugasModel, error) {
	mulai, selesai, err := req.ParsedDates()
	if err != nil {
		return nil, apperr.Validation("tanggal", "Format tanggal tidak valid (YYYY-MM-DD)")
	}
	if selesai.Before(mulai) {
		return nil, apperr.Validation("tanggal_evaluasi_selesai", "Tanggal selesai harus >= tanggal mulai")
	}

	perwadagID, err := uuid.Parse(req.UserPerwadagID)
	if err != nil {
		return nil, apperr.Validation("user_perwadag_id", "ID perwadag tidak valid")
	}

	var perwadag uModel.UserModel
	if err := s.DB.Where("user_id = ? AND user_role = ?", perwadagID, uModel.UserRolePerwadag).
		First(&perwadag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Akun perwadag tidak ditemukan")
		}
		return nil, err
	}
	if !perwadag.UserIsActive {
		return nil, apperr.Validation("user_perwadag_id", "Akun perwadag nonaktif")
	}
	if strings.TrimSpace(perwadag.Inspektorat()) == "" {
		return nil, apperr.Validation("user_perwadag_id", "Akun perwadag tanpa inspektorat")
	}

	st := &stModel.SuratTugasModel{
		SuratTugasUserPerwadagID:   perwadag.UserID,
		SuratTugasNamaPerwadag:     perwadag.UserNama,
		SuratTugasInspektorat:      perwadag.Inspektorat(),
		SuratTugasNoSurat:          strings.TrimSpace(req.NoSurat),
		SuratTugasTanggalMulai:     mulai,
		SuratTugasTanggalSelesai:   selesai,
		SuratTugasPengendaliMutu:   req.PengendaliMutu,
		SuratTugasPengendaliTeknis: req.PengendaliTeknis,
		SuratTugasKetuaTim:         req.KetuaTim,
	}

	// Satu transaksi: parent + 7 tahapan, atau tidak sama sekali.
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(st).Error; err != nil {
			return err
		}

		if err := tx.Create(&thpModel.SuratPemberitahuanModel{
			SuratPemberitahuanSuratTugasID: st.SuratTugasID,
		}).Error; err != nil {
			return err
		}

		for _, mt := range thpModel.AllMeetingTypes() {
			if err := tx.Create(&thpModel.MeetingModel{
				MeetingSuratTugasID: st.SuratTugasID,
				MeetingType:         mt,
			}).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&thpModel.MatriksModel{
			MatriksSuratTugasID: st.SuratTugasID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Create(&thpModel.LaporanHasilModel{
			LaporanHasilSuratTugasID: st.SuratTugasID,
		}).Error; err != nil {
			return err
		}
		if err := tx.Create(&thpModel.KuisionerModel{
			KuisionerSuratTugasID: st.SuratTugasID,
		}).Error; err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		if apperr.IsDuplicateKey(txErr) {
			return nil, apperr.Conflict("no_surat", "Nomor surat tugas sudah dipakai")
		}
		return nil, apperr.CascadeFailure("Gagal membuat surat tugas beserta tahapannya", txErr)
	}

	return st, nil
}

/* ===================== READ ===================== */

var scopeCols = scope.Columns{
	Inspektorat: "surat_tugas_inspektorat",
	PerwadagID:  "surat_tugas_user_perwadag_id",
}

// GetByID: row di luar scope caller = ScopeViolation, bukan NotFound.
func (s *SuratTugasService) GetByID(sc scope.Scope, id uuid.UUID) (*stModel.SuratTugasModel, error) {
	var st stModel.SuratTugasModel
	if err := s.DB.Where("surat_tugas_id = ?", id).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Surat tugas tidak ditemukan")
		}
		return nil, err
	}
	if !sc.CanSee(st.SuratTugasInspektorat, st.SuratTugasUserPerwadagID) {
		return nil, apperr.ScopeViolation("Surat tugas di luar wilayah akses Anda")
	}
	return &st, nil
}

type ListFilter struct {
	Tahun       int
	Inspektorat string
	Status      string // belum_mulai | berlangsung | selesai
	Search      string
}

func (s *SuratTugasService) List(sc scope.Scope, f ListFilter, p helper.Params) ([]stModel.SuratTugasModel, int64, error) {
	dbq := sc.Apply(s.DB.Model(&stModel.SuratTugasModel{}), scopeCols)

	if f.Tahun > 0 {
		dbq = dbq.Where("EXTRACT(YEAR FROM surat_tugas_tanggal_mulai) = ?", f.Tahun)
	}
	if strings.TrimSpace(f.Inspektorat) != "" {
		dbq = dbq.Where("surat_tugas_inspektorat = ?", f.Inspektorat)
	}
	if st := strings.TrimSpace(f.Status); st != "" {
		// batas hari dinormalisasi ke tengah malam, selaras StatusEvaluasi
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		switch st {
		case "belum_mulai":
			dbq = dbq.Where("surat_tugas_tanggal_mulai > ?", today)
		case "berlangsung":
			dbq = dbq.Where("surat_tugas_tanggal_mulai <= ? AND surat_tugas_tanggal_selesai >= ?", today, today)
		case "selesai":
			dbq = dbq.Where("surat_tugas_tanggal_selesai < ?", today)
		default:
			return nil, 0, apperr.Validation("status", "status harus belum_mulai/berlangsung/selesai")
		}
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		dbq = dbq.Where("surat_tugas_nama_perwadag ILIKE ? OR surat_tugas_no_surat ILIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause, err := p.SafeOrderClause(map[string]string{
		"created_at":    "surat_tugas_created_at",
		"tanggal_mulai": "surat_tugas_tanggal_mulai",
		"nama_perwadag": "lower(surat_tugas_nama_perwadag)",
	}, "created_at")
	if err != nil {
		return nil, 0, apperr.Validation("sort_by", "sort_by tidak dikenal")
	}

	var rows []stModel.SuratTugasModel
	if err := dbq.Order(strings.TrimPrefix(orderClause, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* ===================== UPDATE ===================== */

func (s *SuratTugasService) Update(sc scope.Scope, id uuid.UUID, req *stDTO.UpdateSuratTugasRequest) (*stModel.SuratTugasModel, error) {
	st, err := s.GetByID(sc, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(st)

	if st.SuratTugasTanggalSelesai.Before(st.SuratTugasTanggalMulai) {
		return nil, apperr.Validation("tanggal_evaluasi_selesai", "Tanggal selesai harus >= tanggal mulai")
	}

	if err := s.DB.Save(st).Error; err != nil {
		if apperr.IsDuplicateKey(err) {
			return nil, apperr.Conflict("no_surat", "Nomor surat tugas sudah dipakai")
		}
		return nil, err
	}
	return st, nil
}

// AttachFile menyimpan metadata lampiran setelah blob tersimpan.
// Urutan: Put blob dulu (di controller), baru record — jangan dibalik.
func (s *SuratTugasService) AttachFile(sc scope.Scope, id uuid.UUID, key, url, filename string) (*stModel.SuratTugasModel, error) {
	st, err := s.GetByID(sc, id)
	if err != nil {
		return nil, err
	}
	oldKey := st.SuratTugasFileKey

	st.SuratTugasFileKey = &key
	st.SuratTugasFileURL = &url
	st.SuratTugasFileFilename = &filename
	now := time.Now()
	st.SuratTugasUpdatedAt = &now

	if err := s.DB.Save(st).Error; err != nil {
		return nil, err
	}
	// file lama dibersihkan best-effort
	if oldKey != nil && *oldKey != "" && *oldKey != key {
		s.deleteBlob(*oldKey)
	}
	return st, nil
}

/* ===================== DELETE ===================== */

// Delete mencabut surat tugas + tujuh tahapannya dalam satu transaksi
// (soft delete). Blob lampiran dihapus best-effort SETELAH commit:
// gagal hapus blob tidak membatalkan penghapusan record.
func (s *SuratTugasService) Delete(sc scope.Scope, id uuid.UUID) error {
	st, err := s.GetByID(sc, id)
	if err != nil {
		return err
	}

	blobKeys := s.collectBlobKeys(st)

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("surat_pemberitahuan_surat_tugas_id = ?", id).
			Delete(&thpModel.SuratPemberitahuanModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meeting_surat_tugas_id = ?", id).
			Delete(&thpModel.MeetingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("matriks_surat_tugas_id = ?", id).
			Delete(&thpModel.MatriksModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("laporan_hasil_surat_tugas_id = ?", id).
			Delete(&thpModel.LaporanHasilModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("kuisioner_surat_tugas_id = ?", id).
			Delete(&thpModel.KuisionerModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("surat_tugas_id = ?", id).
			Delete(&stModel.SuratTugasModel{}).Error; err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		return apperr.CascadeFailure("Gagal menghapus surat tugas beserta tahapannya", txErr)
	}

	for _, k := range blobKeys {
		s.deleteBlob(k)
	}
	return nil
}

func (s *SuratTugasService) collectBlobKeys(st *stModel.SuratTugasModel) []string {
	keys := make([]string, 0, 8)
	add := func(k *string) {
		if k != nil && strings.TrimSpace(*k) != "" {
			keys = append(keys, *k)
		}
	}
	add(st.SuratTugasFileKey)

	var sp thpModel.SuratPemberitahuanModel
	if err := s.DB.Where("surat_pemberitahuan_surat_tugas_id = ?", st.SuratTugasID).First(&sp).Error; err == nil {
		add(sp.SuratPemberitahuanFileKey)
	}
	var meetings []thpModel.MeetingModel
	if err := s.DB.Where("meeting_surat_tugas_id = ?", st.SuratTugasID).Find(&meetings).Error; err == nil {
		for i := range meetings {
			for _, f := range meetings[i].Files() {
				if f.Key != "" {
					keys = append(keys, f.Key)
				}
			}
		}
	}
	var mtr thpModel.MatriksModel
	if err := s.DB.Where("matriks_surat_tugas_id = ?", st.SuratTugasID).First(&mtr).Error; err == nil {
		add(mtr.MatriksFileKey)
	}
	var lap thpModel.LaporanHasilModel
	if err := s.DB.Where("laporan_hasil_surat_tugas_id = ?", st.SuratTugasID).First(&lap).Error; err == nil {
		add(lap.LaporanHasilFileKey)
	}
	var kui thpModel.KuisionerModel
	if err := s.DB.Where("kuisioner_surat_tugas_id = ?", st.SuratTugasID).First(&kui).Error; err == nil {
		add(kui.KuisionerFileKey)
	}
	return keys
}

func (s *SuratTugasService) deleteBlob(key string) {
	if s.Storage == nil {
		return
	}
	if err := s.Storage.Delete(key); err != nil {
		log.Printf("⚠️ gagal hapus file %s: %v", key, err)
	}
}

/* ===================== PROGRESS ===================== */

// Progress memuat tujuh tahapan dan menurunkan flag lengkap per tahap.
func (s *SuratTugasService) Progress(suratTugasID uuid.UUID) (progress.StageFlags, error) {
	var flags progress.StageFlags

	var sp thpModel.SuratPemberitahuanModel
	if err := s.DB.Where("surat_pemberitahuan_surat_tugas_id = ?", suratTugasID).First(&sp).Error; err == nil {
		flags.SuratPemberitahuan = sp.IsCompleted()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return flags, err
	}

	var meetings []thpModel.MeetingModel
	if err := s.DB.Where("meeting_surat_tugas_id = ?", suratTugasID).Find(&meetings).Error; err != nil {
		return flags, err
	}
	for i := range meetings {
		done := meetings[i].IsCompleted()
		switch meetings[i].MeetingType {
		case thpModel.MeetingTypeEntry:
			flags.EntryMeeting = done
		case thpModel.MeetingTypeKonfirmasi:
			flags.KonfirmasiMeeting = done
		case thpModel.MeetingTypeExit:
			flags.ExitMeeting = done
		}
	}

	var mtr thpModel.MatriksModel
	if err := s.DB.Where("matriks_surat_tugas_id = ?", suratTugasID).First(&mtr).Error; err == nil {
		flags.Matriks = mtr.IsCompleted()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return flags, err
	}

	var lap thpModel.LaporanHasilModel
	if err := s.DB.Where("laporan_hasil_surat_tugas_id = ?", suratTugasID).First(&lap).Error; err == nil {
		flags.LaporanHasil = lap.IsCompleted()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return flags, err
	}

	var kui thpModel.KuisionerModel
	if err := s.DB.Where("kuisioner_surat_tugas_id = ?", suratTugasID).First(&kui).Error; err == nil {
		flags.Kuisioner = kui.IsCompleted()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return flags, err
	}

	return flags, nil
}
