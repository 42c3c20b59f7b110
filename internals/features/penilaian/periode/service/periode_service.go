// internals/features/penilaian/periode/service/periode_service.go
package service

import (
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	perDTO "perwadag_backend/internals/features/penilaian/periode/dto"
	perModel "perwadag_backend/internals/features/penilaian/periode/model"
	prModel "perwadag_backend/internals/features/penilaian/penilaian_risiko/model"
	uModel "perwadag_backend/internals/features/users/model"
	"perwadag_backend/internals/helpers/apperr"
)

type PeriodeService struct {
	DB *gorm.DB
}

func NewPeriodeService(db *gorm.DB) *PeriodeService {
	return &PeriodeService{DB: db}
}

/* ===================== CREATE + BULK GENERATE ===================== */

/*
CreatePeriode membuat periode lalu men-generate satu baris penilaian
per perwadag aktif. Generate SENGAJA best-effort per baris: satu akun
bermasalah tidak boleh memblokir setup periode untuk seluruh fleet.
Tahun dijaga unik oleh constraint DB; pre-check saja bisa kalah balapan.
*/
func (s *PeriodeService) CreatePeriode(tahun int) (*perModel.PeriodeModel, perDTO.GenerateSummary, error) {
	var summary perDTO.GenerateSummary

	periode := &perModel.PeriodeModel{
		PeriodeTahun:  tahun,
		PeriodeStatus: perModel.PeriodeStatusAktif,
	}
	if err := s.DB.Create(periode).Error; err != nil {
		if apperr.IsDuplicateKey(err) {
			return nil, summary, apperr.Conflict("tahun", "Periode untuk tahun tersebut sudah ada")
		}
		return nil, summary, err
	}

	summary = s.generatePenilaian(periode)
	return periode, summary, nil
}

func (s *PeriodeService) generatePenilaian(periode *perModel.PeriodeModel) perDTO.GenerateSummary {
	var summary perDTO.GenerateSummary

	var perwadags []uModel.UserModel
	if err := s.DB.
		Where("user_role = ? AND user_is_active = ?", uModel.UserRolePerwadag, true).
		Order("user_nama").
		Find(&perwadags).Error; err != nil {
		// tanpa entri error, summary kosong tak bisa dibedakan dari
		// fleet tanpa perwadag aktif
		log.Printf("❌ gagal mengambil daftar perwadag: %v", err)
		summary.Errors = append(summary.Errors, perDTO.GenerateError{
			Error: "gagal mengambil daftar perwadag: " + err.Error(),
		})
		return summary
	}
	summary.TotalPerwadag = len(perwadags)

	for i := range perwadags {
		pw := &perwadags[i]
		if err := s.generateSatu(periode, pw); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, perDTO.GenerateError{
				UserPerwadagID: pw.UserID,
				NamaPerwadag:   pw.UserNama,
				Error:          err.Error(),
			})
			log.Printf("⚠️ generate penilaian gagal untuk %s: %v", pw.UserNama, err)
			continue
		}
		summary.Generated++
	}
	return summary
}

func (s *PeriodeService) generateSatu(periode *perModel.PeriodeModel, pw *uModel.UserModel) error {
	if strings.TrimSpace(pw.Inspektorat()) == "" {
		return errors.New("akun perwadag tanpa inspektorat")
	}

	m := &prModel.PenilaianRisikoModel{
		PenilaianRisikoUserPerwadagID: pw.UserID,
		PenilaianRisikoPeriodeID:      periode.PeriodeID,
		PenilaianRisikoNamaPerwadag:   pw.UserNama,
		PenilaianRisikoInspektorat:    pw.Inspektorat(),
		PenilaianRisikoTahun:          periode.PeriodeTahun,
	}
	m.SetKriteria(prModel.NewKriteriaData(periode.TahunPembanding1(), periode.TahunPembanding2()))

	// tiap baris transaksinya sendiri; duplikat (re-generate) dilewati
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			if apperr.IsDuplicateKey(err) {
				return errors.New("penilaian untuk periode ini sudah ada")
			}
			return err
		}
		return nil
	})
}

// RegeneratePenilaian mengisi baris penilaian yang belum ada (mis. perwadag
// baru ditambahkan setelah periode dibuat). Baris lama tidak disentuh.
func (s *PeriodeService) RegeneratePenilaian(id uuid.UUID) (perDTO.GenerateSummary, error) {
	periode, err := s.GetByID(id)
	if err != nil {
		return perDTO.GenerateSummary{}, err
	}
	return s.generatePenilaian(periode), nil
}

/* ===================== READ ===================== */

func (s *PeriodeService) GetByID(id uuid.UUID) (*perModel.PeriodeModel, error) {
	var m perModel.PeriodeModel
	if err := s.DB.Where("periode_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Periode evaluasi tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

func (s *PeriodeService) List() ([]perModel.PeriodeModel, error) {
	var rows []perModel.PeriodeModel
	if err := s.DB.Order("periode_tahun DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

/* ===================== STATUS & LOCK ===================== */

func (s *PeriodeService) SetStatus(id uuid.UUID, status perModel.PeriodeStatus) (*perModel.PeriodeModel, error) {
	m, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	m.PeriodeStatus = status
	if err := s.DB.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *PeriodeService) SetLock(id uuid.UUID, locked bool) (*perModel.PeriodeModel, error) {
	m, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	m.PeriodeIsLocked = locked
	if err := s.DB.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

/* ===================== DELETE ===================== */

// DeletePeriode menghapus periode beserta SEMUA penilaiannya dalam satu
// transaksi, hard delete: periode salah buat harus bisa dibersihkan total.
func (s *PeriodeService) DeletePeriode(id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("penilaian_risiko_periode_id = ?", id).
			Delete(&prModel.PenilaianRisikoModel{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("periode_id = ?", id).
			Delete(&perModel.PeriodeModel{}).Error; err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		return apperr.CascadeFailure("Gagal menghapus periode beserta penilaiannya", txErr)
	}
	return nil
}

/* ===================== SUMMARY ===================== */

// PeriodeSummary: statistik pengisian satu periode.
type PeriodeSummary struct {
	PeriodeID      uuid.UUID      `json:"periode_id"`
	Tahun          int            `json:"tahun"`
	TotalPenilaian int64          `json:"total_penilaian"`
	SudahDihitung  int64          `json:"sudah_dihitung"`
	BelumDihitung  int64          `json:"belum_dihitung"`
	RataRataSkor   *float64       `json:"rata_rata_skor,omitempty"`
	ProfilCount    map[string]int `json:"profil_count"`
}

func (s *PeriodeService) Summary(id uuid.UUID) (*PeriodeSummary, error) {
	periode, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	out := &PeriodeSummary{
		PeriodeID:   periode.PeriodeID,
		Tahun:       periode.PeriodeTahun,
		ProfilCount: map[string]int{},
	}

	base := s.DB.Model(&prModel.PenilaianRisikoModel{}).
		Where("penilaian_risiko_periode_id = ?", id)

	if err := base.Session(&gorm.Session{}).Count(&out.TotalPenilaian).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("penilaian_risiko_profil IS NOT NULL").
		Count(&out.SudahDihitung).Error; err != nil {
		return nil, err
	}
	out.BelumDihitung = out.TotalPenilaian - out.SudahDihitung

	if out.SudahDihitung > 0 {
		var avg float64
		if err := base.Session(&gorm.Session{}).
			Where("penilaian_risiko_skor_rata_rata IS NOT NULL").
			Select("AVG(penilaian_risiko_skor_rata_rata)").
			Scan(&avg).Error; err != nil {
			return nil, err
		}
		out.RataRataSkor = &avg
	}

	type profilRow struct {
		Profil string
		N      int
	}
	var rows []profilRow
	if err := base.Session(&gorm.Session{}).
		Where("penilaian_risiko_profil IS NOT NULL").
		Select("penilaian_risiko_profil AS profil, COUNT(*) AS n").
		Group("penilaian_risiko_profil").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out.ProfilCount[r.Profil] = r.N
	}
	return out, nil
}
