// internals/features/penilaian/penilaian_risiko/service/penilaian_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	perModel "perwadag_backend/internals/features/penilaian/periode/model"
	prDTO "perwadag_backend/internals/features/penilaian/penilaian_risiko/dto"
	prModel "perwadag_backend/internals/features/penilaian/penilaian_risiko/model"
	helper "perwadag_backend/internals/helpers"
	"perwadag_backend/internals/helpers/apperr"
	"perwadag_backend/internals/helpers/scope"
)

type PenilaianService struct {
	DB *gorm.DB
}

func NewPenilaianService(db *gorm.DB) *PenilaianService {
	return &PenilaianService{DB: db}
}

var scopeCols = scope.Columns{
	Inspektorat: "penilaian_risiko_inspektorat",
	PerwadagID:  "penilaian_risiko_user_perwadag_id",
}

/* ===================== READ ===================== */

func (s *PenilaianService) GetByID(sc scope.Scope, id uuid.UUID) (*prModel.PenilaianRisikoModel, error) {
	var m prModel.PenilaianRisikoModel
	if err := s.DB.Where("penilaian_risiko_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Penilaian risiko tidak ditemukan")
		}
		return nil, err
	}
	if !sc.CanSee(m.PenilaianRisikoInspektorat, m.PenilaianRisikoUserPerwadagID) {
		return nil, apperr.ScopeViolation("Penilaian risiko di luar wilayah akses Anda")
	}
	return &m, nil
}

type ListFilter struct {
	PeriodeID   uuid.UUID
	Tahun       int
	Inspektorat string
	Profil      string
	Search      string
}

func (s *PenilaianService) List(sc scope.Scope, f ListFilter, p helper.Params) ([]prModel.PenilaianRisikoModel, int64, error) {
	dbq := sc.Apply(s.DB.Model(&prModel.PenilaianRisikoModel{}), scopeCols)

	if f.PeriodeID != uuid.Nil {
		dbq = dbq.Where("penilaian_risiko_periode_id = ?", f.PeriodeID)
	}
	if f.Tahun > 0 {
		dbq = dbq.Where("penilaian_risiko_tahun = ?", f.Tahun)
	}
	if strings.TrimSpace(f.Inspektorat) != "" {
		dbq = dbq.Where("penilaian_risiko_inspektorat = ?", f.Inspektorat)
	}
	if strings.TrimSpace(f.Profil) != "" {
		dbq = dbq.Where("penilaian_risiko_profil = ?", f.Profil)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		dbq = dbq.Where("penilaian_risiko_nama_perwadag ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause, err := p.SafeOrderClause(map[string]string{
		"created_at":    "penilaian_risiko_created_at",
		"nama_perwadag": "lower(penilaian_risiko_nama_perwadag)",
		"skor":          "penilaian_risiko_skor_rata_rata",
		"total":         "penilaian_risiko_total_nilai_risiko",
	}, "created_at")
	if err != nil {
		return nil, 0, apperr.Validation("sort_by", "sort_by tidak dikenal")
	}

	var rows []prModel.PenilaianRisikoModel
	if err := dbq.Order(strings.TrimPrefix(orderClause, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* ===================== UPDATE ===================== */

/*
UpdateKriteria menulis kriteria dalam satu transaksi dengan lock
per-baris (SELECT ... FOR UPDATE) supaya dua update paralel tidak
saling menimpa sebagian ("lost update"). Urutan pemeriksaan:
NotFound -> scope -> periode editable -> merge -> hitung ulang.
*/
func (s *PenilaianService) UpdateKriteria(sc scope.Scope, id uuid.UUID, req *prDTO.UpdatePenilaianRequest) (*prModel.PenilaianRisikoModel, error) {
	var out prModel.PenilaianRisikoModel

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var m prModel.PenilaianRisikoModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("penilaian_risiko_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Penilaian risiko tidak ditemukan")
			}
			return err
		}
		if !sc.CanSee(m.PenilaianRisikoInspektorat, m.PenilaianRisikoUserPerwadagID) {
			return apperr.ScopeViolation("Penilaian risiko di luar wilayah akses Anda")
		}

		var periode perModel.PeriodeModel
		if err := tx.Where("periode_id = ?", m.PenilaianRisikoPeriodeID).First(&periode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Periode evaluasi tidak ditemukan")
			}
			return err
		}
		if !periode.IsEditable() {
			return apperr.LockedPeriode()
		}

		k := m.Kriteria()
		if req.KriteriaData != nil {
			k = req.KriteriaData.ApplyTo(k)
		}
		// turunan selalu dihitung ulang dari input mentah
		k = ProsesKriteria(k)
		m.SetKriteria(k)

		if req.Catatan != nil {
			m.PenilaianRisikoCatatan = req.Catatan
		}

		if k.IsCalculationComplete() {
			if req.AutoCalc() {
				h := HitungTotal(k)
				m.PenilaianRisikoTotalNilaiRisiko = &h.TotalNilaiRisiko
				m.PenilaianRisikoSkorRataRata = &h.SkorRataRata
				m.PenilaianRisikoProfil = &h.ProfilRisiko
			}
			// auto_calculate=false & lengkap: hasil lama dibiarkan
		} else {
			// kriteria mundur jadi tidak lengkap: hasil lama tidak valid lagi
			m.ClearCalculationResult()
		}

		now := time.Now()
		m.PenilaianRisikoUpdatedAt = &now

		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out = m
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &out, nil
}

// Calculate menghitung ulang hasil dari kriteria tersimpan, tanpa
// mengubah input. Dipakai endpoint kalkulasi eksplisit.
func (s *PenilaianService) Calculate(sc scope.Scope, id uuid.UUID, force bool) (*prModel.PenilaianRisikoModel, error) {
	var out prModel.PenilaianRisikoModel

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var m prModel.PenilaianRisikoModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("penilaian_risiko_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Penilaian risiko tidak ditemukan")
			}
			return err
		}
		if !sc.CanSee(m.PenilaianRisikoInspektorat, m.PenilaianRisikoUserPerwadagID) {
			return apperr.ScopeViolation("Penilaian risiko di luar wilayah akses Anda")
		}
		if m.HasCalculationResult() && !force {
			out = m
			return nil
		}

		k := m.Kriteria()
		h := HitungTotal(k)
		if h == nil {
			return apperr.Validation("kriteria_data",
				"Kriteria belum lengkap: "+strings.Join(k.MissingCriteria(), ", "))
		}
		m.PenilaianRisikoTotalNilaiRisiko = &h.TotalNilaiRisiko
		m.PenilaianRisikoSkorRataRata = &h.SkorRataRata
		m.PenilaianRisikoProfil = &h.ProfilRisiko

		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out = m
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &out, nil
}
