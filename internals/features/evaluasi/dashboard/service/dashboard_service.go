// internals/features/evaluasi/dashboard/service/dashboard_service.go
package service

import (
	"time"

	"gorm.io/gorm"

	"perwadag_backend/internals/features/evaluasi/progress"
	stModel "perwadag_backend/internals/features/evaluasi/surat_tugas/model"
	thpModel "perwadag_backend/internals/features/evaluasi/tahapan/model"
	"perwadag_backend/internals/helpers/scope"
)

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

type StageCount struct {
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
}

// DashboardSummary: rekap seluruh evaluasi yang terlihat oleh caller.
type DashboardSummary struct {
	Tahun           int `json:"tahun,omitempty"`
	TotalSuratTugas int `json:"total_surat_tugas"`

	BelumMulai  int `json:"belum_mulai"`
	Berlangsung int `json:"berlangsung"`
	Selesai     int `json:"selesai"`

	// per tahapan, biner lengkap/belum
	SuratPemberitahuan StageCount `json:"surat_pemberitahuan"`
	EntryMeeting       StageCount `json:"entry_meeting"`
	KonfirmasiMeeting  StageCount `json:"konfirmasi_meeting"`
	ExitMeeting        StageCount `json:"exit_meeting"`
	Matriks            StageCount `json:"matriks"`
	LaporanHasil       StageCount `json:"laporan_hasil"`
	Kuisioner          StageCount `json:"kuisioner"`

	FullyCompleted    int `json:"fully_completed"`
	AveragePercentage int `json:"average_percentage"`
}

var scopeCols = scope.Columns{
	Inspektorat: "surat_tugas_inspektorat",
	PerwadagID:  "surat_tugas_user_perwadag_id",
}

/*
Summary menghitung rekap di Go, bukan SQL: predikat lengkap menyentuh
kolom JSON (lampiran meeting, temuan matriks) dan harus identik dengan
predikat yang dipakai progress per surat tugas.
*/
func (s *DashboardService) Summary(sc scope.Scope, tahun int) (*DashboardSummary, error) {
	dbq := sc.Apply(s.DB.Model(&stModel.SuratTugasModel{}), scopeCols)
	if tahun > 0 {
		awal := time.Date(tahun, 1, 1, 0, 0, 0, 0, time.UTC)
		akhir := awal.AddDate(1, 0, 0)
		dbq = dbq.Where("surat_tugas_tanggal_mulai >= ? AND surat_tugas_tanggal_mulai < ?", awal, akhir)
	}

	var sts []stModel.SuratTugasModel
	if err := dbq.Find(&sts).Error; err != nil {
		return nil, err
	}

	out := &DashboardSummary{Tahun: tahun, TotalSuratTugas: len(sts)}
	if len(sts) == 0 {
		return out, nil
	}

	ids := make([]any, 0, len(sts))
	now := time.Now()
	for i := range sts {
		ids = append(ids, sts[i].SuratTugasID)
		switch sts[i].StatusEvaluasi(now) {
		case "belum_mulai":
			out.BelumMulai++
		case "berlangsung":
			out.Berlangsung++
		default:
			out.Selesai++
		}
	}

	flagsByID, err := s.loadFlags(ids)
	if err != nil {
		return nil, err
	}

	sumPct := 0
	for i := range sts {
		f := flagsByID[sts[i].SuratTugasID.String()]

		tally(&out.SuratPemberitahuan, f.SuratPemberitahuan)
		tally(&out.EntryMeeting, f.EntryMeeting)
		tally(&out.KonfirmasiMeeting, f.KonfirmasiMeeting)
		tally(&out.ExitMeeting, f.ExitMeeting)
		tally(&out.Matriks, f.Matriks)
		tally(&out.LaporanHasil, f.LaporanHasil)
		tally(&out.Kuisioner, f.Kuisioner)

		if f.IsFullyCompleted() {
			out.FullyCompleted++
		}
		sumPct += f.OverallPercentage()
	}
	out.AveragePercentage = progress.Percent(sumPct, len(sts)*100)

	return out, nil
}

func tally(c *StageCount, done bool) {
	if done {
		c.Completed++
	} else {
		c.Incomplete++
	}
}

// loadFlags memuat semua tahapan sekali jalan per tabel, lalu
// menurunkan StageFlags per surat tugas.
func (s *DashboardService) loadFlags(ids []any) (map[string]progress.StageFlags, error) {
	flags := make(map[string]progress.StageFlags, len(ids))

	var sps []thpModel.SuratPemberitahuanModel
	if err := s.DB.Where("surat_pemberitahuan_surat_tugas_id IN ?", ids).Find(&sps).Error; err != nil {
		return nil, err
	}
	for i := range sps {
		f := flags[sps[i].SuratPemberitahuanSuratTugasID.String()]
		f.SuratPemberitahuan = sps[i].IsCompleted()
		flags[sps[i].SuratPemberitahuanSuratTugasID.String()] = f
	}

	var meetings []thpModel.MeetingModel
	if err := s.DB.Where("meeting_surat_tugas_id IN ?", ids).Find(&meetings).Error; err != nil {
		return nil, err
	}
	for i := range meetings {
		key := meetings[i].MeetingSuratTugasID.String()
		f := flags[key]
		done := meetings[i].IsCompleted()
		switch meetings[i].MeetingType {
		case thpModel.MeetingTypeEntry:
			f.EntryMeeting = done
		case thpModel.MeetingTypeKonfirmasi:
			f.KonfirmasiMeeting = done
		case thpModel.MeetingTypeExit:
			f.ExitMeeting = done
		}
		flags[key] = f
	}

	var mtrs []thpModel.MatriksModel
	if err := s.DB.Where("matriks_surat_tugas_id IN ?", ids).Find(&mtrs).Error; err != nil {
		return nil, err
	}
	for i := range mtrs {
		f := flags[mtrs[i].MatriksSuratTugasID.String()]
		f.Matriks = mtrs[i].IsCompleted()
		flags[mtrs[i].MatriksSuratTugasID.String()] = f
	}

	var laps []thpModel.LaporanHasilModel
	if err := s.DB.Where("laporan_hasil_surat_tugas_id IN ?", ids).Find(&laps).Error; err != nil {
		return nil, err
	}
	for i := range laps {
		f := flags[laps[i].LaporanHasilSuratTugasID.String()]
		f.LaporanHasil = laps[i].IsCompleted()
		flags[laps[i].LaporanHasilSuratTugasID.String()] = f
	}

	var kuis []thpModel.KuisionerModel
	if err := s.DB.Where("kuisioner_surat_tugas_id IN ?", ids).Find(&kuis).Error; err != nil {
		return nil, err
	}
	for i := range kuis {
		f := flags[kuis[i].KuisionerSuratTugasID.String()]
		f.Kuisioner = kuis[i].IsCompleted()
		flags[kuis[i].KuisionerSuratTugasID.String()] = f
	}

	return flags, nil
}
