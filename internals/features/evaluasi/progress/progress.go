// internals/features/evaluasi/progress/progress.go
package progress

import "math"

// Percent menghitung persentase bulat dari done/total.
// Pembulatan half-up: 1/3 -> 33, 2/3 -> 67. Total 0 dianggap 0%.
func Percent(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	if done >= total {
		return 100
	}
	return int(math.Floor(float64(done)*100/float64(total) + 0.5))
}

// StageFlags merangkum status lengkap/belum dari tujuh tahapan
// satu surat tugas. Urutan mengikuti alur evaluasi.
type StageFlags struct {
	SuratPemberitahuan bool `json:"surat_pemberitahuan"`
	EntryMeeting       bool `json:"entry_meeting"`
	KonfirmasiMeeting  bool `json:"konfirmasi_meeting"`
	ExitMeeting        bool `json:"exit_meeting"`
	Matriks            bool `json:"matriks"`
	LaporanHasil       bool `json:"laporan_hasil"`
	Kuisioner          bool `json:"kuisioner"`
}

func (f StageFlags) all() [7]bool {
	return [7]bool{
		f.SuratPemberitahuan,
		f.EntryMeeting,
		f.KonfirmasiMeeting,
		f.ExitMeeting,
		f.Matriks,
		f.LaporanHasil,
		f.Kuisioner,
	}
}

// CompletedCount: berapa tahapan yang sudah lengkap.
func (f StageFlags) CompletedCount() int {
	n := 0
	for _, ok := range f.all() {
		if ok {
			n++
		}
	}
	return n
}

// OverallPercentage: tiap tahapan dihitung biner (lengkap/belum),
// persentase parsial di dalam satu tahapan tidak ikut dirata-rata.
func (f StageFlags) OverallPercentage() int {
	return Percent(f.CompletedCount(), 7)
}

func (f StageFlags) IsFullyCompleted() bool { return f.CompletedCount() == 7 }
