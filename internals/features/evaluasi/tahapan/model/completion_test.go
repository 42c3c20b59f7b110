package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func strptr(s string) *string { return &s }

func dateptr() *time.Time {
	d := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestSuratPemberitahuanCompletion(t *testing.T) {
	m := &SuratPemberitahuanModel{}
	assert.False(t, m.IsCompleted())
	assert.Equal(t, 0, m.CompletionPercentage())

	m.SuratPemberitahuanTanggal = dateptr()
	assert.Equal(t, 50, m.CompletionPercentage())
	assert.False(t, m.IsCompleted())

	m.SuratPemberitahuanFileKey = strptr("evaluasi/surat-pemberitahuan/2025/03/x.pdf")
	assert.Equal(t, 100, m.CompletionPercentage())
	assert.True(t, m.IsCompleted())
}

func TestMeetingCompletion(t *testing.T) {
	m := &MeetingModel{MeetingType: MeetingTypeEntry}
	assert.Equal(t, 0, m.CompletionPercentage())

	m.MeetingTanggal = dateptr()
	assert.Equal(t, 25, m.CompletionPercentage())

	m.MeetingLinkZoom = strptr("https://zoom.us/j/123")
	assert.Equal(t, 50, m.CompletionPercentage())

	m.MeetingLinkDaftarHadir = strptr("https://forms.example/hadir")
	assert.Equal(t, 75, m.CompletionPercentage())
	assert.False(t, m.IsCompleted())

	m.MeetingFiles = datatypes.NewJSONType([]FileItem{
		{Key: "k", URL: "u", Filename: "bukti.pdf"},
	})
	assert.Equal(t, 100, m.CompletionPercentage())
	assert.True(t, m.IsCompleted())
}

func TestMeetingLinkKosongTidakDihitung(t *testing.T) {
	m := &MeetingModel{MeetingLinkZoom: strptr("   ")}
	assert.Equal(t, 0, m.CompletionPercentage())
}

func TestMatriksCompletion(t *testing.T) {
	m := &MatriksModel{}
	assert.Equal(t, 0, m.CompletionPercentage())

	m.MatriksNomor = strptr("MTR/001/2025")
	assert.Equal(t, 33, m.CompletionPercentage())

	// pasangan temuan harus lengkap dua-duanya
	m.MatriksTemuan = datatypes.NewJSONType([]TemuanRekomendasi{
		{Kondisi: "Dokumen ekspor tidak tertib", Rekomendasi: ""},
	})
	assert.Equal(t, 33, m.CompletionPercentage())

	m.MatriksTemuan = datatypes.NewJSONType([]TemuanRekomendasi{
		{Kondisi: "Dokumen ekspor tidak tertib", Rekomendasi: "Perbaiki arsip"},
	})
	assert.Equal(t, 67, m.CompletionPercentage())

	m.MatriksFileKey = strptr("evaluasi/matriks/2025/03/m.pdf")
	assert.Equal(t, 100, m.CompletionPercentage())
	assert.True(t, m.IsCompleted())
}

func TestLaporanHasilCompletion(t *testing.T) {
	m := &LaporanHasilModel{}
	assert.Equal(t, 0, m.CompletionPercentage())

	m.LaporanHasilNomor = strptr("LHE/010/2025")
	m.LaporanHasilTanggal = dateptr()
	assert.Equal(t, 67, m.CompletionPercentage())
	assert.False(t, m.IsCompleted())

	m.LaporanHasilFileKey = strptr("evaluasi/laporan-hasil/2025/03/l.pdf")
	assert.True(t, m.IsCompleted())
}

func TestKuisionerCompletion(t *testing.T) {
	m := &KuisionerModel{}
	assert.Equal(t, 0, m.CompletionPercentage())

	m.KuisionerTanggal = dateptr()
	assert.Equal(t, 50, m.CompletionPercentage())

	m.KuisionerFileKey = strptr("evaluasi/kuisioner/2025/03/q.pdf")
	assert.True(t, m.IsCompleted())
}
