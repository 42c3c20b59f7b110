package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 7))
	assert.Equal(t, 0, Percent(3, 0))
	assert.Equal(t, 100, Percent(7, 7))
	assert.Equal(t, 100, Percent(9, 7))

	// half-up
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 25, Percent(1, 4))
	assert.Equal(t, 75, Percent(3, 4))
	assert.Equal(t, 14, Percent(1, 7))
	assert.Equal(t, 29, Percent(2, 7))
	assert.Equal(t, 43, Percent(3, 7))
	assert.Equal(t, 57, Percent(4, 7))
	assert.Equal(t, 71, Percent(5, 7))
	assert.Equal(t, 86, Percent(6, 7))
}

func TestStageFlags(t *testing.T) {
	var f StageFlags
	assert.Equal(t, 0, f.CompletedCount())
	assert.Equal(t, 0, f.OverallPercentage())
	assert.False(t, f.IsFullyCompleted())

	f.SuratPemberitahuan = true
	f.EntryMeeting = true
	f.Matriks = true
	assert.Equal(t, 3, f.CompletedCount())
	assert.Equal(t, 43, f.OverallPercentage())

	f.KonfirmasiMeeting = true
	f.ExitMeeting = true
	f.LaporanHasil = true
	f.Kuisioner = true
	assert.Equal(t, 7, f.CompletedCount())
	assert.Equal(t, 100, f.OverallPercentage())
	assert.True(t, f.IsFullyCompleted())
}
