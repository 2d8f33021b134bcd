package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJuzOf(t *testing.T) {
	tests := []struct {
		name  string
		surah int
		ayah  int
		want  int
	}{
		{"first ayah", 1, 1, 1},
		{"end of first juz", 2, 141, 1},
		{"start of second juz", 2, 142, 2},
		{"juz amma", 78, 1, 30},
		{"last ayah", 114, 6, 30},
		{"surah zero", 0, 1, 0},
		{"surah out of range", 115, 1, 0},
		{"ayah zero", 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JuzOf(tt.surah, tt.ayah))
		})
	}
}

func TestSurahJuz(t *testing.T) {
	baqarah, err := GetSurah(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, baqarah.Juz())

	yasin, err := GetSurah(36)
	require.NoError(t, err)
	assert.Equal(t, []int{22, 23}, yasin.Juz())

	ikhlas, err := GetSurah(112)
	require.NoError(t, err)
	assert.Equal(t, []int{30}, ikhlas.Juz())
}

func TestSurahsInJuz(t *testing.T) {
	amma := SurahsInJuz(30)
	require.NotEmpty(t, amma)
	assert.Equal(t, 78, amma[0].Number)
	assert.Equal(t, 114, amma[len(amma)-1].Number)

	for j := 1; j <= JuzCount; j++ {
		assert.NotEmpty(t, SurahsInJuz(j), "juz %d", j)
	}
	assert.Empty(t, SurahsInJuz(31))
}
